package handler

import "github.com/gradebook/portal/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type loginRequest struct {
	Account  string `json:"account"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Account   string   `json:"account"    validate:"required,max=64"`
	Password  string   `json:"password"   validate:"required,min=8"`
	Role      string   `json:"role"       validate:"required,oneof=teacher student"`
	CourseIDs []string `json:"course_ids" validate:"omitempty,dive,required"`
}

type selectCourseRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// --- Response types ---

// sessionUser is the credential as the browser sees it.
type sessionUser struct {
	Account  string `json:"account"`
	Role     string `json:"role"`
	CourseID string `json:"course_id"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
}

type signedInResponse struct {
	Message string      `json:"message"`
	User    sessionUser `json:"user"`
}

type registerResponse struct {
	User *domain.Account `json:"user"`
}

type coursesResponse struct {
	Courses []domain.Course `json:"courses"`
}

type pageResponse struct {
	Page string       `json:"page"`
	User *sessionUser `json:"user,omitempty"`
}

func toSessionUser(cred domain.Credential) sessionUser {
	return sessionUser{
		Account:  cred.Account,
		Role:     string(cred.Role),
		CourseID: cred.CourseID,
	}
}
