package domain

import "time"

// Account models a person who can sign in to the portal.
type Account struct {
	ID           string    `json:"id"`
	Account      string    `json:"account"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CourseIDs    []string  `json:"course_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Credential builds the token payload for a fresh sign-in. The course
// association is only filled in when it is unambiguous.
func (a *Account) Credential() Credential {
	cred := Credential{Account: a.Account, Role: a.Role}
	if len(a.CourseIDs) == 1 {
		cred.CourseID = a.CourseIDs[0]
	}
	return cred
}

// InCourse reports whether the account is enrolled in or teaches courseID.
func (a *Account) InCourse(courseID string) bool {
	for _, id := range a.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}
