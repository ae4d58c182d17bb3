package domain

// Credential is the identity carried inside the signed session token.
type Credential struct {
	Account  string `json:"account"`
	Role     Role   `json:"role"`
	CourseID string `json:"course_id,omitempty"`
}

// HasCourse reports whether the credential is bound to a course.
func (c Credential) HasCourse() bool {
	return c.CourseID != ""
}

// WithCourse returns a copy of c bound to courseID.
func (c Credential) WithCourse(courseID string) Credential {
	c.CourseID = courseID
	return c
}
