package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/api/middleware"
	"github.com/gradebook/portal/internal/core/domain"
	"github.com/gradebook/portal/internal/core/ports"
)

type stubCourseService struct {
	coursesFn func(ctx context.Context, account string) ([]domain.Course, error)
	selectFn  func(ctx context.Context, cred domain.Credential, courseID string) (*ports.IssuedCredential, error)
}

func (s *stubCourseService) Courses(ctx context.Context, account string) ([]domain.Course, error) {
	return s.coursesFn(ctx, account)
}

func (s *stubCourseService) SelectCourse(ctx context.Context, cred domain.Credential, courseID string) (*ports.IssuedCredential, error) {
	return s.selectFn(ctx, cred, courseID)
}

func TestCourseHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubCourseService{
		coursesFn: func(ctx context.Context, account string) ([]domain.Course, error) {
			if account != "tina" {
				t.Fatalf("unexpected account %q", account)
			}
			return []domain.Course{{ID: "math-101", Code: "MATH101", Title: "Calculus I", Teacher: "tina"}}, nil
		},
	}
	handler := NewCourseHandler(stub, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/courses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCredential(c, &domain.Credential{Account: "tina", Role: domain.RoleTeacher})

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp coursesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Courses) != 1 || resp.Courses[0].ID != "math-101" {
		t.Fatalf("unexpected courses: %+v", resp.Courses)
	}
}

func TestCourseHandler_List_WithoutCredential(t *testing.T) {
	e := newTestEcho()
	handler := NewCourseHandler(&stubCourseService{}, CookieConfig{})
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/dashboard/courses", nil), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := handler.List(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCourseHandler_Select(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(time.Hour)
	stub := &stubCourseService{
		selectFn: func(ctx context.Context, cred domain.Credential, courseID string) (*ports.IssuedCredential, error) {
			if cred.Account != "sam" || courseID != "bio-301" {
				t.Fatalf("unexpected args: %+v %s", cred, courseID)
			}
			return &ports.IssuedCredential{Token: "rebound", ExpiresAt: expires, Credential: cred.WithCourse(courseID)}, nil
		},
	}
	handler := NewCourseHandler(stub, CookieConfig{})

	c, rec := postJSON(e, "/api/dashboard/course", `{"course_id":"bio-301"}`)
	middleware.SetCredential(c, &domain.Credential{Account: "sam", Role: domain.RoleStudent})

	if err := handler.Select(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ck := sessionCookie(t, rec); ck.Value != "rebound" {
		t.Fatalf("expected re-issued cookie, got %+v", ck)
	}

	var resp signedInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.CourseID != "bio-301" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestCourseHandler_Select_NotMember(t *testing.T) {
	e := newTestEcho()
	stub := &stubCourseService{
		selectFn: func(ctx context.Context, cred domain.Credential, courseID string) (*ports.IssuedCredential, error) {
			return nil, domain.ErrNotCourseMember
		},
	}
	handler := NewCourseHandler(stub, CookieConfig{})

	c, rec := postJSON(e, "/api/dashboard/course", `{"course_id":"chem-999"}`)
	middleware.SetCredential(c, &domain.Credential{Account: "sam", Role: domain.RoleStudent})
	_ = handler.Select(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookie must not change on rejection")
	}
}

func TestCourseHandler_Select_MissingCourseID(t *testing.T) {
	e := newTestEcho()
	stub := &stubCourseService{
		selectFn: func(ctx context.Context, cred domain.Credential, courseID string) (*ports.IssuedCredential, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewCourseHandler(stub, CookieConfig{})

	c, rec := postJSON(e, "/api/dashboard/course", `{}`)
	middleware.SetCredential(c, &domain.Credential{Account: "sam", Role: domain.RoleStudent})
	_ = handler.Select(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
