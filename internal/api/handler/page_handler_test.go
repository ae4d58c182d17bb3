package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/api/middleware"
	"github.com/gradebook/portal/internal/core/domain"
)

func TestPageHandler_Named(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/unauthorized", nil), rec)

	if err := NewPageHandler().Named("unauthorized")(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Page != "unauthorized" || resp.User != nil {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestPageHandler_DashboardIncludesUser(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard/teacher/grades", nil), rec)
	middleware.SetCredential(c, &domain.Credential{Account: "tina", Role: domain.RoleTeacher, CourseID: "math-101"})

	if err := NewPageHandler().Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Page != "dashboard/teacher/grades" {
		t.Fatalf("page = %q", resp.Page)
	}
	if resp.User == nil || resp.User.CourseID != "math-101" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}
