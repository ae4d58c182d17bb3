package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/core/domain"
	"github.com/gradebook/portal/internal/core/ports"
	"github.com/gradebook/portal/internal/pkg/metrics"
)

// CourseHandler lists the caller's courses and switches the active one.
// Both routes sit behind the gate.
type CourseHandler struct {
	service ports.CourseService
	cookie  CookieConfig
}

func NewCourseHandler(service ports.CourseService, cookie CookieConfig) *CourseHandler {
	return &CourseHandler{service: service, cookie: cookie}
}

// List handles GET /api/dashboard/courses.
//
// @Summary      List my courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  coursesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/dashboard/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	cred, err := ctxCredential(c)
	if err != nil {
		return err
	}

	courses, err := h.service.Courses(c.Request().Context(), cred.Account)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coursesResponse{Courses: courses})
}

// Select handles POST /api/dashboard/course: it re-issues the session cookie
// bound to the chosen course.
//
// @Summary      Select the active course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      selectCourseRequest  true  "Course to activate"
// @Success      200   {object}  signedInResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/dashboard/course [post]
func (h *CourseHandler) Select(c echo.Context) error {
	cred, err := ctxCredential(c)
	if err != nil {
		return err
	}

	var req selectCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	issued, err := h.service.SelectCourse(c.Request().Context(), cred, req.CourseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotCourseMember) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
		}
		return err
	}

	h.cookie.set(c, issued.Token, issued.ExpiresAt)
	metrics.CourseSelectionsTotal.Inc()
	return c.JSON(http.StatusOK, signedInResponse{
		Message: "Course selected",
		User:    toSessionUser(issued.Credential),
	})
}
