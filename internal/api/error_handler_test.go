package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gradebook/portal/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		msg    string
		logged bool
	}{
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "Not Found"), http.StatusNotFound, "Not Found", false},
		{"wrapped invalid credential", fmt.Errorf("read: %w", domain.ErrInvalidCredential), http.StatusUnauthorized, "not authenticated", false},
		{"not a member", domain.ErrNotCourseMember, http.StatusForbidden, "access forbidden", false},
		{"account not found", fmt.Errorf("course membership: %w", domain.ErrAccountNotFound), http.StatusNotFound, "course membership: account not found", false},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			handler := NewHTTPErrorHandler(zerolog.New(&logs))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/dashboard/courses", nil), rec)
			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.msg {
				t.Fatalf("error = %q, want %q", resp.Error, tc.msg)
			}
			if got := logs.Len() > 0; got != tc.logged {
				t.Fatalf("logged = %v, want %v (%s)", got, tc.logged, logs.String())
			}
		})
	}
}
