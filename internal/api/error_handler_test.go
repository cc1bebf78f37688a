package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrReportLocked, http.StatusForbidden},
		{domain.ErrReportNotFound, http.StatusNotFound},
		{domain.ErrClientNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrCaseIDExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserInactive, http.StatusUnauthorized},
		{domain.ErrNotADocument, http.StatusBadRequest},
		{domain.ErrUnsupportedLanguage, http.StatusBadRequest},
		{domain.ErrNoExtractableText, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := recordError(t, tc.err)
		if rec.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: invalid json body: %v", tc.err, err)
		}
		if body["error"] == "" {
			t.Errorf("%v: expected error message in envelope", tc.err)
		}
	}
}

// Wrapped domain errors still map to their status.
func TestErrorHandler_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("update report"), domain.ErrReportLocked)
	rec := recordError(t, wrapped)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrapped ErrReportLocked, got %d", rec.Code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := recordError(t, echo.NewHTTPError(http.StatusBadRequest, "no file attached"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if rec.Body.String() == "" || !json.Valid(rec.Body.Bytes()) {
		t.Error("expected json envelope")
	}
}

// Unexpected errors collapse to a generic 500 without leaking the cause.
func TestErrorHandler_UnknownError(t *testing.T) {
	rec := recordError(t, errors.New("connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "internal server error" {
		t.Errorf("internal detail must not leak, got %q", body["error"])
	}
}
