package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		domain.EINVALID:   http.StatusBadRequest,
		domain.ENOTFOUND:  http.StatusNotFound,
		domain.ECONFLICT:  http.StatusConflict,
		domain.ETOOLARGE:  http.StatusRequestEntityTooLarge,
		domain.ERATELIMIT: http.StatusTooManyRequests,
		domain.EINTERNAL:  http.StatusInternalServerError,
		domain.ENOTIMPL:   http.StatusNotImplemented,
		"unknown":         http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, ErrorCodeToHTTPStatus(code), code)
	}
}

func TestErrorResponse_JSONEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/routes/api/leads/upload", nil)
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, discardLogger(), domain.Invalid("LeadService.Upload", "File must be a CSV"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body JSONError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, domain.EINVALID, body.Error.Code)
	assert.Equal(t, "File must be a CSV", body.Error.Message)
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	dbErr := errors.New("pq: connection refused to 10.0.0.5:5432")

	for _, accept := range []string{"text/html", "application/json"} {
		t.Run(accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/leads", nil)
			req.Header.Set("Accept", accept)
			rec := httptest.NewRecorder()

			ErrorResponse(rec, req, discardLogger(), domain.Internal(dbErr, "LeadService.List", "Failed to list leads"))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotContains(t, rec.Body.String(), "10.0.0.5")
			assert.NotContains(t, rec.Body.String(), "LeadService")
		})
	}
}

func TestErrorResponse_UnwrappedErrorIsGeneric(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, discardLogger(), errors.New("sql: no rows in result set"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sql:")
}

func TestValidationErrorResponse(t *testing.T) {
	ve := domain.MissingField("APIHandler.Upload", "file")

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/routes/api/leads/upload", nil)
		rec := httptest.NewRecorder()

		ValidationErrorResponse(rec, req, discardLogger(), ve)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t,
			`{"detail":[{"loc":["body","file"],"msg":"Field required","type":"missing"}]}`,
			rec.Body.String())
	})

	t.Run("html", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/leads/upload", nil)
		rec := httptest.NewRecorder()

		ValidationErrorResponse(rec, req, discardLogger(), ve)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotContains(t, rec.Body.String(), "APIHandler")
		assert.Contains(t, rec.Body.String(), "check your input")
	})

	t.Run("not a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/routes/api/leads/upload", nil)
		rec := httptest.NewRecorder()

		ValidationErrorResponse(rec, req, discardLogger(), domain.Invalid("", "nope"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAcceptsJSON(t *testing.T) {
	api := httptest.NewRequest(http.MethodGet, "/routes/api/leads", nil)
	assert.True(t, acceptsJSON(api))

	page := httptest.NewRequest(http.MethodGet, "/leads", nil)
	assert.False(t, acceptsJSON(page))

	fragment := httptest.NewRequest(http.MethodGet, "/routes/api/leads", nil)
	fragment.Header.Set("Datastar-Request", "true")
	assert.False(t, acceptsJSON(fragment))
}
