package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []int{1, 2}, &Meta{TotalItems: 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.TotalItems)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad", map[string]string{"id": "required"}) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"validation", func(w http.ResponseWriter) { ValidationError(w, nil) }, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "exists") }, http.StatusConflict, "CONFLICT"},
		{"mapped domain error", func(w http.ResponseWriter) { HandleError(w, worker.ErrWorkerNotFound) }, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestFileAndText(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "register.xlsx", "application/octet-stream", []byte("xlsx"))
	assert.Equal(t, `attachment; filename="register.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", rec.Body.String())

	rec = httptest.NewRecorder()
	Text(rec, "PAYSLIP")
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "PAYSLIP", rec.Body.String())
}
