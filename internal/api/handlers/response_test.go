package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "запись не найдена")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, "запись не найдена", body.Error.Message)
	assert.Nil(t, body.Error.Details)
}

func TestRespondRejection(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondRejection(rec, http.StatusUnprocessableEntity, &domain.Rejection{
		Reason:  domain.RejectDuringBreak,
		Message: "the requested time falls in the break",
		Details: map[string]any{"breakTime": "12:00-13:00"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"during_break","message":"the requested time falls in the break","details":{"breakTime":"12:00-13:00"}}}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ann"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "ann", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestPathInt64(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "0"})
	_, err = PathInt64(req, "id")
	assert.Error(t, err)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "abc"})
	_, err = PathInt64(req, "id")
	assert.Error(t, err)
}
