package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/models"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"validation", apperrors.Validation("dados inválidos", map[string]string{"title": "campo obrigatório"}), http.StatusBadRequest, "VALIDATION_ERROR", "dados inválidos"},
		{"conflict is a bad request", apperrors.Conflict("você já se candidatou para esta ação"), http.StatusBadRequest, "CONFLICT", "você já se candidatou para esta ação"},
		{"not found", apperrors.NotFound("ação não encontrada"), http.StatusNotFound, "NOT_FOUND", "ação não encontrada"},
		{"forbidden", apperrors.Forbidden("acesso negado"), http.StatusForbidden, "FORBIDDEN", "acesso negado"},
		{"plain error hides cause", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR", "erro interno do servidor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body models.ErrorMessageResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Response.Code)
			assert.Equal(t, tt.wantMessage, body.Response.Message)
			assert.NotContains(t, rr.Body.String(), "connection reset")
		})
	}
}

func TestWriteErrorFields(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, apperrors.Validation("dados inválidos", map[string]string{"location.city": "campo obrigatório"}))

	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "campo obrigatório", body.Response.Fields["location.city"])
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Ana", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := DecodeJSON(req, &dst)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	var dst struct {
		Notes string `json:"notes"`
	}
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	assert.NoError(t, DecodeJSON(req, &dst))
	assert.Empty(t, dst.Notes)
}
