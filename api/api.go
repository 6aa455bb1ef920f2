package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/config"
)

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// WriteError maps err to its status code and writes the error envelope.
// The cause of internal errors is logged, never sent.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("erro interno do servidor", err)
	}
	status := apperrors.HTTPStatus(appErr)
	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = "erro interno do servidor"
	}
	config.CodedErrorStatus(message, appErr.Code(), appErr.Fields, status, w, err)
}

// DecodeJSON reads the request body into dst. An empty body leaves dst
// untouched so the validator reports the missing fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Validation("corpo da requisição inválido", map[string]string{"body": err.Error()})
	}
	return nil
}
