package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/models"
)

// newRequest builds a request carrying an authenticated caller and route vars
func newRequest(method, target, body string, caller *api.Principal, vars map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if caller != nil {
		req = req.WithContext(api.WithPrincipal(req.Context(), *caller))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func principal(role models.Role) *api.Principal {
	return &api.Principal{ID: primitive.NewObjectID(), Role: role, Email: string(role) + "@example.com"}
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) models.MessageError {
	t.Helper()
	var resp models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Response
}

// envelope decodes a MessageResponse or ListResponse with a typed payload
type envelope[T any] struct {
	Message    string            `json:"message"`
	Data       T                 `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
