package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		wantStatus int
		wantAllow  string
	}{
		{"wildcard", []string{"*"}, "http://app.example", http.MethodGet, http.StatusTeapot, "*"},
		{"listed origin", []string{"http://app.example"}, "http://app.example", http.MethodGet, http.StatusTeapot, "http://app.example"},
		{"unlisted origin", []string{"http://app.example"}, "http://evil.example", http.MethodGet, http.StatusTeapot, ""},
		{"preflight", []string{"*"}, "http://app.example", http.MethodOptions, http.StatusNoContent, "*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/actions", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			CORS(tt.origins)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
