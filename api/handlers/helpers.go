package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/lifecycle"
	"github.com/conectaong/voluntariado-api/models"
)

// ListResponse is the envelope of every paginated listing
type ListResponse struct {
	Data       interface{}       `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// MessageResponse pairs a human readable message with the affected document
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// actor returns the caller set by the auth middleware
func actor(r *http.Request) (lifecycle.Actor, bool) {
	p, ok := api.PrincipalFrom(r.Context())
	if !ok {
		return lifecycle.Actor{}, false
	}
	return lifecycle.Actor{ID: p.ID, Role: p.Role}, true
}

// mustActor writes a 401 when no caller is set, which means a route was
// registered without the auth middleware
func mustActor(w http.ResponseWriter, r *http.Request) (lifecycle.Actor, bool) {
	a, ok := actor(r)
	if !ok {
		api.WriteError(w, apperrors.Unauthorized("não autorizado"))
	}
	return a, ok
}

// objectIDVar parses the route variable name as an ObjectID
func objectIDVar(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		api.WriteError(w, apperrors.Validation("identificador inválido", map[string]string{name: "identificador inválido"}))
		return primitive.NilObjectID, false
	}
	return id, true
}

// decode reads and validates the request body into dst
func decode(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst interface{}) bool {
	if err := api.DecodeJSON(r, dst); err != nil {
		api.WriteError(w, err)
		return false
	}
	if err := v.Validate(dst); err != nil {
		api.WriteError(w, err)
		return false
	}
	return true
}

// containsFold builds a case-insensitive regex filter matching text literally
func containsFold(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(text)), Options: "i"}
}

// splitList splits a comma separated query value, dropping empty items
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// statusFilter adds status to filter when the query names a valid one
func statusFilter(filter bson.M, raw string, valid func(string) bool) error {
	if raw == "" {
		return nil
	}
	if !valid(raw) {
		return apperrors.Validation("dados inválidos", map[string]string{"status": "status inválido"})
	}
	filter["status"] = raw
	return nil
}

// clock returns now() when set, the wall clock otherwise
func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
