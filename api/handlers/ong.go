package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

const msgOngNotFound = "ONG não encontrada"

// Ong exported for testing purposes
type Ong struct {
	DB  databases.OngDatabase
	V   *validation.Validator
	now func() time.Time
}

// OngFilter maps the query parameters of an ONG listing to a filter
func OngFilter(q map[string][]string) bson.M {
	get := func(key string) string {
		if v := q[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	filter := bson.M{"isActive": true}
	if area := get("area"); area != "" {
		filter["areas"] = area
	}
	if city := get("city"); city != "" {
		filter["location.city"] = containsFold(city)
	}
	if state := get("state"); state != "" {
		filter["location.state"] = containsFold(state)
	}
	if text := get("q"); text != "" {
		re := containsFold(text)
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"description": re}}
	}
	return filter
}

// OngsHandler lists active ONGs
func (o Ong) OngsHandler(w http.ResponseWriter, r *http.Request) {
	filter := OngFilter(r.URL.Query())
	paginate := databases.ParsePaginate(r.URL.Query().Get("limit"), r.URL.Query().Get("page"))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := o.DB.CountDocuments(ctx, filter)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to count ongs", err))
		return
	}
	ongs, err := o.DB.Find(ctx, filter, paginate.FindOptions(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to get ongs", err))
		return
	}
	if ongs == nil {
		ongs = []models.Ong{}
	}

	api.WriteJSON(w, http.StatusOK, ListResponse{Data: ongs, Pagination: paginate.Pagination(total)})
}

// OngByIDHandler returns one active ONG
func (o Ong) OngByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	ong, err := o.DB.FindOne(ctx, bson.M{"_id": id, "isActive": true})
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(msgOngNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get ong", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, ong)
}

// UpdateMyOngHandler edits the profile of the calling ONG
func (o Ong) UpdateMyOngHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	var req models.UpdateOngRequest
	if !decode(w, r, o.V, &req) {
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Areas != nil {
		set["areas"] = req.Areas
	}
	if req.Location != nil {
		set["location"] = req.Location.ToLocation()
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Logo != nil {
		set["logo"] = *req.Logo
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if len(set) > 0 {
		set["updatedAt"] = primitive.NewDateTimeFromTime(clock(o.now))
		res, err := o.DB.UpdateOne(ctx, bson.M{"_id": caller.ID}, bson.M{"$set": set})
		if err != nil {
			api.WriteError(w, apperrors.Internal("failed to update ong", err))
			return
		}
		if res.MatchedCount == 0 {
			api.WriteError(w, apperrors.NotFound(msgOngNotFound))
			return
		}
	}

	ong, err := o.DB.FindOne(ctx, bson.M{"_id": caller.ID})
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(msgOngNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get ong", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, ong)
}
