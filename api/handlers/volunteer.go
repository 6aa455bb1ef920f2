package handlers

import (
	"context"
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

const msgVolunteerNotFound = "voluntário não encontrado"

// Volunteer exported for testing purposes
type Volunteer struct {
	DB  databases.VolunteerDatabase
	V   *validation.Validator
	now func() time.Time
}

// MyProfileHandler returns the profile of the calling volunteer
func (v Volunteer) MyProfileHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	v.respondProfile(ctx, w, caller.ID)
}

// UpdateMyProfileHandler edits the profile of the calling volunteer
func (v Volunteer) UpdateMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	var req models.UpdateVolunteerRequest
	if !decode(w, r, v.V, &req) {
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Skills != nil {
		set["skills"] = req.Skills
	}
	if req.Interests != nil {
		set["interests"] = req.Interests
	}
	if req.Availability != nil {
		set["availability"] = *req.Availability
	}
	if req.Location != nil {
		set["location"] = req.Location.ToLocation()
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if len(set) > 0 {
		set["updatedAt"] = primitive.NewDateTimeFromTime(clock(v.now))
		res, err := v.DB.UpdateOne(ctx, bson.M{"_id": caller.ID}, bson.M{"$set": set})
		if err != nil {
			api.WriteError(w, apperrors.Internal("failed to update volunteer", err))
			return
		}
		if res.MatchedCount == 0 {
			api.WriteError(w, apperrors.NotFound(msgVolunteerNotFound))
			return
		}
	}

	v.respondProfile(ctx, w, caller.ID)
}

func (v Volunteer) respondProfile(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID) {
	volunteer, err := v.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(msgVolunteerNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get volunteer", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, volunteer)
}
