package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/lifecycle"
	"github.com/conectaong/voluntariado-api/models"
)

const dateLayout = "2006-01-02"

// Action exported for testing purposes
type Action struct {
	DB      databases.ActionDatabase
	ADB     databases.ApplicationDatabase
	Manager *lifecycle.Manager
	V       *validation.Validator
	now     func() time.Time
}

// ActionFilter maps the query parameters of an action listing to a filter.
// The result always restricts to active documents.
func ActionFilter(q map[string][]string) (bson.M, error) {
	get := func(key string) string {
		if v := q[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	filter := bson.M{"isActive": true}
	if area := get("area"); area != "" {
		filter["area"] = area
	}
	if city := get("city"); city != "" {
		filter["location.city"] = containsFold(city)
	}
	if state := get("state"); state != "" {
		filter["location.state"] = containsFold(state)
	}
	if tags := splitList(get("tags")); len(tags) > 0 {
		filter["tags"] = bson.M{"$in": tags}
	}
	if text := get("q"); text != "" {
		re := containsFold(text)
		filter["$or"] = bson.A{bson.M{"title": re}, bson.M{"description": re}}
	}

	fields := map[string]string{}
	if from := get("startDate"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			fields["startDate"] = "data inválida, use AAAA-MM-DD"
		} else {
			filter["startDate"] = bson.M{"$gte": primitive.NewDateTimeFromTime(t)}
		}
	}
	if to := get("endDate"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			fields["endDate"] = "data inválida, use AAAA-MM-DD"
		} else {
			// inclusive of the whole day
			filter["endDate"] = bson.M{"$lt": primitive.NewDateTimeFromTime(t.Add(24 * time.Hour))}
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("dados inválidos", fields)
	}
	return filter, nil
}

func (a Action) list(w http.ResponseWriter, r *http.Request, filter bson.M, sort bson.D) {
	paginate := databases.ParsePaginate(r.URL.Query().Get("limit"), r.URL.Query().Get("page"))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := a.DB.CountDocuments(ctx, filter)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to count actions", err))
		return
	}
	actions, err := a.DB.Find(ctx, filter, paginate.FindOptions(sort))
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to get actions", err))
		return
	}
	if actions == nil {
		actions = []models.Action{}
	}

	api.WriteJSON(w, http.StatusOK, ListResponse{Data: actions, Pagination: paginate.Pagination(total)})
}

// ActionsHandler lists the public, open actions
func (a Action) ActionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := ActionFilter(r.URL.Query())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	filter["status"] = models.ActionStatusActive

	a.list(w, r, filter, bson.D{{Key: "startDate", Value: 1}})
}

// OngActionsHandler lists every action of the calling ONG, any status
func (a Action) OngActionsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	filter, err := ActionFilter(r.URL.Query())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	filter["ong"] = caller.ID
	if err := statusFilter(filter, r.URL.Query().Get("status"), func(s string) bool { return models.ActionStatus(s).Valid() }); err != nil {
		api.WriteError(w, err)
		return
	}

	a.list(w, r, filter, bson.D{{Key: "createdAt", Value: -1}})
}

// ActionByIDHandler returns one action
func (a Action) ActionByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	action, err := a.find(ctx, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, action)
}

// CreateActionHandler publishes a new action of the calling ONG
func (a Action) CreateActionHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	var req models.CreateActionRequest
	if !decode(w, r, a.V, &req) {
		return
	}
	status := req.Status
	if status == "" {
		status = models.ActionStatusDraft
	}

	now := primitive.NewDateTimeFromTime(clock(a.now))
	action := models.Action{
		ID:            primitive.NewObjectID(),
		Ong:           caller.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Area:          req.Area,
		Tags:          req.Tags,
		Requirements:  req.Requirements,
		Location:      req.Location.ToLocation(),
		StartDate:     primitive.NewDateTimeFromTime(req.StartDate),
		EndDate:       primitive.NewDateTimeFromTime(req.EndDate),
		MaxVolunteers: req.MaxVolunteers,
		Status:        status,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := a.DB.InsertOne(ctx, action); err != nil {
		api.WriteError(w, apperrors.Internal("failed to create action", err))
		return
	}
	api.WriteJSON(w, http.StatusCreated, action)
}

// UpdateActionHandler edits the fields present in the body. Actions already
// running or finished cannot be edited and capacity never drops below the
// slots already taken.
func (a Action) UpdateActionHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}
	var req models.UpdateActionRequest
	if !decode(w, r, a.V, &req) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	action, err := a.find(ctx, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if !lifecycle.OwnsAction(caller, action) {
		api.WriteError(w, apperrors.Forbidden(lifecycle.MsgActionForbidden))
		return
	}
	if !action.IsEditable() {
		api.WriteError(w, apperrors.BadRequest("ação em andamento ou concluída não pode ser editada"))
		return
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Area != nil {
		set["area"] = *req.Area
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.Requirements != nil {
		set["requirements"] = req.Requirements
	}
	if req.Location != nil {
		set["location"] = req.Location.ToLocation()
	}

	start, end := action.StartDate.Time(), action.EndDate.Time()
	if req.StartDate != nil {
		start = *req.StartDate
		set["startDate"] = primitive.NewDateTimeFromTime(start)
	}
	if req.EndDate != nil {
		end = *req.EndDate
		set["endDate"] = primitive.NewDateTimeFromTime(end)
	}
	if end.Before(start) {
		api.WriteError(w, apperrors.Validation("dados inválidos", map[string]string{"endDate": "deve ser posterior ou igual à data de início"}))
		return
	}

	filter := bson.M{"_id": action.ID, "status": action.Status}
	if req.MaxVolunteers != nil {
		if *req.MaxVolunteers < action.CurrentVolunteers {
			api.WriteError(w, apperrors.BadRequest(fmt.Sprintf("o número máximo de voluntários não pode ser menor que %d", action.CurrentVolunteers)))
			return
		}
		set["maxVolunteers"] = *req.MaxVolunteers
		// a slot taken meanwhile must not end up above capacity
		filter["currentVolunteers"] = bson.M{"$lte": *req.MaxVolunteers}
	}
	if len(set) == 0 {
		api.WriteJSON(w, http.StatusOK, action)
		return
	}
	set["updatedAt"] = primitive.NewDateTimeFromTime(clock(a.now))

	res, err := a.DB.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to update action", err))
		return
	}
	if res.MatchedCount == 0 {
		api.WriteError(w, apperrors.Conflict("a ação foi alterada por outra requisição"))
		return
	}

	updated, err := a.find(ctx, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

// ActionStatusHandler moves the action to the requested status
func (a Action) ActionStatusHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}
	var req models.ActionStatusRequest
	if !decode(w, r, a.V, &req) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	action, err := a.Manager.ChangeActionStatus(ctx, caller, id, req.Status)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "status da ação atualizado", Data: action})
}

// DeleteActionHandler soft deletes an action without approved volunteers
func (a Action) DeleteActionHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	action, err := a.find(ctx, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if !lifecycle.OwnsAction(caller, action) {
		api.WriteError(w, apperrors.Forbidden(lifecycle.MsgActionForbidden))
		return
	}

	approved, err := a.ADB.CountDocuments(ctx, bson.M{"action": action.ID, "status": models.ApplicationStatusApproved})
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to count approved applications", err))
		return
	}
	if approved > 0 {
		api.WriteError(w, apperrors.BadRequest("não é possível excluir uma ação com voluntários aprovados"))
		return
	}

	now := primitive.NewDateTimeFromTime(clock(a.now))
	if _, err := a.DB.UpdateOne(ctx, bson.M{"_id": action.ID}, bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}}); err != nil {
		api.WriteError(w, apperrors.Internal("failed to delete action", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "ação removida com sucesso"})
}

// find loads an action that has not been deleted
func (a Action) find(ctx context.Context, id primitive.ObjectID) (*models.Action, error) {
	action, err := a.DB.FindOne(ctx, bson.M{"_id": id, "isActive": true})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound(lifecycle.MsgActionNotFound)
		}
		return nil, apperrors.Internal("failed to get action", err)
	}
	return action, nil
}
