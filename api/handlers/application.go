package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/lifecycle"
	"github.com/conectaong/voluntariado-api/models"
)

// Application exported for testing purposes
type Application struct {
	DB      databases.ApplicationDatabase
	ActDB   databases.ActionDatabase
	Manager *lifecycle.Manager
	V       *validation.Validator
}

var transitionMessages = map[models.ApplicationStatus]string{
	models.ApplicationStatusApproved:  "candidatura aprovada com sucesso",
	models.ApplicationStatusRejected:  "candidatura rejeitada",
	models.ApplicationStatusWithdrawn: "candidatura cancelada",
	models.ApplicationStatusCompleted: "participação concluída",
}

// ApplyHandler creates an application of the calling volunteer to the action in the path
func (a Application) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	actionID, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}
	var req models.ApplyRequest
	if !decode(w, r, a.V, &req) {
		return
	}

	a.apply(w, r, caller, actionID, lifecycle.ApplyInput{Notes: req.Notes})
}

// CreateApplicationHandler creates an application for the action named in the body
func (a Application) CreateApplicationHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	var req models.CreateApplicationRequest
	if !decode(w, r, a.V, &req) {
		return
	}
	// validated by the objectid tag
	actionID, _ := primitive.ObjectIDFromHex(req.Action)

	a.apply(w, r, caller, actionID, lifecycle.ApplyInput{
		Message:      req.Message,
		Skills:       req.Skills,
		Availability: req.Availability,
	})
}

func (a Application) apply(w http.ResponseWriter, r *http.Request, caller lifecycle.Actor, actionID primitive.ObjectID, in lifecycle.ApplyInput) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	application, err := a.Manager.Apply(ctx, caller, actionID, in)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "candidatura enviada com sucesso", Data: application})
}

// ActionApplicationsHandler lists the applications of an action for its owner
func (a Application) ActionApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	actionID, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	action, err := a.ActDB.FindOne(ctx, bson.M{"_id": actionID})
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(lifecycle.MsgActionNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get action", err))
		return
	}
	if !lifecycle.OwnsAction(caller, action) {
		api.WriteError(w, apperrors.Forbidden(lifecycle.MsgActionForbidden))
		return
	}

	a.list(w, r, bson.M{"action": action.ID})
}

// ActionApplicationStatusHandler changes an application through the status
// named in the body: approved or rejected by the ONG, withdrawn by the volunteer
func (a Application) ActionApplicationStatusHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	actionID, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}
	applicationID, ok := objectIDVar(w, r, "applicationId")
	if !ok {
		return
	}
	var req models.ApplicationStatusRequest
	if !decode(w, r, a.V, &req) {
		return
	}
	reason := req.RejectionReason
	if req.Status == models.ApplicationStatusWithdrawn {
		reason = req.Notes
	}
	t, ok := lifecycle.FromStatus(req.Status, req.Notes, reason)
	if !ok {
		api.WriteError(w, apperrors.Validation("dados inválidos", map[string]string{"status": "status inválido"}))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// the application must belong to the action in the path
	if _, err := a.DB.FindOne(ctx, bson.M{"_id": applicationID, "action": actionID}); err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(lifecycle.MsgApplicationNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get application", err))
		return
	}

	a.transition(w, r, caller, applicationID, t)
}

// ApproveHandler approves a pending application
func (a Application) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveRequest
	a.transitionFromBody(w, r, &req, func() lifecycle.Transition { return lifecycle.Approve{Notes: req.Notes} })
}

// RejectHandler rejects a pending application
func (a Application) RejectHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RejectRequest
	a.transitionFromBody(w, r, &req, func() lifecycle.Transition { return lifecycle.Reject{Reason: req.RejectionReason} })
}

// WithdrawHandler withdraws the caller's own application
func (a Application) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req models.WithdrawRequest
	a.transitionFromBody(w, r, &req, func() lifecycle.Transition { return lifecycle.Withdraw{Reason: req.Reason} })
}

// CompleteHandler marks the participation of an approved volunteer as done
func (a Application) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteRequest
	a.transitionFromBody(w, r, &req, func() lifecycle.Transition { return lifecycle.Complete{Feedback: req.Feedback} })
}

// transitionFromBody decodes the body into req, then applies the transition
// build returns
func (a Application) transitionFromBody(w http.ResponseWriter, r *http.Request, req interface{}, build func() lifecycle.Transition) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	applicationID, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}
	if !decode(w, r, a.V, req) {
		return
	}

	a.transition(w, r, caller, applicationID, build())
}

func (a Application) transition(w http.ResponseWriter, r *http.Request, caller lifecycle.Actor, applicationID primitive.ObjectID, t lifecycle.Transition) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	application, err := a.Manager.Transition(ctx, caller, applicationID, t)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, MessageResponse{Message: transitionMessages[t.Target()], Data: application})
}

// MyApplicationsHandler lists the applications of the calling volunteer
func (a Application) MyApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	a.list(w, r, bson.M{"volunteer": caller.ID})
}

// OngApplicationsHandler lists the applications received by the calling ONG
func (a Application) OngApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	filter := bson.M{"ong": caller.ID}
	if raw := r.URL.Query().Get("action"); raw != "" {
		actionID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			api.WriteError(w, apperrors.Validation("dados inválidos", map[string]string{"action": "identificador inválido"}))
			return
		}
		filter["action"] = actionID
	}
	a.list(w, r, filter)
}

func (a Application) list(w http.ResponseWriter, r *http.Request, filter bson.M) {
	if err := statusFilter(filter, r.URL.Query().Get("status"), func(s string) bool { return models.ApplicationStatus(s).Valid() }); err != nil {
		api.WriteError(w, err)
		return
	}
	paginate := databases.ParsePaginate(r.URL.Query().Get("limit"), r.URL.Query().Get("page"))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := a.DB.CountDocuments(ctx, filter)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to count applications", err))
		return
	}
	applications, err := a.DB.Find(ctx, filter, paginate.FindOptions(bson.D{{Key: "appliedAt", Value: -1}}))
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to get applications", err))
		return
	}
	if applications == nil {
		applications = []models.Application{}
	}

	api.WriteJSON(w, http.StatusOK, ListResponse{Data: applications, Pagination: paginate.Pagination(total)})
}

// ApplicationByIDHandler returns one application to its volunteer, its ONG or an admin
func (a Application) ApplicationByIDHandler(w http.ResponseWriter, r *http.Request) {
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

	application, err := a.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(lifecycle.MsgApplicationNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get application", err))
		return
	}
	if !lifecycle.CanView(caller, application) {
		api.WriteError(w, apperrors.Forbidden(lifecycle.MsgForbidden))
		return
	}
	api.WriteJSON(w, http.StatusOK, application)
}

// MarkNotificationsReadHandler flags the embedded notifications of an application as read
func (a Application) MarkNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
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

	application, err := a.Manager.MarkNotificationsAsRead(ctx, caller, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "notificações marcadas como lidas", Data: application})
}
