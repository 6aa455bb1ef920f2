package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/lifecycle"
	"github.com/conectaong/voluntariado-api/models"
	"github.com/conectaong/voluntariado-api/notifications"
)

const msgNotificationNotFound = "notificação não encontrada"

// Notification exported for testing purposes
type Notification struct {
	DB    databases.NotificationDatabase
	Hub   *notifications.Hub
	Guard *api.Guard
	// Origins lists the websocket origins accepted; "*" accepts any
	Origins []string
	now     func() time.Time
}

// UnreadCountResponse is returned by the unread counter
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// recipientOf maps the caller to the recipient its notifications are stored under
func recipientOf(caller lifecycle.Actor) models.Recipient {
	if caller.Role == models.RoleOng {
		return models.OngRecipient(caller.ID)
	}
	return models.VolunteerRecipient(caller.ID)
}

func recipientFilter(caller lifecycle.Actor) bson.M {
	rcpt := recipientOf(caller)
	return bson.M{"recipient.kind": rcpt.Kind, "recipient.id": rcpt.ID}
}

// NotificationsHandler lists the inbox of the caller, newest first. Archived
// notifications are left out unless asked for by status.
func (n Notification) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	filter := recipientFilter(caller)
	status := r.URL.Query().Get("status")
	if err := statusFilter(filter, status, func(s string) bool { return models.NotificationStatus(s).Valid() }); err != nil {
		api.WriteError(w, err)
		return
	}
	if status == "" {
		filter["status"] = bson.M{"$ne": models.NotificationStatusArchived}
	}
	paginate := databases.ParsePaginate(r.URL.Query().Get("limit"), r.URL.Query().Get("page"))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := n.DB.CountDocuments(ctx, filter)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to count notifications", err))
		return
	}
	list, err := n.DB.Find(ctx, filter, paginate.FindOptions(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to get notifications", err))
		return
	}
	if list == nil {
		list = []models.Notification{}
	}

	api.WriteJSON(w, http.StatusOK, ListResponse{Data: list, Pagination: paginate.Pagination(total)})
}

// UnreadCountHandler returns how many unread notifications the caller has
func (n Notification) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	filter := recipientFilter(caller)
	filter["status"] = models.NotificationStatusUnread

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := n.DB.CountDocuments(ctx, filter)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to count notifications", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkReadHandler marks one notification of the caller as read
func (n Notification) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	now := primitive.NewDateTimeFromTime(clock(n.now))
	n.updateOne(w, r,
		bson.M{"status": models.NotificationStatusUnread},
		bson.M{"$set": bson.M{"status": models.NotificationStatusRead, "readAt": now}})
}

// ArchiveHandler archives one notification of the caller
func (n Notification) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	n.updateOne(w, r,
		bson.M{"status": bson.M{"$ne": models.NotificationStatusArchived}},
		bson.M{"$set": bson.M{"status": models.NotificationStatusArchived}})
}

// updateOne applies update to the notification in the path when it belongs to
// the caller. A notification already in the target state is returned as is.
func (n Notification) updateOne(w http.ResponseWriter, r *http.Request, guard bson.M, update bson.M) {
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

	filter := recipientFilter(caller)
	filter["_id"] = id
	for k, v := range guard {
		filter[k] = v
	}
	if _, err := n.DB.UpdateOne(ctx, filter, update); err != nil {
		api.WriteError(w, apperrors.Internal("failed to update notification", err))
		return
	}

	owned := recipientFilter(caller)
	owned["_id"] = id
	notification, err := n.DB.FindOne(ctx, owned)
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound(msgNotificationNotFound))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get notification", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, notification)
}

// MarkAllReadHandler marks every unread notification of the caller as read
func (n Notification) MarkAllReadHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	filter := recipientFilter(caller)
	filter["status"] = models.NotificationStatusUnread
	now := primitive.NewDateTimeFromTime(clock(n.now))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := n.DB.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.NotificationStatusRead, "readAt": now}})
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to update notifications", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "notificações marcadas como lidas",
		"modified": res.ModifiedCount,
	})
}

// DeleteNotificationHandler removes one notification of the caller
func (n Notification) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}
	id, ok := objectIDVar(w, r, "id")
	if !ok {
		return
	}
	filter := recipientFilter(caller)
	filter["_id"] = id

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := n.DB.DeleteOne(ctx, filter)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to delete notification", err))
		return
	}
	if deleted == 0 {
		api.WriteError(w, apperrors.NotFound(msgNotificationNotFound))
		return
	}
	api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "notificação removida"})
}

func (n Notification) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range n.Origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// WebSocketHandler upgrades the connection and streams new notifications of
// the caller. Browsers cannot set headers on websocket requests, so the token
// may come in the query string.
func (n Notification) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	var (
		p   api.Principal
		err error
	)
	if token := r.URL.Query().Get("token"); token != "" {
		p, err = n.Guard.AuthenticateToken(r, token)
	} else {
		p, err = n.Guard.Authenticate(r)
	}
	if err != nil {
		api.WriteError(w, apperrors.Unauthorized("não autorizado"))
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     n.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already wrote the error response
		zap.S().Debugw("websocket upgrade failed", "error", err)
		return
	}

	key := recipientOf(lifecycle.Actor{ID: p.ID, Role: p.Role}).Key()
	n.Hub.Serve(key, conn)
}
