// Package lifecycle owns the application state machine and the capacity
// counters of actions.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

const (
	maxReasonLength = 500
	releaseTimeout  = 5 * time.Second
)

// Error messages shown to clients
const (
	MsgActionNotFound      = "ação não encontrada"
	MsgApplicationNotFound = "candidatura não encontrada"
	MsgAlreadyApplied      = "você já se candidatou para esta ação"
	MsgNotAccepting        = "ação não está aceitando inscrições"
	MsgFull                = "vagas esgotadas"
	MsgForbidden           = "você não tem permissão para alterar esta candidatura"
	MsgOnlyVolunteers      = "apenas voluntários podem se candidatar"
	MsgConcurrentChange    = "a candidatura foi alterada por outra requisição"
	MsgReasonRequired      = "motivo da rejeição é obrigatório"
)

// Actor is the authenticated caller
type Actor struct {
	ID   primitive.ObjectID
	Role models.Role
}

// IsAdmin reports whether the actor may act on behalf of any owner
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// ApplyInput holds the optional fields of a new application
type ApplyInput struct {
	Message      string
	Notes        string
	Skills       []string
	Availability string
}

// Manager applies lifecycle changes to applications and keeps the action
// counters in step with them
type Manager struct {
	actions      databases.ActionDatabase
	applications databases.ApplicationDatabase
	notifier     Notifier
	now          func() time.Time
}

// NewManager returns a Manager. A nil notifier drops events.
func NewManager(actions databases.ActionDatabase, applications databases.ApplicationDatabase, notifier Notifier) *Manager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Manager{
		actions:      actions,
		applications: applications,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Apply creates a pending application of actor to the action and takes one
// of its slots.
func (m *Manager) Apply(ctx context.Context, actor Actor, actionID primitive.ObjectID, in ApplyInput) (*models.Application, error) {
	if actor.Role != models.RoleVolunteer {
		return nil, apperrors.Forbidden(MsgOnlyVolunteers)
	}

	existing, err := m.applications.CountDocuments(ctx, bson.M{"volunteer": actor.ID, "action": actionID})
	if err != nil {
		return nil, apperrors.Internal("failed to check existing application", err)
	}
	if existing > 0 {
		return nil, apperrors.Conflict(MsgAlreadyApplied)
	}

	action, err := m.actions.ReserveSlot(ctx, actionID)
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, m.explainRefusal(ctx, actionID)
		}
		return nil, apperrors.Internal("failed to reserve slot", err)
	}

	now := primitive.NewDateTimeFromTime(m.now())
	application := models.Application{
		ID:           primitive.NewObjectID(),
		Volunteer:    actor.ID,
		Action:       action.ID,
		Ong:          action.Ong,
		Status:       models.ApplicationStatusPending,
		Message:      in.Message,
		Notes:        in.Notes,
		Skills:       in.Skills,
		Availability: in.Availability,
		AppliedAt:    now,
		Notifications: []models.ApplicationNotification{{
			Type:      models.NotificationApplicationReceived,
			Message:   fmt.Sprintf("Candidatura enviada para a ação \"%s\"", action.Title),
			CreatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := m.applications.InsertOne(ctx, application); err != nil {
		m.releaseSlot(ctx, action.ID, false)
		if databases.IsDuplicate(err) {
			return nil, apperrors.Conflict(MsgAlreadyApplied)
		}
		return nil, apperrors.Internal("failed to create application", err)
	}

	m.notifier.Notify(ctx, Event{
		Recipient:   models.OngRecipient(action.Ong),
		Type:        models.NotificationApplicationReceived,
		Title:       "Nova candidatura",
		Message:     fmt.Sprintf("Nova candidatura recebida para a ação \"%s\"", action.Title),
		ActionID:    action.ID,
		ActionTitle: action.Title,
		Application: &application,
	})

	return &application, nil
}

// explainRefusal tells apart the reasons a slot or approval reservation
// matched nothing
func (m *Manager) explainRefusal(ctx context.Context, actionID primitive.ObjectID) error {
	action, err := m.actions.FindOne(ctx, bson.M{"_id": actionID})
	if err != nil {
		if databases.IsNotFound(err) {
			return apperrors.NotFound(MsgActionNotFound)
		}
		return apperrors.Internal("failed to get action", err)
	}
	if !action.IsActiveAction() {
		return apperrors.BadRequest(MsgNotAccepting)
	}
	return apperrors.BadRequest(MsgFull)
}

// Transition moves an application to the status t targets. The status write
// is conditional on the status that was read, so concurrent requests cannot
// both apply a transition and both adjust the counters.
func (m *Manager) Transition(ctx context.Context, actor Actor, applicationID primitive.ObjectID, t Transition) (*models.Application, error) {
	application, err := m.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !authorized(actor, application, t) {
		return nil, apperrors.Forbidden(MsgForbidden)
	}

	from, to := application.Status, t.Target()
	if !CanTransition(from, to) {
		return nil, apperrors.Conflict(fmt.Sprintf("transição inválida: %s → %s", from, to))
	}
	if r, ok := t.(Reject); ok {
		reason := strings.TrimSpace(r.Reason)
		if reason == "" {
			return nil, apperrors.Validation(MsgReasonRequired, map[string]string{"rejectionReason": "campo obrigatório"})
		}
		if utf8.RuneCountInString(reason) > maxReasonLength {
			return nil, apperrors.Validation("motivo da rejeição muito longo",
				map[string]string{"rejectionReason": fmt.Sprintf("deve ter no máximo %d caracteres", maxReasonLength)})
		}
		t = Reject{Reason: reason}
	}

	action, err := m.actions.FindOne(ctx, bson.M{"_id": application.Action})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgActionNotFound)
		}
		return nil, apperrors.Internal("failed to get action", err)
	}

	if _, ok := t.(Approve); ok {
		if _, err := m.actions.ReserveApproval(ctx, action.ID); err != nil {
			if databases.IsNotFound(err) {
				return nil, m.explainRefusal(ctx, action.ID)
			}
			return nil, apperrors.Internal("failed to reserve approval", err)
		}
	}

	now := primitive.NewDateTimeFromTime(m.now())
	set, entry, event := m.describe(t, application, action, now)

	filter := bson.M{"_id": application.ID, "status": from}
	update := bson.M{"$set": set, "$push": bson.M{"notifications": entry}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated, err := m.applications.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if _, ok := t.(Approve); ok {
			m.releaseApproval(ctx, action.ID)
		}
		if databases.IsNotFound(err) {
			return nil, apperrors.Conflict(MsgConcurrentChange)
		}
		return nil, apperrors.Internal("failed to update application", err)
	}

	switch to {
	case models.ApplicationStatusRejected:
		m.releaseSlot(ctx, action.ID, false)
	case models.ApplicationStatusWithdrawn:
		m.releaseSlot(ctx, action.ID, from == models.ApplicationStatusApproved)
	}

	event.Application = updated
	m.notifier.Notify(ctx, event)

	return updated, nil
}

// describe builds the field updates, the embedded notification and the
// standalone event of a transition
func (m *Manager) describe(t Transition, app *models.Application, action *models.Action, now primitive.DateTime) (bson.M, models.ApplicationNotification, Event) {
	set := bson.M{
		"status":      t.Target(),
		"respondedAt": now,
		"updatedAt":   now,
	}
	event := Event{
		Recipient:   models.VolunteerRecipient(app.Volunteer),
		ActionID:    action.ID,
		ActionTitle: action.Title,
	}

	var msg string
	switch v := t.(type) {
	case Approve:
		set["approvedAt"] = now
		if v.Notes != "" {
			set["notes"] = v.Notes
		}
		msg = fmt.Sprintf("Sua candidatura para \"%s\" foi aprovada!", action.Title)
		event.Type, event.Title = models.NotificationApplicationApproved, "Candidatura aprovada"
	case Reject:
		set["rejectionReason"] = v.Reason
		msg = fmt.Sprintf("Sua candidatura para \"%s\" foi recusada. Motivo: %s", action.Title, v.Reason)
		event.Type, event.Title = models.NotificationApplicationRejected, "Candidatura recusada"
	case Withdraw:
		if v.Reason != "" {
			set["withdrawReason"] = v.Reason
		}
		msg = fmt.Sprintf("Candidatura para \"%s\" foi cancelada pelo voluntário", action.Title)
		event.Type, event.Title = models.NotificationApplicationWithdrawn, "Candidatura cancelada"
		event.Recipient = models.OngRecipient(app.Ong)
	case Complete:
		set["completedAt"] = now
		if v.Feedback != "" {
			set["feedback"] = v.Feedback
		}
		msg = fmt.Sprintf("Sua participação em \"%s\" foi concluída. Obrigado!", action.Title)
		event.Type, event.Title = models.NotificationApplicationCompleted, "Participação concluída"
	}
	event.Message = msg

	entry := models.ApplicationNotification{
		Type:      event.Type,
		Message:   msg,
		CreatedAt: now,
	}
	return set, entry, event
}

// MarkNotificationsAsRead flags every embedded notification of the
// application as read. Calling it again is a no-op.
func (m *Manager) MarkNotificationsAsRead(ctx context.Context, actor Actor, applicationID primitive.ObjectID) (*models.Application, error) {
	application, err := m.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !CanView(actor, application) {
		return nil, apperrors.Forbidden(MsgForbidden)
	}
	if len(application.Notifications) == 0 {
		return application, nil
	}

	filter := bson.M{"_id": application.ID, "notifications": bson.M{"$exists": true}}
	update := bson.M{"$set": bson.M{"notifications.$[].read": true}}
	if _, err := m.applications.UpdateOne(ctx, filter, update); err != nil {
		return nil, apperrors.Internal("failed to mark notifications as read", err)
	}

	for i := range application.Notifications {
		application.Notifications[i].Read = true
	}
	return application, nil
}

func (m *Manager) findApplication(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	application, err := m.applications.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgApplicationNotFound)
		}
		return nil, apperrors.Internal("failed to get application", err)
	}
	return application, nil
}

// detached returns a context for counter writes that must land even when
// the request context is already done
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
}

// releaseSlot runs after the application write already succeeded or
// failed for good, so a failure is logged and the request outcome stands
func (m *Manager) releaseSlot(ctx context.Context, actionID primitive.ObjectID, approved bool) {
	ctx, cancel := detached(ctx)
	defer cancel()
	if err := m.actions.ReleaseSlot(ctx, actionID, approved); err != nil {
		zap.S().Errorw("failed to release action slot",
			"action", actionID.Hex(),
			"approved", approved,
			"error", err)
	}
}

func (m *Manager) releaseApproval(ctx context.Context, actionID primitive.ObjectID) {
	ctx, cancel := detached(ctx)
	defer cancel()
	if err := m.actions.ReleaseApproval(ctx, actionID); err != nil {
		zap.S().Errorw("failed to release approved slot",
			"action", actionID.Hex(),
			"error", err)
	}
}

func authorized(actor Actor, app *models.Application, t Transition) bool {
	if actor.IsAdmin() {
		return true
	}
	if _, ok := t.(Withdraw); ok {
		return actor.Role == models.RoleVolunteer && actor.ID == app.Volunteer
	}
	return actor.Role == models.RoleOng && actor.ID == app.Ong
}

// CanView reports whether actor may read the application
func CanView(actor Actor, app *models.Application) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.Role == models.RoleVolunteer:
		return actor.ID == app.Volunteer
	case actor.Role == models.RoleOng:
		return actor.ID == app.Ong
	}
	return false
}
