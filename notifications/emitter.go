// Package notifications delivers lifecycle events to their recipients: it
// stores them in the inbox, pushes them to live websocket clients and emails
// volunteers about decisions on their applications.
package notifications

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/lifecycle"
	"github.com/conectaong/voluntariado-api/models"
	templates "github.com/conectaong/voluntariado-api/templates/html"
)

const deliveryTimeout = 15 * time.Second

// Emitter implements lifecycle.Notifier. Delivery runs in the background and
// failures are only logged.
type Emitter struct {
	notifications databases.NotificationDatabase
	volunteers    databases.VolunteerDatabase
	hub           *Hub
	mailer        Mailer
	ttl           time.Duration
	baseURL       string
	now           func() time.Time
	wg            sync.WaitGroup
}

// NewEmitter wires the inbox, the hub and the mailer. hub and mailer may be
// nil; a nil mailer disables email.
func NewEmitter(notifications databases.NotificationDatabase, volunteers databases.VolunteerDatabase, hub *Hub, mailer Mailer, ttl time.Duration, baseURL string) *Emitter {
	e := &Emitter{
		notifications: notifications,
		volunteers:    volunteers,
		hub:           hub,
		mailer:        mailer,
		ttl:           ttl,
		baseURL:       baseURL,
		now:           time.Now,
	}
	return e
}

// Notify hands the event to a goroutine and returns immediately
func (e *Emitter) Notify(_ context.Context, event lifecycle.Event) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("panic while delivering notification", "type", event.Type, "panic", r)
			}
		}()

		// the request context is gone by the time this runs
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		e.deliver(ctx, event)
	}()
}

// Wait blocks until every pending delivery has finished
func (e *Emitter) Wait() {
	e.wg.Wait()
}

func (e *Emitter) deliver(ctx context.Context, event lifecycle.Event) {
	now := e.now()
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Recipient: event.Recipient,
		Type:      event.Type,
		Title:     event.Title,
		Message:   event.Message,
		Status:    models.NotificationStatusUnread,
		ExpiresAt: primitive.NewDateTimeFromTime(now.Add(e.ttl)),
		CreatedAt: primitive.NewDateTimeFromTime(now),
	}
	if !event.ActionID.IsZero() {
		id := event.ActionID
		notification.RelatedAction = &id
	}
	if event.Application != nil {
		id := event.Application.ID
		notification.RelatedApplication = &id
	}

	if _, err := e.notifications.InsertOne(ctx, notification); err != nil {
		zap.S().Errorw("failed to store notification",
			"recipient", event.Recipient.Key(),
			"type", event.Type,
			"error", err)
	} else if e.hub != nil {
		e.hub.Send(event.Recipient.Key(), EventNewNotification, notification)
	}

	if e.mailer != nil && emailed(event.Type) && event.Recipient.Kind == models.RecipientVolunteer {
		e.email(ctx, event)
	}
}

func emailed(t models.NotificationType) bool {
	switch t {
	case models.NotificationApplicationApproved, models.NotificationApplicationRejected,
		models.NotificationApplicationCompleted, models.NotificationActionCancelled:
		return true
	}
	return false
}

func (e *Emitter) email(ctx context.Context, event lifecycle.Event) {
	volunteer, err := e.volunteers.FindOne(ctx, bson.M{"_id": event.Recipient.ID})
	if err != nil {
		zap.S().Errorw("failed to load volunteer for email", "volunteer", event.Recipient.ID.Hex(), "error", err)
		return
	}

	app := event.Application
	if app == nil {
		app = &models.Application{}
	}

	var html string
	switch event.Type {
	case models.NotificationApplicationApproved:
		html = templates.RenderApplicationApprovedEmail(volunteer.Name, event.ActionTitle, app.Notes, e.baseURL)
	case models.NotificationApplicationRejected:
		html = templates.RenderApplicationRejectedEmail(volunteer.Name, event.ActionTitle, app.RejectionReason, e.baseURL)
	case models.NotificationApplicationCompleted:
		html = templates.RenderApplicationCompletedEmail(volunteer.Name, event.ActionTitle, app.Feedback, e.baseURL)
	default:
		html = templates.RenderGenericEmail(event.Title, event.Message, e.baseURL)
	}

	err = e.mailer.Send(ctx, Mail{
		ToName:  volunteer.Name,
		ToEmail: volunteer.Email,
		Subject: event.Title,
		Text:    event.Message,
		HTML:    html,
	})
	if err != nil {
		zap.S().Errorw("failed to send notification email", "volunteer", volunteer.ID.Hex(), "type", event.Type, "error", err)
		return
	}
	zap.S().Infow("notification email sent", "volunteer", volunteer.ID.Hex(), "type", event.Type)
}
