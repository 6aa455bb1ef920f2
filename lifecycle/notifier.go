package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/models"
)

// Event is a standalone notification produced by a lifecycle change
type Event struct {
	Recipient   models.Recipient
	Type        models.NotificationType
	Title       string
	Message     string
	ActionID    primitive.ObjectID
	ActionTitle string
	Application *models.Application
}

// Notifier delivers events outside the request. Implementations must not
// block and must not report failures back to the caller.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NopNotifier drops every event
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(context.Context, Event) {}
