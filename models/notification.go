package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NotificationType enumerates the events surfaced in the inbox
type NotificationType string

// Notification types
const (
	NotificationApplicationReceived  NotificationType = "application_received"
	NotificationApplicationApproved  NotificationType = "application_approved"
	NotificationApplicationRejected  NotificationType = "application_rejected"
	NotificationApplicationWithdrawn NotificationType = "application_withdrawn"
	NotificationApplicationCompleted NotificationType = "application_completed"
	NotificationActionUpdated        NotificationType = "action_updated"
	NotificationActionCancelled      NotificationType = "action_cancelled"
	NotificationSystem               NotificationType = "system"
)

// NotificationStatus is the inbox state of a notification
type NotificationStatus string

// Notification statuses
const (
	NotificationStatusUnread   NotificationStatus = "unread"
	NotificationStatusRead     NotificationStatus = "read"
	NotificationStatusArchived NotificationStatus = "archived"
)

// Valid reports whether s is a known notification status
func (s NotificationStatus) Valid() bool {
	return s == NotificationStatusUnread || s == NotificationStatusRead || s == NotificationStatusArchived
}

// RecipientKind tells which collection a recipient id points to
type RecipientKind string

// Recipient kinds
const (
	RecipientVolunteer RecipientKind = "volunteer"
	RecipientOng       RecipientKind = "ong"
)

// Recipient identifies the owner of a notification, either a volunteer or an ONG
type Recipient struct {
	Kind RecipientKind      `json:"kind" bson:"kind"`
	ID   primitive.ObjectID `json:"id" bson:"id"`
}

// VolunteerRecipient builds a recipient for a volunteer
func VolunteerRecipient(id primitive.ObjectID) Recipient {
	return Recipient{Kind: RecipientVolunteer, ID: id}
}

// OngRecipient builds a recipient for an ONG
func OngRecipient(id primitive.ObjectID) Recipient {
	return Recipient{Kind: RecipientOng, ID: id}
}

// Key returns a stable string key, used to index live connections
func (r Recipient) Key() string {
	return string(r.Kind) + ":" + r.ID.Hex()
}

// Notification holds the structure for the notifications collection in mongo
type Notification struct {
	ID                 primitive.ObjectID  `json:"_id" bson:"_id"`
	Recipient          Recipient           `json:"recipient" bson:"recipient"`
	Type               NotificationType    `json:"type" bson:"type"`
	Title              string              `json:"title" bson:"title"`
	Message            string              `json:"message" bson:"message"`
	Status             NotificationStatus  `json:"status" bson:"status"`
	RelatedAction      *primitive.ObjectID `json:"relatedAction,omitempty" bson:"relatedAction,omitempty"`
	RelatedApplication *primitive.ObjectID `json:"relatedApplication,omitempty" bson:"relatedApplication,omitempty"`
	ReadAt             *primitive.DateTime `json:"readAt,omitempty" bson:"readAt,omitempty"`
	ExpiresAt          primitive.DateTime  `json:"expiresAt" bson:"expiresAt"`
	CreatedAt          primitive.DateTime  `json:"createdAt" bson:"createdAt"`
}
