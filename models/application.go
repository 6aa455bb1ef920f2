package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ApplicationStatus is the status of a volunteer's application to an action
type ApplicationStatus string

// Application statuses. Rejected, withdrawn and completed are terminal.
const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

// Valid reports whether s is a known application status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected,
		ApplicationStatusWithdrawn, ApplicationStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusRejected || s == ApplicationStatusWithdrawn || s == ApplicationStatusCompleted
}

// Application holds the structure for the applications collection in mongo
type Application struct {
	ID              primitive.ObjectID        `json:"_id" bson:"_id"`
	Volunteer       primitive.ObjectID        `json:"volunteer" bson:"volunteer"`
	Action          primitive.ObjectID        `json:"action" bson:"action"`
	Ong             primitive.ObjectID        `json:"ong" bson:"ong"`
	Status          ApplicationStatus         `json:"status" bson:"status"`
	Message         string                    `json:"message,omitempty" bson:"message,omitempty"`
	Notes           string                    `json:"notes,omitempty" bson:"notes,omitempty"`
	Skills          []string                  `json:"skills,omitempty" bson:"skills,omitempty"`
	Availability    string                    `json:"availability,omitempty" bson:"availability,omitempty"`
	RejectionReason string                    `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	WithdrawReason  string                    `json:"withdrawReason,omitempty" bson:"withdrawReason,omitempty"`
	Feedback        string                    `json:"feedback,omitempty" bson:"feedback,omitempty"`
	AppliedAt       primitive.DateTime        `json:"appliedAt" bson:"appliedAt"`
	RespondedAt     *primitive.DateTime       `json:"respondedAt,omitempty" bson:"respondedAt,omitempty"`
	ApprovedAt      *primitive.DateTime       `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	CompletedAt     *primitive.DateTime       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Notifications   []ApplicationNotification `json:"notifications" bson:"notifications"`
	CreatedAt       primitive.DateTime        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       primitive.DateTime        `json:"updatedAt" bson:"updatedAt"`
}

// ApplicationNotification is an entry of the append-only notification list
// embedded in an application
type ApplicationNotification struct {
	Type      NotificationType   `json:"type" bson:"type"`
	Message   string             `json:"message" bson:"message"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// UnreadNotifications counts the embedded notifications not yet read
func (a Application) UnreadNotifications() int {
	n := 0
	for _, notification := range a.Notifications {
		if !notification.Read {
			n++
		}
	}
	return n
}
