package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ActionStatus is the lifecycle status of a volunteering action
type ActionStatus string

// Action statuses. Only active actions accept applications.
const (
	ActionStatusDraft      ActionStatus = "draft"
	ActionStatusActive     ActionStatus = "active"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusCancelled  ActionStatus = "cancelled"
)

// Valid reports whether s is a known action status
func (s ActionStatus) Valid() bool {
	switch s {
	case ActionStatusDraft, ActionStatusActive, ActionStatusInProgress, ActionStatusCompleted, ActionStatusCancelled:
		return true
	}
	return false
}

// Action holds the structure for the actions collection in mongo
type Action struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id"`
	Ong                primitive.ObjectID `json:"ong" bson:"ong"`
	Title              string             `json:"title" bson:"title"`
	Description        string             `json:"description" bson:"description"`
	Area               string             `json:"area" bson:"area"`
	Tags               []string           `json:"tags" bson:"tags"`
	Requirements       []string           `json:"requirements" bson:"requirements"`
	Location           Location           `json:"location" bson:"location"`
	StartDate          primitive.DateTime `json:"startDate" bson:"startDate"`
	EndDate            primitive.DateTime `json:"endDate" bson:"endDate"`
	MaxVolunteers      int                `json:"maxVolunteers" bson:"maxVolunteers"`
	CurrentVolunteers  int                `json:"currentVolunteers" bson:"currentVolunteers"`   // pending + approved
	ApprovedVolunteers int                `json:"approvedVolunteers" bson:"approvedVolunteers"` // approved only
	Status             ActionStatus       `json:"status" bson:"status"`
	IsActive           bool               `json:"isActive" bson:"isActive"`
	CreatedAt          primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt          primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Location is the place an action happens or an organization is based
type Location struct {
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
}

// IsFull reports whether every slot of the action is taken
func (a Action) IsFull() bool {
	return a.CurrentVolunteers >= a.MaxVolunteers
}

// IsActiveAction reports whether the action accepts applications
func (a Action) IsActiveAction() bool {
	return a.IsActive && a.Status == ActionStatusActive
}

// IsEditable reports whether the owning ONG may still change the action
func (a Action) IsEditable() bool {
	return a.Status != ActionStatusInProgress && a.Status != ActionStatusCompleted
}

// OpenSlots returns how many volunteers can still apply
func (a Action) OpenSlots() int {
	if a.IsFull() {
		return 0
	}
	return a.MaxVolunteers - a.CurrentVolunteers
}
