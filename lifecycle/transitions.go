package lifecycle

import "github.com/conectaong/voluntariado-api/models"

var applicationTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationStatusPending:  {models.ApplicationStatusApproved, models.ApplicationStatusRejected, models.ApplicationStatusWithdrawn},
	models.ApplicationStatusApproved: {models.ApplicationStatusCompleted, models.ApplicationStatusWithdrawn},
}

var actionTransitions = map[models.ActionStatus][]models.ActionStatus{
	models.ActionStatusDraft:      {models.ActionStatusActive, models.ActionStatusCancelled},
	models.ActionStatusActive:     {models.ActionStatusInProgress, models.ActionStatusCancelled},
	models.ActionStatusInProgress: {models.ActionStatusCompleted, models.ActionStatusCancelled},
}

// CanTransition reports whether an application may move from one status to another
func CanTransition(from, to models.ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionAction reports whether an action may move from one status to another
func CanTransitionAction(from, to models.ActionStatus) bool {
	for _, s := range actionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition is a requested status change of an application. The set of
// variants is closed: Approve, Reject, Withdraw and Complete.
type Transition interface {
	Target() models.ApplicationStatus
	transition()
}

// Approve moves a pending application to approved
type Approve struct {
	Notes string
}

// Reject moves a pending application to rejected. Reason is mandatory.
type Reject struct {
	Reason string
}

// Withdraw is the volunteer giving up a pending or approved application
type Withdraw struct {
	Reason string
}

// Complete marks the participation of an approved volunteer as done
type Complete struct {
	Feedback string
}

func (Approve) Target() models.ApplicationStatus  { return models.ApplicationStatusApproved }
func (Reject) Target() models.ApplicationStatus   { return models.ApplicationStatusRejected }
func (Withdraw) Target() models.ApplicationStatus { return models.ApplicationStatusWithdrawn }
func (Complete) Target() models.ApplicationStatus { return models.ApplicationStatusCompleted }

func (Approve) transition()  {}
func (Reject) transition()   {}
func (Withdraw) transition() {}
func (Complete) transition() {}

// FromStatus builds the transition for the generic status endpoint, which
// only accepts approved, rejected and withdrawn.
func FromStatus(status models.ApplicationStatus, notes, reason string) (Transition, bool) {
	switch status {
	case models.ApplicationStatusApproved:
		return Approve{Notes: notes}, true
	case models.ApplicationStatusRejected:
		return Reject{Reason: reason}, true
	case models.ApplicationStatusWithdrawn:
		return Withdraw{Reason: reason}, true
	}
	return nil, false
}
