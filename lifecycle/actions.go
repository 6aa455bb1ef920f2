package lifecycle

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

// MsgActionForbidden is returned when a caller does not own the action
const MsgActionForbidden = "você não tem permissão para alterar esta ação"

// OwnsAction reports whether actor may manage the action
func OwnsAction(actor Actor, action *models.Action) bool {
	return actor.IsAdmin() || (actor.Role == models.RoleOng && actor.ID == action.Ong)
}

// ChangeActionStatus moves an action along draft → active → in_progress →
// completed, or to cancelled from any non-final status. Volunteers holding a
// live application are told when the action is cancelled.
func (m *Manager) ChangeActionStatus(ctx context.Context, actor Actor, actionID primitive.ObjectID, to models.ActionStatus) (*models.Action, error) {
	action, err := m.actions.FindOne(ctx, bson.M{"_id": actionID, "isActive": true})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgActionNotFound)
		}
		return nil, apperrors.Internal("failed to get action", err)
	}
	if !OwnsAction(actor, action) {
		return nil, apperrors.Forbidden(MsgActionForbidden)
	}

	from := action.Status
	if !CanTransitionAction(from, to) {
		return nil, apperrors.Conflict(fmt.Sprintf("transição inválida: %s → %s", from, to))
	}

	now := primitive.NewDateTimeFromTime(m.now())
	res, err := m.actions.UpdateOne(ctx,
		bson.M{"_id": action.ID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": now}})
	if err != nil {
		return nil, apperrors.Internal("failed to update action status", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.Conflict("a ação foi alterada por outra requisição")
	}

	action.Status = to
	action.UpdatedAt = now

	if to == models.ActionStatusCancelled {
		m.notifyCancelled(ctx, action)
	}
	return action, nil
}

func (m *Manager) notifyCancelled(ctx context.Context, action *models.Action) {
	applications, err := m.applications.Find(ctx, bson.M{
		"action": action.ID,
		"status": bson.M{"$in": bson.A{models.ApplicationStatusPending, models.ApplicationStatusApproved}},
	})
	if err != nil {
		zap.S().Errorw("failed to list applications of cancelled action",
			"action", action.ID.Hex(),
			"error", err)
		return
	}

	for i := range applications {
		m.notifier.Notify(ctx, Event{
			Recipient:   models.VolunteerRecipient(applications[i].Volunteer),
			Type:        models.NotificationActionCancelled,
			Title:       "Ação cancelada",
			Message:     fmt.Sprintf("A ação \"%s\" foi cancelada pela organização", action.Title),
			ActionID:    action.ID,
			ActionTitle: action.Title,
			Application: &applications[i],
		})
	}
}

// CompleteExpiredActions marks as completed every active or in progress
// action whose end date has passed. It returns how many were changed.
func (m *Manager) CompleteExpiredActions(ctx context.Context) (int64, error) {
	now := primitive.NewDateTimeFromTime(m.now())
	res, err := m.actions.UpdateMany(ctx,
		bson.M{
			"isActive": true,
			"status":   bson.M{"$in": bson.A{models.ActionStatusActive, models.ActionStatusInProgress}},
			"endDate":  bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{"status": models.ActionStatusCompleted, "updatedAt": now}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
