package databases

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes every collection relies on. The unique
// index on applications is what prevents a volunteer from applying twice to
// the same action, so startup must fail if it cannot be built.
func EnsureIndexes(ctx context.Context, db DatabaseHelper) error {
	var problems []string

	ensure := func(coll string, models []mongo.IndexModel) {
		names, err := db.Collection(coll).CreateIndexes(ctx, models)
		if err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		zap.S().Debugw("indexes ensured", "collection", coll, "indexes", names)
	}

	ensure(applicationName, applicationIndexes())
	ensure(actionName, actionIndexes())
	ensure(notificationName, notificationIndexes())
	ensure(ongName, emailIndexes("uniq_ong_email"))
	ensure(volunteerName, emailIndexes("uniq_user_email"))

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func applicationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "volunteer", Value: 1}, {Key: "action", Value: 1}},
			Options: options.Index().SetName("uniq_volunteer_action").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "ong", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_ong_status"),
		},
		{
			Keys:    bson.D{{Key: "action", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_action_status"),
		},
	}
}

func actionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "isActive", Value: 1}, {Key: "startDate", Value: 1}},
			Options: options.Index().SetName("idx_status_active_start"),
		},
		{
			Keys:    bson.D{{Key: "ong", Value: 1}},
			Options: options.Index().SetName("idx_ong"),
		},
	}
}

func notificationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "recipient.kind", Value: 1},
				{Key: "recipient.id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_recipient_status_created"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
		},
	}
}

func emailIndexes(name string) []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(name).SetUnique(true),
		},
	}
}
