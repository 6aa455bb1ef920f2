package databases

// go generate: mockery --name ActionDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/conectaong/voluntariado-api/models"
)

const actionName = "actions"

// ActionDatabase contains the methods to use with the action database.
//
// The capacity counters of an action are only ever changed through
// ReserveSlot, ReleaseSlot, ReserveApproval and ReleaseApproval. Each one is a
// single conditional update, so the check and the write happen atomically on
// the server.
type ActionDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Action, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Action, error)
	InsertOne(ctx context.Context, action models.Action) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	ReserveSlot(ctx context.Context, actionID primitive.ObjectID) (*models.Action, error)
	ReleaseSlot(ctx context.Context, actionID primitive.ObjectID, approved bool) error
	ReserveApproval(ctx context.Context, actionID primitive.ObjectID) (*models.Action, error)
	ReleaseApproval(ctx context.Context, actionID primitive.ObjectID) error
}

type actionDatabase struct {
	db DatabaseHelper
}

// NewActionDatabase initializes a new instance of action database with the provided db connection
func NewActionDatabase(db DatabaseHelper) ActionDatabase {
	return &actionDatabase{
		db: db,
	}
}

func (a *actionDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Action, error) {
	action := &models.Action{}
	err := a.db.Collection(actionName).FindOne(ctx, filter, opts...).Decode(&action)
	if err != nil {
		return nil, err
	}
	return action, nil
}

func (a *actionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Action, error) {
	var actions []models.Action
	cur, err := a.db.Collection(actionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &actions)
	if err != nil {
		return nil, err
	}
	return actions, nil
}

func (a *actionDatabase) InsertOne(ctx context.Context, action models.Action) (InsertOneResultHelper, error) {
	return a.db.Collection(actionName).InsertOne(ctx, action)
}

func (a *actionDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return a.db.Collection(actionName).UpdateOne(ctx, filter, update, opts...)
}

func (a *actionDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return a.db.Collection(actionName).UpdateMany(ctx, filter, update, opts...)
}

func (a *actionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(actionName).CountDocuments(ctx, filter, opts...)
}

// ReserveSlot takes one slot of an open, active action. It returns
// mongo.ErrNoDocuments when the action is missing, not accepting
// applications or full.
func (a *actionDatabase) ReserveSlot(ctx context.Context, actionID primitive.ObjectID) (*models.Action, error) {
	filter := bson.M{
		"_id":      actionID,
		"isActive": true,
		"status":   models.ActionStatusActive,
		"$expr":    bson.M{"$lt": bson.A{"$currentVolunteers", "$maxVolunteers"}},
	}
	update := bson.M{
		"$inc": bson.M{"currentVolunteers": 1},
		"$set": bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	}
	return a.findOneAndUpdate(ctx, filter, update)
}

// ReleaseSlot gives back a slot taken by ReserveSlot. When approved is true
// the approved counter is released in the same update. Counters never go
// below zero.
func (a *actionDatabase) ReleaseSlot(ctx context.Context, actionID primitive.ObjectID, approved bool) error {
	set := bson.M{
		"currentVolunteers": decrementClamped("$currentVolunteers"),
		"updatedAt":         primitive.NewDateTimeFromTime(time.Now()),
	}
	if approved {
		set["approvedVolunteers"] = decrementClamped("$approvedVolunteers")
	}
	_, err := a.db.Collection(actionName).UpdateOne(ctx, bson.M{"_id": actionID}, mongo.Pipeline{{{Key: "$set", Value: set}}})
	return err
}

// ReserveApproval counts one more approved volunteer as long as the action
// is open and has room for it. It returns mongo.ErrNoDocuments when the
// action is missing, not accepting applications or every slot is already
// approved.
func (a *actionDatabase) ReserveApproval(ctx context.Context, actionID primitive.ObjectID) (*models.Action, error) {
	filter := bson.M{
		"_id":      actionID,
		"isActive": true,
		"status":   models.ActionStatusActive,
		"$expr":    bson.M{"$lt": bson.A{bson.M{"$ifNull": bson.A{"$approvedVolunteers", 0}}, "$maxVolunteers"}},
	}
	update := bson.M{
		"$inc": bson.M{"approvedVolunteers": 1},
		"$set": bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	}
	return a.findOneAndUpdate(ctx, filter, update)
}

// ReleaseApproval undoes ReserveApproval
func (a *actionDatabase) ReleaseApproval(ctx context.Context, actionID primitive.ObjectID) error {
	set := bson.M{
		"approvedVolunteers": decrementClamped("$approvedVolunteers"),
		"updatedAt":          primitive.NewDateTimeFromTime(time.Now()),
	}
	_, err := a.db.Collection(actionName).UpdateOne(ctx, bson.M{"_id": actionID}, mongo.Pipeline{{{Key: "$set", Value: set}}})
	return err
}

func (a *actionDatabase) findOneAndUpdate(ctx context.Context, filter, update interface{}) (*models.Action, error) {
	action := &models.Action{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := a.db.Collection(actionName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&action)
	if err != nil {
		return nil, err
	}
	return action, nil
}

func decrementClamped(field string) bson.M {
	return bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{bson.M{"$ifNull": bson.A{field, 0}}, 1}}}}
}
