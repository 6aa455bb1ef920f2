package databases

// go generate: mockery --name VolunteerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/conectaong/voluntariado-api/models"
)

const volunteerName = "users"

// VolunteerDatabase contains the methods to use with the user database, which
// stores volunteers and admins
type VolunteerDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Volunteer, error)
	InsertOne(ctx context.Context, volunteer models.Volunteer) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type volunteerDatabase struct {
	db DatabaseHelper
}

// NewVolunteerDatabase initializes a new instance of volunteer database with the provided db connection
func NewVolunteerDatabase(db DatabaseHelper) VolunteerDatabase {
	return &volunteerDatabase{
		db: db,
	}
}

func (v *volunteerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Volunteer, error) {
	volunteer := &models.Volunteer{}
	err := v.db.Collection(volunteerName).FindOne(ctx, filter, opts...).Decode(&volunteer)
	if err != nil {
		return nil, err
	}
	return volunteer, nil
}

func (v *volunteerDatabase) InsertOne(ctx context.Context, volunteer models.Volunteer) (InsertOneResultHelper, error) {
	return v.db.Collection(volunteerName).InsertOne(ctx, volunteer)
}

func (v *volunteerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return v.db.Collection(volunteerName).UpdateOne(ctx, filter, update, opts...)
}

func (v *volunteerDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return v.db.Collection(volunteerName).CountDocuments(ctx, filter, opts...)
}
