package databases

// go generate: mockery --name OngDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/conectaong/voluntariado-api/models"
)

const ongName = "ongs"

// OngDatabase contains the methods to use with the ong database
type OngDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Ong, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Ong, error)
	InsertOne(ctx context.Context, ong models.Ong) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type ongDatabase struct {
	db DatabaseHelper
}

// NewOngDatabase initializes a new instance of ong database with the provided db connection
func NewOngDatabase(db DatabaseHelper) OngDatabase {
	return &ongDatabase{
		db: db,
	}
}

func (o *ongDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Ong, error) {
	ong := &models.Ong{}
	err := o.db.Collection(ongName).FindOne(ctx, filter, opts...).Decode(&ong)
	if err != nil {
		return nil, err
	}
	return ong, nil
}

func (o *ongDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Ong, error) {
	var ongs []models.Ong
	cur, err := o.db.Collection(ongName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &ongs)
	if err != nil {
		return nil, err
	}
	return ongs, nil
}

func (o *ongDatabase) InsertOne(ctx context.Context, ong models.Ong) (InsertOneResultHelper, error) {
	return o.db.Collection(ongName).InsertOne(ctx, ong)
}

func (o *ongDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return o.db.Collection(ongName).UpdateOne(ctx, filter, update, opts...)
}

func (o *ongDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return o.db.Collection(ongName).CountDocuments(ctx, filter, opts...)
}
