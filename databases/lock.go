package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schedulerLockName = "scheduler_locks"

// SchedulerLockDatabase hands out named leases so a periodic job runs on one
// instance at a time
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type schedulerLockDatabase struct {
	db  DatabaseHelper
	now func() time.Time
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db:  db,
		now: time.Now,
	}
}

// TryAcquireLock takes the lease when it is free, expired or already held by
// owner. Losing the upsert race to another instance surfaces as a duplicate
// key on _id and is reported as not acquired.
func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := s.now()
	filter := bson.M{
		"_id": name,
		"$or": bson.A{
			bson.M{"owner": owner},
			bson.M{"expiresAt": bson.M{"$lt": primitive.NewDateTimeFromTime(now)}},
		},
	}
	update := bson.M{"$set": bson.M{
		"owner":      owner,
		"acquiredAt": primitive.NewDateTimeFromTime(now),
		"expiresAt":  primitive.NewDateTimeFromTime(now.Add(ttl)),
	}}

	_, err := s.db.Collection(schedulerLockName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if IsDuplicate(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReleaseLock drops the lease if owner still holds it
func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, owner string) error {
	_, err := s.db.Collection(schedulerLockName).DeleteOne(ctx, bson.M{"_id": name, "owner": owner})
	return err
}
