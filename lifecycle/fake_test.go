package lifecycle

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

// store is an in-memory stand-in for the two collections. Every method holds
// the lock for its whole body, which gives the same per-document atomicity
// the database does.
type store struct {
	mu           sync.Mutex
	actions      map[primitive.ObjectID]*models.Action
	applications map[primitive.ObjectID]*models.Application
}

func newStore() *store {
	return &store{
		actions:      map[primitive.ObjectID]*models.Action{},
		applications: map[primitive.ObjectID]*models.Application{},
	}
}

func (s *store) addAction(max int) *models.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Action{
		ID:            primitive.NewObjectID(),
		Ong:           primitive.NewObjectID(),
		Title:         "Mutirão",
		MaxVolunteers: max,
		Status:        models.ActionStatusActive,
		IsActive:      true,
	}
	s.actions[a.ID] = a
	return a
}

func (s *store) action(id primitive.ObjectID) models.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.actions[id]
}

func (s *store) application(id primitive.ObjectID) models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.applications[id]
}

type fakeActions struct{ *store }

func (f fakeActions) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) (*models.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[filter.(bson.M)["_id"].(primitive.ObjectID)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *a
	return &cp, nil
}

func (f fakeActions) Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Action, error) {
	return nil, nil
}

func (f fakeActions) InsertOne(context.Context, models.Action) (databases.InsertOneResultHelper, error) {
	return nil, nil
}

func (f fakeActions) UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{}, nil
}

func (f fakeActions) UpdateMany(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{}, nil
}

func (f fakeActions) CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error) {
	return 0, nil
}

func (f fakeActions) ReserveSlot(_ context.Context, id primitive.ObjectID) (*models.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[id]
	if !ok || !a.IsActiveAction() || a.CurrentVolunteers >= a.MaxVolunteers {
		return nil, mongo.ErrNoDocuments
	}
	a.CurrentVolunteers++
	cp := *a
	return &cp, nil
}

func (f fakeActions) ReleaseSlot(ctx context.Context, id primitive.ObjectID, approved bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.actions[id]
	if a.CurrentVolunteers > 0 {
		a.CurrentVolunteers--
	}
	if approved && a.ApprovedVolunteers > 0 {
		a.ApprovedVolunteers--
	}
	return nil
}

func (f fakeActions) ReserveApproval(_ context.Context, id primitive.ObjectID) (*models.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[id]
	if !ok || !a.IsActiveAction() || a.ApprovedVolunteers >= a.MaxVolunteers {
		return nil, mongo.ErrNoDocuments
	}
	a.ApprovedVolunteers++
	cp := *a
	return &cp, nil
}

func (f fakeActions) ReleaseApproval(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if a := f.actions[id]; a.ApprovedVolunteers > 0 {
		a.ApprovedVolunteers--
	}
	return nil
}

type fakeApplications struct{ *store }

func (f fakeApplications) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[filter.(bson.M)["_id"].(primitive.ObjectID)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *a
	cp.Notifications = append([]models.ApplicationNotification(nil), a.Notifications...)
	return &cp, nil
}

func (f fakeApplications) Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Application, error) {
	return nil, nil
}

func (f fakeApplications) InsertOne(_ context.Context, application models.Application) (databases.InsertOneResultHelper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.Volunteer == application.Volunteer && a.Action == application.Action {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	f.applications[application.ID] = &application
	return nil, nil
}

func (f fakeApplications) UpdateOne(_ context.Context, filter interface{}, _ interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[filter.(bson.M)["_id"].(primitive.ObjectID)]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	for i := range a.Notifications {
		a.Notifications[i].Read = true
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f fakeApplications) FindOneAndUpdate(_ context.Context, filter interface{}, update interface{}, _ ...*options.FindOneAndUpdateOptions) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fm := filter.(bson.M)
	a, ok := f.applications[fm["_id"].(primitive.ObjectID)]
	if !ok || a.Status != fm["status"].(models.ApplicationStatus) {
		return nil, mongo.ErrNoDocuments
	}
	um := update.(bson.M)
	set := um["$set"].(bson.M)
	a.Status = set["status"].(models.ApplicationStatus)
	if r, ok := set["rejectionReason"].(string); ok {
		a.RejectionReason = r
	}
	entry := um["$push"].(bson.M)["notifications"].(models.ApplicationNotification)
	a.Notifications = append(a.Notifications, entry)
	cp := *a
	return &cp, nil
}

func (f fakeApplications) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fm := filter.(bson.M)
	var n int64
	for _, a := range f.applications {
		if a.Volunteer == fm["volunteer"] && a.Action == fm["action"] {
			n++
		}
	}
	return n, nil
}

// cancelingApplications cancels the request context around its writes, the
// way a client hanging up or a request deadline firing would.
type cancelingApplications struct {
	fakeApplications
	cancel context.CancelFunc
}

func (c cancelingApplications) InsertOne(ctx context.Context, _ models.Application) (databases.InsertOneResultHelper, error) {
	c.cancel()
	return nil, ctx.Err()
}

func (c cancelingApplications) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.Application, error) {
	updated, err := c.fakeApplications.FindOneAndUpdate(ctx, filter, update, opts...)
	c.cancel()
	return updated, err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingNotifier) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
