package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases/mocks"
	"github.com/conectaong/voluntariado-api/models"
)

func volunteer() Actor {
	return Actor{ID: primitive.NewObjectID(), Role: models.RoleVolunteer}
}

func ongOf(a models.Action) Actor {
	return Actor{ID: a.Ong, Role: models.RoleOng}
}

func newFakeManager() (*Manager, *store, *recordingNotifier) {
	s := newStore()
	n := &recordingNotifier{}
	return NewManager(fakeActions{s}, fakeApplications{s}, n), s, n
}

func TestManager_Apply_OnlyVolunteers(t *testing.T) {
	m := NewManager(&mocks.ActionDatabase{}, &mocks.ApplicationDatabase{}, nil)

	_, err := m.Apply(context.Background(), Actor{ID: primitive.NewObjectID(), Role: models.RoleOng}, primitive.NewObjectID(), ApplyInput{})

	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestManager_Apply_Refusals(t *testing.T) {
	actionID := primitive.NewObjectID()

	tests := []struct {
		name     string
		found    *models.Action
		findErr  error
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{name: "missing action", findErr: mongo.ErrNoDocuments, wantKind: apperrors.KindNotFound, wantMsg: MsgActionNotFound},
		{name: "draft action", found: &models.Action{ID: actionID, Status: models.ActionStatusDraft, IsActive: true, MaxVolunteers: 3}, wantKind: apperrors.KindBadRequest, wantMsg: MsgNotAccepting},
		{name: "deleted action", found: &models.Action{ID: actionID, Status: models.ActionStatusActive, IsActive: false, MaxVolunteers: 3}, wantKind: apperrors.KindBadRequest, wantMsg: MsgNotAccepting},
		{name: "full action", found: &models.Action{ID: actionID, Status: models.ActionStatusActive, IsActive: true, MaxVolunteers: 1, CurrentVolunteers: 1}, wantKind: apperrors.KindBadRequest, wantMsg: MsgFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &mocks.ActionDatabase{}
			applications := &mocks.ApplicationDatabase{}

			applications.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
			actions.On("ReserveSlot", mock.Anything, actionID).Return(nil, mongo.ErrNoDocuments)
			actions.On("FindOne", mock.Anything, bson.M{"_id": actionID}).Return(tt.found, tt.findErr)

			_, err := NewManager(actions, applications, nil).Apply(context.Background(), volunteer(), actionID, ApplyInput{})

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantKind))
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantMsg, appErr.Message)
			applications.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
		})
	}
}

func TestManager_Apply_ExistingApplication(t *testing.T) {
	actions := &mocks.ActionDatabase{}
	applications := &mocks.ApplicationDatabase{}
	applications.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := NewManager(actions, applications, nil).Apply(context.Background(), volunteer(), primitive.NewObjectID(), ApplyInput{})

	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	actions.AssertNotCalled(t, "ReserveSlot", mock.Anything, mock.Anything)
}

func TestManager_Apply_InsertFailureReleasesSlot(t *testing.T) {
	action := &models.Action{ID: primitive.NewObjectID(), Ong: primitive.NewObjectID(), CurrentVolunteers: 1, MaxVolunteers: 2}

	tests := []struct {
		name     string
		err      error
		wantKind apperrors.Kind
	}{
		{name: "duplicate", err: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, wantKind: apperrors.KindConflict},
		{name: "database down", err: errors.New("connection reset"), wantKind: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &mocks.ActionDatabase{}
			applications := &mocks.ApplicationDatabase{}

			applications.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
			actions.On("ReserveSlot", mock.Anything, action.ID).Return(action, nil)
			applications.On("InsertOne", mock.Anything, mock.Anything).Return(nil, tt.err)
			actions.On("ReleaseSlot", mock.Anything, action.ID, false).Return(nil)

			_, err := NewManager(actions, applications, nil).Apply(context.Background(), volunteer(), action.ID, ApplyInput{})

			assert.True(t, apperrors.Is(err, tt.wantKind))
			actions.AssertCalled(t, "ReleaseSlot", mock.Anything, action.ID, false)
		})
	}
}

func TestManager_Apply(t *testing.T) {
	m, s, n := newFakeManager()
	action := s.addAction(2)
	v := volunteer()

	app, err := m.Apply(context.Background(), v, action.ID, ApplyInput{Message: "Tenho experiência", Skills: []string{"primeiros socorros"}})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, v.ID, app.Volunteer)
	assert.Equal(t, action.Ong, app.Ong)
	assert.Equal(t, "Tenho experiência", app.Message)
	assert.Len(t, app.Notifications, 1)
	assert.Equal(t, 1, s.action(action.ID).CurrentVolunteers)

	events := n.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.OngRecipient(action.Ong), events[0].Recipient)
	assert.Equal(t, models.NotificationApplicationReceived, events[0].Type)
}

func TestManager_Apply_SecondApplicationConflicts(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(5)
	v := volunteer()

	_, err := m.Apply(context.Background(), v, action.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = m.Apply(context.Background(), v, action.ID, ApplyInput{})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.Equal(t, 1, s.action(action.ID).CurrentVolunteers)
}

func TestManager_LastSlotScenario(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(1)
	ctx := context.Background()

	a, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.action(action.ID).CurrentVolunteers)

	approved, err := m.Transition(ctx, ongOf(*action), a.ID, Approve{})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, approved.Status)

	_, err = m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindBadRequest, appErr.Kind)
	assert.Equal(t, "vagas esgotadas", appErr.Message)

	assert.Equal(t, 1, s.action(action.ID).CurrentVolunteers)
	assert.Equal(t, 1, s.action(action.ID).ApprovedVolunteers)
}

func TestManager_RejectScenario(t *testing.T) {
	m, s, n := newFakeManager()
	action := s.addAction(3)
	ctx := context.Background()

	a, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
	require.NoError(t, err)

	rejected, err := m.Transition(ctx, ongOf(*action), a.ID, Reject{Reason: "  perfil incompatível "})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)
	assert.Equal(t, "perfil incompatível", rejected.RejectionReason)
	assert.Equal(t, 0, s.action(action.ID).CurrentVolunteers)

	last := rejected.Notifications[len(rejected.Notifications)-1]
	assert.Equal(t, models.NotificationApplicationRejected, last.Type)
	assert.Contains(t, last.Message, "perfil incompatível")

	events := n.all()
	assert.Equal(t, models.VolunteerRecipient(a.Volunteer), events[len(events)-1].Recipient)
}

func TestManager_WithdrawReleasesOnce(t *testing.T) {
	tests := []struct {
		name         string
		approveFirst bool
	}{
		{name: "from pending"},
		{name: "from approved", approveFirst: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s, _ := newFakeManager()
			action := s.addAction(3)
			ctx := context.Background()
			v := volunteer()

			a, err := m.Apply(ctx, v, action.ID, ApplyInput{})
			require.NoError(t, err)
			if tt.approveFirst {
				_, err = m.Transition(ctx, ongOf(*action), a.ID, Approve{})
				require.NoError(t, err)
			}

			_, err = m.Transition(ctx, v, a.ID, Withdraw{})
			require.NoError(t, err)
			assert.Equal(t, 0, s.action(action.ID).CurrentVolunteers)
			assert.Equal(t, 0, s.action(action.ID).ApprovedVolunteers)

			_, err = m.Transition(ctx, v, a.ID, Withdraw{})
			assert.True(t, apperrors.Is(err, apperrors.KindConflict))
			assert.Equal(t, 0, s.action(action.ID).CurrentVolunteers)
		})
	}
}

func TestManager_ConcurrentRejectsDecrementOnce(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(3)
	ctx := context.Background()

	_, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
	require.NoError(t, err)
	a, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
	require.NoError(t, err)
	require.Equal(t, 2, s.action(action.ID).CurrentVolunteers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Transition(ctx, ongOf(*action), a.ID, Reject{Reason: "sem vagas no turno"}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, s.action(action.ID).CurrentVolunteers)
}

func TestManager_ConcurrentApplyNeverOverfills(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(5)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Apply(context.Background(), volunteer(), action.ID, ApplyInput{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, s.action(action.ID).CurrentVolunteers)
	assert.Len(t, s.applications, 5)
}

func TestManager_SequenceNeverExceedsCapacity(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(2)
	ctx := context.Background()
	ong := ongOf(*action)

	var live []models.Application
	for i := 0; i < 12; i++ {
		v := volunteer()
		a, err := m.Apply(ctx, v, action.ID, ApplyInput{})
		if err == nil {
			live = append(live, *a)
		}
		switch {
		case i%3 == 0 && len(live) > 0:
			_, _ = m.Transition(ctx, ong, live[0].ID, Approve{})
		case i%3 == 1 && len(live) > 0:
			_, _ = m.Transition(ctx, ong, live[len(live)-1].ID, Reject{Reason: "não compareceu"})
		case i%3 == 2 && len(live) > 0:
			_, _ = m.Transition(ctx, Actor{ID: live[0].Volunteer, Role: models.RoleVolunteer}, live[0].ID, Withdraw{})
			live = live[1:]
		}

		got := s.action(action.ID)
		assert.LessOrEqual(t, got.CurrentVolunteers, got.MaxVolunteers)
		assert.LessOrEqual(t, got.ApprovedVolunteers, got.CurrentVolunteers)
		assert.GreaterOrEqual(t, got.CurrentVolunteers, 0)
	}
}

func TestManager_ApproveWhenAllSlotsApproved(t *testing.T) {
	app := &models.Application{ID: primitive.NewObjectID(), Action: primitive.NewObjectID(), Ong: primitive.NewObjectID(), Status: models.ApplicationStatusPending}
	action := &models.Action{ID: app.Action, Ong: app.Ong, Status: models.ActionStatusActive, IsActive: true, MaxVolunteers: 1, ApprovedVolunteers: 1}

	actions := &mocks.ActionDatabase{}
	applications := &mocks.ApplicationDatabase{}
	applications.On("FindOne", mock.Anything, bson.M{"_id": app.ID}).Return(app, nil)
	actions.On("FindOne", mock.Anything, bson.M{"_id": app.Action}).Return(action, nil)
	actions.On("ReserveApproval", mock.Anything, action.ID).Return(nil, mongo.ErrNoDocuments)

	_, err := NewManager(actions, applications, nil).Transition(context.Background(), Actor{ID: app.Ong, Role: models.RoleOng}, app.ID, Approve{})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindBadRequest, appErr.Kind)
	assert.Equal(t, MsgFull, appErr.Message)
	applications.AssertNotCalled(t, "FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_ApproveOnClosedAction(t *testing.T) {
	tests := []struct {
		name  string
		close func(a *models.Action)
	}{
		{name: "cancelled", close: func(a *models.Action) { a.Status = models.ActionStatusCancelled }},
		{name: "completed", close: func(a *models.Action) { a.Status = models.ActionStatusCompleted }},
		{name: "deleted", close: func(a *models.Action) { a.IsActive = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s, _ := newFakeManager()
			action := s.addAction(3)
			ctx := context.Background()

			a, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
			require.NoError(t, err)

			s.mu.Lock()
			tt.close(s.actions[action.ID])
			s.mu.Unlock()

			_, err = m.Transition(ctx, ongOf(*action), a.ID, Approve{})

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.KindBadRequest, appErr.Kind)
			assert.Equal(t, MsgNotAccepting, appErr.Message)
			assert.Equal(t, models.ApplicationStatusPending, s.application(a.ID).Status)
			assert.Equal(t, 1, s.action(action.ID).CurrentVolunteers)
			assert.Equal(t, 0, s.action(action.ID).ApprovedVolunteers)
		})
	}
}

func TestManager_ReleasesSurviveCancelledRequest(t *testing.T) {
	t.Run("failed apply", func(t *testing.T) {
		s := newStore()
		action := s.addAction(2)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		m := NewManager(fakeActions{s}, cancelingApplications{fakeApplications{s}, cancel}, nil)

		_, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})

		assert.True(t, apperrors.Is(err, apperrors.KindInternal))
		assert.Empty(t, s.applications)
		assert.Equal(t, 0, s.action(action.ID).CurrentVolunteers)
	})

	t.Run("reject", func(t *testing.T) {
		m, s, _ := newFakeManager()
		action := s.addAction(2)
		a, err := m.Apply(context.Background(), volunteer(), action.ID, ApplyInput{})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		m = NewManager(fakeActions{s}, cancelingApplications{fakeApplications{s}, cancel}, nil)

		_, err = m.Transition(ctx, ongOf(*action), a.ID, Reject{Reason: "vagas preenchidas"})

		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusRejected, s.application(a.ID).Status)
		assert.Equal(t, 0, s.action(action.ID).CurrentVolunteers)
	})

	t.Run("withdraw after approval", func(t *testing.T) {
		m, s, _ := newFakeManager()
		action := s.addAction(2)
		v := volunteer()
		a, err := m.Apply(context.Background(), v, action.ID, ApplyInput{})
		require.NoError(t, err)
		_, err = m.Transition(context.Background(), ongOf(*action), a.ID, Approve{})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		m = NewManager(fakeActions{s}, cancelingApplications{fakeApplications{s}, cancel}, nil)

		_, err = m.Transition(ctx, v, a.ID, Withdraw{})

		require.NoError(t, err)
		assert.Equal(t, 0, s.action(action.ID).CurrentVolunteers)
		assert.Equal(t, 0, s.action(action.ID).ApprovedVolunteers)
	})
}

func TestManager_ApproveLosesRace(t *testing.T) {
	app := &models.Application{ID: primitive.NewObjectID(), Action: primitive.NewObjectID(), Ong: primitive.NewObjectID(), Status: models.ApplicationStatusPending}
	action := &models.Action{ID: app.Action, Ong: app.Ong, MaxVolunteers: 3}

	actions := &mocks.ActionDatabase{}
	applications := &mocks.ApplicationDatabase{}
	applications.On("FindOne", mock.Anything, bson.M{"_id": app.ID}).Return(app, nil)
	actions.On("FindOne", mock.Anything, bson.M{"_id": app.Action}).Return(action, nil)
	actions.On("ReserveApproval", mock.Anything, action.ID).Return(action, nil)
	applications.On("FindOneAndUpdate", mock.Anything, bson.M{"_id": app.ID, "status": models.ApplicationStatusPending}, mock.Anything, mock.Anything).
		Return(nil, mongo.ErrNoDocuments)
	actions.On("ReleaseApproval", mock.Anything, action.ID).Return(nil)

	_, err := NewManager(actions, applications, nil).Transition(context.Background(), Actor{ID: app.Ong, Role: models.RoleOng}, app.ID, Approve{})

	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	actions.AssertCalled(t, "ReleaseApproval", mock.Anything, action.ID)
}

func TestManager_CompleteKeepsCounters(t *testing.T) {
	app := &models.Application{ID: primitive.NewObjectID(), Action: primitive.NewObjectID(), Ong: primitive.NewObjectID(), Status: models.ApplicationStatusApproved}
	action := &models.Action{ID: app.Action, Ong: app.Ong, Title: "Mutirão", MaxVolunteers: 3}

	actions := &mocks.ActionDatabase{}
	applications := &mocks.ApplicationDatabase{}
	n := &recordingNotifier{}
	applications.On("FindOne", mock.Anything, bson.M{"_id": app.ID}).Return(app, nil)
	actions.On("FindOne", mock.Anything, bson.M{"_id": app.Action}).Return(action, nil)
	applications.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Application{ID: app.ID, Status: models.ApplicationStatusCompleted}, nil).
		Run(func(args mock.Arguments) {
			set := args.Get(2).(bson.M)["$set"].(bson.M)
			assert.Equal(t, "foi ótimo", set["feedback"])
			assert.Contains(t, set, "completedAt")
		})

	updated, err := NewManager(actions, applications, n).Transition(context.Background(), Actor{ID: app.Ong, Role: models.RoleOng}, app.ID, Complete{Feedback: "foi ótimo"})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusCompleted, updated.Status)
	actions.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything, mock.Anything)
	actions.AssertNotCalled(t, "ReserveApproval", mock.Anything, mock.Anything)
	require.Len(t, n.all(), 1)
	assert.Equal(t, models.NotificationApplicationCompleted, n.all()[0].Type)
}

func TestManager_TransitionGuards(t *testing.T) {
	ongID := primitive.NewObjectID()
	volunteerID := primitive.NewObjectID()

	tests := []struct {
		name     string
		status   models.ApplicationStatus
		actor    Actor
		t        Transition
		wantKind apperrors.Kind
	}{
		{"volunteer cannot approve", models.ApplicationStatusPending, Actor{ID: volunteerID, Role: models.RoleVolunteer}, Approve{}, apperrors.KindForbidden},
		{"other ong cannot reject", models.ApplicationStatusPending, Actor{ID: primitive.NewObjectID(), Role: models.RoleOng}, Reject{Reason: "x"}, apperrors.KindForbidden},
		{"ong cannot withdraw", models.ApplicationStatusPending, Actor{ID: ongID, Role: models.RoleOng}, Withdraw{}, apperrors.KindForbidden},
		{"other volunteer cannot withdraw", models.ApplicationStatusPending, Actor{ID: primitive.NewObjectID(), Role: models.RoleVolunteer}, Withdraw{}, apperrors.KindForbidden},
		{"complete pending", models.ApplicationStatusPending, Actor{ID: ongID, Role: models.RoleOng}, Complete{}, apperrors.KindConflict},
		{"approve twice", models.ApplicationStatusApproved, Actor{ID: ongID, Role: models.RoleOng}, Approve{}, apperrors.KindConflict},
		{"reject approved", models.ApplicationStatusApproved, Actor{ID: ongID, Role: models.RoleOng}, Reject{Reason: "x"}, apperrors.KindConflict},
		{"withdraw rejected", models.ApplicationStatusRejected, Actor{ID: volunteerID, Role: models.RoleVolunteer}, Withdraw{}, apperrors.KindConflict},
		{"blank reason", models.ApplicationStatusPending, Actor{ID: ongID, Role: models.RoleOng}, Reject{Reason: "   "}, apperrors.KindValidation},
		{"long reason", models.ApplicationStatusPending, Actor{ID: ongID, Role: models.RoleOng}, Reject{Reason: string(make([]rune, 501))}, apperrors.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &models.Application{ID: primitive.NewObjectID(), Volunteer: volunteerID, Ong: ongID, Action: primitive.NewObjectID(), Status: tt.status}
			actions := &mocks.ActionDatabase{}
			applications := &mocks.ApplicationDatabase{}
			applications.On("FindOne", mock.Anything, bson.M{"_id": app.ID}).Return(app, nil)

			_, err := NewManager(actions, applications, nil).Transition(context.Background(), tt.actor, app.ID, tt.t)

			assert.True(t, apperrors.Is(err, tt.wantKind), "got %v", err)
			applications.AssertNotCalled(t, "FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestManager_TransitionMissingApplication(t *testing.T) {
	applications := &mocks.ApplicationDatabase{}
	applications.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	_, err := NewManager(&mocks.ActionDatabase{}, applications, nil).Transition(context.Background(), volunteer(), primitive.NewObjectID(), Withdraw{})

	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestManager_AdminActsAsOwner(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(2)
	ctx := context.Background()

	a, err := m.Apply(ctx, volunteer(), action.ID, ApplyInput{})
	require.NoError(t, err)

	admin := Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	_, err = m.Transition(ctx, admin, a.ID, Approve{})
	assert.NoError(t, err)
}

func TestManager_MarkNotificationsAsReadIsIdempotent(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(2)
	ctx := context.Background()
	v := volunteer()

	a, err := m.Apply(ctx, v, action.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = m.Transition(ctx, ongOf(*action), a.ID, Approve{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := m.MarkNotificationsAsRead(ctx, v, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.UnreadNotifications())
		stored := s.application(a.ID)
		assert.Len(t, stored.Notifications, 2)
		for _, n := range stored.Notifications {
			assert.True(t, n.Read)
		}
	}
}

func TestManager_MarkNotificationsAsReadForbidden(t *testing.T) {
	m, s, _ := newFakeManager()
	action := s.addAction(2)

	a, err := m.Apply(context.Background(), volunteer(), action.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = m.MarkNotificationsAsRead(context.Background(), volunteer(), a.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}
