package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

const (
	completeActionsJob      = "complete_expired_actions"
	archiveNotificationsJob = "archive_read_notifications"

	jobTimeout = 5 * time.Minute
	lockTTL    = 10 * time.Minute

	// ArchiveAfter is how long a read notification stays in the inbox
	ArchiveAfter = 30 * 24 * time.Hour
)

// ActionCompleter closes actions whose end date has passed
type ActionCompleter interface {
	CompleteExpiredActions(ctx context.Context) (int64, error)
}

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron       *cron.Cron
	Actions    ActionCompleter
	NDB        databases.NotificationDatabase
	LockDB     databases.SchedulerLockDatabase
	instanceID string
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(actions ActionCompleter, nDB databases.NotificationDatabase, lockDB databases.SchedulerLockDatabase) *Scheduler {
	// HOSTNAME is the pod name on kubernetes
	instanceID := os.Getenv("HOSTNAME")
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Actions:    actions,
		NDB:        nDB,
		LockDB:     lockDB,
		instanceID: instanceID,
		now:        time.Now,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.completeExpiredActions); err != nil {
		return fmt.Errorf("failed to register %s job: %w", completeActionsJob, err)
	}
	if _, err := s.cron.AddFunc("0 3 * * *", s.archiveReadNotifications); err != nil {
		return fmt.Errorf("failed to register %s job: %w", archiveNotificationsJob, err)
	}

	s.cron.Start()
	zap.S().Infow("scheduler started", "instance", s.instanceID)
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

// withLock runs job only when this instance holds the named lease
func (s *Scheduler) withLock(name string, job func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, name, s.instanceID, lockTTL)
	if err != nil {
		zap.S().Errorw("failed to acquire scheduler lock", "job", name, "error", err)
		return
	}
	if !acquired {
		zap.S().Debugw("job already running on another instance, skipping", "job", name)
		return
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(context.Background(), name, s.instanceID); err != nil {
			zap.S().Warnw("failed to release scheduler lock", "job", name, "error", err)
		}
	}()

	job(ctx)
}

func (s *Scheduler) completeExpiredActions() {
	s.withLock(completeActionsJob, func(ctx context.Context) {
		n, err := s.Actions.CompleteExpiredActions(ctx)
		if err != nil {
			zap.S().Errorw("failed to complete expired actions", "error", err)
			return
		}
		zap.S().Infow("expired actions completed", "count", n)
	})
}

func (s *Scheduler) archiveReadNotifications() {
	s.withLock(archiveNotificationsJob, func(ctx context.Context) {
		n, err := ArchiveReadNotifications(ctx, s.NDB, s.now())
		if err != nil {
			zap.S().Errorw("failed to archive notifications", "error", err)
			return
		}
		zap.S().Infow("read notifications archived", "count", n)
	})
}

// ArchiveReadNotifications archives notifications read before now minus ArchiveAfter
func ArchiveReadNotifications(ctx context.Context, nDB databases.NotificationDatabase, now time.Time) (int64, error) {
	cutoff := primitive.NewDateTimeFromTime(now.Add(-ArchiveAfter))
	res, err := nDB.UpdateMany(ctx,
		bson.M{"status": models.NotificationStatusRead, "readAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.NotificationStatusArchived}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
