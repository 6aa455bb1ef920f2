package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/api/scheduler"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/config"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/lifecycle"
	"github.com/conectaong/voluntariado-api/models"
	"github.com/conectaong/voluntariado-api/notifications"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Hub       *notifications.Hub
	Emitter   *notifications.Emitter
	Manager   *lifecycle.Manager
	Metrics   *api.Metrics
	Scheduler *scheduler.Scheduler

	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
	guard    *api.Guard
	stop     context.CancelFunc
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	v := validation.New()
	actionDB := databases.NewActionDatabase(a.dbHelper)
	applicationDB := databases.NewApplicationDatabase(a.dbHelper)
	notificationDB := databases.NewNotificationDatabase(a.dbHelper)
	ongDB := databases.NewOngDatabase(a.dbHelper)
	volunteerDB := databases.NewVolunteerDatabase(a.dbHelper)

	if a.Hub == nil {
		a.Hub = notifications.NewHub()
	}
	if a.Metrics == nil {
		a.Metrics = api.NewMetrics()
	}
	if a.Emitter == nil {
		var mailer notifications.Mailer
		if m := notifications.NewSendGridMailer(a.Config.SendGridAPIKey, a.Config.MailFrom, a.Config.MailFromName); m != nil {
			mailer = m
		}
		a.Emitter = notifications.NewEmitter(notificationDB, volunteerDB, a.Hub, mailer, a.Config.NotificationTTL, a.Config.BaseURL)
	}
	a.Manager = lifecycle.NewManager(actionDB, applicationDB, a.Emitter)

	auth := Auth{VDB: volunteerDB, ODB: ongDB, Guard: a.guard, V: v}
	act := Action{DB: actionDB, ADB: applicationDB, Manager: a.Manager, V: v}
	app := Application{DB: applicationDB, ActDB: actionDB, Manager: a.Manager, V: v}
	ong := Ong{DB: ongDB, V: v}
	vol := Volunteer{DB: volunteerDB, V: v}
	n := Notification{DB: notificationDB, Hub: a.Hub, Guard: a.guard, Origins: a.Config.CORSOrigins}
	admin := Admin{Metrics: a.Metrics}

	// protected wraps h with the bearer middleware and, when roles are given, the role gate
	protected := func(h http.HandlerFunc, roles ...models.Role) http.Handler {
		var next http.Handler = h
		if len(roles) > 0 {
			next = api.RequireRole(roles...)(next)
		}
		return a.guard.Middleware(next)
	}

	r := mux.NewRouter()
	r.Use(api.RequestLogger(a.Metrics))

	// healthchex
	r.HandleFunc("/health", healthCheck(a.dbHelper)).Methods("GET")
	r.HandleFunc("/ws/notifications", n.WebSocketHandler).Methods("GET")

	apiCreate := r.PathPrefix("/api").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/auth/register", http.HandlerFunc(auth.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/logout", protected(auth.LogoutHandler)).Methods("DELETE")
	apiCreate.Handle("/auth/me", protected(auth.MeHandler)).Methods("GET")

	apiCreate.Handle("/actions", http.HandlerFunc(act.ActionsHandler)).Methods("GET")
	apiCreate.Handle("/actions", protected(act.CreateActionHandler, models.RoleOng)).Methods("POST")
	apiCreate.Handle("/actions/{id}", http.HandlerFunc(act.ActionByIDHandler)).Methods("GET")
	apiCreate.Handle("/actions/{id}", protected(act.UpdateActionHandler, models.RoleOng)).Methods("PUT")
	apiCreate.Handle("/actions/{id}", protected(act.DeleteActionHandler, models.RoleOng)).Methods("DELETE")
	apiCreate.Handle("/actions/{id}/status", protected(act.ActionStatusHandler, models.RoleOng)).Methods("PUT")
	apiCreate.Handle("/actions/{id}/apply", protected(app.ApplyHandler, models.RoleVolunteer)).Methods("POST")
	apiCreate.Handle("/actions/{id}/applications", protected(app.ActionApplicationsHandler, models.RoleOng)).Methods("GET")
	apiCreate.Handle("/actions/{id}/applications/{applicationId}", protected(app.ActionApplicationStatusHandler, models.RoleOng, models.RoleVolunteer)).Methods("PUT")

	apiCreate.Handle("/applications", protected(app.CreateApplicationHandler, models.RoleVolunteer)).Methods("POST")
	apiCreate.Handle("/applications/me", protected(app.MyApplicationsHandler, models.RoleVolunteer)).Methods("GET")
	apiCreate.Handle("/applications/ong", protected(app.OngApplicationsHandler, models.RoleOng)).Methods("GET")
	apiCreate.Handle("/applications/{id}", protected(app.ApplicationByIDHandler)).Methods("GET")
	apiCreate.Handle("/applications/{id}/approve", protected(app.ApproveHandler, models.RoleOng)).Methods("PUT")
	apiCreate.Handle("/applications/{id}/reject", protected(app.RejectHandler, models.RoleOng)).Methods("PUT")
	apiCreate.Handle("/applications/{id}/withdraw", protected(app.WithdrawHandler, models.RoleVolunteer)).Methods("PUT")
	apiCreate.Handle("/applications/{id}/complete", protected(app.CompleteHandler, models.RoleOng)).Methods("PUT")
	apiCreate.Handle("/applications/{id}/notifications/read", protected(app.MarkNotificationsReadHandler)).Methods("PUT")

	// routes under /ongs/me must stay above /ongs/{id}
	apiCreate.Handle("/ongs/me/actions", protected(act.OngActionsHandler, models.RoleOng)).Methods("GET")
	apiCreate.Handle("/ongs/me", protected(ong.UpdateMyOngHandler, models.RoleOng)).Methods("PUT")
	apiCreate.Handle("/ongs", http.HandlerFunc(ong.OngsHandler)).Methods("GET")
	apiCreate.Handle("/ongs/{id}", http.HandlerFunc(ong.OngByIDHandler)).Methods("GET")

	apiCreate.Handle("/volunteers/me", protected(vol.MyProfileHandler, models.RoleVolunteer)).Methods("GET")
	apiCreate.Handle("/volunteers/me", protected(vol.UpdateMyProfileHandler, models.RoleVolunteer)).Methods("PUT")

	apiCreate.Handle("/notifications", protected(n.NotificationsHandler)).Methods("GET")
	apiCreate.Handle("/notifications/unread-count", protected(n.UnreadCountHandler)).Methods("GET")
	apiCreate.Handle("/notifications/read-all", protected(n.MarkAllReadHandler)).Methods("PUT")
	apiCreate.Handle("/notifications/{id}/read", protected(n.MarkReadHandler)).Methods("PUT")
	apiCreate.Handle("/notifications/{id}/archive", protected(n.ArchiveHandler)).Methods("PUT")
	apiCreate.Handle("/notifications/{id}", protected(n.DeleteNotificationHandler)).Methods("DELETE")

	apiCreate.Handle("/admin/metrics", protected(admin.MetricsHandler, models.RoleAdmin)).Methods("GET")

	return r
}

// Handler returns the router wrapped in the CORS layer
func (a *App) Handler() http.Handler {
	return api.CORS(a.Config.CORSOrigins)(a.Router)
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	if a.Config.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With("error", err).Error("failed to create new client")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.DBConnectTimeout)
	defer cancel()
	if err = client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With("error", err).Error("failed to connect to database")
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)

	if err = databases.EnsureIndexes(ctx, a.dbHelper); err != nil {
		zap.S().With("error", err).Error("failed to ensure indexes")
		return err
	}
	zap.S().Info("voluntariado-api has connected to the database")

	// initialize api router
	a.initializeRoutes()

	if a.Config.SchedulerEnabled {
		a.Scheduler = scheduler.NewScheduler(a.Manager,
			databases.NewNotificationDatabase(a.dbHelper),
			databases.NewSchedulerLockDatabase(a.dbHelper))
		if err = a.Scheduler.Start(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) initializeRoutes() {
	var guardCtx context.Context
	guardCtx, a.stop = context.WithCancel(context.Background())
	a.guard = api.NewGuard(guardCtx, api.NewTokenService(a.Config.JWTSecret, a.Config.TokenTTL))
	a.Router = a.New()
}

// Close stops background work and disconnects from the database. In flight
// notification deliveries are allowed to finish first.
func (a *App) Close(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.Emitter != nil {
		a.Emitter.Wait()
	}
	if a.stop != nil {
		a.stop()
	}
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}
