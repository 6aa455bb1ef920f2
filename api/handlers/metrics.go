package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

// Admin exported for testing purposes
type Admin struct {
	Metrics *api.Metrics
}

// formatRouteMetrics converts duration fields to milliseconds for JSON serialization
func formatRouteMetrics(routes []*api.RouteMetrics) []map[string]interface{} {
	result := make([]map[string]interface{}, len(routes))
	for i, route := range routes {
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"route":       route.Route,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"p95Time":     route.P95Time.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}
	return result
}

// MetricsHandler returns the per-route request metrics collected since startup
func (a Admin) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	summary := a.Metrics.Summary()
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"since":         summary.Since,
		"uptimeSeconds": int64(time.Since(summary.Since).Seconds()),
		"totalRequests": summary.TotalRequests,
		"totalErrors":   summary.TotalErrors,
		"routes":        formatRouteMetrics(summary.Routes),
	})
}

// healthCheck reports the service alive when the database answers a ping
func healthCheck(db databases.DatabaseHelper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Client().Ping(ctx); err != nil {
			api.WriteJSON(w, http.StatusServiceUnavailable, models.HealthCheckResponse{Alive: false})
			return
		}
		api.WriteJSON(w, http.StatusOK, models.HealthCheckResponse{Alive: true})
	}
}
