// Package docs Conecta ONG Voluntariado API.
//
// Documentation of the volunteering API: ONGs publish actions and volunteers apply to them.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/conectaong/voluntariado-api/api/handlers"
	"github.com/conectaong/voluntariado-api/models"
)

// swagger:route GET /health health healthEndpointID
// Reports whether the service and its database are alive.
// responses:
//   200: healthResponse
//   503: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/auth/register auth register
// Creates a volunteer or ONG account and returns a bearer token.
// responses:
//   201: authResponse
//   400: errorResponse

// swagger:route POST /api/auth/login auth login
// Exchanges email and password for a bearer token.
// responses:
//   200: authResponse
//   401: errorResponse
//   403: errorResponse

// Bearer token and the account it belongs to
// swagger:response authResponse
type authResponseWrapper struct {
	// in:body
	Body handlers.AuthResponse
}

// swagger:route GET /api/actions actions listActions
// Lists open actions. Filters: area, city, state, tags, q, startDate, endDate.
// responses:
//   200: actionListResponse

// A page of actions
// swagger:response actionListResponse
type actionListResponseWrapper struct {
	// in:body
	Body struct {
		Data       []models.Action   `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
}

// swagger:route GET /api/actions/{id} actions actionByID
// Gets a single action by ID.
// responses:
//   200: actionResponse
//   404: errorResponse

// A single action
// swagger:response actionResponse
type actionResponseWrapper struct {
	// in:body
	Body models.Action
}

// swagger:route POST /api/actions/{id}/apply applications apply
// Applies the calling volunteer to the action, taking one slot.
// responses:
//   201: applicationMessageResponse
//   400: errorResponse
//   404: errorResponse

// swagger:route PUT /api/applications/{id}/approve applications approve
// Approves a pending application.
// responses:
//   200: applicationMessageResponse
//   400: errorResponse
//   403: errorResponse

// An application and a message describing what happened to it
// swagger:response applicationMessageResponse
type applicationMessageResponseWrapper struct {
	// in:body
	Body struct {
		Message string             `json:"message"`
		Data    models.Application `json:"data"`
	}
}

// swagger:route GET /api/notifications/unread-count notifications unreadCount
// Counts the unread notifications of the caller.
// responses:
//   200: unreadCountResponse

// Number of unread notifications
// swagger:response unreadCountResponse
type unreadCountResponseWrapper struct {
	// in:body
	Body handlers.UnreadCountResponse
}

// Error envelope shared by every failing request
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
