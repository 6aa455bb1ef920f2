package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/conectaong/voluntariado-api/api"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

const (
	msgEmailTaken         = "email já cadastrado"
	msgInvalidCredentials = "email ou senha inválidos"
)

// Auth exported for testing purposes
type Auth struct {
	VDB   databases.VolunteerDatabase
	ODB   databases.OngDatabase
	Guard *api.Guard
	V     *validation.Validator
	now   func() time.Time
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      interface{} `json:"user"`
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	Type models.Role `json:"type"`
	User interface{} `json:"user"`
}

// RegisterHandler creates a volunteer or an ONG account and logs it in
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, a.V, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	taken, err := a.emailTaken(ctx, req.Email)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to check email", err))
		return
	}
	if taken {
		api.WriteError(w, apperrors.Conflict(msgEmailTaken))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to hash password", err))
		return
	}

	now := primitive.NewDateTimeFromTime(clock(a.now))
	var (
		principal api.Principal
		user      interface{}
	)
	switch req.Type {
	case models.RoleOng:
		ong := models.Ong{
			ID:          primitive.NewObjectID(),
			Name:        strings.TrimSpace(req.Name),
			Email:       req.Email,
			Password:    string(hash),
			CNPJ:        req.CNPJ,
			Description: req.Description,
			Areas:       req.Areas,
			Location:    req.Location.ToLocation(),
			Phone:       req.Phone,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		_, err = a.ODB.InsertOne(ctx, ong)
		principal = api.Principal{ID: ong.ID, Role: models.RoleOng, Email: ong.Email}
		user = ong
	default:
		volunteer := models.Volunteer{
			ID:        primitive.NewObjectID(),
			Name:      strings.TrimSpace(req.Name),
			Email:     req.Email,
			Password:  string(hash),
			Role:      models.RoleVolunteer,
			Phone:     req.Phone,
			Bio:       req.Description,
			Skills:    req.Skills,
			Interests: req.Interests,
			Location:  req.Location.ToLocation(),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err = a.VDB.InsertOne(ctx, volunteer)
		principal = api.Principal{ID: volunteer.ID, Role: models.RoleVolunteer, Email: volunteer.Email}
		user = volunteer
	}
	if err != nil {
		if databases.IsDuplicate(err) {
			api.WriteError(w, apperrors.Conflict(msgEmailTaken))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to create account", err))
		return
	}

	zap.S().Infow("account registered", "type", req.Type, "id", principal.ID.Hex())
	a.respondWithToken(w, http.StatusCreated, principal, user)
}

// emailTaken reports whether any account already uses email
func (a Auth) emailTaken(ctx context.Context, email string) (bool, error) {
	n, err := a.VDB.CountDocuments(ctx, bson.M{"email": email})
	if err != nil || n > 0 {
		return n > 0, err
	}
	n, err = a.ODB.CountDocuments(ctx, bson.M{"email": email})
	return n > 0, err
}

// LoginHandler exchanges email and password for a bearer token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, a.V, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var (
		principal api.Principal
		user      interface{}
		hash      string
		active    bool
		err       error
	)
	if req.Type == models.RoleOng {
		var ong *models.Ong
		ong, err = a.ODB.FindOne(ctx, bson.M{"email": email})
		if err == nil {
			principal = api.Principal{ID: ong.ID, Role: models.RoleOng, Email: ong.Email}
			user, hash, active = ong, ong.Password, ong.IsActive
		}
	} else {
		var volunteer *models.Volunteer
		volunteer, err = a.VDB.FindOne(ctx, bson.M{"email": email})
		if err == nil {
			role := volunteer.Role
			if role == "" {
				role = models.RoleVolunteer
			}
			principal = api.Principal{ID: volunteer.ID, Role: role, Email: volunteer.Email}
			user, hash, active = volunteer, volunteer.Password, volunteer.IsActive
		}
	}
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.Unauthorized(msgInvalidCredentials))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to find account", err))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		api.WriteError(w, apperrors.Unauthorized(msgInvalidCredentials))
		return
	}
	if !active {
		api.WriteError(w, apperrors.Forbidden("conta desativada"))
		return
	}

	a.respondWithToken(w, http.StatusOK, principal, user)
}

func (a Auth) respondWithToken(w http.ResponseWriter, status int, p api.Principal, user interface{}) {
	token, exp, err := a.Guard.Tokens().Issue(p)
	if err != nil {
		api.WriteError(w, apperrors.Internal("failed to issue token", err))
		return
	}
	api.WriteJSON(w, status, AuthResponse{Token: token, ExpiresAt: exp, User: user})
}

// LogoutHandler revokes the bearer token of the request
func (a Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Guard.Revoke(r); err != nil {
		api.WriteError(w, apperrors.Unauthorized("não autorizado"))
		return
	}
	api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logout realizado com sucesso"})
}

// MeHandler returns the account of the caller
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var (
		user interface{}
		err  error
	)
	if caller.Role == models.RoleOng {
		user, err = a.ODB.FindOne(ctx, bson.M{"_id": caller.ID})
	} else {
		user, err = a.VDB.FindOne(ctx, bson.M{"_id": caller.ID})
	}
	if err != nil {
		if databases.IsNotFound(err) {
			api.WriteError(w, apperrors.NotFound("conta não encontrada"))
			return
		}
		api.WriteError(w, apperrors.Internal("failed to get account", err))
		return
	}

	api.WriteJSON(w, http.StatusOK, MeResponse{Type: caller.Role, User: user})
}
