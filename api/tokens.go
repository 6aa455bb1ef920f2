package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/models"
)

// ErrInvalidToken is returned for tokens that fail to parse or verify
var ErrInvalidToken = errors.New("invalid token")

// Principal is the identity carried by an access token
type Principal struct {
	ID        primitive.ObjectID
	Role      models.Role
	Email     string
	ExpiresAt time.Time
}

type claims struct {
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for p valid for the configured TTL
func (s *TokenService) Issue(p Principal) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	c := claims{
		Role:  p.Role,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.Hex(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Parse verifies token and returns its principal
func (s *TokenService) Parse(token string) (Principal, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, errors.Join(ErrInvalidToken, err)
	}

	id, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return Principal{}, errors.Join(ErrInvalidToken, err)
	}
	switch c.Role {
	case models.RoleVolunteer, models.RoleOng, models.RoleAdmin:
	default:
		return Principal{}, ErrInvalidToken
	}

	return Principal{
		ID:        id,
		Role:      c.Role,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
