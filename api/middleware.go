package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/config"
	"github.com/conectaong/voluntariado-api/models"
)

const verifiedTokenTTL = 5 * time.Minute

type principalKey struct{}

// Guard authenticates bearer tokens. Verified tokens are cached by
// go-guardian; logged out tokens are kept in a revocation list until they
// would have expired anyway.
type Guard struct {
	tokens        *TokenService
	authenticator auth.Authenticator
	strategy      auth.Strategy
	revoked       store.Cache
}

// NewGuard sets up the go-guardian bearer strategy on top of tokens
func NewGuard(ctx context.Context, tokens *TokenService) *Guard {
	g := &Guard{
		tokens:  tokens,
		revoked: store.NewFIFO(ctx, tokens.ttl),
	}
	g.strategy = bearer.New(g.verify, store.NewFIFO(ctx, verifiedTokenTTL))
	g.authenticator = auth.New()
	g.authenticator.EnableStrategy(bearer.CachedStrategyKey, g.strategy)
	return g
}

// Tokens returns the token service the guard verifies with
func (g *Guard) Tokens() *TokenService {
	return g.tokens
}

func (g *Guard) verify(_ context.Context, r *http.Request, token string) (auth.Info, error) {
	if _, ok, _ := g.revoked.Load(token, r); ok {
		return nil, ErrInvalidToken
	}
	p, err := g.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	ext := map[string][]string{"exp": {strconv.FormatInt(p.ExpiresAt.Unix(), 10)}}
	return auth.NewDefaultUser(p.Email, p.ID.Hex(), []string{string(p.Role)}, ext), nil
}

// principalFromInfo rebuilds a principal from a cached go-guardian user
func (g *Guard) principalFromInfo(info auth.Info) (Principal, error) {
	id, err := primitive.ObjectIDFromHex(info.ID())
	if err != nil || len(info.Groups()) == 0 {
		return Principal{}, ErrInvalidToken
	}
	p := Principal{ID: id, Role: models.Role(info.Groups()[0]), Email: info.UserName()}
	if exp := info.Extensions()["exp"]; len(exp) > 0 {
		sec, err := strconv.ParseInt(exp[0], 10, 64)
		if err != nil {
			return Principal{}, ErrInvalidToken
		}
		p.ExpiresAt = time.Unix(sec, 0)
		if g.tokens.now().After(p.ExpiresAt) {
			return Principal{}, ErrInvalidToken
		}
	}
	return p, nil
}

// Authenticate verifies the bearer token of r
func (g *Guard) Authenticate(r *http.Request) (Principal, error) {
	info, err := g.authenticator.Authenticate(r)
	if err != nil {
		return Principal{}, err
	}
	return g.principalFromInfo(info)
}

// AuthenticateToken verifies a raw token, used where no header can be sent
func (g *Guard) AuthenticateToken(r *http.Request, token string) (Principal, error) {
	req := r.Clone(r.Context())
	req.Header.Set("Authorization", "Bearer "+token)
	return g.Authenticate(req)
}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the request context
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := g.Authenticate(r)
		if err != nil {
			zap.S().Debugw("unauthorized", "url", r.URL.Path, "error", err)
			config.CodedErrorStatus("não autorizado", apperrors.KindUnauthorized.String(), nil, http.StatusUnauthorized, w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// Revoke invalidates the bearer token of r
func (g *Guard) Revoke(r *http.Request) error {
	token, ok := bearerToken(r)
	if !ok {
		return ErrInvalidToken
	}
	if err := g.revoked.Store(token, true, r); err != nil {
		return err
	}
	return auth.Revoke(g.strategy, token, r)
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// RequireRole lets through callers with one of roles. Admins always pass.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				config.CodedErrorStatus("não autorizado", apperrors.KindUnauthorized.String(), nil, http.StatusUnauthorized, w, errors.New("no principal in context"))
				return
			}
			if p.Role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			config.CodedErrorStatus("acesso negado", apperrors.KindForbidden.String(), nil, http.StatusForbidden, w, nil)
		})
	}
}

// WithPrincipal stores p in ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the authenticated caller stored by Middleware
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
