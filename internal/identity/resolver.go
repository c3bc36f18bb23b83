package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	identityerrors "leavedesk/internal/identity/errors"
	"leavedesk/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Identity is the caller resolved from a verified credential. Role and
// other profile attributes are deliberately absent: they come from the
// users table, never from a claim the client controls.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Credential carries at most one of the two supported flows: a bearer
// token from the Authorization header, or an opaque session token from
// the session_token cookie.
type Credential struct {
	BearerToken  string
	SessionToken string
}

const sessionKeyPrefix = "session:"

//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, cred Credential) (Identity, error)
}

type resolver struct {
	secret   []byte
	sessions *redis.Client
	logger   *zap.Logger
}

func NewResolver(secret string, sessions *redis.Client, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("identity.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.resolver")
	}
	return &resolver{secret: []byte(secret), sessions: sessions, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, cred Credential) (Identity, error) {
	switch {
	case cred.BearerToken != "":
		return r.resolveBearer(cred.BearerToken)
	case cred.SessionToken != "":
		return r.resolveSession(ctx, cred.SessionToken)
	default:
		return Identity{}, identityerrors.ErrMissingCredential
	}
}

func (r *resolver) resolveBearer(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return r.secret, nil
	})

	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return Identity{}, identityerrors.ErrTokenExpired
		}
		return Identity{}, identityerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, identityerrors.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Identity{}, identityerrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return Identity{}, identityerrors.ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return Identity{ID: userID, Email: email}, nil
}

type sessionRecord struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (r *resolver) resolveSession(ctx context.Context, token string) (Identity, error) {
	raw, err := r.sessions.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, identityerrors.ErrInvalidSession
		}
		r.logger.Error("session store lookup failed", zap.Error(err))
		return Identity{}, apperror.Wrap(err, apperror.CodeUpstream, "session store unavailable", http.StatusInternalServerError)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.logger.Warn("malformed session record", zap.Error(err))
		return Identity{}, identityerrors.ErrInvalidSession
	}

	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return Identity{}, identityerrors.ErrInvalidSession
	}

	return Identity{ID: userID, Email: rec.Email}, nil
}
