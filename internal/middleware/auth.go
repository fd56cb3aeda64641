package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wastewise/backend/internal/services"
	"go.uber.org/zap"
)

// RoleAdmin is the role claim required to manage users.
const RoleAdmin = "admin"

var (
	ErrMissingToken = errors.New("authorization header required")
	ErrBadHeader    = errors.New("invalid authorization header format")
	ErrNotAdmin     = errors.New("admin role required")
	ErrRevoked      = errors.New("token has been revoked")
)

type ctxKey string

const adminIDKey ctxKey = "adminID"

// AdminID returns the id of the authenticated admin, if any.
func AdminID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok && id != ""
}

// WithAdminID stores an admin id in ctx the way Middleware does.
func WithAdminID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, adminIDKey, id)
}

// BlacklistKey is the Redis key marking a logged out token.
func BlacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrBadHeader
	}
	return parts[1], nil
}

// Claims is the token payload issued to panel admins.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator checks admin bearer tokens. Redis is optional; without it
// logged out tokens are not tracked.
type Authenticator struct {
	secret []byte
	redis  *redis.Client
	logger *zap.Logger
}

func NewAuthenticator(secret string, redisClient *redis.Client, logger *zap.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), redis: redisClient, logger: logger}
}

// Parse validates the token signature, expiry and role.
func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}
	return claims, nil
}

// Issue signs a token for an admin. Used by tooling and tests; the panel
// login lives outside this service.
func (a *Authenticator) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(a.secret)
}

func (a *Authenticator) revoked(ctx context.Context, token string) (bool, error) {
	if a.redis == nil {
		return false, nil
	}
	n, err := a.redis.Exists(ctx, BlacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke blacklists token until it would have expired anyway.
func (a *Authenticator) Revoke(ctx context.Context, token string, claims *Claims) error {
	if a.redis == nil {
		return nil
	}
	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return a.redis.Set(ctx, BlacklistKey(token), "1", ttl).Err()
}

// Middleware rejects requests without a valid admin token and puts the
// admin id in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
			return
		}

		claims, err := a.Parse(token)
		if errors.Is(err, ErrNotAdmin) {
			services.SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
			return
		}
		if err != nil {
			a.logger.Debug("rejected token", zap.Error(err))
			services.SendErrorResponse(w, "Invalid token", http.StatusUnauthorized, nil)
			return
		}

		revoked, err := a.revoked(r.Context(), token)
		if err != nil {
			a.logger.Error("failed to check token blacklist", zap.Error(err))
			services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
			return
		}
		if revoked {
			services.SendErrorResponse(w, "Invalid token", http.StatusUnauthorized, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAdminID(r.Context(), claims.UserID)))
	})
}
