package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/handler/dto"
)

type contextKey string

const (
	// ContextKeyCaller is the key for storing the caller in request context.
	ContextKeyCaller contextKey = "caller"

	// TokenCookie is the cookie holding the session token.
	TokenCookie = "token"

	// userIDClaim is the JWT claim carrying the user id.
	userIDClaim = "userId"
)

// UserLookup loads users by id.
type UserLookup interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthMiddleware identifies callers from signed session tokens.
type AuthMiddleware struct {
	users  UserLookup
	secret []byte
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(users UserLookup, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		users:  users,
		secret: []byte(secret),
	}
}

// Authenticate requires a valid token of an active user and adds the caller to request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := m.identify(r)
		if err != nil {
			m.reject(w, r, err)
			return
		}
		if caller == nil {
			m.reject(w, r, domain.ErrUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyCaller, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identify adds the caller to request context when a valid token is present.
// Requests without a usable token continue anonymously.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := m.identify(r)
		if err != nil {
			slog.Warn("ignoring unusable token", "path", r.URL.Path, "error", err)
		}
		if caller != nil {
			r = r.WithContext(context.WithValue(r.Context(), ContextKeyCaller, caller))
		}
		next.ServeHTTP(w, r)
	})
}

// identify returns nil without error when the request carries no token.
func (m *AuthMiddleware) identify(r *http.Request) (*domain.Caller, error) {
	tokenString := extractToken(r)
	if tokenString == "" {
		return nil, nil
	}

	userID, err := m.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return &domain.Caller{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (m *AuthMiddleware) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}

	return userID, nil
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := dto.MapDomainError(err)
	if status == http.StatusUnauthorized {
		slog.Warn("request rejected", "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.NewErrorResponse(code, message)); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// IssueToken signs a session token for userID valid for ttl.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: userID,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// CallerFromContext returns the identified caller, or nil for anonymous requests.
func CallerFromContext(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(ContextKeyCaller).(*domain.Caller)
	return caller
}

// extractToken reads the session cookie, falling back to a Bearer header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
