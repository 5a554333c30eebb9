package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session"

// ErrNoSession reports a missing, expired, or revoked session.
var ErrNoSession = errors.New("no active session")

// Manager issues and resolves server-side sessions. The token handed to the
// browser is an HMAC-signed JWT whose jti keys a Redis entry holding the
// user id; deleting the entry on logout revokes the token immediately.
type Manager struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewManager(rdb *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{rdb: rdb, secret: []byte(secret), ttl: ttl}
}

// TTL returns the session lifetime, also used for the cookie max-age.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a session for userID and returns its token.
func (m *Manager) Issue(ctx context.Context, userID uint) (string, error) {
	jti := uuid.NewString()
	token, err := m.signToken(jti, userID)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := m.rdb.Set(ctx, sessionKey(jti), uint64(userID), m.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id behind token, or ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	jti, userID, err := m.parseToken(token)
	if err != nil {
		return 0, ErrNoSession
	}
	stored, err := m.rdb.Get(ctx, sessionKey(jti)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}
	if uint(stored) != userID {
		return 0, ErrNoSession
	}
	return userID, nil
}

// Revoke deletes the server-side session behind token. Unparseable tokens
// have nothing to revoke and are not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	jti, _, err := m.parseToken(token)
	if err != nil {
		return nil
	}
	return m.rdb.Del(ctx, sessionKey(jti)).Err()
}

func sessionKey(jti string) string { return "session:" + jti }

func (m *Manager) signToken(jti string, userID uint) (string, error) {
	claims := jwt.MapClaims{
		"jti":     jti,
		"user_id": userID,
		"exp":     time.Now().Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parseToken(token string) (string, uint, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return "", 0, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, errors.New("invalid token claims")
	}
	jti, _ := claims["jti"].(string)
	uid, ok := claims["user_id"].(float64)
	if jti == "" || !ok {
		return "", 0, errors.New("invalid token claims")
	}
	return jti, uint(uid), nil
}
