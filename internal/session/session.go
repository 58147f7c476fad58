// Package session owns the gateway's login lifecycle: a session is created at login,
// read on every authenticated request and deleted at logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/skillbridge/mobile-gateway/internal/status"
)

// ErrSessionNotFound indicates the session expired or was logged out.
var ErrSessionNotFound = errors.New("session not found")

// Session is the immutable per-login state handed to platform calls.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StatusRole maps the platform role onto the classification role.
func (s Session) StatusRole() status.Role {
	return status.ParseRole(s.Role)
}

// IsTeacher reports whether the session belongs to a teacher account.
func (s Session) IsTeacher() bool {
	return s.StatusRole() == status.RoleTeacher
}

// Store persists sessions for their lifetime.
type Store interface {
	Create(ctx context.Context, session Session) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore builds a Redis backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl, now: time.Now}
}

func (s *redisStore) Create(ctx context.Context, session Session) (Session, error) {
	now := s.now().UTC()
	session.ID = uuid.NewString()
	session.Role = strings.ToLower(strings.TrimSpace(session.Role))
	session.CreatedAt = now
	session.ExpiresAt = now.Add(s.ttl)

	payload, err := json.Marshal(session)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, key(session.ID), payload, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (Session, error) {
	if strings.TrimSpace(id) == "" {
		return Session{}, ErrSessionNotFound
	}

	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return session, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func key(id string) string {
	return "session:" + id
}
