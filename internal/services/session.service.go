package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"songvault/internal/constants"
	"songvault/internal/database"
	"songvault/pkg/logger"
)

type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore tracks issued token sessions. A token whose session is gone
// is rejected even if its signature and expiry are still valid.
type SessionStore interface {
	Create(ctx context.Context, session Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("session not found")

type valkeySessionStore struct {
	cache database.CacheClient
	log   logger.Logger
}

// NewSessionStore keeps sessions in the Session cache. Without a cache
// client it falls back to process memory.
func NewSessionStore(cache database.CacheClient) SessionStore {
	if cache == nil {
		return NewMemorySessionStore()
	}

	return &valkeySessionStore{
		cache: cache,
		log:   logger.New("sessionStore"),
	}
}

func (s *valkeySessionStore) Create(ctx context.Context, session Session, ttl time.Duration) error {
	if err := database.NewCacheBuilder(s.cache, session.ID).
		WithHash(constants.SessionCachePrefix).
		WithContext(ctx).
		WithStruct(session).
		WithTTL(ttl).
		Set(); err != nil {
		return s.log.Function("Create").Err("failed to store session", err, "userID", session.UserID)
	}
	return nil
}

func (s *valkeySessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	found, err := database.NewCacheBuilder(s.cache, sessionID).
		WithHash(constants.SessionCachePrefix).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return nil, s.log.Function("Get").Err("failed to read session", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *valkeySessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := database.NewCacheBuilder(s.cache, sessionID).
		WithHash(constants.SessionCachePrefix).
		WithContext(ctx).
		Delete(); err != nil {
		return s.log.Function("Delete").Err("failed to delete session", err)
	}
	return nil
}

type memorySession struct {
	session   Session
	expiresAt time.Time
}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Create(_ context.Context, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memorySession{session: session, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(stored.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}

	session := stored.session
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
