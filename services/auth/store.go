package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"festa/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// sessionRecord is what the store persists per live session, keyed by the
// SHA-256 hash of the bearer token.
type sessionRecord struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
}

// SessionStore persists live sessions. Deleting a key invalidates the
// session immediately; Get on a missing key returns (nil, nil).
type SessionStore interface {
	Save(ctx context.Context, tokenHash string, rec sessionRecord, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (*sessionRecord, error)
	Delete(ctx context.Context, tokenHash string) error
}

// RedisSessionStore keeps sessions in Redis with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

// NewRedisSessionStore creates a session store backed by the given client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func (s *RedisSessionStore) Save(ctx context.Context, tokenHash string, rec sessionRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, tokenHash string) (*sessionRecord, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+tokenHash).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &rec, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.Client.Del(ctx, sessionKeyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps sessions in a map; used by tests and local runs
// without Redis.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	rec       sessionRecord
	expiresAt time.Time
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession)}
}

var _ SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) Save(_ context.Context, tokenHash string, rec sessionRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenHash] = memorySession{rec: rec, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, tokenHash string) (*sessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[tokenHash]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, nil
	}
	rec := sess.rec
	return &rec, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}
