package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no live session is stored under a key.
var ErrSessionNotFound = errors.New("session not found")

// SessionStorage persists serialized session payloads under a key.
// A zero ttl means the entry never expires.
type SessionStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type memorySession struct {
	payload   []byte
	expiresAt time.Time
}

// MemorySessionStorage keeps sessions in process memory.
type MemorySessionStorage struct {
	mu    sync.RWMutex
	items map[string]memorySession
	now   func() time.Time
}

// NewMemorySessionStorage constructs an empty in-process store.
func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{items: make(map[string]memorySession), now: time.Now}
}

func (s *MemorySessionStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return append([]byte(nil), item.payload...), nil
}

func (s *MemorySessionStorage) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	item := memorySession{payload: append([]byte(nil), payload...)}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// RedisSessionStorage keeps sessions in Redis so they survive restarts and are shared across replicas.
// Keys are stored as given; callers own the namespace.
type RedisSessionStorage struct {
	client *redis.Client
}

// NewRedisSessionStorage wraps a Redis client.
func NewRedisSessionStorage(client *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{client: client}
}

func (s *RedisSessionStorage) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return raw, nil
}

func (s *RedisSessionStorage) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisSessionStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

const sessionSchema = `CREATE TABLE IF NOT EXISTS sessions (
	key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	expires_at INTEGER NOT NULL
)`

// SQLSessionStorage keeps sessions in a SQLite table. expires_at is unix
// seconds; zero means no expiry.
type SQLSessionStorage struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLSessionStorage ensures the sessions table exists.
func NewSQLSessionStorage(ctx context.Context, db *sqlx.DB) (*SQLSessionStorage, error) {
	if _, err := db.ExecContext(ctx, sessionSchema); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SQLSessionStorage{db: db, now: time.Now}, nil
}

func (s *SQLSessionStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var row struct {
		Payload   []byte `db:"payload"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := s.db.GetContext(ctx, &row, `SELECT payload, expires_at FROM sessions WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	if row.ExpiresAt > 0 && s.now().Unix() >= row.ExpiresAt {
		_ = s.Delete(ctx, key)
		return nil, ErrSessionNotFound
	}
	return row.Payload, nil
}

func (s *SQLSessionStorage) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (key, payload, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, payload, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLSessionStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
