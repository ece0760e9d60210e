package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/probatequiz/internal/session"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Registry keeps in-flight session state between requests. Update runs fn
// with exclusive access to one session and stores the state it leaves
// behind; an error from fn discards the change.
type Registry interface {
	Create(ctx context.Context, st session.State) error
	Get(ctx context.Context, id string) (session.State, error)
	Update(ctx context.Context, id string, fn func(*session.State) error) error
}

// MemoryRegistry is a process-local Registry. Entries expire ttl after
// their last write.
type MemoryRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	state   session.State
	expires time.Time
}

// NewMemoryRegistry returns an empty registry.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemoryRegistry) Create(_ context.Context, st session.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.entries[st.ID] = memoryEntry{state: st, expires: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryRegistry) Get(_ context.Context, id string) (session.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.live(id)
	if !ok {
		return session.State{}, ErrSessionNotFound
	}
	return e.state, nil
}

// Update holds the registry lock while fn runs. Navigation is pure
// in-memory work, so the lock is short.
func (r *MemoryRegistry) Update(_ context.Context, id string, fn func(*session.State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.live(id)
	if !ok {
		return ErrSessionNotFound
	}
	st := e.state
	if err := fn(&st); err != nil {
		return err
	}
	r.entries[id] = memoryEntry{state: st, expires: r.now().Add(r.ttl)}
	return nil
}

// Len returns the number of live sessions.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	return len(r.entries)
}

func (r *MemoryRegistry) live(id string) (memoryEntry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !r.now().Before(e.expires) {
		delete(r.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (r *MemoryRegistry) sweep() {
	now := r.now()
	for id, e := range r.entries {
		if !now.Before(e.expires) {
			delete(r.entries, id)
		}
	}
}

// RedisRegistry stores each session as JSON under "session:<id>" with a
// TTL refreshed on every write. Updates use WATCH so two API instances
// cannot interleave on one session.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// maxUpdateAttempts bounds optimistic-lock retries.
const maxUpdateAttempts = 5

// NewRedisRegistry wraps an existing client. The caller owns the client.
func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) key(id string) string {
	return "session:" + id
}

func (r *RedisRegistry) Create(ctx context.Context, st session.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(st.ID), data, r.ttl).Err()
}

func (r *RedisRegistry) Get(ctx context.Context, id string) (session.State, error) {
	return r.load(ctx, r.client, id)
}

func (r *RedisRegistry) Update(ctx context.Context, id string, fn func(*session.State) error) error {
	key := r.key(id)
	txf := func(tx *redis.Tx) error {
		st, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(&st); err != nil {
			return err
		}
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update session %s: too much contention", id)
}

// getter is the part of *redis.Client and *redis.Tx that load needs.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRegistry) load(ctx context.Context, c getter, id string) (session.State, error) {
	data, err := c.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return session.State{}, ErrSessionNotFound
	}
	if err != nil {
		return session.State{}, err
	}
	var st session.State
	if err := json.Unmarshal(data, &st); err != nil {
		return session.State{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, nil
}

var (
	_ Registry = (*MemoryRegistry)(nil)
	_ Registry = (*RedisRegistry)(nil)
)
