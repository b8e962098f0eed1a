// internal/engine/lifecycle/store.go
package lifecycle

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Record is one vendor's tracked state within an event.
type Record struct {
	Status     Status    `json:"status"`
	VendorName string    `json:"vendorName,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Store persists one bucket of records per event. Implementations must treat
// a missing or malformed bucket as empty on Load — lifecycle data is
// advisory and a corrupt store must never fail a read.
type Store interface {
	Load(ctx context.Context, eventID string) (map[string]Record, error)
	Save(ctx context.Context, eventID string, records map[string]Record) error
	Delete(ctx context.Context, eventID string) error
}

// MemoryStore is the in-process Store used in tests and single-node setups.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string]Record)}
}

func (s *MemoryStore) Load(_ context.Context, eventID string) (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Record, len(s.buckets[eventID]))
	for vendorID, rec := range s.buckets[eventID] {
		out[vendorID] = rec
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, eventID string, records map[string]Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := make(map[string]Record, len(records))
	for vendorID, rec := range records {
		bucket[vendorID] = rec
	}
	s.buckets[eventID] = bucket
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, eventID)
	return nil
}

// RedisStore keeps each event bucket as a single serialized JSON blob under
// lifecycle:<eventID>. Whole-bucket read-modify-write; concurrent writers
// risk last-write-wins, which is accepted for advisory data.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "lifecycle:"}
}

func (s *RedisStore) key(eventID string) string {
	return s.prefix + eventID
}

// Load returns the bucket for an event. A missing key, an unreachable
// store, or a blob that fails to parse all degrade to an empty bucket.
func (s *RedisStore) Load(ctx context.Context, eventID string) (map[string]Record, error) {
	val, err := s.client.Get(ctx, s.key(eventID)).Result()
	if err != nil {
		// Covers redis.Nil and unavailability alike; the data is advisory.
		return map[string]Record{}, nil
	}

	var records map[string]Record
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return map[string]Record{}, nil
	}
	if records == nil {
		records = map[string]Record{}
	}
	return records, nil
}

func (s *RedisStore) Save(ctx context.Context, eventID string, records map[string]Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(eventID), data, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, eventID string) error {
	return s.client.Del(ctx, s.key(eventID)).Err()
}
