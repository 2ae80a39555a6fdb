package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached payload with its expiry metadata.
type Entry struct {
	// Key is the SHA-256 cache key.
	Key string `json:"key"`

	// Data is the cached page, already JSON encoded.
	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is zero for entries that never expire.
	ExpiresAt time.Time `json:"expires_at,omitzero"`

	TTLSeconds int `json:"ttl_seconds"`
}

// NewEntry creates an entry stamped with now. ttlSeconds <= 0 never expires.
func NewEntry(key string, data json.RawMessage, ttlSeconds int, now time.Time) *Entry {
	e := &Entry{
		Key:        key,
		Data:       data,
		CreatedAt:  now.UTC().Truncate(time.Second),
		TTLSeconds: ttlSeconds,
	}
	if ttlSeconds > 0 {
		e.ExpiresAt = e.CreatedAt.Add(time.Duration(ttlSeconds) * time.Second)
	}
	return e
}

// IsExpired reports whether the entry is past its expiry at now.
func (e *Entry) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Age returns how long ago the entry was written.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}
