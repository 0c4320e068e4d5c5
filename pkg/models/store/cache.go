package store

import "time"

// CacheEntry is one persisted fetch result, keyed by (category, key).
// Entries are overwritten on refresh, never versioned.
type CacheEntry struct {
	Category  string
	Key       string
	Payload   []byte
	Source    string
	WrittenAt time.Time
}
