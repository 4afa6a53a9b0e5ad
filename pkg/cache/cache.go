// Package cache provides the caches used by the CLI and the HTTP server to
// avoid rebuilding summaries and diagrams for documents they have already
// seen.
//
// Three backends implement [Cache]:
//   - [FileCache]: zstd-compressed entries in a local directory (CLI default)
//   - [RedisCache]: a shared Redis server, for several API instances
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys are produced by a [Keyer]. Every key is derived from the SHA-256
// hash of the document bytes plus the options that affect the cached
// value, so editing the document or changing an option never returns a
// stale entry.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (hit is false), not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the resources held by the cache.
	Close() error
}

// Default time-to-live per cached value type.
const (
	TTLSummary = 24 * time.Hour
	TTLDiagram = 7 * 24 * time.Hour
)

// SummaryKeyOpts are the options that change a library summary.
type SummaryKeyOpts struct {
	RejectDuplicates bool `json:"reject_duplicates,omitempty"`
}

// DiagramKeyOpts are the options that change a rendered diagram.
type DiagramKeyOpts struct {
	RejectDuplicates bool `json:"reject_duplicates,omitempty"`

	Format       string `json:"format"`
	Detailed     bool   `json:"detailed,omitempty"`
	ShowDangling bool   `json:"show_dangling,omitempty"`
	Direction    string `json:"direction,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// SummaryKey returns the key of the summary of a document.
	SummaryKey(docHash string, opts SummaryKeyOpts) string

	// DiagramKey returns the key of a rendered asset diagram.
	DiagramKey(docHash string, opts DiagramKeyOpts) string
}

// DefaultKeyer hashes the document hash and options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SummaryKey returns "summary:<hash>".
func (DefaultKeyer) SummaryKey(docHash string, opts SummaryKeyOpts) string {
	return hashKey("summary", docHash, opts)
}

// DiagramKey returns "diagram:<hash>".
func (DefaultKeyer) DiagramKey(docHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", docHash, opts)
}
