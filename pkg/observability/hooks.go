// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends to the core library.
// Consumers register hooks at startup to receive events about library
// construction, instance creation, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// A Prometheus implementation is provided by [NewPrometheusHooks].
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	    observability.SetLibraryHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Library().OnBuildStart(stageName, records)
//	// ... construct assets ...
//	observability.Library().OnBuildComplete(stageName, assets, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Library Hooks
// =============================================================================

// LibraryHooks receives events from asset library construction and queries.
type LibraryHooks interface {
	// Construction events
	OnBuildStart(stageName string, records int)
	OnBuildComplete(stageName string, assets int, duration time.Duration, err error)

	// Query events
	OnInstanceCreate(kind string, assetID int)
	OnLookupMiss(assetID int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLibraryHooks is a no-op implementation of LibraryHooks.
type NoopLibraryHooks struct{}

func (NoopLibraryHooks) OnBuildStart(string, int)                          {}
func (NoopLibraryHooks) OnBuildComplete(string, int, time.Duration, error) {}
func (NoopLibraryHooks) OnInstanceCreate(string, int)                      {}
func (NoopLibraryHooks) OnLookupMiss(int)                                  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	libraryHooks LibraryHooks = NoopLibraryHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetLibraryHooks registers custom library hooks.
// This should be called once at application startup before any library is built.
func SetLibraryHooks(h LibraryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		libraryHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Library returns the registered library hooks.
func Library() LibraryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return libraryHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	libraryHooks = NoopLibraryHooks{}
	cacheHooks = NoopCacheHooks{}
}
