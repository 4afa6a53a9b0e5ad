package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stagekit/pkg/cache"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	stageio "github.com/matzehuels/stagekit/pkg/io"
	"github.com/matzehuels/stagekit/pkg/library"
	"github.com/matzehuels/stagekit/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeSummary = "summary"
	keyTypeDiagram = "diagram"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads the document at opts.Path and builds its library. Loading is
// never cached; the library is always built fresh.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	hash, err := hashFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{DocHash: hash}

	loadStart := time.Now()
	doc, err := stageio.Import(opts.Path)
	if err != nil {
		return nil, err
	}
	res.Document = doc
	res.Stats.LoadTime = time.Since(loadStart)
	res.Stats.Records = doc.Len()

	r.Logger.Debug("loaded document",
		"path", opts.Path,
		"records", res.Stats.Records,
		"duration", res.Stats.LoadTime)

	buildStart := time.Now()
	lib, err := library.New(doc, opts.LibraryOptions())
	if err != nil {
		return nil, err
	}
	res.Library = lib
	res.Stats.BuildTime = time.Since(buildStart)
	res.Stats.Assets, _ = lib.Len()

	r.Logger.Info("built asset library",
		"stage", doc.Meta.StageName,
		"assets", res.Stats.Assets,
		"duration", res.Stats.BuildTime)

	return res, nil
}

// SummaryWithCacheInfo returns the library summary of the document at
// opts.Path and whether it came from the cache.
func (r *Runner) SummaryWithCacheInfo(ctx context.Context, opts Options) (library.Summary, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return library.Summary{}, false, err
	}

	hash, err := hashFile(opts.Path)
	if err != nil {
		return library.Summary{}, false, err
	}
	cacheKey := r.Keyer.SummaryKey(hash, opts.SummaryKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey, keyTypeSummary); hit {
			var s library.Summary
			if err := json.Unmarshal(data, &s); err == nil {
				return s, true, nil
			}
		}
	}

	res, err := r.Load(ctx, opts)
	if err != nil {
		return library.Summary{}, false, err
	}
	defer res.Library.Teardown()

	s, err := res.Library.Summary()
	if err != nil {
		return library.Summary{}, false, err
	}
	if data, err := json.Marshal(s); err == nil {
		r.set(ctx, cacheKey, keyTypeSummary, data, cache.TTLSummary)
	}
	return s, false, nil
}

// Summary is a convenience wrapper that calls SummaryWithCacheInfo and discards the cache hit info.
func (r *Runner) Summary(ctx context.Context, opts Options) (library.Summary, error) {
	s, _, err := r.SummaryWithCacheInfo(ctx, opts)
	return s, err
}

// DiagramWithCacheInfo renders the document at opts.Path and reports
// whether the diagram came from the cache.
func (r *Runner) DiagramWithCacheInfo(ctx context.Context, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	if err := opts.ValidateForDiagram(); err != nil {
		return nil, false, err
	}

	hash, err := hashFile(opts.Path)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.DiagramKey(hash, opts.DiagramKeyOpts())

	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey, keyTypeDiagram); hit {
			return data, true, nil
		}
	}

	res, err := r.Load(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	defer res.Library.Teardown()

	return r.DiagramFromResult(ctx, res, opts)
}

// Diagram is a convenience wrapper that calls DiagramWithCacheInfo and discards the cache hit info.
func (r *Runner) Diagram(ctx context.Context, opts Options) ([]byte, error) {
	data, _, err := r.DiagramWithCacheInfo(ctx, opts)
	return data, err
}

// DiagramFromResult renders an already loaded library, using the cache
// keyed by the result's document hash.
func (r *Runner) DiagramFromResult(ctx context.Context, res *Result, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForDiagram(); err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.DiagramKey(res.DocHash, opts.DiagramKeyOpts())

	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey, keyTypeDiagram); hit {
			return data, true, nil
		}
	}

	start := time.Now()
	data, err := RenderDiagram(res.Library, opts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Info("rendered diagram",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))

	r.set(ctx, cacheKey, keyTypeDiagram, data, cache.TTLDiagram)
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		r.Logger.Debug("cache hit", "type", keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return cache.Hash(data), nil
}
