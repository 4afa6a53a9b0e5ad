package library

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/observability"
)

// DuplicatePolicy decides what happens when two records share an asset id.
type DuplicatePolicy int

const (
	// DuplicatesReplace lets the record processed last own the id.
	DuplicatesReplace DuplicatePolicy = iota
	// DuplicatesReject fails construction with a DUPLICATE_ASSET error.
	DuplicatesReject
)

// Options configures library construction.
type Options struct {
	Duplicates DuplicatePolicy
	// Logger receives construction diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

// Library owns every asset of one export and the id lookup over them.
//
// The zero value is not usable - use New.
type Library struct {
	mu       sync.RWMutex
	tornDown bool

	bitmaps   []*asset.Bitmap
	shapes    []*asset.Shape
	texts     []*asset.Text
	timelines []asset.Asset
	byID      map[int]asset.Asset

	stage        *asset.Stage
	hasContainer bool
	meta         asset.Meta
}

// New validates doc and constructs the asset graph. On error no library is
// returned.
func New(doc *asset.Document, opts Options) (*Library, error) {
	var stageName string
	if doc != nil {
		stageName = doc.Meta.StageName
	}
	hooks := observability.Library()
	if doc != nil {
		hooks.OnBuildStart(stageName, doc.Len())
	}

	start := time.Now()
	lib, err := build(doc, opts)
	count := 0
	if lib != nil {
		count = len(lib.byID)
	}
	hooks.OnBuildComplete(stageName, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// builder carries the state of one construction pass.
type builder struct {
	lib    *Library
	opts   Options
	logger *log.Logger
	origin map[int]asset.Category
}

func build(doc *asset.Document, opts Options) (*Library, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		lib: &Library{
			bitmaps:   make([]*asset.Bitmap, 0, len(doc.Bitmaps)),
			shapes:    make([]*asset.Shape, 0, len(doc.Shapes)),
			texts:     make([]*asset.Text, 0, len(doc.Texts)),
			timelines: make([]asset.Asset, 0, len(doc.Timelines)),
			byID:      make(map[int]asset.Asset, doc.Len()),
			meta:      doc.Meta,
		},
		opts:   opts,
		logger: opts.Logger,
		origin: make(map[int]asset.Category, doc.Len()),
	}
	if b.logger == nil {
		b.logger = log.Default()
	}

	for i, rec := range doc.Bitmaps {
		bm, err := asset.NewBitmap(rec)
		if err != nil {
			return nil, atRecord(err, asset.CategoryBitmaps, i)
		}
		b.lib.bitmaps = append(b.lib.bitmaps, bm)
		if err := b.register(bm, asset.CategoryBitmaps, i); err != nil {
			return nil, err
		}
	}

	for i, rec := range doc.Shapes {
		s, err := asset.NewShape(rec, doc.Meta.StageName)
		if err != nil {
			return nil, atRecord(err, asset.CategoryShapes, i)
		}
		b.lib.shapes = append(b.lib.shapes, s)
		if err := b.register(s, asset.CategoryShapes, i); err != nil {
			return nil, err
		}
	}

	for i, rec := range doc.Texts {
		t, err := asset.NewText(rec)
		if err != nil {
			return nil, atRecord(err, asset.CategoryTexts, i)
		}
		b.lib.texts = append(b.lib.texts, t)
		if err := b.register(t, asset.CategoryTexts, i); err != nil {
			return nil, err
		}
	}

	for i, rec := range doc.Timelines {
		kind := asset.Classify(rec)
		a, err := asset.New(kind, rec, doc.Meta)
		if err != nil {
			return nil, atRecord(err, asset.CategoryTimelines, i)
		}
		switch kind {
		case asset.KindContainer:
			b.lib.hasContainer = true
		case asset.KindStage:
			if b.lib.stage != nil {
				b.logger.Warn("multiple stage timelines, last one wins",
					"previous", b.lib.stage.AssetID(), "assetId", a.AssetID())
			}
			b.lib.stage = a.(*asset.Stage)
		}
		b.lib.timelines = append(b.lib.timelines, a)
		if err := b.register(a, asset.CategoryTimelines, i); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("built asset library",
		"stage", doc.Meta.StageName,
		"bitmaps", len(b.lib.bitmaps),
		"shapes", len(b.lib.shapes),
		"texts", len(b.lib.texts),
		"timelines", len(b.lib.timelines),
		"hasContainer", b.lib.hasContainer)

	return b.lib, nil
}

func (b *builder) register(a asset.Asset, c asset.Category, index int) error {
	id := a.AssetID()
	if prev, dup := b.origin[id]; dup {
		if b.opts.Duplicates == DuplicatesReject {
			return errs.New(errs.ErrCodeDuplicateID, "%s[%d]: asset id %d already used by %s", c, index, id, prev)
		}
		b.logger.Warn("duplicate asset id, last one wins", "assetId", id, "previous", prev, "category", c)
	}
	b.origin[id] = c
	b.lib.byID[id] = a
	return nil
}

// atRecord prefixes a construction error with the record's position.
func atRecord(err error, c asset.Category, index int) error {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInvalidSchema
	}
	return errs.New(code, "%s[%d]: %s", c, index, errs.UserMessage(err))
}

func (l *Library) active() error {
	if l.tornDown {
		return errs.New(errs.ErrCodeTornDown, "asset library has been torn down")
	}
	return nil
}

// Lookup returns the asset registered under id.
func (l *Library) Lookup(id int) (asset.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	a, ok := l.byID[id]
	if !ok {
		observability.Library().OnLookupMiss(id)
		return nil, errs.New(errs.ErrCodeAssetNotFound, "asset %d not found", id)
	}
	return a, nil
}

// CreateInstance resolves id and returns a new instance of it. Lookup
// errors are returned unchanged. Instances are never cached.
func (l *Library) CreateInstance(id, instanceID int) (*asset.Instance, error) {
	a, err := l.Lookup(id)
	if err != nil {
		return nil, err
	}
	inst := a.Create(instanceID)
	observability.Library().OnInstanceCreate(a.Kind().String(), id)
	return inst, nil
}

// Bitmaps returns the bitmaps in input order.
func (l *Library) Bitmaps() ([]*asset.Bitmap, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return slices.Clone(l.bitmaps), nil
}

// Shapes returns the shapes in input order.
func (l *Library) Shapes() ([]*asset.Shape, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return slices.Clone(l.shapes), nil
}

// Texts returns the text fields in input order.
func (l *Library) Texts() ([]*asset.Text, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return slices.Clone(l.texts), nil
}

// Timelines returns every timeline variant in input order.
func (l *Library) Timelines() ([]asset.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return slices.Clone(l.timelines), nil
}

// Assets returns every constructed asset in processing order, including
// assets whose id was later taken over by a duplicate.
func (l *Library) Assets() ([]asset.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return l.assets(), nil
}

// Index returns a copy of the id lookup table. Unlike Lookup, misses
// against it are not reported to the lookup hooks.
func (l *Library) Index() (map[int]asset.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return maps.Clone(l.byID), nil
}

func (l *Library) assets() []asset.Asset {
	out := make([]asset.Asset, 0, len(l.bitmaps)+len(l.shapes)+len(l.texts)+len(l.timelines))
	for _, b := range l.bitmaps {
		out = append(out, b)
	}
	for _, s := range l.shapes {
		out = append(out, s)
	}
	for _, t := range l.texts {
		out = append(out, t)
	}
	return append(out, l.timelines...)
}

// Stage returns the root timeline, or nil if the export had none.
func (l *Library) Stage() (*asset.Stage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return l.stage, nil
}

// HasContainer reports whether any timeline was classified as a container.
func (l *Library) HasContainer() (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return false, err
	}
	return l.hasContainer, nil
}

// Meta returns the build settings of the export.
func (l *Library) Meta() (asset.Meta, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return asset.Meta{}, err
	}
	return l.meta, nil
}

// Len returns the number of distinct asset ids.
func (l *Library) Len() (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return 0, err
	}
	return len(l.byID), nil
}

// TornDown reports whether Teardown has been called.
func (l *Library) TornDown() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tornDown
}

// Teardown releases all assets. Calling it again is a no-op.
func (l *Library) Teardown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tornDown {
		return
	}
	l.bitmaps = nil
	l.shapes = nil
	l.texts = nil
	l.timelines = nil
	l.byID = nil
	l.stage = nil
	l.meta = asset.Meta{}
	l.tornDown = true
}
