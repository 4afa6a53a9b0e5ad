package asset

import (
	errs "github.com/matzehuels/stagekit/pkg/errors"
)

// Category names a top-level record array of the export document.
type Category string

// Record categories, in the order the library processes them.
const (
	CategoryBitmaps   Category = "Bitmaps"
	CategoryShapes    Category = "Shapes"
	CategoryTexts     Category = "Texts"
	CategoryTimelines Category = "Timelines"
)

// FieldMeta is the top-level field holding build settings.
const FieldMeta = "_meta"

// Categories lists the record categories in processing order.
var Categories = []Category{CategoryBitmaps, CategoryShapes, CategoryTexts, CategoryTimelines}

// Meta is the build settings of an export.
type Meta struct {
	StageName string
	Framerate float64
	// Settings is the whole _meta object, passed through untouched.
	Settings Record
}

// MetaFromRecord reads the required stageName and framerate settings.
func MetaFromRecord(rec Record) (Meta, error) {
	if rec == nil {
		return Meta{}, errs.New(errs.ErrCodeInvalidSchema, "missing required field %q", FieldMeta)
	}
	name, ok := rec.String("stageName")
	if !ok {
		return Meta{}, errs.New(errs.ErrCodeInvalidSchema, "missing required field %q", FieldMeta+".stageName")
	}
	fps, ok := rec.Float("framerate")
	if !ok {
		return Meta{}, errs.New(errs.ErrCodeInvalidSchema, "missing required field %q", FieldMeta+".framerate")
	}
	return Meta{StageName: name, Framerate: fps, Settings: rec}, nil
}

// Document is a decoded export. A nil category slice means the field was
// absent from the input; an empty export uses empty, non-nil slices.
type Document struct {
	Bitmaps   []Record
	Shapes    []Record
	Texts     []Record
	Timelines []Record
	Meta      Meta
}

// Records returns the records of one category.
func (d *Document) Records(c Category) []Record {
	switch c {
	case CategoryBitmaps:
		return d.Bitmaps
	case CategoryShapes:
		return d.Shapes
	case CategoryTexts:
		return d.Texts
	case CategoryTimelines:
		return d.Timelines
	}
	return nil
}

// SetRecords replaces the records of one category.
func (d *Document) SetRecords(c Category, recs []Record) {
	switch c {
	case CategoryBitmaps:
		d.Bitmaps = recs
	case CategoryShapes:
		d.Shapes = recs
	case CategoryTexts:
		d.Texts = recs
	case CategoryTimelines:
		d.Timelines = recs
	}
}

// Len returns the total number of records.
func (d *Document) Len() int {
	return len(d.Bitmaps) + len(d.Shapes) + len(d.Texts) + len(d.Timelines)
}

// Validate checks the top-level shape of the document: every category
// present and usable build settings. Per-record checks happen during
// construction.
func (d *Document) Validate() error {
	if d == nil {
		return errs.New(errs.ErrCodeInvalidSchema, "document is nil")
	}
	for _, c := range Categories {
		if d.Records(c) == nil {
			return errs.New(errs.ErrCodeInvalidSchema, "missing required field %q", string(c))
		}
	}
	if d.Meta.Settings == nil {
		return errs.New(errs.ErrCodeInvalidSchema, "missing required field %q", FieldMeta)
	}
	if err := errs.ValidateStageName(d.Meta.StageName); err != nil {
		return err
	}
	return errs.ValidateFramerate(d.Meta.Framerate)
}
