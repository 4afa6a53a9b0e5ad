// Package pipeline runs the load → build → summarize/render steps shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read an export document (.json, .yaml or .res) and hash its bytes
//  2. Build: Construct the asset library from the document
//  3. Output: Summarize the library or render it as a DOT or SVG diagram
//
// Summaries and diagrams are cached by document hash, so repeated runs over
// an unchanged document skip loading and building entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	svg, err := runner.Diagram(ctx, pipeline.Options{
//	    Path:   "export.json",
//	    Format: pipeline.FormatSVG,
//	})
//
// Load a library for queries:
//
//	res, err := runner.Load(ctx, pipeline.Options{Path: "export.json"})
//	inst, err := res.Library.CreateInstance(7, 1)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stagekit/pkg/asset"
	"github.com/matzehuels/stagekit/pkg/cache"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/library"
	"github.com/matzehuels/stagekit/pkg/render/nodelink"
)

// Format constants for diagram output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// DefaultFormat is the default diagram format.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported diagram formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Path             string `json:"path"`
	RejectDuplicates bool   `json:"reject_duplicates,omitempty"`
	Refresh          bool   `json:"refresh,omitempty"` // Ignore cached outputs

	// Diagram options
	Format       string `json:"format,omitempty"`
	Detailed     bool   `json:"detailed,omitempty"`
	ShowDangling bool   `json:"show_dangling,omitempty"`
	Direction    string `json:"direction,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of loading a document.
type Result struct {
	// Document is the decoded export.
	Document *asset.Document

	// DocHash is the SHA-256 hash of the document file.
	DocHash string

	// Library is the asset library built from Document.
	Library *library.Library

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records   int
	Assets    int
	LoadTime  time.Duration
	BuildTime time.Duration
}

// ValidateFormat checks that a diagram format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" {
		return errs.New(errs.ErrCodeInvalidInput, "document path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetDiagramDefaults sets default values for diagram rendering.
func (o *Options) SetDiagramDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Direction == "" {
		o.Direction = nodelink.DirectionTB
	}
}

// ValidateForDiagram validates and sets defaults for diagram rendering.
func (o *Options) ValidateForDiagram() error {
	o.SetDiagramDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Direction != nodelink.DirectionTB && o.Direction != nodelink.DirectionLR {
		return errs.New(errs.ErrCodeInvalidInput, "invalid direction: %q (must be one of: TB, LR)", o.Direction)
	}
	return nil
}

// LibraryOptions returns the library construction options.
func (o *Options) LibraryOptions() library.Options {
	opts := library.Options{Logger: o.Logger}
	if o.RejectDuplicates {
		opts.Duplicates = library.DuplicatesReject
	}
	return opts
}

// NodelinkOptions returns the diagram options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{
		Detailed:     o.Detailed,
		ShowDangling: o.ShowDangling,
		Direction:    o.Direction,
	}
}

// SummaryKeyOpts returns cache key options for summaries.
func (o *Options) SummaryKeyOpts() cache.SummaryKeyOpts {
	return cache.SummaryKeyOpts{RejectDuplicates: o.RejectDuplicates}
}

// DiagramKeyOpts returns cache key options for diagrams.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		RejectDuplicates: o.RejectDuplicates,
		Format:           o.Format,
		Detailed:         o.Detailed,
		ShowDangling:     o.ShowDangling,
		Direction:        o.Direction,
	}
}

// RenderDiagram renders lib in the format set in opts.
func RenderDiagram(lib *library.Library, opts Options) ([]byte, error) {
	if err := opts.ValidateForDiagram(); err != nil {
		return nil, err
	}
	dot, err := nodelink.ToDOT(lib, opts.NodelinkOptions())
	if err != nil {
		return nil, err
	}
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return svg, nil
}
