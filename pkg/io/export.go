package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
)

// document is the wire form of an export.
type document struct {
	Bitmaps   []asset.Record `json:"Bitmaps"`
	Shapes    []asset.Record `json:"Shapes"`
	Texts     []asset.Record `json:"Texts"`
	Timelines []asset.Record `json:"Timelines"`
	Meta      asset.Record   `json:"_meta"`
}

// WriteJSON encodes doc as indented JSON and writes it to w. Records and
// settings are written as they were read, so the output can be re-imported
// with [ReadJSON].
func WriteJSON(doc *asset.Document, w io.Writer) error {
	if doc == nil {
		return errs.New(errs.ErrCodeInvalidInput, "document is nil")
	}
	out := document{
		Bitmaps:   nonNil(doc.Bitmaps),
		Shapes:    nonNil(doc.Shapes),
		Texts:     nonNil(doc.Texts),
		Timelines: nonNil(doc.Timelines),
		Meta:      doc.Meta.Settings,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *asset.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

func nonNil(recs []asset.Record) []asset.Record {
	if recs == nil {
		return []asset.Record{}
	}
	return recs
}
