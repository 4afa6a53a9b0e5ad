package io

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/store"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Schema returns the JSON schema export documents are validated against.
func Schema() []byte {
	return schemaJSON
}

// ReadJSON decodes an export document from r.
//
// The input is checked against the embedded schema before decoding: the four
// record arrays and _meta must be present, _meta must carry stageName and a
// positive framerate, and every record needs an integer assetId. A schema
// failure is an INVALID_SCHEMA error listing every violation; malformed JSON
// is an INVALID_FORMAT error.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*asset.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return decode(data)
}

// ImportJSON reads the JSON export at path.
func ImportJSON(path string) (*asset.Document, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadYAML decodes an export document written as YAML. The document is
// validated with the same schema as [ReadJSON].
func ReadYAML(r io.Reader) (*asset.Document, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return decode(data)
}

// ImportYAML reads the YAML export at path.
func ImportYAML(path string) (*asset.Document, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadYAML(f)
}

// Import reads an export document, choosing the decoder by file extension:
// .json, .yaml or .yml, or a .res resource pack written by [store.Pack].
func Import(path string) (*asset.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".yaml", ".yml":
		return ImportYAML(path)
	case store.Ext:
		if _, err := os.Stat(path); err != nil {
			return nil, openError(path, err)
		}
		return store.Unpack(path)
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unsupported document type %q (want .json, .yaml, .yml or %s)", filepath.Ext(path), store.Ext)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	return f, nil
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}

func decode(data []byte) (*asset.Document, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var w document
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	meta, err := asset.MetaFromRecord(w.Meta)
	if err != nil {
		return nil, err
	}
	return &asset.Document{
		Bitmaps:   w.Bitmaps,
		Shapes:    w.Shapes,
		Texts:     w.Texts,
		Timelines: w.Timelines,
		Meta:      meta,
	}, nil
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "load schema")
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return errs.New(errs.ErrCodeInvalidSchema, "%s", strings.Join(violations, "; "))
}
