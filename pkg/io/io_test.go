package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/library"
)

func TestImportJSON(t *testing.T) {
	doc, err := Import(filepath.Join("testdata", "export.json"))
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	if len(doc.Bitmaps) != 2 || len(doc.Shapes) != 1 || len(doc.Texts) != 1 || len(doc.Timelines) != 3 {
		t.Errorf("counts = %d/%d/%d/%d, want 2/1/1/3",
			len(doc.Bitmaps), len(doc.Shapes), len(doc.Texts), len(doc.Timelines))
	}
	if doc.Meta.StageName != "Forest" || doc.Meta.Framerate != 24 {
		t.Errorf("Meta = %+v", doc.Meta)
	}
	if w, _ := doc.Meta.Settings.Float("width"); w != 550 {
		t.Errorf("Settings[width] = %v, want 550", doc.Meta.Settings["width"])
	}
	if src, _ := doc.Bitmaps[1].String("src"); src != "images/tree.png" {
		t.Errorf("Bitmaps[1].src = %q", src)
	}
}

func TestImportYAML(t *testing.T) {
	doc, err := Import(filepath.Join("testdata", "export.yaml"))
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if doc.Meta.Framerate != 30 || len(doc.Texts) != 0 || doc.Texts == nil {
		t.Errorf("doc = %+v", doc)
	}

	lib, err := library.New(doc, library.Options{})
	if err != nil {
		t.Fatalf("library.New() error: %v", err)
	}
	shapes, _ := lib.Shapes()
	if shapes[0].Name != "Forest_7" || len(shapes[0].Draw) != 2 {
		t.Errorf("shape = %+v", shapes[0])
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errs.Code
		wantMsg  []string
	}{
		{
			name:     "malformed",
			input:    `{"Bitmaps": [`,
			wantCode: errs.ErrCodeInvalidFormat,
		},
		{
			name:     "not an object",
			input:    `[]`,
			wantCode: errs.ErrCodeInvalidSchema,
		},
		{
			name:     "missing categories",
			input:    `{"Bitmaps": [], "_meta": {"stageName": "MC", "framerate": 24}}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"Shapes is required", "Texts is required", "Timelines is required"},
		},
		{
			name:     "missing meta",
			input:    `{"Bitmaps": [], "Shapes": [], "Texts": [], "Timelines": []}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"_meta is required"},
		},
		{
			name:     "record without asset id",
			input:    `{"Bitmaps": [{"src": "a.png"}], "Shapes": [], "Texts": [], "Timelines": [], "_meta": {"stageName": "MC", "framerate": 24}}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"Bitmaps.0", "assetId is required"},
		},
		{
			name:     "fractional asset id",
			input:    `{"Bitmaps": [], "Shapes": [{"assetId": 1.5}], "Texts": [], "Timelines": [], "_meta": {"stageName": "MC", "framerate": 24}}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"Shapes.0.assetId"},
		},
		{
			name:     "asset id out of range",
			input:    `{"Bitmaps": [], "Shapes": [{"assetId": 1e20}], "Texts": [], "Timelines": [], "_meta": {"stageName": "MC", "framerate": 24}}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"Shapes.0.assetId"},
		},
		{
			name:     "zero framerate",
			input:    `{"Bitmaps": [], "Shapes": [], "Texts": [], "Timelines": [], "_meta": {"stageName": "MC", "framerate": 0}}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"framerate"},
		},
		{
			name:     "child without asset id",
			input:    `{"Bitmaps": [], "Shapes": [], "Texts": [], "Timelines": [{"assetId": 1, "children": [{"instanceId": 2}]}], "_meta": {"stageName": "MC", "framerate": 24}}`,
			wantCode: errs.ErrCodeInvalidSchema,
			wantMsg:  []string{"Timelines.0.children.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadJSON(strings.NewReader(tt.input))
			if doc != nil {
				t.Errorf("ReadJSON() returned a document on error")
			}
			if got := errs.GetCode(err); got != tt.wantCode {
				t.Fatalf("ReadJSON() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
			for _, msg := range tt.wantMsg {
				if !strings.Contains(err.Error(), msg) {
					t.Errorf("error %q does not contain %q", err.Error(), msg)
				}
			}
		})
	}
}

func TestReadYAMLMalformed(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("Bitmaps: [\n"))
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("ReadYAML() error = %v, want INVALID_FORMAT", err)
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Import(filepath.Join(dir, "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	_, err = Import(filepath.Join(dir, "missing.res"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Import(missing pack) error = %v, want FILE_NOT_FOUND", err)
	}

	txt := filepath.Join(dir, "export.txt")
	if err := os.WriteFile(txt, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Import(txt)
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Import(.txt) error = %v, want UNSUPPORTED", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	doc, err := ImportJSON(filepath.Join("testdata", "export.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	for _, c := range asset.Categories {
		want, have := doc.Records(c), got.Records(c)
		if len(want) != len(have) {
			t.Fatalf("%s: %d records, want %d", c, len(have), len(want))
		}
		for i := range want {
			wid, _ := want[i].AssetID()
			hid, _ := have[i].AssetID()
			if wid != hid {
				t.Errorf("%s[%d] assetId = %d, want %d", c, i, hid, wid)
			}
		}
	}
	if got.Meta.Settings["compressJS"] != false {
		t.Errorf("settings not preserved: %v", got.Meta.Settings)
	}
}

func TestWriteJSONEmptyCategories(t *testing.T) {
	doc := &asset.Document{Meta: asset.Meta{
		StageName: "MC",
		Framerate: 24,
		Settings:  asset.Record{"stageName": "MC", "framerate": 24},
	}}

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Texts": []`) {
		t.Errorf("nil category not written as empty array:\n%s", buf.String())
	}
	if _, err := ReadJSON(&buf); err != nil {
		t.Errorf("ReadJSON(WriteJSON()) error: %v", err)
	}

	if err := WriteJSON(nil, &buf); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("WriteJSON(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestSchemaEmbedded(t *testing.T) {
	if !bytes.Contains(Schema(), []byte(`"_meta"`)) {
		t.Error("embedded schema missing _meta")
	}
}
