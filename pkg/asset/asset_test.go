package asset

import (
	"testing"

	errs "github.com/matzehuels/stagekit/pkg/errors"
)

func TestRecordAssetID(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		want    int
		wantErr bool
	}{
		{"float", Record{"assetId": 7.0}, 7, false},
		{"int", Record{"assetId": 7}, 7, false},
		{"zero", Record{"assetId": 0.0}, 0, false},
		{"negative", Record{"assetId": -2.0}, -2, false},

		{"missing", Record{}, 0, true},
		{"null", Record{"assetId": nil}, 0, true},
		{"fractional", Record{"assetId": 1.5}, 0, true},
		{"string", Record{"assetId": "7"}, 0, true},
		{"huge", Record{"assetId": 1e20}, 0, true},
		{"huge negative", Record{"assetId": -2e20}, 0, true},
		{"just above safe range", Record{"assetId": float64(MaxSafeInt + 1)}, 0, true},
		{"max safe", Record{"assetId": float64(MaxSafeInt)}, MaxSafeInt, false},
		{"min safe", Record{"assetId": -float64(MaxSafeInt)}, -MaxSafeInt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rec.AssetID()
			if (err != nil) != tt.wantErr {
				t.Fatalf("AssetID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidSchema) {
				t.Errorf("AssetID() error code = %v, want INVALID_SCHEMA", errs.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("AssetID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShapeName(t *testing.T) {
	s, err := NewShape(Record{"assetId": 7.0}, "MC")
	if err != nil {
		t.Fatalf("NewShape() error: %v", err)
	}
	if s.Name != "MC_7" {
		t.Errorf("Name = %q, want %q", s.Name, "MC_7")
	}
}

func TestNewBitmap(t *testing.T) {
	b, err := NewBitmap(Record{"assetId": 1.0, "src": "images/hero.png", "width": 64.0, "height": 32.0})
	if err != nil {
		t.Fatalf("NewBitmap() error: %v", err)
	}
	if b.Src != "images/hero.png" || b.Width != 64 || b.Height != 32 {
		t.Errorf("NewBitmap() = %+v", b)
	}
}

func TestNewText(t *testing.T) {
	rec := Record{
		"assetId": 4.0,
		"text":    "Hello",
		"style": map[string]any{
			"font":  "Arial",
			"size":  18.0,
			"color": "#ff0000",
			"align": "center",
		},
	}
	txt, err := NewText(rec)
	if err != nil {
		t.Fatalf("NewText() error: %v", err)
	}
	want := TextStyle{Font: "Arial", Size: 18, Color: "#ff0000", Align: "center"}
	if txt.Text != "Hello" || txt.Style != want {
		t.Errorf("NewText() = %+v, want style %+v", txt, want)
	}
}

func TestNewTimelineData(t *testing.T) {
	rec := Record{
		"assetId":     9.0,
		"type":        "movieclip",
		"totalFrames": 12.0,
		"labels":      map[string]any{"idle": 0.0, "run": 6.0},
		"children": []any{
			map[string]any{"assetId": 1.0, "instanceId": 100.0},
			map[string]any{"assetId": 2.0, "instanceId": 101.0},
		},
	}
	tl, err := NewTimeline(rec)
	if err != nil {
		t.Fatalf("NewTimeline() error: %v", err)
	}
	if tl.TotalFrames != 12 || tl.Type != TypeMovieClip {
		t.Errorf("TimelineData = %+v", tl.TimelineData)
	}
	if tl.Labels["run"] != 6 {
		t.Errorf("Labels[run] = %d, want 6", tl.Labels["run"])
	}
	if len(tl.Children) != 2 || tl.Children[1] != (ChildRef{AssetID: 2, InstanceID: 101}) {
		t.Errorf("Children = %+v", tl.Children)
	}
}

func TestNewTimelineBadChild(t *testing.T) {
	rec := Record{"assetId": 9.0, "children": []any{map[string]any{"instanceId": 1.0}}}
	if _, err := NewTimeline(rec); !errs.Is(err, errs.ErrCodeInvalidSchema) {
		t.Errorf("NewTimeline() error = %v, want INVALID_SCHEMA", err)
	}
	rec = Record{"assetId": 9.0, "children": []any{"oops"}}
	if _, err := NewTimeline(rec); !errs.Is(err, errs.ErrCodeInvalidSchema) {
		t.Errorf("NewTimeline() error = %v, want INVALID_SCHEMA", err)
	}
}

func TestNewStageFramerate(t *testing.T) {
	s, err := NewStage(Record{"assetId": 1.0, "type": "stage", "totalFrames": 1.0, "framerate": 99.0}, 30)
	if err != nil {
		t.Fatalf("NewStage() error: %v", err)
	}
	if s.Framerate != 30 {
		t.Errorf("Framerate = %v, want 30 (from settings, not the record)", s.Framerate)
	}
}

func TestCreateFanOut(t *testing.T) {
	s, _ := NewShape(Record{"assetId": 3.0}, "MC")

	a := s.Create(1)
	b := s.Create(1)
	c := s.Create(2)

	if a == b {
		t.Error("Create returned the same instance twice")
	}
	if a.Handle == b.Handle || a.Handle == c.Handle {
		t.Error("instance handles are not unique")
	}
	if a.InstanceID != 1 || c.InstanceID != 2 {
		t.Errorf("InstanceIDs = %d, %d", a.InstanceID, c.InstanceID)
	}
	if a.Asset != Asset(s) || a.AssetID() != 3 || a.Kind() != KindShape {
		t.Errorf("instance does not reference its asset: %v", a)
	}
	if s.Name != "MC_3" {
		t.Errorf("Create mutated the asset: Name = %q", s.Name)
	}
	if got := a.String(); got != "shape#3/1" {
		t.Errorf("String() = %q", got)
	}
}

func TestTimelineOf(t *testing.T) {
	stage, _ := NewStage(Record{"assetId": 1.0, "totalFrames": 3.0}, 24)
	if td, ok := TimelineOf(stage); !ok || td.TotalFrames != 3 {
		t.Errorf("TimelineOf(stage) = %v, %v", td, ok)
	}
	bm, _ := NewBitmap(Record{"assetId": 2.0})
	if _, ok := TimelineOf(bm); ok {
		t.Error("TimelineOf(bitmap) ok = true, want false")
	}
}

func TestDocumentValidate(t *testing.T) {
	valid := func() *Document {
		return &Document{
			Bitmaps:   []Record{},
			Shapes:    []Record{},
			Texts:     []Record{},
			Timelines: []Record{},
			Meta:      Meta{StageName: "MC", Framerate: 24, Settings: Record{"stageName": "MC", "framerate": 24.0}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr bool
	}{
		{"valid", func(d *Document) {}, false},
		{"missing bitmaps", func(d *Document) { d.Bitmaps = nil }, true},
		{"missing timelines", func(d *Document) { d.Timelines = nil }, true},
		{"missing meta", func(d *Document) { d.Meta.Settings = nil }, true},
		{"empty stage name", func(d *Document) { d.Meta.StageName = "" }, true},
		{"zero framerate", func(d *Document) { d.Meta.Framerate = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidSchema) {
				t.Errorf("Validate() code = %v, want INVALID_SCHEMA", errs.GetCode(err))
			}
		})
	}
}

func TestMetaFromRecord(t *testing.T) {
	m, err := MetaFromRecord(Record{"stageName": "MC", "framerate": 30.0, "width": 550.0})
	if err != nil {
		t.Fatalf("MetaFromRecord() error: %v", err)
	}
	if m.StageName != "MC" || m.Framerate != 30 {
		t.Errorf("MetaFromRecord() = %+v", m)
	}
	if w, _ := m.Settings.Float("width"); w != 550 {
		t.Errorf("Settings not passed through: %v", m.Settings)
	}

	for _, rec := range []Record{nil, {"framerate": 30.0}, {"stageName": "MC"}} {
		if _, err := MetaFromRecord(rec); !errs.Is(err, errs.ErrCodeInvalidSchema) {
			t.Errorf("MetaFromRecord(%v) error = %v, want INVALID_SCHEMA", rec, err)
		}
	}
}
