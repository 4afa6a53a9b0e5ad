package asset

import "fmt"

// Bitmap references an exported image.
type Bitmap struct {
	base
	Src    string
	Width  float64
	Height float64
}

// NewBitmap wraps a Bitmaps record.
func NewBitmap(rec Record) (*Bitmap, error) {
	b, err := newBase(rec)
	if err != nil {
		return nil, err
	}
	bm := &Bitmap{base: b}
	bm.Src, _ = rec.String("src")
	bm.Width, _ = rec.Float("width")
	bm.Height, _ = rec.Float("height")
	return bm, nil
}

func (b *Bitmap) Kind() Kind { return KindBitmap }

func (b *Bitmap) Create(instanceID int) *Instance { return newInstance(b, instanceID) }

// Shape holds vector draw commands.
type Shape struct {
	base
	// Name is "<stageName>_<assetId>", assigned once at construction.
	Name string
	Draw []any
}

// ShapeName builds the generated name of a shape.
func ShapeName(stageName string, assetID int) string {
	return fmt.Sprintf("%s_%d", stageName, assetID)
}

// NewShape wraps a Shapes record and names it after the stage.
func NewShape(rec Record, stageName string) (*Shape, error) {
	b, err := newBase(rec)
	if err != nil {
		return nil, err
	}
	s := &Shape{base: b, Name: ShapeName(stageName, b.id)}
	s.Draw, _ = rec.Slice("draw")
	return s, nil
}

func (s *Shape) Kind() Kind { return KindShape }

func (s *Shape) Create(instanceID int) *Instance { return newInstance(s, instanceID) }

// TextStyle is the subset of text styling carried by the export.
type TextStyle struct {
	Font  string
	Size  float64
	Color string
	Align string
}

// Text is a static or dynamic text field.
type Text struct {
	base
	Text   string
	Style  TextStyle
	Width  float64
	Height float64
}

// NewText wraps a Texts record.
func NewText(rec Record) (*Text, error) {
	b, err := newBase(rec)
	if err != nil {
		return nil, err
	}
	t := &Text{base: b}
	t.Text, _ = rec.String("text")
	t.Width, _ = rec.Float("width")
	t.Height, _ = rec.Float("height")
	if style, ok := rec.Map("style"); ok {
		t.Style.Font, _ = style.String("font")
		t.Style.Size, _ = style.Float("size")
		t.Style.Color, _ = style.String("color")
		t.Style.Align, _ = style.String("align")
	}
	return t, nil
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) Create(instanceID int) *Instance { return newInstance(t, instanceID) }
