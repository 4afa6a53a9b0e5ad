package asset

import "fmt"

// Kind tags which variant an asset is.
type Kind int

const (
	// KindBitmap is an image reference.
	KindBitmap Kind = iota
	// KindShape is a vector shape.
	KindShape
	// KindText is a text field.
	KindText
	// KindTimeline is an animated movieclip timeline.
	KindTimeline
	// KindContainer is a static timeline with at most one frame.
	KindContainer
	// KindGraphic is a graphic-symbol timeline.
	KindGraphic
	// KindStage is the root timeline of the project.
	KindStage
)

var kindNames = [...]string{
	KindBitmap:    "bitmap",
	KindShape:     "shape",
	KindText:      "text",
	KindTimeline:  "timeline",
	KindContainer: "container",
	KindGraphic:   "graphic",
	KindStage:     "stage",
}

// Kinds lists every variant in declaration order.
var Kinds = []Kind{KindBitmap, KindShape, KindText, KindTimeline, KindContainer, KindGraphic, KindStage}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsTimeline reports whether the kind comes from the Timelines category.
func (k Kind) IsTimeline() bool {
	return k >= KindTimeline && k <= KindStage
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown asset kind %q", b)
	}
	*k = parsed
	return nil
}

// ParseKind looks up a kind by name.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}
