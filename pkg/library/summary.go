package library

import (
	"github.com/matzehuels/stagekit/pkg/asset"
)

// Summary is a flat description of a library, used by the CLI and API.
type Summary struct {
	StageName    string           `json:"stageName"`
	Framerate    float64          `json:"framerate"`
	Bitmaps      int              `json:"bitmaps"`
	Shapes       int              `json:"shapes"`
	Texts        int              `json:"texts"`
	Timelines    int              `json:"timelines"`
	Kinds        map[string]int   `json:"kinds"`
	Assets       int              `json:"assets"`
	StageID      *int             `json:"stageId,omitempty"`
	HasContainer bool             `json:"hasContainer"`
	Dangling     []asset.ChildRef `json:"dangling,omitempty"`
}

// Summary describes the library.
func (l *Library) Summary() (Summary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return Summary{}, err
	}

	s := Summary{
		StageName:    l.meta.StageName,
		Framerate:    l.meta.Framerate,
		Bitmaps:      len(l.bitmaps),
		Shapes:       len(l.shapes),
		Texts:        len(l.texts),
		Timelines:    len(l.timelines),
		Kinds:        make(map[string]int),
		Assets:       len(l.byID),
		HasContainer: l.hasContainer,
		Dangling:     l.dangling(),
	}
	for _, a := range l.assets() {
		s.Kinds[a.Kind().String()]++
	}
	if l.stage != nil {
		id := l.stage.AssetID()
		s.StageID = &id
	}
	return s, nil
}

// Dangling returns the child placements whose asset id is not in the
// library, in timeline order.
func (l *Library) Dangling() ([]asset.ChildRef, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.active(); err != nil {
		return nil, err
	}
	return l.dangling(), nil
}

func (l *Library) dangling() []asset.ChildRef {
	var out []asset.ChildRef
	for _, tl := range l.timelines {
		td, _ := asset.TimelineOf(tl)
		for _, c := range td.Children {
			if _, ok := l.byID[c.AssetID]; !ok {
				out = append(out, c)
			}
		}
	}
	return out
}
