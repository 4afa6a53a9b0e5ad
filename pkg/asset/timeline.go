package asset

import (
	errs "github.com/matzehuels/stagekit/pkg/errors"
)

// Timeline record types understood by the classification policy.
const (
	TypeMovieClip = "movieclip"
	TypeGraphic   = "graphic"
	TypeStage     = "stage"
)

// ChildRef is a placement of one asset inside a timeline.
type ChildRef struct {
	AssetID    int `json:"assetId"`
	InstanceID int `json:"instanceId"`
}

// TimelineData is the frame and content data shared by all timeline variants.
type TimelineData struct {
	Type        string
	TotalFrames int
	Labels      map[string]int
	Children    []ChildRef
	Frames      []any
}

func newTimelineData(rec Record) (TimelineData, error) {
	var td TimelineData
	td.Type, _ = rec.String("type")
	td.TotalFrames, _ = rec.Int("totalFrames")
	td.Frames, _ = rec.Slice("frames")

	if labels, ok := rec.Map("labels"); ok {
		td.Labels = make(map[string]int, len(labels))
		for name := range labels {
			frame, ok := labels.Int(name)
			if !ok {
				return td, errs.New(errs.ErrCodeInvalidSchema, "label %q must be an integer frame", name)
			}
			td.Labels[name] = frame
		}
	}

	children, _ := rec.Slice("children")
	for i, c := range children {
		var child Record
		switch m := c.(type) {
		case map[string]any:
			child = m
		case Record:
			child = m
		default:
			return td, errs.New(errs.ErrCodeInvalidSchema, "children[%d] must be an object", i)
		}
		id, err := child.AssetID()
		if err != nil {
			return td, errs.New(errs.ErrCodeInvalidSchema, "children[%d]: %s", i, errs.UserMessage(err))
		}
		instanceID, _ := child.Int("instanceId")
		td.Children = append(td.Children, ChildRef{AssetID: id, InstanceID: instanceID})
	}
	return td, nil
}

// Timeline is an animated movieclip, the default timeline variant.
type Timeline struct {
	base
	TimelineData
}

// NewTimeline wraps a Timelines record as an animated movieclip.
func NewTimeline(rec Record) (*Timeline, error) {
	b, td, err := newTimelineParts(rec)
	if err != nil {
		return nil, err
	}
	return &Timeline{base: b, TimelineData: td}, nil
}

func (t *Timeline) Kind() Kind { return KindTimeline }

func (t *Timeline) Create(instanceID int) *Instance { return newInstance(t, instanceID) }

// Container is a non-animated timeline with at most one frame.
type Container struct {
	base
	TimelineData
}

// NewContainer wraps a Timelines record as a static container.
func NewContainer(rec Record) (*Container, error) {
	b, td, err := newTimelineParts(rec)
	if err != nil {
		return nil, err
	}
	return &Container{base: b, TimelineData: td}, nil
}

func (c *Container) Kind() Kind { return KindContainer }

func (c *Container) Create(instanceID int) *Instance { return newInstance(c, instanceID) }

// Graphic is a graphic-symbol timeline.
type Graphic struct {
	base
	TimelineData
}

// NewGraphic wraps a Timelines record as a graphic symbol.
func NewGraphic(rec Record) (*Graphic, error) {
	b, td, err := newTimelineParts(rec)
	if err != nil {
		return nil, err
	}
	return &Graphic{base: b, TimelineData: td}, nil
}

func (g *Graphic) Kind() Kind { return KindGraphic }

func (g *Graphic) Create(instanceID int) *Instance { return newInstance(g, instanceID) }

// Stage is the root timeline. Its framerate comes from the project
// settings, not from the record.
type Stage struct {
	base
	TimelineData
	Framerate float64
}

// NewStage wraps the stage record with the project framerate.
func NewStage(rec Record, framerate float64) (*Stage, error) {
	b, td, err := newTimelineParts(rec)
	if err != nil {
		return nil, err
	}
	return &Stage{base: b, TimelineData: td, Framerate: framerate}, nil
}

func (s *Stage) Kind() Kind { return KindStage }

func (s *Stage) Create(instanceID int) *Instance { return newInstance(s, instanceID) }

func newTimelineParts(rec Record) (base, TimelineData, error) {
	b, err := newBase(rec)
	if err != nil {
		return base{}, TimelineData{}, err
	}
	td, err := newTimelineData(rec)
	if err != nil {
		return base{}, TimelineData{}, err
	}
	return b, td, nil
}

// TimelineOf returns the timeline data of any timeline variant.
func TimelineOf(a Asset) (*TimelineData, bool) {
	switch t := a.(type) {
	case *Timeline:
		return &t.TimelineData, true
	case *Container:
		return &t.TimelineData, true
	case *Graphic:
		return &t.TimelineData, true
	case *Stage:
		return &t.TimelineData, true
	}
	return nil, false
}
