package asset

import "fmt"

// Classify selects the variant a Timelines record becomes. Rules are
// applied in order and the first match wins:
//
//  1. totalFrames <= 1 and type != "stage": [KindContainer]
//  2. type == "graphic": [KindGraphic]
//  3. type == "stage": [KindStage]
//  4. otherwise: [KindTimeline]
//
// A record without a numeric totalFrames never matches rule 1.
func Classify(rec Record) Kind {
	typ, _ := rec.String("type")
	if frames, ok := rec.Float("totalFrames"); ok && frames <= 1 && typ != TypeStage {
		return KindContainer
	}
	switch typ {
	case TypeGraphic:
		return KindGraphic
	case TypeStage:
		return KindStage
	}
	return KindTimeline
}

// New builds the asset of the given kind from rec. meta supplies the stage
// name for shapes and the framerate for the stage.
func New(kind Kind, rec Record, meta Meta) (Asset, error) {
	switch kind {
	case KindBitmap:
		return wrap(NewBitmap(rec))
	case KindShape:
		return wrap(NewShape(rec, meta.StageName))
	case KindText:
		return wrap(NewText(rec))
	case KindTimeline:
		return wrap(NewTimeline(rec))
	case KindContainer:
		return wrap(NewContainer(rec))
	case KindGraphic:
		return wrap(NewGraphic(rec))
	case KindStage:
		return wrap(NewStage(rec, meta.Framerate))
	}
	return nil, fmt.Errorf("unknown asset kind %d", int(kind))
}

// wrap converts a variant constructor result without leaking a typed nil.
func wrap[T Asset](a T, err error) (Asset, error) {
	if err != nil {
		return nil, err
	}
	return a, nil
}
