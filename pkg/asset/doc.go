// Package asset defines the typed asset descriptors built from an exported
// animation project.
//
// # Overview
//
// An export document is a flat JSON object with four record categories
// (Bitmaps, Shapes, Texts, Timelines) and a _meta object holding build
// settings. Each raw [Record] is wrapped by a variant constructor into an
// [Asset]:
//
//   - [Bitmap]: an image reference
//   - [Shape]: vector draw commands, named "<stageName>_<assetId>"
//   - [Text]: a text field with its style
//   - [Timeline]: an animated movieclip
//   - [Container]: a static, single-frame timeline
//   - [Graphic]: a graphic-symbol timeline
//   - [Stage]: the root timeline, carrying the project framerate
//
// # Classification
//
// Timeline records do not map one-to-one onto variants. [Classify] applies a
// priority-ordered policy (first match wins):
//
//  1. totalFrames <= 1 and type != "stage" -> [KindContainer]
//  2. type == "graphic"                    -> [KindGraphic]
//  3. type == "stage"                      -> [KindStage]
//  4. anything else                        -> [KindTimeline]
//
// Classify is a pure function so the ordering can be tested in isolation;
// the side effects of classification (the container flag and the stage
// reference) belong to the library that drives construction.
//
// # Instances
//
// Every asset can create any number of [Instance] handles via
// [Asset.Create]. Creating an instance never modifies the asset, and two
// calls with the same instance id yield two distinct handles.
package asset
