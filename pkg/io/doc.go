// Package io reads and writes animation export documents.
//
// # Overview
//
// An export is a single JSON object produced by the authoring tool's publish
// step. It has four record arrays and a settings object:
//
//	{
//	  "Bitmaps":   [{"assetId": 1, "src": "images/sky.png"}],
//	  "Shapes":    [{"assetId": 7, "draw": [["m", 0, 0]]}],
//	  "Texts":     [{"assetId": 4, "text": "Hello"}],
//	  "Timelines": [{"assetId": 12, "type": "stage", "totalFrames": 48}],
//	  "_meta":     {"stageName": "Forest", "framerate": 24}
//	}
//
// Records are kept as untyped [asset.Record] values; only assetId is
// required. Everything else is interpreted later by package asset.
//
// # Import
//
// Use [Import] to read a file by extension, [ImportJSON] or [ImportYAML] for
// a specific format, or [ReadJSON] and [ReadYAML] for any io.Reader:
//
//	doc, err := io.Import("export.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every document is validated against the embedded JSON schema (see
// [Schema]) before decoding. Violations are reported together in one
// INVALID_SCHEMA error, for example:
//
//	INVALID_SCHEMA: (root): _meta is required; Bitmaps.0: assetId is required
//
// Files ending in .res are resource packs and are read with [store.Unpack].
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Records and settings are written unchanged, so a document
// survives an import and export round trip.
//
// # Concurrency
//
// All functions are safe for concurrent use. Decoded documents share no
// state with the input.
package io
