// Package pkg provides the libraries behind stagekit, a toolkit for the
// asset exports of animation projects.
//
// # Overview
//
// An export is one JSON document with four record categories (Bitmaps,
// Shapes, Texts, Timelines) and the project settings under "_meta". Stagekit
// decodes it, builds an asset library keyed by the global asset id and lets
// callers look assets up and create instances of them.
//
// # Architecture
//
// The typical data flow:
//
//	export.json / export.yaml / export.res
//	         ↓
//	    [io] / [store] (validate against the schema, decode)
//	         ↓
//	    [library] (construct variants, classify timelines, index by id)
//	         ↓
//	    Lookup / CreateInstance / Summary / [render/nodelink] diagrams
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stagekit/pkg/io"
//	    "github.com/matzehuels/stagekit/pkg/library"
//	)
//
//	doc, _ := io.ImportJSON("forest.json")
//	lib, _ := library.New(doc, library.Options{})
//	defer lib.Teardown()
//
//	inst, _ := lib.CreateInstance(7, 1)
//	fmt.Println(inst.Kind(), inst.Handle)
//
// # Main Packages
//
// ## Domain
//
// [asset] - Records, the asset variants (bitmap, shape, text, timeline,
// container, graphic, stage), the timeline classification policy and
// instances.
//
// [library] - The asset library: construction, lookup, the instance factory
// and teardown.
//
// [format] - Number rounding and JSON layout helpers used by the exporter.
//
// [errors] - Error codes shared by every package, the CLI and the API.
//
// ## Input and Output
//
// [io] - JSON and YAML import with schema validation, JSON export.
//
// [store] - Resource packs: exports stored in a bbolt file that keeps input
// order and supports single-record lookups.
//
// [render/nodelink] - Asset graph diagrams (DOT, and SVG through Graphviz).
//
// ## Infrastructure
//
// [pipeline] - Load, summary and diagram operations shared by the CLI and
// the API, with caching keyed by the document hash.
//
// [cache] - File (zstd), Redis and no-op caches plus key derivation.
//
// [observability] - Hooks for library and cache events with a Prometheus
// implementation.
//
// [api] - HTTP query surface for one loaded library.
//
// # Testing
//
//	go test ./...                # All tests
//	go test ./pkg/library/...    # Specific package
//	go test -run Example ./pkg/...
//
// [asset]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/asset
// [library]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/library
// [format]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/format
// [errors]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/store
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/observability
// [api]: https://pkg.go.dev/github.com/matzehuels/stagekit/pkg/api
package pkg
