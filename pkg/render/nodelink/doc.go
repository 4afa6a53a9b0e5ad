// Package nodelink renders an asset library as a node-link diagram.
//
// # Overview
//
// Every asset becomes one node and every child placement inside a timeline
// becomes an edge from the timeline to the placed asset. The result shows
// how the stage is composed out of movieclips, graphics, shapes, bitmaps
// and text fields.
//
// # Usage
//
// Convert a library to DOT, then render to SVG:
//
//	dot, err := nodelink.ToDOT(lib, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the asset's source, name or frame count,
//     and edges are labelled with the instance id
//   - ShowDangling: child placements whose asset is missing are drawn as
//     red placeholder nodes instead of being skipped
//   - Direction: Graphviz rankdir, "TB" (default) or "LR"
//
// # Styling
//
// Nodes are coloured by kind. The stage has a heavy outline and containers
// are dashed, so the static parts of the tree stand out from the animated
// ones.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No Graphviz installation is needed.
package nodelink
