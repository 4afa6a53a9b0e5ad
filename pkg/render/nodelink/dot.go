package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/library"
)

// Graph directions accepted in Options.Direction.
const (
	DirectionTB = "TB"
	DirectionLR = "LR"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds per-kind details to node labels and instance ids to
	// edges. When false, nodes show only kind and asset id.
	Detailed bool
	// ShowDangling draws children whose asset is not in the library.
	ShowDangling bool
	// Direction is the Graphviz rankdir. Defaults to DirectionTB.
	Direction string
}

var kindFill = map[asset.Kind]string{
	asset.KindBitmap:    "lightyellow",
	asset.KindShape:     "honeydew",
	asset.KindText:      "lavender",
	asset.KindTimeline:  "white",
	asset.KindContainer: "white",
	asset.KindGraphic:   "mistyrose",
	asset.KindStage:     "lightblue",
}

// ToDOT converts a library to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(lib *library.Library, opts Options) (string, error) {
	dir := opts.Direction
	switch dir {
	case "":
		dir = DirectionTB
	case DirectionTB, DirectionLR:
	default:
		return "", errs.New(errs.ErrCodeInvalidInput, "invalid direction %q (want %s or %s)", dir, DirectionTB, DirectionLR)
	}

	assets, err := lib.Assets()
	if err != nil {
		return "", err
	}
	index, err := lib.Index()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var nodes []asset.Asset
	for _, a := range assets {
		// Skip assets whose id was taken over by a later duplicate.
		if index[a.AssetID()] != a {
			continue
		}
		nodes = append(nodes, a)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(a.AssetID()), strings.Join(fmtAttrs(a, opts.Detailed), ", "))
	}

	missing := map[int]bool{}
	var edges []string
	for _, a := range nodes {
		td, ok := asset.TimelineOf(a)
		if !ok {
			continue
		}
		for _, c := range td.Children {
			target := nodeID(c.AssetID)
			if _, ok := index[c.AssetID]; !ok {
				if !opts.ShowDangling {
					continue
				}
				target = missingID(c.AssetID)
				if !missing[c.AssetID] {
					missing[c.AssetID] = true
					fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", color=red, fontcolor=red];\n",
						target, fmt.Sprintf("missing #%d", c.AssetID))
				}
			}
			edge := fmt.Sprintf("  %q -> %q", nodeID(a.AssetID()), target)
			if opts.Detailed {
				edge += fmt.Sprintf(" [label=%q]", strconv.Itoa(c.InstanceID))
			}
			edges = append(edges, edge+";\n")
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(assetID int) string {
	return "a" + strconv.Itoa(assetID)
}

func missingID(assetID int) string {
	return "missing" + strconv.Itoa(assetID)
}

func fmtLabel(a asset.Asset, detailed bool) string {
	label := fmt.Sprintf("%s #%d", a.Kind(), a.AssetID())
	if !detailed {
		return label
	}

	var detail string
	switch v := a.(type) {
	case *asset.Bitmap:
		detail = v.Src
	case *asset.Shape:
		detail = v.Name
	case *asset.Text:
		detail = v.Text
	case *asset.Stage:
		detail = fmt.Sprintf("%d frames @ %gfps", v.TotalFrames, v.Framerate)
	default:
		if td, ok := asset.TimelineOf(a); ok {
			detail = fmt.Sprintf("%d frames", td.TotalFrames)
		}
	}
	if detail == "" {
		return label
	}
	return label + "\n" + detail
}

func fmtAttrs(a asset.Asset, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(a, detailed))}
	if fill, ok := kindFill[a.Kind()]; ok && fill != "white" {
		attrs = append(attrs, "fillcolor="+fill)
	}
	switch a.Kind() {
	case asset.KindStage:
		attrs = append(attrs, "penwidth=3")
	case asset.KindContainer:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
