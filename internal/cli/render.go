package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	docFlags
	output    string // output file, derived from the input when empty
	format    string // "svg" or "dot"
	detailed  bool   // label nodes with names and edges with instance ids
	dangling  bool   // draw children that are not exported
	direction string // "TB" or "LR"
	noCache   bool
	refresh   bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:    pipeline.DefaultFormat,
		direction: "TB",
	}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Draw the asset graph of a document as SVG or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.docFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <document>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show names and instance ids")
	cmd.Flags().BoolVar(&opts.dangling, "dangling", false, "show children missing from the export")
	cmd.Flags().StringVar(&opts.direction, "direction", opts.direction, "layout direction: TB, LR")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the diagram cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached diagrams")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	out := outputPath(opts.output, input, opts.format)
	if err := errs.ValidatePath(out); err != nil {
		return err
	}

	popts := c.pipelineOptions(ctx, input, opts.docFlags)
	popts.Format = opts.format
	popts.Detailed = opts.detailed
	popts.ShowDangling = opts.dangling
	popts.Direction = strings.ToUpper(opts.direction)
	popts.Refresh = opts.refresh
	if err := popts.ValidateForDiagram(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	data, cached, err := runner.DiagramWithCacheInfo(ctx, popts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	prog.done("Rendered " + filepath.Base(input))

	status := iconFresh
	if cached {
		status = iconCached
	}
	printSuccess("Rendered %s diagram (%s)", popts.Format, status)
	printFile(out)
	return nil
}

// outputPath derives the output file from the input when output is empty.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}
