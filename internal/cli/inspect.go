package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stagekit/pkg/asset"
	"github.com/matzehuels/stagekit/pkg/library"
	"github.com/matzehuels/stagekit/pkg/pipeline"
)

// docFlags are shared by commands that load a document.
type docFlags struct {
	strict bool
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on duplicate asset ids")
	cmd.ValidArgsFunction = completeDocument
}

func (c *CLI) pipelineOptions(ctx context.Context, path string, f docFlags) pipeline.Options {
	return pipeline.Options{
		Path:             path,
		RejectDuplicates: f.strict || c.Config.RejectDuplicates,
		Logger:           loggerFromContext(ctx),
	}
}

// load builds the library of path without caching. The returned release
// func tears it down.
func (c *CLI) load(ctx context.Context, path string, f docFlags) (*pipeline.Result, func(), error) {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	res, err := runner.Load(ctx, c.pipelineOptions(ctx, path, f))
	if err != nil {
		return nil, nil, err
	}
	return res, res.Library.Teardown, nil
}

func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   docFlags
		noCache bool
		refresh bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Summarize the asset library of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.pipelineOptions(ctx, args[0], flags)
			opts.Refresh = refresh

			prog := newProgress(loggerFromContext(ctx))
			s, cached, err := runner.SummaryWithCacheInfo(ctx, opts)
			if err != nil {
				return err
			}
			prog.done("Inspected " + filepath.Base(args[0]))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printSummary(s, cached)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the summary cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached summaries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(s library.Summary, cached bool) {
	stage := "none"
	if s.StageID != nil {
		stage = fmt.Sprintf("#%d", *s.StageID)
	}

	printTitle(s.StageName)
	printKeyValue("Framerate", strconv.FormatFloat(s.Framerate, 'f', -1, 64))
	printKeyValue("Stage", stage)
	printKeyValue("Bitmaps", strconv.Itoa(s.Bitmaps))
	printKeyValue("Shapes", strconv.Itoa(s.Shapes))
	printKeyValue("Texts", strconv.Itoa(s.Texts))
	printKeyValue("Timelines", strconv.Itoa(s.Timelines))
	printKeyValue("Container", strconv.FormatBool(s.HasContainer))
	printKeyValue("Kinds", fmtKinds(s.Kinds))
	printStats(s.Assets, len(s.Dangling), cached)
	for _, d := range s.Dangling {
		printWarning("asset %d (instance %d) is placed but not exported", d.AssetID, d.InstanceID)
	}
}

// fmtKinds renders per-kind counts in declaration order, e.g. "shape=2 stage=1".
func fmtKinds(kinds map[string]int) string {
	var parts []string
	for _, k := range asset.Kinds {
		if n := kinds[k.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
