package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stagekit/pkg/api"
	"github.com/matzehuels/stagekit/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   docFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve <document>",
		Short: "Serve the asset library of a document over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetLibraryHooks(hooks)
			observability.SetCacheHooks(hooks)
			defer observability.Reset()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Load(ctx, c.pipelineOptions(ctx, args[0], flags))
			if err != nil {
				return err
			}
			defer res.Library.Teardown()

			printInfo("Serving %s on http://%s", res.Document.Meta.StageName, addr)
			srv := api.New(res, runner, api.Options{Logger: logger, Gatherer: reg})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the diagram cache")
	return cmd
}
