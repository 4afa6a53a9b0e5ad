package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stagekit/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is read before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stagekit inspects exported animation asset libraries",
		Long:         `Stagekit loads the JSON asset export of an animation project, builds its asset library and lets you query, render, pack and serve it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stagekit/config.toml)")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.assetsCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.createCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.unpackCommand())
	root.AddCommand(c.formatCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}
