package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
)

func (c *CLI) lookupCommand() *cobra.Command {
	var (
		flags  docFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <document> <assetId>",
		Short: "Show the asset registered under an id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("assetId", args[1])
			if err != nil {
				return err
			}
			res, release, err := c.load(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer release()

			a, err := res.Library.Lookup(id)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a.Record())
			}
			printAsset(a)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw record as JSON")
	return cmd
}

func (c *CLI) createCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "create <document> <assetId> <instanceId>",
		Short: "Create an instance of an asset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("assetId", args[1])
			if err != nil {
				return err
			}
			instanceID, err := parseID("instanceId", args[2])
			if err != nil {
				return err
			}
			res, release, err := c.load(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer release()

			inst, err := res.Library.CreateInstance(id, instanceID)
			if err != nil {
				return err
			}
			printSuccess("Created %s", inst)
			printKeyValue("Handle", inst.Handle.String())
			printKeyValue("Kind", inst.Kind().String())
			printKeyValue("Asset", strconv.Itoa(inst.AssetID()))
			printKeyValue("Instance", strconv.Itoa(inst.InstanceID))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func parseID(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be an integer, got %q", name, s)
	}
	return n, nil
}

func printAsset(a asset.Asset) {
	printTitle(fmt.Sprintf("%s #%d", a.Kind(), a.AssetID()))
	switch x := a.(type) {
	case *asset.Bitmap:
		printKeyValue("Source", x.Src)
		if x.Width > 0 || x.Height > 0 {
			printKeyValue("Size", fmt.Sprintf("%gx%g", x.Width, x.Height))
		}
	case *asset.Shape:
		printKeyValue("Name", x.Name)
		printKeyValue("Draw commands", strconv.Itoa(len(x.Draw)))
	case *asset.Text:
		printKeyValue("Text", strconv.Quote(x.Text))
		if x.Style.Font != "" {
			printKeyValue("Font", fmt.Sprintf("%s %gpx", x.Style.Font, x.Style.Size))
		}
	case *asset.Stage:
		printKeyValue("Framerate", strconv.FormatFloat(x.Framerate, 'f', -1, 64))
	}
	if td, ok := asset.TimelineOf(a); ok {
		printKeyValue("Frames", strconv.Itoa(td.TotalFrames))
		printKeyValue("Labels", strconv.Itoa(len(td.Labels)))
		printKeyValue("Children", strconv.Itoa(len(td.Children)))
		for _, ch := range td.Children {
			printDetail("asset %d as instance %d", ch.AssetID, ch.InstanceID)
		}
	}
}
