package cli

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	stageio "github.com/matzehuels/stagekit/pkg/io"
	"github.com/matzehuels/stagekit/pkg/library"
	"github.com/matzehuels/stagekit/pkg/store"
)

func (c *CLI) packCommand() *cobra.Command {
	var (
		flags  docFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "pack <document>",
		Short: "Write a document into a .res resource pack",
		Long: `Pack validates a JSON or YAML export, checks that its asset library
builds and writes it into a resource pack that keeps input order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := outputPath(output, args[0], store.Ext[1:])
			if err := errs.ValidatePath(out); err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			doc, err := stageio.Import(args[0])
			if err != nil {
				return err
			}
			opts := c.pipelineOptions(ctx, args[0], flags)
			lib, err := library.New(doc, opts.LibraryOptions())
			if err != nil {
				return err
			}
			lib.Teardown()

			if err := store.Pack(out, doc); err != nil {
				return err
			}
			prog.done("Packed " + filepath.Base(args[0]))

			printSuccess("Packed %d records", doc.Len())
			printFile(out)
			printNextStep("Inspect it", "stagekit inspect "+out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <document>.res)")
	return cmd
}

func (c *CLI) unpackCommand() *cobra.Command {
	var (
		output string
		id     int
	)

	cmd := &cobra.Command{
		Use:   "unpack <pack.res>",
		Short: "Extract a resource pack as JSON",
		Long: `Unpack writes the document stored in a resource pack as JSON, to stdout
or to --output. With --id only the record of that asset is printed.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("id") {
				rec, err := lookupPacked(args[0], id)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}

			doc, err := store.Unpack(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return stageio.WriteJSON(doc, cmd.OutOrStdout())
			}
			if err := errs.ValidatePath(output); err != nil {
				return err
			}
			if err := stageio.ExportJSON(doc, output); err != nil {
				return err
			}
			printSuccess("Unpacked %d records", doc.Len())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&id, "id", 0, "print only the record of this asset id")
	return cmd
}

// lookupPacked finds id across all categories. Later categories win, as in
// library construction.
func lookupPacked(path string, id int) (asset.Record, error) {
	var found asset.Record
	for _, cat := range asset.Categories {
		rec, err := store.Lookup(path, cat, id)
		if errs.Is(err, errs.ErrCodeAssetNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = rec
	}
	if found == nil {
		return nil, errs.New(errs.ErrCodeAssetNotFound, "asset %d not found", id)
	}
	return found, nil
}
