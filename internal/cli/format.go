package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/format"
	stageio "github.com/matzehuels/stagekit/pkg/io"
)

func (c *CLI) formatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Number and JSON formatting helpers used by the exporter",
	}

	cmd.AddCommand(c.formatRoundCommand())
	cmd.AddCommand(c.formatSimpleCommand())
	cmd.AddCommand(c.formatShapesCommand())
	return cmd
}

func (c *CLI) formatRoundCommand() *cobra.Command {
	var places int

	cmd := &cobra.Command{
		Use:   "round <value>",
		Short: "Round a number to a fixed number of decimal places",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errs.New(errs.ErrCodeInvalidInput, "not a number: %q", args[0])
			}
			if !cmd.Flags().Changed("places") {
				places = c.Config.Precision
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(format.ToPrecision(v, places), 'f', -1, 64))
			return nil
		},
	}

	cmd.Flags().IntVarP(&places, "places", "p", format.DefaultPlaces, "decimal places")
	return cmd
}

func (c *CLI) formatSimpleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simple <file.json>",
		Short: "Print JSON with plain object keys unquoted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", args[0])
			}
			var v any
			if err := json.Unmarshal(data, &v); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", args[0])
			}
			s, err := format.StringifySimple(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func (c *CLI) formatShapesCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "shapes <document>",
		Short:             "Print the shape records of a document one draw command per line",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := stageio.Import(args[0])
			if err != nil {
				return err
			}
			for _, rec := range doc.Shapes {
				s, err := format.ReadableShapes(rec)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
