package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
)

func (c *CLI) assetsCommand() *cobra.Command {
	var (
		flags docFlags
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "assets <document>",
		Short: "List the assets of a document in processing order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *asset.Kind
			if kind != "" {
				k, ok := asset.ParseKind(kind)
				if !ok {
					return errs.New(errs.ErrCodeInvalidInput, "unknown kind %q", kind)
				}
				filter = &k
			}

			res, release, err := c.load(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer release()

			assets, err := res.Library.Assets()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, a := range assets {
				if filter != nil && a.Kind() != *filter {
					continue
				}
				rows = append(rows, assetRow(a))
			}
			fmt.Fprintln(stdout, assetTable(rows))
			printDetail("%d of %d assets", len(rows), len(assets))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only list assets of this kind")
	return cmd
}

// assetRow returns the id, kind and a one-line description of a.
func assetRow(a asset.Asset) []string {
	var detail string
	switch x := a.(type) {
	case *asset.Bitmap:
		detail = x.Src
	case *asset.Shape:
		detail = x.Name
	case *asset.Text:
		detail = strconv.Quote(x.Text)
	}
	if td, ok := asset.TimelineOf(a); ok {
		detail = fmt.Sprintf("%d frames, %d children", td.TotalFrames, len(td.Children))
	}
	return []string{strconv.Itoa(a.AssetID()), a.Kind().String(), detail}
}

func assetTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Id", "Kind", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		}).
		String()
}
