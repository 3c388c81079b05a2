// =============================================================================
// Standard 18 Reader - Layouts Command
// =============================================================================
//
// This file defines the 'layouts' command, which prints the column layout
// used to decode each record kind.
//
// COMMAND USAGE:
//   std18 layouts          # every record kind
//   std18 layouts INSTR    # one record kind
//
// Columns are printed 0-based, as START and WIDTH.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bacs-std18/internal/std18"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts [ROW]",
	Short: "Show the column layout of each record kind",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := std18.Rows()
		if len(args) == 1 {
			row, err := std18.ParseRow(args[0])
			if err != nil {
				return err
			}
			rows = []std18.Row{row}
		}
		return printLayouts(cmd.OutOrStdout(), rows)
	},
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

func printLayouts(w io.Writer, rows []std18.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, row := range rows {
		layout, ok := std18.LayoutFor(row)
		if !ok {
			continue
		}
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%d columns)\n", row, layout.Width)
		fmt.Fprintln(tw, "  FIELD\tSTART\tWIDTH\tKIND")
		for _, f := range layout.Fields {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%s\n", f.Name, f.Start, f.Width, f.Kind)
		}
	}
	return tw.Flush()
}
