package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlgrid/pkg/xlgrid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/output"
)

func newSheetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the non-empty sheets of a workbook with their header rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := xlgrid.Inspect(args[0], xlgrid.ReadOptions{})
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			if asJSON {
				data, err := output.ToJSON(info, true)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			return output.RenderSheets(cmd.OutOrStdout(), info.Sheets)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}
