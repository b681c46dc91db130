package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlgrid/pkg/xlgrid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/output"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/xlsx"
)

type readFlags struct {
	sheet            string
	headerRow        string
	fields           []string
	keepBlankHeaders bool
	raw              bool
	limit            int
	format           string
}

func newReadCmd() *cobra.Command {
	var f readFlags

	cmd := &cobra.Command{
		Use:   "read [input.xlsx]",
		Short: "Stream the rows of a sheet as records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd.OutOrStdout(), args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.sheet, "sheet", "0", "Sheet index or name")
	cmd.Flags().StringVar(&f.headerRow, "header-row", "0", "Rows to skip before the header, or \"auto\" to detect it")
	cmd.Flags().StringSliceVar(&f.fields, "fields", nil, "Field names to use instead of the sheet's header row")
	cmd.Flags().BoolVar(&f.keepBlankHeaders, "keep-blank-headers", false, "Keep blank header text instead of naming columns #<index>#")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "Read every cell as its formatted text")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum number of records (0: all)")
	cmd.Flags().StringVar(&f.format, "format", "json", "Output format: json, table")
	return cmd
}

func runRead(out io.Writer, path string, f readFlags) error {
	if f.format != "json" && f.format != "table" {
		return fmt.Errorf("invalid format: %s (must be json or table)", f.format)
	}

	r, err := xlgrid.Open(path, xlgrid.ReadOptions{RawStrings: f.raw})
	if err != nil {
		return err
	}
	defer r.Close()

	book, ok := r.Workbook().(*xlsx.Workbook)
	if !ok {
		return fmt.Errorf("unexpected workbook type %T", r.Workbook())
	}
	index, name, err := resolveSheet(book.File().GetSheetList(), f.sheet)
	if err != nil {
		return err
	}

	opts := xlgrid.DefaultStreamOptions()
	opts.SheetIndex = index
	opts.FieldNames = f.fields
	opts.SkipBlankHeaderCols = xlgrid.Bool(!f.keepBlankHeaders)
	if f.headerRow == "auto" {
		opts.HeaderRow, err = xlsx.DetectHeaderRow(book.File(), name, xlsx.DefaultHeaderParams())
		if err != nil {
			return err
		}
	} else if opts.HeaderRow, err = strconv.Atoi(f.headerRow); err != nil || opts.HeaderRow < 0 {
		return fmt.Errorf("invalid header row: %s", f.headerRow)
	}

	stream, err := r.Stream(opts)
	if err != nil {
		return err
	}
	defer stream.Close()

	var table *output.Table
	lines := output.NewJSONLines(out)
	n := 0
	for rec, err := range stream.All() {
		if err != nil {
			return err
		}
		if f.format == "table" {
			if table == nil {
				table = output.NewTable(out, rec.Fields(), cfg.Write.TimeLayout)
			}
			if err := table.Append(rec); err != nil {
				return err
			}
		} else if err := lines.Write(rec); err != nil {
			return err
		}
		n++
		if f.limit > 0 && n >= f.limit {
			break
		}
	}
	if table != nil {
		return table.Render()
	}
	return nil
}

// resolveSheet accepts a 0-based index or a sheet name.
func resolveSheet(sheets []string, sel string) (int, string, error) {
	if i, err := strconv.Atoi(sel); err == nil {
		if i < 0 || i >= len(sheets) {
			return 0, "", fmt.Errorf("sheet index %d out of range (%d sheets)", i, len(sheets))
		}
		return i, sheets[i], nil
	}
	for i, name := range sheets {
		if strings.EqualFold(name, sel) {
			return i, name, nil
		}
	}
	return 0, "", fmt.Errorf("sheet not found: %s", sel)
}
