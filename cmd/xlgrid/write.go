package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/ukaji3/xlgrid/pkg/xlgrid"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/layout"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
	"github.com/ukaji3/xlgrid/pkg/xlgrid/style"
)

type writeFlags struct {
	output    string
	sheet     string
	title     string
	fields    []string
	empty     string
	emptySet  bool
	streaming bool
	printArea bool
	repeat    bool
}

func newWriteCmd() *cobra.Command {
	var f writeFlags

	cmd := &cobra.Command{
		Use:   "write [input.json|-]",
		Short: "Write JSON records (array or JSON lines) into an xlsx sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.emptySet = cmd.Flags().Changed("empty")
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			path, err := runWrite(data, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file path (required)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "Sheet1", "Sheet name")
	cmd.Flags().StringVar(&f.title, "title", "", "Banner row merged across all columns")
	cmd.Flags().StringArrayVar(&f.fields, "field", nil, "Column as key=Label, repeatable; defaults to the first record's keys")
	cmd.Flags().StringVar(&f.empty, "empty", "", "Text for missing or empty values (default from XLGRID_EMPTY_VALUE)")
	cmd.Flags().BoolVar(&f.streaming, "stream", false, "Stream rows to the file (no column auto-size)")
	cmd.Flags().BoolVar(&f.printArea, "print-area", false, "Set the print area to the written rows")
	cmd.Flags().BoolVar(&f.repeat, "repeat-header", false, "Print the header rows on every page")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func runWrite(data []byte, f writeFlags) (string, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return "", err
	}
	header, err := buildHeader(f.title, f.fields, records)
	if err != nil {
		return "", err
	}

	opts := xlgrid.DefaultWriteOptions()
	opts.TimeLayout = cfg.Write.TimeLayout
	opts.Streaming = f.streaming || cfg.Write.Streaming

	w := xlgrid.NewWriter(opts)
	defer w.Close()

	headerStyle, _ := w.Styles().Named(style.PresetHeader)
	sheet := xlgrid.NewSheet(f.sheet, records, header)
	sheet.HeaderStyle = &headerStyle
	sheet.EmptyValue = cfg.Write.EmptyValue
	sheet.PrintArea = f.printArea
	sheet.RepeatHeader = f.repeat
	if f.emptySet {
		sheet.EmptyValue = f.empty
	}

	return w.Add(sheet).SaveAs(f.output)
}

// decodeRecords reads a JSON array of objects or one object per line,
// keeping each object's key order.
func decodeRecords(data []byte) ([]record.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []record.Record
	var bad error
	add := func(obj gjson.Result) bool {
		if !obj.IsObject() {
			bad = fmt.Errorf("record %d: expected a JSON object, got %s", len(records), obj.Type)
			return false
		}
		records = append(records, objectRecord(obj))
		return true
	}

	if trimmed[0] == '[' {
		if !gjson.ValidBytes(trimmed) {
			return nil, fmt.Errorf("invalid JSON input")
		}
		gjson.ParseBytes(trimmed).ForEach(func(_, value gjson.Result) bool {
			return add(value)
		})
	} else {
		gjson.ForEachLine(string(trimmed), func(line gjson.Result) bool {
			if !gjson.Valid(line.Raw) {
				bad = fmt.Errorf("record %d: invalid JSON line", len(records))
				return false
			}
			return add(line)
		})
	}
	return records, bad
}

func objectRecord(obj gjson.Result) record.Record {
	var names []string
	var values []any
	obj.ForEach(func(key, value gjson.Result) bool {
		names = append(names, key.String())
		switch {
		case value.Type == gjson.Null:
			values = append(values, nil)
		case value.IsObject(), value.IsArray():
			values = append(values, value.Raw)
		case value.Type == gjson.Number:
			values = append(values, jsonNumber(value.Raw))
		default:
			values = append(values, value.Value())
		}
		return true
	})
	return record.NewRow(names, values)
}

// jsonNumber keeps integers exact: int64 when they fit, the literal text
// when they do not. Other numbers decode as float64.
func jsonNumber(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if !strings.ContainsAny(raw, ".eE") {
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return f
}

// buildHeader returns the sheet layout: an optional title row spanning
// every column above one row of field labels. With neither a title nor
// fields it returns nil so the first record's keys become the header.
func buildHeader(title string, fields []string, records []record.Record) (*layout.Layout, error) {
	if title == "" && len(fields) == 0 {
		return nil, nil
	}

	row := layout.NewRow()
	switch {
	case len(fields) > 0:
		for _, spec := range fields {
			key, label, ok := strings.Cut(spec, "=")
			if !ok {
				label = key
			}
			row.Bind(strings.TrimSpace(key), strings.TrimSpace(label))
		}
	case len(records) > 0:
		for _, key := range records[0].Fields() {
			row.Bind(key, key)
		}
	default:
		return nil, fmt.Errorf("--title needs --field or at least one record")
	}
	if err := row.Err(); err != nil {
		return nil, err
	}

	if title == "" {
		return layout.New(row)
	}
	banner := layout.NewRow().Label(title, layout.Span(0, 0, 0, row.Len()-1))
	return layout.New(banner, row)
}
