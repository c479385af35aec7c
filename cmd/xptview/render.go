package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"gopkg.inshopline.com/commons/xpt"
)

// renderJSON dumps the decoded file as the plain structured payload a
// display layer consumes: no behavior, no cycles, missing numerics as null.
func renderJSON(w io.Writer, file *xpt.XptFile, datasets []*xpt.Dataset) error {
	payload := &xpt.XptFile{Path: file.Path, Library: file.Library, Datasets: datasets}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// renderCSV writes one dataset's preview rows as CSV. With several datasets
// in the file the caller has to pick one; interleaving them would produce
// an unusable stream.
func renderCSV(w io.Writer, datasets []*xpt.Dataset) error {
	if len(datasets) != 1 {
		return fmt.Errorf("csv output needs a single dataset; use --dataset to pick one of %d", len(datasets))
	}
	ds := datasets[0]

	cw := csv.NewWriter(w)
	header := make([]string, len(ds.Fields))
	for i, f := range ds.Fields {
		header[i] = f.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		record := make([]string, len(ds.Fields))
		for i, f := range ds.Fields {
			record[i] = formatValue(row[f.Name])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderTables prints the file summary, then a schema table and a row
// preview per dataset.
func renderTables(w io.Writer, file *xpt.XptFile, datasets []*xpt.Dataset, rowLimit int) error {
	_, _ = fmt.Fprintf(w, "%s: %d dataset(s)\n", file.Path, len(datasets))
	if file.Library.SASVersion != "" || file.Library.OSName != "" {
		_, _ = fmt.Fprintf(w, "Written by SAS %s on %s\n", file.Library.SASVersion, file.Library.OSName)
	}

	for _, ds := range datasets {
		_, _ = fmt.Fprintln(w)
		title := ds.Name
		if ds.Label != "" {
			title += " - " + ds.Label
		}
		_, _ = fmt.Fprintf(w, "Dataset %s (%d observations)\n", title, ds.ObservationCount)

		renderSchema(w, ds)
		renderRows(w, ds, rowLimit)
	}
	return nil
}

func renderSchema(w io.Writer, ds *xpt.Dataset) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Len", "Format", "Label"})
	for i, f := range ds.Fields {
		t.AppendRow(table.Row{i + 1, f.Name, f.Type.String(), f.Length, f.Format, f.Label})
	}
	t.Render()
}

func renderRows(w io.Writer, ds *xpt.Dataset, rowLimit int) {
	if len(ds.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	shown := len(ds.Rows)
	if rowLimit > 0 && shown > rowLimit {
		shown = rowLimit
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(ds.Fields))
	for i, f := range ds.Fields {
		header[i] = f.Name
	}
	t.AppendHeader(header)

	for _, row := range ds.Rows[:shown] {
		tr := make(table.Row, len(ds.Fields))
		for i, f := range ds.Fields {
			tr[i] = formatValue(row[f.Name])
		}
		t.AppendRow(tr)
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d observations)\n", shown, ds.ObservationCount)
}

// formatValue renders a decoded value for tabular output. Missing numeric
// values render as the SAS missing dot.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "."
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
