package xpt

import (
	"fmt"

	"github.com/tealeg/xlsx"
)

// ExportXLSX writes the decoded file to an .xlsx workbook: one sheet per
// dataset, a header row of field names, then the materialized preview rows.
// Only the preview rows are exported; the true observation count is the
// viewer's concern, not the export's.
func ExportXLSX(f *XptFile, path string) error {
	out := xlsx.NewFile()

	seen := make(map[string]int)
	for _, ds := range f.Datasets {
		name := sheetName(ds.Name, seen)
		sheet, err := out.AddSheet(name)
		if err != nil {
			return fmt.Errorf("xpt: cannot add sheet %q: %w", name, err)
		}

		header := sheet.AddRow()
		for _, field := range ds.Fields {
			header.AddCell().SetString(field.Name)
		}

		for _, row := range ds.Rows {
			xr := sheet.AddRow()
			for _, field := range ds.Fields {
				cell := xr.AddCell()
				switch v := row[field.Name].(type) {
				case float64:
					cell.SetFloat(v)
				case string:
					cell.SetString(v)
				case nil:
					// missing numeric value: leave the cell empty
				}
			}
		}
	}

	return out.Save(path)
}

// sheetName keeps sheet names unique and non-empty; a transport file may
// contain several members with the same 8-character name.
func sheetName(name string, seen map[string]int) string {
	if name == "" {
		name = "DATASET"
	}
	seen[name]++
	if seen[name] > 1 {
		return fmt.Sprintf("%s_%d", name, seen[name])
	}
	return name
}
