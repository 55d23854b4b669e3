package materials

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parse reads the active sheet of an xlsx workbook and extracts the
// identifier, quantity and unit columns described by layout. Records are
// returned in sheet order. Rows where all three cells are empty are
// skipped.
func Parse(r io.Reader, layout Layout) (*Table, error) {
	cols, err := layout.columns()
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if sheet == "" {
		return nil, &ParseError{Err: errors.New("workbook has no sheets")}
	}

	rows, err := xlsx.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	// A field exists when any row of the sheet reaches its column, like a
	// column range selected from the sheet dimension.
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	var t Table
	for i, name := range requiredFields {
		if cols[i] < width {
			t.Fields = append(t.Fields, name)
		}
	}

	for i := layout.HeaderRowsToSkip; i < len(rows); i++ {
		id := strings.TrimSpace(cellAt(rows[i], cols[0]))
		qty := strings.TrimSpace(cellAt(rows[i], cols[1]))
		unit := strings.TrimSpace(cellAt(rows[i], cols[2]))
		if id == "" && qty == "" && unit == "" {
			continue
		}

		rec := Record{
			Row:        i + 1,
			Identifier: id,
			Unit:       unit,
		}
		if qty != "" {
			rec.Quantity = ParseQuantity(qty)
		}
		t.Records = append(t.Records, rec)
	}

	return &t, nil
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// Validate checks that every required field was bound by Parse.
func Validate(t *Table) error {
	var missing []string
	for _, name := range requiredFields {
		if !t.HasField(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
