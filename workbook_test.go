package materials

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/xuri/excelize/v2"
)

type testRow struct {
	id   string
	qty  any
	unit string
}

// buildWorkbook writes header filler rows followed by rows in columns A, H
// and I, the default layout.
func buildWorkbook(t *testing.T, header int, rows ...testRow) io.Reader {
	t.Helper()

	xlsx := excelize.NewFile()
	defer xlsx.Close()
	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())

	for i := 1; i <= header; i++ {
		if err := xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", i), "header"); err != nil {
			t.Fatal(err)
		}
	}
	for i, r := range rows {
		n := header + i + 1
		if r.id != "" {
			_ = xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.id)
		}
		if r.qty != nil {
			_ = xlsx.SetCellValue(sheet, fmt.Sprintf("H%d", n), r.qty)
		}
		if r.unit != "" {
			_ = xlsx.SetCellValue(sheet, fmt.Sprintf("I%d", n), r.unit)
		}
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}
