// Package excel renders a material quantity report as an xlsx workbook
// with native charts.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"kastelo.dev/materials"
)

const (
	previewSheet   = "Preview"
	materialsSheet = "Materials"
	recyclingSheet = "Recycling"

	barColor = "87CEEB" // skyblue
)

var noVaryColors = false

// Report is a materials.Renderer that builds a workbook. The first error
// encountered is kept and returned by Err and Bytes; later calls become
// no-ops.
type Report struct {
	xlsx *excelize.File
	msgs materials.Messages
	err  error

	previewRow    int
	materialsRows int
	haveMaterials bool
}

func NewReport(msgs materials.Messages) *Report {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/materials",
		Company:     "Kastelo AB",
		DocSecurity: 2,
	})

	r := &Report{xlsx: xlsx, msgs: msgs, previewRow: 1}
	r.err = xlsx.SetSheetName(xlsx.GetSheetName(xlsx.GetActiveSheetIndex()), previewSheet)
	_ = xlsx.SetColWidth(previewSheet, "A", "A", 8)
	_ = xlsx.SetColWidth(previewSheet, "B", "B", 32)
	_ = xlsx.SetColWidth(previewSheet, "C", "D", 14)
	return r
}

func (r *Report) Err() error {
	return r.err
}

func (r *Report) Info(msg string) {
	r.banner(msg, "#DCEBFA")
}

func (r *Report) Error(msg string) {
	r.banner(msg, "#F8D7DA")
}

func (r *Report) banner(msg, color string) {
	if r.err != nil {
		return
	}
	row := r.previewRow
	_ = r.xlsx.SetCellValue(previewSheet, cell('A', row), msg)
	style, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), highlight(color), fontBold()))
	_ = r.xlsx.SetCellStyle(previewSheet, cell('A', row), cell('D', row), style)
	r.previewRow += 2
}

func (r *Report) Preview(records []materials.Record) {
	if r.err != nil {
		return
	}
	sheet := previewSheet
	row := r.previewRow

	_ = r.xlsx.SetCellValue(sheet, cell('A', row), r.msgs.Get(materials.MsgPreview))
	style, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold()))
	_ = r.xlsx.SetCellStyle(sheet, cell('A', row), cell('A', row), style)
	row++

	r.header(sheet, row, "Row", r.msgs.Get(materials.MsgComponentID), r.msgs.Get(materials.MsgQuantity), r.msgs.Get(materials.MsgUnit))
	row++

	numStyle, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), quantityFormat()))
	for _, rec := range records {
		_ = r.xlsx.SetCellInt(sheet, cell('A', row), rec.Row)
		_ = r.xlsx.SetCellValue(sheet, cell('B', row), rec.Identifier)
		if rec.Quantity.Valid {
			_ = r.xlsx.SetCellFloat(sheet, cell('C', row), rec.Quantity.Value, -1, 64)
			_ = r.xlsx.SetCellStyle(sheet, cell('C', row), cell('C', row), numStyle)
		} else {
			_ = r.xlsx.SetCellValue(sheet, cell('C', row), rec.Quantity.Raw)
		}
		_ = r.xlsx.SetCellValue(sheet, cell('D', row), rec.Unit)
		row++
	}

	r.previewRow = row + 1
}

// BarChart draws one column per record on the materials sheet.
func (r *Report) BarChart(records []materials.FilteredRecord) {
	r.writeMaterials(records)
	if r.err != nil {
		return
	}

	r.err = r.xlsx.AddChart(materialsSheet, "G2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", materialsSheet),
				Categories: r.materialsRange('A'),
				Values:     r.materialsRange('B'),
				Fill: excelize.Fill{
					Type:    "pattern",
					Color:   []string{barColor},
					Pattern: 1,
				},
			},
		},
		Title:      []excelize.RichTextRun{{Text: r.msgs.Get(materials.MsgBarTitle)}},
		Legend:     excelize.ChartLegend{Position: "none"},
		VaryColors: &noVaryColors,
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: r.msgs.Get(materials.MsgComponentID)}},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: r.msgs.Get(materials.MsgQuantity)}},
		},
		Dimension: excelize.ChartDimension{Width: 800, Height: 480},
	})
}

// QuantityPie draws one slice per record on the materials sheet.
func (r *Report) QuantityPie(records []materials.FilteredRecord) {
	r.writeMaterials(records)
	if r.err != nil {
		return
	}

	r.err = r.xlsx.AddChart(materialsSheet, "G28", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", materialsSheet),
				Categories: r.materialsRange('A'),
				Values:     r.materialsRange('B'),
			},
		},
		Title:     []excelize.RichTextRun{{Text: r.msgs.Get(materials.MsgPieTitle)}},
		Legend:    excelize.ChartLegend{Position: "right"},
		PlotArea:  excelize.ChartPlotArea{ShowCatName: true, ShowPercent: true},
		Dimension: excelize.ChartDimension{Width: 640, Height: 480},
	})
}

// RecyclingPie writes the summary to its own sheet and draws one slice per
// recyclability flag.
func (r *Report) RecyclingPie(summary materials.RecyclingSummary) {
	if r.err != nil {
		return
	}
	sheet := recyclingSheet
	if _, err := r.xlsx.NewSheet(sheet); err != nil {
		r.err = err
		return
	}
	_ = r.xlsx.SetColWidth(sheet, "A", "A", 20)
	_ = r.xlsx.SetColWidth(sheet, "B", "C", 14)

	r.header(sheet, 1, r.msgs.Get(materials.MsgRecyclable), r.msgs.Get(materials.MsgQuantity), r.msgs.Get(materials.MsgShare))

	total := summary.Total()
	numStyle, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), quantityFormat()))
	pctStyle, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), percentFormat(), fontItalic()))
	row := 2
	for _, s := range summary {
		_ = r.xlsx.SetCellValue(sheet, cell('A', row), r.msgs.Recyclability(s.Recyclable))
		_ = r.xlsx.SetCellFloat(sheet, cell('B', row), s.Quantity, -1, 64)
		_ = r.xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), numStyle)
		if total != 0 {
			_ = r.xlsx.SetCellFormula(sheet, cell('C', row), fmt.Sprintf("B%d/SUM(B$2:B$%d)", row, len(summary)+1))
			_ = r.xlsx.SetCellStyle(sheet, cell('C', row), cell('C', row), pctStyle)
		}
		row++
	}

	last := max(len(summary)+1, 2)
	r.err = r.xlsx.AddChart(sheet, "E2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", sheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, last),
			},
		},
		Title:     []excelize.RichTextRun{{Text: r.msgs.Get(materials.MsgRecyclingTitle)}},
		Legend:    excelize.ChartLegend{Position: "right"},
		PlotArea:  excelize.ChartPlotArea{ShowCatName: true, ShowPercent: true},
		Dimension: excelize.ChartDimension{Width: 640, Height: 480},
	})
}

// writeMaterials writes the filtered records once; both record charts use
// the same cells.
func (r *Report) writeMaterials(records []materials.FilteredRecord) {
	if r.err != nil || r.haveMaterials {
		return
	}
	r.haveMaterials = true
	r.materialsRows = len(records)

	sheet := materialsSheet
	if _, err := r.xlsx.NewSheet(sheet); err != nil {
		r.err = err
		return
	}
	_ = r.xlsx.SetColWidth(sheet, "A", "A", 32)
	_ = r.xlsx.SetColWidth(sheet, "B", "C", 12)
	_ = r.xlsx.SetColWidth(sheet, "D", "E", 18)

	r.header(sheet, 1,
		r.msgs.Get(materials.MsgComponentID),
		r.msgs.Get(materials.MsgQuantity),
		r.msgs.Get(materials.MsgUnit),
		r.msgs.Get(materials.MsgQuantity)+" ("+r.msgs.Get(materials.MsgUnit)+")",
		r.msgs.Get(materials.MsgRecyclable),
	)

	_ = r.xlsx.SetPanes(sheet, &excelize.Panes{
		ActivePane:  "bottomLeft",
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	numStyle, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), quantityFormat()))
	unmappedStyle, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), fontItalic(), fontColor("#808080")))
	row := 2
	for _, rec := range records {
		_ = r.xlsx.SetCellValue(sheet, cell('A', row), rec.Identifier)
		if rec.Quantity.Valid {
			_ = r.xlsx.SetCellFloat(sheet, cell('B', row), rec.Quantity.Value, -1, 64)
			_ = r.xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), numStyle)
		}
		_ = r.xlsx.SetCellValue(sheet, cell('C', row), rec.Unit)
		_ = r.xlsx.SetCellValue(sheet, cell('D', row), rec.QuantityWithUnit)
		_ = r.xlsx.SetCellValue(sheet, cell('E', row), r.msgs.Recyclability(rec.Recyclable))
		if rec.Recyclable == materials.Unmapped {
			_ = r.xlsx.SetCellStyle(sheet, cell('E', row), cell('E', row), unmappedStyle)
		}
		row++
	}

	style, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), thickBorder("top")))
	_ = r.xlsx.SetCellStyle(sheet, cell('A', row), cell('E', row), style)
}

// materialsRange is the data range of col on the materials sheet. An empty
// record set still references one blank row so the chart has zero points.
func (r *Report) materialsRange(col rune) string {
	last := max(r.materialsRows+1, 2)
	return fmt.Sprintf("%s!$%c$2:$%c$%d", materialsSheet, col, col, last)
}

func (r *Report) header(sheet string, row int, titles ...string) {
	col := 'A'
	for _, t := range titles {
		_ = r.xlsx.SetCellValue(sheet, cell(col, row), t)
		col++
	}
	style, _ := r.xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom"), textAlignment("left")))
	_ = r.xlsx.SetCellStyle(sheet, cell('A', row), cell(col-1, row), style)
}

// Bytes returns the finished workbook.
func (r *Report) Bytes() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	r.xlsx.SetActiveSheet(0)

	// Increase size of window
	for i := range r.xlsx.WorkBook.BookViews.WorkBookView {
		r.xlsx.WorkBook.BookViews.WorkBookView[i].XWindow = "1000"
		r.xlsx.WorkBook.BookViews.WorkBookView[i].YWindow = "1000"
		r.xlsx.WorkBook.BookViews.WorkBookView[i].WindowWidth = 25000
		r.xlsx.WorkBook.BookViews.WorkBookView[i].WindowHeight = 25000 / 3 * 2
	}

	buf, err := r.xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Report) Close() error {
	return r.xlsx.Close()
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
