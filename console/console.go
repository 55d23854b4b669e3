// Package console renders a material quantity report as plain text tables.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"kastelo.dev/materials"
)

const barWidth = 40

type Renderer struct {
	w    io.Writer
	msgs materials.Messages
}

func New(w io.Writer, msgs materials.Messages) *Renderer {
	return &Renderer{w: w, msgs: msgs}
}

func (r *Renderer) Info(msg string) {
	_, _ = fmt.Fprintf(r.w, "INFO: %s\n", msg)
}

func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintf(r.w, "ERROR: %s\n", msg)
}

func (r *Renderer) Preview(records []materials.Record) {
	r.heading(r.msgs.Get(materials.MsgPreview))
	t := r.table(table.Row{"Row", r.msgs.Get(materials.MsgComponentID), r.msgs.Get(materials.MsgQuantity), r.msgs.Get(materials.MsgUnit)})
	for _, rec := range records {
		qty := rec.Quantity.Raw
		if rec.Quantity.Valid {
			qty = materials.QuantityText(rec.Quantity)
		}
		t.AppendRow(table.Row{rec.Row, rec.Identifier, qty, rec.Unit})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	t.Render()
}

// BarChart prints quantities with a horizontal bar scaled to the largest
// quantity.
func (r *Renderer) BarChart(records []materials.FilteredRecord) {
	r.heading(r.msgs.Get(materials.MsgBarHeading))
	r.title(r.msgs.Get(materials.MsgBarTitle))

	var maxQty float64
	for _, rec := range records {
		maxQty = max(maxQty, rec.Quantity.Float64())
	}

	t := r.table(table.Row{r.msgs.Get(materials.MsgComponentID), r.msgs.Get(materials.MsgQuantity), ""})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Identifier, materials.QuantityText(rec.Quantity), bar(rec.Quantity.Float64(), maxQty)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

func (r *Renderer) QuantityPie(records []materials.FilteredRecord) {
	r.heading(r.msgs.Get(materials.MsgPieHeading))
	r.title(r.msgs.Get(materials.MsgPieTitle))

	shares := materials.Shares(materials.Quantities(records))
	t := r.table(table.Row{r.msgs.Get(materials.MsgComponentID), r.msgs.Get(materials.MsgQuantity), r.msgs.Get(materials.MsgShare)})
	for i, rec := range records {
		t.AppendRow(table.Row{rec.Identifier, rec.QuantityWithUnit, percent(shares[i])})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}, {Number: 3, Align: text.AlignRight}})
	t.Render()
}

func (r *Renderer) RecyclingPie(summary materials.RecyclingSummary) {
	r.heading(r.msgs.Get(materials.MsgRecyclingHead))
	r.title(r.msgs.Get(materials.MsgRecyclingTitle))

	shares := materials.Shares(summary.Quantities())
	t := r.table(table.Row{r.msgs.Get(materials.MsgRecyclable), r.msgs.Get(materials.MsgQuantity), r.msgs.Get(materials.MsgShare)})
	for i, row := range summary {
		t.AppendRow(table.Row{r.msgs.Recyclability(row.Recyclable), materials.QuantityText(materials.NewQuantity(row.Quantity)), percent(shares[i])})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}, {Number: 3, Align: text.AlignRight}})
	t.Render()
}

func (r *Renderer) heading(s string) {
	_, _ = fmt.Fprintf(r.w, "\n## %s\n", s)
}

func (r *Renderer) title(s string) {
	_, _ = fmt.Fprintf(r.w, "%s\n", s)
}

func (r *Renderer) table(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func bar(v, maxV float64) string {
	if maxV <= 0 || v <= 0 {
		return ""
	}
	return strings.Repeat("█", max(1, int(v/maxV*barWidth+0.5)))
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
