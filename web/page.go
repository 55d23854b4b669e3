package web

import (
	"fmt"
	"strings"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"kastelo.dev/materials"
)

const barColor = "skyblue"

var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Page is a materials.Renderer that collects HTML sections in call order.
type Page struct {
	msgs materials.Messages
	body []gomponents.Node
}

func NewPage(msgs materials.Messages) *Page {
	return &Page{msgs: msgs}
}

func (p *Page) Info(msg string) {
	p.body = append(p.body, html.Div(html.Class("banner info"), gomponents.Text(msg)))
}

func (p *Page) Error(msg string) {
	p.body = append(p.body, html.Div(html.Class("banner error"), gomponents.Text(msg)))
}

func (p *Page) Preview(records []materials.Record) {
	rows := make([]gomponents.Node, 0, len(records))
	for _, rec := range records {
		qty := rec.Quantity.Raw
		if rec.Quantity.Valid {
			qty = materials.QuantityText(rec.Quantity)
		}
		rows = append(rows, html.Tr(
			html.Td(gomponents.Text(fmt.Sprint(rec.Row))),
			html.Td(gomponents.Text(rec.Identifier)),
			html.Td(html.Class("num"), gomponents.Text(qty)),
			html.Td(gomponents.Text(rec.Unit)),
		))
	}

	p.body = append(p.body, html.Section(
		html.Class("card table-wrap"),
		html.P(html.Strong(gomponents.Text(p.msgs.Get(materials.MsgPreview)))),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Row")),
				html.Th(gomponents.Text(p.msgs.Get(materials.MsgComponentID))),
				html.Th(gomponents.Text(p.msgs.Get(materials.MsgQuantity))),
				html.Th(gomponents.Text(p.msgs.Get(materials.MsgUnit))),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	))
}

// BarChart draws one bar per record, scaled to the largest quantity, with
// labels rotated 45 degrees.
func (p *Page) BarChart(records []materials.FilteredRecord) {
	var maxQty float64
	for _, rec := range records {
		maxQty = max(maxQty, rec.Quantity.Float64())
	}

	bars := make([]gomponents.Node, 0, len(records))
	for _, rec := range records {
		height := 0.0
		if maxQty > 0 {
			height = max(rec.Quantity.Float64(), 0) / maxQty * 100
		}
		bars = append(bars, html.Div(
			html.Class("bar-col"),
			html.Title(rec.QuantityWithUnit),
			html.Div(html.Class("bar"), gomponents.Attr("style", fmt.Sprintf("height: %.1f%%; background: %s", height, barColor))),
			html.Span(html.Class("bar-label"), gomponents.Text(rec.Identifier)),
		))
	}

	p.body = append(p.body, html.Section(
		html.Class("card chart"),
		gomponents.Attr("data-chart", "bar"),
		html.H2(gomponents.Text(p.msgs.Get(materials.MsgBarHeading))),
		html.H3(gomponents.Text(p.msgs.Get(materials.MsgBarTitle))),
		html.Div(
			html.Class("bar-chart"),
			html.Span(html.Class("axis-y"), gomponents.Text(p.msgs.Get(materials.MsgQuantity))),
			html.Div(html.Class("bars"), gomponents.Group(bars)),
		),
		html.P(html.Class("axis-x"), gomponents.Text(p.msgs.Get(materials.MsgComponentID))),
	))
}

func (p *Page) QuantityPie(records []materials.FilteredRecord) {
	shares := materials.Shares(materials.Quantities(records))
	slices := make([]slice, len(records))
	for i, rec := range records {
		slices[i] = slice{label: rec.Identifier, hover: rec.QuantityWithUnit, share: shares[i]}
	}
	p.body = append(p.body, pie("quantity", p.msgs.Get(materials.MsgPieHeading), p.msgs.Get(materials.MsgPieTitle), slices))
}

func (p *Page) RecyclingPie(summary materials.RecyclingSummary) {
	shares := materials.Shares(summary.Quantities())
	slices := make([]slice, len(summary))
	for i, row := range summary {
		slices[i] = slice{
			label: p.msgs.Recyclability(row.Recyclable),
			hover: materials.QuantityText(materials.NewQuantity(row.Quantity)),
			share: shares[i],
		}
	}
	p.body = append(p.body, pie("recycling", p.msgs.Get(materials.MsgRecyclingHead), p.msgs.Get(materials.MsgRecyclingTitle), slices))
}

type slice struct {
	label string
	hover string
	share float64
}

// pie draws the slices as a conic gradient with a legend carrying the
// label, percentage and hover text.
func pie(kind, heading, title string, slices []slice) gomponents.Node {
	var stops []string
	legend := make([]gomponents.Node, 0, len(slices))
	from := 0.0
	for i, s := range slices {
		color := palette[i%len(palette)]
		to := from + s.share*100
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", color, from, to))
		from = to

		legend = append(legend, html.Li(
			html.Title(s.hover),
			html.Span(html.Class("swatch"), gomponents.Attr("style", "background: "+color)),
			gomponents.Text(fmt.Sprintf("%s %.1f%%", s.label, s.share*100)),
		))
	}

	background := "#EEEEEE"
	if from > 0 {
		background = "conic-gradient(" + strings.Join(stops, ", ") + ")"
	}

	return html.Section(
		html.Class("card chart"),
		gomponents.Attr("data-chart", kind),
		html.H2(gomponents.Text(heading)),
		html.H3(gomponents.Text(title)),
		html.Div(
			html.Class("pie-chart"),
			html.Div(html.Class("pie"), gomponents.Attr("role", "img"), gomponents.Attr("style", "background: "+background)),
			html.Ul(html.Class("legend"), gomponents.Group(legend)),
		),
	)
}

// Document wraps the collected sections in the upload page.
func (p *Page) Document() gomponents.Node {
	return html.HTML(
		html.Lang(p.msgs.Tag().String()),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(p.msgs.Get(materials.MsgBarTitle))),
			html.Link(html.Rel("stylesheet"), html.Href("/app.css")),
		),
		html.Body(
			html.Main(
				html.Class("layout"),
				uploadForm(p.msgs),
				gomponents.Group(p.body),
			),
		),
	)
}

func uploadForm(msgs materials.Messages) gomponents.Node {
	return html.Section(
		html.Class("card"),
		html.H1(gomponents.Text(msgs.Get(materials.MsgUploadPrompt))),
		html.Form(
			html.Method("post"),
			html.Action("/"),
			gomponents.Attr("enctype", "multipart/form-data"),
			html.Input(html.Type("file"), html.Name("file"), gomponents.Attr("accept", ".xlsx")),
			html.Button(html.Type("submit"), gomponents.Text("OK")),
			html.Button(html.Type("submit"), gomponents.Attr("formaction", "/report.xlsx"), gomponents.Text("xlsx")),
		),
	)
}
