package materials

import (
	"io"

	"golang.org/x/text/language"
)

// Renderer displays the output of a pipeline run. The pipeline treats
// rendering as infallible; implementations that can fail keep the error
// for the caller to inspect afterwards.
type Renderer interface {
	Info(msg string)
	Error(msg string)
	Preview(records []Record)
	BarChart(records []FilteredRecord)
	QuantityPie(records []FilteredRecord)
	RecyclingPie(summary RecyclingSummary)
}

type Pipeline struct {
	Layout   Layout
	Allow    AllowList
	Lookup   RecyclingLookup
	Messages Messages
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		Layout:   DefaultLayout(),
		Allow:    DefaultAllowList(),
		Lookup:   DefaultRecyclingLookup(),
		Messages: NewMessages(language.English),
	}
}

// Report holds everything derived by one run.
type Report struct {
	Table    *Table
	Filtered []FilteredRecord
	Summary  RecyclingSummary
}

// Run executes the whole pipeline for one uploaded workbook. A nil reader
// means nothing was uploaded; the renderer gets an info message and Run
// returns a nil report and no error. Parse errors are returned without
// touching the renderer. Schema errors are shown through the renderer and
// returned; no chart is drawn in that case.
func (p *Pipeline) Run(r io.Reader, rd Renderer) (*Report, error) {
	if r == nil {
		rd.Info(p.Messages.Get(MsgNoUpload))
		return nil, nil
	}

	t, err := Parse(r, p.Layout)
	if err != nil {
		return nil, err
	}

	rd.Preview(head(t.Records, p.Layout.PreviewRows))

	if err := Validate(t); err != nil {
		rd.Error(p.Messages.Get(MsgMissingFields))
		return nil, err
	}

	filtered := Derive(Filter(t.Records, p.Allow), p.Lookup)
	summary := Summarize(filtered)

	rd.BarChart(filtered)
	rd.QuantityPie(filtered)
	rd.RecyclingPie(summary)

	return &Report{Table: t, Filtered: filtered, Summary: summary}, nil
}

func head(records []Record, n int) []Record {
	if n < len(records) {
		return records[:n]
	}
	return records
}
