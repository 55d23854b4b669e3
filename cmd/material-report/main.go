package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin"
	"kastelo.dev/materials"
	"kastelo.dev/materials/console"
	"kastelo.dev/materials/excel"
	"kastelo.dev/materials/web"
)

func main() {
	layoutFile := kingpin.Flag("layout", "YAML file describing the sheet layout").ExistingFile()
	skipRows := kingpin.Flag("skip-rows", "Header rows to skip (overrides layout)").Default("-1").Int()
	columns := kingpin.Flag("columns", "Identifier, quantity and unit columns (overrides layout), e.g. A,H,I").String()
	var cols columnFlags
	kingpin.Flag("identifier-col", "Identifier column (overrides layout and --columns)").StringVar(&cols.identifier)
	kingpin.Flag("quantity-col", "Quantity column (overrides layout and --columns)").StringVar(&cols.quantity)
	kingpin.Flag("unit-col", "Unit column (overrides layout and --columns)").StringVar(&cols.unit)
	lang := kingpin.Flag("lang", "Output language (en, ko)").Default("en").String()
	debug := kingpin.Flag("debug", "Enable debug logging").Bool()
	infile := kingpin.Flag("input", "Input workbook (default stdin)").OpenFile(os.O_RDONLY, 0o666)

	cmdReport := kingpin.Command("report", "Write an xlsx report with charts")
	outfile := cmdReport.Flag("output", "Output file").Default("report.xlsx").String()
	cmdPreview := kingpin.Command("preview", "Print preview and chart data as tables")
	cmdCSV := kingpin.Command("csv", "Write filtered materials and recycling summary as CSV")
	dir := cmdCSV.Flag("dir", "Directory").Default(".").ExistingDir()
	cmdServe := kingpin.Command("serve", "Serve the interactive upload page")
	listen := cmdServe.Flag("listen", "Listen address").Default(":8080").String()
	maxUpload := cmdServe.Flag("max-upload", "Maximum upload size in bytes").Default("33554432").Int64()

	cmd := kingpin.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	p, err := pipeline(*layoutFile, *skipRows, *columns, cols, *lang)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}
	if ids := materials.UnreachableLookupEntries(p.Allow, p.Lookup); len(ids) > 0 {
		slog.Debug("Recycling lookup entries not reachable through the allow-list", "identifiers", ids)
	}

	input := io.Reader(os.Stdin)
	if *infile != nil {
		input = *infile
	}

	switch cmd {
	case cmdReport.FullCommand():
		writeReport(p, input, *outfile)
	case cmdPreview.FullCommand():
		preview(p, input)
	case cmdCSV.FullCommand():
		writeCSV(p, input, *dir)
	case cmdServe.FullCommand():
		serve(p, *listen, *maxUpload)
	}
}

// columnFlags are the single column overrides; empty means unset.
type columnFlags struct {
	identifier, quantity, unit string
}

// pipeline builds the configuration: defaults, then the layout file, then
// --skip-rows and --columns, then the single column flags.
func pipeline(layoutFile string, skipRows int, columns string, cols columnFlags, lang string) (*materials.Pipeline, error) {
	p := materials.NewPipeline()

	if layoutFile != "" {
		l, err := materials.LoadLayoutFile(layoutFile)
		if err != nil {
			return nil, err
		}
		p.Layout = l
	}
	if skipRows >= 0 {
		p.Layout.HeaderRowsToSkip = skipRows
	}
	if columns != "" {
		if err := p.Layout.SetColumns(columns); err != nil {
			return nil, err
		}
	}
	if err := p.Layout.OverrideColumns(cols.identifier, cols.quantity, cols.unit); err != nil {
		return nil, err
	}

	msgs, err := materials.NewMessagesFor(lang)
	if err != nil {
		return nil, err
	}
	p.Messages = msgs

	slog.Debug("Using layout", "skip", p.Layout.HeaderRowsToSkip, "identifier", p.Layout.IdentifierColumn,
		"quantity", p.Layout.QuantityColumn, "unit", p.Layout.UnitColumn)
	return p, nil
}

func run(p *materials.Pipeline, input io.Reader, rd materials.Renderer) *materials.Report {
	rep, err := p.Run(input, rd)
	var serr *materials.SchemaError
	switch {
	case errors.As(err, &serr):
		slog.Error("Workbook lacks required fields", "missing", serr.Missing)
		os.Exit(1)
	case err != nil:
		slog.Error("Error reading workbook", "error", err)
		os.Exit(1)
	}
	return rep
}

func writeReport(p *materials.Pipeline, input io.Reader, outfile string) {
	rep := excel.NewReport(p.Messages)
	defer rep.Close()

	run(p, input, rep)

	bs, err := rep.Bytes()
	if err != nil {
		slog.Error("Error creating Excel file", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outfile, bs, 0o644); err != nil {
		slog.Error("Error writing Excel file", "error", err)
		os.Exit(1)
	}
	slog.Info("Wrote report", "file", outfile)
}

func preview(p *materials.Pipeline, input io.Reader) {
	run(p, input, console.New(os.Stdout, p.Messages))
}

func serve(p *materials.Pipeline, listen string, maxUpload int64) {
	srv := &http.Server{
		Addr:              listen,
		Handler:           web.NewServer(p, maxUpload, slog.Default()).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Listening", "address", listen)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("Serving", "error", err)
		os.Exit(1)
	}
}
