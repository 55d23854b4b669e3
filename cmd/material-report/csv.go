package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"kastelo.dev/materials"
)

// logRenderer reports banners through the log and draws nothing.
type logRenderer struct{}

func (logRenderer) Info(msg string)                         { slog.Info(msg) }
func (logRenderer) Error(msg string)                        { slog.Error(msg) }
func (logRenderer) Preview([]materials.Record)              {}
func (logRenderer) BarChart([]materials.FilteredRecord)     {}
func (logRenderer) QuantityPie([]materials.FilteredRecord)  {}
func (logRenderer) RecyclingPie(materials.RecyclingSummary) {}

func writeCSV(p *materials.Pipeline, input io.Reader, dir string) {
	rep := run(p, input, logRenderer{})
	if err := writeMaterials(dir, p.Messages, rep.Filtered); err != nil {
		slog.Error("Writing materials CSV", "error", err)
		os.Exit(1)
	}
	if err := writeRecycling(dir, p.Messages, rep.Summary); err != nil {
		slog.Error("Writing recycling CSV", "error", err)
		os.Exit(1)
	}
}

func writeMaterials(dir string, msgs materials.Messages, records []materials.FilteredRecord) error {
	rows := [][]string{{"Row", "ComponentID", "Quantity", "Unit", "QuantityWithUnit", "Recyclable"}}
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.Row),
			rec.Identifier,
			materials.QuantityText(rec.Quantity),
			rec.Unit,
			rec.QuantityWithUnit,
			msgs.Recyclability(rec.Recyclable),
		})
	}
	return writeRows(filepath.Join(dir, "materials.csv"), rows)
}

func writeRecycling(dir string, msgs materials.Messages, summary materials.RecyclingSummary) error {
	rows := [][]string{{"Recyclable", "Quantity"}}
	for _, row := range summary {
		rows = append(rows, []string{msgs.Recyclability(row.Recyclable), strconv.FormatFloat(row.Quantity, 'f', -1, 64)})
	}
	return writeRows(filepath.Join(dir, "recycling.csv"), rows)
}

// writeRows creates path and writes rows to it. The file is closed in
// every case; a close failure is reported when nothing else failed.
func writeRows(path string, rows [][]string) error {
	fd, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	cw := csv.NewWriter(fd)
	if err := cw.WriteAll(rows); err != nil {
		_ = fd.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
