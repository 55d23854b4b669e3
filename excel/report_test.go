package excel

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"kastelo.dev/materials"
)

func filtered(t *testing.T) ([]materials.FilteredRecord, materials.RecyclingSummary) {
	t.Helper()
	recs := []materials.Record{
		{Row: 15, Identifier: "Wood", Quantity: materials.NewQuantity(50), Unit: "m3"},
		{Row: 16, Identifier: "Plastic", Quantity: materials.NewQuantity(10), Unit: "kg"},
		{Row: 17, Identifier: "Rebar", Quantity: materials.NewQuantity(5), Unit: "ton"},
	}
	f := materials.Derive(materials.Filter(recs, materials.DefaultAllowList()), materials.DefaultRecyclingLookup())
	return f, materials.Summarize(f)
}

func render(t *testing.T, rep *Report, records []materials.FilteredRecord, summary materials.RecyclingSummary) []byte {
	t.Helper()
	rep.Preview([]materials.Record{records[0].Record})
	rep.BarChart(records)
	rep.QuantityPie(records)
	rep.RecyclingPie(summary)
	require.NoError(t, rep.Err())

	bs, err := rep.Bytes()
	require.NoError(t, err)
	return bs
}

func countCharts(t *testing.T, bs []byte) int {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(bs), int64(len(bs)))
	require.NoError(t, err)
	n := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/charts/chart") && strings.HasSuffix(f.Name, ".xml") {
			n++
		}
	}
	return n
}

func TestReport(t *testing.T) {
	records, summary := filtered(t)
	rep := NewReport(materials.NewMessages(language.English))
	defer rep.Close()

	bs := render(t, rep, records, summary)
	assert.Equal(t, 3, countCharts(t, bs))

	xlsx, err := excelize.OpenReader(bytes.NewReader(bs))
	require.NoError(t, err)
	defer xlsx.Close()

	assert.Equal(t, []string{previewSheet, materialsSheet, recyclingSheet}, xlsx.GetSheetList())

	rows, err := xlsx.GetRows(materialsSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, []string{"Wood", "50", "m3", "50 m3", "possible"}, rows[1])
	assert.Equal(t, []string{"Plastic", "10", "kg", "10 kg", "not-possible"}, rows[2])

	rows, err = xlsx.GetRows(recyclingSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, []string{"possible", "50"}, rows[1][:2])
	assert.Equal(t, []string{"not-possible", "10"}, rows[2][:2])

	v, err := xlsx.GetCellValue(previewSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Data preview:", v)
}

func TestReportEmpty(t *testing.T) {
	rep := NewReport(materials.NewMessages(language.Korean))
	defer rep.Close()

	rep.Preview(nil)
	rep.BarChart(nil)
	rep.QuantityPie(nil)
	rep.RecyclingPie(nil)
	require.NoError(t, rep.Err())

	bs, err := rep.Bytes()
	require.NoError(t, err)
	assert.Equal(t, 3, countCharts(t, bs))
}

func TestReportSchemaError(t *testing.T) {
	rep := NewReport(materials.NewMessages(language.English))
	defer rep.Close()

	rep.Error(materials.MsgMissingFields)
	bs, err := rep.Bytes()
	require.NoError(t, err)
	assert.Equal(t, 0, countCharts(t, bs))

	xlsx, err := excelize.OpenReader(bytes.NewReader(bs))
	require.NoError(t, err)
	defer xlsx.Close()
	assert.Equal(t, []string{previewSheet}, xlsx.GetSheetList())

	v, err := xlsx.GetCellValue(previewSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, materials.MsgMissingFields, v)
}
