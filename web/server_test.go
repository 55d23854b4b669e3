package web

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kastelo.dev/materials"
)

func workbook(t *testing.T, withUnit bool) []byte {
	t.Helper()
	xlsx := excelize.NewFile()
	defer xlsx.Close()
	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())

	rows := []struct {
		id   string
		qty  float64
		unit string
	}{
		{"Wood", 50, "m3"},
		{"Plastic", 10, "kg"},
		{"Rebar", 5, "ton"},
	}
	for i, r := range rows {
		n := 15 + i
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.id)
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("H%d", n), r.qty)
		if withUnit {
			_ = xlsx.SetCellValue(sheet, fmt.Sprintf("I%d", n), r.unit)
		}
	}

	buf, err := xlsx.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, path string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "quantities.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func newTestServer(maxUpload int64) *Server {
	return NewServer(materials.NewPipeline(), maxUpload, nil)
}

func TestIndexShowsInfo(t *testing.T) {
	rec := serve(newTestServer(0), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "banner info")
	assert.Contains(t, body, materials.MsgNoUpload)
	assert.NotContains(t, body, `data-chart="bar"`)
}

func TestIndexKorean(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
	rec := serve(newTestServer(0), req)
	assert.Contains(t, rec.Body.String(), "엑셀 파일을 업로드하세요")

	req = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
	rec = serve(newTestServer(0), req)
	assert.Contains(t, rec.Body.String(), materials.MsgUploadPrompt)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
}

func TestPageLanguage(t *testing.T) {
	cases := []struct {
		accept string
		query  string
		lang   string
	}{
		{"ko-KR,ko;q=0.9", "", "ko"},
		{"en-US", "", "en"},
		{"fr-FR", "", "en"},
		{"en-US", "?lang=ko", "ko"},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/"+c.query, nil)
		req.Header.Set("Accept-Language", c.accept)
		rec := serve(newTestServer(0), req)
		assert.Contains(t, rec.Body.String(), fmt.Sprintf(`<html lang="%s">`, c.lang), c.accept+c.query)
	}
}

func TestUploadRendersCharts(t *testing.T) {
	rec := serve(newTestServer(0), uploadRequest(t, "/", workbook(t, true)))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, kind := range []string{"bar", "quantity", "recycling"} {
		assert.Contains(t, body, fmt.Sprintf(`data-chart="%s"`, kind))
	}
	assert.Contains(t, body, `title="50 m3"`)
	assert.Contains(t, body, "possible 83.3%")
	assert.Contains(t, body, "not-possible 16.7%")
	assert.Contains(t, body, "conic-gradient(")
	// Rebar shows in the preview but in no chart.
	assert.Equal(t, 1, strings.Count(body, "Rebar"))
}

func TestUploadWithoutFile(t *testing.T) {
	rec := serve(newTestServer(0), uploadRequest(t, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), materials.MsgNoUpload)
}

func TestUploadNotMultipart(t *testing.T) {
	cases := []struct {
		contentType string
		body        string
	}{
		{"application/x-www-form-urlencoded", ""},
		{"application/x-www-form-urlencoded", "file=report.xlsx"},
		{"", ""},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(c.body))
		if c.contentType != "" {
			req.Header.Set("Content-Type", c.contentType)
		}
		rec := serve(newTestServer(0), req)
		assert.Equal(t, http.StatusOK, rec.Code, c.contentType)
		body := rec.Body.String()
		assert.Contains(t, body, "banner info")
		assert.Contains(t, body, materials.MsgNoUpload)
		assert.NotContains(t, body, "banner error")
	}

	req := httptest.NewRequest(http.MethodPost, "/report.xlsx", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(newTestServer(0), req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), materials.MsgNoUpload)
}

func TestUploadMissingFields(t *testing.T) {
	rec := serve(newTestServer(0), uploadRequest(t, "/", workbook(t, false)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "banner error")
	assert.NotContains(t, body, "data-chart=")
}

func TestUploadNotAWorkbook(t *testing.T) {
	rec := serve(newTestServer(0), uploadRequest(t, "/", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "parsing workbook")
}

func TestUploadTooLarge(t *testing.T) {
	rec := serve(newTestServer(1024), uploadRequest(t, "/", bytes.Repeat([]byte("x"), 4096)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDownload(t *testing.T) {
	rec := serve(newTestServer(0), uploadRequest(t, "/report.xlsx", workbook(t, true)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	xlsx, err := excelize.OpenReader(io.Reader(rec.Body))
	require.NoError(t, err)
	defer xlsx.Close()
	assert.Contains(t, xlsx.GetSheetList(), "Recycling")
}

func TestDownloadErrors(t *testing.T) {
	rec := serve(newTestServer(0), uploadRequest(t, "/report.xlsx", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newTestServer(0), uploadRequest(t, "/report.xlsx", workbook(t, false)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStylesheet(t *testing.T) {
	rec := serve(newTestServer(0), httptest.NewRequest(http.MethodGet, "/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rotate(45deg)")
}
