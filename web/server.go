// Package web serves the interactive upload session: a form for one
// workbook and a page with the preview and the three charts.
package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"maragu.dev/gomponents"

	"kastelo.dev/materials"
	"kastelo.dev/materials/excel"
)

const (
	DefaultMaxUpload = 32 << 20
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Server struct {
	pipeline  *materials.Pipeline
	maxUpload int64
	logger    *slog.Logger
}

func NewServer(p *materials.Pipeline, maxUpload int64, logger *slog.Logger) *Server {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{pipeline: p, maxUpload: maxUpload, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.Index)
	r.Post("/", s.Upload)
	r.Post("/report.xlsx", s.Download)
	r.Get("/app.css", s.Stylesheet)
	return r
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	p := s.pipelineFor(r)
	page := NewPage(p.Messages)
	_, _ = p.Run(nil, page)
	renderHTML(w, http.StatusOK, page.Document())
}

// Upload runs the pipeline on the posted workbook and renders the result
// page. Every upload is a fresh run.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	p := s.pipelineFor(r)
	page := NewPage(p.Messages)

	file, err := s.formFile(w, r)
	if err != nil {
		s.logger.Warn("Rejected upload", "error", err, "request_id", middleware.GetReqID(r.Context()))
		page.Error(err.Error())
		renderHTML(w, uploadStatus(err), page.Document())
		return
	}
	if file != nil {
		defer file.Close()
	}

	_, err = p.Run(file, page)
	status := http.StatusOK
	var perr *materials.ParseError
	var serr *materials.SchemaError
	switch {
	case errors.As(err, &perr):
		s.logger.Warn("Unreadable workbook", "error", err, "request_id", middleware.GetReqID(r.Context()))
		page.Error(err.Error())
		status = http.StatusBadRequest
	case errors.As(err, &serr):
		s.logger.Info("Workbook lacks required fields", "missing", serr.Missing, "request_id", middleware.GetReqID(r.Context()))
		status = http.StatusUnprocessableEntity
	case err != nil:
		s.logger.Error("Running pipeline", "error", err, "request_id", middleware.GetReqID(r.Context()))
		status = http.StatusInternalServerError
	}

	renderHTML(w, status, page.Document())
}

// Download runs the pipeline on the posted workbook and answers with the
// xlsx report.
func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	p := s.pipelineFor(r)

	file, err := s.formFile(w, r)
	if err != nil {
		http.Error(w, err.Error(), uploadStatus(err))
		return
	}
	if file == nil {
		http.Error(w, p.Messages.Get(materials.MsgNoUpload), http.StatusBadRequest)
		return
	}
	defer file.Close()

	rep := excel.NewReport(p.Messages)
	defer rep.Close()

	_, err = p.Run(file, rep)
	var perr *materials.ParseError
	var serr *materials.SchemaError
	switch {
	case errors.As(err, &perr):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.As(err, &serr):
		http.Error(w, p.Messages.Get(materials.MsgMissingFields), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	bs, err := rep.Bytes()
	if err != nil {
		s.logger.Error("Creating Excel file", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="material-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bs)
}

func (s *Server) Stylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, stylesheet)
}

// formFile returns the uploaded workbook, or nil when the form carried no
// file or was not a multipart form at all.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

// pipelineFor returns the configured pipeline speaking the request's
// language: the lang query parameter first, then Accept-Language.
func (s *Server) pipelineFor(r *http.Request) *materials.Pipeline {
	p := *s.pipeline
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if msgs, err := materials.NewMessagesFor(lang); err == nil {
			p.Messages = msgs
			return &p
		}
	}
	if msgs, ok := materials.NewMessagesAccept(r.Header.Get("Accept-Language")); ok {
		p.Messages = msgs
	}
	return &p
}

func uploadStatus(err error) int {
	var merr *http.MaxBytesError
	if errors.As(err, &merr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
