// Package server exposes scanning over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/toyinlola/pdfsentry/pkg/audit"
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/pdfid"
	"github.com/toyinlola/pdfsentry/pkg/scan"
)

// Defaults for request handling.
const (
	DefaultMaxUpload   = 50 << 20
	DefaultScanTimeout = 5 * time.Minute
	maxScoreBody       = 1 << 20
	uploadField        = "file"
)

// Server serves the scan API.
type Server struct {
	scanner   interfaces.Scanner
	assessor  interfaces.Assessor
	audit     *audit.Logger
	logger    zerolog.Logger
	maxUpload int64
	timeout   time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithAuditLogger records every HTTP scan in l.
func WithAuditLogger(l *audit.Logger) Option {
	return func(s *Server) {
		s.audit = l
	}
}

// WithMaxUpload caps the accepted upload size in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) {
		s.maxUpload = n
	}
}

// WithScanTimeout bounds how long one scan request may take.
func WithScanTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// New creates a Server.
func New(scanner interfaces.Scanner, assessor interfaces.Assessor, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		scanner:   scanner,
		assessor:  assessor,
		audit:     audit.NopLogger(),
		logger:    logger,
		maxUpload: DefaultMaxUpload,
		timeout:   DefaultScanTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/scan", s.handleScan)
		r.Post("/score", s.handleScore)
	})

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScan accepts either a multipart upload in field "file" or a raw PDF body.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	body, name, err := s.uploadedFile(r)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	defer body.Close()

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rpt, err := s.scanner.Scan(ctx, name, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, scan.ErrTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		s.logger.Error().Err(err).Str("file", name).Msg("scan failed")
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	entry := audit.EntryFromReport(rpt, "http")
	entry.Remote = r.RemoteAddr
	if err := s.audit.Log(entry); err != nil {
		s.logger.Warn().Err(err).Msg("audit log write failed")
	}

	s.logger.Info().
		Str("report_id", rpt.ID).
		Str("file", rpt.FileName).
		Int("risk_score", rpt.Score).
		Str("risk_level", string(rpt.Level)).
		Msg("scan complete")

	writeJSON(w, http.StatusOK, rpt)
}

// handleScore scores PDFiD text posted as the request body.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxScoreBody)

	counts, err := pdfid.ParseReader(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		Counts:         counts,
		RiskAssessment: s.assessor.Assess(counts),
	})
}

type scoreResponse struct {
	Counts interfaces.KeywordCounts `json:"pdfid_counts"`
	interfaces.RiskAssessment
}

// uploadedFile returns the PDF stream and its client-supplied name.
func (s *Server) uploadedFile(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "upload.pdf"
		}
		return r.Body, name, nil
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return
	}
	writeError(w, http.StatusBadRequest, "expected a PDF body or multipart field \"file\"")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
