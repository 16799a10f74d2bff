package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/toyinlola/pdfsentry/pkg/audit"
	"github.com/toyinlola/pdfsentry/pkg/interfaces"
	"github.com/toyinlola/pdfsentry/pkg/scan"
	"github.com/toyinlola/pdfsentry/pkg/scorer"
)

type fakeScanner struct {
	gotName string
	gotBody []byte
	err     error
}

func (f *fakeScanner) Scan(_ context.Context, name string, r io.Reader) (*interfaces.Report, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scan: staging input: %w", err)
	}
	f.gotName = name
	f.gotBody = body
	if f.err != nil {
		return nil, f.err
	}
	return &interfaces.Report{
		ID:        "rpt-test",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		FileName:  name,
		FileSize:  int64(len(body)),
		SHA256:    "abc123",
		RiskAssessment: interfaces.RiskAssessment{
			Score:      50,
			Level:      interfaces.RiskMedium,
			Highlights: []string{"/JavaScript present (1)"},
		},
	}, nil
}

func (f *fakeScanner) ScanFile(_ context.Context, _ string) (*interfaces.Report, error) {
	return nil, fmt.Errorf("not used")
}

// mockScanner records Scan calls keyed by name and body.
type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) Scan(_ context.Context, name string, r io.Reader) (*interfaces.Report, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	args := m.Called(name, string(body))
	rpt, _ := args.Get(0).(*interfaces.Report)
	return rpt, args.Error(1)
}

func (m *mockScanner) ScanFile(_ context.Context, path string) (*interfaces.Report, error) {
	args := m.Called(path)
	rpt, _ := args.Get(0).(*interfaces.Report)
	return rpt, args.Error(1)
}

func newTestServer(sc interfaces.Scanner, opts ...Option) *httptest.Server {
	s := New(sc, scorer.NewCalculator(), zerolog.Nop(), opts...)
	return httptest.NewServer(s.Handler())
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(&fakeScanner{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestScan_Multipart(t *testing.T) {
	sc := &fakeScanner{}
	var auditBuf bytes.Buffer
	ts := newTestServer(sc, WithAuditLogger(audit.NewLogger(&auditBuf)))
	defer ts.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "invoice.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.7 test"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/v1/scan", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "invoice.pdf", sc.gotName)
	assert.Equal(t, "%PDF-1.7 test", string(sc.gotBody))

	var rpt interfaces.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpt))
	assert.Equal(t, "rpt-test", rpt.ID)
	assert.Equal(t, 50, rpt.Score)
	assert.Equal(t, interfaces.RiskMedium, rpt.Level)

	var entry audit.Entry
	require.NoError(t, json.Unmarshal(auditBuf.Bytes(), &entry))
	assert.Equal(t, "http", entry.Source)
	assert.Equal(t, "rpt-test", entry.ReportID)
	assert.NotEmpty(t, entry.Remote)
}

func TestScan_RawBody(t *testing.T) {
	sc := &fakeScanner{}
	ts := newTestServer(sc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/scan?name=raw.pdf", "application/pdf", strings.NewReader("%PDF raw"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "raw.pdf", sc.gotName)
	assert.Equal(t, "%PDF raw", string(sc.gotBody))
}

func TestScan_RawBodyDefaultName(t *testing.T) {
	sc := &fakeScanner{}
	ts := newTestServer(sc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/scan", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "upload.pdf", sc.gotName)
}

func TestScan_MultipartMissingField(t *testing.T) {
	ts := newTestServer(&fakeScanner{})
	defer ts.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/v1/scan", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScan_TooLarge(t *testing.T) {
	ts := newTestServer(&fakeScanner{}, WithMaxUpload(8))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/scan", "application/pdf", strings.NewReader(strings.Repeat("x", 64)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestScan_ScannerTooLarge(t *testing.T) {
	ts := newTestServer(&fakeScanner{err: scan.ErrTooLarge})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/scan", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestScan_ScannerError(t *testing.T) {
	ts := newTestServer(&fakeScanner{err: fmt.Errorf("scan: running tools: %w", context.Canceled)})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/scan", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "scan failed", body["error"])
}

func TestScan_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(&fakeScanner{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/scan")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestScore(t *testing.T) {
	ts := newTestServer(&fakeScanner{})
	defer ts.Close()

	pdfidOut := strings.Join([]string{
		"PDFiD 0.2.8 sample.pdf",
		" PDF Header: %PDF-1.7",
		" obj                   12",
		" /JavaScript            1",
		" /OpenAction            1",
	}, "\n")

	resp, err := http.Post(ts.URL+"/v1/score", "text/plain", strings.NewReader(pdfidOut))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Counts     map[string]int       `json:"pdfid_counts"`
		Score      int                  `json:"risk_score"`
		Level      interfaces.RiskLevel `json:"risk_level"`
		Highlights []string             `json:"highlights"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 50, got.Score)
	assert.Equal(t, interfaces.RiskMedium, got.Level)
	assert.Equal(t, 1, got.Counts["/JavaScript"])
	assert.Equal(t, []string{
		"/JavaScript present (1)",
		"/OpenAction present (1)",
		"Auto-trigger actions detected (OpenAction/AA). Treat as high risk.",
		"JavaScript indicators present.",
	}, got.Highlights)
}

func TestScore_EmptyBody(t *testing.T) {
	ts := newTestServer(&fakeScanner{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/score", "text/plain", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Score      int                  `json:"risk_score"`
		Level      interfaces.RiskLevel `json:"risk_level"`
		Highlights []string             `json:"highlights"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, interfaces.RiskLow, got.Level)
	assert.Empty(t, got.Highlights)
}

func TestScan_CallsScannerOnce(t *testing.T) {
	sc := &mockScanner{}
	sc.On("Scan", "doc.pdf", "%PDF-1.4").
		Return(&interfaces.Report{ID: "rpt-1", FileName: "doc.pdf"}, nil).
		Once()

	ts := newTestServer(sc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/scan?name=doc.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	sc.AssertExpectations(t)
	sc.AssertNotCalled(t, "ScanFile", mock.Anything)
}
