package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

func TestLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	require.NoError(t, l.Log(Entry{ReportID: "rpt-1", Score: 50, Level: interfaces.RiskMedium}))
	require.NoError(t, l.Log(Entry{ReportID: "rpt-2", Score: 100, Level: interfaces.RiskHigh}))

	sc := bufio.NewScanner(&buf)
	var entries []Entry
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "rpt-1", entries[0].ReportID)
	assert.Equal(t, interfaces.RiskHigh, entries[1].Level)
	assert.False(t, entries[0].Timestamp.IsZero(), "zero timestamps are filled in")
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Log(Entry{ReportID: "rpt"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestFileLogger_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	for i := 0; i < 2; i++ {
		l, err := NewFileLogger(path)
		require.NoError(t, err)
		require.NoError(t, l.Log(Entry{ReportID: "rpt"}))
		require.NoError(t, l.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestEntryFromReport(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	rpt := &interfaces.Report{
		ID:        "rpt-abc",
		Timestamp: ts,
		FileName:  "a.pdf",
		FileSize:  10,
		SHA256:    "00ff",
		RiskAssessment: interfaces.RiskAssessment{
			Score: 70,
			Level: interfaces.RiskHigh,
		},
		Tools: []interfaces.ToolResult{{OK: true}, {OK: false}, {OK: true}},
	}

	e := EntryFromReport(rpt, "cli")
	assert.Equal(t, ts.UTC(), e.Timestamp)
	assert.Equal(t, "cli", e.Source)
	assert.Equal(t, 70, e.Score)
	assert.Equal(t, 2, e.ToolsOK)
	assert.Equal(t, 3, e.ToolsRun)
	assert.Equal(t, "00ff", e.SHA256)
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	assert.NoError(t, l.Log(Entry{}))
	assert.NoError(t, l.Close())
}
