package scheduler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/collector"
	"SectorSentinel/internal/model"
	"SectorSentinel/internal/notifier"
	"SectorSentinel/internal/recorder"
	"SectorSentinel/internal/store"
)

type countingRecorder struct {
	runs []string
}

func (c *countingRecorder) RecordRun(rec *recorder.RunRecord) error {
	c.runs = append(c.runs, rec.RunID)
	return nil
}

func (c *countingRecorder) Close() error { return nil }

func newTestScheduler(t *testing.T, f collector.Fetcher, tn *notifier.TelegramNotifier) (*Scheduler, *countingRecorder) {
	t.Helper()
	col := collector.NewCollector(f, "1y", 1000)
	col.Limiter = nil
	rec := &countingRecorder{}
	s := NewScheduler(context.Background(), col, rec, tn, filepath.Join(t.TempDir(), "public", "stock_data.json"))
	s.EventDate = "2025-11-26"
	s.EventLabel = "減税報道"
	return s, rec
}

func TestRunNow_WritesSnapshot(t *testing.T) {
	s, rec := newTestScheduler(t, &collector.MockFetcher{Price: 1000}, nil)
	require.NoError(t, s.RunNow())

	p, err := store.Load(s.OutputFile)
	require.NoError(t, err)
	assert.Len(t, p.Sectors, 6)
	assert.NotNil(t, p.NikkeiCurrentPrice)
	assert.NotEmpty(t, p.History)
	require.Len(t, rec.runs, 1)
	assert.Len(t, rec.runs[0], 36)
}

func TestRunNow_NotifiesOverview(t *testing.T) {
	var sent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sent.Store(string(body))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := notifier.NewTelegramNotifier("TOKEN", "1", "")
	tn.APIURL = srv.URL
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 1000}, tn)
	require.NoError(t, s.RunNow())

	body, _ := sent.Load().(string)
	assert.Contains(t, body, "スナップショット更新")
}

func TestRunNow_CollectFailure(t *testing.T) {
	f := &collector.MockFetcher{Errs: map[string]error{model.IndexSeriesKey: errors.New("down")}}
	for _, sec := range catalog.Sectors() {
		for _, tk := range catalog.Constituents(sec.ID) {
			f.Errs[tk.Symbol] = errors.New("down")
		}
	}
	s, rec := newTestScheduler(t, f, nil)
	assert.Error(t, s.RunNow())
	assert.Empty(t, rec.runs)

	_, err := store.Load(s.OutputFile)
	assert.Error(t, err)
}

func TestRunNow_Overlap(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 1000}, nil)
	s.running.Lock()
	defer s.running.Unlock()
	assert.ErrorIs(t, s.RunNow(), ErrRunInProgress)
}

func TestRegister(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 1000}, nil)
	assert.NoError(t, s.Register("0 30 15 * * 1-5"))
	assert.Error(t, s.Register("not a cron"))
	assert.Len(t, s.Cron.Entries(), 1)
}
