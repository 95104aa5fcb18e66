package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/model"
)

func dailyBars(closes ...float64) []model.OHLCV {
	start := time.Date(2025, 11, 25, 6, 0, 0, 0, time.UTC)
	out := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		out[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

func newTestCollector(f Fetcher) *Collector {
	c := NewCollector(f, "1y", 1000)
	c.Limiter = nil
	c.Now = func() time.Time { return time.Date(2025, 12, 1, 6, 30, 0, 0, time.UTC) }
	return c
}

func TestCollect_BuildsPayload(t *testing.T) {
	ai := catalog.Constituents(model.SectorAIRobot)
	f := &MockFetcher{
		Price: 1000,
		Bars: map[string][]model.OHLCV{
			model.IndexSeriesKey: dailyBars(40000, 44000, 42000),
			ai[0].Symbol:         dailyBars(100, 110, 121),
			ai[1].Symbol:         dailyBars(200, 200, 190),
		},
		Errs: map[string]error{},
	}
	// Every other AI_Robot ticker fails, so the sector is driven by two tickers.
	for _, tk := range ai[2:] {
		f.Errs[tk.Symbol] = errors.New("boom")
	}

	p, err := newTestCollector(f).Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, p.Sectors, 6)
	raw := p.Sectors[string(model.SectorAIRobot)]
	require.Len(t, raw.Tickers, 10)
	assert.Equal(t, model.ShapeDetail, raw.Tickers[0].Shape)
	assert.Equal(t, 10.0, *raw.Tickers[0].Change)
	assert.Equal(t, 121.0, *raw.Tickers[0].Price)
	assert.Equal(t, -5.0, *raw.Tickers[1].Change)
	for _, e := range raw.Tickers[2:] {
		assert.Equal(t, model.ShapeSymbol, e.Shape)
	}
	assert.Equal(t, 2.5, *raw.ChangePercent)

	require.NotNil(t, p.NikkeiCurrentPrice)
	assert.Equal(t, 42000.0, *p.NikkeiCurrentPrice)
	require.NotNil(t, p.LastUpdated)
	assert.Equal(t, "2025-12-01T15:30:00+09:00", *p.LastUpdated)

	require.NotEmpty(t, p.History)
	var found bool
	for _, pt := range p.History {
		if pt.Date != "2025-11-27" {
			continue
		}
		found = true
		idx, ok := pt.IndexValue()
		require.True(t, ok)
		assert.Equal(t, 5.0, idx)
		v, ok := pt.Value(string(model.SectorAIRobot))
		require.True(t, ok)
		assert.Equal(t, 8.0, v) // mean of +21% and -5%
	}
	assert.True(t, found)
	for i := 1; i < len(p.History); i++ {
		assert.Less(t, p.History[i-1].Date, p.History[i].Date)
	}
}

func TestCollect_InsufficientBarsStayPending(t *testing.T) {
	sym := catalog.Constituents(model.SectorBio)[0].Symbol
	f := &MockFetcher{Price: 500, Bars: map[string][]model.OHLCV{sym: dailyBars(100)}}

	p, err := newTestCollector(f).Collect(context.Background())
	require.NoError(t, err)
	e := p.Sectors[string(model.SectorBio)].Tickers[0]
	assert.Equal(t, model.ShapeSymbol, e.Shape)
	assert.Equal(t, sym, e.Symbol)
}

func TestCollect_NothingFetched(t *testing.T) {
	f := &MockFetcher{Errs: map[string]error{}}
	f.Errs[model.IndexSeriesKey] = errors.New("down")
	for _, s := range catalog.Sectors() {
		for _, tk := range catalog.Constituents(s.ID) {
			f.Errs[tk.Symbol] = errors.New("down")
		}
	}
	_, err := newTestCollector(f).Collect(context.Background())
	assert.Error(t, err)
}

func TestCollect_CancelledContext(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100}, "1y", 0.001)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Collect(ctx)
	assert.Error(t, err)
}
