package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"SectorSentinel/internal/calculator"
	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/logger"
	"SectorSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol, _ string) ([]model.OHLCV, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, 30), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector builds the snapshot payload from per-ticker daily bars.
type Collector struct {
	Fetcher Fetcher
	Range   string
	Limiter *rate.Limiter
	Workers int
	Now     func() time.Time
}

// NewCollector creates a Collector paced at rps requests per second.
func NewCollector(fetcher Fetcher, rng string, rps float64) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Range:   rng,
		Limiter: rate.NewLimiter(rate.Limit(rps), 1),
		Workers: 4,
		Now:     time.Now,
	}
}

// Collect fetches every constituent and the index, then assembles the
// payload. Individual fetch failures are logged and leave that ticker
// pending; Collect only fails when nothing at all could be fetched.
func (c *Collector) Collect(ctx context.Context) (*model.Payload, error) {
	log := logger.Component("collector")
	start := time.Now()

	symbols := []string{model.IndexSeriesKey}
	for _, sec := range catalog.Sectors() {
		for _, t := range catalog.Constituents(sec.ID) {
			symbols = append(symbols, t.Symbol)
		}
	}

	var mu sync.Mutex
	series := make(map[string]*model.DailySeries, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for _, sym := range symbols {
		sym := sym
		g.Go(func() error {
			if c.Limiter != nil {
				if err := c.Limiter.Wait(gctx); err != nil {
					return err
				}
			}
			bars, err := c.Fetcher.FetchDailyBars(gctx, sym, c.Range)
			if err != nil {
				log.WithError(err).WithField("symbol", sym).Warn("fetch failed, ticker left pending")
				return nil
			}
			mu.Lock()
			series[sym] = &model.DailySeries{Symbol: sym, Bars: bars, FetchedAt: time.Now()}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("collect: no data fetched from %s", c.Fetcher.Name())
	}

	p := &model.Payload{
		Sectors: make(map[string]model.RawSector),
		History: buildHistory(series),
	}
	for _, sec := range catalog.Sectors() {
		p.Sectors[string(sec.ID)] = buildSector(sec.ID, series)
	}
	if idx, ok := series[model.IndexSeriesKey].LastClose(); ok {
		price := calculator.Round2(idx)
		p.NikkeiCurrentPrice = &price
	}
	updated := c.Now().In(calculator.Tokyo).Format(time.RFC3339)
	p.LastUpdated = &updated

	log.WithField("symbols", len(series)).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("snapshot collected")
	return p, nil
}

func buildSector(id model.SectorID, series map[string]*model.DailySeries) model.RawSector {
	log := logger.Component("collector")
	tickers := catalog.Constituents(id)
	raw := model.RawSector{Tickers: make([]model.TickerEntry, len(tickers))}
	var changes []float64
	for i, t := range tickers {
		raw.Tickers[i] = model.SymbolEntry(t.Symbol)
		s, ok := series[t.Symbol]
		if !ok {
			continue
		}
		change, last, err := calculator.DayChange(s.Bars)
		if err != nil {
			log.WithError(err).WithField("symbol", t.Symbol).Warn("insufficient data")
			continue
		}
		raw.Tickers[i] = model.DetailEntry(t.Symbol, calculator.Round2(change), calculator.Round2(last))
		changes = append(changes, change)
	}
	avg, _ := calculator.Mean(changes)
	avg = calculator.Round2(avg)
	raw.ChangePercent = &avg
	return raw
}

// buildHistory produces one row per trading date seen in any series. Each
// sector's value is the mean cumulative change of its tickers on that date.
func buildHistory(series map[string]*model.DailySeries) []model.TimeSeriesPoint {
	log := logger.Component("collector")
	cumulative := make(map[string]map[string]float64, len(series))
	dates := make(map[string]struct{})
	for sym, s := range series {
		changes, err := calculator.CumulativeChanges(s.Bars)
		if err != nil {
			log.WithError(err).WithField("symbol", sym).Warn("skip history")
			continue
		}
		cumulative[sym] = changes
		for d := range changes {
			dates[d] = struct{}{}
		}
	}

	var history []model.TimeSeriesPoint
	for _, d := range calculator.SortedDates(dates) {
		pt := model.TimeSeriesPoint{Date: d, Values: make(map[string]float64)}
		if v, ok := cumulative[model.IndexSeriesKey][d]; ok {
			pt.Values[model.IndexSeriesKey] = calculator.Round2(v)
		}
		for _, sec := range catalog.Sectors() {
			var vals []float64
			for _, t := range catalog.Constituents(sec.ID) {
				if v, ok := cumulative[t.Symbol][d]; ok {
					vals = append(vals, v)
				}
			}
			if avg, ok := calculator.Mean(vals); ok {
				pt.Values[string(sec.ID)] = calculator.Round2(avg)
			}
		}
		history = append(history, pt)
	}
	return history
}
