package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// DailySeries holds the daily bars fetched for one symbol.
type DailySeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// LastClose returns the most recent close, or false when there are no bars.
func (s *DailySeries) LastClose() (float64, bool) {
	if s == nil || len(s.Bars) == 0 {
		return 0, false
	}
	return s.Bars[len(s.Bars)-1].Close, true
}
