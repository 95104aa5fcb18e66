package calculator

import (
	"errors"

	"SectorSentinel/internal/model"
)

// EventBaselineDate is the day the tax-cut report hit the market. Since-event
// changes are measured from the first history row on or after it.
const EventBaselineDate = "2025-11-26"

var (
	ErrEmptySeries = errors.New("empty series")
	ErrZeroLevel   = errors.New("baseline implies a zero price level")
)

// Window is a pair of row indices shared by every series in one history, so
// that all sectors and the index are compared from the same two dates.
type Window struct {
	Baseline int
	Current  int
}

// LocateWindow finds the baseline row (first date >= anchor, or the last row
// when the anchor is after all data) and the current row (always the last).
// Dates are YYYY-MM-DD and compare lexically.
func LocateWindow(series []model.TimeSeriesPoint, anchor string) (Window, error) {
	if len(series) == 0 {
		return Window{}, ErrEmptySeries
	}
	last := len(series) - 1
	w := Window{Baseline: last, Current: last}
	for i, p := range series {
		if p.Date >= anchor {
			w.Baseline = i
			break
		}
	}
	return w, nil
}

// Rebase converts two values that are percentages against an older anchor
// into the percentage change between them. 100+baseline is the implied price
// level at the baseline row.
func Rebase(baseline, current float64) (float64, error) {
	level := 100 + baseline
	if level == 0 {
		return 0, ErrZeroLevel
	}
	return (current - baseline) / level * 100, nil
}

// NormalizeWindow applies Rebase to key's values at the window rows. A key
// missing from a row counts as 0.
func NormalizeWindow(series []model.TimeSeriesPoint, w Window, key string) (float64, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}
	base, _ := series[w.Baseline].Value(key)
	cur, _ := series[w.Current].Value(key)
	return Rebase(base, cur)
}

// Normalize computes key's change since anchor.
func Normalize(series []model.TimeSeriesPoint, key, anchor string) (float64, error) {
	w, err := LocateWindow(series, anchor)
	if err != nil {
		return 0, err
	}
	return NormalizeWindow(series, w, key)
}
