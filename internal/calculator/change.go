package calculator

import (
	"errors"
	"math"
	"sort"

	"SectorSentinel/internal/model"
)

// DateLayout is the calendar date format used by history rows.
const DateLayout = "2006-01-02"

// PercentChange returns the change from -> to in percent.
func PercentChange(from, to float64) (float64, error) {
	if from == 0 {
		return 0, errors.New("zero starting price")
	}
	return (to - from) / from * 100, nil
}

// DayChange returns the last close and its change against the previous close.
func DayChange(bars []model.OHLCV) (change, last float64, err error) {
	if len(bars) < 2 {
		return 0, 0, errors.New("need at least two bars")
	}
	prev := bars[len(bars)-2].Close
	last = bars[len(bars)-1].Close
	change, err = PercentChange(prev, last)
	if err != nil {
		return 0, 0, err
	}
	return change, last, nil
}

// CumulativeChanges maps each bar's calendar date to its close's change
// against the first close in bars.
func CumulativeChanges(bars []model.OHLCV) (map[string]float64, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}
	closes := extractCloses(bars)
	out := make(map[string]float64, len(bars))
	for i, b := range bars {
		c, err := PercentChange(closes[0], closes[i])
		if err != nil {
			return nil, err
		}
		out[b.Time.In(Tokyo).Format(DateLayout)] = c
	}
	return out, nil
}

// Mean averages values; ok is false for an empty slice.
func Mean(values []float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SortedDates returns the keys of a date-keyed set in ascending order.
func SortedDates(set map[string]struct{}) []string {
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
