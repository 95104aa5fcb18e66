package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// IndexSeriesKey is the history key carrying the broad-market index.
const IndexSeriesKey = "Nikkei225"

// TimeSeriesPoint is one dated row of the history. Values are percentage
// changes relative to the first row of the year-long window, keyed by sector
// id or IndexSeriesKey.
type TimeSeriesPoint struct {
	Date   string
	Values map[string]float64
}

// Value returns the series value for key; missing or null values report false.
func (p TimeSeriesPoint) Value(key string) (float64, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// IndexValue returns the broad-market index value.
func (p TimeSeriesPoint) IndexValue() (float64, bool) {
	return p.Value(IndexSeriesKey)
}

// UnmarshalJSON keeps numeric values only; a row that is not an object is
// rejected so the payload decoder can skip it.
func (p *TimeSeriesPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode history point: %w", err)
	}
	if raw == nil {
		return errors.New("history point is not an object")
	}
	*p = TimeSeriesPoint{Values: make(map[string]float64, len(raw))}
	for k, v := range raw {
		if k == "date" {
			p.Date, _ = v.(string)
			continue
		}
		if n, ok := v.(float64); ok {
			p.Values[k] = n
		}
	}
	return nil
}

func (p TimeSeriesPoint) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Values)+1)
	for k, v := range p.Values {
		out[k] = v
	}
	out["date"] = p.Date
	return json.Marshal(out)
}
