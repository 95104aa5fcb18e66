package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Payload is the raw snapshot document published by the collector.
type Payload struct {
	Sectors            map[string]RawSector `json:"sectors,omitempty"`
	History            []TimeSeriesPoint    `json:"history,omitempty"`
	LastUpdated        *string              `json:"last_updated,omitempty"`
	NikkeiCurrentPrice *float64             `json:"nikkei_current_price,omitempty"`
}

// RawSector is a per-sector fragment of the payload.
type RawSector struct {
	ChangePercent *float64      `json:"change_percent"`
	Tickers       []TickerEntry `json:"tickers,omitempty"`
}

// TickerShape tags which wire form a ticker entry arrived in.
type TickerShape int

const (
	ShapeSymbol TickerShape = iota
	ShapeDetail
	ShapeMalformed
)

// TickerEntry is one element of a sector's ticker list. On the wire it is
// either a bare symbol string or a {ticker, change, price} object.
type TickerEntry struct {
	Shape  TickerShape
	Symbol string
	Change *float64
	Price  *float64
}

// SymbolEntry builds a bare-symbol entry.
func SymbolEntry(symbol string) TickerEntry {
	return TickerEntry{Shape: ShapeSymbol, Symbol: symbol}
}

// DetailEntry builds an entry carrying change and price.
func DetailEntry(symbol string, change, price float64) TickerEntry {
	return TickerEntry{Shape: ShapeDetail, Symbol: symbol, Change: &change, Price: &price}
}

type tickerDetail struct {
	Ticker string   `json:"ticker"`
	Change *float64 `json:"change"`
	Price  *float64 `json:"price"`
}

// UnmarshalJSON never fails on a well-formed JSON value: anything that is
// neither a string nor an object with a string "ticker" becomes ShapeMalformed.
func (e *TickerEntry) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = TickerEntry{Shape: ShapeMalformed}
	switch v := raw.(type) {
	case string:
		e.Shape = ShapeSymbol
		e.Symbol = v
	case map[string]interface{}:
		e.Change = numberOrNil(v["change"])
		e.Price = numberOrNil(v["price"])
		if sym, ok := v["ticker"].(string); ok && sym != "" {
			e.Shape = ShapeDetail
			e.Symbol = sym
		}
	}
	return nil
}

func (e TickerEntry) MarshalJSON() ([]byte, error) {
	switch e.Shape {
	case ShapeSymbol:
		return json.Marshal(e.Symbol)
	case ShapeDetail:
		return json.Marshal(tickerDetail{Ticker: e.Symbol, Change: e.Change, Price: e.Price})
	default:
		return []byte("null"), nil
	}
}

func numberOrNil(v interface{}) *float64 {
	if n, ok := v.(float64); ok {
		return &n
	}
	return nil
}

// ErrMalformedPayload marks a snapshot body that is not valid JSON or whose
// top level is not an object.
var ErrMalformedPayload = errors.New("malformed snapshot payload")

// DecodePayload parses a snapshot document. Individual fields of the wrong
// type are dropped to their zero value instead of failing the whole body.
func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &p, nil
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	if top == nil {
		return errors.New("top level is not an object")
	}
	*p = Payload{}

	var sectors map[string]json.RawMessage
	if json.Unmarshal(top["sectors"], &sectors) == nil && sectors != nil {
		p.Sectors = make(map[string]RawSector, len(sectors))
		for k, frag := range sectors {
			var rs RawSector
			if err := json.Unmarshal(frag, &rs); err != nil {
				continue
			}
			p.Sectors[k] = rs
		}
	}

	var rows []json.RawMessage
	if json.Unmarshal(top["history"], &rows) == nil {
		for _, row := range rows {
			var pt TimeSeriesPoint
			if err := json.Unmarshal(row, &pt); err != nil {
				continue
			}
			p.History = append(p.History, pt)
		}
	}

	if s, ok := decodeAny(top["last_updated"]).(string); ok {
		p.LastUpdated = &s
	}
	p.NikkeiCurrentPrice = numberOrNil(decodeAny(top["nikkei_current_price"]))
	return nil
}

// UnmarshalJSON accepts any object. A non-number change_percent is left nil
// and a non-array tickers field is treated as empty.
func (s *RawSector) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("sector fragment is not an object")
	}
	*s = RawSector{ChangePercent: numberOrNil(decodeAny(fields["change_percent"]))}
	var tickers []TickerEntry
	if json.Unmarshal(fields["tickers"], &tickers) == nil {
		s.Tickers = tickers
	}
	return nil
}

// decodeAny returns nil for absent or undecodable values.
func decodeAny(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
