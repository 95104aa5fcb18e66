// Package composer merges the raw per-sector payload fragments onto the
// sector catalog.
package composer

import (
	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/model"
)

// Compose returns one snapshot per catalog sector, in catalog order.
// Payload keys that are not catalog ids are ignored; catalog sectors missing
// from the payload keep the default snapshot.
func Compose(raw map[string]model.RawSector) []model.SectorSnapshot {
	sectors := catalog.Sectors()
	out := make([]model.SectorSnapshot, len(sectors))
	for i, sec := range sectors {
		frag, ok := raw[string(sec.ID)]
		if !ok {
			out[i] = Default(sec)
			continue
		}
		out[i] = ComposeSector(sec, frag)
	}
	return out
}

// Default is the snapshot shown before any data arrives.
func Default(sec model.Sector) model.SectorSnapshot {
	return model.SectorSnapshot{Sector: sec, Tickers: []model.PricePoint{}}
}

// ComposeSector builds a single sector's snapshot. The aggregate change is
// copied as given and never derived from the ticker list.
func ComposeSector(sec model.Sector, frag model.RawSector) model.SectorSnapshot {
	snap := Default(sec)
	if frag.ChangePercent != nil {
		snap.AggregateChangePercent = *frag.ChangePercent
	}
	if len(frag.Tickers) > 0 {
		snap.Tickers = make([]model.PricePoint, len(frag.Tickers))
		for i, e := range frag.Tickers {
			snap.Tickers[i] = NormalizeEntry(e)
		}
	}
	return snap
}

// NormalizeEntry folds either wire shape into a PricePoint. Bare symbols and
// malformed entries come out pending.
func NormalizeEntry(e model.TickerEntry) model.PricePoint {
	switch e.Shape {
	case model.ShapeSymbol:
		return model.PricePoint{Ticker: e.Symbol, Name: catalog.Resolve(e.Symbol)}
	case model.ShapeDetail:
		return model.PricePoint{
			Ticker: e.Symbol,
			Name:   catalog.Resolve(e.Symbol),
			Change: clone(e.Change),
			Price:  clone(e.Price),
		}
	default:
		return model.PricePoint{}
	}
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
