// Package viewmodel assembles the render-ready dashboard view from a raw
// snapshot payload.
package viewmodel

import (
	"sort"

	"SectorSentinel/internal/calculator"
	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/composer"
	"SectorSentinel/internal/model"
)

// Default is the view before any payload has been loaded: every sector at
// zero with no tickers and no since-event changes.
func Default(anchor string) model.ViewModel {
	return model.ViewModel{
		Sectors:       composer.Compose(nil),
		SectorChanges: map[model.SectorID]float64{},
		EventDate:     anchor,
	}
}

// Build transforms p into a view. It never fails; missing parts of the
// payload keep their defaults.
func Build(p *model.Payload, anchor string) model.ViewModel {
	vm := Default(anchor)
	if p == nil {
		return vm
	}
	vm.Sectors = composer.Compose(p.Sectors)
	vm.LastUpdated = cloneString(p.LastUpdated)
	vm.IndexPrice = cloneFloat(p.NikkeiCurrentPrice)

	history := sortedHistory(p.History)
	w, err := calculator.LocateWindow(history, anchor)
	if err != nil {
		return vm
	}
	for _, sec := range catalog.Sectors() {
		if c, err := calculator.NormalizeWindow(history, w, string(sec.ID)); err == nil {
			vm.SectorChanges[sec.ID] = c
		}
	}
	if c, err := calculator.NormalizeWindow(history, w, model.IndexSeriesKey); err == nil {
		vm.IndexChange = &c
	}
	return vm
}

func sortedHistory(in []model.TimeSeriesPoint) []model.TimeSeriesPoint {
	out := make([]model.TimeSeriesPoint, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
