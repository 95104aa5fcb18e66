// Package catalog holds the static sector and ticker registries. Both are
// built once at package initialization and exposed only through lookups.
package catalog

import (
	"strings"

	"SectorSentinel/internal/model"
)

var sectors = [...]model.Sector{
	{ID: model.SectorAIRobot, Name: "AI・ロボット", Ordinal: 0},
	{ID: model.SectorQuantum, Name: "量子技術", Ordinal: 1},
	{ID: model.SectorSemi, Name: "半導体・通信", Ordinal: 2},
	{ID: model.SectorBio, Name: "バイオ・ヘルスケア", Ordinal: 3},
	{ID: model.SectorFusion, Name: "核融合", Ordinal: 4},
	{ID: model.SectorSpace, Name: "宇宙", Ordinal: 5},
}

// Sectors returns the six sectors in ordinal order. The slice is a fresh copy.
func Sectors() []model.Sector {
	out := make([]model.Sector, len(sectors))
	copy(out, sectors[:])
	return out
}

// Lookup returns the sector with the given id.
func Lookup(id model.SectorID) (model.Sector, bool) {
	for _, s := range sectors {
		if s.ID == id {
			return s, true
		}
	}
	return model.Sector{}, false
}

// ParseSectorID matches s against catalog ids, ignoring case.
func ParseSectorID(s string) (model.SectorID, bool) {
	for _, sec := range sectors {
		if strings.EqualFold(string(sec.ID), s) {
			return sec.ID, true
		}
	}
	return "", false
}
