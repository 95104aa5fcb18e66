// Package vote keeps an in-memory tally of sector votes. Nothing is persisted
// or sent upstream; the tally starts from zero on every process start.
package vote

import (
	"errors"
	"sync"

	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/model"
)

var ErrUnknownSector = errors.New("unknown sector")

// Count is one sector's vote total.
type Count struct {
	Sector model.Sector
	Votes  int
}

// Tally counts votes per catalog sector. Safe for concurrent use.
type Tally struct {
	mu     sync.Mutex
	counts map[model.SectorID]int
}

func NewTally() *Tally {
	return &Tally{counts: make(map[model.SectorID]int)}
}

// Cast records one vote for id and returns the new total.
func (t *Tally) Cast(id model.SectorID) (int, error) {
	if _, ok := catalog.Lookup(id); !ok {
		return 0, ErrUnknownSector
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[id]++
	return t.counts[id], nil
}

// Counts returns all six totals in catalog order.
func (t *Tally) Counts() []Count {
	t.mu.Lock()
	defer t.mu.Unlock()
	sectors := catalog.Sectors()
	out := make([]Count, len(sectors))
	for i, s := range sectors {
		out[i] = Count{Sector: s, Votes: t.counts[s.ID]}
	}
	return out
}

// Leader returns the sector with the most votes. Ties go to the earlier
// catalog entry; ok is false while no votes have been cast.
func (t *Tally) Leader() (Count, bool) {
	var best Count
	for _, c := range t.Counts() {
		if c.Votes > best.Votes {
			best = c
		}
	}
	return best, best.Votes > 0
}
