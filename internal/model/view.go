package model

// Tier boundaries of a sector's ticker list. The split is positional only.
const (
	LargeCapCount    = 5
	SmallMidCapCount = 5
)

// PricePoint is the normalized form of a ticker entry. Nil Change or Price
// means the value has not been published yet.
type PricePoint struct {
	Ticker string   `json:"ticker"`
	Name   string   `json:"name"`
	Change *float64 `json:"change"`
	Price  *float64 `json:"price"`
}

// Pending reports whether the entry should render as a placeholder.
func (p PricePoint) Pending() bool {
	return p.Price == nil || p.Change == nil
}

// SectorSnapshot is one sector's composed summary.
type SectorSnapshot struct {
	Sector                 Sector       `json:"sector"`
	AggregateChangePercent float64      `json:"aggregate_change_percent"`
	Tickers                []PricePoint `json:"tickers"`
}

// LargeCap returns tickers [0,5).
func (s SectorSnapshot) LargeCap() []PricePoint {
	return tierSlice(s.Tickers, 0, LargeCapCount)
}

// SmallMidCap returns tickers [5,10).
func (s SectorSnapshot) SmallMidCap() []PricePoint {
	return tierSlice(s.Tickers, LargeCapCount, LargeCapCount+SmallMidCapCount)
}

func tierSlice(tickers []PricePoint, from, to int) []PricePoint {
	if from > len(tickers) {
		from = len(tickers)
	}
	if to > len(tickers) {
		to = len(tickers)
	}
	return tickers[from:to:to]
}

// ViewModel is the render-ready result of one snapshot load.
type ViewModel struct {
	Sectors []SectorSnapshot `json:"sectors"`
	// SectorChanges holds the since-event change per sector. A missing key
	// means the change could not be computed.
	SectorChanges map[SectorID]float64 `json:"sector_changes"`
	IndexChange   *float64             `json:"index_change"`
	LastUpdated   *string              `json:"last_updated"`
	IndexPrice    *float64             `json:"index_price"`
	EventDate     string               `json:"event_date"`
}

// SectorChange returns the since-event change for id.
func (v *ViewModel) SectorChange(id SectorID) (float64, bool) {
	c, ok := v.SectorChanges[id]
	return c, ok
}

// Sector returns the snapshot for id.
func (v *ViewModel) Sector(id SectorID) (SectorSnapshot, bool) {
	for _, s := range v.Sectors {
		if s.Sector.ID == id {
			return s, true
		}
	}
	return SectorSnapshot{}, false
}
