package model

// SectorID identifies one of the six tracked strategic sectors.
type SectorID string

const (
	SectorAIRobot SectorID = "AI_Robot"
	SectorQuantum SectorID = "Quantum"
	SectorSemi    SectorID = "Semi"
	SectorBio     SectorID = "Bio"
	SectorFusion  SectorID = "Fusion"
	SectorSpace   SectorID = "Space"
)

// Sector is an immutable catalog entry. Ordinal fixes display order.
type Sector struct {
	ID      SectorID `json:"id"`
	Name    string   `json:"name"`
	Ordinal int      `json:"ordinal"`
}

// Ticker pairs an exchange symbol with its display name.
type Ticker struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
