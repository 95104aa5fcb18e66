package recorder

import (
	"time"

	"SectorSentinel/internal/model"
)

// RunRecord holds one collector run.
type RunRecord struct {
	RunID       string
	CollectedAt time.Time
	OutputFile  string
	Payload     *model.Payload
}

// Recorder persists the history of produced snapshots for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
