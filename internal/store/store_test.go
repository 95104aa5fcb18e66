package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorSentinel/internal/model"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "stock_data.json")
	change := 1.25
	updated := "2025-12-01T15:30:00+09:00"
	in := &model.Payload{
		Sectors: map[string]model.RawSector{
			"Semi": {ChangePercent: &change, Tickers: []model.TickerEntry{
				model.DetailEntry("8035.T", 2.5, 31000),
				model.SymbolEntry("6857.T"),
			}},
		},
		History: []model.TimeSeriesPoint{
			{Date: "2025-11-26", Values: map[string]float64{"Semi": 0, model.IndexSeriesKey: 0}},
		},
		LastUpdated: &updated,
	}

	require.NoError(t, Save(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, os.IsNotExist(err))
}
