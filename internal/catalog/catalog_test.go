package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SectorSentinel/internal/model"
)

func TestSectors_FixedOrder(t *testing.T) {
	got := Sectors()
	want := []model.SectorID{
		model.SectorAIRobot, model.SectorQuantum, model.SectorSemi,
		model.SectorBio, model.SectorFusion, model.SectorSpace,
	}
	assert.Len(t, got, 6)
	for i, s := range got {
		assert.Equal(t, want[i], s.ID)
		assert.Equal(t, i, s.Ordinal)
		assert.NotEmpty(t, s.Name)
	}
}

func TestSectors_ReturnsCopy(t *testing.T) {
	a := Sectors()
	a[0].Name = "changed"
	assert.Equal(t, "AI・ロボット", Sectors()[0].Name)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "ソフトバンクG", Resolve("9984.T"))
	assert.Equal(t, "アストロスケール", Resolve("186A.T"))
	assert.Equal(t, "1234.T", Resolve("1234.T"))
	assert.Equal(t, "", Resolve(""))
}

func TestConstituents(t *testing.T) {
	for _, s := range Sectors() {
		list := Constituents(s.ID)
		assert.Len(t, list, 10, s.ID)
		for _, tk := range list {
			assert.Equal(t, tk.Name, Resolve(tk.Symbol))
		}
	}
	assert.Empty(t, Constituents("Foo"))
}

func TestParseSectorID(t *testing.T) {
	id, ok := ParseSectorID("ai_robot")
	assert.True(t, ok)
	assert.Equal(t, model.SectorAIRobot, id)

	_, ok = ParseSectorID("Foo")
	assert.False(t, ok)
}

func TestQuoteURL(t *testing.T) {
	assert.Equal(t, "https://finance.yahoo.co.jp/quote/9984.T", QuoteURL("9984.T"))
}
