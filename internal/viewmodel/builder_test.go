package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorSentinel/internal/calculator"
	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/model"
)

const anchor = calculator.EventBaselineDate

func decode(t *testing.T, data string) *model.Payload {
	t.Helper()
	p, err := model.DecodePayload([]byte(data))
	require.NoError(t, err)
	return p
}

func assertCatalogOrder(t *testing.T, vm model.ViewModel) {
	t.Helper()
	require.Len(t, vm.Sectors, 6)
	for i, s := range catalog.Sectors() {
		assert.Equal(t, s, vm.Sectors[i].Sector)
	}
}

func TestDefault(t *testing.T) {
	vm := Default(anchor)
	assertCatalogOrder(t, vm)
	for _, s := range vm.Sectors {
		assert.Zero(t, s.AggregateChangePercent)
		assert.Empty(t, s.Tickers)
	}
	assert.Empty(t, vm.SectorChanges)
	assert.Nil(t, vm.IndexChange)
	assert.Nil(t, vm.LastUpdated)
	assert.Nil(t, vm.IndexPrice)
	assert.Equal(t, anchor, vm.EventDate)
}

func TestBuild_NilPayload(t *testing.T) {
	assert.Equal(t, Default(anchor), Build(nil, anchor))
}

func TestBuild_EndToEnd(t *testing.T) {
	p := decode(t, `{
		"sectors": {
			"Space": {"change_percent": -0.5, "tickers": ["7011.T"]},
			"Foo": {"change_percent": 99, "tickers": ["X"]},
			"AI_Robot": {"change_percent": 2.5}
		},
		"history": [
			{"date": "2025-12-01", "Nikkei225": 20, "AI_Robot": 20, "Space": 0},
			{"date": "2025-11-20", "Nikkei225": 5, "AI_Robot": 10, "Space": -5},
			{"date": "2025-11-26", "Nikkei225": 10, "AI_Robot": 10, "Space": -20}
		],
		"last_updated": "2025-12-01T15:30:00+09:00",
		"nikkei_current_price": 50123.45
	}`)
	vm := Build(p, anchor)
	assertCatalogOrder(t, vm)

	ai, ok := vm.Sector(model.SectorAIRobot)
	require.True(t, ok)
	assert.Equal(t, 2.5, ai.AggregateChangePercent)
	assert.Empty(t, ai.Tickers)
	assert.Empty(t, ai.LargeCap())
	assert.Empty(t, ai.SmallMidCap())

	space, _ := vm.Sector(model.SectorSpace)
	assert.Equal(t, -0.5, space.AggregateChangePercent)
	require.Len(t, space.Tickers, 1)
	assert.Equal(t, "三菱重工業", space.Tickers[0].Name)

	// History arrives out of order; the baseline is the 11-26 row.
	c, ok := vm.SectorChange(model.SectorAIRobot)
	require.True(t, ok)
	assert.InDelta(t, 9.0909, c, 0.0001)
	c, ok = vm.SectorChange(model.SectorSpace)
	require.True(t, ok)
	assert.InDelta(t, 25.0, c, 1e-9)

	// Sectors absent from history still get a value: missing counts as 0.
	c, ok = vm.SectorChange(model.SectorBio)
	require.True(t, ok)
	assert.Equal(t, 0.0, c)

	require.NotNil(t, vm.IndexChange)
	assert.InDelta(t, 9.0909, *vm.IndexChange, 0.0001)
	require.NotNil(t, vm.LastUpdated)
	assert.Equal(t, "2025-12-01T15:30:00+09:00", *vm.LastUpdated)
	require.NotNil(t, vm.IndexPrice)
	assert.Equal(t, 50123.45, *vm.IndexPrice)
}

func TestBuild_EmptyHistory(t *testing.T) {
	for _, data := range []string{
		`{"sectors": {"Semi": {"change_percent": 1}}}`,
		`{"history": []}`,
	} {
		vm := Build(decode(t, data), anchor)
		assertCatalogOrder(t, vm)
		for _, s := range catalog.Sectors() {
			_, ok := vm.SectorChange(s.ID)
			assert.False(t, ok, "%s should be unavailable", s.ID)
		}
		assert.Nil(t, vm.IndexChange)
	}
}

func TestBuild_AnchorAfterAllData(t *testing.T) {
	vm := Build(decode(t, `{"history": [
		{"date": "2025-10-01", "Nikkei225": 1, "Semi": 3},
		{"date": "2025-10-02", "Nikkei225": 2, "Semi": 8}
	]}`), anchor)
	for _, s := range catalog.Sectors() {
		c, ok := vm.SectorChange(s.ID)
		require.True(t, ok)
		assert.Equal(t, 0.0, c)
	}
	require.NotNil(t, vm.IndexChange)
	assert.Equal(t, 0.0, *vm.IndexChange)
}

func TestBuild_KeyOrderDoesNotMatter(t *testing.T) {
	a := Build(decode(t, `{"sectors": {"Bio": {"change_percent": 1}, "Quantum": {"change_percent": 2}}}`), anchor)
	b := Build(decode(t, `{"sectors": {"Quantum": {"change_percent": 2}, "Bio": {"change_percent": 1}}}`), anchor)
	assert.Equal(t, a, b)
}

func TestBuild_DoesNotRoundStoredValues(t *testing.T) {
	vm := Build(decode(t, `{"sectors": {"Bio": {"change_percent": 1.23456}}}`), anchor)
	bio, _ := vm.Sector(model.SectorBio)
	assert.Equal(t, 1.23456, bio.AggregateChangePercent)
}

func TestBuild_WrongTypedFieldsKeepTheRest(t *testing.T) {
	const good = `"AI_Robot": {"change_percent": 2.5}`
	cases := []struct {
		name string
		data string
		want float64
	}{
		{"unknown key with array value", `{"sectors": {` + good + `, "Foo": [1, 2]}}`, 2.5},
		{"catalog sector that is not an object", `{"sectors": {` + good + `, "Semi": 5}}`, 2.5},
		{"string change_percent", `{"sectors": {` + good + `, "Bio": {"change_percent": "1.5", "tickers": ["4519.T"]}}}`, 2.5},
		{"string tickers", `{"sectors": {` + good + `, "Bio": {"change_percent": 1, "tickers": "4519.T"}}}`, 2.5},
		{"string index price", `{"sectors": {` + good + `}, "nikkei_current_price": "49000"}`, 2.5},
		{"numeric last_updated", `{"sectors": {` + good + `}, "last_updated": 20251201}`, 2.5},
		{"non-object history row", `{"sectors": {` + good + `}, "history": [
			{"date": "2025-11-26", "AI_Robot": 0}, 7, null, "x",
			{"date": "2025-12-01", "AI_Robot": 10}]}`, 2.5},
		{"history that is not an array", `{"sectors": {` + good + `}, "history": {"date": "2025-11-26"}}`, 2.5},
		{"sectors that is not an object", `{"sectors": [1], "history": [{"date": "2025-11-26", "AI_Robot": 1}]}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm := Build(decode(t, tc.data), anchor)
			assertCatalogOrder(t, vm)
			ai, _ := vm.Sector(model.SectorAIRobot)
			assert.Equal(t, tc.want, ai.AggregateChangePercent)
		})
	}
}

func TestBuild_WrongTypedFieldsFallBackPerField(t *testing.T) {
	vm := Build(decode(t, `{
		"sectors": {
			"Semi": 5,
			"Bio": {"change_percent": "1.5", "tickers": ["4519.T"]},
			"Space": {"change_percent": -1, "tickers": "7011.T"}
		},
		"history": [{"date": "2025-11-26", "Space": 0}, 7, {"date": "2025-12-01", "Space": 10}],
		"nikkei_current_price": "49000",
		"last_updated": 20251201
	}`), anchor)

	semi, _ := vm.Sector(model.SectorSemi)
	assert.Zero(t, semi.AggregateChangePercent)
	assert.Empty(t, semi.Tickers)

	bio, _ := vm.Sector(model.SectorBio)
	assert.Zero(t, bio.AggregateChangePercent)
	require.Len(t, bio.Tickers, 1)
	assert.Equal(t, "4519.T", bio.Tickers[0].Ticker)

	space, _ := vm.Sector(model.SectorSpace)
	assert.Equal(t, -1.0, space.AggregateChangePercent)
	assert.Empty(t, space.Tickers)

	c, ok := vm.SectorChange(model.SectorSpace)
	require.True(t, ok)
	assert.Equal(t, 10.0, c)

	assert.Nil(t, vm.IndexPrice)
	assert.Nil(t, vm.LastUpdated)
}
