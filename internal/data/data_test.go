package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"freight-calc/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset(filepath.Join("testdata", "full"))
	require.NoError(t, err)

	// The row without a vessel is dropped.
	require.Len(t, ds.Combinations, 4)
	require.Len(t, ds.Assignments, 2)
	require.Len(t, ds.Scenarios, 4)

	first := ds.Combinations[0]
	assert.Equal(t, "ANN BELL", first.Vessel)
	assert.Equal(t, "EGA Bauxite", first.Cargo)
	require.NotNil(t, first.Days)
	assert.Equal(t, 30.0, *first.Days)
	assert.Equal(t, 12.0, first.BaseSpeed())
	assert.Nil(t, first.DailyHire)

	assert.Nil(t, ds.Combinations[1].TotalVLSFOMT, "blank cell")

	horizon := ds.Combinations[2]
	assert.Nil(t, horizon.Days)
	assert.Nil(t, horizon.TCE)
	assert.Nil(t, horizon.VLSFOPrice, "nan cell")
	assert.Nil(t, horizon.SpeedKnots)
	assert.Equal(t, 1.0, horizon.BaseDays())

	assert.Nil(t, ds.Combinations[3].MGOPrice, "unparseable cell")

	assert.Nil(t, ds.Assignments[1].ProfitMarginPct)
	require.NotNil(t, ds.Assignments[0].GrossRevenue)
	assert.Equal(t, 1200000.0, *ds.Assignments[0].GrossRevenue)

	assert.Equal(t, "3", ds.Scenarios[2].Scenario)
	assert.Nil(t, ds.Scenarios[2].TotalProfit)
}

func TestLoadDatasetMissingFilesAreEmpty(t *testing.T) {
	ds, err := LoadDataset(filepath.Join("testdata", "partial"))
	require.NoError(t, err)
	assert.Len(t, ds.Combinations, 1)
	assert.Empty(t, ds.Assignments)
	assert.Empty(t, ds.Scenarios)

	ds, err = LoadDataset(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, ds.Combinations)
	_, ok := ds.Find(model.Key{Vessel: "A", Cargo: "X"})
	assert.False(t, ok)
}

func TestLoadDatasetFromSingleFile(t *testing.T) {
	ds, err := LoadDataset(filepath.Join("testdata", "full", CombinationsFile))
	require.NoError(t, err)
	assert.Len(t, ds.Combinations, 4)
	assert.Empty(t, ds.Assignments)
	assert.Empty(t, ds.Scenarios)

	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, SaveRecordsJSON(&RecordList{Records: ds.Combinations}, path))

	fromJSON, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Combinations, fromJSON.Combinations)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"vessel":"A"}]`), 0644))
	_, err = LoadDataset(bad)
	assert.ErrorContains(t, err, "cargo is required")
}

func TestLoadDatasetMalformedFile(t *testing.T) {
	dir := t.TempDir()
	bad := "vessel,cargo\n\"A,X\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, CombinationsFile), []byte(bad), 0644))

	_, err := LoadDataset(dir)
	assert.Error(t, err)
}

func TestParseCombinationsHeaderVariants(t *testing.T) {
	in := "\ufeffVessel, Cargo ,Profit\nA,X,10\n"
	recs, err := ParseCombinations(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].Cargo)
	assert.Equal(t, 10.0, recs[0].BaseProfit())

	recs, err = ParseCombinations(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestVesselsAndCargoes(t *testing.T) {
	ds, err := LoadDataset(filepath.Join("testdata", "full"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ANN BELL", "OCEAN HORIZON"}, Vessels(ds.Combinations))
	assert.Equal(t, []string{"BHP Iron Ore", "CSN Iron Ore", "EGA Bauxite"}, Cargoes(ds.Combinations))
	assert.Equal(t, []string{}, Vessels(nil))
}

func TestMedianVLSFOPrice(t *testing.T) {
	ds, err := LoadDataset(filepath.Join("testdata", "full"))
	require.NoError(t, err)
	assert.Equal(t, 490.0, MedianVLSFOPrice(ds.Combinations))

	recs := []model.VoyageRecord{
		{Vessel: "A", Cargo: "X", VLSFOPrice: model.Float(500)},
		{Vessel: "B", Cargo: "X", VLSFOPrice: model.Float(520)},
	}
	assert.Equal(t, 510.0, MedianVLSFOPrice(recs))

	assert.Equal(t, DefaultVLSFOPrice, MedianVLSFOPrice(nil))
	assert.Equal(t, DefaultVLSFOPrice, MedianVLSFOPrice([]model.VoyageRecord{{Vessel: "A", Cargo: "X"}}))
}

func TestDefaultMGOPrice(t *testing.T) {
	assert.InDelta(t, 637.0, DefaultMGOPrice(DefaultVLSFOPrice), 1e-9)
	assert.InDelta(t, 780.0, DefaultMGOPrice(600), 1e-9)
	assert.Equal(t, 0.0, DefaultMGOPrice(0))
}

func TestMedian(t *testing.T) {
	xs := []float64{3, 1, 2}
	assert.Equal(t, 2.0, Median(xs))
	assert.Equal(t, []float64{3, 1, 2}, xs, "input untouched")
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestRecordsJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.json")
	list := &RecordList{
		UpdatedAt: "2026-01-15T00:00:00Z",
		Records: []model.VoyageRecord{
			{Vessel: "A", Cargo: "X", Profit: model.Float(1000), DailyHire: model.Float(9000)},
		},
	}
	require.NoError(t, SaveRecordsJSON(list, path))

	recs, err := LoadRecordsJSON(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 9000.0, recs[0].HireRate(0))
	assert.Nil(t, recs[0].Days)
}

func TestLoadRecordsJSONArrayAndErrors(t *testing.T) {
	dir := t.TempDir()

	arr := filepath.Join(dir, "arr.json")
	require.NoError(t, os.WriteFile(arr, []byte(`[{"vessel":"A","cargo":"X","days":12}]`), 0644))
	recs, err := LoadRecordsJSON(arr)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 12.0, recs[0].BaseDays())

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[{"vessel":"A"}]`), 0644))
	_, err = LoadRecordsJSON(invalid)
	assert.ErrorContains(t, err, "cargo is required")

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(`not json`), 0644))
	_, err = LoadRecordsJSON(garbage)
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadRecordsJSON(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}
