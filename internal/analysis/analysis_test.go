package analysis

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"testing"

	"freight-calc/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var f = model.Float

func testCombinations() []model.VoyageRecord {
	return []model.VoyageRecord{
		{Vessel: "A", Cargo: "X", Profit: f(100000), TCE: f(10000), Days: f(10), TotalVLSFOMT: f(500), TotalMGOMT: f(50), VLSFOPrice: f(500), MGOPrice: f(650)},
		{Vessel: "B", Cargo: "Y", Profit: f(90000), TCE: f(15000), Days: f(6), TotalVLSFOMT: f(100), TotalMGOMT: f(10), VLSFOPrice: f(500), MGOPrice: f(650)},
		{Vessel: "C", Cargo: "Z", Profit: f(50000), Days: f(5)},
	}
}

func testDataset() *model.Dataset {
	scen := make([]model.ScenarioOutcome, 0, 21)
	for i := 1; i <= 20; i++ {
		scen = append(scen, model.ScenarioOutcome{TotalProfit: f(float64(i * 100))})
	}
	scen = append(scen, model.ScenarioOutcome{Scenario: "broken"})

	return &model.Dataset{
		Combinations: testCombinations(),
		Assignments: []model.Assignment{
			{Vessel: "A", Cargo: "X", GrossRevenue: f(200000), NetRevenue: f(190000), BunkerCost: f(40000), HireCost: f(50000), TotalCosts: f(90000), Profit: f(100000), TCE: f(10000), Days: f(10), ProfitMarginPct: f(50)},
			{Vessel: "B", Cargo: "Y", GrossRevenue: f(150000), Profit: f(60000), TCE: f(6000), Days: f(10)},
			{Vessel: "A", Cargo: "Z", Profit: f(-10000), Days: f(5)},
		},
		Scenarios: scen,
	}
}

func keys(entries []TopEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Vessel+"/"+e.Cargo)
	}
	return out
}

func TestTopNPrefersTCE(t *testing.T) {
	top, metric := TopN(testDataset(), 2)
	assert.Equal(t, ByTCE, metric)
	assert.Equal(t, []string{"B/Y", "A/X"}, keys(top))

	all, _ := TopN(testDataset(), 10)
	assert.Equal(t, []string{"B/Y", "A/X", "C/Z"}, keys(all), "rows without TCE sort last")
}

func TestTopNFallsBackToProfitAndAssignments(t *testing.T) {
	ds := &model.Dataset{Combinations: []model.VoyageRecord{
		{Vessel: "A", Cargo: "X", Profit: f(1)},
		{Vessel: "B", Cargo: "Y", Profit: f(3)},
	}}
	top, metric := TopN(ds, 5)
	assert.Equal(t, ByProfit, metric)
	assert.Equal(t, []string{"B/Y", "A/X"}, keys(top))

	ds = testDataset()
	ds.Combinations = nil
	top, metric = TopN(ds, 5)
	assert.Equal(t, ByTCE, metric)
	assert.Equal(t, []string{"A/X", "B/Y", "A/Z"}, keys(top))

	top, _ = TopN(nil, 5)
	assert.Empty(t, top)
}

func TestTopNBy(t *testing.T) {
	assert.Equal(t, []string{"A/X", "B/Y", "C/Z"}, keys(TopNBy(testCombinations(), ByProfit, -1)))
	assert.Empty(t, TopNBy(testCombinations(), ByProfit, 0))
}

func TestTopAdjusted(t *testing.T) {
	top := TopAdjusted(testCombinations(), 600, 650, 5)
	require.Len(t, top, 3)

	assert.Equal(t, "B", top[0].Vessel)
	assert.InDelta(t, 80000, top[0].AdjProfit, 1e-6)
	assert.InDelta(t, 80000.0/6, top[0].AdjTCE, 1e-6)

	// A and C tie at 50000; input order is kept.
	assert.Equal(t, "A", top[1].Vessel)
	assert.InDelta(t, 50000, top[1].AdjProfit, 1e-6)
	assert.Equal(t, "C", top[2].Vessel)
	assert.InDelta(t, 50000, top[2].AdjProfit, 1e-6)

	assert.Len(t, TopAdjusted(testCombinations(), 600, 650, 1), 1)
}

func TestBuildReport(t *testing.T) {
	r, err := BuildReport(testDataset())
	require.NoError(t, err)

	assert.Equal(t, 3, r.TotalAssignments)
	assert.Equal(t, 2, r.VesselsUtilized)
	assert.Equal(t, 3, r.CargoesAssigned)
	assert.InDelta(t, 350000, *r.TotalGrossRevenue, 1e-9)
	assert.InDelta(t, 190000, *r.TotalNetRevenue, 1e-9)
	assert.InDelta(t, 40000, *r.TotalBunkerCost, 1e-9)
	assert.InDelta(t, 50000, *r.TotalHireCost, 1e-9)
	assert.InDelta(t, 90000, *r.TotalOperatingCosts, 1e-9)
	assert.InDelta(t, 150000, *r.TotalProfit, 1e-9)
	assert.InDelta(t, 8000, *r.AvgTCE, 1e-9)
	assert.InDelta(t, 50, *r.AvgProfitMarginPct, 1e-9)
	assert.Equal(t, []string{"B/Y", "A/X", "C/Z"}, keys(r.Top5))

	require.NotNil(t, r.Scenarios)
	assert.Equal(t, 100.0, r.Scenarios.MinProfit)
	assert.InDelta(t, 1050, r.Scenarios.MedianProfit, 1e-9)
	assert.Equal(t, 2000.0, r.Scenarios.MaxProfit)
}

func TestBuildReportMissingColumns(t *testing.T) {
	ds := &model.Dataset{Assignments: []model.Assignment{{Vessel: "A", Cargo: "X"}}}
	r, err := BuildReport(ds)
	require.NoError(t, err)
	assert.Nil(t, r.TotalProfit)
	assert.Nil(t, r.AvgTCE)
	assert.Nil(t, r.Scenarios)

	_, err = BuildReport(&model.Dataset{})
	assert.ErrorIs(t, err, ErrNoAssignments)
	_, err = BuildReport(nil)
	assert.ErrorIs(t, err, ErrNoAssignments)
}

func TestCompare(t *testing.T) {
	c, err := Compare(testDataset())
	require.NoError(t, err)
	assert.Equal(t, ComparisonAlgorithm, c.Algorithm)
	assert.Equal(t, 3, c.Assignments)
	assert.InDelta(t, 150000, *c.TotalProfit, 1e-9)
	assert.InDelta(t, 8000, *c.AvgTCE, 1e-9)
	assert.InDelta(t, 25, *c.TotalDays, 1e-9)

	_, err = Compare(&model.Dataset{})
	assert.ErrorIs(t, err, ErrNoAssignments)
}

func TestAssessRisk(t *testing.T) {
	r, err := AssessRisk(testDataset().Scenarios)
	require.NoError(t, err)

	assert.Equal(t, 20, r.Samples)
	assert.InDelta(t, 1050, r.MeanProfit, 1e-9)
	assert.InDelta(t, math.Sqrt(33.25)*100, r.StdProfit, 1e-6)
	// 5th percentile interpolates between 100 and 200 at 0.95.
	assert.InDelta(t, 195, r.VaR5, 1e-6)
	assert.InDelta(t, 100, r.CVaR5, 1e-9)
}

func TestAssessRiskSingleSample(t *testing.T) {
	r, err := AssessRisk([]model.ScenarioOutcome{{TotalProfit: f(-500)}})
	require.NoError(t, err)
	assert.Equal(t, -500.0, r.VaR5)
	assert.Equal(t, -500.0, r.CVaR5)
	assert.Equal(t, 0.0, r.StdProfit)

	_, err = AssessRisk([]model.ScenarioOutcome{{Scenario: "1"}})
	assert.ErrorIs(t, err, ErrNoScenarios)
}

func TestPercentileSorted(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, percentileSorted(s, 0))
	assert.Equal(t, 4.0, percentileSorted(s, 1))
	assert.InDelta(t, 2.5, percentileSorted(s, 0.5), 1e-12)
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}

func TestBuildContext(t *testing.T) {
	c := BuildContext(testDataset())
	assert.NotNil(t, c.Report)
	assert.NotNil(t, c.Comparison)
	assert.NotNil(t, c.Risk)
	assert.Len(t, c.Top5, 3)
	assert.Empty(t, c.Errors)

	c = BuildContext(&model.Dataset{Combinations: testCombinations()})
	assert.Nil(t, c.Report)
	assert.Nil(t, c.Risk)
	assert.Contains(t, c.Errors, "report")
	assert.Contains(t, c.Errors, "comparison")
	assert.Contains(t, c.Errors, "risk_report")
	assert.Len(t, c.Top5, 3)
}

func TestTopAdjustedCSV(t *testing.T) {
	rows := TopAdjusted(testCombinations(), 600, 650, 5)

	var buf bytes.Buffer
	require.NoError(t, EncodeTopAdjustedCSV(&buf, rows))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "adj_profit", records[0][8])
	assert.Equal(t, []string{"1", "B", "Y"}, records[1][:3])
	assert.Equal(t, "80000.000000", records[1][8])
	assert.Equal(t, "", records[3][4], "C has no TCE")

	path := filepath.Join(t.TempDir(), "top.csv")
	require.NoError(t, WriteTopAdjustedCSV(path, rows))
}
