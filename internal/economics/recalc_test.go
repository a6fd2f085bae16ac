package economics

import (
	"math"
	"testing"

	"freight-calc/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRecord() model.VoyageRecord {
	return model.VoyageRecord{
		Vessel:       "A",
		Cargo:        "X",
		Days:         model.Float(10),
		Profit:       model.Float(100000),
		TCE:          model.Float(10000),
		TotalVLSFOMT: model.Float(500),
		TotalMGOMT:   model.Float(50),
		VLSFOPrice:   model.Float(500),
		MGOPrice:     model.Float(650),
		SpeedKnots:   model.Float(12),
	}
}

func TestRecalculateReproducesBaseline(t *testing.T) {
	res := Recalculate(baseRecord(), DefaultParams(500, 650, 12, 0))

	assert.InDelta(t, 100000, res.Profit, 1e-6)
	assert.InDelta(t, 10.0, res.Days, 1e-12)
	assert.InDelta(t, 10000, res.TCE, 1e-6)
	assert.Equal(t, 500.0, res.Fuel.VLSFOMT)
	assert.Equal(t, 50.0, res.Fuel.MGOMT)
	// revenue = 100000 + 500*500 + 50*650 + 10*15000
	assert.InDelta(t, 532500, res.Revenue, 1e-6)
}

func TestRecalculateProfitFallsWithVLSFOPrice(t *testing.T) {
	prev := math.Inf(1)
	for _, price := range []float64{400, 450, 500, 550, 600, 900} {
		res := Recalculate(baseRecord(), DefaultParams(price, 650, 12, 0))
		assert.Less(t, res.Profit, prev, "price %v", price)
		prev = res.Profit
	}
}

func TestRecalculateCubicFuelLaw(t *testing.T) {
	for _, price := range []float64{0, 500, 1200} {
		base := Recalculate(baseRecord(), DefaultParams(price, 650, 12, 0))
		doubled := Recalculate(baseRecord(), DefaultParams(price, 650, 24, 0))

		assert.InDelta(t, 8*base.Fuel.VLSFOMT, doubled.Fuel.VLSFOMT, 1e-9)
		assert.InDelta(t, 8*base.Fuel.MGOMT, doubled.Fuel.MGOMT, 1e-9)
		assert.InDelta(t, 5.0, doubled.Days, 1e-12, "duration halves at double speed")
	}
}

func TestRecalculateTCEZeroWhenDurationNotPositive(t *testing.T) {
	for _, extra := range []float64{-10, -25, -1e6} {
		res := Recalculate(baseRecord(), DefaultParams(500, 650, 12, extra))
		require.LessOrEqual(t, res.Days, 0.0)
		assert.Equal(t, 0.0, res.TCE)
		assert.False(t, math.IsNaN(res.TCE))
	}
}

func TestRecalculateExtraDaysCostHireAndOpex(t *testing.T) {
	base := Recalculate(baseRecord(), DefaultParams(500, 650, 12, 0))
	delayed := Recalculate(baseRecord(), DefaultParams(500, 650, 12, 3))

	assert.InDelta(t, 13.0, delayed.Days, 1e-12)
	assert.InDelta(t, base.Profit-3*(DefaultDailyHire+DefaultOpexPerDay), delayed.Profit, 1e-6)
}

func TestRecalculateIsDeterministic(t *testing.T) {
	p := DefaultParams(537.25, 711.5, 13.3, 2.75)
	a := Recalculate(baseRecord(), p)
	b := Recalculate(baseRecord(), p)
	assert.Equal(t, a, b)
}

func TestRecalculateGuardsSpeed(t *testing.T) {
	r := baseRecord()

	res := Recalculate(r, DefaultParams(500, 650, 0, 0))
	assert.InDelta(t, 120.0, res.Days, 1e-9, "speed clamps to 1 knot for duration")
	assert.Equal(t, 0.0, res.Fuel.VLSFOMT)

	r.SpeedKnots = model.Float(0)
	res = Recalculate(r, DefaultParams(500, 650, 12, 0))
	assert.False(t, math.IsInf(res.Fuel.VLSFOMT, 0))
	assert.False(t, math.IsNaN(res.Profit))
}

func TestRecalculateMissingFields(t *testing.T) {
	r := model.VoyageRecord{Vessel: "A", Cargo: "X"}
	res := Recalculate(r, DefaultParams(500, 650, 12, 0))

	// Days default to 1, speed to 12, no fuel, no profit: revenue equals one day of time cost.
	assert.InDelta(t, 1.0, res.Days, 1e-12)
	assert.InDelta(t, 15000, res.Revenue, 1e-9)
	assert.InDelta(t, 0.0, res.Profit, 1e-9)
	assert.Equal(t, Fuel{}, res.Fuel)
}

func TestRecalculateMissingPricesUseOverride(t *testing.T) {
	r := baseRecord()
	r.VLSFOPrice = nil
	r.MGOPrice = nil

	res := Recalculate(r, DefaultParams(900, 1100, 12, 0))
	assert.InDelta(t, 100000, res.Profit, 1e-6, "no recorded price means no price delta")
}

func TestRecalculatePerRecordHire(t *testing.T) {
	r := baseRecord()
	r.DailyHire = model.Float(20000)

	res := Recalculate(r, DefaultParams(500, 650, 12, 1))
	assert.InDelta(t, 100000-23000, res.Profit, 1e-6)
}

func TestParamsWithDefaults(t *testing.T) {
	p := Params{VLSFOPrice: 500}.WithDefaults()
	assert.Equal(t, DefaultDailyHire, p.DailyHire)
	assert.Equal(t, DefaultOpexPerDay, p.OpexPerDay)

	p = Params{DailyHire: 9000, OpexPerDay: 2500}.WithDefaults()
	assert.Equal(t, 9000.0, p.DailyHire)
	assert.Equal(t, 2500.0, p.OpexPerDay)
}

func TestAdjustForBunker(t *testing.T) {
	adj := AdjustForBunker(baseRecord(), 600, 650)

	assert.Equal(t, 100000.0, adj.OrigProfit)
	assert.InDelta(t, 100000-100*500, adj.AdjProfit, 1e-9)
	assert.InDelta(t, 5000, adj.AdjTCE, 1e-9)
	assert.Equal(t, 10000.0, adj.OrigTCE)
	assert.Equal(t, model.RecommendAssign, adj.Recommendation())

	adj = AdjustForBunker(baseRecord(), 710, 650)
	assert.InDelta(t, -5000, adj.AdjProfit, 1e-9)
	assert.Equal(t, model.RecommendDecline, adj.Recommendation())

	adj = AdjustForBunker(baseRecord(), 705, 650)
	assert.InDelta(t, -2500, adj.AdjProfit, 1e-9)
	assert.Equal(t, model.RecommendHedge, adj.Recommendation())
}

func TestAdjustForBunkerMissingDays(t *testing.T) {
	r := baseRecord()
	r.Days = nil
	adj := AdjustForBunker(r, 500, 650)
	assert.Equal(t, 1.0, adj.Days)
	assert.InDelta(t, 100000, adj.AdjTCE, 1e-9)
}
