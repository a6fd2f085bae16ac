package analysis

import (
	"errors"
	"math"
	"sort"

	"freight-calc/internal/model"
)

var (
	ErrNoAssignments = errors.New("analysis: assignments table is empty")
	ErrNoScenarios   = errors.New("analysis: no scenario profits")
)

// ComparisonAlgorithm labels where the assignment plan came from.
const ComparisonAlgorithm = "greedy_tce (from CSV)"

// VaRLevel is the tail quantile used for VaR and CVaR.
const VaRLevel = 0.05

// Report summarises the chosen assignments. Totals and averages are nil
// when no assignment carries the column.
type Report struct {
	TotalAssignments    int      `json:"total_assignments"`
	VesselsUtilized     int      `json:"vessels_utilized"`
	CargoesAssigned     int      `json:"cargoes_assigned"`
	TotalGrossRevenue   *float64 `json:"total_gross_revenue"`
	TotalNetRevenue     *float64 `json:"total_net_revenue"`
	TotalBunkerCost     *float64 `json:"total_bunker_cost"`
	TotalHireCost       *float64 `json:"total_hire_cost"`
	TotalOperatingCosts *float64 `json:"total_operating_costs"`
	TotalProfit         *float64 `json:"total_profit"`
	AvgTCE              *float64 `json:"avg_tce"`
	AvgProfitMarginPct  *float64 `json:"avg_profit_margin_pct"`

	Top5      []TopEntry       `json:"top5"`
	Scenarios *ScenarioSummary `json:"scenarios_summary,omitempty"`
}

type ScenarioSummary struct {
	MinProfit    float64 `json:"min_profit"`
	MedianProfit float64 `json:"median_profit"`
	MaxProfit    float64 `json:"max_profit"`
}

// Comparison is the headline view of the assignment plan.
type Comparison struct {
	Algorithm   string   `json:"algorithm"`
	TotalProfit *float64 `json:"total_profit"`
	AvgTCE      *float64 `json:"avg_tce"`
	TotalDays   *float64 `json:"total_days"`
	Assignments int      `json:"assignments"`
}

// Risk is the tail view of the scenario profit distribution.
type Risk struct {
	MeanProfit float64 `json:"mc_mean_profit"`
	StdProfit  float64 `json:"mc_std_profit"`
	VaR5       float64 `json:"mc_var_5"`
	CVaR5      float64 `json:"mc_cvar_5"`
	Samples    int     `json:"n_samples"`
}

// BuildReport aggregates the assignments table.
func BuildReport(ds *model.Dataset) (*Report, error) {
	if ds == nil || len(ds.Assignments) == 0 {
		return nil, ErrNoAssignments
	}
	as := ds.Assignments
	top5, _ := TopN(ds, 5)

	r := &Report{
		TotalAssignments:    len(as),
		VesselsUtilized:     countDistinct(as, func(a model.Assignment) string { return a.Vessel }),
		CargoesAssigned:     countDistinct(as, func(a model.Assignment) string { return a.Cargo }),
		TotalGrossRevenue:   sumOf(as, func(a model.Assignment) *float64 { return a.GrossRevenue }),
		TotalNetRevenue:     sumOf(as, func(a model.Assignment) *float64 { return a.NetRevenue }),
		TotalBunkerCost:     sumOf(as, func(a model.Assignment) *float64 { return a.BunkerCost }),
		TotalHireCost:       sumOf(as, func(a model.Assignment) *float64 { return a.HireCost }),
		TotalOperatingCosts: sumOf(as, func(a model.Assignment) *float64 { return a.TotalCosts }),
		TotalProfit:         sumOf(as, func(a model.Assignment) *float64 { return a.Profit }),
		AvgTCE:              meanOf(as, func(a model.Assignment) *float64 { return a.TCE }),
		AvgProfitMarginPct:  meanOf(as, func(a model.Assignment) *float64 { return a.ProfitMarginPct }),
		Top5:                top5,
	}

	if vals := scenarioProfits(ds.Scenarios); len(vals) > 0 {
		s := summarize(vals)
		r.Scenarios = &ScenarioSummary{MinProfit: s.Min, MedianProfit: s.Median, MaxProfit: s.Max}
	}
	return r, nil
}

// Compare returns totals for the assignment plan.
func Compare(ds *model.Dataset) (*Comparison, error) {
	if ds == nil || len(ds.Assignments) == 0 {
		return nil, ErrNoAssignments
	}
	as := ds.Assignments
	return &Comparison{
		Algorithm:   ComparisonAlgorithm,
		TotalProfit: sumOf(as, func(a model.Assignment) *float64 { return a.Profit }),
		AvgTCE:      meanOf(as, func(a model.Assignment) *float64 { return a.TCE }),
		TotalDays:   sumOf(as, func(a model.Assignment) *float64 { return a.Days }),
		Assignments: len(as),
	}, nil
}

// AssessRisk computes mean, population std, VaR and CVaR at VaRLevel over
// the scenario total profits. Scenarios without a profit are ignored.
func AssessRisk(scenarios []model.ScenarioOutcome) (*Risk, error) {
	vals := scenarioProfits(scenarios)
	if len(vals) == 0 {
		return nil, ErrNoScenarios
	}
	s := summarize(vals)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	varq := percentileSorted(sorted, VaRLevel)

	tail, n := 0.0, 0
	for _, v := range sorted {
		if v <= varq {
			tail += v
			n++
		}
	}
	cvar := varq
	if n > 0 {
		cvar = tail / float64(n)
	}

	return &Risk{
		MeanProfit: s.Mean,
		StdProfit:  s.Std,
		VaR5:       varq,
		CVaR5:      cvar,
		Samples:    s.Count,
	}, nil
}

func scenarioProfits(scenarios []model.ScenarioOutcome) []float64 {
	out := make([]float64, 0, len(scenarios))
	for _, s := range scenarios {
		if s.TotalProfit != nil && !math.IsNaN(*s.TotalProfit) {
			out = append(out, *s.TotalProfit)
		}
	}
	return out
}

func sumOf(as []model.Assignment, field func(model.Assignment) *float64) *float64 {
	sum, n := 0.0, 0
	for _, a := range as {
		if v := field(a); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return &sum
}

func meanOf(as []model.Assignment, field func(model.Assignment) *float64) *float64 {
	sum := sumOf(as, field)
	if sum == nil {
		return nil
	}
	n := 0
	for _, a := range as {
		if field(a) != nil {
			n++
		}
	}
	mean := *sum / float64(n)
	return &mean
}

func countDistinct(as []model.Assignment, field func(model.Assignment) string) int {
	seen := map[string]struct{}{}
	for _, a := range as {
		if v := field(a); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
