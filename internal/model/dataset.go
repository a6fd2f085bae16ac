package model

// Assignment is one row of the chosen-assignments table produced upstream.
// Only the fields consumed by reporting are modelled; absent cells stay nil.
type Assignment struct {
	Vessel string `json:"vessel"`
	Cargo  string `json:"cargo"`

	GrossRevenue    *float64 `json:"gross_revenue,omitempty"`
	NetRevenue      *float64 `json:"net_revenue,omitempty"`
	BunkerCost      *float64 `json:"bunker_cost,omitempty"`
	HireCost        *float64 `json:"hire_cost,omitempty"`
	TotalCosts      *float64 `json:"total_costs,omitempty"`
	Profit          *float64 `json:"profit,omitempty"`
	TCE             *float64 `json:"tce,omitempty"`
	Days            *float64 `json:"days,omitempty"`
	ProfitMarginPct *float64 `json:"profit_margin_pct,omitempty"`
}

// ScenarioOutcome is one Monte-Carlo scenario draw: the portfolio profit
// realised under one sampled market.
type ScenarioOutcome struct {
	Scenario    string   `json:"scenario,omitempty"`
	TotalProfit *float64 `json:"total_profit,omitempty"`
}

// Dataset bundles the three upstream tables. Any of them may be empty.
type Dataset struct {
	Combinations []VoyageRecord    `json:"combinations"`
	Assignments  []Assignment      `json:"assignments"`
	Scenarios    []ScenarioOutcome `json:"scenarios"`
}

// Find returns the first combination matching key.
func (d *Dataset) Find(key Key) (VoyageRecord, bool) {
	if d == nil {
		return VoyageRecord{}, false
	}
	for _, r := range d.Combinations {
		if r.Key() == key {
			return r, true
		}
	}
	return VoyageRecord{}, false
}
