package analysis

import (
	"sort"

	"freight-calc/internal/economics"
	"freight-calc/internal/model"
)

// Metric selects the column baseline combinations are ranked by.
type Metric string

const (
	ByTCE    Metric = "tce"
	ByProfit Metric = "profit"
)

// TopEntry is a ranked baseline row.
type TopEntry struct {
	Vessel string   `json:"vessel"`
	Cargo  string   `json:"cargo"`
	Profit *float64 `json:"profit,omitempty"`
	TCE    *float64 `json:"tce,omitempty"`
	Days   *float64 `json:"days,omitempty"`
}

func (e TopEntry) value(m Metric) *float64 {
	if m == ByTCE {
		return e.TCE
	}
	return e.Profit
}

// TopN returns the n best baseline rows. Combinations are ranked when
// present, else the assignments table. TCE is the metric when any row
// carries it, profit otherwise. Rows without the metric sort last.
func TopN(ds *model.Dataset, n int) ([]TopEntry, Metric) {
	entries := topEntries(ds)
	metric := ByProfit
	for _, e := range entries {
		if e.TCE != nil {
			metric = ByTCE
			break
		}
	}
	return rankEntries(entries, metric, n), metric
}

// TopNBy ranks the combinations by an explicit metric.
func TopNBy(records []model.VoyageRecord, m Metric, n int) []TopEntry {
	entries := make([]TopEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, TopEntry{Vessel: r.Vessel, Cargo: r.Cargo, Profit: r.Profit, TCE: r.TCE, Days: r.Days})
	}
	return rankEntries(entries, m, n)
}

func topEntries(ds *model.Dataset) []TopEntry {
	if ds == nil {
		return nil
	}
	var out []TopEntry
	if len(ds.Combinations) > 0 {
		for _, r := range ds.Combinations {
			out = append(out, TopEntry{Vessel: r.Vessel, Cargo: r.Cargo, Profit: r.Profit, TCE: r.TCE, Days: r.Days})
		}
		return out
	}
	for _, a := range ds.Assignments {
		out = append(out, TopEntry{Vessel: a.Vessel, Cargo: a.Cargo, Profit: a.Profit, TCE: a.TCE, Days: a.Days})
	}
	return out
}

// rankEntries sorts descending by m, keeping input order on ties.
func rankEntries(entries []TopEntry, m Metric, n int) []TopEntry {
	sorted := append(make([]TopEntry, 0, len(entries)), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].value(m), sorted[j].value(m)
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})
	return head(sorted, n)
}

// AdjustedEntry is a combination re-priced at new bunker prices.
type AdjustedEntry struct {
	Vessel       string   `json:"vessel"`
	Cargo        string   `json:"cargo"`
	Profit       *float64 `json:"profit,omitempty"`
	TCE          *float64 `json:"tce,omitempty"`
	Days         *float64 `json:"days,omitempty"`
	TotalVLSFOMT *float64 `json:"total_vlsfo_mt,omitempty"`
	TotalMGOMT   *float64 `json:"total_mgo_mt,omitempty"`
	AdjProfit    float64  `json:"adj_profit"`
	AdjTCE       float64  `json:"adj_tce"`
}

// TopAdjusted re-prices every combination with AdjustForBunker and
// returns the n best by adjusted profit.
func TopAdjusted(records []model.VoyageRecord, vlsfoPrice, mgoPrice float64, n int) []AdjustedEntry {
	out := make([]AdjustedEntry, 0, len(records))
	for _, r := range records {
		adj := economics.AdjustForBunker(r, vlsfoPrice, mgoPrice)
		out = append(out, AdjustedEntry{
			Vessel:       r.Vessel,
			Cargo:        r.Cargo,
			Profit:       r.Profit,
			TCE:          r.TCE,
			Days:         r.Days,
			TotalVLSFOMT: r.TotalVLSFOMT,
			TotalMGOMT:   r.TotalMGOMT,
			AdjProfit:    adj.AdjProfit,
			AdjTCE:       adj.AdjTCE,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AdjProfit > out[j].AdjProfit
	})
	return head(out, n)
}

func head[T any](xs []T, n int) []T {
	if n >= 0 && n < len(xs) {
		return xs[:n]
	}
	return xs
}
