package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"freight-calc/internal/model"
)

// File names of the three upstream tables inside a dataset directory.
const (
	CombinationsFile = "freight_calculator_all_combinations.csv"
	AssignmentsFile  = "freight_calculator_assignments.csv"
	ScenariosFile    = "freight_calculator_scenarios.csv"
)

// DefaultVLSFOPrice is used for form defaults when the baseline carries no prices.
const DefaultVLSFOPrice = 490.0

// MGOPriceRatio relates the default MGO price to the VLSFO price.
const MGOPriceRatio = 1.3

// DefaultMGOPrice is the MGO price suggested alongside vlsfoPrice.
func DefaultMGOPrice(vlsfoPrice float64) float64 { return vlsfoPrice * MGOPriceRatio }

// LoadDataset reads the three tables from dir. A missing file yields an
// empty table; a present but unreadable one is an error. When dir names a
// file instead, it is loaded as the combinations table alone (.json via
// LoadRecordsJSON, anything else as CSV).
func LoadDataset(dir string) (*model.Dataset, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return loadCombinationsFile(dir)
	}
	ds := &model.Dataset{}

	combos, err := readTable(filepath.Join(dir, CombinationsFile))
	if err != nil {
		return nil, err
	}
	ds.Combinations = combos.combinations()

	assigns, err := readTable(filepath.Join(dir, AssignmentsFile))
	if err != nil {
		return nil, err
	}
	ds.Assignments = assigns.assignments()

	scen, err := readTable(filepath.Join(dir, ScenariosFile))
	if err != nil {
		return nil, err
	}
	ds.Scenarios = scen.scenarios()

	log.Printf("[Dataset] loaded %s: %d combinations, %d assignments, %d scenarios",
		dir, len(ds.Combinations), len(ds.Assignments), len(ds.Scenarios))
	return ds, nil
}

func loadCombinationsFile(path string) (*model.Dataset, error) {
	var (
		recs []model.VoyageRecord
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		recs, err = LoadRecordsJSON(path)
	} else {
		recs, err = parseCombinationsFile(path)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Dataset] loaded %s: %d combinations", path, len(recs))
	return &model.Dataset{Combinations: recs}, nil
}

func parseCombinationsFile(path string) ([]model.VoyageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := ParseCombinations(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return recs, nil
}

// ParseCombinations decodes a combinations table from r.
func ParseCombinations(r io.Reader) ([]model.VoyageRecord, error) {
	t, err := parseTable(r)
	if err != nil {
		return nil, err
	}
	return t.combinations(), nil
}

// table is a header-indexed CSV. A nil *table is an empty table.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[Dataset] %s not found, using empty table", filepath.Base(path))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := parseTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

func parseTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t := &table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := t.cols[name]; !dup {
			t.cols[name] = i
		}
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *table) str(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// num returns nil for absent, blank, unparseable or non-finite cells.
func (t *table) num(row []string, col string) *float64 {
	s := t.str(row, col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (t *table) combinations() []model.VoyageRecord {
	if t == nil {
		return nil
	}
	out := make([]model.VoyageRecord, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		rec := model.VoyageRecord{
			Vessel:       t.str(row, "vessel"),
			Cargo:        t.str(row, "cargo"),
			Days:         t.num(row, "days"),
			Profit:       t.num(row, "profit"),
			TCE:          t.num(row, "tce"),
			TotalVLSFOMT: t.num(row, "total_vlsfo_mt"),
			TotalMGOMT:   t.num(row, "total_mgo_mt"),
			VLSFOPrice:   t.num(row, "vlsfo_price"),
			MGOPrice:     t.num(row, "mgo_price"),
			SpeedKnots:   t.num(row, "speed_knots"),
			DailyHire:    t.num(row, "daily_hire"),
		}
		if rec.Vessel == "" || rec.Cargo == "" {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if skipped > 0 {
		log.Printf("[Dataset] skipped %d combination rows without vessel or cargo", skipped)
	}
	return out
}

func (t *table) assignments() []model.Assignment {
	if t == nil {
		return nil
	}
	out := make([]model.Assignment, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, model.Assignment{
			Vessel:          t.str(row, "vessel"),
			Cargo:           t.str(row, "cargo"),
			GrossRevenue:    t.num(row, "gross_revenue"),
			NetRevenue:      t.num(row, "net_revenue"),
			BunkerCost:      t.num(row, "bunker_cost"),
			HireCost:        t.num(row, "hire_cost"),
			TotalCosts:      t.num(row, "total_costs"),
			Profit:          t.num(row, "profit"),
			TCE:             t.num(row, "tce"),
			Days:            t.num(row, "days"),
			ProfitMarginPct: t.num(row, "profit_margin_pct"),
		})
	}
	return out
}

func (t *table) scenarios() []model.ScenarioOutcome {
	if t == nil {
		return nil
	}
	out := make([]model.ScenarioOutcome, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, model.ScenarioOutcome{
			Scenario:    t.str(row, "scenario"),
			TotalProfit: t.num(row, "total_profit"),
		})
	}
	return out
}

// Vessels returns the distinct vessel names, sorted.
func Vessels(records []model.VoyageRecord) []string {
	return distinct(records, func(r model.VoyageRecord) string { return r.Vessel })
}

// Cargoes returns the distinct cargo names, sorted.
func Cargoes(records []model.VoyageRecord) []string {
	return distinct(records, func(r model.VoyageRecord) string { return r.Cargo })
}

func distinct(records []model.VoyageRecord, field func(model.VoyageRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := []string{}
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MedianVLSFOPrice is the median recorded VLSFO price, or
// DefaultVLSFOPrice when no record carries one (or the median is zero).
func MedianVLSFOPrice(records []model.VoyageRecord) float64 {
	prices := make([]float64, 0, len(records))
	for _, r := range records {
		if r.VLSFOPrice != nil {
			prices = append(prices, *r.VLSFOPrice)
		}
	}
	if m := Median(prices); m != 0 {
		return m
	}
	return DefaultVLSFOPrice
}

// Median returns the median of xs (mean of the middle pair for even
// lengths), or 0 for an empty slice. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
