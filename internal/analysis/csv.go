package analysis

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteTopAdjustedCSV writes re-priced combinations to path.
func WriteTopAdjustedCSV(path string, rows []AdjustedEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeTopAdjustedCSV(f, rows)
}

// EncodeTopAdjustedCSV writes rows as CSV to w. Absent baseline cells are
// written empty.
func EncodeTopAdjustedCSV(w io.Writer, rows []AdjustedEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"rank",
		"vessel",
		"cargo",
		"profit",
		"tce",
		"days",
		"total_vlsfo_mt",
		"total_mgo_mt",
		"adj_profit",
		"adj_tce",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, r := range rows {
		row := []string{
			strconv.Itoa(i + 1),
			r.Vessel,
			r.Cargo,
			fmtOpt(r.Profit),
			fmtOpt(r.TCE),
			fmtOpt(r.Days),
			fmtOpt(r.TotalVLSFOMT),
			fmtOpt(r.TotalMGOMT),
			fmtFloat(r.AdjProfit),
			fmtFloat(r.AdjTCE),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtOpt(p *float64) string {
	if p == nil {
		return ""
	}
	return fmtFloat(*p)
}
