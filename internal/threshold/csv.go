package threshold

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteProfileCSV writes the sensitivity profile rows to path.
func WriteProfileCSV(path string, rows []ProfileRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeProfileCSV(f, rows)
}

// EncodeProfileCSV writes the profile rows as CSV to w.
func EncodeProfileCSV(w io.Writer, rows []ProfileRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"index",
		"parameter",
		"value",
		"vessel",
		"cargo",
		"vlsfo_price",
		"extra_days",
		"days",
		"vlsfo_mt",
		"mgo_mt",
		"profit",
		"tce",
		"rank",
		"top",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			string(r.Parameter),
			fmtFloat(r.Value),
			r.Vessel,
			r.Cargo,
			fmtFloat(r.VLSFOPrice),
			fmtFloat(r.ExtraDays),
			fmtFloat(r.Days),
			fmtFloat(r.VLSFOMT),
			fmtFloat(r.MGOMT),
			fmtFloat(r.Profit),
			fmtFloat(r.TCE),
			strconv.Itoa(r.Rank),
			strconv.FormatBool(r.Top),
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
