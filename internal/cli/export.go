package cli

import (
	"fmt"
	"time"

	"freight-calc/internal/data"

	"github.com/spf13/cobra"
)

// newExportCommand creates the export command
func newExportCommand(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the combinations table as a JSON records file",
		Long: `Write the loaded combinations as a JSON record list. The file can be
passed back with --data (or dataset_dir) in place of a dataset directory.

Examples:
  freight-calc export --data ./data --out data/records.json
  freight-calc recalc --data data/records.json --vessel "ANN BELL" --cargo "EGA Bauxite"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.load()
			if err != nil {
				return err
			}
			list := &data.RecordList{
				UpdatedAt: time.Now().UTC().Format(time.RFC3339),
				Records:   ds.Combinations,
			}
			if err := data.SaveRecordsJSON(list, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d records)\n", outPath, len(list.Records))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "records.json", "Output JSON path")
	return cmd
}
