package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retroprints/covergen/internal/assets"
	"github.com/retroprints/covergen/internal/export"
	"github.com/retroprints/covergen/internal/gamelist"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export SYSTEM_DIR",
		Short: "Export the catalog and its asset status for analysis",
		Long: `Export every game from the system folder's gamelist.xml together with
its resolved asset paths and completeness. The output format follows
the file extension of --output: .parquet, .jsonl or .json.`,
		Example: `  # Parquet for analytical tools
  covergen export ~/roms/nes --output nes.parquet

  # One JSON object per line
  covergen export ~/roms/nes --output nes.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := gamelist.Load(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no games found in %s", filepath.Join(args[0], gamelist.Filename))
			}

			resolutions := assets.NewResolver(args[0]).ResolveAll(records)
			if err := export.Write(output, export.FromResolutions(resolutions)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d games to %s\n", len(resolutions), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output file (.parquet, .jsonl or .json) (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
