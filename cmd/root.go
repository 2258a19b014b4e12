package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "covergen",
		Short: "Printable cover card generator for EmulationStation game libraries",
		Long: `Covergen turns an EmulationStation gamelist.xml into printable cover
cards and lays them out on A4 pages, nine cards to a page.

Every game with complete artwork gets one card: its cover scaled and
cropped into the template's artwork window. Games with missing artwork
are skipped and reported rather than failing the run.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
