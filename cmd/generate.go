package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retroprints/covergen/internal/config"
	"github.com/retroprints/covergen/internal/engine"
	"github.com/retroprints/covergen/internal/pipeline"
)

func newGenerateCmd() *cobra.Command {
	var configPath string
	var templatePath string
	var outputDir string
	var engineName string
	var magickBin string
	var concurrency int
	var reportPath string

	cmd := &cobra.Command{
		Use:   "generate SYSTEM_DIR",
		Short: "Generate cover cards and print pages for a system folder",
		Long: `Generate one card per game from the system folder's gamelist.xml and
assemble the cards into A4 pages, nine to a page.

A game needs its artwork and marquee files on disk to get a card. A
thumbnail whose filename contains "thumb" is preferred over the full
image. Incomplete games are skipped and listed in the summary, and a
card that fails to render does not stop the rest.`,
		Example: `  # Generate cards for a NES library into ./cards
  covergen generate ~/roms/nes

  # Custom template and output folder
  covergen generate ~/roms/nes --template art/frame.png --output prints

  # Render in process instead of calling ImageMagick
  covergen generate ~/roms/nes --engine native

  # Save a YAML report of every outcome
  covergen generate ~/roms/nes --report run.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			// Flags that were set explicitly win over the config file.
			flags := cmd.Flags()
			if flags.Changed("template") {
				cfg.Output.Template = templatePath
			}
			if flags.Changed("output") {
				cfg.Output.Dir = outputDir
			}
			if flags.Changed("engine") {
				cfg.Engine.Name = engineName
			}
			if flags.Changed("magick-bin") {
				cfg.Engine.MagickBin = magickBin
			}
			if flags.Changed("concurrency") {
				cfg.Run.Concurrency = concurrency
			}
			if flags.Changed("report") {
				cfg.Run.Report = reportPath
			}

			eng, err := engine.New(cfg.Engine.Name, cfg.Engine.MagickBin)
			if err != nil {
				return err
			}

			rep, err := pipeline.Run(cmd.Context(), pipeline.Options{
				SystemDir:   args[0],
				Template:    cfg.Output.Template,
				OutputDir:   cfg.Output.Dir,
				Engine:      eng,
				Concurrency: cfg.Run.Concurrency,
			})
			if err != nil {
				return err
			}

			rep.WriteText(cmd.OutOrStdout())

			if cfg.Run.Report != "" {
				if err := rep.SaveYAML(cfg.Run.Report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to: %s\n", cfg.Run.Report)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to TOML config file")
	cmd.Flags().StringVar(&templatePath, "template", "template.png", "Card template image")
	cmd.Flags().StringVar(&outputDir, "output", "cards", "Output directory for cards and pages")
	cmd.Flags().StringVar(&engineName, "engine", "magick", "Rendering engine (magick or native)")
	cmd.Flags().StringVar(&magickBin, "magick-bin", "", "ImageMagick binary (defaults to $COVERGEN_MAGICK or magick)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "How many cards to render at once")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report of every outcome to this file")

	return cmd
}

// loadConfig reads the TOML config. A path set with the --config flag
// must exist; the default path is used only when present.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.Load(path)
	}
	return config.LoadOptional(path)
}
