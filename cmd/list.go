package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retroprints/covergen/internal/assets"
	"github.com/retroprints/covergen/internal/gamelist"
)

func newListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list SYSTEM_DIR",
		Short: "List the games in a system folder and check their asset files",
		Long: `List every game from the system folder's gamelist.xml along with its
image, thumbnail and marquee references, marking each reference as
present or missing on disk.`,
		Example: `  # List a NES library
  covergen list ~/roms/nes

  # Only games matching a query
  covergen list ~/roms/nes --search mario`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := gamelist.Load(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no games found in %s", filepath.Join(args[0], gamelist.Filename))
			}

			records = gamelist.Search(records, search)
			if len(records) == 0 {
				return fmt.Errorf("no games match %q", search)
			}

			writeListing(cmd.OutOrStdout(), args[0], records)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only list games whose name matches this query")

	return cmd
}

type missingFile struct {
	game string
	kind string
	ref  string
}

func writeListing(w io.Writer, systemDir string, records []gamelist.Record) {
	checker := assets.NewResolver(systemDir)
	banner := strings.Repeat("=", 100)

	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintf(w, "Found %d games in %s\n", len(records), systemDir)
	fmt.Fprintf(w, "%s\n\n", banner)

	var missing []missingFile
	for i, rec := range records {
		fmt.Fprintf(w, "[%d] Game: %s (ID: %s)\n", i+1, rec.Name, rec.ID)
		fmt.Fprintf(w, "    Path: %s\n", rec.Path)

		missing = checkRef(w, checker, missing, rec.Name, "Image", rec.Image)
		if rec.Thumbnail != "" {
			missing = checkRef(w, checker, missing, rec.Name, "Thumbnail", rec.Thumbnail)
		}
		missing = checkRef(w, checker, missing, rec.Name, "Marquee", rec.Marquee)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n", banner)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Total games: %d\n", len(records))
	fmt.Fprintf(w, "  Missing files: %d\n", len(missing))
	if len(missing) > 0 {
		fmt.Fprintln(w, "\nMissing files:")
		for _, m := range missing {
			fmt.Fprintf(w, "  - %s: %s (%s)\n", m.game, m.kind, m.ref)
		}
	}
	fmt.Fprintf(w, "%s\n\n", banner)
}

// checkRef prints one asset line and collects missing references for
// the summary.
func checkRef(w io.Writer, checker *assets.Resolver, missing []missingFile, game, kind, ref string) []missingFile {
	if ref == "" {
		fmt.Fprintf(w, "    ⚠ %s: Not specified in gamelist.xml\n", kind)
		return missing
	}
	if _, ok := checker.Check(ref); ok {
		fmt.Fprintf(w, "    ✓ %s: %s\n", kind, ref)
		return missing
	}
	fmt.Fprintf(w, "    ✗ %s: %s\n", kind, ref)
	return append(missing, missingFile{game: game, kind: kind, ref: ref})
}
