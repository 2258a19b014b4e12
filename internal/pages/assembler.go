// Package pages lays rendered cards out on printable grid pages.
package pages

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/retroprints/covergen/internal/cards"
	"github.com/retroprints/covergen/internal/engine"
)

// Page geometry. The canvas is A4 at 300 DPI and the gutter between
// cards matches the gutter to the canvas edge. The widths do not divide
// evenly, so the rightmost gutter absorbs the remainder.
const (
	CanvasWidth  = 2480
	CanvasHeight = 3508

	Columns = 3
	Rows    = 3
	PerPage = Columns * Rows

	MarginX = (CanvasWidth - Columns*cards.Width) / (Columns + 1)
	MarginY = (CanvasHeight - Rows*cards.Height) / (Rows + 1)
)

// FileName returns the page file name for a system and a 1-based page number.
func FileName(system string, page int) string {
	return fmt.Sprintf("%s_%02d.png", system, page)
}

// Count returns how many pages the given number of cards fills.
func Count(cardCount int) int {
	return (cardCount + PerPage - 1) / PerPage
}

// Chunk splits an ordered card list into per-page groups of PerPage,
// preserving order. The final group holds whatever remains.
func Chunk(cardPaths []string) [][]string {
	var groups [][]string
	for len(cardPaths) > 0 {
		n := min(len(cardPaths), PerPage)
		groups = append(groups, cardPaths[:n])
		cardPaths = cardPaths[n:]
	}
	return groups
}

// CellPosition returns the top-left pixel of the cell for the card at
// the given 0-based index on its page. Cells fill left to right, then
// top to bottom.
func CellPosition(i int) (x, y int) {
	col := i % Columns
	row := i / Columns
	x = MarginX + col*(cards.Width+MarginX)
	y = MarginY + row*(cards.Height+MarginY)
	return x, y
}

type Assembler struct {
	engine engine.Engine
	outDir string
}

func NewAssembler(eng engine.Engine, outDir string) *Assembler {
	return &Assembler{
		engine: eng,
		outDir: outDir,
	}
}

// Assemble renders one page from the cards that belong on it and
// returns the path it was written to. The canvas starts white and each
// card is composited into its cell in order.
func (a *Assembler) Assemble(ctx context.Context, system string, page int, cardPaths []string) (string, error) {
	dest := filepath.Join(a.outDir, FileName(system, page))
	if err := a.engine.NewCanvas(ctx, dest, CanvasWidth, CanvasHeight); err != nil {
		return "", fmt.Errorf("failed to create canvas %s: %w", dest, err)
	}
	for i, card := range cardPaths {
		x, y := CellPosition(i)
		if err := a.engine.Composite(ctx, dest, card, dest, x, y); err != nil {
			return "", fmt.Errorf("failed to place %s: %w", card, err)
		}
	}
	return dest, nil
}
