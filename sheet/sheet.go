// Package sheet computes the cell grid for a label template: cell origins on
// the page, leading skip cells on page one, and pagination. Pure geometry,
// all lengths in mm; drawing happens elsewhere.
package sheet

import (
	"fmt"

	"github.com/ByLCY/qrlabel/label"
)

// Cell addresses one grid slot, 1-indexed from the top-left.
type Cell struct {
	Row, Col int
}

// Placement locates one label: its page (1-indexed), its cell, and the
// bottom-left origin of the padded content area in page coordinates.
type Placement struct {
	Page int
	Cell Cell
	X, Y float64
}

// Grid lays records out over a template's cell grid.
type Grid struct {
	tmpl    label.Template
	colGap  float64
	skipped map[Cell]bool
}

// SkipCells enumerates the first n cells of a page in row-major order,
// 1-indexed: n=4 on a 3-column grid gives (1,1) (1,2) (1,3) (2,1).
func SkipCells(n, columns int) []Cell {
	cells := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		cells = append(cells, Cell{Row: i/columns + 1, Col: i%columns + 1})
	}
	return cells
}

// New validates the template and skip count and derives the column gap from
// the leftover width between margins, the way pre-cut sheet specs do.
func New(tmpl label.Template, skip int) (*Grid, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	if skip < 0 || skip > tmpl.Rows*tmpl.Columns {
		return nil, fmt.Errorf("invalid skip: %d (page holds %d cells)", skip, tmpl.Rows*tmpl.Columns)
	}

	colGap := 0.0
	if tmpl.Columns > 1 {
		usable := tmpl.SheetWidth - tmpl.LeftMargin - tmpl.RightMargin
		colGap = (usable - float64(tmpl.Columns)*tmpl.LabelWidth) / float64(tmpl.Columns-1)
	}

	skipped := make(map[Cell]bool, skip)
	for _, c := range SkipCells(skip, tmpl.Columns) {
		skipped[c] = true
	}
	return &Grid{tmpl: tmpl, colGap: colGap, skipped: skipped}, nil
}

// Capacity returns the number of cells per page.
func (g *Grid) Capacity() int { return g.tmpl.Rows * g.tmpl.Columns }

// ContentSize returns the drawable area inside one cell after padding.
func (g *Grid) ContentSize() (w, h float64) {
	return g.tmpl.LabelWidth - g.tmpl.LeftPad - g.tmpl.RightPad,
		g.tmpl.LabelHeight - g.tmpl.TopPad - g.tmpl.BottomPad
}

// Place assigns n records to cells in row-major order, skipping the blocked
// cells on page one. Pages after the first start from a full grid.
func (g *Grid) Place(n int) []Placement {
	placements := make([]Placement, 0, n)
	page, slot := 1, 0
	for placed := 0; placed < n; {
		if slot == g.Capacity() {
			page++
			slot = 0
		}
		cell := Cell{Row: slot/g.tmpl.Columns + 1, Col: slot%g.tmpl.Columns + 1}
		slot++
		if page == 1 && g.skipped[cell] {
			continue
		}
		x, y := g.origin(cell)
		placements = append(placements, Placement{Page: page, Cell: cell, X: x, Y: y})
		placed++
	}
	return placements
}

// Pages returns how many pages Place(n) spans; zero records need zero pages.
func (g *Grid) Pages(n int) int {
	if n == 0 {
		return 0
	}
	placements := g.Place(n)
	return placements[len(placements)-1].Page
}

// origin computes the bottom-left corner of a cell's content area. Rows grow
// downward from the top margin; the page origin is bottom-left.
func (g *Grid) origin(c Cell) (x, y float64) {
	x = g.tmpl.LeftMargin + float64(c.Col-1)*(g.tmpl.LabelWidth+g.colGap) + g.tmpl.LeftPad
	top := g.tmpl.TopMargin + float64(c.Row-1)*(g.tmpl.LabelHeight+g.tmpl.RowGap)
	y = g.tmpl.SheetHeight - top - g.tmpl.LabelHeight + g.tmpl.BottomPad
	return x, y
}

// CellOrigin exposes the bottom-left corner of the full cell (before
// padding), used when drawing cell borders.
func (g *Grid) CellOrigin(c Cell) (x, y float64) {
	cx, cy := g.origin(c)
	return cx - g.tmpl.LeftPad, cy - g.tmpl.BottomPad
}
