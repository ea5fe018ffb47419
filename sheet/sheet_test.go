package sheet

import (
	"math"
	"testing"

	"github.com/ByLCY/qrlabel/label"
)

func avery(t *testing.T) label.Template {
	t.Helper()
	tmpl, err := label.Lookup("avery-5160")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	return tmpl
}

func TestSkipCells(t *testing.T) {
	got := SkipCells(4, 3)
	want := []Cell{{1, 1}, {1, 2}, {1, 3}, {2, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestSkipCellsZero(t *testing.T) {
	if cells := SkipCells(0, 3); len(cells) != 0 {
		t.Fatalf("expected no cells, got %v", cells)
	}
}

func TestNewRejectsBadSkip(t *testing.T) {
	tmpl := avery(t)
	if _, err := New(tmpl, -1); err == nil {
		t.Fatalf("negative skip must be rejected")
	}
	if _, err := New(tmpl, tmpl.Rows*tmpl.Columns+1); err == nil {
		t.Fatalf("skip past page one must be rejected")
	}
	if _, err := New(tmpl, tmpl.Rows*tmpl.Columns); err != nil {
		t.Fatalf("skipping the whole first page is allowed: %v", err)
	}
}

func TestPlaceSkipsLeadingCells(t *testing.T) {
	grid, err := New(avery(t), 4)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	placements := grid.Place(2)
	if placements[0].Cell != (Cell{2, 2}) {
		t.Fatalf("first placement: got %v want (2,2)", placements[0].Cell)
	}
	if placements[1].Cell != (Cell{2, 3}) {
		t.Fatalf("second placement: got %v want (2,3)", placements[1].Cell)
	}
	if placements[0].Page != 1 {
		t.Fatalf("first placement page: got %d want 1", placements[0].Page)
	}
}

func TestPlacePagination(t *testing.T) {
	grid, err := New(avery(t), 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got := grid.Capacity(); got != 30 {
		t.Fatalf("capacity: got %d want 30", got)
	}

	placements := grid.Place(31)
	if placements[29].Page != 1 || placements[30].Page != 2 {
		t.Fatalf("expected label 31 on page 2, got pages %d/%d", placements[29].Page, placements[30].Page)
	}
	if placements[30].Cell != (Cell{1, 1}) {
		t.Fatalf("page 2 must restart at (1,1), got %v", placements[30].Cell)
	}
	if grid.Pages(31) != 2 {
		t.Fatalf("Pages(31): got %d want 2", grid.Pages(31))
	}
	if grid.Pages(0) != 0 {
		t.Fatalf("Pages(0): got %d want 0", grid.Pages(0))
	}
}

// TestPaginationWithFullSkip: skipping every cell on page one pushes all
// labels to page two.
func TestPaginationWithFullSkip(t *testing.T) {
	grid, err := New(avery(t), 30)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	placements := grid.Place(1)
	if placements[0].Page != 2 || placements[0].Cell != (Cell{1, 1}) {
		t.Fatalf("got page %d cell %v, want page 2 cell (1,1)", placements[0].Page, placements[0].Cell)
	}
}

func TestOriginGeometry(t *testing.T) {
	tmpl := avery(t)
	grid, err := New(tmpl, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	placements := grid.Place(4)
	eps := 1e-9

	// (1,1): x = left margin + left padding; y measured down from the top
	// margin, expressed from the page bottom.
	wantX := tmpl.LeftMargin + tmpl.LeftPad
	wantY := tmpl.SheetHeight - tmpl.TopMargin - tmpl.LabelHeight + tmpl.BottomPad
	if math.Abs(placements[0].X-wantX) > eps || math.Abs(placements[0].Y-wantY) > eps {
		t.Fatalf("(1,1) origin: got (%g,%g) want (%g,%g)", placements[0].X, placements[0].Y, wantX, wantY)
	}

	// Neighbouring columns sit one label width plus the derived gap apart.
	usable := tmpl.SheetWidth - tmpl.LeftMargin - tmpl.RightMargin
	colGap := (usable - float64(tmpl.Columns)*tmpl.LabelWidth) / float64(tmpl.Columns-1)
	if gap := placements[1].X - placements[0].X; math.Abs(gap-(tmpl.LabelWidth+colGap)) > eps {
		t.Fatalf("column pitch: got %g want %g", gap, tmpl.LabelWidth+colGap)
	}

	// Row two drops by exactly one label height (RowGap is 0 here).
	if drop := placements[0].Y - placements[3].Y; math.Abs(drop-tmpl.LabelHeight) > eps {
		t.Fatalf("row pitch: got %g want %g", drop, tmpl.LabelHeight)
	}

	w, h := grid.ContentSize()
	if math.Abs(w-(tmpl.LabelWidth-tmpl.LeftPad-tmpl.RightPad)) > eps {
		t.Fatalf("content width: got %g", w)
	}
	if math.Abs(h-(tmpl.LabelHeight-tmpl.TopPad-tmpl.BottomPad)) > eps {
		t.Fatalf("content height: got %g", h)
	}
}
