package tui

import "relkeys/internal/game"

// Board geometry in terminal cells. The view renders exactly these sizes so
// mouse positions can be mapped back onto items and targets.
const (
	boardTop   = 5  // title, blank, header, blank, column headings
	cellInner  = 18 // label width inside a key box
	cellOuter  = cellInner + 2
	cellHeight = 3 // border, label, border
	footerRows = 2 // blank, help
	columnGap  = 4
	itemsLeft  = 0
	targetLeft = cellOuter + columnGap
)

type placed struct {
	id   string
	rect game.Rect
}

// boardLayout is where each visible item and every target is drawn.
// Compact boards drop the cell borders so a row is one line high.
type boardLayout struct {
	items   []placed
	targets []placed
	compact bool
	top     int
	rowH    int
}

// computeLayout mirrors renderBoard: unmatched items stack in the left
// column, all targets stack in the right column. height is the terminal
// height, 0 when unknown. The renderer keeps only the bottom height lines of
// a taller view, so rows are shifted up by whatever it cuts off.
func computeLayout(snap game.Snapshot, height int) boardLayout {
	l := boardLayout{top: boardTop, rowH: cellHeight}
	rows := len(snap.Targets)
	if height > 0 && boardTop+rows*cellHeight+footerRows > height {
		l.compact = true
		l.rowH = 1
	}
	if height > 0 {
		if clipped := boardTop + rows*l.rowH + footerRows - height; clipped > 0 {
			l.top -= clipped
		}
	}
	row := 0
	for _, it := range snap.Items {
		if it.Matched {
			continue
		}
		l.items = append(l.items, placed{id: it.ID, rect: l.cellRect(itemsLeft, row)})
		row++
	}
	for i, tg := range snap.Targets {
		l.targets = append(l.targets, placed{id: tg.ID, rect: l.cellRect(targetLeft, i)})
	}
	return l
}

func (l boardLayout) cellRect(x, row int) game.Rect {
	return game.Rect{X: x, Y: l.top + row*l.rowH, W: cellOuter, H: l.rowH}
}

// itemAt returns the visible item drawn under p.
func (l boardLayout) itemAt(p game.Point) string {
	for _, it := range l.items {
		if it.rect.Contains(p) {
			return it.id
		}
	}
	return ""
}

// register hands the target rectangles to the touch adapter.
func (l boardLayout) register(t *game.TouchAdapter) {
	t.ClearTargetRects()
	for _, tg := range l.targets {
		t.SetTargetRect(tg.id, tg.rect)
	}
}
