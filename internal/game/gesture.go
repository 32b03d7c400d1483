package game

// Point is a screen position in cells.
type Point struct {
	X, Y int
}

// Rect is a screen rectangle. X and Y are the top-left cell; W and H are the
// size in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// PointerAdapter turns drag-and-drop gestures into match attempts. Drag start
// stores the item id as the transfer payload; a drop on a target reads it
// back.
type PointerAdapter struct {
	game    *Game
	payload string
}

// OnDragStart lifts itemID. It is ignored while another gesture holds an
// item or when the item is unknown or already matched.
func (p *PointerAdapter) OnDragStart(itemID string) {
	if !p.game.canLift(itemID) {
		return
	}
	p.payload = itemID
}

// OnDragEnd drops the payload without attempting a match.
func (p *PointerAdapter) OnDragEnd() {
	p.payload = ""
}

// OnDrop attempts a match between the lifted item and targetID.
func (p *PointerAdapter) OnDrop(targetID string) {
	if p.payload == "" {
		return
	}
	itemID := p.payload
	p.payload = ""
	p.game.AttemptMatch(itemID, targetID)
}

func (p *PointerAdapter) Dragging() (string, bool) {
	return p.payload, p.payload != ""
}

// TouchAdapter emulates drag and drop for input without native drag
// semantics. The target under the last tracked point is resolved from the
// registered target rectangles when the touch ends.
type TouchAdapter struct {
	game    *Game
	itemID  string
	start   Point
	current Point
	targets map[string]Rect
}

// SetTargetRect records where a target is drawn.
func (t *TouchAdapter) SetTargetRect(id string, r Rect) {
	t.targets[id] = r
}

// ClearTargetRects forgets every target rectangle, e.g. before a re-layout.
func (t *TouchAdapter) ClearTargetRects() {
	clear(t.targets)
}

// OnTouchStart lifts itemID at p. A touch already in progress wins; the new
// one is ignored until release.
func (t *TouchAdapter) OnTouchStart(itemID string, p Point) {
	if !t.game.canLift(itemID) {
		return
	}
	t.itemID = itemID
	t.start = p
	t.current = p
}

// OnTouchMove tracks the finger.
func (t *TouchAdapter) OnTouchMove(p Point) {
	if t.itemID == "" {
		return
	}
	t.current = p
}

// OnTouchEnd releases the lifted item. If the last tracked point is over an
// unfilled target a match is attempted, otherwise nothing happens.
func (t *TouchAdapter) OnTouchEnd() {
	if t.itemID == "" {
		return
	}
	itemID := t.itemID
	targetID := t.TargetAt(t.current)
	t.cancel()
	if targetID != "" {
		t.game.AttemptMatch(itemID, targetID)
	}
}

// TargetAt hit-tests p against the registered rectangles of unfilled
// targets, in display order.
func (t *TouchAdapter) TargetAt(p Point) string {
	for _, target := range t.game.State.Targets {
		if target.Filled {
			continue
		}
		r, ok := t.targets[target.ID]
		if ok && r.Contains(p) {
			return target.ID
		}
	}
	return ""
}

func (t *TouchAdapter) Dragging() (string, bool) {
	return t.itemID, t.itemID != ""
}

// Offset is how far the finger moved since the touch started.
func (t *TouchAdapter) Offset() Point {
	return Point{X: t.current.X - t.start.X, Y: t.current.Y - t.start.Y}
}

func (t *TouchAdapter) cancel() {
	t.itemID = ""
	t.start = Point{}
	t.current = Point{}
}
