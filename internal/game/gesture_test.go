package game

import "testing"

// layoutTargets stacks target rectangles one per row band, 10 cells wide.
func layoutTargets(g *Game) {
	g.Touch().ClearTargetRects()
	for i, tg := range g.State.Targets {
		g.Touch().SetTargetRect(tg.ID, Rect{X: 40, Y: i * 3, W: 10, H: 3})
	}
}

func rectCenter(g *Game, targetID string) Point {
	for i, tg := range g.State.Targets {
		if tg.ID == targetID {
			return Point{X: 45, Y: i*3 + 1}
		}
	}
	return Point{X: -1, Y: -1}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	if !r.Contains(Point{X: 2, Y: 3}) || !r.Contains(Point{X: 5, Y: 4}) {
		t.Error("corners inside the rect should hit")
	}
	if r.Contains(Point{X: 6, Y: 3}) || r.Contains(Point{X: 2, Y: 5}) || r.Contains(Point{X: 1, Y: 3}) {
		t.Error("points outside the rect should miss")
	}
}

func TestPointer_DragDrop(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	item := g.State.Items[0].ID

	g.Pointer().OnDragStart(item)
	if g.Snapshot().Lifted != item {
		t.Errorf("expected %s lifted, got %q", item, g.Snapshot().Lifted)
	}
	g.Pointer().OnDrop(item)

	if it, _ := g.State.FindItem(item); !it.Matched {
		t.Error("drop on the right target should match")
	}
	if g.Snapshot().Lifted != "" {
		t.Error("nothing should stay lifted after a drop")
	}
}

func TestPointer_DropWithoutDrag(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())

	g.Pointer().OnDrop(g.State.Targets[0].ID)
	if g.Snapshot().Score != 0 || g.Snapshot().Mistakes != 0 {
		t.Error("a drop without a payload should do nothing")
	}
}

func TestPointer_DragEndClearsLift(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())

	g.Pointer().OnDragStart(g.State.Items[0].ID)
	g.Pointer().OnDragEnd()
	if g.Snapshot().Lifted != "" {
		t.Error("drag end should clear the lifted item")
	}
}

func TestPointer_MatchedItemCannotBeLifted(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	item := g.State.Items[0].ID
	g.AttemptMatch(item, item)

	g.Pointer().OnDragStart(item)
	if _, ok := g.Pointer().Dragging(); ok {
		t.Error("a matched item should not be draggable")
	}
}

func TestTouch_DropOnTarget(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	layoutTargets(g)
	item := g.State.Items[0].ID

	g.Touch().OnTouchStart(item, Point{X: 5, Y: 1})
	g.Touch().OnTouchMove(Point{X: 20, Y: 2})
	g.Touch().OnTouchMove(rectCenter(g, item))
	if snap := g.Snapshot(); !snap.Touching || snap.Lifted != item {
		t.Errorf("touch should hold %s, got %+v", item, snap)
	}
	g.Touch().OnTouchEnd()

	if it, _ := g.State.FindItem(item); !it.Matched {
		t.Error("touch release over the right target should match")
	}
	if snap := g.Snapshot(); snap.Touching || snap.Lifted != "" {
		t.Error("touch state should be cleared after release")
	}
}

func TestTouch_WrongTarget(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	g.State.Score.CurrentScore = 10
	layoutTargets(g)
	item := g.State.Items[0].ID

	g.Touch().OnTouchStart(item, Point{})
	g.Touch().OnTouchMove(rectCenter(g, targetFor(g, item, false)))
	g.Touch().OnTouchEnd()

	if g.Snapshot().Score != 8 {
		t.Errorf("expected the wrong-match penalty, got %d", g.Snapshot().Score)
	}
}

func TestTouch_ReleaseOffTarget(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	layoutTargets(g)
	item := g.State.Items[0].ID

	g.Touch().OnTouchStart(item, Point{X: 1, Y: 1})
	g.Touch().OnTouchMove(Point{X: 100, Y: 100})
	g.Touch().OnTouchEnd()

	snap := g.Snapshot()
	if snap.Score != 0 || snap.Mistakes != 0 || snap.Lifted != "" || snap.Touching {
		t.Errorf("release off target should be a clean no-op, got %+v", snap)
	}
}

func TestTouch_IgnoresSecondTouchStart(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	first, second := g.State.Items[0].ID, g.State.Items[1].ID

	g.Touch().OnTouchStart(first, Point{X: 1, Y: 1})
	g.Touch().OnTouchStart(second, Point{X: 9, Y: 9})
	if id, _ := g.Touch().Dragging(); id != first {
		t.Errorf("the first touch should win, got %s", id)
	}
	if g.Touch().Offset() != (Point{}) {
		t.Error("the ignored touch should not move the start point")
	}
}

func TestGestures_MutuallyExclusive(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	first, second := g.State.Items[0].ID, g.State.Items[1].ID

	g.Pointer().OnDragStart(first)
	g.Touch().OnTouchStart(second, Point{})
	if _, ok := g.Touch().Dragging(); ok {
		t.Error("a touch should not start during a pointer drag")
	}
	g.Pointer().OnDragEnd()

	g.Touch().OnTouchStart(second, Point{})
	g.Pointer().OnDragStart(first)
	if _, ok := g.Pointer().Dragging(); ok {
		t.Error("a pointer drag should not start during a touch")
	}
}

func TestTouch_SkipsFilledTargets(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	layoutTargets(g)
	filled := g.State.Items[0].ID
	g.AttemptMatch(filled, filled)

	if id := g.Touch().TargetAt(rectCenter(g, filled)); id != "" {
		t.Errorf("a filled target should not be hit, got %s", id)
	}
}

func TestGestures_ClearedOnReset(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.StartRound(DefaultConfig())
	g.Touch().OnTouchStart(g.State.Items[0].ID, Point{})

	g.ResetRound()
	if _, ok := g.Touch().Dragging(); ok {
		t.Error("reset should release the touch")
	}
	g.Touch().OnTouchEnd()
	if g.Snapshot().Status != "configuring" {
		t.Error("a late touch end must not restart anything")
	}
}
