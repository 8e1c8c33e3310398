package enemies

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
)

func newTestController(w, h int) (*Controller, *board.Board, *items.Controller) {
	b := board.New(w, h)
	it := items.NewController(b, core.NewRand(3))
	return NewController(b, it), b, it
}

func TestTrollTurnsClockwiseWhenBlocked(t *testing.T) {
	c, b, _ := newTestController(1, 2)
	if err := b.SetMapObstacle(0, 1, board.Wall); err != nil {
		t.Fatal(err)
	}
	if !c.Spawn(string(KindTroll), "troll", 0, 0) {
		t.Fatal("Spawn failed")
	}

	c.Update(0.5)

	e := c.Enemies()[0]
	if e.X != 0 || e.Y != 0 {
		t.Errorf("troll moved to (%d,%d)", e.X, e.Y)
	}
	if e.Facing != core.DirDown {
		t.Errorf("facing = %v, want DOWN", e.Facing)
	}
}

func TestTrollClockwiseCycle(t *testing.T) {
	e, _ := New(string(KindTroll), "t", 0, 0)
	want := []core.Direction{core.DirDown, core.DirLeft, core.DirUp, core.DirRight}
	for i, w := range want {
		if got := e.Decide(true, core.C(-1, -1)); got != w {
			t.Errorf("turn %d = %v, want %v", i, got, w)
		}
	}
}

func TestTimerCarriesFraction(t *testing.T) {
	c, _, _ := newTestController(10, 1)
	c.Spawn(string(KindTroll), "t", 0, 0)

	c.Update(0.2) // 0.66
	if c.Enemies()[0].X != 0 {
		t.Fatal("troll moved before timer filled")
	}
	c.Update(0.2) // 1.32 -> move, 0.32 left
	e := c.Enemies()[0]
	if e.X != 1 {
		t.Fatalf("troll at x=%d, want 1", e.X)
	}
	if diff := e.MoveTimer - (BaseSpeed*0.4 - 1); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("MoveTimer = %v, want fractional carry", e.MoveTimer)
	}
}

func TestChaseLargerAxisFirst(t *testing.T) {
	tests := []struct {
		name   string
		target core.Coord
		want   core.Direction
	}{
		{"right", core.C(9, 6), core.DirRight},
		{"left", core.C(1, 4), core.DirLeft},
		{"down", core.C(5, 9), core.DirDown},
		{"up", core.C(6, 0), core.DirUp},
		{"tie goes to x", core.C(8, 8), core.DirRight},
		{"same tile", core.C(5, 5), core.DirNone},
		{"no player", core.C(-1, -1), core.DirNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []Kind{KindFlowerPot, KindSquid} {
				e, _ := New(string(k), "e", 5, 5)
				if got := e.Decide(false, tt.target); got != tt.want {
					t.Errorf("%s Decide = %v, want %v", k, got, tt.want)
				}
			}
		})
	}
}

func TestNarwhalDash(t *testing.T) {
	e, _ := New(string(KindNarwhal), "n", 5, 5)
	if e.CanBreakIce() || e.Speed != BaseSpeed {
		t.Fatal("narwhal should start slow and unable to break ice")
	}

	dir := e.Decide(false, core.C(9, 5))
	if dir != core.DirRight || !e.Dashing {
		t.Fatalf("aligned narwhal should dash right, got %v dashing=%v", dir, e.Dashing)
	}
	if e.Speed != DashSpeed || !e.CanBreakIce() || e.TypeName() != "NARWHAL_DASH" {
		t.Error("dashing narwhal should be fast and break ice")
	}

	// passing the player does not end the dash
	if got := e.Decide(false, core.C(5, 1)); got != core.DirRight || !e.Dashing {
		t.Error("dash should continue until a collision")
	}

	e.Decide(true, core.C(9, 5))
	if e.Dashing || e.Speed != BaseSpeed || e.CanBreakIce() {
		t.Error("blocked narwhal should stop dashing")
	}
	if e.Facing != core.DirLeft {
		t.Errorf("facing = %v, want LEFT after reversal", e.Facing)
	}
}

func TestNarwhalVerticalDash(t *testing.T) {
	e, _ := New(string(KindNarwhal), "n", 3, 7)
	if dir := e.Decide(false, core.C(3, 2)); dir != core.DirUp || !e.Dashing {
		t.Errorf("expected vertical dash up, got %v", dir)
	}
}

func TestSquidBreaksIceInsteadOfMoving(t *testing.T) {
	c, b, it := newTestController(5, 1)
	it.SpawnObstacle(string(items.KindIceBlock), "ice", 1, 0)
	c.Spawn(string(KindSquid), "sq", 0, 0)
	c.UpdatePlayerPos(4, 0)

	c.Update(0.5)
	if e := c.Enemies()[0]; e.X != 0 {
		t.Errorf("squid should break ice without moving, at x=%d", e.X)
	}
	if !b.IsWalkable(1, 0) || it.IsObstacleAt(1, 0) {
		t.Error("ice should be broken")
	}

	c.Update(0.5)
	if e := c.Enemies()[0]; e.X != 1 {
		t.Errorf("squid should advance after breaking, at x=%d", e.X)
	}
}

func TestFlowerPotBlockedByIce(t *testing.T) {
	c, _, it := newTestController(5, 1)
	it.SpawnObstacle(string(items.KindIceBlock), "ice", 1, 0)
	c.Spawn(string(KindFlowerPot), "fp", 0, 0)
	c.UpdatePlayerPos(4, 0)

	c.Update(0.5)
	if e := c.Enemies()[0]; e.X != 0 {
		t.Error("flowerpot should not pass ice")
	}
	if !it.IsObstacleAt(1, 0) {
		t.Error("flowerpot must not break ice")
	}
}

func TestSpawnAndCollision(t *testing.T) {
	c, b, _ := newTestController(4, 4)
	b.SetMapObstacle(2, 2, board.Wall)

	if c.Spawn(string(KindTroll), "t", 2, 2) {
		t.Error("spawn on wall should fail")
	}
	if c.Spawn("DRAGON", "d", 1, 1) {
		t.Error("unknown kind should fail")
	}
	if !c.Spawn(string(KindNarwhal), "n", 1, 1) {
		t.Fatal("spawn failed")
	}
	if !c.CheckCollision(1, 1) || c.CheckCollision(0, 0) {
		t.Error("CheckCollision mismatch")
	}
	if info := c.Infos()[0]; info.Type != "NARWHAL" || info.ID != "n" {
		t.Errorf("info = %+v", info)
	}

	c.Reset()
	if len(c.Enemies()) != 0 || c.target != core.C(-1, -1) {
		t.Error("Reset should clear enemies and target")
	}
}

func TestControllerJSONRoundTrip(t *testing.T) {
	c, b, it := newTestController(8, 8)
	c.Spawn(string(KindNarwhal), "n", 1, 1)
	c.Spawn(string(KindTroll), "t", 4, 4)
	c.UpdatePlayerPos(6, 1)
	c.Update(0.37)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	restored := NewController(b, it)
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	orig, got := c.Enemies(), restored.Enemies()
	for i := range orig {
		if orig[i] != got[i] {
			t.Errorf("enemy %d differs: %+v vs %+v", i, orig[i], got[i])
		}
	}
	if restored.target != c.target {
		t.Error("target differs")
	}
}
