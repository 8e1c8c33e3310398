package items

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

func newTestController(w, h int) (*Controller, *board.Board) {
	b := board.New(w, h)
	return NewController(b, core.NewRand(1)), b
}

func TestFactories(t *testing.T) {
	for _, k := range FruitKinds {
		if _, ok := NewFruit(string(k), "f", 0, 0); !ok {
			t.Errorf("NewFruit(%s) failed", k)
		}
		if _, ok := NewObstacle(string(k), "o", 0, 0); ok {
			t.Errorf("NewObstacle(%s) should reject fruit", k)
		}
	}
	for _, k := range ObstacleKinds {
		if _, ok := NewObstacle(string(k), "o", 0, 0); !ok {
			t.Errorf("NewObstacle(%s) failed", k)
		}
	}
	if _, ok := NewFruit("MANGO", "f", 0, 0); ok {
		t.Error("NewFruit should reject unknown names")
	}
}

func TestFruitScores(t *testing.T) {
	tests := []struct {
		kind  Kind
		score int
	}{
		{KindBanana, 100},
		{KindGrape, 50},
		{KindPineapple, 200},
		{KindCherry, 150},
		{KindCactus, 250},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c, _ := newTestController(5, 5)
			if !c.SpawnFruit(string(tt.kind), "f1", 2, 2) {
				t.Fatal("SpawnFruit failed")
			}
			if got := c.CollectItemAt(2, 2); got != tt.score {
				t.Errorf("CollectItemAt = %d, want %d", got, tt.score)
			}
			if c.FruitCount() != 0 {
				t.Error("fruit should be removed after collection")
			}
		})
	}
}

func TestCactusCycle(t *testing.T) {
	it, _ := NewFruit(string(KindCactus), "c", 0, 0)

	if it.Spiked || it.Dangerous() || !it.Collectable() || it.Score() != 250 {
		t.Fatal("cactus should start unspiked and collectable for 250")
	}

	for i := 0; i < 299; i++ {
		it.update(0.1)
	}
	if it.Spiked {
		t.Fatal("cactus spiked before 30 seconds")
	}

	toggles := 0
	prev := it.Spiked
	for i := 0; i < 350; i++ {
		it.update(0.1)
		if it.Spiked != prev {
			toggles++
			prev = it.Spiked
		}
	}
	if toggles != 2 {
		t.Errorf("toggled %d times over ~65s, want 2", toggles)
	}

	it.Spiked = true
	if !it.Dangerous() || it.Collectable() || it.TypeName() != "CACTUS_SPIKES" {
		t.Error("spiked cactus should be dangerous and not collectable")
	}
}

func TestSpikedCactusNotCollected(t *testing.T) {
	c, _ := newTestController(3, 3)
	c.SpawnFruit(string(KindCactus), "c", 1, 1)
	c.Update(30)

	if !c.HasDangerousCactusAt(1, 1) {
		t.Fatal("cactus should be spiked after 30s")
	}
	if got := c.CollectItemAt(1, 1); got != 0 {
		t.Errorf("CollectItemAt on spiked cactus = %d, want 0", got)
	}
	if c.FruitCount() != 1 {
		t.Error("spiked cactus still counts as fruit")
	}
	if len(c.Fruits()) != 0 {
		t.Error("spiked cactus is not a target")
	}
}

func TestIceBlockSpawnAndBreak(t *testing.T) {
	c, b := newTestController(5, 5)

	if !c.SpawnObstacle(string(KindIceBlock), "i1", 2, 2) {
		t.Fatal("SpawnObstacle ice failed")
	}
	if b.ContentAt(2, 2) != board.Ice {
		t.Error("ice item should claim board cell")
	}
	if !c.IsObstacleAt(2, 2) || !c.HasDestructibleAt(2, 2) {
		t.Error("ice should be an obstacle and destructible")
	}
	if c.SpawnObstacle(string(KindIceBlock), "i2", 2, 2) {
		t.Error("second ice on same tile should be rejected")
	}
	if c.SpawnFruit(string(KindBanana), "f", 2, 2) {
		t.Error("fruit should not spawn on ice")
	}

	if !c.BreakIceBlock(2, 2) {
		t.Fatal("BreakIceBlock failed")
	}
	if !b.IsWalkable(2, 2) || c.IsObstacleAt(2, 2) {
		t.Error("tile should be free after breaking")
	}
	if c.BreakIceBlock(2, 2) {
		t.Error("breaking again should fail")
	}
}

func TestIceNotOnHotTile(t *testing.T) {
	c, b := newTestController(5, 5)
	c.SpawnObstacle(string(KindHotTile), "h", 1, 1)

	if c.SpawnObstacle(string(KindIceBlock), "i", 1, 1) {
		t.Error("ice should not form on a hot tile")
	}
	if b.ContentAt(1, 1) != board.Empty {
		t.Error("board cell should remain empty")
	}
}

func TestCampfire(t *testing.T) {
	c, _ := newTestController(5, 5)
	c.SpawnObstacle(string(KindCampfire), "fire", 3, 3)

	if got := c.CollectItemAt(3, 3); got != Lethal {
		t.Fatalf("lit campfire = %d, want Lethal", got)
	}
	if len(c.Infos()) != 1 {
		t.Fatal("lit campfire should stay in place")
	}

	if !c.SpawnObstacle(string(KindIceBlock), "i", 3, 3) {
		t.Fatal("ice should form over a campfire")
	}
	c.BreakIceBlock(3, 3)

	if got := c.CollectItemAt(3, 3); got != 0 {
		t.Errorf("extinguished campfire = %d, want 0", got)
	}
	if c.Infos()[0].Type != "CAMPFIRE_OFF" {
		t.Errorf("type = %s, want CAMPFIRE_OFF", c.Infos()[0].Type)
	}

	c.Update(9.9)
	if c.Infos()[0].Type != "CAMPFIRE_OFF" {
		t.Error("campfire re-lit too early")
	}
	c.Update(0.2)
	if c.Infos()[0].Type != "CAMPFIRE" {
		t.Error("campfire should re-ignite after 10s")
	}
}

func TestRowQueueDrainsOnePerDelay(t *testing.T) {
	c, b := newTestController(6, 1)
	c.QueueIceCreation([]core.Coord{core.C(1, 0), core.C(2, 0), core.C(3, 0)})

	if len(c.PendingRow()) != 3 {
		t.Fatalf("pending = %d, want 3", len(c.PendingRow()))
	}

	c.Update(0.05)
	if b.ContentAt(1, 0) == board.Ice || len(c.PendingRow()) != 3 {
		t.Fatal("nothing should commit before the delay")
	}

	c.Update(0.05)
	if b.ContentAt(1, 0) != board.Ice || b.ContentAt(2, 0) == board.Ice {
		t.Error("only the head should commit after one delay")
	}

	// a large step still pops a single action
	c.Update(1.0)
	if b.ContentAt(2, 0) != board.Ice || b.ContentAt(3, 0) == board.Ice {
		t.Error("expected exactly one more commit")
	}

	c.Update(0.1)
	if b.ContentAt(3, 0) != board.Ice || len(c.PendingRow()) != 0 {
		t.Error("queue should be drained")
	}

	c.QueueIceDestruction([]core.Coord{core.C(1, 0), core.C(2, 0)})
	c.Update(0.1)
	c.Update(0.1)
	if b.ContentAt(1, 0) != board.Empty || b.ContentAt(2, 0) != board.Empty {
		t.Error("destroy row should free tiles")
	}
	if b.ContentAt(3, 0) != board.Ice {
		t.Error("unqueued ice should remain")
	}
}

func TestPineappleStepsToFreeTile(t *testing.T) {
	c, b := newTestController(3, 3)
	c.SpawnFruit(string(KindPineapple), "p", 1, 1)
	b.SetMapObstacle(1, 0, board.Wall)
	b.SetMapObstacle(0, 1, board.Wall)
	c.SpawnObstacle(string(KindIceBlock), "i", 2, 1)

	c.OnPlayerMove()

	it := c.Items()[0]
	if it.X != 1 || it.Y != 2 {
		t.Errorf("pineapple at (%d,%d), want (1,2)", it.X, it.Y)
	}
}

func TestCherryTeleportsAfterCooldown(t *testing.T) {
	c, _ := newTestController(8, 8)
	c.SpawnFruit(string(KindCherry), "ch", 4, 4)

	c.Update(19)
	c.OnPlayerMove()
	if it := c.Items()[0]; it.X != 4 || it.Y != 4 {
		t.Fatal("cherry moved before 20s")
	}

	c.Update(1.5)
	for i := 0; i < 20; i++ {
		c.OnPlayerMove()
		if c.Items()[0].Timer == 0 {
			break
		}
	}
	if c.Items()[0].Timer != 0 {
		t.Error("cherry should teleport and reset its timer")
	}
}

func TestApplyRipple(t *testing.T) {
	c, b := newTestController(3, 1)
	c.SpawnObstacle(string(KindCampfire), "fire", 2, 0)
	b.CreateIceBlock(2, 0)

	c.ApplyRipple([]board.Commit{{X: 0, Y: 0, Content: board.Ice}, {X: 2, Y: 0, Content: board.Ice}})
	if !c.HasKindAt(0, 0, KindIceBlock) || !c.HasKindAt(2, 0, KindIceBlock) {
		t.Fatal("ripple ice should become ice items")
	}

	c.ApplyRipple([]board.Commit{{X: 2, Y: 0, Content: board.Empty}})
	if c.HasKindAt(2, 0, KindIceBlock) {
		t.Error("melted ice item should be removed")
	}
	if c.CollectItemAt(2, 0) != 0 {
		t.Error("melting ice should extinguish the campfire")
	}
}

func TestRemainingFruitsByType(t *testing.T) {
	c, _ := newTestController(5, 5)
	c.SpawnFruit(string(KindGrape), "g1", 1, 1)
	c.SpawnFruit(string(KindGrape), "g2", 2, 1)
	c.SpawnFruit(string(KindBanana), "b1", 3, 1)
	c.SpawnObstacle(string(KindHotTile), "h", 1, 3)

	counts := c.RemainingFruitsByType()
	if counts[KindGrape] != 2 || counts[KindBanana] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
	if c.FruitCount() != 3 {
		t.Errorf("FruitCount = %d, want 3", c.FruitCount())
	}
}

func TestControllerJSONRoundTrip(t *testing.T) {
	c, b := newTestController(5, 5)
	c.SpawnFruit(string(KindCherry), "ch", 1, 1)
	c.SpawnObstacle(string(KindCampfire), "fire", 2, 2)
	c.QueueIceCreation([]core.Coord{core.C(3, 3), core.C(4, 3)})
	c.Update(0.05)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	restored := NewController(b, core.NewRand(1))
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(restored.Items()) != 2 || restored.Items()[0].Timer != c.Items()[0].Timer {
		t.Error("items differ after round trip")
	}
	if len(restored.PendingRow()) != len(c.PendingRow()) || restored.rowTimer != c.rowTimer {
		t.Error("row queue differs after round trip")
	}

	if err := json.Unmarshal([]byte(`{"items":[{"id":"x","kind":"MANGO"}]}`), restored); err == nil {
		t.Error("expected error for unknown kind")
	}
}
