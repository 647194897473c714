package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestNavGrid_OpenGridIsWalkable(t *testing.T) {
	ng := NewNavGrid(320, 320, nil, agentRadius)

	if ng.IsBlocked(0, 0) || ng.IsBlocked(10, 10) || ng.IsBlocked(19, 19) {
		t.Fatal("open grid reports blocked cells")
	}
	if !ng.IsBlocked(-1, 0) || !ng.IsBlocked(0, -1) || !ng.IsBlocked(20, 0) || !ng.IsBlocked(0, 20) {
		t.Fatal("out-of-bounds cells not blocked")
	}
}

func TestNavGrid_WallBlocksPaddedCells(t *testing.T) {
	walls := []rect{{x: 160, y: 160, w: 16, h: 16}}
	ng := NewNavGrid(320, 320, walls, agentRadius)

	// The 16px wall plus 8px padding covers cells 9..11 on both axes.
	for cy := 9; cy <= 11; cy++ {
		for cx := 9; cx <= 11; cx++ {
			if !ng.IsBlocked(cx, cy) {
				t.Fatalf("cell (%d,%d) inside padded wall not blocked", cx, cy)
			}
		}
	}
	if ng.IsBlocked(8, 10) || ng.IsBlocked(12, 10) || ng.IsBlocked(10, 8) || ng.IsBlocked(10, 12) {
		t.Fatal("cells outside padded wall blocked")
	}
}

func TestCellConversionRoundTrip(t *testing.T) {
	cx, cy := WorldToCell(24, 40)
	if cx != 1 || cy != 2 {
		t.Fatalf("WorldToCell(24, 40) = (%d, %d), want (1, 2)", cx, cy)
	}
	wx, wy := CellToWorld(1, 2)
	if wx != 24 || wy != 40 {
		t.Fatalf("CellToWorld(1, 2) = (%v, %v), want (24, 40)", wx, wy)
	}
}

func TestNavGrid_FindPathStraightLine(t *testing.T) {
	ng := NewNavGrid(320, 320, nil, agentRadius)

	path := ng.FindPath(24, 24, 104, 24)
	if path == nil {
		t.Fatal("no path on an open grid")
	}
	first := path[0]
	last := path[len(path)-1]
	if first[0] != 24 || first[1] != 24 {
		t.Fatalf("path starts at (%v, %v), want (24, 24)", first[0], first[1])
	}
	if last[0] != 104 || last[1] != 24 {
		t.Fatalf("path ends at (%v, %v), want (104, 24)", last[0], last[1])
	}
	if got := pathLength(path); math.Abs(got-80) > 1e-9 {
		t.Fatalf("pathLength = %v, want 80", got)
	}
}

func TestNavGrid_FindPathRoutesAroundWall(t *testing.T) {
	// Vertical wall with a gap at the bottom of the arena.
	walls := []rect{{x: 160, y: 0, w: 16, h: 240}}
	ng := NewNavGrid(320, 320, walls, agentRadius)

	path := ng.FindPath(24, 24, 296, 24)
	if path == nil {
		t.Fatal("no path around the wall gap")
	}
	maxY := 0.0
	for _, wp := range path {
		if wp[1] > maxY {
			maxY = wp[1]
		}
	}
	if maxY <= 240 {
		t.Fatalf("path max y = %v, want a detour below the wall end at 240", maxY)
	}
	if pathLength(path) <= 272 {
		t.Fatalf("detour not longer than the straight line: %v", pathLength(path))
	}
}

// sealedRoomWalls builds a hollow box whose interior cells are walkable
// but unreachable from outside.
func sealedRoomWalls() []rect {
	return []rect{
		{x: 64, y: 64, w: 96, h: 16},
		{x: 64, y: 144, w: 96, h: 16},
		{x: 64, y: 80, w: 16, h: 64},
		{x: 144, y: 80, w: 16, h: 64},
	}
}

func TestNavGrid_FindPathUnreachableGoal(t *testing.T) {
	ng := NewNavGrid(320, 320, sealedRoomWalls(), agentRadius)

	// (112, 112) is a walkable cell inside the sealed room.
	if ng.IsBlocked(7, 7) {
		t.Fatal("setup: room interior should be walkable")
	}
	if path := ng.FindPath(24, 24, 112, 112); path != nil {
		t.Fatal("found a path into a sealed room")
	}
}

func TestNavGrid_FindPathSnapsBlockedStart(t *testing.T) {
	walls := []rect{{x: 96, y: 0, w: 16, h: 160}}
	ng := NewNavGrid(320, 320, walls, agentRadius)

	// (84, 24) sits just inside the padded wall; the start snaps to
	// the nearest walkable neighbor instead of failing.
	if !ng.IsBlocked(WorldToCell(84, 24)) {
		t.Fatal("setup: start cell should be blocked")
	}
	if path := ng.FindPath(84, 24, 296, 24); path == nil {
		t.Fatal("no path from a start pressed against a wall")
	}
}

func TestNavGrid_RaycastClearAndBlocked(t *testing.T) {
	open := NewNavGrid(320, 320, nil, agentRadius)
	if got := open.Raycast(24, 24, 200, 24); got < 1 {
		t.Fatalf("clear ray returned %v, want >= 1", got)
	}

	walls := []rect{{x: 96, y: 0, w: 16, h: 320}}
	blocked := NewNavGrid(320, 320, walls, agentRadius)
	got := blocked.Raycast(24, 24, 200, 24)
	if got >= 1 {
		t.Fatalf("ray through a wall returned %v, want < 1", got)
	}
	if got <= 0 || got > 0.5 {
		t.Fatalf("hit fraction %v, want in (0, 0.5] for a wall a third of the way", got)
	}
}

func TestNavGrid_RaycastZeroLength(t *testing.T) {
	ng := NewNavGrid(320, 320, nil, agentRadius)
	if got := ng.Raycast(24, 24, 24, 24); got != 1 {
		t.Fatalf("zero-length ray returned %v, want 1", got)
	}
}

func TestNavGrid_RegionForPointSnaps(t *testing.T) {
	walls := []rect{{x: 96, y: 0, w: 16, h: 320}}
	ng := NewNavGrid(320, 320, walls, agentRadius)

	r, ok := ng.RegionForPoint(100, 24, 32, 32)
	if !ok {
		t.Fatal("no region found near a blocked point")
	}
	if ng.IsBlocked(r.Index%20, r.Index/20) {
		t.Fatal("snapped region is itself blocked")
	}

	// Zero extents disallow snapping entirely.
	if _, ok := ng.RegionForPoint(100, 24, 0, 0); ok {
		t.Fatal("zero-extent search found a region for a blocked point")
	}
}

func TestNavGrid_RandomRegionIsWalkableAndSeeded(t *testing.T) {
	walls := []rect{{x: 96, y: 0, w: 16, h: 320}}
	ng := NewNavGrid(320, 320, walls, agentRadius)

	r1, ok1 := ng.RandomRegion(rand.New(rand.NewSource(7)))
	r2, ok2 := ng.RandomRegion(rand.New(rand.NewSource(7)))
	if !ok1 || !ok2 {
		t.Fatal("no region on a mostly open grid")
	}
	if r1.Index != r2.Index {
		t.Fatalf("same seed picked regions %d and %d", r1.Index, r2.Index)
	}
	if ng.IsBlocked(r1.Index%20, r1.Index/20) {
		t.Fatal("random region is blocked")
	}
}

func TestCostTable_SymmetricCachedCosts(t *testing.T) {
	ng := NewNavGrid(320, 320, nil, agentRadius)
	ct := NewCostTable(ng)

	a, _ := ng.RegionForPoint(24, 24, 0, 0)
	b, _ := ng.RegionForPoint(104, 24, 0, 0)

	ab := ct.Cost(a, b)
	ba := ct.Cost(b, a)
	if math.Abs(ab-80) > 1e-9 {
		t.Fatalf("Cost = %v, want 80 for a 5-cell straight run", ab)
	}
	if ab != ba {
		t.Fatalf("cost not symmetric: %v vs %v", ab, ba)
	}
	if len(ct.cache) != 1 {
		t.Fatalf("cache has %d entries, want 1 shared by both directions", len(ct.cache))
	}
}

func TestCostTable_UnreachableIsInf(t *testing.T) {
	ng := NewNavGrid(320, 320, sealedRoomWalls(), agentRadius)
	ct := NewCostTable(ng)

	outside, _ := ng.RegionForPoint(24, 24, 0, 0)
	inside, _ := ng.RegionForPoint(112, 112, 0, 0)
	if got := ct.Cost(outside, inside); !math.IsInf(got, 1) {
		t.Fatalf("cost into a sealed room = %v, want +Inf", got)
	}
}
