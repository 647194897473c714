package game

import (
	"container/heap"
	"math"
	"math/rand"
)

const cellSize = 16

// NavGrid is a 2D walkability grid where true = blocked. Walkable cells
// double as the "regions" of the map: region queries (random roam
// target, closest-region lookup, region-to-region travel cost) resolve
// to cells and their center points.
type NavGrid struct {
	cols     int
	rows     int
	blocked  []bool
	walkable []int // cell indices that are walkable, for region sampling
}

// NewNavGrid builds a walkability grid from the arena dimensions and
// walls. Each cell that overlaps a wall (with padding for agent radius)
// is blocked.
func NewNavGrid(arenaW, arenaH int, walls []rect, agentRadius int) *NavGrid {
	cols := arenaW / cellSize
	rows := arenaH / cellSize
	ng := &NavGrid{
		cols:    cols,
		rows:    rows,
		blocked: make([]bool, cols*rows),
	}

	pad := agentRadius
	for _, b := range walls {
		// Expand wall bounds by agent radius so paths keep clearance.
		bx0 := b.x - pad
		by0 := b.y - pad
		bx1 := b.x + b.w + pad
		by1 := b.y + b.h + pad

		cMinX := max(0, bx0/cellSize)
		cMinY := max(0, by0/cellSize)
		cMaxX := min(cols-1, (bx1-1)/cellSize)
		cMaxY := min(rows-1, (by1-1)/cellSize)

		for cy := cMinY; cy <= cMaxY; cy++ {
			for cx := cMinX; cx <= cMaxX; cx++ {
				ng.blocked[cy*cols+cx] = true
			}
		}
	}

	for i, b := range ng.blocked {
		if !b {
			ng.walkable = append(ng.walkable, i)
		}
	}
	return ng
}

// IsBlocked returns true if the cell at (cx, cy) is not walkable.
func (ng *NavGrid) IsBlocked(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= ng.cols || cy >= ng.rows {
		return true
	}
	return ng.blocked[cy*ng.cols+cx]
}

// WorldToCell converts world pixel coordinates to grid cell coordinates.
func WorldToCell(wx, wy float64) (int, int) {
	return int(wx) / cellSize, int(wy) / cellSize
}

// CellToWorld converts grid cell coordinates to world pixel center.
func CellToWorld(cx, cy int) (float64, float64) {
	return float64(cx*cellSize) + float64(cellSize)/2, float64(cy*cellSize) + float64(cellSize)/2
}

// --- regions ---

// Region identifies one walkable cell of the grid together with its
// center point.
type Region struct {
	Index  int
	CX, CY float64
}

func (ng *NavGrid) regionAt(cx, cy int) Region {
	wx, wy := CellToWorld(cx, cy)
	return Region{Index: cy*ng.cols + cx, CX: wx, CY: wy}
}

// RandomRegion picks a walkable region uniformly at random. Used by
// exploration to choose roam targets.
func (ng *NavGrid) RandomRegion(rng *rand.Rand) (Region, bool) {
	if len(ng.walkable) == 0 {
		return Region{}, false
	}
	i := ng.walkable[rng.Intn(len(ng.walkable))]
	return ng.regionAt(i%ng.cols, i/ng.cols), true
}

// RegionForPoint returns the region containing (wx, wy). When that cell
// is blocked, nearby cells within the given half-extents (world units)
// are searched and the closest walkable one is returned. ok is false
// when nothing walkable is in range.
func (ng *NavGrid) RegionForPoint(wx, wy, ex, ey float64) (Region, bool) {
	cx, cy := WorldToCell(wx, wy)
	if !ng.IsBlocked(cx, cy) {
		return ng.regionAt(cx, cy), true
	}

	rx := int(math.Ceil(ex / cellSize))
	ry := int(math.Ceil(ey / cellSize))
	bestD := math.MaxFloat64
	var best Region
	found := false
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			nx, nyy := cx+dx, cy+dy
			if ng.IsBlocked(nx, nyy) {
				continue
			}
			ccx, ccy := CellToWorld(nx, nyy)
			d := (ccx-wx)*(ccx-wx) + (ccy-wy)*(ccy-wy)
			if d < bestD {
				bestD = d
				best = ng.regionAt(nx, nyy)
				found = true
			}
		}
	}
	return best, found
}

// Raycast walks the segment from (fx,fy) to (tx,ty) through the grid
// and returns the fraction of the segment traversed before hitting a
// blocked cell. A return value >= 1 means the ray reached the target
// unobstructed.
func (ng *NavGrid) Raycast(fx, fy, tx, ty float64) float64 {
	dx := tx - fx
	dy := ty - fy
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 1
	}

	// Sample at half-cell resolution. The first sample sits at the
	// origin so a caster standing inside a blocked cell reports an
	// immediate hit.
	step := cellSize / 2.0
	steps := int(dist/step) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) * step / dist
		if t > 1 {
			t = 1
		}
		cx, cy := WorldToCell(fx+dx*t, fy+dy*t)
		if ng.IsBlocked(cx, cy) {
			return t
		}
		if t >= 1 {
			break
		}
	}
	return 1
}

// --- A* pathfinding ---

type pathNode struct {
	cx, cy int
	g, h   float64
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}
func (ol *openList) Push(x interface{}) { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindPath returns a slice of world-coordinate waypoints from (sx,sy)
// to (gx,gy). Endpoints inside blocked cells are snapped to the nearest
// walkable region within one cell before searching. Returns nil if no
// path exists.
func (ng *NavGrid) FindPath(sx, sy, gx, gy float64) [][2]float64 {
	scx, scy := ng.snapCell(sx, sy)
	gcx, gcy := ng.snapCell(gx, gy)

	if ng.IsBlocked(scx, scy) || ng.IsBlocked(gcx, gcy) {
		return nil
	}

	key := func(cx, cy int) int { return cy*ng.cols + cx }
	heuristic := func(ax, ay, bx, by int) float64 {
		dx := math.Abs(float64(ax - bx))
		dy := math.Abs(float64(ay - by))
		return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
	}

	start := &pathNode{cx: scx, cy: scy, g: 0, h: heuristic(scx, scy, gcx, gcy)}
	ol := &openList{start}
	heap.Init(ol)

	closed := make(map[int]bool)
	best := make(map[int]*pathNode)
	best[key(scx, scy)] = start

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cx == gcx && cur.cy == gcy {
			return buildPath(cur)
		}
		k := key(cur.cx, cur.cy)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range dirs {
			nx, ny := cur.cx+d[0], cur.cy+d[1]
			if ng.IsBlocked(nx, ny) {
				continue
			}
			// Prevent diagonal corner-cutting through blocked cells.
			if d[0] != 0 && d[1] != 0 {
				if ng.IsBlocked(cur.cx+d[0], cur.cy) || ng.IsBlocked(cur.cx, cur.cy+d[1]) {
					continue
				}
			}
			nk := key(nx, ny)
			if closed[nk] {
				continue
			}
			cost := 1.0
			if d[0] != 0 && d[1] != 0 {
				cost = math.Sqrt2
			}
			g := cur.g + cost
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			node := &pathNode{cx: nx, cy: ny, g: g, h: heuristic(nx, ny, gcx, gcy), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

// snapCell maps a world point to its cell, falling back to the nearest
// walkable neighbor when the cell itself is blocked. Agents pressed
// against a wall would otherwise fail every path request.
func (ng *NavGrid) snapCell(wx, wy float64) (int, int) {
	cx, cy := WorldToCell(wx, wy)
	if !ng.IsBlocked(cx, cy) {
		return cx, cy
	}
	if r, ok := ng.RegionForPoint(wx, wy, cellSize, cellSize); ok {
		return r.Index % ng.cols, r.Index / ng.cols
	}
	return cx, cy
}

func buildPath(end *pathNode) [][2]float64 {
	var cells [][2]int
	for n := end; n != nil; n = n.parent {
		cells = append(cells, [2]int{n.cx, n.cy})
	}
	// Reverse
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	path := make([][2]float64, len(cells))
	for i, c := range cells {
		wx, wy := CellToWorld(c[0], c[1])
		path[i] = [2]float64{wx, wy}
	}
	return path
}

func pathLength(path [][2]float64) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += math.Hypot(path[i][0]-path[i-1][0], path[i][1]-path[i-1][1])
	}
	return total
}

// CostTable caches region-to-region travel costs so repeated "closest
// reachable item" queries do not re-run A* for pairs already seen.
type CostTable struct {
	nav   *NavGrid
	cache map[[2]int]float64
}

func NewCostTable(nav *NavGrid) *CostTable {
	return &CostTable{nav: nav, cache: make(map[[2]int]float64)}
}

// Cost returns the shortest-path length in world units between two
// regions, or +Inf when unreachable. Costs are symmetric; the cache key
// is normalized so both directions share one entry.
func (ct *CostTable) Cost(from, to Region) float64 {
	a, b := from.Index, to.Index
	if a > b {
		a, b = b, a
	}
	key := [2]int{a, b}
	if c, ok := ct.cache[key]; ok {
		return c
	}
	path := ct.nav.FindPath(from.CX, from.CY, to.CX, to.CY)
	c := math.Inf(1)
	if path != nil {
		c = pathLength(path)
	}
	ct.cache[key] = c
	return c
}
