package game

import "math"

// segmentWallHit returns the smallest segment parameter t in [0,1]
// where the line from (ox,oy)->(ex,ey) enters any wall. Used for
// projectile flight, which tests the exact wall rectangles rather
// than the padded nav grid.
func segmentWallHit(ox, oy, ex, ey float64, walls []rect) (float64, bool) {
	bestT := math.Inf(1)
	hit := false
	for _, b := range walls {
		if t, ok := rayAABBHitT(ox, oy, ex, ey,
			float64(b.x), float64(b.y),
			float64(b.x+b.w), float64(b.y+b.h)); ok && t < bestT {
			bestT = t
			hit = true
		}
	}
	return bestT, hit
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// Check X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Check Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}

	if tMin < 0 {
		tMin = 0
	}

	return tMin, true
}
