package game

import "math"

// regionSearchExtent is the half-extent, in world units, used when
// snapping a viewer to the navigable surface before a sight check.
const regionSearchExtent = 2 * cellSize

// Vision performs field-of-view and line-of-sight checks against the
// nav grid. FieldOfView is the full cone angle in radians; Range is
// the sight distance in world units.
type Vision struct {
	nav         *NavGrid
	FieldOfView float64
	Range       float64
}

func NewVision(nav *NavGrid, fieldOfView, sightRange float64) *Vision {
	return &Vision{nav: nav, FieldOfView: fieldOfView, Range: sightRange}
}

// CheckFieldOfView reports whether the point (tx, ty) falls inside the
// viewer's sight cone at (ox, oy) facing heading. The distance gate
// compares squared distance against range²/2, so the effective radius
// is range/√2 rather than range; all sight tuning assumes this
// tightened cone, so do not "fix" the gate in isolation.
func (v *Vision) CheckFieldOfView(ox, oy, heading, tx, ty float64) bool {
	dx := tx - ox
	dy := ty - oy
	distSq := dx*dx + dy*dy
	if distSq > v.Range*v.Range/2 {
		return false
	}
	angle := math.Atan2(dy, dx)
	if math.Abs(normalizeAngle(angle-heading)) > v.FieldOfView/2 {
		return false
	}
	return v.CanSee(ox, oy, tx, ty)
}

// CanSee is the pure line-of-sight check, ignoring cone and range.
// The viewer must stand on (or near) the navigable surface; a viewer
// with no region within the search extent sees nothing.
func (v *Vision) CanSee(ox, oy, tx, ty float64) bool {
	if _, ok := v.nav.RegionForPoint(ox, oy, regionSearchExtent, regionSearchExtent); !ok {
		return false
	}
	return v.nav.Raycast(ox, oy, tx, ty) >= 1
}

// HeadingTo returns the angle in radians from (ox,oy) toward (tx,ty).
func HeadingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
