package game

import "math"

// agentHitRadius is the body radius used for projectile hits.
const agentHitRadius = 8.0

// Projectile is one round in flight. Collision is swept per tick
// against walls and enemy bodies; the earlier hit wins.
type Projectile struct {
	X, Y   float64
	vx, vy float64
	damage float64
	owner  *Agent
	alive  bool
}

func newProjectile(owner *Agent, x, y, angle, speed, damage float64) *Projectile {
	return &Projectile{
		X:      x,
		Y:      y,
		vx:     math.Cos(angle) * speed,
		vy:     math.Sin(angle) * speed,
		damage: damage,
		owner:  owner,
		alive:  true,
	}
}

// Update advances the projectile one tick and resolves impacts.
func (p *Projectile) Update(w *World, dt float64) {
	if !p.alive {
		return
	}
	nx := p.X + p.vx*dt
	ny := p.Y + p.vy*dt

	wallT := math.Inf(1)
	if t, ok := segmentWallHit(p.X, p.Y, nx, ny, w.walls); ok {
		wallT = t
	}

	var victim *Agent
	victimT := math.Inf(1)
	for _, a := range w.Agents {
		if a == p.owner || !a.Alive() || a.team == p.owner.team {
			continue
		}
		if t, ok := segmentCircleHit(p.X, p.Y, nx, ny, a.X, a.Y, agentHitRadius); ok && t < victimT {
			victimT = t
			victim = a
		}
	}

	if victim != nil && victimT <= wallT {
		w.applyDamage(p.owner, victim, p.damage)
		p.alive = false
		return
	}
	if wallT <= 1 {
		p.alive = false
		return
	}

	p.X = nx
	p.Y = ny
	if p.X < 0 || p.Y < 0 || p.X > float64(w.Width) || p.Y > float64(w.Height) {
		p.alive = false
	}
}

// segmentCircleHit returns the smallest t in [0,1] where the segment
// (ox,oy)->(ex,ey) enters the circle at (cx,cy) with radius r.
func segmentCircleHit(ox, oy, ex, ey, cx, cy, r float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy
	fx := ox - cx
	fy := oy - cy

	a := dx*dx + dy*dy
	if a < 1e-12 {
		return 0, fx*fx+fy*fy <= r*r
	}
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r*r

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 >= 0 && t1 <= 1 {
		return t1, true
	}
	if t2 >= 0 && t2 <= 1 {
		// Started inside the circle.
		return 0, true
	}
	return 0, false
}
