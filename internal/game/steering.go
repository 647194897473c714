package game

import "math"

// Steering moves an agent either straight at a seek point or along a
// waypoint path. Exactly one behavior is active at a time; goals
// activate one in Activate and release it in Terminate.
type Steering struct {
	owner *Agent

	active   bool
	path     [][2]float64
	waypoint int // index into path; seek mode uses a 1-element path
}

func NewSteering(owner *Agent) *Steering {
	return &Steering{owner: owner}
}

// Seek steers straight toward a single point.
func (s *Steering) Seek(x, y float64) {
	s.active = true
	s.path = [][2]float64{{x, y}}
	s.waypoint = 0
}

// FollowPath walks the given waypoints in order.
func (s *Steering) FollowPath(path [][2]float64) {
	s.active = len(path) > 0
	s.path = path
	s.waypoint = 0
}

// Stop deactivates steering; the agent coasts to a halt this tick.
func (s *Steering) Stop() {
	s.active = false
	s.path = nil
	s.waypoint = 0
}

func (s *Steering) Active() bool { return s.active }

// Arrived reports whether the final waypoint has been reached (within
// tolerance). False while inactive.
func (s *Steering) Arrived() bool {
	if !s.active || len(s.path) == 0 {
		return false
	}
	if s.waypoint < len(s.path)-1 {
		return false
	}
	last := s.path[len(s.path)-1]
	return math.Hypot(last[0]-s.owner.X, last[1]-s.owner.Y) <= arriveTolerance
}

// Update sets the owner's velocity for this tick: full speed toward
// the current waypoint, advancing through the path as waypoints are
// reached, zero when idle or arrived.
func (s *Steering) Update(dt float64) {
	owner := s.owner
	if !s.active || len(s.path) == 0 {
		owner.VX = 0
		owner.VY = 0
		return
	}

	// Advance past waypoints reached this tick. Intermediate waypoints
	// use a looser radius so the agent cuts corners instead of
	// stopping on every cell center.
	for s.waypoint < len(s.path)-1 {
		wp := s.path[s.waypoint]
		if math.Hypot(wp[0]-owner.X, wp[1]-owner.Y) > cellSize {
			break
		}
		s.waypoint++
	}

	wp := s.path[s.waypoint]
	dx := wp[0] - owner.X
	dy := wp[1] - owner.Y
	dist := math.Hypot(dx, dy)
	if dist <= arriveTolerance && s.waypoint == len(s.path)-1 {
		owner.VX = 0
		owner.VY = 0
		return
	}

	speed := owner.MaxSpeed
	// Do not overshoot the final waypoint.
	if s.waypoint == len(s.path)-1 && dist < speed*dt {
		speed = dist / dt
	}
	owner.VX = dx / dist * speed
	owner.VY = dy / dist * speed
}
