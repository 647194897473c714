package game

import (
	"math"

	"github.com/Garsondee/Shooter-Sense/pkg/logger"
)

// arriveTolerance is how close, in world units, an agent must get to a
// waypoint or seek target to count as arrived.
const arriveTolerance = 6.0

// FindPathGoal requests a path from the owner's position to a
// destination. The request is asynchronous: activation enqueues it on
// the world's task queue and the goal stays active, doing nothing,
// until the callback resolves it. The callback re-checks the goal
// state first, so a path arriving after the goal was terminated (the
// brain re-planned meanwhile) is discarded instead of clobbering the
// owner's current path.
type FindPathGoal struct {
	baseGoal
	toX, toY   float64
	superseded bool
}

func NewFindPathGoal(owner *Agent, toX, toY float64) *FindPathGoal {
	return &FindPathGoal{
		baseGoal: baseGoal{owner: owner, kind: KindFindPath},
		toX:      toX,
		toY:      toY,
	}
}

func (g *FindPathGoal) Activate() {
	g.status = GoalActive
	w := g.owner.world
	if w.nav == nil {
		logger.Get().Warn("path request with no nav grid")
		g.status = GoalFailed
		return
	}
	owner := g.owner
	fromX, fromY := owner.X, owner.Y
	w.tasks.Enqueue(func() {
		if g.superseded || g.status != GoalActive {
			return
		}
		path := w.nav.FindPath(fromX, fromY, g.toX, g.toY)
		if path == nil {
			g.status = GoalFailed
			return
		}
		owner.path = path
		g.status = GoalCompleted
	})
}

// Execute waits; the task callback moves the status.
func (g *FindPathGoal) Execute() {}

func (g *FindPathGoal) Terminate() {
	g.superseded = true
}

// FollowPathGoal walks the owner's current path, waypoint by waypoint,
// and completes on reaching the final one. Fails on activation when no
// path is stored.
type FollowPathGoal struct {
	baseGoal
}

func NewFollowPathGoal(owner *Agent) *FollowPathGoal {
	return &FollowPathGoal{baseGoal: baseGoal{owner: owner, kind: KindFollowPath}}
}

func (g *FollowPathGoal) Activate() {
	g.status = GoalActive
	if len(g.owner.path) == 0 {
		g.status = GoalFailed
		return
	}
	g.owner.steering.FollowPath(g.owner.path)
}

func (g *FollowPathGoal) Execute() {
	if g.status != GoalActive {
		return
	}
	if g.owner.steering.Arrived() {
		g.status = GoalCompleted
	}
}

func (g *FollowPathGoal) Terminate() {
	g.owner.steering.Stop()
}

// SeekToPositionGoal steers straight at a point and completes on
// arrival. The point is assumed navigable; callers validate it against
// the nav grid before pushing the goal.
type SeekToPositionGoal struct {
	baseGoal
	x, y float64
}

func NewSeekToPositionGoal(owner *Agent, x, y float64) *SeekToPositionGoal {
	return &SeekToPositionGoal{
		baseGoal: baseGoal{owner: owner, kind: KindSeek},
		x:        x,
		y:        y,
	}
}

func (g *SeekToPositionGoal) Activate() {
	g.status = GoalActive
	g.owner.steering.Seek(g.x, g.y)
}

func (g *SeekToPositionGoal) Execute() {
	if g.status != GoalActive {
		return
	}
	if g.owner.steering.Arrived() {
		g.status = GoalCompleted
	}
}

func (g *SeekToPositionGoal) Terminate() {
	g.owner.steering.Stop()
}

// DodgeGoal strafes laterally across the line to the current target,
// flipping direction each time the strafe point is reached or the way
// is blocked, for as long as the target stays shootable. A restart
// drops back to inactive so the next execute re-activates with the
// other direction.
type DodgeGoal struct {
	baseGoal
	right  bool
	offset float64
}

func NewDodgeGoal(owner *Agent, right bool, offset float64) *DodgeGoal {
	return &DodgeGoal{
		baseGoal: baseGoal{owner: owner, kind: KindDodge},
		right:    right,
		offset:   offset,
	}
}

func (g *DodgeGoal) strafePoint(right bool) (float64, float64, bool) {
	owner := g.owner
	tx, ty, ok := owner.targets.LastSensedPosition()
	if !ok {
		return 0, 0, false
	}
	angle := math.Atan2(ty-owner.Y, tx-owner.X)
	perp := angle + math.Pi/2
	if !right {
		perp = angle - math.Pi/2
	}
	px := owner.X + math.Cos(perp)*g.offset
	py := owner.Y + math.Sin(perp)*g.offset
	if !owner.world.CanMoveTo(owner.X, owner.Y, px, py) {
		return 0, 0, false
	}
	return px, py, true
}

func (g *DodgeGoal) Activate() {
	g.status = GoalActive
	px, py, ok := g.strafePoint(g.right)
	if !ok {
		// Wall on this side; try the other before giving up.
		g.right = !g.right
		px, py, ok = g.strafePoint(g.right)
		if !ok {
			g.status = GoalFailed
			return
		}
	}
	g.owner.steering.Seek(px, py)
	g.owner.fsm.Dispatch(EventDodgeOn)
}

func (g *DodgeGoal) Execute() {
	if g.status != GoalActive {
		return
	}
	if !g.owner.targets.IsTargetShootable() {
		g.status = GoalCompleted
		return
	}
	if g.owner.steering.Arrived() {
		// Swap sides and restart the oscillation.
		g.right = !g.right
		g.status = GoalInactive
	}
}

func (g *DodgeGoal) Terminate() {
	g.owner.steering.Stop()
	g.owner.fsm.Dispatch(EventDodgeOff)
}
