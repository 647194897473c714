package game

import "math"

// AttackGoal is the top-level combat plan: keep fighting the current
// target, either by engaging it directly (maintain distance, strafe)
// when it can be shot, or by hunting its last known position when it
// cannot. Completes as soon as the target system has nothing left.
type AttackGoal struct {
	CompositeGoal
}

func NewAttackGoal(owner *Agent) *AttackGoal {
	g := &AttackGoal{}
	g.owner = owner
	g.kind = KindAttack
	return g
}

func (g *AttackGoal) Activate() {
	g.status = GoalActive
	g.ClearSubgoals()

	if g.owner.targets.IsTargetShootable() {
		g.AddSubgoal(NewMaintainDistanceGoal(g.owner))
	} else {
		g.AddSubgoal(NewHuntGoal(g.owner))
	}
}

func (g *AttackGoal) Execute() {
	if !g.owner.targets.HasTarget() {
		g.status = GoalCompleted
		return
	}
	g.status = g.ExecuteSubgoals()
	if g.status == GoalFailed {
		g.Activate()
	}
}

// HuntGoal walks to the target's last sensed position. Regaining line
// of sight completes it immediately; arriving without finding the
// target forgets that enemy and forces a target refresh, so the agent
// does not hunt a ghost forever.
type HuntGoal struct {
	CompositeGoal
}

func NewHuntGoal(owner *Agent) *HuntGoal {
	g := &HuntGoal{}
	g.owner = owner
	g.kind = KindHunt
	return g
}

func (g *HuntGoal) Activate() {
	g.status = GoalActive
	g.ClearSubgoals()

	lx, ly, ok := g.owner.targets.LastSensedPosition()
	if !ok {
		g.status = GoalFailed
		return
	}
	g.owner.path = nil
	g.AddSubgoal(NewFindPathGoal(g.owner, lx, ly))
	g.AddSubgoal(NewFollowPathGoal(g.owner))
	g.owner.fsm.Dispatch(EventHunt)
}

func (g *HuntGoal) Execute() {
	if g.owner.targets.IsTargetShootable() {
		g.status = GoalCompleted
		return
	}

	g.status = g.ExecuteSubgoals()
	switch g.status {
	case GoalCompleted:
		// Reached the last known position and found nothing.
		if t := g.owner.targets.Target(); t != nil {
			g.owner.memory.DeleteRecord(t)
			g.owner.targets.Update()
		}
	case GoalFailed:
		g.Activate()
	}
}

// maintainDistanceTactic is the current spacing move.
type maintainDistanceTactic int

const (
	tacticApproach maintainDistanceTactic = iota
	tacticRetreat
	tacticStrafe
)

func (t maintainDistanceTactic) String() string {
	switch t {
	case tacticApproach:
		return "approach"
	case tacticRetreat:
		return "retreat"
	case tacticStrafe:
		return "strafe"
	}
	return "?"
}

// MaintainDistanceGoal keeps the owner inside its preferred engagement
// band around the target: approach when too far, retreat when too
// close, strafe when comfortable. It never completes on its own; the
// parent tears it down when the fight ends.
type MaintainDistanceGoal struct {
	CompositeGoal
	tactic       maintainDistanceTactic
	nextTacticAt float64
}

func NewMaintainDistanceGoal(owner *Agent) *MaintainDistanceGoal {
	g := &MaintainDistanceGoal{}
	g.owner = owner
	g.kind = KindMaintainDistance
	return g
}

func (g *MaintainDistanceGoal) Activate() {
	g.status = GoalActive
	g.ClearSubgoals()
	g.pickTactic()
}

// pickTactic decides the spacing move from the current distance to the
// target and pushes the subgoal implementing it. The seek points are
// placed relative to the desired distance, the midpoint of the
// engagement band: approach stops at 80% of it, retreat backs off by
// another 20% of it, and strafe swings out sideways by 30% of it.
func (g *MaintainDistanceGoal) pickTactic() {
	owner := g.owner
	tx, ty, ok := owner.targets.LastSensedPosition()
	if !ok {
		g.status = GoalFailed
		return
	}

	minR := owner.MinTacticRange
	maxR := owner.MaxTacticRange
	desired := (minR + maxR) / 2
	dx := owner.X - tx
	dy := owner.Y - ty
	dist := math.Hypot(dx, dy)
	away := 0.0
	if dist > 0 {
		away = math.Atan2(dy, dx)
	}

	g.ClearSubgoals()
	g.nextTacticAt = owner.world.Time + owner.TacticCooldown

	switch {
	case dist > maxR:
		g.tactic = tacticApproach
		px := tx + math.Cos(away)*desired*0.8
		py := ty + math.Sin(away)*desired*0.8
		g.pushSeekIfNavigable(px, py)
	case dist < minR:
		g.tactic = tacticRetreat
		px := owner.X + math.Cos(away)*desired*0.2
		py := owner.Y + math.Sin(away)*desired*0.2
		g.pushSeekIfNavigable(px, py)
		owner.fsm.Dispatch(EventRun)
	default:
		g.tactic = tacticStrafe
		g.AddSubgoal(NewDodgeGoal(owner, owner.world.rng.Intn(2) == 0, desired*0.3))
	}
}

func (g *MaintainDistanceGoal) pushSeekIfNavigable(px, py float64) {
	if _, ok := g.owner.world.nav.RegionForPoint(px, py, regionSearchExtent, regionSearchExtent); !ok {
		g.status = GoalFailed
		return
	}
	g.AddSubgoal(NewSeekToPositionGoal(g.owner, px, py))
}

func (g *MaintainDistanceGoal) Execute() {
	if g.status != GoalActive {
		return
	}

	// Re-evaluate spacing on the cooldown even mid-move; the target
	// is maneuvering too.
	if g.owner.world.Time >= g.nextTacticAt {
		g.pickTactic()
		if g.status == GoalFailed {
			g.Activate()
			return
		}
	}

	switch g.ExecuteSubgoals() {
	case GoalCompleted:
		// Spacing move done; immediately pick the next one.
		g.pickTactic()
	case GoalFailed:
		g.Activate()
	}
}
