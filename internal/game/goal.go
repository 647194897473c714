package game

// GoalStatus is the lifecycle state of a goal.
type GoalStatus int

const (
	GoalInactive GoalStatus = iota
	GoalActive
	GoalCompleted
	GoalFailed
)

func (s GoalStatus) String() string {
	switch s {
	case GoalInactive:
		return "inactive"
	case GoalActive:
		return "active"
	case GoalCompleted:
		return "completed"
	case GoalFailed:
		return "failed"
	}
	return "?"
}

// GoalKind discriminates goal types without reflection. Evaluators use
// it to check what the brain is already doing before swapping plans.
type GoalKind int

const (
	KindThink GoalKind = iota
	KindExplore
	KindAttack
	KindHunt
	KindMaintainDistance
	KindGetHealth
	KindPickupItem
	KindFindPath
	KindFollowPath
	KindSeek
	KindDodge
)

func (k GoalKind) String() string {
	switch k {
	case KindThink:
		return "think"
	case KindExplore:
		return "explore"
	case KindAttack:
		return "attack"
	case KindHunt:
		return "hunt"
	case KindMaintainDistance:
		return "maintain_distance"
	case KindGetHealth:
		return "get_health"
	case KindPickupItem:
		return "pickup_item"
	case KindFindPath:
		return "find_path"
	case KindFollowPath:
		return "follow_path"
	case KindSeek:
		return "seek"
	case KindDodge:
		return "dodge"
	}
	return "?"
}

// Goal is one node of an agent's behavior tree. Activate runs exactly
// once per activation before the first Execute; a goal whose status is
// reset to inactive is re-activated on its next turn. Terminate
// releases whatever the goal holds (steering targets, speed overrides)
// and must be safe to call in any state.
type Goal interface {
	Activate()
	Execute()
	Terminate()
	Kind() GoalKind
	Status() GoalStatus
	SetStatus(GoalStatus)
}

type baseGoal struct {
	owner  *Agent
	kind   GoalKind
	status GoalStatus
}

func (g *baseGoal) Kind() GoalKind         { return g.kind }
func (g *baseGoal) Status() GoalStatus     { return g.status }
func (g *baseGoal) SetStatus(s GoalStatus) { g.status = s }

// CompositeGoal owns an ordered queue of subgoals executed strictly
// front to back: only the front goal runs each tick, and it is removed
// once completed or failed.
type CompositeGoal struct {
	baseGoal
	subgoals []Goal
}

// AddSubgoal appends to the back of the queue. Push subgoals in the
// order they should run.
func (c *CompositeGoal) AddSubgoal(g Goal) {
	c.subgoals = append(c.subgoals, g)
}

// ClearSubgoals terminates and drops every subgoal, front first.
func (c *CompositeGoal) ClearSubgoals() {
	for _, g := range c.subgoals {
		g.Terminate()
	}
	c.subgoals = nil
}

// CurrentSubgoal returns the front of the queue, or nil.
func (c *CompositeGoal) CurrentSubgoal() Goal {
	if len(c.subgoals) == 0 {
		return nil
	}
	return c.subgoals[0]
}

// ExecuteSubgoals pops finished subgoals off the front, runs the new
// front (activating it first if needed), and reports the composite's
// own resulting status: completed only when the last subgoal finishes,
// failed as soon as the front goal fails, active otherwise.
func (c *CompositeGoal) ExecuteSubgoals() GoalStatus {
	for len(c.subgoals) > 0 {
		front := c.subgoals[0]
		if front.Status() != GoalCompleted && front.Status() != GoalFailed {
			break
		}
		front.Terminate()
		c.subgoals = c.subgoals[1:]
	}

	if len(c.subgoals) == 0 {
		return GoalCompleted
	}

	front := c.subgoals[0]
	if front.Status() == GoalInactive {
		front.Activate()
	}
	front.Execute()

	switch front.Status() {
	case GoalCompleted:
		if len(c.subgoals) > 1 {
			return GoalActive
		}
		return GoalCompleted
	case GoalFailed:
		return GoalFailed
	default:
		return GoalActive
	}
}

// Terminate default for composites: release the whole subtree.
func (c *CompositeGoal) Terminate() {
	c.ClearSubgoals()
}
