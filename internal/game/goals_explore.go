package game

// ExploreGoal sends the agent to a random walkable region: plan a path
// there, walk it, and when the composite finishes (or fails) re-plan
// toward a fresh region.
type ExploreGoal struct {
	CompositeGoal
}

func NewExploreGoal(owner *Agent) *ExploreGoal {
	g := &ExploreGoal{}
	g.owner = owner
	g.kind = KindExplore
	return g
}

func (g *ExploreGoal) Activate() {
	g.status = GoalActive
	g.ClearSubgoals()

	region, ok := g.owner.world.nav.RandomRegion(g.owner.world.rng)
	if !ok {
		g.status = GoalFailed
		return
	}
	g.owner.path = nil
	g.AddSubgoal(NewFindPathGoal(g.owner, region.CX, region.CY))
	g.AddSubgoal(NewFollowPathGoal(g.owner))
}

func (g *ExploreGoal) Execute() {
	g.status = g.ExecuteSubgoals()
	if g.status == GoalFailed {
		g.Activate()
	}
}
