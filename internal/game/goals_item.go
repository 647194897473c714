package game

import "math"

// GetHealthGoal walks to the closest reachable health pack and picks
// it up. "Closest" is by actual travel cost over the nav grid, not
// straight-line distance, so a pack behind a wall does not shadow a
// reachable one further away.
type GetHealthGoal struct {
	CompositeGoal
	item *HealthPack
}

func NewGetHealthGoal(owner *Agent) *GetHealthGoal {
	g := &GetHealthGoal{}
	g.owner = owner
	g.kind = KindGetHealth
	return g
}

func (g *GetHealthGoal) Activate() {
	g.status = GoalActive
	g.ClearSubgoals()

	g.item = g.owner.world.ClosestReachableHealthPack(g.owner)
	if g.item == nil {
		g.status = GoalFailed
		return
	}
	g.owner.path = nil
	g.AddSubgoal(NewFindPathGoal(g.owner, g.item.X, g.item.Y))
	g.AddSubgoal(NewFollowPathGoal(g.owner))
	g.AddSubgoal(NewPickupItemGoal(g.owner, g.item))
}

func (g *GetHealthGoal) Execute() {
	if g.status != GoalActive {
		return
	}

	// While walking, watch the pack whenever it is in sight: seeing it
	// taken means the trip is pointless, so fail fast and let the
	// replan find another pack. The check runs at the item-check
	// regulator's rate.
	if g.owner.regItem.Ready() && g.item != nil && !g.item.Active {
		if g.owner.vision.CanSee(g.owner.X, g.owner.Y, g.item.X, g.item.Y) {
			g.status = GoalFailed
		}
	}

	if g.status != GoalFailed {
		g.status = g.ExecuteSubgoals()
	}
	if g.status == GoalFailed {
		g.Activate()
	}
}

// pickupRadius is how close the agent must stand to collect an item.
const pickupRadius = 24.0

// PickupItemGoal is the terminal step of an item run: hold position at
// the item and collect it. Fails if the item was grabbed first.
type PickupItemGoal struct {
	baseGoal
	item         *HealthPack
	prevMaxSpeed float64
}

func NewPickupItemGoal(owner *Agent, item *HealthPack) *PickupItemGoal {
	return &PickupItemGoal{
		baseGoal: baseGoal{owner: owner, kind: KindPickupItem},
		item:     item,
	}
}

// Activate freezes the agent for the pickup: speed drops to zero until
// Terminate hands the old value back.
func (g *PickupItemGoal) Activate() {
	g.status = GoalActive
	g.prevMaxSpeed = g.owner.MaxSpeed
	g.owner.MaxSpeed = 0
	g.owner.steering.Stop()
}

func (g *PickupItemGoal) Execute() {
	if g.status != GoalActive {
		return
	}
	if !g.item.Active {
		g.status = GoalFailed
		return
	}
	d := math.Hypot(g.item.X-g.owner.X, g.item.Y-g.owner.Y)
	if d <= pickupRadius {
		g.owner.world.CollectHealthPack(g.owner, g.item)
		g.status = GoalCompleted
	}
}

func (g *PickupItemGoal) Terminate() {
	// A queued pickup that never activated has nothing to restore.
	if g.status == GoalInactive {
		return
	}
	g.owner.MaxSpeed = g.prevMaxSpeed
}
