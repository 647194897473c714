package game

// Evaluator scores the desirability of one top-level activity in
// [0,1] (scaled by a per-agent character bias) and knows how to
// install that activity as the brain's plan. SetGoal must be a no-op
// when the plan is already running, or in-flight subgoal work gets
// thrown away every arbitration.
type Evaluator interface {
	Desirability(a *Agent) float64
	SetGoal(a *Agent)
}

// ExploreEvaluator keeps a small constant pressure to roam, halved
// while an explore plan is already running so anything with real
// urgency wins the arbitration.
type ExploreEvaluator struct {
	Bias float64
}

func (e *ExploreEvaluator) Desirability(a *Agent) float64 {
	d := 0.1
	if a.brain.CurrentKind() == KindExplore {
		d = 0.05
	}
	return clamp01(d * e.Bias)
}

func (e *ExploreEvaluator) SetGoal(a *Agent) {
	if a.brain.CurrentKind() == KindExplore {
		return
	}
	a.brain.ClearSubgoals()
	a.brain.AddSubgoal(NewExploreGoal(a))
}

// GetHealthEvaluator urges a health run hard below half health,
// mildly when a pack is visibly available anyway, and keeps a token
// background interest otherwise.
type GetHealthEvaluator struct {
	Bias float64
}

func (e *GetHealthEvaluator) Desirability(a *Agent) float64 {
	var d float64
	switch {
	case a.Health < a.MaxHealth*0.5:
		d = 0.8
	case a.world.VisibleHealthPack(a) != nil:
		d = 0.5
	default:
		d = 0.04
	}
	return clamp01(d * e.Bias)
}

func (e *GetHealthEvaluator) SetGoal(a *Agent) {
	if a.brain.CurrentKind() == KindGetHealth {
		return
	}
	a.brain.ClearSubgoals()
	a.brain.AddSubgoal(NewGetHealthGoal(a))
}

// AttackEvaluator scores fighting by current fighting power: zero
// without a target, otherwise total weapon strength scaled by health.
// A starved or wounded agent backs off and lets the health evaluator
// take over.
type AttackEvaluator struct {
	Bias float64
}

func (e *AttackEvaluator) Desirability(a *Agent) float64 {
	if !a.targets.HasTarget() {
		return 0
	}
	return clamp01(e.Bias * a.weapons.TotalWeaponStrength() * HealthRatio(a))
}

func (e *AttackEvaluator) SetGoal(a *Agent) {
	if a.brain.CurrentKind() == KindAttack {
		return
	}
	a.brain.ClearSubgoals()
	a.brain.AddSubgoal(NewAttackGoal(a))
}

// Brain is the root of an agent's goal tree: a composite whose single
// subgoal is the currently arbitrated top-level plan.
type Brain struct {
	CompositeGoal
	evaluators []Evaluator
}

func NewBrain(owner *Agent) *Brain {
	b := &Brain{}
	b.owner = owner
	b.kind = KindThink
	b.status = GoalActive
	return b
}

func (b *Brain) AddEvaluator(e Evaluator) {
	b.evaluators = append(b.evaluators, e)
}

// CurrentKind reports the kind of the running top-level plan, or
// KindThink when idle.
func (b *Brain) CurrentKind() GoalKind {
	if g := b.CurrentSubgoal(); g != nil {
		return g.Kind()
	}
	return KindThink
}

// Arbitrate asks every evaluator for a score and installs the winner's
// plan. Ties keep the earlier-registered evaluator.
func (b *Brain) Arbitrate() {
	var best Evaluator
	bestScore := -1.0
	for _, e := range b.evaluators {
		if d := e.Desirability(b.owner); d > bestScore {
			bestScore = d
			best = e
		}
	}
	if best != nil {
		best.SetGoal(b.owner)
	}
}

func (b *Brain) Activate() { b.status = GoalActive }

// Execute runs the current plan for one tick.
func (b *Brain) Execute() {
	b.ExecuteSubgoals()
	b.status = GoalActive
}

// Reset tears the whole plan down, e.g. on death.
func (b *Brain) Reset() {
	b.ClearSubgoals()
	b.status = GoalActive
}
