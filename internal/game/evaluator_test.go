package game

import (
	"math"
	"testing"
)

func TestExploreEvaluator_HalvedWhileRoaming(t *testing.T) {
	_, a := armedAgent(t)
	e := &ExploreEvaluator{Bias: 1}

	if got := e.Desirability(a); got != 0.1 {
		t.Fatalf("idle desirability %v, want 0.1", got)
	}
	a.brain.AddSubgoal(NewExploreGoal(a))
	if got := e.Desirability(a); got != 0.05 {
		t.Fatalf("desirability %v while already roaming, want 0.05", got)
	}
}

func TestGetHealthEvaluator_UrgentWhenWounded(t *testing.T) {
	_, a := armedAgent(t)
	e := &GetHealthEvaluator{Bias: 1}

	a.Health = a.MaxHealth * 0.4
	if got := e.Desirability(a); got != 0.8 {
		t.Fatalf("wounded desirability %v, want 0.8", got)
	}
}

func TestGetHealthEvaluator_OpportunisticWhenPackVisible(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(640, 480),
		WithRedAgent(100, 100),
		WithHealthPack(250, 100),
	)
	a := ts.Agent("R0")
	e := &GetHealthEvaluator{Bias: 1}

	if got := e.Desirability(a); got != 0.5 {
		t.Fatalf("desirability %v with a visible pack at full health, want 0.5", got)
	}

	ts.World.HealthPacks()[0].Active = false
	if got := e.Desirability(a); got != 0.04 {
		t.Fatalf("desirability %v with no pack available, want 0.04", got)
	}
}

func TestAttackEvaluator_ScalesWithStrengthAndHealth(t *testing.T) {
	_, a := armedAgent(t)
	e := &AttackEvaluator{Bias: 1}

	if got := e.Desirability(a); got != 0 {
		t.Fatalf("desirability %v without a target, want 0", got)
	}

	rememberEnemyAt(a, 150)
	// Starting blaster alone across three weapon slots: 0.8/3.
	if got := e.Desirability(a); math.Abs(got-0.8/3) > 1e-9 {
		t.Fatalf("desirability %v with a target, want %v", got, 0.8/3)
	}

	a.Health = a.MaxHealth * 0.5
	if got := e.Desirability(a); math.Abs(got-0.4/3) > 1e-9 {
		t.Fatalf("desirability %v at half health, want %v", got, 0.4/3)
	}
}

func TestBrain_ArbitrateInstallsAttackPlan(t *testing.T) {
	_, a := armedAgent(t)
	rememberEnemyAt(a, 150)

	a.brain.Arbitrate()
	if a.brain.CurrentKind() != KindAttack {
		t.Fatalf("plan %v with a live target, want attack", a.brain.CurrentKind())
	}

	// Re-arbitrating with the same winner must not rebuild the plan.
	installed := a.brain.CurrentSubgoal()
	a.brain.Arbitrate()
	if a.brain.CurrentSubgoal() != installed {
		t.Fatal("arbitration rebuilt an already-running plan")
	}
}

func TestBrain_ArbitrateFallsBackToExplore(t *testing.T) {
	_, a := armedAgent(t)

	a.brain.Arbitrate()
	if a.brain.CurrentKind() != KindExplore {
		t.Fatalf("plan %v with nothing to do, want explore", a.brain.CurrentKind())
	}
}
