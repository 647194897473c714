package game

import "testing"

// targetFixture wires just enough of an agent for TargetSystem: a world
// clock and a memory system.
func targetFixture(now float64) *Agent {
	w := &World{Time: now}
	a := &Agent{world: w}
	a.memory = NewMemorySystem(a, 5)
	a.targets = NewTargetSystem(a)
	return a
}

func sense(a *Agent, e *Agent, x, y, when float64, visible bool) *MemoryRecord {
	r := a.memory.CreateRecord(e)
	r.LastSensedX = x
	r.LastSensedY = y
	r.TimeLastSensed = when
	r.Visible = visible
	return r
}

func TestTarget_VisibleBeatsCloserRemembered(t *testing.T) {
	a := targetFixture(10)
	far := &Agent{}
	near := &Agent{}
	sense(a, far, 50, 0, 10, true)
	sense(a, near, 1, 0, 10, false)

	a.targets.Update()
	if a.targets.Target() != far {
		t.Fatal("remembered enemy selected over a visible one")
	}
	if !a.targets.IsTargetShootable() {
		t.Fatal("visible target reported not shootable")
	}
}

func TestTarget_NearestVisibleWins(t *testing.T) {
	a := targetFixture(10)
	far := &Agent{}
	near := &Agent{}
	sense(a, far, 100, 0, 10, true)
	sense(a, near, 30, 0, 10, true)

	a.targets.Update()
	if a.targets.Target() != near {
		t.Fatal("farther visible enemy selected")
	}
}

func TestTarget_MostRecentRememberedFallback(t *testing.T) {
	a := targetFixture(10)
	stale := &Agent{}
	fresh := &Agent{}
	sense(a, stale, 5, 0, 6, false)
	sense(a, fresh, 500, 0, 9, false)

	a.targets.Update()
	if a.targets.Target() != fresh {
		t.Fatal("less recently sensed enemy selected")
	}
	if a.targets.IsTargetShootable() {
		t.Fatal("hidden target reported shootable")
	}
	if x, y, ok := a.targets.LastSensedPosition(); !ok || x != 500 || y != 0 {
		t.Fatalf("LastSensedPosition = (%v, %v, %v), want (500, 0, true)", x, y, ok)
	}
}

func TestTarget_ExpiredRecordsYieldNoTarget(t *testing.T) {
	a := targetFixture(20)
	sense(a, &Agent{}, 5, 0, 10, true) // 10s old, span 5

	a.targets.Update()
	if a.targets.HasTarget() {
		t.Fatal("expired record produced a target")
	}
	if _, _, ok := a.targets.LastSensedPosition(); ok {
		t.Fatal("LastSensedPosition ok with no target")
	}
	if a.targets.TimeLastSensed() != -1 {
		t.Fatal("TimeLastSensed sentinel not -1 with no target")
	}
	if a.targets.TimeBecameVisible() != -1 {
		t.Fatal("TimeBecameVisible sentinel not -1 with no target")
	}
}

func TestTarget_ResetDropsTarget(t *testing.T) {
	a := targetFixture(10)
	sense(a, &Agent{}, 5, 0, 10, true)

	a.targets.Update()
	if !a.targets.HasTarget() {
		t.Fatal("setup failed: no target after update")
	}
	a.targets.Reset()
	if a.targets.HasTarget() {
		t.Fatal("target survived Reset")
	}
}
