package game

import "testing"

func TestFSM_SpottingEntersCombat(t *testing.T) {
	m := NewStateMachine()
	if m.State() != StateExploring {
		t.Fatalf("initial state %v, want exploring", m.State())
	}
	m.Dispatch(EventEnemySpotted)
	if m.State() != StateCombatPursuing {
		t.Fatalf("state %v after ENEMY_SPOTTED, want combat.attack.pursuing", m.State())
	}
}

func TestFSM_RunAndHuntToggleCombatSubstates(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventEnemySpotted)

	m.Dispatch(EventRun)
	if m.State() != StateCombatRetreating {
		t.Fatalf("state %v after RUN, want retreating", m.State())
	}
	m.Dispatch(EventHunt)
	if m.State() != StateCombatPursuing {
		t.Fatalf("state %v after HUNT, want pursuing", m.State())
	}
}

func TestFSM_EnemyLostReturnsToExploring(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventEnemySpotted)
	m.Dispatch(EventRun)
	m.Dispatch(EventEnemyLost)
	if m.State() != StateExploring {
		t.Fatalf("state %v after ENEMY_LOST, want exploring", m.State())
	}
}

func TestFSM_UnlistedEventIgnored(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventRun) // no RUN transition from exploring
	if m.State() != StateExploring {
		t.Fatalf("state %v, want unchanged exploring", m.State())
	}
}

func TestFSM_DeadIsTerminalUntilReset(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventEnemySpotted)
	m.Dispatch(EventKill)
	if m.State() != StateDead {
		t.Fatalf("state %v after KILL, want dead", m.State())
	}

	m.Dispatch(EventEnemySpotted)
	m.Dispatch(EventHunt)
	if m.State() != StateDead {
		t.Fatal("events moved the machine out of dead")
	}

	m.Reset()
	if m.State() != StateExploring {
		t.Fatalf("state %v after reset, want exploring", m.State())
	}
}

func TestFSM_DodgeEventsOnlyFlipContext(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventEnemySpotted)

	m.Dispatch(EventDodgeOn)
	if !m.Context().IsDodging {
		t.Fatal("IsDodging false after DODGE_ON")
	}
	if m.State() != StateCombatPursuing {
		t.Fatal("DODGE_ON changed the state")
	}
	m.Dispatch(EventDodgeOff)
	if m.Context().IsDodging {
		t.Fatal("IsDodging true after DODGE_OFF")
	}
}

func TestFSM_ResetClearsContext(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventDodgeOn)
	m.Reset()
	if m.Context().IsDodging {
		t.Fatal("context survived reset")
	}
}

func TestFSM_MatchesHierarchicalPrefix(t *testing.T) {
	m := NewStateMachine()
	m.Dispatch(EventEnemySpotted)

	for _, path := range []string{"combat", "combat.attack", "combat.attack.pursuing"} {
		if !m.Matches(path) {
			t.Fatalf("Matches(%q) false in combat.attack.pursuing", path)
		}
	}
	for _, path := range []string{"comb", "combat.attackX", "combat.attack.pursuing.x", "exploring"} {
		if m.Matches(path) {
			t.Fatalf("Matches(%q) true in combat.attack.pursuing", path)
		}
	}
}
