package game

import "strings"

// FSMState is a node in the agent's high-level state chart. Combat
// states are nested under "combat.attack"; Matches does hierarchical
// prefix queries against the dotted path.
type FSMState int

const (
	StateExploring FSMState = iota
	StateMovement
	StateCombatPursuing
	StateCombatRetreating
	StateDead
)

func (s FSMState) Path() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateMovement:
		return "movement"
	case StateCombatPursuing:
		return "combat.attack.pursuing"
	case StateCombatRetreating:
		return "combat.attack.retreating"
	case StateDead:
		return "dead"
	}
	return "?"
}

// FSMEvent is an input to the state chart.
type FSMEvent int

const (
	EventEnemySpotted FSMEvent = iota
	EventEnemyLost
	EventHunt
	EventRun
	EventDodgeOn
	EventDodgeOff
	EventPointReached
	EventKill
)

func (e FSMEvent) String() string {
	switch e {
	case EventEnemySpotted:
		return "ENEMY_SPOTTED"
	case EventEnemyLost:
		return "ENEMY_LOST"
	case EventHunt:
		return "HUNT"
	case EventRun:
		return "RUN"
	case EventDodgeOn:
		return "DODGE_ON"
	case EventDodgeOff:
		return "DODGE_OFF"
	case EventPointReached:
		return "POINT_REACHED"
	case EventKill:
		return "KILL"
	}
	return "?"
}

// FSMContext carries flags that modulate behavior inside a state
// without being states themselves.
type FSMContext struct {
	IsDodging bool
}

type fsmKey struct {
	from  FSMState
	event FSMEvent
}

// fsmTransitions is the full transition table. Events not listed for
// the current state are ignored; KILL is terminal from everywhere and
// only a respawn Reset leaves dead.
var fsmTransitions = map[fsmKey]FSMState{
	{StateExploring, EventEnemySpotted}: StateCombatPursuing,
	{StateMovement, EventEnemySpotted}:  StateCombatPursuing,

	{StateCombatPursuing, EventRun}:    StateCombatRetreating,
	{StateCombatRetreating, EventHunt}: StateCombatPursuing,

	{StateCombatPursuing, EventEnemyLost}:   StateExploring,
	{StateCombatRetreating, EventEnemyLost}: StateExploring,

	{StateExploring, EventHunt}: StateCombatPursuing,

	{StateMovement, EventPointReached}: StateExploring,

	{StateExploring, EventKill}:        StateDead,
	{StateMovement, EventKill}:         StateDead,
	{StateCombatPursuing, EventKill}:   StateDead,
	{StateCombatRetreating, EventKill}: StateDead,
}

// StateMachine is the agent's high-level state chart, fed by the
// perception and goal layers and read back by them (and by the HUD).
type StateMachine struct {
	state FSMState
	ctx   FSMContext
}

func NewStateMachine() *StateMachine {
	return &StateMachine{state: StateExploring}
}

func (m *StateMachine) State() FSMState      { return m.state }
func (m *StateMachine) Context() *FSMContext { return &m.ctx }

// Dispatch feeds one event through the transition table. The dodge
// events only flip the context flag; they never change state.
func (m *StateMachine) Dispatch(e FSMEvent) {
	switch e {
	case EventDodgeOn:
		m.ctx.IsDodging = true
		return
	case EventDodgeOff:
		m.ctx.IsDodging = false
		return
	}
	if m.state == StateDead {
		return
	}
	if next, ok := fsmTransitions[fsmKey{m.state, e}]; ok {
		m.state = next
	}
}

// Matches reports whether the current state sits at or under the given
// dotted path: a machine in "combat.attack.pursuing" matches "combat",
// "combat.attack" and the full path, but not "combat.attackX".
func (m *StateMachine) Matches(path string) bool {
	cur := m.state.Path()
	if cur == path {
		return true
	}
	return strings.HasPrefix(cur, path+".")
}

// Reset returns to exploring with a clean context, e.g. on respawn.
func (m *StateMachine) Reset() {
	m.state = StateExploring
	m.ctx = FSMContext{}
}
