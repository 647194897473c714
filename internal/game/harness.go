package game

import (
	"math/rand"

	"github.com/Garsondee/Shooter-Sense/internal/config"
)

// TestSim is a headless simulation harness used exclusively by tests.
// It assembles a World from explicit pieces (walls, agents, packs at
// known positions) instead of the random arena generator, and supports
// deterministic seeding and structured logging.
type TestSim struct {
	World  *World
	SimLog *SimLog
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // arena size, walls, seed, config — applied first
	simOptAgent                      // add agents — applied after the nav grid is built
	simOptItem                       // place items — applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*World)
}

// WithArenaSize sets the playfield dimensions.
func WithArenaSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(world *World) {
		world.Width = w
		world.Height = h
	}}
}

// WithWall adds an obstacle rectangle.
func WithWall(x, y, w, h int) SimOption {
	return SimOption{simOptInfra, func(world *World) {
		world.walls = append(world.walls, rect{x: x, y: y, w: w, h: h})
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(world *World) {
		world.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(world *World) {
		world.SimLog = NewSimLog(v)
	}}
}

// WithConfig mutates the configuration before anything is built.
func WithConfig(mutate func(*config.Config)) SimOption {
	return SimOption{simOptInfra, func(world *World) {
		mutate(world.cfg)
	}}
}

// WithRedAgent adds a red team agent at (x, y).
func WithRedAgent(x, y float64) SimOption {
	return SimOption{simOptAgent, func(world *World) {
		world.addAgentAt(TeamRed, x, y)
	}}
}

// WithBlueAgent adds a blue team agent at (x, y).
func WithBlueAgent(x, y float64) SimOption {
	return SimOption{simOptAgent, func(world *World) {
		world.addAgentAt(TeamBlue, x, y)
	}}
}

// WithHealthPack places a health pack at (x, y).
func WithHealthPack(x, y float64) SimOption {
	return SimOption{simOptItem, func(world *World) {
		world.addHealthPackAt(x, y)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered
// passes:
//  1. Infrastructure (arena size, walls, seed, config tweaks)
//  2. Build the nav grid
//  3. Agents
//  4. Items
func NewTestSim(opts ...SimOption) *TestSim {
	world := newBareWorld(config.Default(), 1, false)
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(world)
		}
	}
	world.buildNav()
	for _, o := range opts {
		if o.kind == simOptAgent {
			o.fn(world)
		}
	}
	for _, o := range opts {
		if o.kind == simOptItem {
			o.fn(world)
		}
	}
	return &TestSim{World: world, SimLog: world.SimLog}
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.World.Update()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Update()
		if predicate(ts) {
			return ts.World.Tick
		}
	}
	return -1
}

// AllByTeam returns all agents for a given team.
func (ts *TestSim) AllByTeam(team Team) []*Agent {
	var out []*Agent
	for _, a := range ts.World.Agents {
		if a.team == team {
			out = append(out, a)
		}
	}
	return out
}

// Agent returns the agent with the given label, or nil.
func (ts *TestSim) Agent(label string) *Agent {
	for _, a := range ts.World.Agents {
		if a.label == label {
			return a
		}
	}
	return nil
}

// AgentSnapshot is a lightweight copy of an agent's state at a tick.
type AgentSnapshot struct {
	Label  string
	Team   Team
	X, Y   float64
	Health float64
	Alive  bool
	Plan   GoalKind
	State  FSMState
	Weapon WeaponType
}

// Snapshot returns the current state of all agents.
func (ts *TestSim) Snapshot() []AgentSnapshot {
	var out []AgentSnapshot
	for _, a := range ts.World.Agents {
		snap := AgentSnapshot{
			Label:  a.label,
			Team:   a.team,
			X:      a.X,
			Y:      a.Y,
			Health: a.Health,
			Alive:  a.alive,
			Plan:   a.brain.CurrentKind(),
			State:  a.fsm.State(),
		}
		if w := a.weapons.CurrentWeapon(); w != nil {
			snap.Weapon = w.typ
		}
		out = append(out, snap)
	}
	return out
}
