package game

import (
	"fmt"
	"math"
)

type Team int

const (
	TeamRed Team = iota
	TeamBlue
)

func (t Team) String() string {
	if t == TeamRed {
		return "red"
	}
	return "blue"
}

// AgentStats accumulates per-life-and-beyond scorekeeping.
type AgentStats struct {
	Kills      int
	Deaths     int
	ShotsFired int
	Hits       int
	PacksTaken int
}

// underAttackMemory is how long, in seconds, an agent keeps treating a
// recent hit as "someone is shooting at me from over there".
const underAttackMemory = 2.0

// Agent is one bot: body state, perception and memory, an arbitrated
// goal tree, a weapon inventory and a high-level state chart. All its
// heavier subsystems run behind individual rate regulators so the
// per-tick cost stays flat.
type Agent struct {
	id    int
	label string // e.g. "R0", "B2"
	team  Team
	world *World

	X, Y    float64
	VX, VY  float64
	Heading float64 // radians, 0 = +x

	MaxSpeed  float64
	Health    float64
	MaxHealth float64

	TurnRate     float64 // radians per second
	AimTolerance float64 // radians; counts as aligned within this

	MinTacticRange float64
	MaxTacticRange float64
	TacticCooldown float64

	alive     bool
	respawnAt float64
	spawnX    float64
	spawnY    float64

	memory   *MemorySystem
	targets  *TargetSystem
	vision   *Vision
	weapons  *WeaponSystem
	brain    *Brain
	fsm      *StateMachine
	steering *Steering

	// path is the shared scratch written by path requests and read by
	// path following.
	path [][2]float64

	regVision *Regulator
	regTarget *Regulator
	regGoal   *Regulator
	regWeapon *Regulator
	regItem   *Regulator

	// Suspected-attacker tracking, fed by incoming damage.
	underAttack      bool
	attackerX        float64
	attackerY        float64
	underAttackUntil float64

	// Previous-tick observations for edge-triggered event dispatch.
	prevShootable bool
	prevHadTarget bool
	prevPlan      GoalKind
	prevWeapon    WeaponType
	wasFollowing  bool

	Stats AgentStats
}

func NewAgent(w *World, id int, team Team, x, y float64) *Agent {
	bc := w.cfg.Bot
	prefix := "R"
	if team == TeamBlue {
		prefix = "B"
	}
	a := &Agent{
		id:             id,
		label:          fmt.Sprintf("%s%d", prefix, id),
		team:           team,
		world:          w,
		X:              x,
		Y:              y,
		spawnX:         x,
		spawnY:         y,
		MaxSpeed:       bc.MaxSpeed,
		Health:         bc.MaxHealth,
		MaxHealth:      bc.MaxHealth,
		TurnRate:       bc.TurnRate,
		AimTolerance:   bc.AimTolerance,
		MinTacticRange: bc.MinTacticRange,
		MaxTacticRange: bc.MaxTacticRange,
		TacticCooldown: bc.TacticCooldown,
		alive:          true,
		prevPlan:       KindThink,
	}

	a.memory = NewMemorySystem(a, bc.MemorySpan)
	a.targets = NewTargetSystem(a)
	a.vision = NewVision(w.nav, bc.FieldOfView*math.Pi/180, bc.VisionRange)
	a.weapons = NewWeaponSystem(a, bc.ReactionTime, bc.AimAccuracy)
	a.steering = NewSteering(a)
	a.fsm = NewStateMachine()

	a.brain = NewBrain(a)
	ec := w.cfg.Evaluators
	a.brain.AddEvaluator(&ExploreEvaluator{Bias: ec.ExploreBias})
	a.brain.AddEvaluator(&GetHealthEvaluator{Bias: ec.GetHealthBias})
	if ec.AttackEnabled {
		a.brain.AddEvaluator(&AttackEvaluator{Bias: ec.AttackBias})
	}

	rc := w.cfg.Regulators
	a.regVision = NewRegulator(rc.VisionHz)
	a.regTarget = NewRegulator(rc.TargetHz)
	a.regGoal = NewRegulator(rc.GoalArbitrateHz)
	a.regWeapon = NewRegulator(rc.WeaponSelectHz)
	a.regItem = NewRegulator(rc.ItemCheckHz)

	a.prevWeapon = a.weapons.CurrentWeapon().typ
	return a
}

func (a *Agent) ID() int                { return a.id }
func (a *Agent) Label() string          { return a.label }
func (a *Agent) Team() Team             { return a.team }
func (a *Agent) Alive() bool            { return a.alive }
func (a *Agent) Memory() *MemorySystem  { return a.memory }
func (a *Agent) Targets() *TargetSystem { return a.targets }
func (a *Agent) Weapons() *WeaponSystem { return a.weapons }
func (a *Agent) Brain() *Brain          { return a.brain }
func (a *Agent) FSM() *StateMachine     { return a.fsm }
func (a *Agent) VisionSense() *Vision   { return a.vision }
func (a *Agent) Path() [][2]float64     { return a.path }

// Update advances the agent one tick. Subsystem order matters: sense,
// target, think, arm, move.
func (a *Agent) Update(dt float64) {
	now := a.world.Time

	if !a.alive {
		if now >= a.respawnAt {
			a.respawn()
		}
		return
	}

	if a.underAttack && now >= a.underAttackUntil {
		a.underAttack = false
	}

	if a.regVision.Ready() {
		a.updateVision(now)
	}
	if a.regTarget.Ready() {
		a.updateTargeting()
	}

	if a.regGoal.Ready() {
		a.brain.Arbitrate()
	}
	a.brain.Execute()
	a.logPlanChange()

	a.weapons.Update(now)
	if a.regWeapon.Ready() && a.targets.HasTarget() {
		a.weapons.SelectBestWeapon()
	}
	a.logWeaponChange()
	a.weapons.UpdateAimAndShot(now, dt)

	a.steering.Update(dt)
	a.integrate(dt)
	a.dispatchMovementEvents()
}

// updateVision refreshes memory records for every living enemy. Only
// the visibility edge from hidden to visible stamps TimeBecameVisible;
// continued visibility refreshes position and TimeLastSensed alone.
func (a *Agent) updateVision(now float64) {
	for _, other := range a.world.Agents {
		if other == a || other.team == a.team || !other.alive {
			continue
		}
		visible := a.vision.CheckFieldOfView(a.X, a.Y, a.Heading, other.X, other.Y)
		if visible {
			r := a.memory.Record(other)
			if r == nil {
				r = a.memory.CreateRecord(other)
			}
			if !r.Visible {
				r.TimeBecameVisible = now
			}
			r.Visible = true
			r.TimeLastSensed = now
			r.LastSensedX = other.X
			r.LastSensedY = other.Y
		} else if r := a.memory.Record(other); r != nil {
			r.Visible = false
		}
	}
}

// updateTargeting re-picks the target and feeds visibility edges into
// the state chart.
func (a *Agent) updateTargeting() {
	a.targets.Update()

	shootable := a.targets.IsTargetShootable()
	has := a.targets.HasTarget()

	if shootable && !a.prevShootable {
		a.fsm.Dispatch(EventEnemySpotted)
		if t := a.targets.Target(); t != nil {
			a.world.log(a, "target", "spotted", t.label, 0)
		}
	}
	if !has && a.prevHadTarget {
		a.fsm.Dispatch(EventEnemyLost)
		a.world.log(a, "target", "lost", "", 0)
	}

	a.prevShootable = shootable
	a.prevHadTarget = has
}

// integrate applies velocity with axis-separated wall sliding against
// the nav grid.
func (a *Agent) integrate(dt float64) {
	nav := a.world.nav

	nx := a.X + a.VX*dt
	if cx, cy := WorldToCell(nx, a.Y); !nav.IsBlocked(cx, cy) {
		a.X = nx
	}
	ny := a.Y + a.VY*dt
	if cx, cy := WorldToCell(a.X, ny); !nav.IsBlocked(cx, cy) {
		a.Y = ny
	}

	a.X = clamp(a.X, 1, float64(a.world.Width)-1)
	a.Y = clamp(a.Y, 1, float64(a.world.Height)-1)
}

// dispatchMovementEvents mirrors steering activity into the state
// chart while out of combat.
func (a *Agent) dispatchMovementEvents() {
	following := a.steering.Active()
	if a.wasFollowing && !following {
		a.fsm.Dispatch(EventPointReached)
	}
	a.wasFollowing = following
}

// RotateTo turns toward the point (tx, ty) at the turn rate and
// reports whether the heading is now within the aim tolerance.
func (a *Agent) RotateTo(tx, ty, dt float64) bool {
	return a.RotateToHeading(HeadingTo(a.X, a.Y, tx, ty), dt)
}

// RotateToHeading turns toward an absolute heading, shortest way
// round.
func (a *Agent) RotateToHeading(target, dt float64) bool {
	diff := normalizeAngle(target - a.Heading)
	maxStep := a.TurnRate * dt
	if math.Abs(diff) <= maxStep {
		a.Heading = target
	} else if diff > 0 {
		a.Heading = normalizeAngle(a.Heading + maxStep)
	} else {
		a.Heading = normalizeAngle(a.Heading - maxStep)
	}
	return math.Abs(normalizeAngle(target-a.Heading)) <= a.AimTolerance
}

// respawn brings the agent back at its spawn point with full health, a
// clean mind and the starting loadout.
func (a *Agent) respawn() {
	a.alive = true
	a.Health = a.MaxHealth
	a.X = a.spawnX
	a.Y = a.spawnY
	a.VX = 0
	a.VY = 0
	a.path = nil
	a.underAttack = false

	a.memory.Clear()
	a.targets.Reset()
	a.weapons.Reset()
	a.brain.Reset()
	a.fsm.Reset()
	a.steering.Stop()

	a.regVision.Reset()
	a.regTarget.Reset()
	a.regGoal.Reset()
	a.regWeapon.Reset()
	a.regItem.Reset()

	a.prevShootable = false
	a.prevHadTarget = false
	a.prevPlan = KindThink
	a.prevWeapon = a.weapons.CurrentWeapon().typ

	a.world.log(a, "state", "respawn", "", 0)
}

func (a *Agent) logPlanChange() {
	plan := a.brain.CurrentKind()
	if plan != a.prevPlan {
		a.world.log(a, "goal", "plan_change", fmt.Sprintf("%s → %s", a.prevPlan, plan), 0)
		a.prevPlan = plan
	}
}

func (a *Agent) logWeaponChange() {
	cur := a.weapons.CurrentWeapon()
	if cur != nil && cur.typ != a.prevWeapon {
		a.world.log(a, "weapon", "change", fmt.Sprintf("%s → %s", a.prevWeapon, cur.typ), 0)
		a.prevWeapon = cur.typ
	}
}
