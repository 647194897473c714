package game

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Shooter-Sense/internal/config"
	"github.com/Garsondee/Shooter-Sense/pkg/logger"
)

type rect struct {
	x int
	y int
	w int
	h int
}

const (
	agentRadius = 8
	tickDT      = 1.0 / baseFramesPerSecond
)

// World is the deathmatch arena: walls, nav grid, agents on two teams,
// health packs and projectiles in flight. It owns sim time and the
// deferred task queue; one call to Update is one fixed tick.
type World struct {
	Width  int
	Height int

	cfg   *config.Config
	walls []rect
	nav   *NavGrid
	costs *CostTable

	Agents      []*Agent
	packs       []*HealthPack
	projectiles []*Projectile

	tasks *TaskQueue
	rng   *rand.Rand

	Tick int
	Time float64

	SimLog *SimLog
}

// NewWorld builds an arena from config. The same seed yields the same
// walls, spawns and combat rolls.
func NewWorld(cfg *config.Config, seed int64, verboseLog bool) *World {
	w := &World{
		Width:  cfg.Arena.Width,
		Height: cfg.Arena.Height,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		tasks:  NewTaskQueue(),
		SimLog: NewSimLog(verboseLog),
	}

	w.generateWalls(cfg.Arena.WallCount)
	w.buildNav()

	w.spawnAgents(cfg.Arena.BotsPerTeam)
	w.placeHealthPacks(cfg.Items.HealthPackCount)

	logger.Get().WithField("seed", seed).
		WithField("walls", len(w.walls)).
		WithField("agents", len(w.Agents)).
		Info("world built")
	return w
}

// newBareWorld creates a world with no walls, agents or packs and no
// nav grid yet; the test harness assembles those explicitly.
func newBareWorld(cfg *config.Config, seed int64, verboseLog bool) *World {
	return &World{
		Width:  cfg.Arena.Width,
		Height: cfg.Arena.Height,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		tasks:  NewTaskQueue(),
		SimLog: NewSimLog(verboseLog),
	}
}

// buildNav (re)builds the nav grid and cost table from current walls.
func (w *World) buildNav() {
	w.nav = NewNavGrid(w.Width, w.Height, w.walls, agentRadius)
	w.costs = NewCostTable(w.nav)
}

func (w *World) addAgentAt(team Team, x, y float64) *Agent {
	id := 0
	for _, a := range w.Agents {
		if a.team == team {
			id++
		}
	}
	a := NewAgent(w, id, team, x, y)
	w.Agents = append(w.Agents, a)
	return a
}

func (w *World) addHealthPackAt(x, y float64) *HealthPack {
	p := &HealthPack{ID: len(w.packs), X: x, Y: y, Active: true}
	w.packs = append(w.packs, p)
	return p
}

func (w *World) Walls() []rect              { return w.walls }
func (w *World) Nav() *NavGrid              { return w.nav }
func (w *World) HealthPacks() []*HealthPack { return w.packs }
func (w *World) Projectiles() []*Projectile { return w.projectiles }
func (w *World) Rand() *rand.Rand           { return w.rng }

// generateWalls scatters non-overlapping wall segments, keeping the
// spawn strips along the left and right edges clear.
func (w *World) generateWalls(count int) {
	const spawnStrip = 3 * cellSize
	for attempts := 0; len(w.walls) < count && attempts < count*30; attempts++ {
		horizontal := w.rng.Intn(2) == 0
		segW, segH := cellSize, cellSize
		length := (2 + w.rng.Intn(8)) * cellSize
		if horizontal {
			segW = length
		} else {
			segH = length
		}
		x := spawnStrip + w.rng.Intn(w.Width-2*spawnStrip-segW)
		y := w.rng.Intn(w.Height - segH)
		r := rect{x: x, y: y, w: segW, h: segH}
		if w.overlapsAny(r) {
			continue
		}
		w.walls = append(w.walls, r)
	}
}

func (w *World) overlapsAny(r rect) bool {
	// Padding keeps corridors at least one agent wide.
	pad := 3 * agentRadius
	for _, o := range w.walls {
		if r.x-pad < o.x+o.w && r.x+r.w+pad > o.x &&
			r.y-pad < o.y+o.h && r.y+r.h+pad > o.y {
			return true
		}
	}
	return false
}

// spawnAgents lines each team up along its own edge of the arena.
func (w *World) spawnAgents(perTeam int) {
	for i := 0; i < perTeam; i++ {
		frac := float64(i+1) / float64(perTeam+1)
		y := frac * float64(w.Height)

		rx, ry := w.nearestSpawn(1.5*cellSize, y)
		w.Agents = append(w.Agents, NewAgent(w, i, TeamRed, rx, ry))

		bx, by := w.nearestSpawn(float64(w.Width)-1.5*cellSize, y)
		w.Agents = append(w.Agents, NewAgent(w, i, TeamBlue, bx, by))
	}
}

func (w *World) nearestSpawn(x, y float64) (float64, float64) {
	if r, ok := w.nav.RegionForPoint(x, y, float64(w.Width)/4, float64(w.Height)/4); ok {
		return r.CX, r.CY
	}
	return x, y
}

// placeHealthPacks drops packs on random walkable regions, away from
// both spawn edges.
func (w *World) placeHealthPacks(count int) {
	for id := 0; id < count; id++ {
		for attempt := 0; attempt < 50; attempt++ {
			region, ok := w.nav.RandomRegion(w.rng)
			if !ok {
				return
			}
			if region.CX < float64(w.Width)/5 || region.CX > float64(w.Width)*4/5 {
				continue
			}
			w.packs = append(w.packs, &HealthPack{ID: id, X: region.CX, Y: region.CY, Active: true})
			break
		}
	}
}

// Update advances the sim one fixed tick.
func (w *World) Update() {
	w.Tick++
	w.Time += tickDT

	w.tasks.Drain()

	for _, p := range w.packs {
		p.Update(w.Time)
	}

	for _, a := range w.Agents {
		a.Update(tickDT)
	}

	alive := w.projectiles[:0]
	for _, p := range w.projectiles {
		p.Update(w, tickDT)
		if p.alive {
			alive = append(alive, p)
		}
	}
	w.projectiles = alive
}

// fireProjectiles spawns the rounds for one trigger pull of the given
// weapon, aimed at (tx, ty).
func (w *World) fireProjectiles(shooter *Agent, weapon *Weapon, tx, ty float64) {
	base := math.Atan2(ty-shooter.Y, tx-shooter.X)
	for i := 0; i < weapon.pellets; i++ {
		angle := base
		if weapon.spread > 0 {
			angle += (w.rng.Float64()*2 - 1) * weapon.spread
		}
		// Muzzle sits just outside the shooter's own hit radius.
		mx := shooter.X + math.Cos(angle)*(agentHitRadius+2)
		my := shooter.Y + math.Sin(angle)*(agentHitRadius+2)
		w.projectiles = append(w.projectiles, newProjectile(shooter, mx, my, angle, weapon.muzzleSpeed, weapon.damage))
	}
	shooter.Stats.ShotsFired++
	w.log(shooter, "combat", "shoot", weapon.typ.String(), float64(weapon.roundsLeft))
}

// applyDamage lands a hit, marks the victim as under attack from the
// shooter's direction, and resolves a kill.
func (w *World) applyDamage(shooter, victim *Agent, damage float64) {
	if !victim.alive {
		return
	}
	victim.Health -= damage
	victim.underAttack = true
	victim.attackerX = shooter.X
	victim.attackerY = shooter.Y
	victim.underAttackUntil = w.Time + underAttackMemory
	shooter.Stats.Hits++
	w.log(victim, "combat", "hit", "by "+shooter.label, damage)

	if victim.Health <= 0 {
		w.kill(shooter, victim)
	}
}

func (w *World) kill(shooter, victim *Agent) {
	victim.alive = false
	victim.Health = 0
	victim.respawnAt = w.Time + w.cfg.Arena.RespawnDelay
	victim.fsm.Dispatch(EventKill)
	victim.brain.Reset()
	victim.steering.Stop()
	victim.Stats.Deaths++
	shooter.Stats.Kills++
	w.log(victim, "combat", "death", "by "+shooter.label, 0)

	// The dead drop out of everyone's memory; the respawned agent is
	// treated as a brand new sighting.
	for _, a := range w.Agents {
		if a == victim {
			continue
		}
		if a.memory.HasRecord(victim) {
			a.memory.DeleteRecord(victim)
			a.targets.Update()
		}
	}
}

// CollectHealthPack heals the collector to full and starts the pack's
// respawn timer.
func (w *World) CollectHealthPack(a *Agent, pack *HealthPack) {
	if !pack.Active {
		return
	}
	a.Health = a.MaxHealth
	a.Stats.PacksTaken++
	pack.Deactivate(w.Time, w.cfg.Items.HealthPackRespawn)
	w.log(a, "item", "pickup", "health_pack", float64(pack.ID))
}

// ClosestReachableHealthPack finds the active pack with the lowest
// travel cost from the agent, or nil when none is reachable.
func (w *World) ClosestReachableHealthPack(a *Agent) *HealthPack {
	from, ok := w.nav.RegionForPoint(a.X, a.Y, regionSearchExtent, regionSearchExtent)
	if !ok {
		return nil
	}
	var best *HealthPack
	bestCost := math.Inf(1)
	for _, p := range w.packs {
		if !p.Active {
			continue
		}
		to, ok := w.nav.RegionForPoint(p.X, p.Y, regionSearchExtent, regionSearchExtent)
		if !ok {
			continue
		}
		if c := w.costs.Cost(from, to); c < bestCost {
			bestCost = c
			best = p
		}
	}
	return best
}

// VisibleHealthPack returns the nearest active pack the agent has
// direct line of sight to, or nil.
func (w *World) VisibleHealthPack(a *Agent) *HealthPack {
	var best *HealthPack
	bestD := math.Inf(1)
	for _, p := range w.packs {
		if !p.Active {
			continue
		}
		if !a.vision.CanSee(a.X, a.Y, p.X, p.Y) {
			continue
		}
		d := math.Hypot(p.X-a.X, p.Y-a.Y)
		if d < bestD {
			bestD = d
			best = p
		}
	}
	return best
}

// CanMoveTo reports whether the straight run from (fx,fy) to (tx,ty)
// stays on walkable ground.
func (w *World) CanMoveTo(fx, fy, tx, ty float64) bool {
	if _, ok := w.nav.RegionForPoint(tx, ty, 0, 0); !ok {
		return false
	}
	return w.nav.Raycast(fx, fy, tx, ty) >= 1
}

// AliveCount returns how many agents of the team are currently alive.
func (w *World) AliveCount(team Team) int {
	n := 0
	for _, a := range w.Agents {
		if a.team == team && a.alive {
			n++
		}
	}
	return n
}

func (w *World) log(a *Agent, category, key, value string, numVal float64) {
	w.SimLog.Add(w.Tick, a.label, a.team.String(), category, key, value, numVal)
}
