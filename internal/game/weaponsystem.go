package game

import (
	"math"

	"github.com/Garsondee/Shooter-Sense/pkg/logger"
)

const (
	// weaponChangeCost is subtracted from the desirability of every
	// weapon that is not currently equipped. Without this hysteresis
	// agents oscillate between two weapons whose scores cross near a
	// band boundary.
	weaponChangeCost = 0.2

	// aimNoiseMaxDistance is where aim error stops growing with range.
	aimNoiseMaxDistance = 300.0
)

// WeaponSystem owns an agent's inventory, the current/next weapon
// change pipeline, best-weapon selection, and the aim-and-fire step.
type WeaponSystem struct {
	owner *Agent

	weapons []*Weapon
	byType  map[WeaponType]*Weapon
	current *Weapon

	nextType WeaponType
	hasNext  bool

	// ReactionTime is the delay, in seconds, between a target becoming
	// visible and the first allowed shot at it.
	ReactionTime float64
	// AimAccuracy is the maximum aim error in world units at
	// aimNoiseMaxDistance.
	AimAccuracy float64
}

func NewWeaponSystem(owner *Agent, reactionTime, aimAccuracy float64) *WeaponSystem {
	ws := &WeaponSystem{
		owner:        owner,
		ReactionTime: reactionTime,
		AimAccuracy:  aimAccuracy,
	}
	ws.Reset()
	return ws
}

// Reset restores the loadout to a single blaster, immediately READY.
// The usual equip transition is skipped so a respawned agent is never
// defenseless while drawing its starting weapon.
func (ws *WeaponSystem) Reset() {
	ws.weapons = nil
	ws.byType = make(map[WeaponType]*Weapon)
	ws.hasNext = false

	b := NewBlaster(ws.owner)
	b.status = StatusReady
	ws.weapons = append(ws.weapons, b)
	ws.byType[WeaponBlaster] = b
	ws.current = b
}

// AddWeapon puts a weapon of the given type into the inventory. If the
// type is already held, the pickup is converted into reserve ammo
// instead; there is at most one instance per type.
func (ws *WeaponSystem) AddWeapon(t WeaponType) {
	if held, ok := ws.byType[t]; ok {
		held.AddRounds(held.roundsPerClip)
		return
	}
	w := NewWeaponOfType(ws.owner, t)
	if w == nil {
		logger.Get().WithField("type", int(t)).Warn("ignoring unknown weapon type")
		return
	}
	ws.weapons = append(ws.weapons, w)
	ws.byType[t] = w
}

// RemoveWeapon drops the weapon of the given type. Removing the
// current weapon falls back to the first remaining one.
func (ws *WeaponSystem) RemoveWeapon(t WeaponType) {
	w, ok := ws.byType[t]
	if !ok {
		return
	}
	delete(ws.byType, t)
	for i, held := range ws.weapons {
		if held == w {
			ws.weapons = append(ws.weapons[:i], ws.weapons[i+1:]...)
			break
		}
	}
	if ws.current == w {
		ws.current = nil
		if len(ws.weapons) > 0 {
			ws.current = ws.weapons[0]
		}
	}
}

func (ws *WeaponSystem) CurrentWeapon() *Weapon { return ws.current }

func (ws *WeaponSystem) HasWeapon(t WeaponType) bool {
	_, ok := ws.byType[t]
	return ok
}

func (ws *WeaponSystem) Weapon(t WeaponType) *Weapon { return ws.byType[t] }

// SetNextWeapon requests a change to the given type. Requesting the
// type already equipped is a no-op, as is requesting a type not held.
func (ws *WeaponSystem) SetNextWeapon(t WeaponType) {
	if ws.current != nil && ws.current.typ == t {
		return
	}
	if _, ok := ws.byType[t]; !ok {
		return
	}
	ws.nextType = t
	ws.hasNext = true
}

// Update runs one tick of the weapon layer: per-weapon status timers
// and the hide-swap-equip change pipeline.
func (ws *WeaponSystem) Update(now float64) {
	for _, w := range ws.weapons {
		w.Update(now)
	}
	ws.updateWeaponChange(now)
}

// updateWeaponChange drives a pending change through hide, swap,
// equip. The hide only starts from a settled status; an in-flight
// shot, reload or equip finishes first.
func (ws *WeaponSystem) updateWeaponChange(now float64) {
	if !ws.hasNext || ws.current == nil {
		return
	}
	switch ws.current.status {
	case StatusReady, StatusEmpty, StatusOutOfAmmo:
		ws.current.Hide(now)
	case StatusUnready:
		next := ws.byType[ws.nextType]
		ws.hasNext = false
		if next == nil {
			// Weapon vanished between request and swap; re-draw what
			// we have.
			logger.Get().Warn("next weapon no longer held, re-equipping current")
			ws.current.Equip(now)
			return
		}
		ws.current = next
		ws.current.Equip(now)
	}
}

// SelectBestWeapon scores every held weapon for the current engagement
// distance and requests a change to the winner. Weapons with empty
// clips score zero; every non-equipped weapon pays the change cost.
// No-op without a target.
func (ws *WeaponSystem) SelectBestWeapon() {
	tx, ty, ok := ws.owner.targets.LastSensedPosition()
	if !ok {
		return
	}
	distance := math.Hypot(tx-ws.owner.X, ty-ws.owner.Y)

	var best *Weapon
	bestScore := math.Inf(-1)
	for _, w := range ws.weapons {
		score := w.Desirability(distance)
		if w != ws.current {
			score -= weaponChangeCost
		}
		if score > bestScore {
			bestScore = score
			best = w
		}
	}
	if best != nil {
		ws.SetNextWeapon(best.typ)
	}
}

// Shoot pulls the trigger on the current weapon: READY fires at the
// aimed point, EMPTY starts a reload, anything else ignores the pull.
func (ws *WeaponSystem) Shoot(now, tx, ty float64) {
	w := ws.current
	if w == nil {
		return
	}
	switch w.status {
	case StatusReady:
		w.Shoot(now, tx, ty)
	case StatusEmpty:
		w.Reload(now)
	}
}

// ReloadCurrent starts a reload if the current weapon allows one.
func (ws *WeaponSystem) ReloadCurrent(now float64) {
	if ws.current != nil {
		ws.current.Reload(now)
	}
}

// UpdateAimAndShot turns the owner toward its target and fires when
// aligned, the target is shootable, and the reaction time since the
// target became visible has elapsed. Aim error grows linearly with
// distance up to aimNoiseMaxDistance.
func (ws *WeaponSystem) UpdateAimAndShot(now, dt float64) {
	owner := ws.owner
	ts := owner.targets

	if !ts.HasTarget() {
		// Nothing remembered. Face a suspected attacker if hit
		// recently, otherwise look along the direction of travel.
		if owner.underAttack {
			owner.RotateTo(owner.attackerX, owner.attackerY, dt)
		} else if owner.VX != 0 || owner.VY != 0 {
			owner.RotateToHeading(math.Atan2(owner.VY, owner.VX), dt)
		}
		return
	}

	if ts.IsTargetShootable() {
		target := ts.Target()
		aligned := owner.RotateTo(target.X, target.Y, dt)
		if aligned && now-ts.TimeBecameVisible() >= ws.ReactionTime {
			d := math.Hypot(target.X-owner.X, target.Y-owner.Y)
			scale := math.Min(d, aimNoiseMaxDistance) / aimNoiseMaxDistance
			rng := owner.world.rng
			nx := (rng.Float64()*2 - 1) * ws.AimAccuracy * scale
			nyy := (rng.Float64()*2 - 1) * ws.AimAccuracy * scale
			ws.Shoot(now, target.X+nx, target.Y+nyy)
		}
		return
	}

	// Target remembered but hidden: watch the suspected attacker
	// direction when under fire, else the last sensed position.
	if owner.underAttack {
		owner.RotateTo(owner.attackerX, owner.attackerY, dt)
	} else if lx, ly, ok := ts.LastSensedPosition(); ok {
		owner.RotateTo(lx, ly, dt)
	}
}

// TotalWeaponStrength is the mean ammo ratio across all three weapon
// types, counting an unheld type as 0. A blaster-only agent therefore
// scores well below an agent with a full rack.
func (ws *WeaponSystem) TotalWeaponStrength() float64 {
	types := [...]WeaponType{WeaponBlaster, WeaponShotgun, WeaponAssaultRifle}
	total := 0.0
	for _, t := range types {
		if w, ok := ws.byType[t]; ok {
			total += w.Strength()
		}
	}
	return clamp01(total / float64(len(types)))
}

// IndividualWeaponStrength is the ammo ratio of one weapon type, 0
// when that type is not held.
func (ws *WeaponSystem) IndividualWeaponStrength(t WeaponType) float64 {
	w, ok := ws.byType[t]
	if !ok {
		return 0
	}
	return w.Strength()
}
