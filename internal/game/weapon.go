package game

import (
	"math"

	"github.com/Garsondee/Shooter-Sense/internal/fuzzy"
)

// WeaponType enumerates the weapons an agent can carry. At most one
// instance of each type exists per agent.
type WeaponType int

const (
	WeaponBlaster WeaponType = iota
	WeaponShotgun
	WeaponAssaultRifle
)

func (t WeaponType) String() string {
	switch t {
	case WeaponBlaster:
		return "blaster"
	case WeaponShotgun:
		return "shotgun"
	case WeaponAssaultRifle:
		return "assault_rifle"
	}
	return "unknown"
}

// WeaponStatus is the per-weapon state machine. Transitions are driven
// by explicit actions (shoot, reload, hide, equip) and by sim-time
// deadlines stored when the action started.
type WeaponStatus int

const (
	// StatusUnready: holstered, cannot act.
	StatusUnready WeaponStatus = iota
	// StatusReady: can fire.
	StatusReady
	// StatusShot: recovering from a shot.
	StatusShot
	// StatusReload: reloading the clip from reserve.
	StatusReload
	// StatusEmpty: clip empty, reserve available.
	StatusEmpty
	// StatusOutOfAmmo: clip and reserve both empty.
	StatusOutOfAmmo
	// StatusEquip: being drawn.
	StatusEquip
	// StatusHide: being holstered.
	StatusHide
)

func (s WeaponStatus) String() string {
	switch s {
	case StatusUnready:
		return "UNREADY"
	case StatusReady:
		return "READY"
	case StatusShot:
		return "SHOT"
	case StatusReload:
		return "RELOAD"
	case StatusEmpty:
		return "EMPTY"
	case StatusOutOfAmmo:
		return "OUT_OF_AMMO"
	case StatusEquip:
		return "EQUIP"
	case StatusHide:
		return "HIDE"
	}
	return "?"
}

// Weapon is one firearm in an agent's inventory: clip/reserve ammo
// bookkeeping, the status machine with its timers, ballistic
// parameters, and the fuzzy brain scoring how desirable the weapon is
// at a given engagement distance.
type Weapon struct {
	typ   WeaponType
	owner *Agent

	status WeaponStatus
	// prevStatus is restored when an equip completes, so a weapon
	// holstered while EMPTY comes back EMPTY, not READY.
	prevStatus WeaponStatus

	roundsLeft    int // rounds in the clip
	roundsPerClip int
	ammo          int // reserve rounds
	maxAmmo       int // reserve cap

	shotTime   float64 // seconds between shots
	reloadTime float64
	equipTime  float64
	hideTime   float64

	endTimeShot   float64
	endTimeReload float64
	endTimeEquip  float64
	endTimeHide   float64

	// Projectile parameters.
	muzzleSpeed float64
	damage      float64
	pellets     int     // projectiles per trigger pull
	spread      float64 // radians of per-pellet deviation

	brain *fuzzy.Module
}

// Weapon tuning. Distances in world units, times in seconds.
const (
	blasterClip    = 12
	blasterReserve = 36
	blasterMax     = 48

	shotgunClip    = 6
	shotgunReserve = 18
	shotgunMax     = 24

	rifleClip    = 30
	rifleReserve = 60
	rifleMax     = 90
)

func NewBlaster(owner *Agent) *Weapon {
	w := &Weapon{
		typ:           WeaponBlaster,
		owner:         owner,
		status:        StatusUnready,
		prevStatus:    StatusReady,
		roundsLeft:    blasterClip,
		roundsPerClip: blasterClip,
		ammo:          blasterReserve,
		maxAmmo:       blasterMax,
		shotTime:      0.6,
		reloadTime:    1.5,
		equipTime:     0.4,
		hideTime:      0.3,
		muzzleSpeed:   420,
		damage:        8,
		pellets:       1,
		spread:        0,
	}
	// The fallback weapon: acceptable everywhere, outstanding nowhere.
	w.initFuzzyBrain(40, 50, 40)
	return w
}

func NewShotgun(owner *Agent) *Weapon {
	w := &Weapon{
		typ:           WeaponShotgun,
		owner:         owner,
		status:        StatusUnready,
		prevStatus:    StatusReady,
		roundsLeft:    shotgunClip,
		roundsPerClip: shotgunClip,
		ammo:          shotgunReserve,
		maxAmmo:       shotgunMax,
		shotTime:      1.0,
		reloadTime:    2.2,
		equipTime:     0.5,
		hideTime:      0.4,
		muzzleSpeed:   520,
		damage:        4,
		pellets:       6,
		spread:        0.10,
	}
	// Dominant up close, near useless past medium range.
	w.initFuzzyBrain(90, 45, 10)
	return w
}

func NewAssaultRifle(owner *Agent) *Weapon {
	w := &Weapon{
		typ:           WeaponAssaultRifle,
		owner:         owner,
		status:        StatusUnready,
		prevStatus:    StatusReady,
		roundsLeft:    rifleClip,
		roundsPerClip: rifleClip,
		ammo:          rifleReserve,
		maxAmmo:       rifleMax,
		shotTime:      0.25,
		reloadTime:    1.8,
		equipTime:     0.6,
		hideTime:      0.5,
		muzzleSpeed:   620,
		damage:        10,
		pellets:       1,
		spread:        0.02,
	}
	// Takes over at medium and long range.
	w.initFuzzyBrain(40, 70, 85)
	return w
}

// NewWeaponOfType returns nil for an unknown type; callers log and
// skip.
func NewWeaponOfType(owner *Agent, t WeaponType) *Weapon {
	switch t {
	case WeaponBlaster:
		return NewBlaster(owner)
	case WeaponShotgun:
		return NewShotgun(owner)
	case WeaponAssaultRifle:
		return NewAssaultRifle(owner)
	}
	return nil
}

func (w *Weapon) Type() WeaponType     { return w.typ }
func (w *Weapon) Status() WeaponStatus { return w.status }
func (w *Weapon) RoundsLeft() int      { return w.roundsLeft }
func (w *Weapon) Ammo() int            { return w.ammo }

// fuzzyMaxRange is the upper edge of the engagement-distance domain
// fed to the weapon brains. Distances beyond it clamp to "far".
const fuzzyMaxRange = 400.0

// initFuzzyBrain builds the two-antecedent rule matrix for this
// weapon: engagement distance (close/medium/far) crossed with ammo
// fullness (low/okay/loads). The three scores pick the output set for
// the well-stocked rows in each distance band; the low-ammo row steps
// its consequence down one level.
func (w *Weapon) initFuzzyBrain(closeScore, mediumScore, farScore float64) {
	m := fuzzy.NewModule()

	dist := m.AddVariable("distanceToTarget")
	dClose := dist.Add(fuzzy.NewLeftShoulder(0, 60, 140))
	dMedium := dist.Add(fuzzy.NewTriangle(60, 140, 260))
	dFar := dist.Add(fuzzy.NewRightShoulder(140, 260, fuzzyMaxRange))

	full := float64(w.roundsPerClip)
	am := m.AddVariable("ammoStatus")
	aLow := am.Add(fuzzy.NewLeftShoulder(0, 0, full*0.4))
	aOkay := am.Add(fuzzy.NewTriangle(full*0.2, full*0.5, full*0.8))
	aLoads := am.Add(fuzzy.NewRightShoulder(full*0.5, full*0.8, full))

	des := m.AddVariable("desirability")
	undes := des.Add(fuzzy.NewLeftShoulder(0, 25, 50))
	desir := des.Add(fuzzy.NewTriangle(25, 50, 75))
	veryDes := des.Add(fuzzy.NewRightShoulder(50, 75, 100))

	pick := func(score float64) fuzzy.Set {
		switch {
		case score >= 60:
			return veryDes
		case score >= 30:
			return desir
		default:
			return undes
		}
	}
	// One level down for the low-ammo row.
	demote := func(s fuzzy.Set) fuzzy.Set {
		if s == veryDes {
			return desir
		}
		return undes
	}

	bands := []fuzzy.Set{dClose, dMedium, dFar}
	scores := []float64{closeScore, mediumScore, farScore}
	for i, db := range bands {
		well := pick(scores[i])
		m.AddRule(fuzzy.And(db, aLoads), well)
		m.AddRule(fuzzy.And(db, aOkay), well)
		m.AddRule(fuzzy.And(db, aLow), demote(well))
	}
	w.brain = m
}

// Desirability scores this weapon for an engagement at the given
// distance, normalized to [0,1]. A weapon with an empty clip scores 0
// without consulting the fuzzy brain.
func (w *Weapon) Desirability(distance float64) float64 {
	if w.roundsLeft == 0 {
		return 0
	}
	w.brain.Fuzzify("distanceToTarget", clamp(distance, 0, fuzzyMaxRange))
	w.brain.Fuzzify("ammoStatus", float64(w.roundsLeft))
	return w.brain.Defuzzify("desirability") / 100
}

// Update advances the status timers against sim time.
func (w *Weapon) Update(now float64) {
	switch w.status {
	case StatusShot:
		if now >= w.endTimeShot {
			w.status = w.statusForAmmo()
		}
	case StatusReload:
		if now >= w.endTimeReload {
			w.status = w.statusForAmmo()
		}
	case StatusEquip:
		if now >= w.endTimeEquip {
			w.status = w.prevStatus
		}
	case StatusHide:
		if now >= w.endTimeHide {
			w.status = StatusUnready
		}
	}
}

func (w *Weapon) statusForAmmo() WeaponStatus {
	if w.roundsLeft > 0 {
		return StatusReady
	}
	if w.ammo > 0 {
		return StatusEmpty
	}
	return StatusOutOfAmmo
}

// Shoot fires at the aimed point (noise already applied by the caller)
// and enters shot recovery. Only valid from READY; other statuses
// ignore the call.
func (w *Weapon) Shoot(now float64, tx, ty float64) {
	if w.status != StatusReady || w.roundsLeft <= 0 {
		return
	}
	w.roundsLeft--
	w.owner.world.fireProjectiles(w.owner, w, tx, ty)
	w.status = StatusShot
	w.endTimeShot = now + w.shotTime
}

// Reload moves rounds from reserve into the clip. Valid from READY or
// EMPTY; a reload with an empty reserve falls straight through to
// OUT_OF_AMMO when the timer expires.
func (w *Weapon) Reload(now float64) {
	if w.status != StatusReady && w.status != StatusEmpty {
		return
	}
	n := w.roundsPerClip - w.roundsLeft
	if n > w.ammo {
		n = w.ammo
	}
	w.ammo -= n
	w.roundsLeft += n
	w.status = StatusReload
	w.endTimeReload = now + w.reloadTime
}

// Hide holsters the weapon, remembering the status to restore on the
// next equip.
func (w *Weapon) Hide(now float64) {
	w.prevStatus = w.status
	if w.prevStatus == StatusHide || w.prevStatus == StatusEquip {
		w.prevStatus = w.statusForAmmo()
	}
	w.status = StatusHide
	w.endTimeHide = now + w.hideTime
}

// Equip starts drawing the weapon; on completion the pre-hide status
// is restored.
func (w *Weapon) Equip(now float64) {
	w.status = StatusEquip
	w.endTimeEquip = now + w.equipTime
}

// AddRounds adds picked-up ammo to the reserve, clamped to the cap.
func (w *Weapon) AddRounds(n int) {
	w.ammo += n
	if w.ammo > w.maxAmmo {
		w.ammo = w.maxAmmo
	}
	if w.status == StatusOutOfAmmo && w.ammo > 0 {
		w.status = StatusEmpty
	}
}

// Strength is the weapon's contribution to overall fighting power:
// total remaining rounds as a fraction of capacity.
func (w *Weapon) Strength() float64 {
	total := float64(w.roundsPerClip + w.maxAmmo)
	if total == 0 {
		return 0
	}
	return math.Min(1, float64(w.roundsLeft+w.ammo)/total)
}
