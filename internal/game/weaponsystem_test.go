package game

import (
	"math"
	"testing"
)

// armedAgent builds a harness world with one red agent and returns it.
func armedAgent(t *testing.T) (*TestSim, *Agent) {
	t.Helper()
	ts := NewTestSim(
		WithArenaSize(640, 480),
		WithRedAgent(100, 100),
	)
	a := ts.Agent("R0")
	if a == nil {
		t.Fatal("harness did not create agent R0")
	}
	return ts, a
}

// rememberEnemyAt plants a visible memory record at the given distance
// straight east of the agent and refreshes the target system.
func rememberEnemyAt(a *Agent, distance float64) *Agent {
	e := &Agent{}
	r := a.memory.CreateRecord(e)
	r.LastSensedX = a.X + distance
	r.LastSensedY = a.Y
	r.TimeLastSensed = a.world.Time
	r.Visible = true
	a.targets.Update()
	return e
}

func TestWeaponSystem_ResetGivesReadyBlaster(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons

	cur := ws.CurrentWeapon()
	if cur == nil || cur.Type() != WeaponBlaster {
		t.Fatal("fresh loadout is not a blaster")
	}
	if cur.Status() != StatusReady {
		t.Fatalf("starting weapon status %v, want READY without an equip delay", cur.Status())
	}
}

func TestWeaponSystem_AddDuplicateConvertsToAmmo(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons

	ws.AddWeapon(WeaponShotgun)
	ws.AddWeapon(WeaponShotgun)

	sg := ws.Weapon(WeaponShotgun)
	if sg == nil {
		t.Fatal("shotgun not in inventory")
	}
	if sg.Ammo() != 24 {
		t.Fatalf("reserve %d after a duplicate pickup, want 18+6 capped at 24", sg.Ammo())
	}
	if len(ws.weapons) != 2 {
		t.Fatalf("inventory holds %d weapons, want 2", len(ws.weapons))
	}
}

func TestWeaponSystem_ChangePipelineHideSwapEquip(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons
	blaster := ws.CurrentWeapon()

	ws.AddWeapon(WeaponShotgun)
	ws.SetNextWeapon(WeaponShotgun)

	ws.Update(0)
	if blaster.Status() != StatusHide {
		t.Fatalf("blaster status %v after change request, want HIDE", blaster.Status())
	}
	if ws.CurrentWeapon() != blaster {
		t.Fatal("swapped before the holster finished")
	}

	ws.Update(0.3) // hide done, swap, equip starts
	sg := ws.CurrentWeapon()
	if sg.Type() != WeaponShotgun {
		t.Fatalf("current weapon %v after holster, want shotgun", sg.Type())
	}
	if sg.Status() != StatusEquip {
		t.Fatalf("shotgun status %v, want EQUIP", sg.Status())
	}

	ws.Update(0.8) // shotgun equip time is 0.5
	if sg.Status() != StatusReady {
		t.Fatalf("shotgun status %v after equipping, want READY", sg.Status())
	}
	if blaster.Status() != StatusUnready {
		t.Fatalf("blaster status %v while holstered, want UNREADY", blaster.Status())
	}
}

func TestWeaponSystem_EquipRestoresEmptyStatus(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons

	ws.AddWeapon(WeaponShotgun)
	sg := ws.Weapon(WeaponShotgun)
	sg.roundsLeft = 0
	sg.prevStatus = StatusEmpty

	ws.SetNextWeapon(WeaponShotgun)
	ws.Update(0)
	ws.Update(0.3)
	ws.Update(0.8)
	if sg.Status() != StatusEmpty {
		t.Fatalf("status %v after equipping a dry weapon, want EMPTY", sg.Status())
	}
}

func TestWeaponSystem_SetNextCurrentTypeIsNoop(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons

	ws.SetNextWeapon(WeaponBlaster)
	ws.Update(0)
	if ws.CurrentWeapon().Status() != StatusReady {
		t.Fatal("requesting the equipped type started a holster")
	}

	ws.SetNextWeapon(WeaponAssaultRifle) // not held
	ws.Update(0)
	if ws.CurrentWeapon().Status() != StatusReady {
		t.Fatal("requesting an unheld type started a holster")
	}
}

func TestWeaponSystem_SelectBestKeepsCurrentOnNarrowMargin(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons
	ws.AddWeapon(WeaponAssaultRifle)
	rememberEnemyAt(a, 30)

	// Up close both score the same raw desirability; the change cost
	// keeps the blaster in hand.
	ws.SelectBestWeapon()
	ws.Update(0)
	if ws.CurrentWeapon().Type() != WeaponBlaster {
		t.Fatalf("switched to %v for no real gain", ws.CurrentWeapon().Type())
	}
	if ws.CurrentWeapon().Status() != StatusReady {
		t.Fatal("pointless change pipeline started")
	}
}

func TestWeaponSystem_SelectsRifleAtLongRange(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons
	ws.AddWeapon(WeaponAssaultRifle)
	rememberEnemyAt(a, 350)

	ws.SelectBestWeapon()
	ws.Update(0)   // hide blaster
	ws.Update(0.3) // swap + equip rifle
	ws.Update(0.9) // rifle equip time is 0.6
	cur := ws.CurrentWeapon()
	if cur.Type() != WeaponAssaultRifle {
		t.Fatalf("current weapon %v at 350 units, want the rifle", cur.Type())
	}
	if cur.Status() != StatusReady {
		t.Fatalf("rifle status %v, want READY", cur.Status())
	}
}

func TestWeaponSystem_ShootFromReadyFiresProjectiles(t *testing.T) {
	ts, a := armedAgent(t)
	ws := a.weapons

	ws.Shoot(0, 300, 100)
	cur := ws.CurrentWeapon()
	if cur.RoundsLeft() != 11 {
		t.Fatalf("clip %d after one shot, want 11", cur.RoundsLeft())
	}
	if cur.Status() != StatusShot {
		t.Fatalf("status %v after firing, want SHOT", cur.Status())
	}
	if got := len(ts.World.Projectiles()); got != 1 {
		t.Fatalf("%d projectiles in flight, want 1", got)
	}
	if !ts.SimLog.HasEntry("combat", "shoot", "blaster") {
		t.Fatal("shot not logged")
	}
}

func TestWeaponSystem_ShootFromEmptyStartsReload(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons
	cur := ws.CurrentWeapon()
	cur.roundsLeft = 0
	cur.status = StatusEmpty

	ws.Shoot(0, 300, 100)
	if cur.Status() != StatusReload {
		t.Fatalf("status %v after a dry trigger pull, want RELOAD", cur.Status())
	}
}

func TestWeaponSystem_RemoveCurrentFallsBack(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons
	ws.AddWeapon(WeaponShotgun)

	ws.RemoveWeapon(WeaponBlaster)
	if ws.HasWeapon(WeaponBlaster) {
		t.Fatal("blaster still held after removal")
	}
	cur := ws.CurrentWeapon()
	if cur == nil || cur.Type() != WeaponShotgun {
		t.Fatal("did not fall back to the remaining weapon")
	}
}

func TestWeaponSystem_TotalStrengthAveragesInventory(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons

	// Blaster alone: (12+36)/(12+48) = 0.8, averaged over the three
	// weapon types with the two unheld ones counting as 0.
	if got := ws.TotalWeaponStrength(); got != 0.8/3 {
		t.Fatalf("strength %v with the starting blaster, want %v", got, 0.8/3)
	}

	// A dry shotgun contributes exactly what an unheld one does.
	ws.AddWeapon(WeaponShotgun)
	sg := ws.Weapon(WeaponShotgun)
	sg.roundsLeft = 0
	sg.ammo = 0
	if got := ws.TotalWeaponStrength(); got != 0.8/3 {
		t.Fatalf("strength %v with a dry shotgun added, want %v", got, 0.8/3)
	}

	// Full rack: blaster 0.8, reloaded shotgun 0.8, rifle 0.75.
	sg.roundsLeft = 6
	sg.ammo = 18
	ws.AddWeapon(WeaponAssaultRifle)
	if got := ws.TotalWeaponStrength(); math.Abs(got-(0.8+0.8+0.75)/3) > 1e-12 {
		t.Fatalf("strength %v with a full rack, want %v", got, (0.8+0.8+0.75)/3)
	}
}

func TestUpdateAimAndShot_WaitsOutReactionTime(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons

	e := rememberEnemyAt(a, 150)
	e.X, e.Y = a.X+150, a.Y
	a.memory.Record(e).TimeBecameVisible = 1.0

	// Aligned and in sight, but the sighting is too fresh.
	ws.UpdateAimAndShot(1.0+ws.ReactionTime-0.01, tickDT)
	if got := ws.CurrentWeapon().roundsLeft; got != 12 {
		t.Fatalf("%d rounds fired before the reaction time elapsed", 12-got)
	}
	if len(a.world.Projectiles()) != 0 {
		t.Fatal("projectile spawned before the reaction time elapsed")
	}

	// The gate is inclusive at exactly the reaction time.
	ws.UpdateAimAndShot(1.0+ws.ReactionTime, tickDT)
	if got := ws.CurrentWeapon().roundsLeft; got != 11 {
		t.Fatalf("clip at %d after the reaction time elapsed, want 11", got)
	}
	if len(a.world.Projectiles()) != 1 {
		t.Fatalf("%d projectiles after the shot, want 1", len(a.world.Projectiles()))
	}
}

func TestUpdateAimAndShot_NoiseBoundedByDistanceScale(t *testing.T) {
	_, a := armedAgent(t)
	ws := a.weapons
	wpn := ws.CurrentWeapon()

	e := rememberEnemyAt(a, 150)
	e.X, e.Y = a.X+150, a.Y
	a.memory.Record(e).TimeBecameVisible = 0

	// At 150 units the per-axis error caps at 12 * 150/300 = 6, so the
	// worst shot angle from a dead-east target is atan2(6, 144).
	maxAngle := math.Atan2(6, 144)
	sawNoise := false
	for i := 0; i < 48; i++ {
		wpn.status = StatusReady
		wpn.roundsLeft = wpn.roundsPerClip
		a.world.projectiles = nil

		ws.UpdateAimAndShot(10+float64(i), tickDT)
		ps := a.world.Projectiles()
		if len(ps) != 1 {
			t.Fatalf("shot %d spawned %d projectiles, want 1", i, len(ps))
		}
		ang := math.Atan2(ps[0].vy, ps[0].vx)
		if math.Abs(ang) > maxAngle+1e-9 {
			t.Fatalf("shot %d angle %v outside the noise bound %v", i, ang, maxAngle)
		}
		if ang != 0 {
			sawNoise = true
		}
	}
	if !sawNoise {
		t.Fatal("48 shots landed dead centre, aim noise never applied")
	}
}
