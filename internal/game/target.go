package game

// TargetSystem picks one memory record as the agent's current target.
// Policy: nearest currently-visible enemy wins; with nothing visible,
// the most recently sensed remembered enemy is hunted instead.
type TargetSystem struct {
	owner  *Agent
	record *MemoryRecord
}

func NewTargetSystem(owner *Agent) *TargetSystem {
	return &TargetSystem{owner: owner}
}

// Update re-selects the target from the owner's fresh memory records.
// Runs at the target regulator's rate, not every tick.
func (t *TargetSystem) Update() {
	t.record = nil

	records := t.owner.memory.ValidRecords(t.owner.world.Time)

	var (
		bestVisible *MemoryRecord
		bestDistSq  float64
		bestHidden  *MemoryRecord
	)
	for _, r := range records {
		if r.Visible {
			dx := r.LastSensedX - t.owner.X
			dy := r.LastSensedY - t.owner.Y
			d := dx*dx + dy*dy
			if bestVisible == nil || d < bestDistSq {
				bestVisible = r
				bestDistSq = d
			}
		} else if bestHidden == nil || r.TimeLastSensed > bestHidden.TimeLastSensed {
			bestHidden = r
		}
	}

	if bestVisible != nil {
		t.record = bestVisible
	} else {
		t.record = bestHidden
	}
}

func (t *TargetSystem) HasTarget() bool {
	return t.record != nil
}

// IsTargetShootable reports whether the current target is in direct
// line of sight right now.
func (t *TargetSystem) IsTargetShootable() bool {
	return t.record != nil && t.record.Visible
}

// Target returns the targeted agent, or nil.
func (t *TargetSystem) Target() *Agent {
	if t.record == nil {
		return nil
	}
	return t.record.Entity
}

// LastSensedPosition returns where the target was last sensed. ok is
// false when there is no target.
func (t *TargetSystem) LastSensedPosition() (x, y float64, ok bool) {
	if t.record == nil {
		return 0, 0, false
	}
	return t.record.LastSensedX, t.record.LastSensedY, true
}

// TimeLastSensed returns -1 when there is no target.
func (t *TargetSystem) TimeLastSensed() float64 {
	if t.record == nil {
		return -1
	}
	return t.record.TimeLastSensed
}

// TimeBecameVisible returns -1 when there is no target.
func (t *TargetSystem) TimeBecameVisible() float64 {
	if t.record == nil {
		return -1
	}
	return t.record.TimeBecameVisible
}

// Reset drops the current target, e.g. on respawn.
func (t *TargetSystem) Reset() {
	t.record = nil
}
