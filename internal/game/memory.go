package game

// MemoryRecord tracks what one agent knows about one other agent. The
// Entity pointer is held for identity and lookup only; perception never
// reads live state from it outside a sensing pass.
type MemoryRecord struct {
	Entity *Agent

	// LastSensedX/Y is the position the entity was last seen or heard
	// at, not where it is now.
	LastSensedX float64
	LastSensedY float64

	// TimeLastSensed is the sim time of the most recent sensing.
	// -1 until the entity has been sensed at least once.
	TimeLastSensed float64

	// TimeBecameVisible is the sim time the entity last transitioned
	// from hidden to visible. Reaction-time checks measure from here,
	// so it must not be refreshed on ticks where visibility merely
	// persists. -1 until first sighting.
	TimeBecameVisible float64

	// Visible is the live line-of-sight flag from the latest vision
	// pass.
	Visible bool
}

// MemorySystem is an agent's short-term memory of other agents, keyed
// by entity. Records are retained forever once created; freshness is
// decided at query time against the memory span.
type MemorySystem struct {
	owner   *Agent
	records map[*Agent]*MemoryRecord

	// MemorySpan is how long, in seconds, a record stays relevant
	// after its last sensing.
	MemorySpan float64
}

func NewMemorySystem(owner *Agent, span float64) *MemorySystem {
	return &MemorySystem{
		owner:      owner,
		records:    make(map[*Agent]*MemoryRecord),
		MemorySpan: span,
	}
}

func (m *MemorySystem) HasRecord(e *Agent) bool {
	_, ok := m.records[e]
	return ok
}

func (m *MemorySystem) Record(e *Agent) *MemoryRecord {
	return m.records[e]
}

// CreateRecord registers an entity with sentinel timestamps. An
// existing record for the entity is replaced outright, so callers that
// want to keep accumulated state must check HasRecord first.
func (m *MemorySystem) CreateRecord(e *Agent) *MemoryRecord {
	r := &MemoryRecord{
		Entity:            e,
		TimeLastSensed:    -1,
		TimeBecameVisible: -1,
	}
	m.records[e] = r
	return r
}

func (m *MemorySystem) DeleteRecord(e *Agent) {
	delete(m.records, e)
}

// Clear drops all records, e.g. on respawn.
func (m *MemorySystem) Clear() {
	m.records = make(map[*Agent]*MemoryRecord)
}

// ValidRecords returns the records whose last sensing falls within the
// memory span of now. The boundary is inclusive: a record exactly
// MemorySpan old is still returned.
func (m *MemorySystem) ValidRecords(now float64) []*MemoryRecord {
	out := make([]*MemoryRecord, 0, len(m.records))
	for _, r := range m.records {
		if r.TimeLastSensed >= 0 && now-r.TimeLastSensed <= m.MemorySpan {
			out = append(out, r)
		}
	}
	return out
}
