package game

import "testing"

func TestMemory_CreateRecordStartsWithSentinels(t *testing.T) {
	m := NewMemorySystem(nil, 5)
	e := &Agent{}

	r := m.CreateRecord(e)
	if r.TimeLastSensed != -1 {
		t.Fatalf("TimeLastSensed = %v, want -1", r.TimeLastSensed)
	}
	if r.TimeBecameVisible != -1 {
		t.Fatalf("TimeBecameVisible = %v, want -1", r.TimeBecameVisible)
	}
	if r.Visible {
		t.Fatal("new record marked visible")
	}
	if !m.HasRecord(e) {
		t.Fatal("HasRecord false after CreateRecord")
	}
}

func TestMemory_CreateRecordOverwrites(t *testing.T) {
	m := NewMemorySystem(nil, 5)
	e := &Agent{}

	r1 := m.CreateRecord(e)
	r1.TimeLastSensed = 42
	r1.Visible = true

	r2 := m.CreateRecord(e)
	if r1 == r2 {
		t.Fatal("second CreateRecord reused the old record")
	}
	if m.Record(e) != r2 {
		t.Fatal("system still holds the old record")
	}
	if r2.TimeLastSensed != -1 || r2.TimeBecameVisible != -1 || r2.Visible {
		t.Fatalf("second CreateRecord kept stale state: %+v", r2)
	}
}

func TestVisionKeepsRecordStateAcrossSightings(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(640, 480),
		WithRedAgent(100, 240),
		WithBlueAgent(200, 240),
	)
	red := ts.Agent("R0")
	blue := ts.Agent("B0")

	red.updateVision(1.0)
	r1 := red.memory.Record(blue)
	if r1 == nil || r1.TimeBecameVisible != 1.0 {
		t.Fatalf("first sighting record %+v", r1)
	}

	// A later sighting while still visible refreshes the same record
	// instead of minting a fresh one, preserving the visibility edge.
	red.updateVision(2.0)
	r2 := red.memory.Record(blue)
	if r2 != r1 {
		t.Fatal("continued sighting replaced the record")
	}
	if r2.TimeBecameVisible != 1.0 {
		t.Fatalf("visibility edge moved to %v, want 1.0", r2.TimeBecameVisible)
	}
	if r2.TimeLastSensed != 2.0 {
		t.Fatalf("last sensed %v, want 2.0", r2.TimeLastSensed)
	}
}

func TestMemory_ValidRecordsSpanIsInclusive(t *testing.T) {
	m := NewMemorySystem(nil, 5)
	e := &Agent{}
	r := m.CreateRecord(e)
	r.TimeLastSensed = 10

	if got := len(m.ValidRecords(15)); got != 1 {
		t.Fatalf("record exactly at span boundary excluded, got %d records", got)
	}
	if got := len(m.ValidRecords(15.01)); got != 0 {
		t.Fatalf("record past span still returned, got %d records", got)
	}
}

func TestMemory_ValidRecordsSkipsNeverSensed(t *testing.T) {
	m := NewMemorySystem(nil, 5)
	m.CreateRecord(&Agent{}) // TimeLastSensed stays -1

	if got := len(m.ValidRecords(0)); got != 0 {
		t.Fatalf("never-sensed record returned, got %d records", got)
	}
}

func TestMemory_DeleteAndClear(t *testing.T) {
	m := NewMemorySystem(nil, 5)
	e1 := &Agent{}
	e2 := &Agent{}
	m.CreateRecord(e1)
	m.CreateRecord(e2)

	m.DeleteRecord(e1)
	if m.HasRecord(e1) {
		t.Fatal("record survived DeleteRecord")
	}
	if !m.HasRecord(e2) {
		t.Fatal("DeleteRecord removed the wrong record")
	}

	m.Clear()
	if m.HasRecord(e2) {
		t.Fatal("record survived Clear")
	}
}
