package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Agent    string  // label e.g. "R0", "B2", or "--" for global events
	Team     string  // "red", "blue", or "--"
	Category string  // goal, weapon, target, vision, combat, move, state, item
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] R0   weapon  change_start   blaster → shotgun
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation. It is
// unbounded and machine-readable; tests assert against it instead of
// poking at agent internals.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick
// position/velocity entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, agent, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Agent:    agent,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, agent, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, agent, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable snapshot of the simulation.
func (sl *SimLog) Summary(tick int, agents []*Agent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	// Plan distribution per team.
	planCount := map[Team]map[GoalKind]int{}
	for _, a := range agents {
		if _, ok := planCount[a.team]; !ok {
			planCount[a.team] = map[GoalKind]int{}
		}
		planCount[a.team][a.brain.CurrentKind()]++
	}
	for _, team := range []Team{TeamRed, TeamBlue} {
		counts, ok := planCount[team]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s plans: ", team)
		for _, k := range []GoalKind{KindExplore, KindAttack, KindGetHealth, KindThink} {
			if n := counts[k]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", k, n)
			}
		}
		sb.WriteByte('\n')
	}

	// Alive counts.
	redAlive, blueAlive := 0, 0
	for _, a := range agents {
		if a.Alive() {
			if a.team == TeamRed {
				redAlive++
			} else {
				blueAlive++
			}
		}
	}
	fmt.Fprintf(&sb, "Alive: red=%d  blue=%d\n", redAlive, blueAlive)

	// Current targets.
	targetLines := 0
	for _, a := range agents {
		if t := a.targets.Target(); t != nil {
			vis := "remembered"
			if a.targets.IsTargetShootable() {
				vis = "visible"
			}
			fmt.Fprintf(&sb, "Target: %s → %s (%s)\n", a.label, t.label, vis)
			targetLines++
		}
	}
	if targetLines == 0 {
		sb.WriteString("Targets: none\n")
	}

	return sb.String()
}
