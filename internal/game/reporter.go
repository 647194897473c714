package game

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// reportWindowTicks is the default sliding window for recent-behaviour
// reports (~10s at 60TPS).
const reportWindowTicks = 600

// AgentReport captures a single agent's state at one sample.
type AgentReport struct {
	Label  string
	Team   Team
	Plan   GoalKind
	State  FSMState
	Health float64
	Alive  bool
	Weapon WeaponType
	Kills  int
	Deaths int
}

// SimReport is a snapshot of the simulation at one tick.
type SimReport struct {
	Tick int

	// Per-team plan distributions (GoalKind → count among the living).
	RedPlans  map[GoalKind]int
	BluePlans map[GoalKind]int

	RedAlive, BlueAlive     int
	RedInjured, BlueInjured int // health < max but > 0

	// Agents with a current target / with a shootable target.
	RedWithTarget, BlueWithTarget       int
	RedWithShootable, BlueWithShootable int

	// Cumulative score at sample time.
	RedKills, BlueKills   int
	RedDeaths, BlueDeaths int
	RedShots, BlueShots   int
	RedHits, BlueHits     int
	RedPacks, BluePacks   int

	// Average health of the living, per team.
	RedAvgHealth, BlueAvgHealth float64

	// Agents detail (verbose mode only).
	Agents []AgentReport
}

// SimReporter collects periodic reports and produces summaries over
// sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
	verbose     bool
}

// NewSimReporter creates a reporter with the given window size in
// ticks.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks, verbose: verbose}
}

// Collect gathers a snapshot from the current world state. Call
// periodically, e.g. every 60 ticks.
func (r *SimReporter) Collect(w *World) {
	report := SimReport{
		Tick:      w.Tick,
		RedPlans:  make(map[GoalKind]int),
		BluePlans: make(map[GoalKind]int),
	}

	var redHealth, blueHealth []float64
	for _, a := range w.Agents {
		red := a.team == TeamRed

		if red {
			report.RedKills += a.Stats.Kills
			report.RedDeaths += a.Stats.Deaths
			report.RedShots += a.Stats.ShotsFired
			report.RedHits += a.Stats.Hits
			report.RedPacks += a.Stats.PacksTaken
		} else {
			report.BlueKills += a.Stats.Kills
			report.BlueDeaths += a.Stats.Deaths
			report.BlueShots += a.Stats.ShotsFired
			report.BlueHits += a.Stats.Hits
			report.BluePacks += a.Stats.PacksTaken
		}

		if r.verbose {
			ar := AgentReport{
				Label:  a.label,
				Team:   a.team,
				Plan:   a.brain.CurrentKind(),
				State:  a.fsm.State(),
				Health: a.Health,
				Alive:  a.alive,
				Kills:  a.Stats.Kills,
				Deaths: a.Stats.Deaths,
			}
			if cw := a.weapons.CurrentWeapon(); cw != nil {
				ar.Weapon = cw.typ
			}
			report.Agents = append(report.Agents, ar)
		}

		if !a.alive {
			continue
		}

		if red {
			report.RedAlive++
			report.RedPlans[a.brain.CurrentKind()]++
			redHealth = append(redHealth, a.Health)
		} else {
			report.BlueAlive++
			report.BluePlans[a.brain.CurrentKind()]++
			blueHealth = append(blueHealth, a.Health)
		}

		if a.Health < a.MaxHealth {
			if red {
				report.RedInjured++
			} else {
				report.BlueInjured++
			}
		}
		if a.targets.HasTarget() {
			if red {
				report.RedWithTarget++
			} else {
				report.BlueWithTarget++
			}
		}
		if a.targets.IsTargetShootable() {
			if red {
				report.RedWithShootable++
			} else {
				report.BlueWithShootable++
			}
		}
	}

	if len(redHealth) > 0 {
		report.RedAvgHealth = stat.Mean(redHealth, nil)
	}
	if len(blueHealth) > 0 {
		report.BlueAvgHealth = stat.Mean(blueHealth, nil)
	}

	r.history = append(r.history, report)

	// Prune history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Plan distribution as percentages (0-100) of living agents.
	RedPlanPct  map[GoalKind]float64
	BluePlanPct map[GoalKind]float64

	// Mean and standard deviation over the window samples.
	AvgRedAlive, AvgBlueAlive           float64
	AvgRedHealth, AvgBlueHealth         float64
	StdRedHealth, StdBlueHealth         float64
	AvgRedWithTarget, AvgBlueWithTarget float64

	// Cumulative score at the window's end.
	RedKills, BlueKills   int
	RedDeaths, BlueDeaths int
	RedAccuracy           float64 // hits / shots
	BlueAccuracy          float64
	RedPacks, BluePacks   int
}

// WindowSummary aggregates reports within the recent window: plan
// percentages, mean/stddev of team health and alive counts, accuracy
// and score.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		RedPlanPct:  make(map[GoalKind]float64),
		BluePlanPct: make(map[GoalKind]float64),
	}

	redPlanTotal := make(map[GoalKind]float64)
	bluePlanTotal := make(map[GoalKind]float64)
	var redTotal, blueTotal float64

	n := len(window)
	redAlive := make([]float64, 0, n)
	blueAlive := make([]float64, 0, n)
	redHealth := make([]float64, 0, n)
	blueHealth := make([]float64, 0, n)
	redTgt := make([]float64, 0, n)
	blueTgt := make([]float64, 0, n)

	for _, rpt := range window {
		for g, c := range rpt.RedPlans {
			redPlanTotal[g] += float64(c)
			redTotal += float64(c)
		}
		for g, c := range rpt.BluePlans {
			bluePlanTotal[g] += float64(c)
			blueTotal += float64(c)
		}
		redAlive = append(redAlive, float64(rpt.RedAlive))
		blueAlive = append(blueAlive, float64(rpt.BlueAlive))
		redHealth = append(redHealth, rpt.RedAvgHealth)
		blueHealth = append(blueHealth, rpt.BlueAvgHealth)
		redTgt = append(redTgt, float64(rpt.RedWithTarget))
		blueTgt = append(blueTgt, float64(rpt.BlueWithTarget))
	}

	if redTotal > 0 {
		for g, c := range redPlanTotal {
			wr.RedPlanPct[g] = c / redTotal * 100
		}
	}
	if blueTotal > 0 {
		for g, c := range bluePlanTotal {
			wr.BluePlanPct[g] = c / blueTotal * 100
		}
	}

	wr.AvgRedAlive = stat.Mean(redAlive, nil)
	wr.AvgBlueAlive = stat.Mean(blueAlive, nil)
	wr.AvgRedHealth = stat.Mean(redHealth, nil)
	wr.AvgBlueHealth = stat.Mean(blueHealth, nil)
	wr.StdRedHealth = stat.StdDev(redHealth, nil)
	wr.StdBlueHealth = stat.StdDev(blueHealth, nil)
	wr.AvgRedWithTarget = stat.Mean(redTgt, nil)
	wr.AvgBlueWithTarget = stat.Mean(blueTgt, nil)

	last := window[0] // newest sample
	wr.RedKills = last.RedKills
	wr.BlueKills = last.BlueKills
	wr.RedDeaths = last.RedDeaths
	wr.BlueDeaths = last.BlueDeaths
	wr.RedPacks = last.RedPacks
	wr.BluePacks = last.BluePacks
	if last.RedShots > 0 {
		wr.RedAccuracy = float64(last.RedHits) / float64(last.RedShots)
	}
	if last.BlueShots > 0 {
		wr.BlueAccuracy = float64(last.BlueHits) / float64(last.BlueShots)
	}

	return wr
}

// Format returns a human-readable multi-line string of the window
// summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	allPlans := []GoalKind{KindExplore, KindAttack, KindGetHealth, KindThink}
	sb.WriteString("\n--- RED Plan Distribution ---\n")
	for _, g := range allPlans {
		if pct, ok := wr.RedPlanPct[g]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-18s %5.1f%%\n", g, pct)
		}
	}
	sb.WriteString("\n--- BLUE Plan Distribution ---\n")
	for _, g := range allPlans {
		if pct, ok := wr.BluePlanPct[g]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-18s %5.1f%%\n", g, pct)
		}
	}

	sb.WriteString("\n--- Score ---\n")
	fmt.Fprintf(&sb, "  Red:  kills=%d deaths=%d accuracy=%.0f%% packs=%d\n",
		wr.RedKills, wr.RedDeaths, wr.RedAccuracy*100, wr.RedPacks)
	fmt.Fprintf(&sb, "  Blue: kills=%d deaths=%d accuracy=%.0f%% packs=%d\n",
		wr.BlueKills, wr.BlueDeaths, wr.BlueAccuracy*100, wr.BluePacks)

	sb.WriteString("\n--- Health & Presence ---\n")
	fmt.Fprintf(&sb, "  Red:  alive=%.1f  health=%.1f±%.1f  with_target=%.1f\n",
		wr.AvgRedAlive, wr.AvgRedHealth, wr.StdRedHealth, wr.AvgRedWithTarget)
	fmt.Fprintf(&sb, "  Blue: alive=%.1f  health=%.1f±%.1f  with_target=%.1f\n",
		wr.AvgBlueAlive, wr.AvgBlueHealth, wr.StdBlueHealth, wr.AvgBlueWithTarget)

	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "Red:  alive=%d injured=%d kills=%d deaths=%d avg_health=%.1f\n",
		rpt.RedAlive, rpt.RedInjured, rpt.RedKills, rpt.RedDeaths, rpt.RedAvgHealth)
	fmt.Fprintf(&sb, "Blue: alive=%d injured=%d kills=%d deaths=%d avg_health=%.1f\n",
		rpt.BlueAlive, rpt.BlueInjured, rpt.BlueKills, rpt.BlueDeaths, rpt.BlueAvgHealth)

	sb.WriteString("Red plans:  ")
	for g, c := range rpt.RedPlans {
		fmt.Fprintf(&sb, "%s=%d ", g, c)
	}
	sb.WriteString("\nBlue plans: ")
	for g, c := range rpt.BluePlans {
		fmt.Fprintf(&sb, "%s=%d ", g, c)
	}
	sb.WriteByte('\n')
	return sb.String()
}
