package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Shooter-Sense/internal/config"
	"github.com/Garsondee/Shooter-Sense/internal/game"
	"github.com/Garsondee/Shooter-Sense/pkg/logger"
)

type runStats struct {
	runIndex int
	seed     int64

	firstSpotTick int
	firstShotTick int
	firstKillTick int
	firstPackTick int

	planChanges   int
	weaponChanges int
	spots         int
	losses        int
	shots         int
	kills         int
	packs         int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string
	var toClipboard bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 7200, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "path to YAML config (empty = embedded defaults)")
	flag.BoolVar(&toClipboard, "clipboard", false, "also copy the report to the system clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	logger.Init()
	cfg := config.MustLoad(configPath)

	var report strings.Builder
	fmt.Fprintf(&report, "=== Headless Deathmatch Report ===\n")
	fmt.Fprintf(&report, "runs=%d ticks=%d seed_base=%d seed_step=%d bots_per_team=%d\n\n",
		runs, ticks, seedBase, seedStep, cfg.Arena.BotsPerTeam)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runDeathmatch(cfg, i+1, seed, ticks)
		all = append(all, stats)
		printRun(&report, stats)
	}
	printAggregate(&report, all)

	fmt.Print(report.String())
	if toClipboard {
		if err := clipboard.WriteAll(report.String()); err != nil {
			fmt.Printf("clipboard copy failed: %v\n", err)
		} else {
			fmt.Println("(report copied to clipboard)")
		}
	}
}

func runDeathmatch(cfg *config.Config, runIndex int, seed int64, ticks int) runStats {
	w := game.NewWorld(cfg, seed, false)
	reporter := game.NewSimReporter(cfg.Telemetry.WindowTicks, false)

	for t := 0; t < ticks; t++ {
		w.Update()
		if w.Tick%60 == 0 {
			reporter.Collect(w)
		}
	}

	stats := runStats{
		runIndex:      runIndex,
		seed:          seed,
		firstSpotTick: -1,
		firstShotTick: -1,
		firstKillTick: -1,
		firstPackTick: -1,
		windowSummary: reporter.WindowSummary(),
	}

	for _, e := range w.SimLog.Entries() {
		switch {
		case e.Category == "target" && e.Key == "spotted":
			stats.spots++
			if stats.firstSpotTick < 0 {
				stats.firstSpotTick = e.Tick
			}
		case e.Category == "target" && e.Key == "lost":
			stats.losses++
		case e.Category == "combat" && e.Key == "shoot":
			stats.shots++
			if stats.firstShotTick < 0 {
				stats.firstShotTick = e.Tick
			}
		case e.Category == "combat" && e.Key == "death":
			stats.kills++
			if stats.firstKillTick < 0 {
				stats.firstKillTick = e.Tick
			}
		case e.Category == "item" && e.Key == "pickup":
			stats.packs++
			if stats.firstPackTick < 0 {
				stats.firstPackTick = e.Tick
			}
		case e.Category == "goal" && e.Key == "plan_change":
			stats.planChanges++
		case e.Category == "weapon" && e.Key == "change":
			stats.weaponChanges++
		}
	}

	if cfg.Telemetry.OutputDir != "" {
		name := fmt.Sprintf("run_%02d_seed_%d", runIndex, seed)
		if _, err := game.WriteTelemetryCSV(reporter, cfg.Telemetry.OutputDir, name); err != nil {
			fmt.Printf("telemetry write failed: %v\n", err)
		}
	}
	return stats
}

func printRun(sb *strings.Builder, s runStats) {
	fmt.Fprintf(sb, "--- Run %d (seed=%d) ---\n", s.runIndex, s.seed)
	fmt.Fprintf(sb, "firsts: spot=%s shot=%s kill=%s pack=%s\n",
		tickStr(s.firstSpotTick), tickStr(s.firstShotTick),
		tickStr(s.firstKillTick), tickStr(s.firstPackTick))
	fmt.Fprintf(sb, "events: spots=%d losses=%d shots=%d kills=%d packs=%d plan_changes=%d weapon_changes=%d\n",
		s.spots, s.losses, s.shots, s.kills, s.packs, s.planChanges, s.weaponChanges)
	if s.windowSummary != nil {
		sb.WriteString(s.windowSummary.Format())
	}
	sb.WriteByte('\n')
}

func printAggregate(sb *strings.Builder, all []runStats) {
	if len(all) == 0 {
		return
	}
	var spots, shots, kills, packs, planChanges, weaponChanges int
	for _, s := range all {
		spots += s.spots
		shots += s.shots
		kills += s.kills
		packs += s.packs
		planChanges += s.planChanges
		weaponChanges += s.weaponChanges
	}
	n := float64(len(all))
	fmt.Fprintf(sb, "=== Aggregate over %d runs ===\n", len(all))
	fmt.Fprintf(sb, "avg per run: spots=%.1f shots=%.1f kills=%.1f packs=%.1f plan_changes=%.1f weapon_changes=%.1f\n",
		float64(spots)/n, float64(shots)/n, float64(kills)/n,
		float64(packs)/n, float64(planChanges)/n, float64(weaponChanges)/n)
}

func tickStr(t int) string {
	if t < 0 {
		return "never"
	}
	return fmt.Sprintf("T=%d", t)
}
