package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Shooter-Sense/internal/config"
)

func TestTickStr(t *testing.T) {
	if got := tickStr(-1); got != "never" {
		t.Fatalf("tickStr(-1) = %q, want never", got)
	}
	if got := tickStr(42); got != "T=42" {
		t.Fatalf("tickStr(42) = %q", got)
	}
}

func TestPrintAggregate(t *testing.T) {
	var sb strings.Builder
	printAggregate(&sb, nil)
	if sb.Len() != 0 {
		t.Fatal("aggregate printed with no runs")
	}

	all := []runStats{
		{spots: 4, shots: 10, kills: 2},
		{spots: 2, shots: 6, kills: 0},
	}
	printAggregate(&sb, all)
	out := sb.String()
	if !strings.Contains(out, "Aggregate over 2 runs") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "spots=3.0") || !strings.Contains(out, "shots=8.0") {
		t.Fatalf("wrong averages:\n%s", out)
	}
}

func TestRunDeathmatch(t *testing.T) {
	cfg := config.Default()
	cfg.Arena.Width = 480
	cfg.Arena.Height = 360
	cfg.Arena.BotsPerTeam = 1
	cfg.Arena.WallCount = 2
	cfg.Items.HealthPackCount = 1
	cfg.Telemetry.OutputDir = "" // no CSV from tests

	s := runDeathmatch(cfg, 0, 7, 600)
	if s.seed != 7 || s.runIndex != 0 {
		t.Fatalf("stats identity %d/%d, want 0/7", s.runIndex, s.seed)
	}
	// Plans change at least once: every bot leaves the idle plan for
	// exploration within its first think cycles.
	if s.planChanges == 0 {
		t.Fatal("no plan changes over 600 ticks")
	}
	if s.windowSummary == nil {
		t.Fatal("no window summary collected")
	}

	var sb strings.Builder
	printRun(&sb, s)
	if !strings.Contains(sb.String(), "Run 0 (seed=7)") {
		t.Fatalf("run print missing header:\n%s", sb.String())
	}
}
