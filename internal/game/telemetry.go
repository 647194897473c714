package game

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Garsondee/Shooter-Sense/pkg/logger"
)

// TelemetryRow is one reporter sample flattened for CSV export.
type TelemetryRow struct {
	Tick          int     `csv:"tick"`
	RedAlive      int     `csv:"red_alive"`
	BlueAlive     int     `csv:"blue_alive"`
	RedAvgHealth  float64 `csv:"red_avg_health"`
	BlueAvgHealth float64 `csv:"blue_avg_health"`
	RedKills      int     `csv:"red_kills"`
	BlueKills     int     `csv:"blue_kills"`
	RedShots      int     `csv:"red_shots"`
	BlueShots     int     `csv:"blue_shots"`
	RedHits       int     `csv:"red_hits"`
	BlueHits      int     `csv:"blue_hits"`
	RedPacks      int     `csv:"red_packs"`
	BluePacks     int     `csv:"blue_packs"`
	RedExploring  int     `csv:"red_exploring"`
	BlueExploring int     `csv:"blue_exploring"`
	RedAttacking  int     `csv:"red_attacking"`
	BlueAttacking int     `csv:"blue_attacking"`
	RedHealing    int     `csv:"red_healing"`
	BlueHealing   int     `csv:"blue_healing"`
}

// WriteTelemetryCSV dumps the reporter's full history as a CSV file
// under dir, one row per collected sample. Returns the written path.
func WriteTelemetryCSV(r *SimReporter, dir string, runName string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating telemetry dir: %w", err)
	}

	rows := make([]*TelemetryRow, 0, len(r.History()))
	for _, rpt := range r.History() {
		rows = append(rows, &TelemetryRow{
			Tick:          rpt.Tick,
			RedAlive:      rpt.RedAlive,
			BlueAlive:     rpt.BlueAlive,
			RedAvgHealth:  rpt.RedAvgHealth,
			BlueAvgHealth: rpt.BlueAvgHealth,
			RedKills:      rpt.RedKills,
			BlueKills:     rpt.BlueKills,
			RedShots:      rpt.RedShots,
			BlueShots:     rpt.BlueShots,
			RedHits:       rpt.RedHits,
			BlueHits:      rpt.BlueHits,
			RedPacks:      rpt.RedPacks,
			BluePacks:     rpt.BluePacks,
			RedExploring:  rpt.RedPlans[KindExplore],
			BlueExploring: rpt.BluePlans[KindExplore],
			RedAttacking:  rpt.RedPlans[KindAttack],
			BlueAttacking: rpt.BluePlans[KindAttack],
			RedHealing:    rpt.RedPlans[KindGetHealth],
			BlueHealing:   rpt.BluePlans[KindGetHealth],
		})
	}

	path := filepath.Join(dir, runName+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating telemetry file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return "", fmt.Errorf("writing telemetry csv: %w", err)
	}
	logger.Get().WithField("path", path).WithField("rows", len(rows)).Info("telemetry written")
	return path, nil
}
