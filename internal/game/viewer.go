package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Shooter-Sense/internal/config"
)

var (
	colBackground = color.RGBA{R: 28, G: 32, B: 28, A: 255}
	colWall       = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	colRed        = color.RGBA{R: 230, G: 80, B: 70, A: 255}
	colBlue       = color.RGBA{R: 70, G: 130, B: 230, A: 255}
	colDead       = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	colPack       = color.RGBA{R: 70, G: 220, B: 110, A: 255}
	colProjectile = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	colCone       = color.RGBA{R: 255, G: 255, B: 255, A: 26}
	colPath       = color.RGBA{R: 200, G: 200, B: 80, A: 120}
	colHealthBack = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	colHealth     = color.RGBA{R: 80, G: 220, B: 80, A: 220}
	colHUD        = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// Viewer renders the deathmatch and implements ebiten.Game. Keys:
// space pauses, C toggles vision cones, P toggles paths, F cycles sim
// speed.
type Viewer struct {
	world    *World
	reporter *SimReporter

	paused    bool
	showCones bool
	showPaths bool
	speed     int // ticks per frame

	prevKeys map[ebiten.Key]bool
}

func NewViewer(cfg *config.Config, seed int64) *Viewer {
	return &Viewer{
		world:     NewWorld(cfg, seed, false),
		reporter:  NewSimReporter(cfg.Telemetry.WindowTicks, false),
		showCones: true,
		speed:     1,
		prevKeys:  make(map[ebiten.Key]bool),
	}
}

func (v *Viewer) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := v.prevKeys[k]
	v.prevKeys[k] = down
	return down && !was
}

func (v *Viewer) Update() error {
	if v.keyPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if v.keyPressed(ebiten.KeyC) {
		v.showCones = !v.showCones
	}
	if v.keyPressed(ebiten.KeyP) {
		v.showPaths = !v.showPaths
	}
	if v.keyPressed(ebiten.KeyF) {
		v.speed *= 2
		if v.speed > 8 {
			v.speed = 1
		}
	}

	if v.paused {
		return nil
	}
	for i := 0; i < v.speed; i++ {
		v.world.Update()
		if v.world.Tick%60 == 0 {
			v.reporter.Collect(v.world)
		}
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	for _, wl := range v.world.walls {
		vector.DrawFilledRect(screen, float32(wl.x), float32(wl.y),
			float32(wl.w), float32(wl.h), colWall, false)
	}

	for _, p := range v.world.packs {
		if !p.Active {
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 5, colPack, true)
	}

	for _, a := range v.world.Agents {
		v.drawAgent(screen, a)
	}

	for _, p := range v.world.projectiles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2, colProjectile, true)
	}

	v.drawHUD(screen)
}

func (v *Viewer) drawAgent(screen *ebiten.Image, a *Agent) {
	col := colRed
	if a.team == TeamBlue {
		col = colBlue
	}
	if !a.alive {
		vector.DrawFilledCircle(screen, float32(a.X), float32(a.Y), 6, colDead, true)
		return
	}

	if v.showCones {
		v.drawCone(screen, a)
	}
	if v.showPaths && len(a.path) > 0 {
		prev := [2]float64{a.X, a.Y}
		for _, wp := range a.path {
			vector.StrokeLine(screen, float32(prev[0]), float32(prev[1]),
				float32(wp[0]), float32(wp[1]), 1, colPath, true)
			prev = wp
		}
	}

	vector.DrawFilledCircle(screen, float32(a.X), float32(a.Y), agentHitRadius, col, true)
	// Heading tick.
	hx := a.X + math.Cos(a.Heading)*agentHitRadius*1.8
	hy := a.Y + math.Sin(a.Heading)*agentHitRadius*1.8
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(hx), float32(hy), 2, col, true)

	// Health bar.
	const barW = 20.0
	bx := float32(a.X - barW/2)
	by := float32(a.Y - agentHitRadius - 7)
	vector.DrawFilledRect(screen, bx, by, barW, 3, colHealthBack, false)
	frac := float32(clamp01(a.Health / a.MaxHealth))
	vector.DrawFilledRect(screen, bx, by, barW*frac, 3, colHealth, false)

	text.Draw(screen, a.label, basicfont.Face7x13, int(a.X)-7, int(a.Y)-int(agentHitRadius)-10, colHUD)
}

// drawCone renders the sight cone at its effective radius (the
// tightened range/√2 gate, matching what perception actually uses).
func (v *Viewer) drawCone(screen *ebiten.Image, a *Agent) {
	effRange := a.vision.Range / math.Sqrt2
	half := a.vision.FieldOfView / 2
	steps := 16
	px := float32(a.X)
	py := float32(a.Y)
	for i := 0; i < steps; i++ {
		a0 := a.Heading - half + a.vision.FieldOfView*float64(i)/float64(steps)
		a1 := a.Heading - half + a.vision.FieldOfView*float64(i+1)/float64(steps)
		x0 := px + float32(math.Cos(a0)*effRange)
		y0 := py + float32(math.Sin(a0)*effRange)
		x1 := px + float32(math.Cos(a1)*effRange)
		y1 := py + float32(math.Sin(a1)*effRange)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colCone, true)
	}
	vector.StrokeLine(screen, px, py,
		px+float32(math.Cos(a.Heading-half)*effRange),
		py+float32(math.Sin(a.Heading-half)*effRange), 1, colCone, true)
	vector.StrokeLine(screen, px, py,
		px+float32(math.Cos(a.Heading+half)*effRange),
		py+float32(math.Sin(a.Heading+half)*effRange), 1, colCone, true)
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	redKills, blueKills := 0, 0
	for _, a := range v.world.Agents {
		if a.team == TeamRed {
			redKills += a.Stats.Kills
		} else {
			blueKills += a.Stats.Kills
		}
	}
	status := fmt.Sprintf("T=%d  red %d:%d blue  alive %d/%d  speed x%d",
		v.world.Tick, redKills, blueKills,
		v.world.AliveCount(TeamRed), v.world.AliveCount(TeamBlue), v.speed)
	if v.paused {
		status += "  [paused]"
	}
	text.Draw(screen, status, basicfont.Face7x13, 8, 16, colHUD)
	text.Draw(screen, "space: pause  c: cones  p: paths  f: speed",
		basicfont.Face7x13, 8, 32, colHUD)
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.world.Width, v.world.Height
}
