package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Shooter-Sense/internal/config"
	"github.com/Garsondee/Shooter-Sense/internal/game"
	"github.com/Garsondee/Shooter-Sense/pkg/logger"
)

func main() {
	var configPath string
	var seed int64
	flag.StringVar(&configPath, "config", "", "path to YAML config (empty = embedded defaults)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	logger.Init()
	cfg := config.MustLoad(configPath)
	if seed == 0 {
		seed = cfg.Arena.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ebiten.SetWindowTitle("Shooter Sense")
	ebiten.SetWindowSize(cfg.Arena.Width, cfg.Arena.Height)
	if err := ebiten.RunGame(game.NewViewer(cfg, seed)); err != nil {
		log.Fatal(err)
	}
}
