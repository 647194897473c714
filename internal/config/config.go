// Package config provides configuration loading and access for the
// bot simulation. Defaults are embedded; a user file overrides only
// the fields it specifies.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation and bot tuning parameters.
type Config struct {
	Arena      ArenaConfig     `yaml:"arena"`
	Bot        BotConfig       `yaml:"bot"`
	Regulators RegulatorConfig `yaml:"regulators"`
	Evaluators EvaluatorConfig `yaml:"evaluators"`
	Items      ItemConfig      `yaml:"items"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
}

// ArenaConfig holds playfield dimensions and obstacle generation.
type ArenaConfig struct {
	Width        int     `yaml:"width"`      // pixels
	Height       int     `yaml:"height"`     // pixels
	WallCount    int     `yaml:"wall_count"` // random rect obstacles
	Seed         int64   `yaml:"seed"`       // 0 = time-based
	BotsPerTeam  int     `yaml:"bots_per_team"`
	RespawnDelay float64 `yaml:"respawn_delay"` // seconds dead before respawn
}

// BotConfig holds per-agent perception and combat tuning.
type BotConfig struct {
	MaxHealth      float64 `yaml:"max_health"`
	MaxSpeed       float64 `yaml:"max_speed"`        // pixels per second
	FieldOfView    float64 `yaml:"field_of_view"`    // degrees, full cone
	VisionRange    float64 `yaml:"vision_range"`     // pixels
	MemorySpan     float64 `yaml:"memory_span"`      // seconds
	ReactionTime   float64 `yaml:"reaction_time"`    // seconds target must stay visible
	AimAccuracy    float64 `yaml:"aim_accuracy"`     // max per-axis aim offset, pixels
	TurnRate       float64 `yaml:"turn_rate"`        // radians per second
	AimTolerance   float64 `yaml:"aim_tolerance"`    // radians, fire when within
	MinTacticRange float64 `yaml:"min_tactic_range"` // maintain-distance lower bound
	MaxTacticRange float64 `yaml:"max_tactic_range"` // maintain-distance upper bound
	TacticCooldown float64 `yaml:"tactic_cooldown"`  // seconds between tactic re-picks
}

// RegulatorConfig holds updates-per-second throttles for the
// independently gated subsystems. 0 disables a throttle.
type RegulatorConfig struct {
	VisionHz        float64 `yaml:"vision_hz"`
	TargetHz        float64 `yaml:"target_hz"`
	GoalArbitrateHz float64 `yaml:"goal_arbitrate_hz"`
	WeaponSelectHz  float64 `yaml:"weapon_select_hz"`
	ItemCheckHz     float64 `yaml:"item_check_hz"`
}

// EvaluatorConfig holds the registered evaluator set and biases.
type EvaluatorConfig struct {
	ExploreBias   float64 `yaml:"explore_bias"`
	GetHealthBias float64 `yaml:"get_health_bias"`
	AttackBias    float64 `yaml:"attack_bias"`
	AttackEnabled bool    `yaml:"attack_enabled"`
}

// ItemConfig holds item placement and respawn behaviour.
type ItemConfig struct {
	HealthPackCount   int     `yaml:"health_pack_count"`
	HealthPackRespawn float64 `yaml:"health_pack_respawn"` // seconds
}

// TelemetryConfig holds reporter window and CSV output settings.
type TelemetryConfig struct {
	WindowTicks int    `yaml:"window_ticks"`
	OutputDir   string `yaml:"output_dir"` // empty = disabled
}

// Load reads configuration from a YAML file merged over embedded
// defaults. An empty path uses only the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	return MustLoad("")
}

// MustLoad is Load but panics on error. Intended for main().
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// WriteYAML writes the configuration to a YAML file, so a run's exact
// tuning can be archived next to its telemetry.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
