package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"happy-arena/internal/combat"
	"happy-arena/internal/game"
	"happy-arena/internal/quest"
)

// Config holds all configuration for the arena server.
type Config struct {
	Server      Server            `yaml:"server"`
	Combat      Combat            `yaml:"combat"`
	Hero        Hero              `yaml:"hero"`
	BestiaryDir string            `yaml:"bestiary_dir"`
	Objectives  []quest.Objective `yaml:"objectives"`
	Database    Database          `yaml:"database"`
	Logging     Logging           `yaml:"logging"`
}

// Server is the SSH listener configuration.
type Server struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

// Combat tunes the engine and the duel loop.
type Combat struct {
	FillScale       float64       `yaml:"fill_scale"`
	PreActionDelay  time.Duration `yaml:"pre_action_delay"`
	PostActionDelay time.Duration `yaml:"post_action_delay"`
	LogCapacity     int           `yaml:"log_capacity"`
	LogLines        int           `yaml:"log_lines"` // lines sent to the renderer
	TickRate        int           `yaml:"tick_rate"`
	ResultHold      time.Duration `yaml:"result_hold"`
}

// EngineConfig converts to the engine's tunables.
func (c Combat) EngineConfig() combat.Config {
	return combat.Config{
		FillScale:       c.FillScale,
		PreActionDelay:  c.PreActionDelay,
		PostActionDelay: c.PostActionDelay,
		LogCapacity:     c.LogCapacity,
	}
}

// Hero holds the starting stats of every new hero.
type Hero struct {
	MaxHP      int `yaml:"max_hp"`
	Attack     int `yaml:"attack"`
	Defense    int `yaml:"defense"`
	Agility    int `yaml:"agility"`
	MagicPower int `yaml:"magic_power"`
}

// Stats converts to game.HeroStats.
func (h Hero) Stats() game.HeroStats {
	return game.HeroStats{
		MaxHP:      h.MaxHP,
		Attack:     h.Attack,
		Defense:    h.Defense,
		Agility:    h.Agility,
		MagicPower: h.MagicPower,
	}
}

// Database holds PostgreSQL connection parameters. Results are only
// persisted when Enabled is set.
type Database struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Logging selects the zap level and encoding.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Default returns Config with sensible defaults.
func Default() Config {
	eng := combat.DefaultConfig()
	return Config{
		Server: Server{
			Addr:    ":2222",
			HostKey: "host_key",
		},
		Combat: Combat{
			FillScale:       eng.FillScale,
			PreActionDelay:  eng.PreActionDelay,
			PostActionDelay: eng.PostActionDelay,
			LogCapacity:     eng.LogCapacity,
			LogLines:        50,
			TickRate:        game.TickRate,
			ResultHold:      game.ResultHold,
		},
		Hero: Hero{
			MaxHP:      50,
			Attack:     10,
			Defense:    2,
			Agility:    20,
			MagicPower: 14,
		},
		BestiaryDir: "assets/bestiary",
		Database: Database{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arena",
			Password: "arena",
			DBName:   "arena",
			SSLMode:  "disable",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads config from a YAML file over the defaults.
// If the file doesn't exist, returns defaults. PORT in the environment
// overrides the listen address either way.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg, nil
}
