package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benbeisheim/draughts-backend/internal/model"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const envPrefix = "DRAUGHTS_"

type Config struct {
	Addr                string
	AllowedOrigins      []string
	BoardSize           int
	LayoutFile          string
	TimeControl         time.Duration
	MatchmakingInterval time.Duration
	ForcedCapture       bool
	LogLevel            string
	LogPretty           bool
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowedOrigins:      []string{"http://localhost:5173"},
		BoardSize:           10,
		TimeControl:         10 * time.Minute,
		MatchmakingInterval: time.Second,
		LogLevel:            "info",
	}
}

func env(name string) []string {
	return []string{envPrefix + name}
}

// Flags are the server's command line flags. Each falls back to a
// DRAUGHTS_* environment variable.
func Flags() []cli.Flag {
	def := Default()
	return []cli.Flag{
		&cli.StringFlag{Name: "addr", Value: def.Addr, Usage: "listen address", EnvVars: env("ADDR")},
		&cli.StringSliceFlag{Name: "allowed-origins", Value: cli.NewStringSlice(def.AllowedOrigins...), Usage: "origins allowed for CORS and websockets", EnvVars: env("ALLOWED_ORIGINS")},
		&cli.IntFlag{Name: "board-size", Value: def.BoardSize, Usage: "board side length when no layout file is given", EnvVars: env("BOARD_SIZE")},
		&cli.StringFlag{Name: "layout-file", Usage: "starting layout, one rank per line", EnvVars: env("LAYOUT_FILE")},
		&cli.DurationFlag{Name: "time-control", Value: def.TimeControl, Usage: "thinking time per side", EnvVars: env("TIME_CONTROL")},
		&cli.DurationFlag{Name: "matchmaking-interval", Value: def.MatchmakingInterval, Usage: "how often queued players are paired", EnvVars: env("MATCHMAKING_INTERVAL")},
		&cli.BoolFlag{Name: "forced-capture", Usage: "reject slides while a capture is available", EnvVars: env("FORCED_CAPTURE")},
		&cli.StringFlag{Name: "log-level", Value: def.LogLevel, Usage: "trace, debug, info, warn or error", EnvVars: env("LOG_LEVEL")},
		&cli.BoolFlag{Name: "log-pretty", Usage: "human readable console logs", EnvVars: env("LOG_PRETTY")},
	}
}

func FromContext(c *cli.Context) Config {
	return Config{
		Addr:                c.String("addr"),
		AllowedOrigins:      c.StringSlice("allowed-origins"),
		BoardSize:           c.Int("board-size"),
		LayoutFile:          c.String("layout-file"),
		TimeControl:         c.Duration("time-control"),
		MatchmakingInterval: c.Duration("matchmaking-interval"),
		ForcedCapture:       c.Bool("forced-capture"),
		LogLevel:            c.String("log-level"),
		LogPretty:           c.Bool("log-pretty"),
	}
}

// LoadDotEnv loads variables from path into the environment. A missing file
// is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.LayoutFile == "" && c.BoardSize < 4 {
		return fmt.Errorf("board size %d is too small", c.BoardSize)
	}
	if c.TimeControl <= 0 {
		return fmt.Errorf("time control must be positive, got %s", c.TimeControl)
	}
	if c.MatchmakingInterval <= 0 {
		return fmt.Errorf("matchmaking interval must be positive, got %s", c.MatchmakingInterval)
	}
	return nil
}

// Rules builds the per-game rules, reading the layout file if one is set.
func (c Config) Rules() (model.Rules, error) {
	layout := model.DefaultLayout(c.BoardSize)
	if c.LayoutFile != "" {
		var err error
		if layout, err = model.LoadLayout(c.LayoutFile); err != nil {
			return model.Rules{}, err
		}
	}
	return model.Rules{
		Layout:        layout,
		TimeControl:   c.TimeControl,
		ForcedCapture: c.ForcedCapture,
	}, nil
}
