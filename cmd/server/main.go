package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/draughts-backend/internal/config"
	"github.com/benbeisheim/draughts-backend/internal/logging"
	"github.com/benbeisheim/draughts-backend/internal/server"
	"github.com/benbeisheim/draughts-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal().Err(err).Msg("env")
	}

	app := &cli.App{
		Name:   "draughts-server",
		Usage:  "serve draughts games over HTTP and websockets",
		Flags:  config.Flags(),
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(c *cli.Context) error {
	cfg := config.FromContext(c)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameManager := service.NewGameManager(ctx, rules, cfg.MatchmakingInterval)
	gameService := service.NewGameService(gameManager)
	app := server.New(gameService, cfg.AllowedOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("addr", cfg.Addr).
		Int("boardSize", len(rules.Layout)).
		Dur("timeControl", cfg.TimeControl).
		Bool("forcedCapture", cfg.ForcedCapture).
		Msg("listening")
	return app.Listen(cfg.Addr)
}
