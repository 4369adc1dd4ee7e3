package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"

	"happy-arena/internal/bestiary"
	"happy-arena/internal/config"
	"happy-arena/internal/game"
	"happy-arena/internal/logging"
	"happy-arena/internal/quest"
	"happy-arena/internal/server"
	"happy-arena/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "arena.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.Server.HostKey, logger); err != nil {
		return err
	}

	roster, err := bestiary.Load(cfg.BestiaryDir)
	if err != nil {
		logger.Warn("using built-in bestiary", zap.String("dir", cfg.BestiaryDir), zap.Error(err))
		roster = bestiary.Default()
	}
	for _, d := range roster.Defs() {
		logger.Debug("monster loaded", zap.String("name", d.Name), zap.Int("max_hp", d.MaxHP), zap.Int("weight", d.Weight))
	}

	var (
		recorder game.ResultRecorder
		counter  quest.KillCounter
	)
	if cfg.Database.Enabled {
		dsn := cfg.Database.DSN()
		if err := store.RunMigrations(ctx, dsn); err != nil {
			return err
		}
		db, err := store.New(ctx, dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := store.NewResultRepository(db.Pool())
		recorder, counter = repo, repo
		logger.Info("persisting duel results", zap.String("host", cfg.Database.Host))
	}

	tracker, err := quest.NewTracker(cfg.Objectives, counter, logger)
	if err != nil {
		return err
	}

	srv := server.NewSSHServer(server.Options{
		Addr:    cfg.Server.Addr,
		HostKey: cfg.Server.HostKey,
		Hero:    cfg.Hero.Stats(),
		Roster:  roster,
		Duel: game.DuelOptions{
			Combat:     cfg.Combat.EngineConfig(),
			TickRate:   cfg.Combat.TickRate,
			ResultHold: cfg.Combat.ResultHold,
			LogLines:   cfg.Combat.LogLines,
			Recorder:   recorder,
		},
		Tracker: tracker,
		Logger:  logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	})

	logger.Info("Starting Happy Arena, connect with: ssh -p <port> YourName@localhost",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("monsters", roster.Len()),
	)
	return g.Wait()
}

func ensureHostKey(path string, logger *zap.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	logger.Info("Generating new host key...", zap.String("path", path))
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	pemBlock, err := gossh.MarshalPrivateKey(priv, "")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
