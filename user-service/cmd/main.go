package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/azaliaz/luxefurnish/user-service/internal/config"
	"github.com/azaliaz/luxefurnish/user-service/internal/logger"
	"github.com/azaliaz/luxefurnish/user-service/internal/server"
	"github.com/azaliaz/luxefurnish/user-service/internal/storage"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log := logger.Get(cfg.Debug)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer cancel()

	log.Debug().Str("addr", cfg.Addr).Str("migrations", cfg.MigratePath).Msg("config loaded")

	var stor server.Storage
	db, err := storage.NewDB(ctx, cfg.DBDsn)
	if err != nil {
		log.Error().Err(err).Msg("connecting to data base failed, using in-memory storage")
		stor = storage.New()
	} else {
		defer db.Close()
		if err = storage.Migrations(cfg.DBDsn, cfg.MigratePath); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		stor = db
	}
	if err = storage.SeedAdmin(stor, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin account failed")
	}

	serv := server.New(*cfg, stor)
	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serv.Run(gCtx)
	})
	group.Go(func() error {
		<-gCtx.Done()
		log.Debug().Msg("ctx cancel; catch os signal")
		return serv.ShutdownServer()
	})

	if err = group.Wait(); err != nil {
		log.Info().Str("stopping reason", err.Error()).Msg("server stopped")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
