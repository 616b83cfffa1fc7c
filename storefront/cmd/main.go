package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/azaliaz/luxefurnish/storefront/internal/auth"
	"github.com/azaliaz/luxefurnish/storefront/internal/cart"
	"github.com/azaliaz/luxefurnish/storefront/internal/catalog"
	"github.com/azaliaz/luxefurnish/storefront/internal/config"
	"github.com/azaliaz/luxefurnish/storefront/internal/localstore"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
	"github.com/azaliaz/luxefurnish/storefront/internal/session"
	"github.com/azaliaz/luxefurnish/storefront/internal/shell"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log := logger.Get(cfg.Debug)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer cancel()

	log.Debug().Str("auth", cfg.AuthURL).Str("state", cfg.StateDir).Msg("config loaded")

	var kv localstore.Store = localstore.NewFileStore(cfg.StateDir)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err = client.Ping(ctx).Err(); err != nil {
			log.Error().Err(err).Msg("connecting to redis failed, using local state directory")
			_ = client.Close()
		} else {
			defer client.Close()
			kv = localstore.NewRedisStore(client, "")
		}
	}

	sess := session.New(kv)
	if sess.Restore(ctx) {
		log.Debug().Msg("session restored")
	}
	store := cart.New()
	if cfg.PersistCart {
		store = cart.NewPersistent(ctx, kv)
	}

	authService := auth.NewService(
		auth.NewClient(cfg.AuthURL, cfg.AuthTimeout),
		sess,
		auth.WithAdminFastPath(auth.NewAdminFastPath(cfg.AdminEmail, cfg.AdminPassHash, cfg.AdminRedirectURL)),
		auth.WithAdminRedirect(cfg.AdminRedirectURL),
	)
	sh := shell.New(os.Stdin, os.Stdout, shell.Deps{
		Catalog: catalog.Default(),
		Cart:    store,
		Session: sess,
		Auth:    authService,
	})

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer cancel()
		return sh.Run(gCtx)
	})
	group.Go(func() error {
		<-gCtx.Done()
		log.Debug().Msg("ctx cancel; storefront closing")
		return nil
	})

	if err = group.Wait(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("storefront stopped")
		os.Exit(1)
	}
}
