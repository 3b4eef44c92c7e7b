package main

import (
	"context"
	"fmt"

	"github.com/subbuk987/Fundoo/internal/cache"
	"github.com/subbuk987/Fundoo/internal/config"
	handlerhttp "github.com/subbuk987/Fundoo/internal/handler/http"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/mail"
	"github.com/subbuk987/Fundoo/internal/server"
	"github.com/subbuk987/Fundoo/internal/service"
	"github.com/subbuk987/Fundoo/internal/store"
	"github.com/subbuk987/Fundoo/internal/worker"
	"github.com/subbuk987/Fundoo/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fundoo-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	kv, err := cache.NewConnectRedis(ctx, cfg.Storage.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to redis")
	}
	defer kv.Close()

	storages := store.NewStorages(db, log)
	views := cache.NewViewCache(kv, log)
	blocklist := cache.NewBlocklist(kv, cfg.App.BlocklistTTL, log)
	sender := mail.NewGatewaySender(cfg.Mail, log)

	queue := worker.NewQueue(cfg.Workers.Count, log)
	queue.Start(ctx)
	defer queue.Stop()

	services := service.NewServices(storages, views, blocklist, queue, sender, cfg.App, log)

	sweeper := worker.NewExpirySweeper(
		storages.NoteRepository,
		sender,
		queue,
		cfg.Workers.SweepInterval,
		cfg.Workers.NotifyWindow,
		log,
	)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
