package main

import (
	"context"
	"time"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/database"
	"github.com/Tanupriya0912/Job-portal/internal/log"
	"github.com/Tanupriya0912/Job-portal/internal/provision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect mongo")
	}

	err = provision.New(client, logger).Apply(ctx, provision.Plan())
	if derr := client.Disconnect(context.Background()); derr != nil {
		logger.Error().Err(derr).Msg("mongo disconnect error")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("provisioning failed")
	}
	logger.Info().Msg("databases provisioned")
}
