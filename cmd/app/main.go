package main

import (
	"rental/config"
	"rental/di"
	"rental/helper"
	"rental/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
