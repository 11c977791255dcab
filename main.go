package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/12pm/ddnet-discordbot/bot"
	"github.com/12pm/ddnet-discordbot/config"
	"github.com/12pm/ddnet-discordbot/db"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(config.Cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing log level")
	}
	zerolog.SetGlobalLevel(level)

	if config.Cfg.Token == "" {
		log.Fatal().Msg("no bot token configured")
	}

	db.InitDB(config.Cfg.Database.Path)

	bot.Start()
}
