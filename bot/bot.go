package bot

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/12pm/ddnet-discordbot/command"
	"github.com/12pm/ddnet-discordbot/config"
	"github.com/12pm/ddnet-discordbot/handler/maptesting"
)

var dg *discordgo.Session

// Start connects to the gateway, registers the guild commands and blocks
// until the process is signalled to stop.
func Start() {
	maptesting.RegisterHandlers()

	var err error
	dg, err = discordgo.New("Bot " + config.Cfg.Token)
	if err != nil {
		log.Error().Err(err).Msg("creating session")
		return
	}

	registerEventHandlers(dg)

	err = dg.Open()
	if err != nil {
		log.Error().Err(err).Msg("opening connection")
		return
	}

	for _, cmd := range command.AllCommands {
		_, err := dg.ApplicationCommandCreate(dg.State.User.ID, config.Cfg.GuildID, cmd)
		if err != nil {
			log.Fatal().Err(err).Str("command", cmd.Name).Msg("cannot create command")
		}
	}

	log.Info().Msg("bot is now running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
}

// GetSession returns the current Discord session.
func GetSession() *discordgo.Session {
	return dg
}
