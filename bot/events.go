package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/12pm/ddnet-discordbot/handler"
	"github.com/12pm/ddnet-discordbot/handler/maptesting"
)

func registerEventHandlers(s *discordgo.Session) {
	s.AddHandler(handler.OnInteractionCreate)
	s.AddHandler(maptesting.MessageCreate)
	s.AddHandler(maptesting.MessageUpdate)
	s.AddHandler(maptesting.MessageReactionAdd)
	s.AddHandler(maptesting.MessageReactionRemove)

	// Message content is needed to read submission captions and release
	// announcements.
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent
}
