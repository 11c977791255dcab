package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/12pm/ddnet-discordbot/command/def"
)

// AllCommands contains all of the commands
var AllCommands = []*discordgo.ApplicationCommand{
	def.ReadyCommand,
	def.DeclineCommand,
	def.ResetCommand,
}
