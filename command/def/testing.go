package def

import "github.com/bwmarrin/discordgo"

var ReadyCommand = &discordgo.ApplicationCommand{
	Name:        "ready",
	Description: "Ready the map discussed in this channel for release",
}

var DeclineCommand = &discordgo.ApplicationCommand{
	Name:        "decline",
	Description: "Decline the map discussed in this channel",
}

var ResetCommand = &discordgo.ApplicationCommand{
	Name:        "reset",
	Description: "Put the map discussed in this channel back into testing",
}
