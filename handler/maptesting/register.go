package maptesting

import (
	"time"

	"github.com/12pm/ddnet-discordbot/command/def"
	"github.com/12pm/ddnet-discordbot/config"
	"github.com/12pm/ddnet-discordbot/ddnet"
	"github.com/12pm/ddnet-discordbot/handler"
)

var uploader *ddnet.UploadClient

// RegisterHandlers registers the slash command handlers and finishes
// package setup. Call after the config is loaded.
func RegisterHandlers() {
	uploader = ddnet.NewUploadClient(
		config.Cfg.Upload.URL,
		config.Cfg.Upload.Token,
		time.Duration(config.Cfg.Upload.TimeoutSeconds)*time.Second,
	)

	handler.AddCommandHandler(def.ReadyCommand.Name, readyCommandHandler)
	handler.AddCommandHandler(def.DeclineCommand.Name, declineCommandHandler)
	handler.AddCommandHandler(def.ResetCommand.Name, resetCommandHandler)
}
