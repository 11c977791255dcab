package maptesting

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/12pm/ddnet-discordbot/model"
)

// validateSubmission checks a submission's caption and filename against the
// naming rules and returns a user-facing reason for the first failing rule,
// or the empty string when the submission is valid. duplicate is the
// already-existing channel for the submission's canonical name, if any.
//
// The check is a pure function of caption, filename and channel snapshot: it
// mutates nothing and yields the same verdict on first submission and on
// every later edit of the same inputs.
func validateSubmission(caption, filename string, duplicate *discordgo.Channel) string {
	details := model.ParseMapDetails(caption)
	if details == nil {
		return "Your map submission does not contain correctly formatted details."
	}

	if details.CanonicalName() != canonicalName(filename) {
		return "Name and filename of your map submission do not match."
	}

	if _, ok := model.ServerTypes[details.Server]; !ok {
		return fmt.Sprintf("The server type of your map submission is not one of `%s`.",
			strings.Join(model.ServerTypeOrder, ", "))
	}

	if duplicate != nil {
		return fmt.Sprintf("A channel for the map you submitted already exists: <#%s>", duplicate.ID)
	}

	return ""
}

// submissionReason runs validateSubmission against a submission message and
// the given channel snapshot. Initial validation, edit re-validation and the
// approval gate all go through here, so a submission that fails one fails all
// of them.
func submissionReason(g *guildLayout, msg *discordgo.Message) string {
	filename := msg.Attachments[0].Filename
	return validateSubmission(msg.Content, filename, g.findMapChannel(canonicalName(filename)))
}
