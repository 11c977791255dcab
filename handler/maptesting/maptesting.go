// Package maptesting implements the map review workflow: submissions in the
// submit channel are validated and, once approved by staff, get their own
// channel in the testing category, move through ready/declined/released via
// commands and release announcements, and have reviewer access kept in sync
// with accept reactions.
//
// No workflow state is cached between events. Every handler re-reads the
// authoritative state (channel names, topics, permission overwrites, live
// reaction lists) from the platform, so duplicated or reordered events
// re-apply the same target state instead of drifting from it.
package maptesting

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/12pm/ddnet-discordbot/config"
	"github.com/12pm/ddnet-discordbot/utils"
)

const mapFileSuffix = ".map"

// Reaction markers. The checkmark doubles as the pending marker set by the
// bot and the approval trigger clicked by staff; the accept marker drives
// permission grants and marks approved submissions.
const (
	emojiCheckmark = "☑"
	emojiAccept    = "✅"
	emojiError     = "❗"
	emojiUploaded  = "🆙"
	emojiFailed    = "❌"
)

// guildLayout is a snapshot of the guild's channel listing with the fixed
// workflow channels resolved by their configured names. It is rebuilt from a
// fresh listing for every event, never cached across events.
type guildLayout struct {
	testing   *discordgo.Channel // "Map Testing" category
	evaluated *discordgo.Channel // "Evaluated Maps" category
	submit    *discordgo.Channel
	info      *discordgo.Channel
	announce  *discordgo.Channel
	channels  []*discordgo.Channel
}

// layout fetches the guild's channels and resolves the workflow channels.
func layout(s *discordgo.Session) (*guildLayout, error) {
	channels, err := s.GuildChannels(config.Cfg.GuildID)
	if err != nil {
		return nil, fmt.Errorf("fetching guild channels: %w", err)
	}

	cfg := config.Cfg.Testing
	g := &guildLayout{channels: channels}
	for _, ch := range channels {
		switch {
		case ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == cfg.TestingCategory:
			g.testing = ch
		case ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == cfg.EvaluatedCategory:
			g.evaluated = ch
		case ch.Type == discordgo.ChannelTypeGuildText && ch.Name == cfg.SubmitChannel:
			g.submit = ch
		case ch.Type == discordgo.ChannelTypeGuildText && ch.Name == cfg.InfoChannel:
			g.info = ch
		case ch.Type == discordgo.ChannelTypeGuildText && ch.Name == cfg.AnnounceChannel:
			g.announce = ch
		}
	}

	if g.testing == nil || g.evaluated == nil || g.submit == nil || g.info == nil || g.announce == nil {
		return nil, fmt.Errorf("guild is missing one of the workflow channels")
	}
	return g, nil
}

func (g *guildLayout) channelByID(id string) *discordgo.Channel {
	for _, ch := range g.channels {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// isMapChannel reports whether ch is a per-map discussion channel: a text
// channel in either workflow category that isn't one of the fixed channels.
func (g *guildLayout) isMapChannel(ch *discordgo.Channel) bool {
	if ch == nil || ch.Type != discordgo.ChannelTypeGuildText {
		return false
	}
	if ch.ParentID != g.testing.ID && ch.ParentID != g.evaluated.ID {
		return false
	}
	return ch.ID != g.submit.ID && ch.ID != g.info.ID
}

// hasMapFile reports whether the message carries a map file attachment.
func hasMapFile(m *discordgo.Message) bool {
	return len(m.Attachments) > 0 && strings.HasSuffix(m.Attachments[0].Filename, mapFileSuffix)
}

// canonicalName derives the canonical map identifier from an attachment
// filename. It matches utils.Sanitize applied to the display name, which is
// what makes the name/filename equality check meaningful.
func canonicalName(filename string) string {
	return utils.Sanitize(strings.TrimSuffix(filename, mapFileSuffix))
}

// isStaff reports whether the user can manage the given channel.
func isStaff(s *discordgo.Session, channelID, userID string) bool {
	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionManageChannels != 0
}
