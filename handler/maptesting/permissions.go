package maptesting

import (
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/12pm/ddnet-discordbot/config"
)

// MessageReactionAdd is the dispatcher entry point for added reactions.
// Accept markers drive permission grants, checkmarks drive approval.
func MessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID || r.GuildID != config.Cfg.GuildID {
		return
	}

	switch r.Emoji.Name {
	case emojiAccept:
		handleAcceptAdd(s, r)
	case emojiCheckmark:
		handleApproval(s, r)
	}
}

// MessageReactionRemove is the dispatcher entry point for removed reactions.
func MessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.UserID == s.State.User.ID || r.GuildID != config.Cfg.GuildID {
		return
	}
	if r.Emoji.Name == emojiAccept {
		handleAcceptRemove(s, r)
	}
}

// handleAcceptAdd grants access for an accept reaction: the testing role
// when reacting in the info channel, read access on the map's own channel
// when reacting on a submission.
func handleAcceptAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	g, err := layout(s)
	if err != nil {
		log.Error().Err(err).Msg("resolving guild layout")
		return
	}

	logger := eventLogger(r.ChannelID, r.MessageID, r.UserID)

	switch r.ChannelID {
	case g.info.ID:
		setTestingRole(s, r.UserID, true, logger)

	case g.submit.ID:
		mapChan, ok := acceptedMapChannel(s, g, r.ChannelID, r.MessageID, logger)
		if !ok {
			return
		}
		if mapChan == nil {
			// No channel to grant access on; remove the reaction to
			// signal that it didn't work.
			if err := s.MessageReactionRemove(r.ChannelID, r.MessageID, emojiAccept, r.UserID); err != nil {
				logger.Error().Err(err).Msg("removing dangling accept reaction")
			}
			return
		}
		grantRead(s, mapChan.ID, r.UserID, logger)
	}
}

// handleAcceptRemove mirrors handleAcceptAdd for retracted reactions.
func handleAcceptRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	g, err := layout(s)
	if err != nil {
		log.Error().Err(err).Msg("resolving guild layout")
		return
	}

	logger := eventLogger(r.ChannelID, r.MessageID, r.UserID)

	switch r.ChannelID {
	case g.info.ID:
		setTestingRole(s, r.UserID, false, logger)

	case g.submit.ID:
		mapChan, ok := acceptedMapChannel(s, g, r.ChannelID, r.MessageID, logger)
		if !ok || mapChan == nil {
			return
		}
		revokeRead(s, mapChan.ID, r.UserID, logger)
	}
}

// acceptedMapChannel resolves the map channel a submission-message reaction
// refers to. ok is false when the message isn't a map submission at all.
func acceptedMapChannel(s *discordgo.Session, g *guildLayout, channelID, messageID string, logger zerolog.Logger) (*discordgo.Channel, bool) {
	msg, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		logger.Error().Err(err).Msg("fetching reacted submission")
		return nil, false
	}
	if !hasMapFile(msg) {
		return nil, false
	}
	return g.findMapChannel(canonicalName(msg.Attachments[0].Filename)), true
}

// grantRead adds an explicit read overwrite for the user unless one is
// already in place. The live overwrite list is re-read before mutating, so
// duplicated or reordered reaction events re-apply the same state instead
// of toggling it.
func grantRead(s *discordgo.Session, channelID, userID string, logger zerolog.Logger) {
	ch, err := s.Channel(channelID)
	if err != nil {
		logger.Error().Err(err).Msg("re-reading map channel")
		return
	}
	if hasReadOverwrite(ch, userID) {
		return
	}
	if err := s.ChannelPermissionSet(channelID, userID, discordgo.PermissionOverwriteTypeMember, discordgo.PermissionViewChannel, 0); err != nil {
		logger.Error().Err(err).Msg("granting read access")
		return
	}
	logger.Info().Str("map_channel_id", channelID).Msg("granted read access")
}

// revokeRead removes the user's explicit read overwrite if there is one,
// falling back to the category's inherited permissions.
func revokeRead(s *discordgo.Session, channelID, userID string, logger zerolog.Logger) {
	ch, err := s.Channel(channelID)
	if err != nil {
		logger.Error().Err(err).Msg("re-reading map channel")
		return
	}
	if !hasReadOverwrite(ch, userID) {
		return
	}
	if err := s.ChannelPermissionDelete(channelID, userID); err != nil {
		logger.Error().Err(err).Msg("revoking read access")
		return
	}
	logger.Info().Str("map_channel_id", channelID).Msg("revoked read access")
}

func hasReadOverwrite(ch *discordgo.Channel, userID string) bool {
	for _, ow := range ch.PermissionOverwrites {
		if ow.ID == userID && ow.Type == discordgo.PermissionOverwriteTypeMember && ow.Allow&discordgo.PermissionViewChannel != 0 {
			return true
		}
	}
	return false
}

// setTestingRole adds or removes the cross-cutting testing role, skipping
// the mutation when the member already has the target state.
func setTestingRole(s *discordgo.Session, userID string, grant bool, logger zerolog.Logger) {
	role := findTestingRole(s)
	if role == nil {
		logger.Error().Str("role", config.Cfg.Testing.TestingRole).Msg("testing role not found")
		return
	}

	member, err := s.GuildMember(config.Cfg.GuildID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("fetching member")
		return
	}

	has := slices.Contains(member.Roles, role.ID)
	switch {
	case grant && !has:
		if err := s.GuildMemberRoleAdd(config.Cfg.GuildID, userID, role.ID); err != nil {
			logger.Error().Err(err).Msg("adding testing role")
		}
	case !grant && has:
		if err := s.GuildMemberRoleRemove(config.Cfg.GuildID, userID, role.ID); err != nil {
			logger.Error().Err(err).Msg("removing testing role")
		}
	}
}

func findTestingRole(s *discordgo.Session) *discordgo.Role {
	roles, err := s.GuildRoles(config.Cfg.GuildID)
	if err != nil {
		return nil
	}
	for _, role := range roles {
		if role.Name == config.Cfg.Testing.TestingRole {
			return role
		}
	}
	return nil
}
