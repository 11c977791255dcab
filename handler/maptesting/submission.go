package maptesting

import (
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/12pm/ddnet-discordbot/config"
	"github.com/12pm/ddnet-discordbot/db"
	"github.com/12pm/ddnet-discordbot/model"
	"github.com/12pm/ddnet-discordbot/utils"
)

// notifyWindow suppresses repeat validation DMs carrying an identical reason.
const notifyWindow = 24 * time.Hour

// MessageCreate is the dispatcher entry point for new messages.
func MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID != config.Cfg.GuildID || m.Author == nil {
		return
	}

	g, err := layout(s)
	if err != nil {
		log.Error().Err(err).Msg("resolving guild layout")
		return
	}

	logger := eventLogger(m.ChannelID, m.ID, m.Author.ID)

	switch m.ChannelID {
	case g.submit.ID:
		handleSubmitMessage(s, g, m.Message, logger)
	case g.announce.ID:
		handleAnnouncement(s, g, m.Message, logger)
	default:
		if ch := g.channelByID(m.ChannelID); g.isMapChannel(ch) {
			handleMapChannelMessage(s, ch, m.Message, logger)
		}
	}
}

// MessageUpdate re-validates edited submissions. Edit payloads may reference
// a message that is not locally cached, so the full message is re-fetched.
func MessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.GuildID != config.Cfg.GuildID {
		return
	}

	g, err := layout(s)
	if err != nil {
		log.Error().Err(err).Msg("resolving guild layout")
		return
	}
	if m.ChannelID != g.submit.ID {
		return
	}

	msg, err := s.ChannelMessage(m.ChannelID, m.ID)
	if err != nil {
		log.Error().Err(err).Str("message_id", m.ID).Msg("fetching edited submission")
		return
	}
	if msg.Author == nil || msg.Author.ID == s.State.User.ID || !hasMapFile(msg) {
		return
	}

	// An accept marker means the submission was already approved; edits to
	// approved submissions are left alone.
	for _, r := range msg.Reactions {
		if r.Emoji.Name == emojiAccept {
			return
		}
	}

	logger := eventLogger(m.ChannelID, m.ID, msg.Author.ID)

	reason := submissionReason(g, msg)
	if reason != "" {
		notifyAuthor(s, msg.Author.ID, reason, logger)
	}

	if err := s.MessageReactionsRemoveAll(msg.ChannelID, msg.ID); err != nil {
		logger.Error().Err(err).Msg("clearing reactions on edited submission")
	}
	marker := emojiCheckmark
	if reason != "" {
		marker = emojiError
	}
	if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, marker); err != nil {
		logger.Error().Err(err).Msg("marking edited submission")
	}
}

func handleSubmitMessage(s *discordgo.Session, g *guildLayout, msg *discordgo.Message, logger zerolog.Logger) {
	if msg.Author.ID == s.State.User.ID {
		return
	}

	if !hasMapFile(msg) {
		// The submit channel is kept clean of non-submission chatter.
		if !isStaff(s, msg.ChannelID, msg.Author.ID) {
			if err := s.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
				logger.Error().Err(err).Msg("deleting non-submission message")
			}
		}
		return
	}

	reason := submissionReason(g, msg)
	if reason != "" {
		notifyAuthor(s, msg.Author.ID, reason, logger)
		logger.Info().Str("filename", msg.Attachments[0].Filename).Str("reason", reason).Msg("submission rejected")
	}

	marker := emojiCheckmark
	if reason != "" {
		marker = emojiError
	}
	if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, marker); err != nil {
		logger.Error().Err(err).Msg("marking submission")
	}
}

func handleMapChannelMessage(s *discordgo.Session, ch *discordgo.Channel, msg *discordgo.Message, logger zerolog.Logger) {
	if hasMapFile(msg) {
		att := msg.Attachments[0]

		topic := model.ParseTopic(ch.Topic)
		if topic != nil && uploadedByAuthor(topic, msg.Author.ID, att.Filename) {
			// A registered author posting the channel's map file is an
			// immediate update: forward it to the test servers.
			uploadMapFile(s, msg, att, msg.Author.ID, false, logger)
			logger.Info().Str("filename", att.Filename).Msg("author uploaded updated map")
		} else if msg.Author.ID != s.State.User.ID {
			if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, emojiCheckmark); err != nil {
				logger.Error().Err(err).Msg("marking map file")
			}
		}

		if err := s.ChannelMessagePin(msg.ChannelID, msg.ID); err != nil {
			logger.Error().Err(err).Msg("pinning map file")
		}
	}

	// Delete the bot's own "pinned a message" system notices.
	if msg.Type == discordgo.MessageTypeChannelPinnedMessage && msg.Author.ID == s.State.User.ID {
		if err := s.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
			logger.Error().Err(err).Msg("deleting pin notice")
		}
	}
}

// Release announcements are posted by an integration webhook and link the
// map's release page.
var releaseRe = regexp.MustCompile(`\[(.+)\]\(<https://ddnet\.tw/maps/\?map=.+?>\)`)

func handleAnnouncement(s *discordgo.Session, g *guildLayout, msg *discordgo.Message, logger zerolog.Logger) {
	if msg.WebhookID == "" {
		return
	}

	match := releaseRe.FindStringSubmatch(msg.Content)
	if match == nil {
		return
	}

	mapChan := g.findMapChannel(utils.Sanitize(match[1]))
	if mapChan == nil {
		return
	}

	applied, err := applyState(s, g, mapChan.ID, model.StateReleased)
	if err != nil {
		logger.Error().Err(err).Str("map_channel", mapChan.Name).Msg("applying release")
		return
	}
	if applied {
		logger.Info().Str("map_channel", mapChan.Name).Msg("map released")
	}
}

// uploadedByAuthor reports whether the file matches the channel's registered
// map and was posted by one of its registered authors.
func uploadedByAuthor(t *model.Topic, authorID, filename string) bool {
	if t.Filename != filename {
		return false
	}
	for _, mention := range t.AuthorMentions() {
		if mention == "<@"+authorID+">" || mention == "<@!"+authorID+">" {
			return true
		}
	}
	return false
}

// notifyAuthor DMs the submitting user the validation failure reason, unless
// the identical reason was already sent within the notify window.
func notifyAuthor(s *discordgo.Session, userID, reason string, logger zerolog.Logger) {
	sent, err := db.WasNotifiedRecently(userID, reason, notifyWindow)
	if err != nil {
		logger.Error().Err(err).Msg("checking notification history")
	}
	if sent {
		return
	}

	dm, err := s.UserChannelCreate(userID)
	if err != nil {
		logger.Error().Err(err).Msg("opening DM channel")
		return
	}
	if _, err := s.ChannelMessageSend(dm.ID, reason); err != nil {
		logger.Error().Err(err).Msg("sending validation DM")
		return
	}
	if err := db.RecordNotification(userID, reason); err != nil {
		logger.Error().Err(err).Msg("recording notification")
	}
}

// eventLogger tags all log output of one event handler invocation with a
// correlation ID and the event's coordinates.
func eventLogger(channelID, messageID, userID string) zerolog.Logger {
	return log.With().
		Str("event_id", uuid.NewString()).
		Str("channel_id", channelID).
		Str("message_id", messageID).
		Str("user_id", userID).
		Logger()
}

// commandLogger is eventLogger's counterpart for slash command invocations.
func commandLogger(i *discordgo.InteractionCreate) zerolog.Logger {
	userID := ""
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	}
	return log.With().
		Str("event_id", uuid.NewString()).
		Str("channel_id", i.ChannelID).
		Str("command", i.ApplicationCommandData().Name).
		Str("user_id", userID).
		Logger()
}
