package maptesting

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/12pm/ddnet-discordbot/config"
	"github.com/12pm/ddnet-discordbot/ddnet"
	"github.com/12pm/ddnet-discordbot/model"
)

// handleApproval processes a staff checkmark on a map file. In the submit
// channel this is the approval transition that creates the map channel; in a
// map channel it re-uploads the updated file.
func handleApproval(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	g, err := layout(s)
	if err != nil {
		log.Error().Err(err).Msg("resolving guild layout")
		return
	}

	ch := g.channelByID(r.ChannelID)
	if ch == nil || (ch.ID != g.submit.ID && !g.isMapChannel(ch)) {
		return
	}
	if !isStaff(s, r.ChannelID, r.UserID) {
		return
	}

	msg, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		log.Error().Err(err).Str("message_id", r.MessageID).Msg("fetching approved message")
		return
	}
	if !hasMapFile(msg) {
		return
	}

	logger := eventLogger(r.ChannelID, r.MessageID, r.UserID)

	if r.ChannelID == g.submit.ID {
		approveSubmission(s, g, msg, r.UserID, logger)
	} else {
		uploadMapFile(s, msg, msg.Attachments[0], r.UserID, true, logger)
	}
}

// approveSubmission creates the map channel for a validated submission,
// copies pre-accept read access onto it, reposts the file there, generates
// the thumbnail and forwards the map to the test servers.
func approveSubmission(s *discordgo.Session, g *guildLayout, msg *discordgo.Message, approverID string, logger zerolog.Logger) {
	// Approval re-runs the full submission check against the listing in
	// hand. The reaction markers are a rendered view of the last verdict,
	// not the verdict itself; an edit or a duplicate appearing since the
	// markers were set must block the approval here.
	if reason := submissionReason(g, msg); reason != "" {
		logger.Info().Str("reason", reason).Msg("approval skipped, submission invalid")
		return
	}

	details := model.ParseMapDetails(msg.Content)
	att := msg.Attachments[0]
	canonical := canonicalName(att.Filename)

	data, err := downloadAttachment(att.URL)
	if err != nil {
		logger.Error().Err(err).Str("filename", att.Filename).Msg("downloading submission attachment")
		return
	}

	topic := model.Topic{
		Details:       *details,
		AuthorMention: msg.Author.Mention(),
		Filename:      att.Filename,
		State:         model.StateTesting,
	}

	// Category overwrites carry the tester/bot/@everyone defaults; on top of
	// them everyone who pre-accepted the submission, plus the author, can
	// read the new channel.
	overwrites := append([]*discordgo.PermissionOverwrite{}, g.testing.PermissionOverwrites...)
	reactors, err := s.MessageReactions(msg.ChannelID, msg.ID, emojiCheckmark, 100, "", "")
	if err != nil {
		logger.Error().Err(err).Msg("listing accept reactors")
	}
	granted := map[string]bool{}
	for _, ow := range overwrites {
		granted[ow.ID] = true
	}
	for _, user := range append(reactors, msg.Author) {
		if user.ID == s.State.User.ID || granted[user.ID] {
			continue
		}
		granted[user.ID] = true
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    user.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel,
		})
	}

	mapChan, err := s.GuildChannelCreateComplex(config.Cfg.GuildID, discordgo.GuildChannelCreateData{
		Name:                 model.ServerTypes[details.Server] + canonical,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                topic.String(),
		ParentID:             g.testing.ID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		logger.Error().Err(err).Str("map", canonical).Msg("creating map channel")
		return
	}

	// The accept marker is the terminal "approved" state of the submission
	// message; re-validation and re-approval stop at it.
	if err := s.MessageReactionsRemoveAll(msg.ChannelID, msg.ID); err != nil {
		logger.Error().Err(err).Msg("clearing submission reactions")
	}
	if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, emojiAccept); err != nil {
		logger.Error().Err(err).Msg("marking submission approved")
	}

	repost, err := s.ChannelMessageSendComplex(mapChan.ID, &discordgo.MessageSend{
		Content: msg.Author.Mention(),
		Files: []*discordgo.File{{
			Name:   att.Filename,
			Reader: bytes.NewReader(data),
		}},
	})
	if err != nil {
		logger.Error().Err(err).Msg("reposting map file")
	}

	postThumbnail(s, mapChan.ID, att.Filename, data, logger)

	status := uploadBytes(data, canonical, approverID, logger)
	if repost != nil {
		markUpload(s, repost.ChannelID, repost.ID, status, false, logger)
	}

	logger.Info().
		Str("map", canonical).
		Str("map_channel_id", mapChan.ID).
		Msg("map submission approved")
}

// postThumbnail writes the map file to the data directory, runs the
// thumbnail generator and posts the image. Failures are logged only; the
// thumbnail never blocks channel creation.
func postThumbnail(s *discordgo.Session, channelID, filename string, data []byte, logger zerolog.Logger) {
	dir := config.Cfg.DataDir
	path := filepath.Join(dir, "maps", filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error().Err(err).Msg("creating maps directory")
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error().Err(err).Msg("writing map file")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	thumb, err := ddnet.GenerateThumbnail(ctx, dir, filename)
	if err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("generating thumbnail")
		return
	}

	f, err := os.Open(thumb)
	if err != nil {
		logger.Error().Err(err).Msg("opening thumbnail")
		return
	}
	defer f.Close()

	_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Files: []*discordgo.File{{Name: filepath.Base(thumb), Reader: f}},
	})
	if err != nil {
		logger.Error().Err(err).Msg("posting thumbnail")
	}
}

// allowedTransition is the lifecycle table. Same-state transitions are
// strict no-ops and rejected here so callers skip the rename entirely.
func allowedTransition(from, to model.MapState) bool {
	if from == to {
		return false
	}
	switch to {
	case model.StateReady:
		return from == model.StateTesting
	case model.StateDeclined:
		return from == model.StateTesting || from == model.StateReady
	case model.StateReleased:
		return from == model.StateReady
	case model.StateTesting:
		return from == model.StateReady || from == model.StateDeclined
	}
	return false
}

// applyState re-reads the channel and applies the target lifecycle state:
// state glyph on the name, category membership, state field in the topic.
// It reports whether anything was changed. Two racing writers both re-read
// before renaming, so the last write wins and a lost race costs at most one
// redundant no-op.
func applyState(s *discordgo.Session, g *guildLayout, channelID string, to model.MapState) (bool, error) {
	ch, err := s.Channel(channelID)
	if err != nil {
		return false, err
	}

	from := deriveState(ch)
	if !allowedTransition(from, to) {
		return false, nil
	}

	base := ch.Name
	if _, ok := model.StateFromGlyph(base); ok {
		base = model.StripLeadingRunes(base, 1)
	}

	parent := g.evaluated.ID
	if to == model.StateTesting {
		parent = g.testing.ID
	}

	topic := ch.Topic
	if t := model.ParseTopic(ch.Topic); t != nil {
		t.State = to
		topic = t.String()
	}

	_, err = s.ChannelEdit(channelID, &discordgo.ChannelEdit{
		Name:     to.Glyph() + base,
		Topic:    topic,
		ParentID: parent,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Command handlers for the staff lifecycle commands. All three share the
// same guard: issued inside a map channel by someone who can manage it.

func readyCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	lifecycleCommand(s, i, model.StateReady)
}

func declineCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	lifecycleCommand(s, i, model.StateDeclined)
}

func resetCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	lifecycleCommand(s, i, model.StateTesting)
}

func lifecycleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, to model.MapState) {
	logger := commandLogger(i)

	g, err := layout(s)
	if err != nil {
		logger.Error().Err(err).Msg("resolving guild layout")
		respondEphemeral(s, i, "Something went wrong, try again later.")
		return
	}

	ch := g.channelByID(i.ChannelID)
	staff := i.Member != nil && i.Member.Permissions&discordgo.PermissionManageChannels != 0

	// Feedback stays ephemeral so a denied command leaks nothing into the
	// channel.
	if !g.isMapChannel(ch) || !staff {
		respondEphemeral(s, i, "This command has no effect here.")
		return
	}

	applied, err := applyState(s, g, ch.ID, to)
	if err != nil {
		logger.Error().Err(err).Msg("applying lifecycle command")
		respondEphemeral(s, i, "Could not update the channel, try again later.")
		return
	}
	if !applied {
		respondEphemeral(s, i, "Nothing to do.")
		return
	}

	logger.Info().Str("state", string(to)).Msg("lifecycle command applied")
	respondEphemeral(s, i, "Map marked as "+string(to)+".")
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("responding to interaction")
	}
}
