package maptesting

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/12pm/ddnet-discordbot/db"
	"github.com/12pm/ddnet-discordbot/ddnet"
)

// attachmentClient fetches attachment files from the platform's CDN.
var attachmentClient = &http.Client{Timeout: 30 * time.Second}

func downloadAttachment(url string) ([]byte, error) {
	resp, err := attachmentClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading attachment: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// uploadMapFile runs the upload protocol for a map attachment: save the file
// to a buffer, forward it to the upload service and mark the triggering
// message with the outcome. Failures are surfaced via the marker only; they
// are not retried and never block the workflow.
func uploadMapFile(s *discordgo.Session, msg *discordgo.Message, att *discordgo.MessageAttachment, uploaderID string, clear bool, logger zerolog.Logger) {
	data, err := downloadAttachment(att.URL)
	if err != nil {
		logger.Error().Err(err).Str("filename", att.Filename).Msg("downloading map attachment")
		markUpload(s, msg.ChannelID, msg.ID, 0, clear, logger)
		return
	}

	status := uploadBytes(data, canonicalName(att.Filename), uploaderID, logger)
	markUpload(s, msg.ChannelID, msg.ID, status, clear, logger)
}

// uploadBytes forwards map file bytes to the upload service and journals the
// attempt. It returns the service's status code, 0 when the call failed
// outright.
func uploadBytes(data []byte, mapName, uploaderID string, logger zerolog.Logger) int {
	ctx, cancel := context.WithTimeout(context.Background(), uploader.Timeout())
	defer cancel()

	status, err := uploader.Upload(ctx, ddnet.AssetMap, bytes.NewReader(data), mapName)
	if err != nil {
		logger.Error().Err(err).Str("map", mapName).Msg("upload request failed")
		status = 0
	}

	if err := db.RecordUpload(mapName, uploaderID, status); err != nil {
		logger.Error().Err(err).Msg("journaling upload")
	}
	return status
}

// markUpload reacts with the upload outcome marker, optionally clearing the
// message's previous markers first.
func markUpload(s *discordgo.Session, channelID, messageID string, status int, clear bool, logger zerolog.Logger) {
	if clear {
		if err := s.MessageReactionsRemoveAll(channelID, messageID); err != nil {
			logger.Error().Err(err).Msg("clearing reactions")
		}
	}

	marker := emojiFailed
	if status == http.StatusOK {
		marker = emojiUploaded
	}
	if err := s.MessageReactionAdd(channelID, messageID, marker); err != nil {
		logger.Error().Err(err).Msg("marking upload outcome")
	}
}
