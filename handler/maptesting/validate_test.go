package maptesting

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubmission(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		reason := validateSubmission(`"Kobra 3" by Tater [Brutal]`, "kobra_3.map", nil)
		assert.Empty(t, reason)
	})

	t.Run("missing bracketed server is malformed", func(t *testing.T) {
		reason := validateSubmission(`"Kobra 3" by Tater`, "kobra_3.map", nil)
		assert.Contains(t, reason, "correctly formatted details")
	})

	t.Run("name and filename must canonicalize equally", func(t *testing.T) {
		reason := validateSubmission(`"Kobra 3" by Tater [Brutal]`, "cobra_3.map", nil)
		assert.Contains(t, reason, "do not match")
	})

	t.Run("canonicalization folds case", func(t *testing.T) {
		// Kobra_3.map vs "kobra 3" differ only by case; canonicalization
		// folds it, so this must pass.
		reason := validateSubmission(`"kobra 3" by Tater [Brutal]`, "Kobra_3.map", nil)
		assert.Empty(t, reason)
	})

	t.Run("invalid server type enumerates the valid ones", func(t *testing.T) {
		reason := validateSubmission(`"Kobra 3" by Tater [Impossible]`, "kobra_3.map", nil)
		assert.Contains(t, reason, "server type")
		assert.Contains(t, reason, "Novice")
		assert.Contains(t, reason, "Race")
	})

	t.Run("duplicate references the existing channel", func(t *testing.T) {
		duplicate := &discordgo.Channel{ID: "42"}
		reason := validateSubmission(`"Kobra 3" by Tater [Brutal]`, "kobra_3.map", duplicate)
		assert.Contains(t, reason, "already exists")
		assert.Contains(t, reason, "<#42>")
	})

	t.Run("duplicate wins regardless of caption", func(t *testing.T) {
		// Any submission canonicalizing to an existing channel's name is a
		// duplicate, caption differences don't matter.
		duplicate := &discordgo.Channel{ID: "42"}
		reason := validateSubmission(`"KOBRA 3" by Someone Else [Novice]`, "KOBRA_3.map", duplicate)
		assert.Contains(t, reason, "already exists")
	})

	t.Run("idempotent for unchanged inputs", func(t *testing.T) {
		caption, filename := `"Kobra 3" by Tater [Brutal]`, "kobra_3.map"
		first := validateSubmission(caption, filename, nil)
		second := validateSubmission(caption, filename, nil)
		assert.Equal(t, first, second)
	})
}

// submissionReason gates approval as well as the submit handlers; these cases
// pin down that an invalid or duplicate submission is rejected no matter what
// reaction markers the message carries.
func TestSubmissionReason(t *testing.T) {
	g := testLayout()

	msg := func(caption, filename string) *discordgo.Message {
		return &discordgo.Message{
			Content:     caption,
			Attachments: []*discordgo.MessageAttachment{{Filename: filename}},
		}
	}

	t.Run("valid submission passes", func(t *testing.T) {
		reason := submissionReason(g, msg(`"Viper Den" by Tater [Brutal]`, "Viper_Den.map"))
		assert.Empty(t, reason)
	})

	t.Run("unknown server type is rejected", func(t *testing.T) {
		// Approved anyway, the unknown server type would yield a glyphless
		// channel: findMapChannel always strips one leading rune in the
		// testing category, so such a channel is lost to every later
		// lookup and duplicate detection for the map is gone for good.
		reason := submissionReason(g, msg(`"Viper Den" by Tater [Impossible]`, "Viper_Den.map"))
		assert.Contains(t, reason, "server type")

		g.channels = append(g.channels, &discordgo.Channel{
			ID: "ch-viper", Type: discordgo.ChannelTypeGuildText, Name: "viper_den", ParentID: "cat-testing",
		})
		assert.Nil(t, g.findMapChannel("viper_den"))
	})

	t.Run("existing channel is rejected as duplicate", func(t *testing.T) {
		reason := submissionReason(g, msg(`"Kobra 3" by Tater [Brutal]`, "kobra_3.map"))
		assert.Contains(t, reason, "<#ch-kobra>")
	})
}
