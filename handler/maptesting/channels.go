package maptesting

import (
	"github.com/bwmarrin/discordgo"

	"github.com/12pm/ddnet-discordbot/model"
)

// findMapChannel resolves the channel that belongs to a canonical map name.
// Channels in the testing category carry one leading glyph (server type),
// channels in the evaluated category carry two (lifecycle state + server
// type). The scan is linear over the guild's channels; the count is small
// and membership changes rarely, so no index is kept.
func (g *guildLayout) findMapChannel(canonical string) *discordgo.Channel {
	if canonical == "" {
		return nil
	}

	for _, ch := range g.channels {
		if !g.isMapChannel(ch) {
			continue
		}
		strip := 1
		if ch.ParentID == g.evaluated.ID {
			strip = 2
		}
		if model.StripLeadingRunes(ch.Name, strip) == canonical {
			return ch
		}
	}
	return nil
}

// deriveState reads a map channel's lifecycle state. The topic's state field
// is authoritative; the name glyph covers channels predating the field, and
// a glyphless channel counts as still in testing.
func deriveState(ch *discordgo.Channel) model.MapState {
	if t := model.ParseTopic(ch.Topic); t != nil {
		return t.State
	}
	if state, ok := model.StateFromGlyph(ch.Name); ok {
		return state
	}
	return model.StateTesting
}
