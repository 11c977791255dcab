package maptesting

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

// hasReadOverwrite is what makes grantRead and revokeRead idempotent: a
// duplicated reaction event must see the overwrite already in its target
// state and skip the write.
func TestHasReadOverwrite(t *testing.T) {
	ch := func(ows ...*discordgo.PermissionOverwrite) *discordgo.Channel {
		return &discordgo.Channel{PermissionOverwrites: ows}
	}
	member := func(id string, allow int64) *discordgo.PermissionOverwrite {
		return &discordgo.PermissionOverwrite{
			ID:    id,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: allow,
		}
	}

	t.Run("member overwrite with view access", func(t *testing.T) {
		assert.True(t, hasReadOverwrite(ch(member("u1", discordgo.PermissionViewChannel)), "u1"))
	})

	t.Run("no overwrites", func(t *testing.T) {
		assert.False(t, hasReadOverwrite(ch(), "u1"))
	})

	t.Run("another user's overwrite", func(t *testing.T) {
		assert.False(t, hasReadOverwrite(ch(member("u2", discordgo.PermissionViewChannel)), "u1"))
	})

	t.Run("role overwrite with a matching id does not count", func(t *testing.T) {
		ow := &discordgo.PermissionOverwrite{
			ID:    "u1",
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel,
		}
		assert.False(t, hasReadOverwrite(ch(ow), "u1"))
	})

	t.Run("member overwrite without the view bit", func(t *testing.T) {
		assert.False(t, hasReadOverwrite(ch(member("u1", discordgo.PermissionSendMessages)), "u1"))
	})
}
