package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapDetails(t *testing.T) {
	t.Run("full caption", func(t *testing.T) {
		d := ParseMapDetails(`"Kobra 3" by Tater [Brutal]`)
		require.NotNil(t, d)
		assert.Equal(t, "Kobra 3", d.Name)
		assert.Equal(t, []string{"Tater"}, d.Mappers)
		assert.Equal(t, "Brutal", d.Server)
	})

	t.Run("multiple mappers", func(t *testing.T) {
		d := ParseMapDetails(`"Teamwork" by Tater, Ravie & Knuski and Cellegen [Moderate]`)
		require.NotNil(t, d)
		assert.Equal(t, []string{"Tater", "Ravie", "Knuski", "Cellegen"}, d.Mappers)
	})

	t.Run("server type is case-normalized", func(t *testing.T) {
		d := ParseMapDetails(`"Kobra 3" by Tater [bRUTAL]`)
		require.NotNil(t, d)
		assert.Equal(t, "Brutal", d.Server)
	})

	t.Run("unknown server type is passed through for error reporting", func(t *testing.T) {
		d := ParseMapDetails(`"Kobra 3" by Tater [Impossible]`)
		require.NotNil(t, d)
		assert.Equal(t, "Impossible", d.Server)
	})

	t.Run("tolerates extra whitespace", func(t *testing.T) {
		d := ParseMapDetails(`"Kobra 3"   by   Tater   [Brutal]`)
		require.NotNil(t, d)
		assert.Equal(t, "Kobra 3", d.Name)
	})

	t.Run("missing bracketed server", func(t *testing.T) {
		assert.Nil(t, ParseMapDetails(`"Kobra 3" by Tater`))
	})

	t.Run("missing quotes", func(t *testing.T) {
		assert.Nil(t, ParseMapDetails(`Kobra 3 by Tater [Brutal]`))
	})

	t.Run("empty content", func(t *testing.T) {
		assert.Nil(t, ParseMapDetails(""))
	})
}

func TestTopicRoundTrip(t *testing.T) {
	cases := []Topic{
		{
			Details:       MapDetails{Name: "Kobra 3", Mappers: []string{"Tater"}, Server: "Brutal"},
			AuthorMention: "<@123>",
			Filename:      "kobra_3.map",
			State:         StateTesting,
		},
		{
			Details:       MapDetails{Name: "Teamwork", Mappers: []string{"Tater", "Ravie", "Knuski"}, Server: "Moderate"},
			AuthorMention: "<@123> <@456>",
			Filename:      "teamwork.map",
			State:         StateReady,
		},
	}

	for _, want := range cases {
		got := ParseTopic(want.String())
		require.NotNil(t, got, "topic %q should parse", want.String())
		assert.Equal(t, &want, got)
	}
}

func TestParseTopic(t *testing.T) {
	t.Run("missing state line defaults to testing", func(t *testing.T) {
		got := ParseTopic("**\"Kobra 3\"** by **Tater** [Brutal]\n<@123> | kobra_3.map")
		require.NotNil(t, got)
		assert.Equal(t, StateTesting, got.State)
	})

	t.Run("multiple author mentions", func(t *testing.T) {
		got := ParseTopic("**\"Teamwork\"** by **Tater** & **Ravie** [Moderate]\n<@123> <@456> | teamwork.map\nstate: testing")
		require.NotNil(t, got)
		assert.Equal(t, []string{"<@123>", "<@456>"}, got.AuthorMentions())
	})

	t.Run("unstructured topic", func(t *testing.T) {
		assert.Nil(t, ParseTopic("general discussion about maps"))
		assert.Nil(t, ParseTopic(""))
	})
}

func TestMapState(t *testing.T) {
	t.Run("glyphs", func(t *testing.T) {
		assert.Equal(t, "", StateTesting.Glyph())
		assert.Equal(t, "📆", StateReady.Glyph())
		assert.Equal(t, "❌", StateDeclined.Glyph())
		assert.Equal(t, "🔥", StateReleased.Glyph())
	})

	t.Run("from glyph", func(t *testing.T) {
		state, ok := StateFromGlyph("📆kobra_3")
		require.True(t, ok)
		assert.Equal(t, StateReady, state)

		_, ok = StateFromGlyph("💪kobra_3")
		assert.False(t, ok)
	})
}

func TestStripLeadingRunes(t *testing.T) {
	assert.Equal(t, "kobra_3", StripLeadingRunes("💪kobra_3", 1))
	assert.Equal(t, "kobra_3", StripLeadingRunes("📆💪kobra_3", 2))
	assert.Equal(t, "", StripLeadingRunes("ab", 5))
}

func TestServerTypes(t *testing.T) {
	assert.Len(t, ServerTypeOrder, len(ServerTypes))
	for _, name := range ServerTypeOrder {
		assert.Contains(t, ServerTypes, name)
	}
}
