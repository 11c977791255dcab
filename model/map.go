package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/12pm/ddnet-discordbot/utils"
)

// ServerTypes maps every accepted server type to the glyph a map channel's
// name is prefixed with.
var ServerTypes = map[string]string{
	"Novice":    "👶",
	"Moderate":  "🌸",
	"Brutal":    "💪",
	"Insane":    "💀",
	"Dummy":     "♿",
	"Oldschool": "👴",
	"Solo":      "⚡",
	"Race":      "🏁",
}

// ServerTypeOrder lists the server types in the order they are presented to
// users, e.g. in validation error messages.
var ServerTypeOrder = []string{
	"Novice", "Moderate", "Brutal", "Insane", "Dummy", "Oldschool", "Solo", "Race",
}

// MapState is a map channel's lifecycle state. It is persisted in the
// channel's topic; the name glyph and parent category are a rendered view.
type MapState string

const (
	StateTesting  MapState = "testing"
	StateReady    MapState = "ready"
	StateDeclined MapState = "declined"
	StateReleased MapState = "released"
)

var stateGlyphs = map[MapState]string{
	StateReady:    "📆",
	StateDeclined: "❌",
	StateReleased: "🔥",
}

// Glyph returns the channel-name prefix for the state. Testing has none.
func (s MapState) Glyph() string {
	return stateGlyphs[s]
}

// Valid reports whether s is a known lifecycle state.
func (s MapState) Valid() bool {
	switch s {
	case StateTesting, StateReady, StateDeclined, StateReleased:
		return true
	}
	return false
}

// StateFromGlyph matches a channel name's leading glyph against the known
// state glyphs.
func StateFromGlyph(name string) (MapState, bool) {
	for state, glyph := range stateGlyphs {
		if strings.HasPrefix(name, glyph) {
			return state, true
		}
	}
	return "", false
}

// StripLeadingRunes drops the first n runes of s, used to peel state and
// server glyphs off a channel name.
func StripLeadingRunes(s string, n int) string {
	for i := 0; i < n && s != ""; i++ {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

// MapDetails is the structured form of a submission caption.
type MapDetails struct {
	Name    string
	Mappers []string
	Server  string
}

// Caption format: `"<name>" by <mapper[, mapper...]> [<server>]`
var (
	detailsRe     = regexp.MustCompile(`^"(.+)" +by +(.+) +\[(.+)\]$`)
	mapperSplitRe = regexp.MustCompile(` , |, | & | and `)
)

// ParseMapDetails parses a submission caption. It returns nil when the text
// does not match the grammar; that is not an error, the caller reports it.
// The server token is case-normalized only if the normalized form is a known
// server type, otherwise it is kept as-is for error reporting.
func ParseMapDetails(content string) *MapDetails {
	match := detailsRe.FindStringSubmatch(strings.TrimSpace(content))
	if match == nil {
		return nil
	}

	server := match[3]
	if normalized := capitalize(server); ServerTypes[normalized] != "" {
		server = normalized
	}

	return &MapDetails{
		Name:    match[1],
		Mappers: mapperSplitRe.Split(match[2], -1),
		Server:  server,
	}
}

// CanonicalName is the channel-safe identifier for the map's display name.
func (d *MapDetails) CanonicalName() string {
	return utils.Sanitize(d.Name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}

// Topic is the structured text stored in a map channel's topic. The first
// two lines match the historical format, the state line carries the
// authoritative lifecycle state.
type Topic struct {
	Details       MapDetails
	AuthorMention string
	Filename      string
	State         MapState
}

var topicHeaderRe = regexp.MustCompile(`^\*\*"(.+)"\*\* by (.+) \[(.+)\]$`)

// String renders the topic:
//
//	**"<name>"** by **<mapper>** [& **<mapper>**] [<server>]
//	<author mention> | <filename>
//	state: <state>
func (t *Topic) String() string {
	mappers := make([]string, len(t.Details.Mappers))
	for i, m := range t.Details.Mappers {
		mappers[i] = fmt.Sprintf("**%s**", m)
	}

	return fmt.Sprintf("**\"%s\"** by %s [%s]\n%s | %s\nstate: %s",
		t.Details.Name, utils.HumanJoin(mappers), t.Details.Server,
		t.AuthorMention, t.Filename, t.State)
}

// ParseTopic decodes a map channel's topic. It returns nil if the topic does
// not carry the expected structure. A missing state line yields StateTesting
// so channels predating the state field still resolve.
func ParseTopic(topic string) *Topic {
	lines := strings.Split(topic, "\n")
	if len(lines) < 2 {
		return nil
	}

	header := topicHeaderRe.FindStringSubmatch(lines[0])
	if header == nil {
		return nil
	}

	mention, filename, ok := strings.Cut(lines[1], " | ")
	if !ok {
		return nil
	}

	mappers := mapperSplitRe.Split(header[2], -1)
	for i, m := range mappers {
		mappers[i] = strings.Trim(m, "*")
	}

	t := &Topic{
		Details: MapDetails{
			Name:    header[1],
			Mappers: mappers,
			Server:  header[3],
		},
		AuthorMention: mention,
		Filename:      filename,
		State:         StateTesting,
	}

	for _, line := range lines[2:] {
		if state, ok := strings.CutPrefix(line, "state: "); ok {
			if s := MapState(state); s.Valid() {
				t.State = s
			}
		}
	}

	return t
}

// AuthorMentions splits the topic's mention field; multiple registered
// authors are space-separated.
func (t *Topic) AuthorMentions() []string {
	return strings.Split(t.AuthorMention, " ")
}
