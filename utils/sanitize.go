package utils

import (
	"strings"
)

// maxChannelName is the platform's limit for channel names.
const maxChannelName = 100

// Sanitize normalizes a map's display name into its canonical channel-safe
// identifier: lower-cased, spaces turned into underscores, anything outside
// the channel-name charset dropped. The same function applied to an
// attachment's filename stem yields the key used for duplicate detection, so
// it must stay deterministic and idempotent.
func Sanitize(name string) string {
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxChannelName {
		out = out[:maxChannelName]
	}
	return out
}

// HumanJoin joins a sequence for display: "a", "a & b", "a, b & c".
func HumanJoin(seq []string) string {
	switch len(seq) {
	case 0:
		return ""
	case 1:
		return seq[0]
	default:
		return strings.Join(seq[:len(seq)-1], ", ") + " & " + seq[len(seq)-1]
	}
}
