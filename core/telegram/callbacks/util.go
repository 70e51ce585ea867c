package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits telebot's "\f<unique>|<payload>" callback encoding
// into its key and payload. Either part may be empty.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\\f")
	parts := strings.SplitN(raw, "|", 2)
	key := strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		return key, parts[1]
	}
	return key, ""
}

// Key returns the callback key for the current update.
func Key(c tele.Context) string {
	k, _ := ParseCallbackData(c.Callback())
	return k
}

// Payload returns the callback payload for the current update.
func Payload(c tele.Context) string {
	_, p := ParseCallbackData(c.Callback())
	return p
}
