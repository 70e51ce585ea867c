package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"
)

const defaultLongPollTimeoutSeconds = 10

// BuildPoller returns a long poller with the configured timeout.
// Updates are consumed exclusively via long polling; there is no webhook mode.
func BuildPoller(timeoutSeconds int) tele.Poller {
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultLongPollTimeoutSeconds
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSeconds) * time.Second}
}
