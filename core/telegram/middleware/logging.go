package middleware

import (
	"sync"
	"time"

	"github.com/TaliaJudy/mathquiz/core/logger"
	"github.com/TaliaJudy/mathquiz/core/telegram/callbacks"
	tghelpers "github.com/TaliaJudy/mathquiz/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// seenUpdates remembers recently processed update IDs so the receipt line is
// emitted once even when the middleware runs on several branches.
var (
	seenMu      sync.Mutex
	seenUpdates = make(map[int]time.Time)
	seenTTL     = 10 * time.Second
)

func firstSighting(updateID int) bool {
	now := time.Now()
	seenMu.Lock()
	defer seenMu.Unlock()
	for id, ts := range seenUpdates {
		if now.Sub(ts) > seenTTL {
			delete(seenUpdates, id)
		}
	}
	if _, ok := seenUpdates[updateID]; ok {
		return false
	}
	seenUpdates[updateID] = now
	return true
}

// LoggerMiddleware assigns a rid to the update, stores a logging context on
// tele.Context and emits a sampled receipt line.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()

		var chatID, userID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}

		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && firstSighting(upd.ID) {
			attrs := []slog.Attr{
				slog.String("rid", rid),
				slog.Int("update_id", upd.ID),
				slog.Int64("chat_id", chatID),
				slog.Int64("user_id", userID),
			}
			switch {
			case upd.Callback != nil:
				key, payload := callbacks.ParseCallbackData(upd.Callback)
				attrs = append(attrs, slog.String("kind", "callback"))
				if key != "" {
					attrs = append(attrs, slog.String("cb_key", logger.SanitizeLimit(key, 128)))
				}
				if payload != "" {
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(payload, 256)))
				}
			case upd.Message != nil:
				attrs = append(attrs, slog.String("kind", "message"))
				if t := c.Text(); t != "" {
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
				}
			}
			logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}
