package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/TaliaJudy/mathquiz/core/logger"
	"github.com/TaliaJudy/mathquiz/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func sendAsync(c tele.Context, action string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := disp.Enqueue(ctx, action, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends plain text to the current recipient through the dispatcher.
func SendText(c tele.Context, text string) error {
	return sendAsync(c, "send.text", func() error {
		return c.Send(text)
	})
}

// SendKeyboard sends plain text with an inline keyboard attached.
func SendKeyboard(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return sendAsync(c, "send.keyboard", func() error {
		return c.Send(text, markup)
	})
}

// EditText replaces the text of the message that triggered the callback.
func EditText(c tele.Context, text string) error {
	return c.EditOrSend(text)
}
