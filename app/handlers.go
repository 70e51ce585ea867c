package app

import (
	"fmt"
	"strconv"

	"github.com/TaliaJudy/mathquiz/core/logger"
	coretelegram "github.com/TaliaJudy/mathquiz/core/telegram"
	"github.com/TaliaJudy/mathquiz/core/telegram/callbacks"
	"github.com/TaliaJudy/mathquiz/core/telegram/commands"
	tghelpers "github.com/TaliaJudy/mathquiz/core/telegram/helpers"
	"github.com/TaliaJudy/mathquiz/core/telegram/keyboard"
	"github.com/TaliaJudy/mathquiz/gate"
	"github.com/TaliaJudy/mathquiz/quiz"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

const answerCallbackKey = "answer"

const (
	msgGreeting    = "Hello! I am the Math Gate Bot. Send a message to continue."
	msgHelp        = "Send any message and solve the arithmetic question to get verified.\nA wrong answer locks you out for 24 hours."
	msgSuccess     = "✅ Correct! You may now send messages."
	msgFailure     = "❌ Wrong! You are locked for 24 hours."
	msgLockedFmt   = "Wrong answer before. Wait %dh until next try."
	msgNoChallenge = "Send a message first to get a question."
)

func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Greet and explain the verification flow",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "How the math gate works",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Store counters",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(a.handleGateText)
	_ = reg.RegisterCallback(answerCallbackKey, a.handleAnswer)

	return reg
}

func (a *App) handleStart(c tele.Context) error {
	return tghelpers.SendText(c, msgGreeting)
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, msgHelp)
}

func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	st, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	logger.Info(ctx, "store", "stats",
		slog.Int("users_total", st.Total),
		slog.Int("users_verified", st.Verified),
		slog.Int("users_locked", st.Locked),
	)
	return tghelpers.SendText(c, fmt.Sprintf(
		"Users: %d\nVerified: %d\nLocked: %d", st.Total, st.Verified, st.Locked))
}

// handleGateText is the text fallback: every non-command message goes through
// the gate, which either relays it, issues a challenge, or refuses.
func (a *App) handleGateText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	out, err := a.gate.HandleText(ctx, c.Sender().ID)
	if err != nil {
		return err
	}

	switch out.Kind {
	case gate.OutcomeRelay:
		return tghelpers.SendText(c, c.Text())
	case gate.OutcomeRefuse:
		return tghelpers.SendText(c, fmt.Sprintf(msgLockedFmt, out.HoursLeft))
	default:
		return tghelpers.SendKeyboard(c, out.Question.Prompt, answerKeyboard(out.Question))
	}
}

func (a *App) handleAnswer(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	choice, err := callbacks.PayloadInt(c)
	if err != nil {
		logger.Warn(ctx, "gate", "answer.bad_payload",
			slog.String("payload", logger.SanitizeLimit(callbacks.Payload(c), 64)),
		)
		return nil
	}

	verdict, err := a.gate.HandleAnswer(ctx, c.Sender().ID, choice)
	if err != nil {
		return err
	}

	switch verdict {
	case gate.VerdictCorrect:
		return tghelpers.EditText(c, msgSuccess)
	case gate.VerdictWrong:
		return tghelpers.EditText(c, msgFailure)
	default:
		return tghelpers.EditText(c, msgNoChallenge)
	}
}

// answerKeyboard renders one inline button per option, one option per row.
func answerKeyboard(q quiz.Question) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(q.Options))
	for _, opt := range q.Options {
		v := strconv.Itoa(opt)
		btns = append(btns, keyboard.InlineBtn{
			Text:   v,
			Unique: answerCallbackKey,
			Data:   v,
		})
	}
	return keyboard.InlineButtons(btns)
}
