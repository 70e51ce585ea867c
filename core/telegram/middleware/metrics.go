package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// metricsContext wraps tele.Context to count outgoing messages and record
// whether any of them carried an inline keyboard.
type metricsContext struct{ tele.Context }

func (m metricsContext) bump(withKB bool) {
	n := 0
	if v, ok := m.Get("messages").(int); ok {
		n = v
	}
	m.Set("messages", n+1)
	if withKB {
		m.Set("kb", true)
	}
}

func carriesKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.bump(carriesKeyboard(opts))
	}
	return err
}

func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.bump(carriesKeyboard(opts))
	}
	return err
}

func (m metricsContext) EditOrSend(what interface{}, opts ...interface{}) error {
	err := m.Context.EditOrSend(what, opts...)
	if err == nil {
		m.bump(carriesKeyboard(opts))
	}
	return err
}

// MessageMetricsMiddleware instruments the context so handler summaries can
// report how many messages were sent and whether a keyboard was shown.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set("messages", 0)
		c.Set("kb", false)
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads the message count and keyboard flag back from context.
func GetCounters(c tele.Context) (int, bool) {
	msgs := 0
	if v, ok := c.Get("messages").(int); ok {
		msgs = v
	}
	kb := false
	if v, ok := c.Get("kb").(bool); ok {
		kb = v
	}
	return msgs, kb
}
