package telegram

import (
	"testing"

	"github.com/TaliaJudy/mathquiz/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestListCommandsFiltersHiddenAndAdmin(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "start"})
	reg.RegisterCommand("/stats", commands.Command{Handler: noopHandler, Description: "stats", AdminOnly: true, Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible commands = %+v, want only /start", visible)
	}

	all := reg.ListCommands(false)
	if len(all) != 2 {
		t.Fatalf("all commands = %d, want 2", len(all))
	}
}

func TestLookupCommandResolvesAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/help", commands.Command{
		Handler:     noopHandler,
		Description: "help",
		Aliases:     []string{"h"},
	})

	key, _, ok := reg.LookupCommand("/help")
	if !ok || key != "/help" {
		t.Fatalf("direct lookup failed: key=%q ok=%v", key, ok)
	}
	key, _, ok = reg.LookupCommand("/h")
	if !ok || key != "/help" {
		t.Fatalf("alias lookup failed: key=%q ok=%v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("/missing"); ok {
		t.Fatal("lookup of unregistered command should fail")
	}
}

func TestCallbackRegistrationAndLookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("answer", noopHandler); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	if _, ok := reg.GetCallback("answer"); !ok {
		t.Fatal("registered callback not found")
	}
	if _, ok := reg.GetCallback("other"); ok {
		t.Fatal("unregistered callback should not resolve")
	}
	keys := reg.ListCallbacks()
	if len(keys) != 1 || keys[0] != "answer" {
		t.Fatalf("callback keys = %v", keys)
	}
}
