package app

import (
	"strconv"
	"testing"

	"github.com/TaliaJudy/mathquiz/quiz"
)

func TestAnswerKeyboardOneButtonPerRow(t *testing.T) {
	q := quiz.Question{
		Prompt:  "3 + 4 = ?",
		Correct: 7,
		Options: []int{7, 5, 12, 1},
	}
	markup := answerKeyboard(q)

	if got := len(markup.InlineKeyboard); got != len(q.Options) {
		t.Fatalf("rows = %d, want %d", got, len(q.Options))
	}
	for i, row := range markup.InlineKeyboard {
		if len(row) != 1 {
			t.Fatalf("row %d has %d buttons, want 1", i, len(row))
		}
		want := strconv.Itoa(q.Options[i])
		if row[0].Text != want {
			t.Fatalf("row %d text = %q, want %q", i, row[0].Text, want)
		}
	}
}
