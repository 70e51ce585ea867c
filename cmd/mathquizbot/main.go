package main

import (
	"log"

	"github.com/TaliaJudy/mathquiz/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}
