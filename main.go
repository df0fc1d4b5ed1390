// apps/go-solver/main.go
//
// Entry point for the Wordle solver.
// Loads .env (development), then hands over to the cobra command tree.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	if err := Execute(); err != nil {
		log.Error().Err(err).Msg("wordle-solver failed")
		os.Exit(1)
	}
}
