package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/spigell/sourcing-agent/cmd"
)

func main() {
	// A missing .env is fine: the environment may already be set.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
