// Command server runs the moviedeck HTTP API.
//
// Configuration comes from config.yaml (or CONFIG_PATH), an optional .env
// file and the environment. Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/moviedeck-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
