package main

import (
	"context"
	"log"

	"github.com/idclxvi/identity-store/internal/app"
	"github.com/idclxvi/identity-store/internal/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
