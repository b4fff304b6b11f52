package main

import (
	"context"
	"log"
	"os"

	"github.com/lacs/lacsapi/internal/admincli"
	"github.com/lacs/lacsapi/internal/flagx"
	"github.com/lacs/lacsapi/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := admincli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx, flagx.CommandArgs(os.Args[1:])); err != nil {
		log.Fatalf("%v", err)
	}

}
