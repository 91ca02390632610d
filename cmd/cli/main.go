package main

import (
	"context"
	"log"
	"os"

	"github.com/ehimavote/evote/internal/buildinfo"
	"github.com/ehimavote/evote/internal/client/cli"
	"github.com/ehimavote/evote/internal/client/config"
	"github.com/ehimavote/evote/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
