package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/crudkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/crudkeeper/internal/client/cli"
	"github.com/dmitrijs2005/crudkeeper/internal/client/config"
	"github.com/dmitrijs2005/crudkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "cannot start console", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
