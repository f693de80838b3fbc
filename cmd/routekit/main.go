package main

import (
	"routekit/internal/cli"
	"routekit/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{Service: cli.ServiceName})
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatal("routekit failed", "error", err)
	}
}
