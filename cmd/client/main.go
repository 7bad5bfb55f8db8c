package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"dlist/client"
	"dlist/config"
	"dlist/logger"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	flag.Parse()

	log := logger.New("main", "info")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found")
	}

	conf, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Crit("Cannot load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	manager, err := client.NewClientsManager(conf)
	if err != nil {
		log.Crit("Cannot create clients manager", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		manager.Cancel()
	}()

	if err := manager.ListenClientActions(); err != nil {
		log.Crit("Clients manager stopped", "error", err)
		os.Exit(1)
	}
}
