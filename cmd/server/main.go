package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dlist/api"
	"dlist/config"
	"dlist/logger"
	"dlist/server"

	"github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
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

	store := server.NewStore()

	s, err := server.NewServer(conf, store)
	if err != nil {
		log.Crit("Cannot create server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		s.Cancel()
	}()

	if conf.HTTPAddr != "" {
		httpServer := newHTTPServer(conf, store)
		go func() {
			log.Info("Starting list API", "address", conf.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("List API failed", "error", err)
			}
		}()
		defer httpServer.Shutdown(context.Background())
	}

	if err := s.StartServer(); err != nil {
		log.Crit("Server stopped", "error", err)
		os.Exit(1)
	}
}

func newHTTPServer(conf *config.Config, store *server.Store) *http.Server {
	container := restful.NewContainer()
	api.RegisterRoutes(container, api.NewHandler(store, logger.New("api", conf.LogLevel)))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:    conf.HTTPAddr,
		Handler: corsHandler.Handler(container),
	}
}
