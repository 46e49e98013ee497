package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/mineru/config"
	"github.com/adrianliechti/mineru/pkg/otel"
	"github.com/adrianliechti/mineru/server"
)

func main() {
	configFlag := flag.String("config", "", "config file")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "mineru-server")

	if err != nil {
		slog.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}

	defer shutdown(context.Background())

	cfg := config.Default()

	if *configFlag != "" {
		if cfg, err = config.Parse(*configFlag); err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
