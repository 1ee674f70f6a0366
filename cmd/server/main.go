// Package main - Entry point for the tax-dashboard HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tax-dashboard/api"
	"tax-dashboard/internal/config"
	"tax-dashboard/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", config.DefaultPath(), "config file")
	addr := flag.String("addr", "", "server address (overrides config)")
	flag.Parse()

	if err := run(*cfgFile, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, addr string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	logging.Info("schedules loaded", zap.Strings("names", registry.Names()), zap.String("default", registry.Default()))

	server := api.NewServer(version, registry, logging.Named("api"))
	server.Handler().SetWindows(cfg.Indicator.ShortWindow, cfg.Indicator.LongWindow)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg.Server.Addr, time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
}
