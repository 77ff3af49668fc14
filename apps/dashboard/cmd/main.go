package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"land-regen/apps/dashboard"
	"land-regen/shared/backend"
	"land-regen/shared/config"
	"land-regen/shared/monitoring"
	"land-regen/shared/scheduler"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	monitor := monitoring.NewMonitor()
	client := backend.NewClient(&cfg.Backend, monitor)

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		log.Printf("Running once against %s", client.BaseURL())
		if err := dashboard.RunOnce(ctx, cfg, client, os.Stdout); err != nil {
			log.Fatalf("Failed to run: %v", err)
		}
		return
	}

	// The TUI owns the terminal from here on
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "land-regen")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if cfg.Monitoring.HealthPort > 0 {
		healthServer := monitoring.NewHealthServer(monitor, cfg.Monitoring.HealthPort)
		healthServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			healthServer.Stop(shutdownCtx)
		}()
	}

	p := tea.NewProgram(dashboard.New(ctx, cfg, client), tea.WithAltScreen(), tea.WithContext(ctx))

	probe := scheduler.New(cfg, client, func(err error) {
		p.Send(dashboard.BackendStatusMsg{Err: err})
	})
	go func() {
		if err := probe.Start(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Backend probe failed to start: %v", err)
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Fatalf("Dashboard failed: %v", err)
	}
}
