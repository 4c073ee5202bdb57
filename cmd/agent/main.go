package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/agent/apiclient"
	"github.com/hrsuite/presence-monitor-go/internal/agent/capture"
	"github.com/hrsuite/presence-monitor-go/internal/agent/monitor"
	"github.com/hrsuite/presence-monitor-go/internal/agent/presence"
	"github.com/hrsuite/presence-monitor-go/internal/config"
)

func main() {
	cfg, err := config.LoadAgent()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(
		slog.String("app", "presence-monitor-agent"),
	)

	client := apiclient.New(cfg.APIBaseURL, cfg.AccessToken)

	clock := capture.NewRealClock()
	planner := capture.NewPlanner(rand.New(rand.NewSource(time.Now().UnixNano())))
	session := capture.NewSession(clock, capture.NewScreenDevice(), client, planner, logger)
	timer := presence.NewTimer(nil, logger)

	orchestrator := monitor.NewOrchestrator(
		cfg.Role,
		cfg.PollInterval,
		timer,
		client,
		client,
		session,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orchestrator.Start(ctx)
	logger.Info("Agent started", "role", cfg.Role, "api", cfg.APIBaseURL)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var last presence.Snapshot
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			orchestrator.Stop()
			return
		case <-ticker.C:
			snap := orchestrator.Timer().Snapshot()
			if snap != last {
				fmt.Printf("\r[%s] %s ", snap.State, snap.Display)
				last = snap
			}
		}
	}
}
