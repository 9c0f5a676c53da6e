// Command tracker is a terminal dashboard client: it subscribes to the
// server's websocket stream, polls the latest-fix endpoint as a fallback,
// and prints the merged view.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Patrice250/MyCabinet/config"
	"github.com/Patrice250/MyCabinet/module/tracker"
)

func main() {
	baseURL := flag.String("server", "http://localhost:5002", "API base URL")
	wsURL := flag.String("ws", "ws://localhost:5002/ws", "websocket URL")
	poll := flag.Duration("poll", 10*time.Second, "polling interval")
	flag.Parse()

	logger, err := config.NewLogger("info", "console", "mycabinet-tracker")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := tracker.New()
	go t.Subscribe(ctx, *wsURL, logger)
	go tracker.NewPoller(*baseURL, *poll, t, logger).Run(ctx)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			return
		case <-ticker.C:
			s := t.Snapshot()
			mode := "live"
			if !s.IsRealTime {
				mode = "stale"
			}
			banner := ""
			if s.AlertMode {
				banner = "  !! OUT OF SAFE ZONE: " + s.LastAlert
			}
			log.Printf("[%s] pos=(%.6f, %.6f) updated=%s%s",
				mode, s.Latitude, s.Longitude, s.LastUpdate.Format(time.RFC3339), banner)
		}
	}
}
