package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/soar/ScratchPadBridge/internal/config"
	"github.com/soar/ScratchPadBridge/internal/gamepad"
	"github.com/soar/ScratchPadBridge/internal/hub"
	"github.com/soar/ScratchPadBridge/internal/server"
	"github.com/soar/ScratchPadBridge/internal/tray"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	l := hclog.New(&hclog.LoggerOptions{
		Name:  "scratchpad",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	if err := run(cfg, l); err != nil {
		l.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, l hclog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	changes := make(chan int, 64)

	// Device sources
	sourceDone := make(chan error, 1)
	sources, err := openSources(ctx, cfg, l, sourceDone)
	if err != nil {
		return err
	}

	adapters := make([]*gamepad.Adapter, len(sources))
	for i, src := range sources {
		adapters[i] = gamepad.NewAdapter(i, src,
			gamepad.WithLogger(l.Named("adapter")),
			gamepad.WithRetryDelay(cfg.RetryDelay),
			gamepad.WithChanges(changes))
	}
	pool := gamepad.NewPool(adapters...)

	poolDone := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(poolDone)
	}()

	var (
		h           *hub.Hub
		broadcaster *hub.Broadcaster
	)
	if cfg.WebSocket {
		h = hub.NewHub(l.Named("hub"))
		go h.Run(ctx)
		broadcaster = hub.NewBroadcaster(h, pool, changes)
		go broadcaster.Run(ctx)
	}

	srv, err := server.New(l.Named("http"), pool, h, broadcaster, getWebFS(), cfg.Listen)
	if err != nil {
		return err
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := localURL(cfg.Listen) + "/poll"
	l.Info("ScratchPad Bridge started", "poll", url, "source", cfg.Source, "devices", cfg.Devices)

	shutdownRequested := make(chan struct{})
	var t *tray.Tray
	if cfg.Tray {
		t = tray.New(l, url, func() {
			close(shutdownRequested)
		})
		go t.Run(tray.GetIcon())
	} else {
		l.Info("Press Ctrl+C to exit")
	}

	select {
	case <-sigCh:
		l.Info("Shutting down...")
	case <-shutdownRequested:
		l.Info("Shutdown requested from tray")
	case err := <-serverErrCh:
		l.Error("HTTP server error", "error", err)
	case err := <-sourceDone:
		if err != nil {
			l.Error("Device source stopped", "error", err)
		}
	}
	cancel()
	if t != nil {
		t.Quit()
	}

	<-poolDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Warn("HTTP server shutdown error", "error", err)
	}

	l.Info("ScratchPad Bridge stopped")
	return nil
}

// localURL turns a listen address into a URL reachable from this machine.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
