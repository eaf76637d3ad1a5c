package main

import (
	"context"
	"io/fs"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/soar/ScratchPadBridge/internal/config"
)

func TestLocalURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:9000", "http://localhost:9000"},
		{"127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"[::]:8080", "http://localhost:8080"},
		{"pad.local", "http://pad.local"},
	}
	for _, tt := range tests {
		if got := localURL(tt.addr); got != tt.want {
			t.Errorf("localURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestWebFSHasDescriptor(t *testing.T) {
	if _, err := fs.Stat(getWebFS(), "extension.s2e"); err != nil {
		t.Fatal(err)
	}
}

func TestOpenSources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)

	cfg := &config.Config{Source: config.SourceJoydev, Devices: 3}
	sources, err := openSources(ctx, cfg, hclog.NewNullLogger(), done)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 3 {
		t.Errorf("got %d sources, want 3", len(sources))
	}

	cfg.Source = "nope"
	if _, err := openSources(ctx, cfg, hclog.NewNullLogger(), done); err == nil {
		t.Error("unknown source accepted")
	}
}
