//go:build !linux || sdl

package main

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/soar/ScratchPadBridge/internal/config"
	"github.com/soar/ScratchPadBridge/internal/gamepad"
	"github.com/soar/ScratchPadBridge/internal/gamepad/sdlsource"
)

func init() {
	sourceFactories[config.SourceSDL] = sdlSources
	config.DefaultSource = config.SourceSDL
}

func sdlSources(ctx context.Context, cfg *config.Config, l hclog.Logger, done chan<- error) []gamepad.Source {
	reader := sdlsource.NewReader(l)
	sources := make([]gamepad.Source, 0, cfg.Devices)
	for i := 0; i < cfg.Devices; i++ {
		sources = append(sources, reader.Device(i))
	}
	go func() { done <- reader.Run(ctx) }()
	return sources
}
