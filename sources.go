package main

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/soar/ScratchPadBridge/internal/config"
	"github.com/soar/ScratchPadBridge/internal/gamepad"
)

// sourceFactory returns one Source per device slot. Long running readers
// report their exit on done.
type sourceFactory func(ctx context.Context, cfg *config.Config, l hclog.Logger, done chan<- error) []gamepad.Source

var sourceFactories = map[string]sourceFactory{
	config.SourceJoydev: joydevSources,
}

func joydevSources(_ context.Context, cfg *config.Config, l hclog.Logger, _ chan<- error) []gamepad.Source {
	sources := make([]gamepad.Source, 0, cfg.Devices)
	for i := 0; i < cfg.Devices; i++ {
		sources = append(sources, gamepad.NewJoydevSource(cfg.DevicePath(i, gamepad.JoydevPath), l))
	}
	return sources
}

func openSources(ctx context.Context, cfg *config.Config, l hclog.Logger, done chan<- error) ([]gamepad.Source, error) {
	factory, ok := sourceFactories[cfg.Source]
	if !ok {
		return nil, errors.Errorf("source %q not compiled in (build with -tags sdl)", cfg.Source)
	}
	return factory(ctx, cfg, l, done), nil
}
