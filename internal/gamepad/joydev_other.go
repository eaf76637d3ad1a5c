//go:build !linux

package gamepad

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// JoydevSource is only available on Linux.
type JoydevSource struct {
	path string
}

func NewJoydevSource(path string, _ hclog.Logger) *JoydevSource {
	return &JoydevSource{path: path}
}

func JoydevPath(index int) string {
	return fmt.Sprintf("/dev/input/js%d", index)
}

func (j *JoydevSource) Connect(context.Context) (<-chan Event, error) {
	return nil, errors.Wrapf(ErrDeviceUnavailable, "joydev not supported, cannot open %s", j.path)
}

func (j *JoydevSource) Close() error { return nil }
