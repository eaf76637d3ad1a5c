package gamepad

import (
	"strings"

	"github.com/pkg/errors"
)

// Event is one of ButtonEvent, MoveEvent or ErrorEvent.
type Event interface {
	isEvent()
}

// ButtonEvent reports a press (Pressed=true) or release of a digital control.
type ButtonEvent struct {
	Button  Button
	Pressed bool
}

// MoveEvent carries a raw stick sample. X and Y are device bytes (0..255) and
// are passed through unchecked.
type MoveEvent struct {
	Stick Stick
	X     int
	Y     int
}

// ErrorEvent reports that the device failed and must be reinitialized.
type ErrorEvent struct {
	Err error
}

func (ButtonEvent) isEvent() {}
func (MoveEvent) isEvent() {}
func (ErrorEvent) isEvent() {}

// XY is the payload of a named move event.
type XY struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ErrUnknownEvent is returned by ParseEvent for names outside the known set.
var ErrUnknownEvent = errors.New("unknown event")

// ParseEvent converts a named event ("up:press", "joystick_left:move",
// "error", ...) and its payload into a typed Event. Move events expect an XY
// (or *XY) payload, error events accept an error or any other value as the
// description.
func ParseEvent(name string, payload any) (Event, error) {
	if name == "error" {
		switch p := payload.(type) {
		case error:
			return ErrorEvent{Err: p}, nil
		case string:
			return ErrorEvent{Err: errors.New(p)}, nil
		default:
			return ErrorEvent{Err: errors.Errorf("device error: %v", p)}, nil
		}
	}

	control, action, ok := strings.Cut(name, ":")
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEvent, "%q", name)
	}

	switch action {
	case "press", "release":
		b, ok := ParseButton(control)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEvent, "%q", name)
		}
		return ButtonEvent{Button: b, Pressed: action == "press"}, nil
	case "move":
		s, ok := ParseStick(control)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEvent, "%q", name)
		}
		var xy XY
		switch p := payload.(type) {
		case XY:
			xy = p
		case *XY:
			if p != nil {
				xy = *p
			}
		default:
			return nil, errors.Errorf("%s: unexpected payload %T", name, payload)
		}
		return MoveEvent{Stick: s, X: xy.X, Y: xy.Y}, nil
	}
	return nil, errors.Wrapf(ErrUnknownEvent, "%q", name)
}
