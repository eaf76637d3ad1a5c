package gamepad

import (
	"strconv"
	"strings"
	"sync"
)

// Mode is the inferred input mode of a pad.
type Mode uint8

const (
	ModeUnknown Mode = iota
	ModeDigital
	ModeAnalog
)

// String renders the mode as a Scratch boolean; an unknown mode is "undefined".
func (m Mode) String() string {
	switch m {
	case ModeAnalog:
		return "true"
	case ModeDigital:
		return "false"
	}
	return "undefined"
}

// Mid returns the stick idle value used for rescaling in this mode.
func (m Mode) Mid() int {
	if m == ModeAnalog {
		return MidAnalog
	}
	return MidDigital
}

type rawAxis struct {
	x, y int
	set  bool
}

// scaled returns the rescaled (x, y) pair with y negated. An axis that never
// moved compares neither above nor below mid and yields 0.
func (a rawAxis) scaled(mid int) (float64, float64) {
	if !a.set {
		return 0, 0
	}
	return AnalogXYToScratch(a.x, false, mid), AnalogXYToScratch(a.y, true, mid)
}

func (a rawAxis) xIs(v int) bool { return a.set && a.x == v }
func (a rawAxis) yIs(v int) bool { return a.set && a.y == v }

// Snapshot is the last known state of one pad. It is safe for concurrent use.
type Snapshot struct {
	mu      sync.Mutex
	index   int
	buttons map[Button]bool
	left    rawAxis
	right   rawAxis
	mode    Mode
}

// NewSnapshot returns an empty snapshot for device slot index.
func NewSnapshot(index int) *Snapshot {
	return &Snapshot{
		index:   index,
		buttons: make(map[Button]bool),
	}
}

// Index returns the device slot of the snapshot.
func (s *Snapshot) Index() int {
	return s.index
}

// Mode returns the inferred input mode.
func (s *Snapshot) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Apply updates the snapshot with a button or move event. It reports whether
// the event was one the snapshot consumes; ErrorEvent is left to the owner.
func (s *Snapshot) Apply(e Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := e.(type) {
	case ButtonEvent:
		if ev.Button >= numButtons {
			return false
		}
		s.buttons[ev.Button] = ev.Pressed
	case MoveEvent:
		a := rawAxis{x: ev.X, y: ev.Y, set: true}
		switch ev.Stick {
		case StickLeft:
			s.left = a
			// A centered stick idles at 128 in analog mode and 127 in digital
			// mode. Switching mode while the stick is held is misread.
			switch ev.X {
			case MidAnalog:
				s.mode = ModeAnalog
			case MidDigital:
				s.mode = ModeDigital
			}
		case StickRight:
			s.right = a
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (s *Snapshot) pressed(b Button) bool {
	return s.buttons[b]
}

func (s *Snapshot) buttonText(b Button) string {
	v, ok := s.buttons[b]
	if !ok {
		return "undefined"
	}
	return strconv.FormatBool(v)
}

// direction reports a D-pad button, substituting the left stick resting at an
// extreme while the pad is not in analog mode.
func (s *Snapshot) direction(b Button) bool {
	if s.pressed(b) {
		return true
	}
	if s.mode == ModeAnalog {
		return false
	}
	switch b {
	case ButtonUp:
		return s.left.yIs(0)
	case ButtonRight:
		return s.left.xIs(255)
	case ButtonDown:
		return s.left.yIs(255)
	case ButtonLeft:
		return s.left.xIs(0)
	}
	return false
}

// buttonAxis synthesizes a stick axis from two opposing face buttons.
func (s *Snapshot) buttonAxis(pos, neg Button) float64 {
	p, n := s.pressed(pos), s.pressed(neg)
	switch {
	case p && !n:
		return 100
	case n && !p:
		return -100
	}
	return 0
}

// rightStick returns the right stick values; outside analog mode the face
// buttons 2/4 and 1/3 stand in for X and Y.
func (s *Snapshot) rightStick() (float64, float64) {
	if s.mode == ModeAnalog {
		return s.right.scaled(MidAnalog)
	}
	return s.buttonAxis(Button2, Button4), s.buttonAxis(Button1, Button3)
}

// Scratchify renders the snapshot in the Scratch 2.0 HTTP extension poll
// format, one "<path> <value>\n" record per reporter.
func (s *Snapshot) Scratchify() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := strconv.Itoa(s.index)
	var sb strings.Builder
	line := func(path, value string) {
		sb.WriteString(path)
		sb.WriteByte('/')
		sb.WriteString(idx)
		sb.WriteByte(' ')
		sb.WriteString(value)
		sb.WriteByte('\n')
	}

	line("button/˄", strconv.FormatBool(s.direction(ButtonUp)))
	line("button/˃", strconv.FormatBool(s.direction(ButtonRight)))
	line("button/˅", strconv.FormatBool(s.direction(ButtonDown)))
	line("button/˂", strconv.FormatBool(s.direction(ButtonLeft)))

	line("button/1", s.buttonText(Button1))
	line("button/2", s.buttonText(Button2))
	line("button/3", s.buttonText(Button3))
	line("button/4", s.buttonText(Button4))
	line("button/l1", s.buttonText(ButtonL1))
	line("button/l2", s.buttonText(ButtonL2))
	line("button/r1", s.buttonText(ButtonR1))
	line("button/r2", s.buttonText(ButtonR2))
	line("button/joystick_left", s.buttonText(ButtonJoystickLeft))
	line("button/joystick_right", s.buttonText(ButtonJoystickRight))
	line("button/select", s.buttonText(ButtonSelect))
	line("button/start", s.buttonText(ButtonStart))

	lx, ly := s.left.scaled(s.mode.Mid())
	line("joystick/x/left", FormatNumber(lx))
	line("joystick/y/left", FormatNumber(ly))
	line("joystick_angle/left", FormatNumber(XYToAngle(lx, ly)))

	rx, ry := s.rightStick()
	line("joystick/x/right", FormatNumber(rx))
	line("joystick/y/right", FormatNumber(ry))
	line("joystick_angle/right", FormatNumber(XYToAngle(rx, ry)))

	line("analog", s.mode.String())

	return sb.String()
}
