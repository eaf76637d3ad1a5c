package gamepad

// Hat bits of an SDL style hat value.
const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// EventBuffer is the capacity of source event channels.
const EventBuffer = 64

// Frame is the logical pad state decoded from reads of the device. Sources
// diff consecutive frames to produce events. A stick only exists in a frame
// once both of its axes have been read from the device.
type Frame struct {
	valid   bool
	buttons [numButtons]bool
	hat     [numButtons]bool
	left    [2]int
	right   [2]int
	seen    [RightY + 1]bool
}

// NewFrame returns an empty frame with no stick reported yet.
func NewFrame() Frame {
	return Frame{valid: true}
}

// SetButton records the raw button index idx as pressed or released.
func (f *Frame) SetButton(m *DeviceMapping, idx int32, pressed bool) {
	for _, bm := range m.Buttons {
		if bm.Index == idx {
			f.buttons[bm.Target] = pressed
		}
	}
}

// SetAxis records a raw signed axis value for axis index idx.
func (f *Frame) SetAxis(m *DeviceMapping, idx int32, raw int16) {
	for _, am := range m.Axes {
		if am.Index != idx {
			continue
		}
		switch am.Target {
		case LeftX:
			f.left[0] = AxisToByte(raw)
		case LeftY:
			f.left[1] = AxisToByte(raw)
		case RightX:
			f.right[0] = AxisToByte(raw)
		case RightY:
			f.right[1] = AxisToByte(raw)
		case HatX:
			f.hat[ButtonLeft] = raw < -hatThreshold
			f.hat[ButtonRight] = raw > hatThreshold
		case HatY:
			f.hat[ButtonUp] = raw < -hatThreshold
			f.hat[ButtonDown] = raw > hatThreshold
		}
		if am.Target <= RightY {
			f.seen[am.Target] = true
		}
	}
}

// SetHat records an SDL style hat bitmask.
func (f *Frame) SetHat(v uint8) {
	f.hat[ButtonUp] = v&HatUp != 0
	f.hat[ButtonRight] = v&HatRight != 0
	f.hat[ButtonDown] = v&HatDown != 0
	f.hat[ButtonLeft] = v&HatLeft != 0
}

func (f *Frame) pressed(b Button) bool {
	return f.buttons[b] || f.hat[b]
}

func (f *Frame) hasStick(s Stick) bool {
	if s == StickRight {
		return f.seen[RightX] && f.seen[RightY]
	}
	return f.seen[LeftX] && f.seen[LeftY]
}

// stickMoved reports whether stick s must be sent when going from prev to cur.
func stickMoved(prev, cur *Frame, s Stick) bool {
	if !cur.hasStick(s) {
		return false
	}
	if !prev.valid || !prev.hasStick(s) {
		return true
	}
	if s == StickRight {
		return prev.right != cur.right
	}
	return prev.left != cur.left
}

// DiffFrames returns the events that turn prev into cur. Against the zero
// Frame only presses are reported, so untouched buttons stay unset, and
// every reported stick is sent so the input mode is inferred right away.
func DiffFrames(prev, cur *Frame) []Event {
	var events []Event
	for b := Button(0); b < numButtons; b++ {
		p := cur.pressed(b)
		if prev.valid && p == prev.pressed(b) {
			continue
		}
		if !prev.valid && !p {
			continue
		}
		events = append(events, ButtonEvent{Button: b, Pressed: p})
	}
	if stickMoved(prev, cur, StickLeft) {
		events = append(events, MoveEvent{Stick: StickLeft, X: cur.left[0], Y: cur.left[1]})
	}
	if stickMoved(prev, cur, StickRight) {
		events = append(events, MoveEvent{Stick: StickRight, X: cur.right[0], Y: cur.right[1]})
	}
	return events
}
