package gamepad

// Button identifies one of the sixteen digital controls of a pad.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	Button1
	Button2
	Button3
	Button4
	ButtonL1
	ButtonL2
	ButtonR1
	ButtonR2
	ButtonJoystickLeft
	ButtonJoystickRight
	ButtonSelect
	ButtonStart

	numButtons
)

var buttonNames = [numButtons]string{
	ButtonUp:            "up",
	ButtonDown:          "down",
	ButtonLeft:          "left",
	ButtonRight:         "right",
	Button1:             "1",
	Button2:             "2",
	Button3:             "3",
	Button4:             "4",
	ButtonL1:            "l1",
	ButtonL2:            "l2",
	ButtonR1:            "r1",
	ButtonR2:            "r2",
	ButtonJoystickLeft:  "joystick_left_button",
	ButtonJoystickRight: "joystick_right_button",
	ButtonSelect:        "select",
	ButtonStart:         "start",
}

func (b Button) String() string {
	if b >= numButtons {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton maps an event-source control name to a Button.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// Stick identifies one of the two analog sticks.
type Stick uint8

const (
	StickLeft Stick = iota
	StickRight
)

func (s Stick) String() string {
	if s == StickRight {
		return "joystick_right"
	}
	return "joystick_left"
}

// ParseStick maps an event-source joystick name to a Stick.
func ParseStick(name string) (Stick, bool) {
	switch name {
	case "joystick_left":
		return StickLeft, true
	case "joystick_right":
		return StickRight, true
	}
	return 0, false
}
