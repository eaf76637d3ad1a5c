package gamepad

import "testing"

func TestAxisToByte(t *testing.T) {
	tests := []struct {
		raw  int16
		want int
	}{
		{-32768, 0},
		{0, 128},
		{-256, 127},
		{32767, 255},
	}
	for _, tt := range tests {
		if got := AxisToByte(tt.raw); got != tt.want {
			t.Errorf("AxisToByte(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestGetMapping(t *testing.T) {
	if m := GetMapping(0x046D, 0xC216); m.Name != "dual_action" {
		t.Errorf("Dual Action mapped to %s", m.Name)
	}
	if m := GetMapping(0x1234, 0x5678); m != genericMapping {
		t.Errorf("unknown device mapped to %s", m.Name)
	}
	if m := GetMappingByName("Logitech Logitech Dual Action"); m.Name != "dual_action" {
		t.Errorf("name lookup gave %s", m.Name)
	}
	if m := GetMappingByName("DragonRise Inc.   Generic   USB  Joystick  "); m.Name != "dragonrise" {
		t.Errorf("name lookup gave %s", m.Name)
	}
	if m := GetMappingByName("Twin USB Gamepad"); m.Name != "dragonrise" {
		t.Errorf("name lookup gave %s", m.Name)
	}
	if m := GetMappingByName("Something Else"); m != genericMapping {
		t.Errorf("unknown name mapped to %s", m.Name)
	}
}

func TestDiffFramesInitial(t *testing.T) {
	prev := Frame{}
	cur := NewFrame()
	cur.SetButton(dualActionMapping, 1, true)
	cur.SetAxis(dualActionMapping, 0, -256)
	cur.SetAxis(dualActionMapping, 1, -256)

	events := DiffFrames(&prev, &cur)
	want := []Event{
		ButtonEvent{Button: Button2, Pressed: true},
		MoveEvent{Stick: StickLeft, X: 127, Y: 127},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(events), events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, events[i], want[i])
		}
	}
}

func TestDiffFramesChanges(t *testing.T) {
	prev := NewFrame()
	prev.SetButton(dualActionMapping, 9, true)
	prev.SetAxis(dualActionMapping, 2, 0)
	prev.SetAxis(dualActionMapping, 3, 0)
	cur := prev
	cur.SetButton(dualActionMapping, 9, false)
	cur.SetAxis(dualActionMapping, 5, -32768)
	cur.SetAxis(dualActionMapping, 2, 32767)

	events := DiffFrames(&prev, &cur)
	want := []Event{
		ButtonEvent{Button: ButtonUp, Pressed: true},
		ButtonEvent{Button: ButtonStart, Pressed: false},
		MoveEvent{Stick: StickRight, X: 255, Y: 128},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(events), events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, events[i], want[i])
		}
	}

	if got := DiffFrames(&cur, &cur); len(got) != 0 {
		t.Errorf("identical frames produced %v", got)
	}
}

func TestDiffFramesStickNeedsBothAxes(t *testing.T) {
	prev := Frame{}
	cur := NewFrame()
	cur.SetAxis(dualActionMapping, 0, 32767)
	if got := DiffFrames(&prev, &cur); len(got) != 0 {
		t.Fatalf("stick with one axis read produced %v", got)
	}

	// Hat axes do not count towards a stick.
	cur.SetAxis(dualActionMapping, 4, 0)
	if got := DiffFrames(&prev, &cur); len(got) != 0 {
		t.Fatalf("hat axis produced %v", got)
	}

	prev = cur
	cur.SetAxis(dualActionMapping, 1, 0)
	got := DiffFrames(&prev, &cur)
	want := MoveEvent{Stick: StickLeft, X: 255, Y: 128}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %v, want [%#v]", got, want)
	}
}

func TestFrameHat(t *testing.T) {
	f := NewFrame()
	f.SetHat(HatUp | HatLeft)
	if !f.pressed(ButtonUp) || !f.pressed(ButtonLeft) || f.pressed(ButtonDown) || f.pressed(ButtonRight) {
		t.Errorf("hat decoded as %v", f.hat)
	}
}
