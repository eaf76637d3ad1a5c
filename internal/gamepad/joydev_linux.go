//go:build linux

package gamepad

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	jsIOCGName    = 0x80006a13 + (128 << 16)
	jsIOCGAxes    = 0x80016a11
	jsIOCGButtons = 0x80016a12

	jsEventButton uint8 = 0x01
	jsEventAxis   uint8 = 0x02
	jsEventInit   uint8 = 0x80

	jsEventSize = 8
)

// jsEvent is struct js_event from linux/joystick.h.
type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

// JoydevSource reads a pad from a Linux joystick device such as /dev/input/js0.
type JoydevSource struct {
	l    hclog.Logger
	path string

	mu   sync.Mutex
	file *os.File
}

// NewJoydevSource returns a Source reading the joystick device at path.
func NewJoydevSource(path string, l hclog.Logger) *JoydevSource {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	return &JoydevSource{l: l.Named("joydev"), path: path}
}

// JoydevPath returns the conventional device path for slot index.
func JoydevPath(index int) string {
	return fmt.Sprintf("/dev/input/js%d", index)
}

func (j *JoydevSource) Connect(ctx context.Context) (<-chan Event, error) {
	f, err := os.OpenFile(j.path, os.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrDeviceUnavailable, "open %s", j.path)
		}
		return nil, errors.Wrapf(err, "open %s", j.path)
	}

	name, axes, buttons, err := queryJoydev(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "query %s", j.path)
	}
	mapping := GetMappingByName(name)
	j.l.Info("Joystick connected", "path", j.path, "name", name,
		"mapping", mapping.Name, "axes", axes, "buttons", buttons)

	j.mu.Lock()
	j.file = f
	j.mu.Unlock()

	events := make(chan Event, EventBuffer)
	go j.readLoop(ctx, f, mapping, events)
	return events, nil
}

func (j *JoydevSource) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// readLoop decodes js_event records until the device fails or is closed.
// The kernel replays the current state as init records right after open.
// Init records already buffered are folded into one frame, and a stick is
// only reported once both of its axes have been read.
func (j *JoydevSource) readLoop(ctx context.Context, f *os.File, m *DeviceMapping, events chan<- Event) {
	defer close(events)

	br := bufio.NewReader(f)
	prev := Frame{}
	cur := NewFrame()
	for {
		var e jsEvent
		if err := binary.Read(br, binary.LittleEndian, &e); err != nil {
			select {
			case events <- ErrorEvent{Err: errors.Wrapf(err, "read %s", j.path)}:
			case <-ctx.Done():
			}
			return
		}

		switch e.Type &^ jsEventInit {
		case jsEventButton:
			cur.SetButton(m, int32(e.Number), e.Value != 0)
		case jsEventAxis:
			cur.SetAxis(m, int32(e.Number), e.Value)
		}
		if e.Type&jsEventInit != 0 && br.Buffered() >= jsEventSize {
			continue
		}

		for _, ev := range DiffFrames(&prev, &cur) {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
		prev = cur
	}
}

func queryJoydev(f *os.File) (name string, axes, buttons uint8, err error) {
	buf := make([]byte, 128)
	if err = ioctl(f, jsIOCGName, unsafe.Pointer(&buf[0])); err != nil {
		return
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	name = string(buf)
	if err = ioctl(f, jsIOCGAxes, unsafe.Pointer(&axes)); err != nil {
		return
	}
	err = ioctl(f, jsIOCGButtons, unsafe.Pointer(&buttons))
	return
}

func ioctl(f *os.File, req uintptr, dest unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(dest))
	if errno != 0 {
		return errors.Wrap(errno, "ioctl")
	}
	return nil
}
