// Package sdlsource reads pads through the SDL3 Joystick API. Importing it
// loads libSDL3 at program start, so it is only linked into builds that ask
// for it.
package sdlsource

import (
	"context"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"

	"github.com/soar/ScratchPadBridge/internal/gamepad"
)

const pollDelayNS = 16_000_000 // ~60Hz

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
	slot     int
	prev     gamepad.Frame
	sub      *sdlDevice
}

// Reader reads pads through the SDL3 Joystick API. Pads are assigned to the
// lowest free slot when they appear; Device returns the Source for a slot.
type Reader struct {
	l         hclog.Logger
	joysticks map[sdl.JoystickID]*joystickInfo
	mu        sync.Mutex
}

// NewReader returns a Reader logging to l.
func NewReader(l hclog.Logger) *Reader {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	return &Reader{
		l:         l.Named("sdl"),
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}
}

// Device returns the Source for device slot index.
func (r *Reader) Device(index int) gamepad.Source {
	return &sdlDevice{r: r, index: index}
}

// Run initializes SDL and runs the event+polling loop on the current thread
// until ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return errors.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	r.l.Info("SDL3 Joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.pollState(ctx)
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.l.Warn("Failed to open joystick", "id", instanceID, "error", sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := gamepad.GetMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
		slot:     r.freeSlot(),
	}
	r.joysticks[jsID] = info

	r.l.Info("Joystick connected",
		"name", name,
		"vid", hclog.Fmt("%04X", vendorID),
		"pid", hclog.Fmt("%04X", productID),
		"mapping", mapping.Name,
		"slot", info.slot,
		"axes", sdl.GetNumJoystickAxes(js),
		"buttons", sdl.GetNumJoystickButtons(js),
		"hats", sdl.GetNumJoystickHats(js))
}

// freeSlot returns the lowest slot not held by an open joystick.
func (r *Reader) freeSlot() int {
	used := make(map[int]bool, len(r.joysticks))
	for _, info := range r.joysticks {
		used[info.slot] = true
	}
	slot := 0
	for used[slot] {
		slot++
	}
	return slot
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	r.mu.Lock()
	info, exists := r.joysticks[instanceID]
	var sub *sdlDevice
	if exists {
		delete(r.joysticks, instanceID)
		sub = info.sub
	}
	r.mu.Unlock()
	if !exists {
		return
	}

	r.l.Info("Joystick disconnected", "name", info.name, "slot", info.slot)
	sdl.CloseJoystick(info.joystick)
	if sub != nil {
		sub.fail(errors.Wrapf(gamepad.ErrDeviceUnavailable, "joystick %q removed", info.name))
	}
}

func (r *Reader) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		if info.sub != nil {
			info.sub.fail(context.Canceled)
		}
		delete(r.joysticks, id)
	}
}

type pending struct {
	dev    *sdlDevice
	events []gamepad.Event
}

func (r *Reader) pollState(ctx context.Context) {
	var out []pending

	r.mu.Lock()
	for _, info := range r.joysticks {
		if info.sub == nil || !sdl.JoystickConnected(info.joystick) {
			continue
		}
		cur := readFrame(info)
		if events := gamepad.DiffFrames(&info.prev, &cur); len(events) > 0 {
			out = append(out, pending{dev: info.sub, events: events})
		}
		info.prev = cur
	}
	r.mu.Unlock()

	// Sends happen outside the lock so a slow consumer cannot stall Connect or Close.
	for _, p := range out {
		p.dev.send(ctx, p.events)
	}
}

func readFrame(info *joystickInfo) gamepad.Frame {
	js := info.joystick
	mapping := info.mapping
	f := gamepad.NewFrame()

	numAxes := sdl.GetNumJoystickAxes(js)
	for _, am := range mapping.Axes {
		if am.Index >= numAxes {
			continue
		}
		f.SetAxis(mapping, am.Index, sdl.GetJoystickAxis(js, am.Index))
	}

	numButtons := sdl.GetNumJoystickButtons(js)
	for _, bm := range mapping.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		f.SetButton(mapping, bm.Index, sdl.GetJoystickButton(js, bm.Index))
	}

	if mapping.HasHat && sdl.GetNumJoystickHats(js) > 0 {
		f.SetHat(sdl.GetJoystickHat(js, 0))
	}
	return f
}

// sdlDevice is the Source for one Reader slot.
type sdlDevice struct {
	r     *Reader
	index int

	mu     sync.Mutex
	events chan gamepad.Event
	done   chan struct{}
}

func (d *sdlDevice) Connect(ctx context.Context) (<-chan gamepad.Event, error) {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()

	for _, info := range d.r.joysticks {
		if info.slot != d.index {
			continue
		}
		d.mu.Lock()
		d.events = make(chan gamepad.Event, gamepad.EventBuffer)
		d.done = make(chan struct{})
		events := d.events
		d.mu.Unlock()

		info.sub = d
		info.prev = gamepad.Frame{}
		return events, nil
	}
	return nil, errors.Wrapf(gamepad.ErrDeviceUnavailable, "no joystick in slot %d", d.index)
}

func (d *sdlDevice) Close() error {
	d.r.mu.Lock()
	for _, info := range d.r.joysticks {
		if info.sub == d {
			info.sub = nil
		}
	}
	d.r.mu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		close(d.done)
		d.done = nil
	}
	return nil
}

// send delivers events until the consumer closes the device.
func (d *sdlDevice) send(ctx context.Context, events []gamepad.Event) {
	d.mu.Lock()
	ch, done := d.events, d.done
	d.mu.Unlock()
	if ch == nil || done == nil {
		return
	}
	for _, e := range events {
		select {
		case ch <- e:
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// fail reports err to the consumer and ends the event stream.
func (d *sdlDevice) fail(err error) {
	d.mu.Lock()
	ch, done := d.events, d.done
	d.events = nil
	d.mu.Unlock()
	if ch == nil {
		return
	}
	if done != nil {
		select {
		case ch <- gamepad.ErrorEvent{Err: err}:
		case <-done:
		default:
		}
	}
	close(ch)
}
