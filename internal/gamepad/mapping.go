package gamepad

import "strings"

// AxisTarget names the stick coordinate a raw axis drives.
type AxisTarget uint8

const (
	LeftX AxisTarget = iota
	LeftY
	RightX
	RightY
	// HatX and HatY are D-pads exposed as axes (joydev does this).
	HatX
	HatY
)

// AxisMapping defines how a raw axis index maps to a stick coordinate.
type AxisMapping struct {
	Index  int32
	Target AxisTarget
}

// ButtonMapping defines how a raw button index maps to a pad button.
type ButtonMapping struct {
	Index  int32
	Target Button
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// hatThreshold is how far a hat axis must travel to count as pressed.
const hatThreshold = 16384

// AxisToByte converts a signed 16-bit axis value to the 0..255 range the
// translator works in. 0 maps to 128.
func AxisToByte(raw int16) int {
	return (int(raw) + 32768) >> 8
}

// Built-in mappings. Face buttons are numbered as printed on the pad.

var dualActionMapping = &DeviceMapping{
	Name: "dual_action",
	Axes: []AxisMapping{
		{Index: 0, Target: LeftX},
		{Index: 1, Target: LeftY},
		{Index: 2, Target: RightX},
		{Index: 3, Target: RightY},
		{Index: 4, Target: HatX},
		{Index: 5, Target: HatY},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: Button1},
		{Index: 1, Target: Button2},
		{Index: 2, Target: Button3},
		{Index: 3, Target: Button4},
		{Index: 4, Target: ButtonL1},
		{Index: 5, Target: ButtonR1},
		{Index: 6, Target: ButtonL2},
		{Index: 7, Target: ButtonR2},
		{Index: 8, Target: ButtonSelect},
		{Index: 9, Target: ButtonStart},
		{Index: 10, Target: ButtonJoystickLeft},
		{Index: 11, Target: ButtonJoystickRight},
	},
	HasHat: true,
}

var dragonRiseMapping = &DeviceMapping{
	Name: "dragonrise",
	Axes: []AxisMapping{
		{Index: 0, Target: LeftX},
		{Index: 1, Target: LeftY},
		{Index: 3, Target: RightX},
		{Index: 4, Target: RightY},
		{Index: 5, Target: HatX},
		{Index: 6, Target: HatY},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: Button1},
		{Index: 1, Target: Button2},
		{Index: 2, Target: Button3},
		{Index: 3, Target: Button4},
		{Index: 4, Target: ButtonL1},
		{Index: 5, Target: ButtonR1},
		{Index: 6, Target: ButtonL2},
		{Index: 7, Target: ButtonR2},
		{Index: 8, Target: ButtonSelect},
		{Index: 9, Target: ButtonStart},
		{Index: 10, Target: ButtonJoystickLeft},
		{Index: 11, Target: ButtonJoystickRight},
	},
	HasHat: true,
}

var snesMapping = &DeviceMapping{
	Name: "snes",
	Axes: []AxisMapping{
		// Digital-only pads report the cross as the left stick.
		{Index: 0, Target: LeftX},
		{Index: 1, Target: LeftY},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: Button1},
		{Index: 1, Target: Button2},
		{Index: 2, Target: Button3},
		{Index: 3, Target: Button4},
		{Index: 4, Target: ButtonL1},
		{Index: 5, Target: ButtonR1},
		{Index: 8, Target: ButtonSelect},
		{Index: 9, Target: ButtonStart},
	},
}

var genericMapping = dualActionMapping

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	{0x046D, 0xC216}: dualActionMapping, // Logitech Dual Action
	{0x046D, 0xC218}: dualActionMapping, // Logitech RumblePad 2
	{0x0079, 0x0006}: dragonRiseMapping, // DragonRise generic USB
	{0x0810, 0x0001}: dragonRiseMapping, // Twin USB PS2 adapter
	{0x0810, 0xE501}: snesMapping,       // SNES style USB pad
	{0x0079, 0x0011}: snesMapping,
}

// knownNames is matched in order against the lowercased device name; the
// first entry contained in the name wins.
var knownNames = []struct {
	name    string
	mapping *DeviceMapping
}{
	{"logitech dual action", dualActionMapping},
	{"dragonrise", dragonRiseMapping},
	{"twin usb", dragonRiseMapping},
	{"usb gamepad", snesMapping},
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}

// GetMappingByName looks a device up by the name the kernel reports, for
// sources that expose no vendor/product IDs.
func GetMappingByName(name string) *DeviceMapping {
	n := strings.ToLower(name)
	for _, k := range knownNames {
		if strings.Contains(n, k.name) {
			return k.mapping
		}
	}
	return genericMapping
}
