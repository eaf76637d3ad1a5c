package tray

import _ "embed"

//go:embed icon.ico
var iconData []byte

// GetIcon returns the embedded gamepad icon in ICO format.
func GetIcon() []byte {
	return iconData
}
