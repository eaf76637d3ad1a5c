package tray

import (
	"path/filepath"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	url := "http://localhost:8080/poll"
	tests := []struct {
		goos string
		bin  string
	}{
		{"windows", "rundll32"},
		{"darwin", "open"},
		{"linux", "xdg-open"},
	}
	for _, tt := range tests {
		cmd := browserCommand(tt.goos, url)
		if got := filepath.Base(cmd.Args[0]); got != tt.bin {
			t.Errorf("%s: command %q, want %q", tt.goos, got, tt.bin)
		}
		if cmd.Args[len(cmd.Args)-1] != url {
			t.Errorf("%s: url not last argument: %v", tt.goos, cmd.Args)
		}
	}
}

func TestIcon(t *testing.T) {
	icon := GetIcon()
	if len(icon) < 6 || icon[2] != 1 {
		t.Errorf("embedded icon is not an ICO file (%d bytes)", len(icon))
	}
}
