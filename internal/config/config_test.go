package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != ":8080" || c.Source != DefaultSource || c.Devices != 1 {
		t.Errorf("defaults = %+v", c)
	}
	if c.RetryDelay != 2*time.Second {
		t.Errorf("retry delay = %s", c.RetryDelay)
	}
	if !c.WebSocket || c.LogLevel != "info" {
		t.Errorf("defaults = %+v", c)
	}
}

func TestLoadFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load([]string{"--listen", "127.0.0.1:9000", "--source", "joydev", "-n", "2", "--retry-delay", "500ms", "--websocket=false"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != "127.0.0.1:9000" || c.Source != SourceJoydev || c.Devices != 2 || c.RetryDelay != 500*time.Millisecond || c.WebSocket {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	data := "listen: \":7000\"\ndevices: 3\nlog-level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "scratchpad.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCRATCHPAD_LOG_LEVEL", "trace")

	c, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != ":7000" || c.Devices != 3 {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.LogLevel != "trace" {
		t.Errorf("env did not override file: log level %q", c.LogLevel)
	}

	c, err = Load([]string{"--devices", "1"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Devices != 1 {
		t.Errorf("flag did not override file: devices %d", c.Devices)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load([]string{"--config", "nope.yaml"}); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

func TestValidate(t *testing.T) {
	good := Config{Source: SourceSDL, Devices: 1, RetryDelay: time.Second}
	if err := good.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	for _, c := range []Config{
		{Source: "hid", Devices: 1, RetryDelay: time.Second},
		{Source: SourceSDL, Devices: 0, RetryDelay: time.Second},
		{Source: SourceSDL, Devices: 1},
	} {
		if err := c.Validate(); err == nil {
			t.Errorf("invalid config accepted: %+v", c)
		}
	}
}

func TestDevicePath(t *testing.T) {
	fallback := func(i int) string { return "/dev/input/js" + string(rune('0'+i)) }
	c := Config{Device: "/dev/input/by-id/pad"}
	if got := c.DevicePath(0, fallback); got != "/dev/input/by-id/pad" {
		t.Errorf("slot 0 = %q", got)
	}
	if got := c.DevicePath(1, fallback); got != "/dev/input/js1" {
		t.Errorf("slot 1 = %q", got)
	}
}
