package vtui

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("toml", func(t *testing.T) {
		path := writeConfig(t, "vtui.toml", `
frame_budget = "8ms"
queue_capacity = 32
mouse = "cell"
alt_screen = false
debug_log = "/tmp/vtui.log"
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		want := Config{
			FrameBudget:   8 * time.Millisecond,
			QueueCapacity: 32,
			Mouse:         MouseCell,
			AltScreen:     false,
			DebugLog:      "/tmp/vtui.log",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml keeps unset defaults", func(t *testing.T) {
		path := writeConfig(t, "vtui.yml", "mouse: \"off\"\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if cfg.Mouse != MouseOff {
			t.Errorf("expected mouse off, got %q", cfg.Mouse)
		}
		if cfg.QueueCapacity != 128 || !cfg.AltScreen {
			t.Errorf("expected defaults for unset fields, got %+v", cfg)
		}
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "vtui.yaml", "queue_capacity: 4\n")
		t.Setenv("VTUI_QUEUE_CAPACITY", "64")
		t.Setenv("VTUI_FRAME_BUDGET", "1ms")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if cfg.QueueCapacity != 64 || cfg.FrameBudget != time.Millisecond {
			t.Errorf("expected environment values, got %+v", cfg)
		}
	})

	t.Run("options override everything", func(t *testing.T) {
		t.Setenv("VTUI_MOUSE", "cell")
		cfg, err := LoadConfig("", WithMouse(MouseOff), WithAltScreen(false), WithQueueCapacity(2),
			WithFrameBudget(time.Second), WithDebugLog("x.log"))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		want := Config{FrameBudget: time.Second, QueueCapacity: 2, Mouse: MouseOff, DebugLog: "x.log"}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			file    string
			content string
			env     map[string]string
			opts    []Option
			want    []string
		}{
			{name: "unknown extension", file: "vtui.ini", content: "x", want: []string{"unknown config format"}},
			{name: "bad toml", file: "vtui.toml", content: "mouse = ", want: []string{"parsing TOML"}},
			{name: "bad duration", file: "vtui.toml", content: `frame_budget = "soon"`, want: []string{"frame_budget"}},
			{name: "bad env", env: map[string]string{"VTUI_QUEUE_CAPACITY": "many"}, want: []string{"VTUI_QUEUE_CAPACITY"}},
			{
				name: "every invalid field is reported",
				opts: []Option{WithFrameBudget(0), WithQueueCapacity(0), WithMouse("sometimes")},
				want: []string{"frame budget", "queue capacity", "mouse"},
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				for k, v := range tt.env {
					t.Setenv(k, v)
				}
				path := ""
				if tt.file != "" {
					path = writeConfig(t, tt.file, tt.content)
				}
				_, err := LoadConfig(path, tt.opts...)
				if err == nil {
					t.Fatal("expected an error")
				}
				for _, w := range tt.want {
					if !strings.Contains(err.Error(), w) {
						t.Errorf("expected %q in %q", w, err)
					}
				}
			})
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected a not-exist error, got %v", err)
		}
	})
}
