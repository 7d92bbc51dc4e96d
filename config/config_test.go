package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/nframe/buffers"
)

func TestDefaultIsValid(t *testing.T) {

	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to be valid; got %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {

	cfg, err := Parse([]byte(`
[window]
title = "picking demo"
width = 640

[scene]
attachments = ["ColorRGB8", "SignedInt32"]
clear_color = [1, 2, 3, 4]

[shaders]
hot_reload = false
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Title != "picking demo" || cfg.Window.Width != 640 {
		t.Fatalf("expected title and width to be overridden; got %+v", cfg.Window)
	}

	if cfg.Window.Height != Default().Window.Height {
		t.Fatalf("expected height to keep its default; got %d", cfg.Window.Height)
	}

	expected := []buffers.AttachmentFormat{buffers.AttachmentFormat_ColorRGB8, buffers.AttachmentFormat_SignedInt32}
	if len(cfg.Scene.Attachments) != len(expected) {
		t.Fatalf("expected attachments %v; got %v", expected, cfg.Scene.Attachments)
	}

	for i := range expected {
		if cfg.Scene.Attachments[i] != expected[i] {
			t.Fatalf("expected attachments %v; got %v", expected, cfg.Scene.Attachments)
		}
	}

	if cfg.Scene.ClearColor != [4]uint8{1, 2, 3, 4} {
		t.Fatalf("expected clear color [1 2 3 4]; got %v", cfg.Scene.ClearColor)
	}

	if cfg.Shaders.HotReload {
		t.Fatalf("expected hot reload to be disabled")
	}
}

func TestParseRejectsBadConfigs(t *testing.T) {

	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[window]\ncolour = 3"},
		{"zero width", "[window]\nwidth = 0"},
		{"old gl", "[gl]\nmajor = 3\nminor = 3"},
		{"bad log level", "[log]\nlevel = \"loud\""},
		{"unknown format", "[scene]\nattachments = [\"RGBA16F\"]"},
		{"byte display slot", "[scene]\nattachments = [\"UnsignedByte\", \"SignedInt32\"]"},
		{"id not second", "[scene]\nattachments = [\"ColorRGBA8\", \"UnsignedByte\", \"SignedInt32\"]"},
		{"no id attachment", "[scene]\nattachments = [\"ColorRGBA8\", \"Depth\"]"},
		{"two depths", "[scene]\nattachments = [\"ColorRGBA8\", \"SignedInt32\", \"Depth\", \"Depth\"]"},
		{"five colors", "[scene]\nattachments = [\"ColorRGBA8\", \"SignedInt32\", \"UnsignedByte\", \"SignedByte\", \"UnsignedInt32\"]"},
		{"depth only", "[scene]\nattachments = [\"Depth\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig; got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {

	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("expected a missing file to give defaults; got %v", err)
	}

	if cfg.Window.Title != Default().Window.Title {
		t.Fatalf("expected default title; got '%s'", cfg.Window.Title)
	}

	path := filepath.Join(dir, "nframe.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Log.Level != "debug" {
		t.Fatalf("expected level 'debug'; got '%s'", cfg.Log.Level)
	}

	if err := os.WriteFile(path, []byte("[log\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected malformed toml to be ErrInvalidConfig; got %v", err)
	}
}

func TestDepthCanComeFirst(t *testing.T) {

	// Only the order of color slots matters
	_, err := Parse([]byte("[scene]\nattachments = [\"Depth\", \"ColorRGBA8\", \"SignedInt32\"]"))
	if err != nil {
		t.Fatalf("expected depth before the color slots to be valid; got %v", err)
	}
}

func TestSceneSpecCopiesAttachments(t *testing.T) {

	cfg := Default()
	spec := cfg.Scene.Spec(320, 200)

	if spec.Width != 320 || spec.Height != 200 || len(spec.Attachments) != 3 {
		t.Fatalf("expected a 320x200 spec with 3 attachments; got %+v", spec)
	}

	spec.Attachments[0] = buffers.AttachmentFormat_Depth
	if cfg.Scene.Attachments[0] != buffers.AttachmentFormat_ColorRGBA8 {
		t.Fatalf("expected the spec to not alias the config's attachments")
	}
}
