// Package config loads the TOML settings of nframe applications
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bloeys/nframe/buffers"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Gl      GlConfig      `toml:"gl"`
	Log     LogConfig     `toml:"log"`
	Scene   SceneConfig   `toml:"scene"`
	Shaders ShadersConfig `toml:"shaders"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	VSync      bool   `toml:"vsync"`
	Resizable  bool   `toml:"resizable"`
}

type GlConfig struct {
	Major int  `toml:"major"`
	Minor int  `toml:"minor"`
	Srgb  bool `toml:"srgb"`
}

type LogConfig struct {
	// Level is one of debug, info, warn or error
	Level string `toml:"level"`
}

type SceneConfig struct {
	// Attachments of the scene framebuffer, in slot order (e.g. ["ColorRGBA8", "SignedInt32", "Depth"])
	Attachments []buffers.AttachmentFormat `toml:"attachments"`
	ClearColor  [4]uint8                   `toml:"clear_color"`
}

type ShadersConfig struct {
	HotReload bool   `toml:"hot_reload"`
	Dir       string `toml:"dir"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "nframe",
			Width:     1280,
			Height:    720,
			VSync:     true,
			Resizable: true,
		},
		Gl: GlConfig{
			Major: 4,
			Minor: 5,
			Srgb:  false,
		},
		Log: LogConfig{
			Level: "info",
		},
		Scene: SceneConfig{
			Attachments: []buffers.AttachmentFormat{
				buffers.AttachmentFormat_ColorRGBA8,
				buffers.AttachmentFormat_SignedInt32,
				buffers.AttachmentFormat_Depth,
			},
			ClearColor: [4]uint8{25, 25, 38, 255},
		},
		Shaders: ShadersConfig{
			HotReload: true,
			Dir:       "./res/shaders",
		},
	}
}

// Load reads the config at path on top of the defaults. A missing file is not an error
// and gives the defaults.
func Load(path string) (*Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {

		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", path, err)
	}

	return cfg, nil
}

// Parse decodes TOML on top of the defaults, so only the keys to change need to be present, then validates the result
func Parse(data []byte) (*Config, error) {

	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive but is %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	if c.Gl.Major < 4 || (c.Gl.Major == 4 && c.Gl.Minor < 5) {
		return fmt.Errorf("%w: OpenGL %d.%d is too old, at least 4.5 is needed", ErrInvalidConfig, c.Gl.Major, c.Gl.Minor)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level '%s'", ErrInvalidConfig, c.Log.Level)
	}

	return c.Scene.validate()
}

// validate checks the attachments can back a picker. Color slot 0 is shown on screen so it must be
// an 8-bit color format, and color slot 1 holds the SignedInt32 object ids scene shaders write to location 1.
func (s *SceneConfig) validate() error {

	colorFormats := make([]buffers.AttachmentFormat, 0, len(s.Attachments))
	depthCount := 0
	for _, a := range s.Attachments {

		if a.IsDepthFormat() {
			depthCount++
			continue
		}

		colorFormats = append(colorFormats, a)
	}

	if len(colorFormats) > buffers.MaxColorAttachments {
		return fmt.Errorf("%w: scene has %d color attachments but the max is %d", ErrInvalidConfig, len(colorFormats), buffers.MaxColorAttachments)
	}

	if depthCount > 1 {
		return fmt.Errorf("%w: scene has %d depth attachments but only one is allowed", ErrInvalidConfig, depthCount)
	}

	if len(colorFormats) < 2 {
		return fmt.Errorf("%w: scene needs a color attachment followed by a SignedInt32 id attachment but has %v", ErrInvalidConfig, s.Attachments)
	}

	if colorFormats[0] != buffers.AttachmentFormat_ColorRGBA8 && colorFormats[0] != buffers.AttachmentFormat_ColorRGB8 {
		return fmt.Errorf("%w: the first scene color attachment must be ColorRGBA8 or ColorRGB8 but is %s", ErrInvalidConfig, colorFormats[0])
	}

	if colorFormats[1] != buffers.AttachmentFormat_SignedInt32 {
		return fmt.Errorf("%w: the second scene color attachment must be SignedInt32 but is %s", ErrInvalidConfig, colorFormats[1])
	}

	return nil
}

// Spec returns the framebuffer spec of the scene for the given size
func (s *SceneConfig) Spec(width, height int32) buffers.FramebufferSpec {

	attachments := make([]buffers.AttachmentFormat, len(s.Attachments))
	copy(attachments, s.Attachments)

	return buffers.FramebufferSpec{
		Width:       width,
		Height:      height,
		Attachments: attachments,
	}
}
