package config

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, 600, cfg.Canvas.Height)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 60, cfg.OCR.MinConfidence)
	assert.Equal(t, 30*time.Millisecond, cfg.Camera.Interval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero canvas width", func(c *Config) { c.Canvas.Width = 0 }},
		{"negative canvas height", func(c *Config) { c.Canvas.Height = -1 }},
		{"empty language", func(c *Config) { c.OCR.Language = "" }},
		{"confidence below range", func(c *Config) { c.OCR.MinConfidence = -1 }},
		{"confidence above range", func(c *Config) { c.OCR.MinConfidence = 101 }},
		{"contrast above range", func(c *Config) { c.OCR.Contrast = 150 }},
		{"zero stroke", func(c *Config) { c.Overlay.StrokeWidth = 0 }},
		{"bad roi color", func(c *Config) { c.Overlay.ROIColor = "red" }},
		{"bad word color", func(c *Config) { c.Overlay.WordColor = "#12" }},
		{"negative camera index", func(c *Config) { c.Camera.Index = -1 }},
		{"zero camera interval", func(c *Config) { c.Camera.Interval = 0 }},
		{"zero detect score", func(c *Config) { c.Detect.MinScore = 0 }},
		{"detect score above one", func(c *Config) { c.Detect.MinScore = 1.5 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestOverlayOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overlay.ROIColor = "#0000FF"
	cfg.OCR.MinConfidence = 75
	cfg.Overlay.Labels = false

	opts, err := cfg.OverlayOptions()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, opts.ROIColor)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, opts.WordColor)
	assert.Equal(t, 75, opts.MinConfidence)
	assert.Equal(t, 2, opts.StrokeWidth)
	assert.False(t, opts.Labels)
}

func TestOverlayOptions_BadColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overlay.WordColor = "nope"
	_, err := cfg.OverlayOptions()
	assert.Error(t, err)
}

func TestEngineAndLoggerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Language = "deu"
	cfg.OCR.TessdataPrefix = "/opt/tessdata"
	cfg.Log.Level = "debug"

	eo := cfg.EngineOptions()
	assert.Equal(t, "deu", eo.Language)
	assert.Equal(t, "/opt/tessdata", eo.TessdataPrefix)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "console", lc.Format)
	assert.Equal(t, "stderr", lc.Output)
}
