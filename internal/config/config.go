// Package config loads text-scanner settings from files, the environment and
// flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/text-scanner/internal/detection"
	"github.com/ironsheep/text-scanner/internal/imaging"
	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/overlay"
)

// Config is the complete text-scanner configuration.
type Config struct {
	Canvas  CanvasConfig  `mapstructure:"canvas" yaml:"canvas" json:"canvas"`
	OCR     OCRConfig     `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
	Overlay OverlayConfig `mapstructure:"overlay" yaml:"overlay" json:"overlay"`
	Camera  CameraConfig  `mapstructure:"camera" yaml:"camera" json:"camera"`
	Detect  DetectConfig  `mapstructure:"detect" yaml:"detect" json:"detect"`
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
}

// CanvasConfig is the size of the display area images are fitted into.
type CanvasConfig struct {
	Width  int `mapstructure:"width" yaml:"width" json:"width"`
	Height int `mapstructure:"height" yaml:"height" json:"height"`
}

// OCRConfig contains recognition settings.
type OCRConfig struct {
	Language       string  `mapstructure:"language" yaml:"language" json:"language"`
	TessdataPrefix string  `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix" json:"tessdata_prefix"`
	MinConfidence  int     `mapstructure:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
	Preprocess     bool    `mapstructure:"preprocess" yaml:"preprocess" json:"preprocess"`
	Contrast       float64 `mapstructure:"contrast" yaml:"contrast" json:"contrast"`
}

// OverlayConfig contains overlay drawing settings.
type OverlayConfig struct {
	ROIColor    string `mapstructure:"roi_color" yaml:"roi_color" json:"roi_color"`
	WordColor   string `mapstructure:"word_color" yaml:"word_color" json:"word_color"`
	StrokeWidth int    `mapstructure:"stroke_width" yaml:"stroke_width" json:"stroke_width"`
	Labels      bool   `mapstructure:"labels" yaml:"labels" json:"labels"`
}

// CameraConfig selects the capture device and its polling interval.
type CameraConfig struct {
	Index    int           `mapstructure:"index" yaml:"index" json:"index"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval" json:"interval"`
}

// DetectConfig tunes text block detection for suggested selections.
type DetectConfig struct {
	MinScore float64 `mapstructure:"min_score" yaml:"min_score" json:"min_score"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Output string `mapstructure:"output" yaml:"output" json:"output"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		OCR: OCRConfig{
			Language:      ocr.DefaultLanguage,
			MinConfidence: overlay.DefaultMinConfidence,
			Contrast:      20,
		},
		Overlay: OverlayConfig{
			ROIColor:    "#FF0000",
			WordColor:   "#00FF00",
			StrokeWidth: 2,
			Labels:      true,
		},
		Camera: CameraConfig{Index: 0, Interval: 30 * time.Millisecond},
		Detect: DetectConfig{MinScore: detection.DefaultMinScore},
		Log:    LogConfig{Level: "info", Format: "console", Output: "stderr"},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.OCR.Language == "" {
		return errors.New("ocr.language must not be empty")
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 100 {
		return fmt.Errorf("ocr.min_confidence must be between 0 and 100, got %d", c.OCR.MinConfidence)
	}
	if c.OCR.Contrast < -100 || c.OCR.Contrast > 100 {
		return fmt.Errorf("ocr.contrast must be between -100 and 100, got %g", c.OCR.Contrast)
	}
	if c.Overlay.StrokeWidth < 1 {
		return fmt.Errorf("overlay.stroke_width must be at least 1, got %d", c.Overlay.StrokeWidth)
	}
	if _, err := imaging.ParseColor(c.Overlay.ROIColor); err != nil {
		return fmt.Errorf("overlay.roi_color: %w", err)
	}
	if _, err := imaging.ParseColor(c.Overlay.WordColor); err != nil {
		return fmt.Errorf("overlay.word_color: %w", err)
	}
	if c.Camera.Index < 0 {
		return fmt.Errorf("camera.index must not be negative, got %d", c.Camera.Index)
	}
	if c.Camera.Interval <= 0 {
		return fmt.Errorf("camera.interval must be positive, got %s", c.Camera.Interval)
	}
	if c.Detect.MinScore <= 0 || c.Detect.MinScore > 1 {
		return fmt.Errorf("detect.min_score must be in (0, 1], got %g", c.Detect.MinScore)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// OverlayOptions converts the overlay and OCR settings into renderer options.
func (c *Config) OverlayOptions() (overlay.Options, error) {
	roiColor, err := imaging.ParseColor(c.Overlay.ROIColor)
	if err != nil {
		return overlay.Options{}, fmt.Errorf("overlay.roi_color: %w", err)
	}
	wordColor, err := imaging.ParseColor(c.Overlay.WordColor)
	if err != nil {
		return overlay.Options{}, fmt.Errorf("overlay.word_color: %w", err)
	}
	return overlay.Options{
		ROIColor:      roiColor,
		WordColor:     wordColor,
		StrokeWidth:   c.Overlay.StrokeWidth,
		MinConfidence: c.OCR.MinConfidence,
		Labels:        c.Overlay.Labels,
	}, nil
}

// EngineOptions returns the OCR engine options.
func (c *Config) EngineOptions() ocr.Options {
	return ocr.Options{
		Language:       c.OCR.Language,
		TessdataPrefix: c.OCR.TessdataPrefix,
	}
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() logger.LogConfig {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.Output = c.Log.Output
	return lc
}
