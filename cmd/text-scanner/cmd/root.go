// Package cmd implements the text-scanner command line.
package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/text-scanner/internal/config"
	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/overlay"
	"github.com/ironsheep/text-scanner/internal/session"
	"github.com/ironsheep/text-scanner/internal/source"
)

// annotationStdout marks commands that write their protocol to stdout, so
// logs must go elsewhere.
const annotationStdout = "stdout"

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// runtime is the state shared by subcommands once configuration is loaded.
type runtime struct {
	v         *viper.Viper
	cfgFile   string
	cfg       *config.Config
	logCloser io.Closer

	// newRecognizer and openCamera are replaced in tests.
	newRecognizer func(ocr.Options) ocr.Recognizer
	openCamera    source.Opener
}

// NewRootCommand builds the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return newRootCommand(info, &runtime{
		v:             viper.New(),
		newRecognizer: ocr.New,
		openCamera:    source.OpenCamera,
	})
}

func newRootCommand(info BuildInfo, rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "text-scanner",
		Short: "Extract text from images and camera frames",
		Long: `text-scanner loads a still image or a live camera feed, lets you select
a region of interest, runs OCR over it, draws the recognized word boxes, and
saves the extracted text.

Examples:
  text-scanner scan receipt.jpg
  text-scanner scan page.png --roi 100,200,900,400 -o text.txt --overlay boxes.png
  text-scanner shell --frames /tmp/frames`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt.logCloser != nil {
				return rt.logCloser.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.cfgFile, "config", "", "config file (default is search in ., $HOME/.config/text-scanner, /etc/text-scanner)")
	pf.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")

	_ = rt.v.BindPFlag("log.level", pf.Lookup("log-level"))

	root.AddCommand(
		newScanCommand(rt),
		newShellCommand(rt),
		newVersionCommand(info),
	)
	return root
}

// setup loads configuration and configures logging.
func (rt *runtime) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(rt.v).Load(rt.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	if cmd.Annotations[annotationStdout] == "reserved" && cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
	}

	closer, err := logger.Setup(cfg.LoggerConfig())
	if err != nil {
		return err
	}
	rt.cfg = cfg
	rt.logCloser = closer

	cliLog := logger.WithComponent("cli")
	cliLog.Debug().
		Str("command", cmd.Name()).
		Str("config_file", rt.v.ConfigFileUsed()).
		Msg("Configuration loaded")
	return nil
}

// newSession builds a session and renderer from the loaded configuration.
func (rt *runtime) newSession() (*session.Session, error) {
	opts, err := rt.cfg.OverlayOptions()
	if err != nil {
		return nil, err
	}
	return session.New(session.Options{
		CanvasWidth:  rt.cfg.Canvas.Width,
		CanvasHeight: rt.cfg.Canvas.Height,
		CameraIndex:  rt.cfg.Camera.Index,
		Preprocess:   rt.cfg.OCR.Preprocess,
		Contrast:     rt.cfg.OCR.Contrast,

		SuggestMinScore: rt.cfg.Detect.MinScore,
	}, rt.openCamera, overlay.New(opts)), nil
}
