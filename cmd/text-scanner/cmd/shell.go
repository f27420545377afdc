package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/text-scanner/internal/app"
	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/shell"
)

func newShellCommand(rt *runtime) *cobra.Command {
	var framesDir string

	c := &cobra.Command{
		Use:   "shell",
		Short: "Drive the scanner with JSON lines over stdin and stdout",
		Long: `Drive the scanner with JSON lines over stdin and stdout.

Each input line is a request such as {"cmd":"load","path":"page.png"}; each
output line is an event. Rendered frames are written as PNG files into the
frames directory. Logs go to stderr or the configured log file.`,
		Annotations: map[string]string{annotationStdout: "reserved"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runShell(cmd, framesDir)
		},
	}

	c.Flags().StringVar(&framesDir, "frames", "", "directory for rendered frames (default: a new temporary directory)")
	return c
}

func (rt *runtime) runShell(cmd *cobra.Command, framesDir string) error {
	if framesDir == "" {
		dir, err := os.MkdirTemp("", "text-scanner-frames-")
		if err != nil {
			return fmt.Errorf("failed to create frames directory: %w", err)
		}
		framesDir = dir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := rt.newSession()
	if err != nil {
		return err
	}

	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), framesDir)
	d := app.New(s, rt.newRecognizer(rt.cfg.EngineOptions()), sh, app.Options{
		CameraInterval: rt.cfg.Camera.Interval,
	})

	cliLog := logger.WithComponent("cli")
	cliLog.Info().Str("frames", framesDir).Msg("Shell started")
	return sh.Serve(ctx, d)
}
