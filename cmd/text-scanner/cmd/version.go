package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/text-scanner/internal/ocr"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and OCR engine information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "text-scanner %s\n", info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", info.GitCommit)

			engine := ocr.Info()
			if engine.Available {
				fmt.Fprintf(out, "  OCR engine: %s %s\n", engine.Backend, engine.Version)
			} else {
				fmt.Fprintf(out, "  OCR engine: unavailable (%s)\n", engine.Error)
			}
			return nil
		},
	}
}
