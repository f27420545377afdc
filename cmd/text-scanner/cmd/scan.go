package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/text-scanner/internal/imaging"
	"github.com/ironsheep/text-scanner/internal/logger"
	"github.com/ironsheep/text-scanner/internal/session"
)

type scanOptions struct {
	roi     string
	autoROI bool
	output  string
	overlay string
}

func newScanCommand(rt *runtime) *cobra.Command {
	var opts scanOptions

	c := &cobra.Command{
		Use:   "scan IMAGE",
		Short: "Extract text from an image file",
		Long: `Extract text from an image file.

The region of interest is given in source image pixels as x1,y1,x2,y2 with
x2 and y2 exclusive. Without --roi the whole image is recognized. The text is
printed to stdout unless --output is given. --auto-roi selects the area that
looks most like print instead.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.roi != "" && opts.autoROI {
				return errors.New("--roi and --auto-roi are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runScan(cmd, args[0], opts)
		},
	}

	c.Flags().StringVar(&opts.roi, "roi", "", "region of interest x1,y1,x2,y2 in image pixels")
	c.Flags().BoolVar(&opts.autoROI, "auto-roi", false, "select the most text-like area of the image")
	c.Flags().StringVarP(&opts.output, "output", "o", "", "write extracted text to this file")
	c.Flags().StringVar(&opts.overlay, "overlay", "", "write the annotated display image to this PNG file")
	return c
}

func (rt *runtime) runScan(cmd *cobra.Command, path string, opts scanOptions) error {
	ctx := cmd.Context()
	log := logger.WithComponent("scan")

	s, err := rt.newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.LoadStill(ctx, path); err != nil {
		return err
	}
	if opts.roi != "" {
		r, err := parseRegion(opts.roi)
		if err != nil {
			return err
		}
		s.SetROI(r)
	}
	if opts.autoROI {
		n, err := s.SuggestROI()
		if err != nil {
			return err
		}
		if n.Level != session.LevelInfo {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", n.Message)
		}
	}

	job, err := s.PrepareOCR()
	if err != nil {
		return err
	}
	rec := rt.newRecognizer(rt.cfg.EngineOptions())
	res, err := rec.Recognize(ctx, job.Image)
	if err != nil {
		return s.FailOCR(job, err)
	}
	s.CompleteOCR(job, res)
	log.Debug().Str("job_id", job.ID).Int("words", len(res.Words)).Msg("Recognition complete")

	if opts.output != "" {
		n, err := s.SaveText(opts.output)
		if err != nil {
			return err
		}
		if n.Level != session.LevelInfo {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", n.Message)
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), s.Text())
	}

	if opts.overlay != "" {
		if err := writeOverlay(s, opts.overlay); err != nil {
			return err
		}
	}
	return nil
}

func writeOverlay(s *session.Session, path string) error {
	img, err := s.Render()
	if err != nil {
		return err
	}
	return imaging.SavePNG(path, img)
}

// parseRegion parses "x1,y1,x2,y2".
func parseRegion(s string) (imaging.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return imaging.Region{}, fmt.Errorf("invalid region %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return imaging.Region{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		v[i] = n
	}
	return imaging.Region{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}
