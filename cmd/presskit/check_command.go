package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"presskit/internal/assetcheck"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asImage bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate audio or image files without touching a draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checker := assetcheck.NewCheckerFromConfig(cfg)

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if asImage {
					info, err := checker.CheckImage(path)
					if err != nil {
						failed++
						fmt.Fprintf(out, "FAIL  %s: %s\n", path, checkReason(err))
						continue
					}
					fmt.Fprintf(out, "OK    %s: %s %dx%d (%s)\n",
						path, info.Format, info.Width, info.Height, formatBytes(info.SizeBytes))
					continue
				}

				info, err := checker.CheckAudio(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %s: %s\n", path, checkReason(err))
					continue
				}
				fmt.Fprintf(out, "OK    %s: %s %s (%s)\n",
					path, info.Format, formatDuration(info.DurationSeconds), formatBytes(info.SizeBytes))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asImage, "image", false, "Validate files as cover art instead of audio")
	return cmd
}

func checkReason(err error) string {
	var verr *assetcheck.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
