package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"presskit/internal/draftstore"
	"presskit/internal/storage"
	"presskit/internal/uploader"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <draft-id>",
		Short: "Upload the draft's pending assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				uploadErr := runUpload(cmd, ctx, rec)
				if saveErr := store.Save(cmd.Context(), rec); saveErr != nil {
					if uploadErr != nil {
						return errors.Join(uploadErr, saveErr)
					}
					return saveErr
				}
				return uploadErr
			})
		},
	}
}

// runUpload drives one upload pass for the record's draft, rendering progress
// to the command's output. Resolved assets recorded on the draft survive even
// when the pass fails partway.
func runUpload(cmd *cobra.Command, ctx *commandContext, rec *draftstore.Record) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	pending := rec.Draft.PendingAssets()
	out := cmd.OutOrStdout()
	if len(pending) == 0 {
		fmt.Fprintln(out, "All assets already uploaded")
		return nil
	}
	fmt.Fprintf(out, "Uploading %d asset(s)\n", len(pending))

	client := storage.NewHTTPClient(cfg, logger)
	orchestrator := uploader.NewFromConfig(cfg, client, logger)

	render := newProgressRenderer(out)
	err = orchestrator.Upload(cmd.Context(), rec.Draft, render.update)
	render.finish()

	if err != nil {
		var uploadErr *uploader.UploadError
		if errors.As(err, &uploadErr) {
			for _, failure := range uploadErr.Failures {
				fmt.Fprintf(out, "Failed: %s (%v)\n", failure.Name, failure.Err)
			}
			fmt.Fprintln(out, "Run upload again to retry the failed assets")
		}
		return err
	}
	fmt.Fprintln(out, "Upload complete")
	return nil
}

// progressRenderer rewrites a single progress line on terminals and prints
// nothing on pipes.
type progressRenderer struct {
	out      io.Writer
	terminal bool
	wrote    bool
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{out: out, terminal: isTerminal(out)}
}

func (r *progressRenderer) update(p uploader.Progress) {
	if !r.terminal {
		return
	}
	r.wrote = true
	fmt.Fprintf(r.out, "\r%3.0f%%  %s / %s  (%d/%d done, %d failed)",
		p.Percent, formatBytes(p.BytesSent), formatBytes(p.BytesTotal),
		p.Completed, p.Total, p.Failed)
}

func (r *progressRenderer) finish() {
	if r.wrote {
		fmt.Fprintln(r.out)
	}
}
