package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"presskit/internal/catalog"
	"presskit/internal/draftstore"
	"presskit/internal/notifications"
	"presskit/internal/submission"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var artistID string
	var token string
	var skipUpload bool

	cmd := &cobra.Command{
		Use:   "submit <draft-id>",
		Short: "Upload pending assets and submit the release to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				if !skipUpload && len(rec.Draft.PendingAssets()) > 0 {
					if err := runUpload(cmd, ctx, rec); err != nil {
						if saveErr := store.Save(cmd.Context(), rec); saveErr != nil {
							return errors.Join(err, saveErr)
						}
						return err
					}
					if err := store.Save(cmd.Context(), rec); err != nil {
						return err
					}
				}

				identity := submission.Identity{
					ArtistID: strings.TrimSpace(artistID),
					Token:    strings.TrimSpace(token),
				}
				if identity.Token == "" {
					identity.Token = cfg.Storage.Token
				}

				coordinator := submission.NewCoordinator(
					catalog.NewHTTPClient(cfg, logger),
					notifications.NewService(cfg),
					logger,
				)
				releaseID, err := coordinator.Submit(cmd.Context(), rec.Draft, identity)
				if err != nil {
					printSubmissionFailure(cmd, err)
					return err
				}

				if err := w.MarkSubmitted(); err != nil {
					return err
				}
				rec.ReleaseID = releaseID
				if err := saveWizard(cmd, store, rec, w); err != nil {
					return err
				}
				if err := store.MarkSubmitted(cmd.Context(), rec.Draft.ID, releaseID); err != nil {
					return err
				}

				fmt.Fprintf(out, "Release submitted: %s\n", releaseID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&artistID, "artist-id", "", "Catalog artist identifier")
	cmd.Flags().StringVar(&token, "token", "", "Catalog API token (defaults to storage.token)")
	cmd.Flags().BoolVar(&skipUpload, "skip-upload", false, "Fail instead of uploading pending assets first")
	return cmd
}

func printSubmissionFailure(cmd *cobra.Command, err error) {
	out := cmd.OutOrStdout()

	var notReady *submission.NotReadyError
	if errors.As(err, &notReady) {
		fmt.Fprintln(out, "Draft is not ready for submission:")
		for _, reason := range notReady.Reasons {
			fmt.Fprintf(out, "  - %s\n", reason)
		}
		return
	}

	var subErr *submission.Error
	if errors.As(err, &subErr) {
		switch subErr.Kind {
		case submission.KindFieldRejected:
			fmt.Fprintln(out, "The catalog rejected the release:")
			for field, reason := range subErr.FieldErrors {
				fmt.Fprintf(out, "  - %s: %s\n", field, reason)
			}
		case submission.KindUnauthenticated:
			fmt.Fprintln(out, "Authentication failed; check your token")
		case submission.KindRateLimited:
			fmt.Fprintln(out, "The catalog is rate limiting; try again shortly")
		case submission.KindTransient:
			fmt.Fprintln(out, "The catalog is unreachable; nothing was created, try again")
		}
	}
}
