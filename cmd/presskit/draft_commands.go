package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"presskit/internal/assetcheck"
	"presskit/internal/draftstore"
	"presskit/internal/release"
	"presskit/internal/wizard"
)

func newDraftCommand(ctx *commandContext) *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Create and edit release drafts",
	}

	draftCmd.AddCommand(newDraftNewCommand(ctx))
	draftCmd.AddCommand(newDraftListCommand(ctx))
	draftCmd.AddCommand(newDraftShowCommand(ctx))
	draftCmd.AddCommand(newDraftSetCommand(ctx))
	draftCmd.AddCommand(newDraftAddTracksCommand(ctx))
	draftCmd.AddCommand(newDraftSetCoverCommand(ctx))
	draftCmd.AddCommand(newDraftTrackCommand(ctx))
	draftCmd.AddCommand(newDraftAdvanceCommand(ctx))
	draftCmd.AddCommand(newDraftBackCommand(ctx))
	draftCmd.AddCommand(newDraftStatusCommand(ctx))
	draftCmd.AddCommand(newDraftCancelCommand(ctx))
	draftCmd.AddCommand(newDraftDeleteCommand(ctx))

	return draftCmd
}

// findDraft resolves a full identifier or unique prefix to a stored record.
func findDraft(cmd *cobra.Command, store *draftstore.Store, idOrPrefix string) (*draftstore.Record, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, fmt.Errorf("draft id is required")
	}

	if rec, err := store.GetByID(cmd.Context(), idOrPrefix); err != nil {
		return nil, err
	} else if rec != nil {
		return rec, nil
	}

	records, err := store.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var matches []*draftstore.Record
	for _, rec := range records {
		if strings.HasPrefix(rec.Draft.ID, idOrPrefix) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("draft %s not found", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("draft id prefix %s is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}

func resumeWizard(ctx *commandContext, rec *draftstore.Record) (*wizard.Wizard, error) {
	if rec.State != wizard.StateActive {
		return nil, fmt.Errorf("draft is %s and can no longer be edited", rec.State)
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return wizard.Resume(rec.Draft, rec.Stage, logger), nil
}

func saveWizard(cmd *cobra.Command, store *draftstore.Store, rec *draftstore.Record, w *wizard.Wizard) error {
	rec.Stage = w.Stage()
	rec.State = w.State()
	return store.Save(cmd.Context(), rec)
}

func newDraftNewCommand(ctx *commandContext) *cobra.Command {
	var title string
	var artist string

	cmd := &cobra.Command{
		Use:   "new <single|ep|album>",
		Short: "Start a new release draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			releaseType, ok := release.ParseType(args[0])
			if !ok {
				return fmt.Errorf("unknown release type %q (expected single, ep, or album)", args[0])
			}
			return ctx.withStore(func(store *draftstore.Store) error {
				draft := release.New(releaseType)
				draft.Title = strings.TrimSpace(title)
				draft.PrimaryArtist = strings.TrimSpace(artist)

				rec := &draftstore.Record{
					Draft: draft,
					Stage: wizard.StageBasics,
					State: wizard.StateActive,
				}
				if err := store.Save(cmd.Context(), rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s draft %s\n", releaseType, draft.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Release title")
	cmd.Flags().StringVar(&artist, "artist", "", "Primary artist name")
	return cmd
}

func newDraftListCommand(ctx *commandContext) *cobra.Command {
	var stateFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				var states []wizard.State
				if trimmed := strings.TrimSpace(stateFilter); trimmed != "" {
					states = append(states, wizard.State(trimmed))
				}
				records, err := store.List(cmd.Context(), states...)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No drafts")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						shortID(rec.Draft.ID),
						rec.Draft.DisplayTitle(),
						rec.Draft.PrimaryArtist,
						string(rec.Draft.Type),
						string(rec.State),
						rec.Stage.String(),
						strconv.Itoa(len(rec.Draft.Tracks)),
					})
				}
				tableOut := renderTable(
					[]string{"ID", "Title", "Artist", "Type", "State", "Stage", "Tracks"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), tableOut)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stateFilter, "state", "", "Filter by state (active, submitted, cancelled)")
	return cmd
}

func newDraftShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show a draft with its tracks and assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				printDraft(cmd, rec)
				return nil
			})
		},
	}
}

func printDraft(cmd *cobra.Command, rec *draftstore.Record) {
	out := cmd.OutOrStdout()
	draft := rec.Draft

	fmt.Fprintf(out, "Draft:    %s\n", draft.ID)
	fmt.Fprintf(out, "Title:    %s\n", draft.DisplayTitle())
	fmt.Fprintf(out, "Artist:   %s\n", orDash(draft.PrimaryArtist))
	fmt.Fprintf(out, "Type:     %s\n", draft.Type)
	fmt.Fprintf(out, "State:    %s (stage %s)\n", rec.State, rec.Stage)
	fmt.Fprintf(out, "Genres:   %s\n", orDash(strings.Join(draft.Genres, ", ")))
	if !draft.ReleaseDate.IsZero() {
		fmt.Fprintf(out, "Date:     %s\n", draft.ReleaseDate.Format("2006-01-02"))
	}
	if draft.ExistingRelease {
		fmt.Fprintf(out, "UPC:      %s\n", orDash(draft.UPC))
	}
	if rec.ReleaseID != "" {
		fmt.Fprintf(out, "Release:  %s\n", rec.ReleaseID)
	}

	if draft.CoverArt != nil {
		fmt.Fprintf(out, "Cover:    %s (%s, uploaded: %s)\n",
			draft.CoverArt.DisplayName(), formatBytes(draft.CoverArt.SizeBytes), yesNo(draft.CoverArt.Resolved()))
	} else {
		fmt.Fprintln(out, "Cover:    -")
	}

	if len(draft.Tracks) == 0 {
		fmt.Fprintln(out, "Tracks:   none")
		return
	}

	rows := make([][]string, 0, len(draft.Tracks))
	for i, track := range draft.Tracks {
		uploaded := "no"
		if track.Audio != nil && track.Audio.Resolved() {
			uploaded = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			track.Title,
			formatDuration(track.DurationSeconds),
			string(track.Explicit),
			orDash(track.LegalName),
			uploaded,
		})
	}
	tableOut := renderTable(
		[]string{"#", "Title", "Length", "Rating", "Legal Name", "Uploaded"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
	fmt.Fprintln(out, tableOut)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func newDraftSetCommand(ctx *commandContext) *cobra.Command {
	var (
		title        string
		artist       string
		label        string
		description  string
		genres       []string
		customGenre  string
		date         string
		existing     bool
		newRelease   bool
		upc          string
		platforms    []string
		legalNameAll string
	)

	cmd := &cobra.Command{
		Use:   "set <draft-id>",
		Short: "Update release-wide draft fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}

				var parseErr error
				mutateErr := w.Mutate(func(d *release.Draft) {
					flags := cmd.Flags()
					if flags.Changed("title") {
						d.Title = strings.TrimSpace(title)
					}
					if flags.Changed("artist") {
						d.PrimaryArtist = strings.TrimSpace(artist)
					}
					if flags.Changed("label") {
						d.LabelName = strings.TrimSpace(label)
					}
					if flags.Changed("description") {
						d.Description = strings.TrimSpace(description)
					}
					if flags.Changed("genre") {
						d.SetGenres(genres...)
					}
					if flags.Changed("custom-genre") {
						d.CustomGenre = strings.TrimSpace(customGenre)
					}
					if flags.Changed("date") {
						parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
						if err != nil {
							parseErr = fmt.Errorf("parse release date: %w", err)
							return
						}
						d.ReleaseDate = parsed
					}
					if flags.Changed("existing") {
						d.ExistingRelease = existing
					}
					if flags.Changed("new") && newRelease {
						d.ExistingRelease = false
						d.UPC = ""
					}
					if flags.Changed("upc") {
						d.UPC = strings.TrimSpace(upc)
					}
					if flags.Changed("platform") {
						d.SetPlatforms(platforms...)
					}
					if flags.Changed("legal-name-all") {
						d.ApplyLegalNameToAll(legalNameAll)
					}
				})
				if mutateErr != nil {
					return mutateErr
				}
				if parseErr != nil {
					return parseErr
				}
				return saveWizard(cmd, store, rec, w)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Release title")
	cmd.Flags().StringVar(&artist, "artist", "", "Primary artist name")
	cmd.Flags().StringVar(&label, "label", "", "Label name")
	cmd.Flags().StringVar(&description, "description", "", "Release description")
	cmd.Flags().StringSliceVar(&genres, "genre", nil, "Genre (repeatable, primary first)")
	cmd.Flags().StringVar(&customGenre, "custom-genre", "", "Free-form genre")
	cmd.Flags().StringVar(&date, "date", "", "Release date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&existing, "existing", false, "Mark as a previously issued release (requires --upc)")
	cmd.Flags().BoolVar(&newRelease, "new", false, "Mark as a brand-new release")
	cmd.Flags().StringVar(&upc, "upc", "", "UPC for an existing release")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "Distribution platform (repeatable)")
	cmd.Flags().StringVar(&legalNameAll, "legal-name-all", "", "Apply a songwriter legal name to every track")
	return cmd
}

func newDraftAddTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add-tracks <draft-id> <file>...",
		Short: "Validate and add audio files as tracks",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				cfg, err := ctx.ensureConfig()
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

				checker := assetcheck.NewCheckerFromConfig(cfg)
				result, err := w.AddTracks(checker, args[1:]...)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, track := range result.Added {
					fmt.Fprintf(out, "Added track %d: %s (%s)\n",
						rec.Draft.TrackNumber(track.ID), track.Title, formatDuration(track.DurationSeconds))
				}
				for _, rejection := range result.Rejected {
					fmt.Fprintf(out, "Rejected %s: %s\n", rejection.Filename, rejection.Err.Message)
				}
				if err := saveWizard(cmd, store, rec, w); err != nil {
					return err
				}
				if len(result.Rejected) > 0 {
					return fmt.Errorf("%d file(s) rejected", len(result.Rejected))
				}
				return nil
			})
		},
	}
}

func newDraftSetCoverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-cover <draft-id> <image-file>",
		Short: "Validate and install the cover art image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				cfg, err := ctx.ensureConfig()
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

				checker := assetcheck.NewCheckerFromConfig(cfg)
				if err := w.SetCoverArt(checker, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cover art set: %s\n", rec.Draft.CoverArt.DisplayName())
				return saveWizard(cmd, store, rec, w)
			})
		},
	}
}

func newDraftTrackCommand(ctx *commandContext) *cobra.Command {
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Edit individual tracks",
	}
	trackCmd.AddCommand(newTrackSetCommand(ctx))
	trackCmd.AddCommand(newTrackRemoveCommand(ctx))
	trackCmd.AddCommand(newTrackMoveCommand(ctx))
	return trackCmd
}

func trackByNumber(rec *draftstore.Record, arg string) (*release.TrackEntry, error) {
	number, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || number < 1 || number > len(rec.Draft.Tracks) {
		return nil, fmt.Errorf("invalid track number %q (draft has %d tracks)", arg, len(rec.Draft.Tracks))
	}
	return rec.Draft.Tracks[number-1], nil
}

func newTrackSetCommand(ctx *commandContext) *cobra.Command {
	var (
		title     string
		legalName string
		isrc      string
		explicit  bool
		clean     bool
		lyrics    string
		featured  []string
		producers []string
		writers   []string
	)

	cmd := &cobra.Command{
		Use:   "set <draft-id> <track-number>",
		Short: "Update one track's metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}
				track, err := trackByNumber(rec, args[1])
				if err != nil {
					return err
				}

				mutateErr := w.Mutate(func(d *release.Draft) {
					d.UpdateTrack(track.ID, func(t *release.TrackEntry) {
						flags := cmd.Flags()
						if flags.Changed("title") {
							t.Title = strings.TrimSpace(title)
						}
						if flags.Changed("legal-name") {
							t.LegalName = strings.TrimSpace(legalName)
						}
						if flags.Changed("isrc") {
							t.ISRC = strings.TrimSpace(isrc)
						}
						if flags.Changed("explicit") && explicit {
							t.Explicit = release.ExplicitExplicit
						}
						if flags.Changed("clean") && clean {
							t.Explicit = release.ExplicitClean
						}
						if flags.Changed("lyrics") {
							t.Lyrics = lyrics
						}
						if flags.Changed("featured") {
							t.FeaturedArtists = featured
						}
						if flags.Changed("producer") {
							t.Producers = producers
						}
						if flags.Changed("songwriter") {
							t.Songwriters = writers
						}
					})
				})
				if mutateErr != nil {
					return mutateErr
				}
				return saveWizard(cmd, store, rec, w)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Track title")
	cmd.Flags().StringVar(&legalName, "legal-name", "", "Songwriter legal name")
	cmd.Flags().StringVar(&isrc, "isrc", "", "ISRC code")
	cmd.Flags().BoolVar(&explicit, "explicit", false, "Flag the track as explicit")
	cmd.Flags().BoolVar(&clean, "clean", false, "Flag the track as clean")
	cmd.Flags().StringVar(&lyrics, "lyrics", "", "Track lyrics")
	cmd.Flags().StringSliceVar(&featured, "featured", nil, "Featured artist (repeatable)")
	cmd.Flags().StringSliceVar(&producers, "producer", nil, "Producer (repeatable)")
	cmd.Flags().StringSliceVar(&writers, "songwriter", nil, "Songwriter (repeatable)")
	return cmd
}

func newTrackRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <draft-id> <track-number>",
		Short: "Remove a track from the draft",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}
				track, err := trackByNumber(rec, args[1])
				if err != nil {
					return err
				}
				if err := w.Mutate(func(d *release.Draft) {
					d.RemoveTrack(track.ID)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed track: %s\n", track.Title)
				return saveWizard(cmd, store, rec, w)
			})
		},
	}
}

func newTrackMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <draft-id> <track-number> <new-position>",
		Short: "Reorder a track within the draft",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}
				track, err := trackByNumber(rec, args[1])
				if err != nil {
					return err
				}
				target, err := strconv.Atoi(strings.TrimSpace(args[2]))
				if err != nil || target < 1 {
					return fmt.Errorf("invalid target position %q", args[2])
				}
				if err := w.Mutate(func(d *release.Draft) {
					d.MoveTrack(track.ID, target-1)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n",
					track.Title, rec.Draft.TrackNumber(track.ID))
				return saveWizard(cmd, store, rec, w)
			})
		},
	}
}

func newDraftAdvanceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <draft-id>",
		Short: "Validate the current stage and move forward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if err := w.Advance(); err != nil {
					var gateErr *wizard.GateError
					if errors.As(err, &gateErr) {
						fmt.Fprintf(out, "Stage %s is incomplete:\n", gateErr.Stage)
						for _, reason := range gateErr.Reasons {
							fmt.Fprintf(out, "  - %s\n", reason)
						}
					}
					return err
				}
				fmt.Fprintf(out, "Now at stage: %s\n", w.Stage())
				return saveWizard(cmd, store, rec, w)
			})
		},
	}
}

func newDraftBackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "back <draft-id>",
		Short: "Return to the previous stage (keeps all entered data)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}
				if !w.Retreat() {
					fmt.Fprintln(cmd.OutOrStdout(), "Already at the first stage")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now at stage: %s\n", w.Stage())
				return saveWizard(cmd, store, rec, w)
			})
		},
	}
}

func newDraftStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <draft-id>",
		Short: "Show stage gates and submission readiness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				w := wizard.Resume(rec.Draft, rec.Stage, logger)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Draft %s (%s, stage %s)\n", shortID(rec.Draft.ID), rec.State, rec.Stage)
				for _, stage := range wizard.Stages() {
					reasons := w.GateReasons(stage)
					if len(reasons) == 0 {
						fmt.Fprintf(out, "  %-12s ok\n", stage)
						continue
					}
					fmt.Fprintf(out, "  %-12s blocked\n", stage)
					for _, reason := range reasons {
						fmt.Fprintf(out, "    - %s\n", reason)
					}
				}
				pending := rec.Draft.PendingAssets()
				fmt.Fprintf(out, "Assets pending upload: %d\n", len(pending))
				return nil
			})
		},
	}
}

func newDraftCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <draft-id>",
		Short: "Abandon a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				w, err := resumeWizard(ctx, rec)
				if err != nil {
					return err
				}
				w.Cancel()
				fmt.Fprintf(cmd.OutOrStdout(), "Cancelled draft %s\n", shortID(rec.Draft.ID))
				return saveWizard(cmd, store, rec, w)
			})
		},
	}
}

func newDraftDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a draft from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *draftstore.Store) error {
				rec, err := findDraft(cmd, store, args[0])
				if err != nil {
					return err
				}
				removed, err := store.Delete(cmd.Context(), rec.Draft.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("draft %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted draft %s\n", shortID(rec.Draft.ID))
				return nil
			})
		},
	}
}
