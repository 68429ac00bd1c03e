package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/journal"
	"github.com/roach88/abacus/internal/session"
	"github.com/roach88/abacus/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayReport holds the overall replay result.
type ReplayReport struct {
	Sessions      []*session.ReplayResult `json:"sessions"`
	TotalSessions int                     `json:"total_sessions"`
	AllMatch      bool                    `json:"all_match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [session-id]",
		Short: "Replay recorded sessions and verify they reproduce",
		Long: `Re-feed the recorded keys of a session into a fresh calculator and
compare every token and display with the journal.
Without a session ID every recorded session is replayed.

Exit codes:
  0 - All sessions reproduced
  1 - At least one session diverged
  2 - Command error (database not found, unknown session, etc.)

Examples:
  abacus replay --db ./abacus.db
  abacus replay --db ./abacus.db 0192f7c4-...
  abacus replay --db ./abacus.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := openStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	var sessions []journal.Session
	if len(args) == 1 {
		sess, err := st.ReadSession(ctx, args[0])
		if err != nil {
			return sessionReadError(formatter, args[0], err)
		}
		sessions = []journal.Session{sess}
	} else {
		sessions, err = st.ListSessions(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
		}
	}

	report := ReplayReport{
		Sessions:      make([]*session.ReplayResult, 0, len(sessions)),
		TotalSessions: len(sessions),
		AllMatch:      true,
	}

	for _, sess := range sessions {
		result, err := replaySession(ctx, st, sess)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to replay session %s", sess.ID), err)
		}
		formatter.VerboseLog("replayed %s: %d steps", sess.ID, result.Steps)
		report.Sessions = append(report.Sessions, result)
		if !result.Match() {
			report.AllMatch = false
		}
	}

	if formatter.IsJSON() {
		return outputReplayJSON(formatter, report)
	}
	return outputReplayText(cmd, report, opts.Verbose)
}

func replaySession(ctx context.Context, st *store.Store, sess journal.Session) (*session.ReplayResult, error) {
	inputs, err := st.ReadInputs(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return session.Replay(ctx, sess, inputs)
}

// sessionReadError maps a ReadSession failure to an exit error.
func sessionReadError(f *OutputFormatter, id string, err error) error {
	if errors.Is(err, store.ErrSessionNotFound) {
		return f.Fail(ExitCommandError, ErrCodeSessionNotFound, fmt.Sprintf("session not found: %s", id), nil)
	}
	return f.Fail(ExitCommandError, ErrCodeStore, "failed to read session", err)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(f *OutputFormatter, report ReplayReport) error {
	response := CLIResponse{
		Status: "ok",
		Data:   report,
	}

	if !report.AllMatch {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeDiverged,
			Message: "replay diverged from the journal",
		}
	}

	if err := f.encode(response); err != nil {
		return err
	}

	if !report.AllMatch {
		// Divergence = exit code 1
		return NewExitError(ExitFailure, "replay diverged from the journal")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, report ReplayReport, verbose bool) error {
	w := cmd.OutOrStdout()

	if report.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", report.TotalSessions)
	fmt.Fprintln(w)

	for _, result := range report.Sessions {
		status := "✓"
		if !result.Match() {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s\n", status, result.SessionID)
		fmt.Fprintf(w, "  Steps: %d\n", result.Steps)
		if verbose {
			fmt.Fprintf(w, "  Recorded digest: %s\n", result.RecordedDigest)
			fmt.Fprintf(w, "  Replayed digest: %s\n", result.ReplayedDigest)
		} else {
			fmt.Fprintf(w, "  Digest: %s\n", truncateID(result.RecordedDigest))
		}
		for _, d := range result.Divergences {
			fmt.Fprintf(w, "  seq %d (%q): %s recorded %q, replayed %q\n", d.Seq, d.Key, d.Field, d.Recorded, d.Replayed)
		}
	}
	fmt.Fprintln(w)

	if !report.AllMatch {
		fmt.Fprintln(w, "✗ Replay diverged from the journal")
		return NewExitError(ExitFailure, "replay diverged from the journal")
	}

	fmt.Fprintln(w, "✓ All sessions reproduced")
	return nil
}

// truncateID shortens a long identifier for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:16] + "..."
}
