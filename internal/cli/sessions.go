package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/journal"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
}

// SessionSummary is one row of the sessions listing.
type SessionSummary struct {
	journal.Session
	Inputs  int `json:"inputs"`
	Entries int `json:"entries"`
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Long: `List every session recorded in a journal database with its settings,
the number of key presses and the number of history entries.

Examples:
  abacus sessions --db ./abacus.db
  abacus sessions --db ./abacus.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := openStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		inputs, err := st.ReadInputs(ctx, sess.ID)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read inputs", err)
		}
		history, err := st.ReadHistory(ctx, sess.ID, 0)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read history", err)
		}
		summaries = append(summaries, SessionSummary{
			Session: sess,
			Inputs:  len(inputs),
			Entries: len(history),
		})
	}

	if formatter.IsJSON() {
		return formatter.Success(summaries)
	}

	w := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%s  keys=%d entries=%d history_size=%d precision=%d engine=%s\n",
			s.ID, s.Inputs, s.Entries, s.HistorySize, s.Precision, s.EngineVersion)
	}
	return nil
}
