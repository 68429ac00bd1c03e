package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/display"
	"github.com/roach88/abacus/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	SessionID string                  `json:"session_id"`
	Entries   []journal.HistoryRecord `json:"entries"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "List a recorded session's history entries",
		Long: `List every "=" evaluation recorded for a session, most recent first.
Unlike the history panel this is not capped at the session's history size.

Examples:
  abacus history --db ./abacus.db 0192f7c4-...
  abacus history --db ./abacus.db 0192f7c4-... --limit 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of entries (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, sessionID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := openStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if _, err := st.ReadSession(ctx, sessionID); err != nil {
		return sessionReadError(formatter, sessionID, err)
	}

	records, err := st.ReadHistory(ctx, sessionID, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read history", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(HistoryResult{SessionID: sessionID, Entries: records})
	}

	entries := make([]calc.Entry, len(records))
	for i, rec := range records {
		entries[i] = calc.Entry{Expression: rec.Expression, Result: rec.Result}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "History for session: %s\n", sessionID)
	fmt.Fprint(w, display.FormatHistory(entries))
	return nil
}
