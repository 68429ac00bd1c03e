package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/config"
	"github.com/roach88/abacus/internal/display"
	"github.com/roach88/abacus/internal/session"
)

// PressOptions holds flags for the press command.
type PressOptions struct {
	*RootOptions
	Database string // journal database, optional
	History  bool   // always print the history panel

	// IDGenerator allows overriding the session ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator session.IDGenerator
}

// PressResult is the JSON payload of the press command.
type PressResult struct {
	SessionID string         `json:"session_id"`
	Display   string         `json:"display"`
	History   []string       `json:"history"`
	State     calc.State     `json:"state"`
	Steps     []session.Step `json:"steps,omitempty"`
}

// NewPressCommand creates the press command.
func NewPressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "press <keys>...",
		Short: "Press keys on a fresh calculator",
		Long: `Press keys on a fresh calculator session and print the display.

Each argument is split into single-character keys unless it is a named key
(Enter, Delete, Escape) or a configured binding. Multiplication and division
may be typed as × and ÷; full-width digits are accepted.

Examples:
  abacus press 12+7=
  abacus press 2 '*' 3 Enter --history
  abacus press 0.1+0.2= --db ./abacus.db
  abacus press 8÷2= --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPress(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the session to this SQLite database")
	cmd.Flags().BoolVar(&opts.History, "history", false, "print the history panel")

	return cmd
}

func runPress(opts *PressOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(formatter, opts.RootOptions)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	sess, cleanup, err := startSession(ctx, formatter, cfg, opts.Database, opts.IDGenerator)
	if err != nil {
		return err
	}
	defer cleanup()

	keys := sess.Keymap().Split(args...)
	formatter.VerboseLog("keys: %q", keys)

	steps, err := sess.PressAll(ctx, keys)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to journal session", err)
	}

	screen := sess.Snapshot()
	result := PressResult{
		SessionID: sess.ID(),
		Display:   screen.Value,
		History:   screen.History,
		State:     sess.State(),
	}
	if opts.Verbose {
		result.Steps = steps
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if opts.Verbose {
		for _, step := range steps {
			writeStep(formatter.GetErrWriter(), step)
		}
	}
	fmt.Fprintln(w, result.Display)
	if opts.History || screen.ShowHistory {
		fmt.Fprint(w, display.FormatHistory(sess.History()))
	}
	if opts.Database != "" {
		fmt.Fprintf(formatter.GetErrWriter(), "session %s recorded in %s\n", sess.ID(), opts.Database)
	}
	return nil
}

// startSession creates a session, journaled to database when it is set.
// The returned cleanup closes the database.
func startSession(ctx context.Context, f *OutputFormatter, cfg config.Config, database string, ids session.IDGenerator) (*session.Session, func(), error) {
	var sessOpts []session.Option
	if ids != nil {
		sessOpts = append(sessOpts, session.WithIDGenerator(ids))
	}

	cleanup := func() {}
	if database != "" {
		st, err := openStore(f, database)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { closeStore(st) }
		sessOpts = append(sessOpts, session.WithRecorder(st))
	}

	sess, err := session.New(ctx, cfg, sessOpts...)
	if err != nil {
		cleanup()
		return nil, nil, f.Fail(ExitCommandError, ErrCodeGeneric, "failed to start session", err)
	}
	return sess, cleanup, nil
}

// writeStep prints one step of a verbose trace.
func writeStep(w io.Writer, step session.Step) {
	token := string(step.Token)
	if token == "" {
		token = step.Action.String()
	}
	fmt.Fprintf(w, "  [%d] %-8q -> %-8s %s\n", step.Seq, step.Key, token, step.Display)
	if step.Entry != nil {
		fmt.Fprintf(w, "      history: %s\n", step.Entry)
	}
}
