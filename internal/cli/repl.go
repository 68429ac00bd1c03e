package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/abacus/internal/display"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Database string
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator session on stdin",
		Long: `Read key presses from stdin, one line at a time, and print the display
after each line. Words on a line are split the same way as for press.
"h" toggles the history panel. "quit" or end of input ends the session.

With --format json, one screen snapshot is written per line.

Examples:
  abacus repl
  abacus repl --db ./abacus.db
  printf '1+2=\nh\n' | abacus repl --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the session to this SQLite database")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(formatter, opts.RootOptions)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	sess, cleanup, err := startSession(ctx, formatter, cfg, opts.Database, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	w := cmd.OutOrStdout()
	encoder := json.NewEncoder(w)
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		steps, err := sess.PressAll(ctx, sess.Keymap().Split(strings.Fields(line)...))
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to journal session", err)
		}
		if opts.Verbose {
			for _, step := range steps {
				writeStep(formatter.GetErrWriter(), step)
			}
		}

		screen := sess.Snapshot()
		if formatter.IsJSON() {
			if err := encoder.Encode(screen); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(w, screen.Value)
		if screen.ShowHistory {
			fmt.Fprint(w, display.FormatHistory(sess.History()))
		}
	}
	if err := scanner.Err(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to read input", err)
	}

	if opts.Database != "" {
		fmt.Fprintf(formatter.GetErrWriter(), "session %s recorded in %s\n", sess.ID(), opts.Database)
	}
	return nil
}
