package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/script"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// runError marks a failure that happened after the arguments were accepted.
type runError struct{ err error }

func (e runError) Error() string { return e.err.Error() }
func (e runError) Unwrap() error { return e.err }

func failed(format string, args ...any) error {
	return runError{err: fmt.Errorf(format, args...)}
}

// Env is what a command run needs from the process.
type Env struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer
	// IsTerminal reports whether the interactive UI can start.
	IsTerminal func() bool
}

// Main runs the CLI with the process arguments and returns the exit code.
func Main() int {
	return Run(os.Args[1:], Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	})
}

// Run dispatches args and returns an exit code.
func Run(args []string, env Env) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root := NewRootCmd(env)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	ui.Fail(env.Stderr, err.Error())
	var re runError
	if errors.As(err, &re) {
		return exitError
	}
	fmt.Fprintln(env.Stderr, ui.Current().Muted.Render("Run `tada --help` for usage."))
	return exitUsage
}

type rootFlags struct {
	configPath string
	theme      string
	ids        string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd(env Env) *cobra.Command {
	var (
		flags rootFlags
		seed  []string
	)
	root := &cobra.Command{
		Use:   "tada",
		Short: "A tiny in-memory todo list for the terminal",
		Long: `tada keeps a todo list for the length of one session.

Run without arguments to open the interactive list:
  a add, space toggle, d delete, K/J move, m grab and drop, q quit.

Nothing is saved when tada exits.`,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			sess, err := openSession(cmd, flags, true)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			if env.IsTerminal == nil || !env.IsTerminal() {
				return failed("tada needs a terminal; use `tada run` for scripts")
			}
			for _, text := range seed {
				sess.store.Add(text)
			}
			if err := tui.Run(sess.store, tui.Options{
				CharLimit:   sess.cfg.CharLimit,
				Placeholder: sess.cfg.Placeholder,
				Logger:      sess.logger,
			}); err != nil {
				return failed("tui: %w", err)
			}
			return nil
		},
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return err })

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/tada/config.toml)")
	pf.StringVar(&flags.theme, "theme", "", "colour theme: classic, neon or mono")
	pf.StringVar(&flags.ids, "ids", "", "id scheme: uuid or counter")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().StringArrayVar(&seed, "add", nil, "start with this item (repeatable)")

	root.AddCommand(newRunCmd(&flags, env))
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func newRunCmd(flags *rootFlags, env Env) *cobra.Command {
	var asJSON, group bool
	cmd := &cobra.Command{
		Use:   "run <script.json|->",
		Short: "Apply a JSON script of operations and print the resulting list",
		Example: `  tada run plan.json
  echo '{"commands":[{"op":"add","text":"Buy milk"}]}' | tada run - --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: tada run <script.json|->")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := openSession(cmd, *flags, false)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			sc, err := script.LoadFile(args[0], cmd.InOrStdin())
			if err != nil {
				return failed("load: %w", err)
			}
			results := script.Apply(sess.store, sc, sess.logger)
			items := sess.store.Items()

			out := cmd.OutOrStdout()
			if asJSON {
				if err := script.WriteJSON(out, items); err != nil {
					return failed("%w", err)
				}
				return nil
			}
			fmt.Fprintln(out, ui.Panel(ui.Summary(items, group)))
			applied := 0
			for _, r := range results {
				if r.Applied {
					applied++
				}
			}
			ui.OK(out, fmt.Sprintf("applied %d of %d commands", applied, len(results)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

// session is the configured store plus what has to be closed afterwards.
type session struct {
	cfg    config.Config
	store  *store.Store
	logger *log.Logger
	closer io.Closer
}

// close releases the log file. err is the command's result so far; a close
// failure only replaces a nil one.
func (s *session) close(err *error) {
	if s.closer == nil {
		return
	}
	if cerr := s.closer.Close(); cerr != nil && *err == nil {
		*err = failed("close log: %w", cerr)
	}
}

// openSession loads config, applies flag overrides and builds the store.
// Interactive sessions log to the configured file only, so the screen stays clean.
func openSession(cmd *cobra.Command, flags rootFlags, interactive bool) (*session, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, failed("%w", err)
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.ids != "" {
		cfg.IDs = flags.ids
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	ids, err := store.NewIDGenerator(cfg.IDs)
	if err != nil {
		return nil, err
	}
	ui.SetTheme(cfg.Theme)

	sess := &session{cfg: cfg}
	switch {
	case cfg.LogFile != "":
		l, f, err := logging.OpenFile(cfg.LogFile, level)
		if err != nil {
			return nil, failed("%w", err)
		}
		sess.logger, sess.closer = l, f
	case interactive:
		sess.logger = logging.Discard()
	default:
		sess.logger = logging.New(cmd.ErrOrStderr(), level)
	}

	sess.store = store.New(store.WithIDGenerator(ids), store.WithLogger(sess.logger))
	sess.store.Subscribe(func(c store.Change) {
		sess.logger.Debug("changed", "op", c.Op, "id", c.ID, "items", len(c.Items))
	})
	return sess, nil
}
