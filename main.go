package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/crillab/boolexpr/config"
	"github.com/crillab/boolexpr/expr"
	"github.com/crillab/boolexpr/repl"
	"github.com/crillab/boolexpr/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	cfgFile string
	verbose bool
	lines   []string
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:   "boolexpr",
		Short: "Evaluate and simplify boolean formulas",
		Long: `boolexpr reads boolean formulas such as "(a v b) ^ -c" and simplifies them
with the truth values given to their variables.

Without arguments, an interactive session is started on the standard input.
Type "help" in the session to list the available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, &opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "sets verbose mode on")
	root.Flags().StringArrayVarP(&opts.lines, "exec", "e", nil, "run the given session command instead of reading the standard input (repeatable)")
	root.AddCommand(newEvalCmd(&opts), newSatCmd(&opts), newDimacsCmd(&opts))
	return root
}

// loadConfig returns the configuration, the logger and a session holding the preloaded variables and formulas.
func loadConfig(opts *options, logOut io.Writer) (*config.Config, *slog.Logger, *session.Session, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		var err error
		if cfg, err = config.Load(opts.cfgFile); err != nil {
			return nil, nil, nil, err
		}
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	logger := cfg.NewLogger(logOut)
	sess := session.New()
	for name, val := range cfg.Assignments {
		if _, err := sess.Set(rune(name[0]), val); err != nil {
			return nil, nil, nil, err
		}
	}
	names := make([]string, 0, len(cfg.Definitions))
	for name := range cfg.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e, err := expr.Parse(cfg.Definitions[name])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not parse definition %q: %w", name, err)
		}
		if _, err := sess.Define(name, e); err != nil {
			return nil, nil, nil, err
		}
	}
	logger.Debug("configuration loaded", "file", opts.cfgFile, "variables", sess.Len(), "definitions", len(names))
	return cfg, logger, sess, nil
}

func runREPL(cmd *cobra.Command, opts *options) error {
	cfg, logger, sess, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return fail(cmd, "could not load configuration", err)
	}
	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok {
		color = cfg.UseColor(f)
	}
	if len(opts.lines) > 0 {
		r := repl.New(nil, out, repl.Options{Color: color, Logger: logger, Session: sess})
		return execLines(cmd, r, opts.lines)
	}
	var prompt string // No prompt when the input is not typed by a human
	if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		prompt = cfg.Prompt
	}
	r := repl.New(cmd.InOrStdin(), out, repl.Options{Prompt: prompt, Color: color, Logger: logger, Session: sess})
	if err := r.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return fail(cmd, "session failed", err)
	}
	return nil
}

// execLines runs each line as a session command.
// All lines are run even if some fail; the first failure is reported.
func execLines(cmd *cobra.Command, r *repl.REPL, lines []string) error {
	var first error
	for _, line := range lines {
		err := r.Exec(line)
		if errors.Is(err, repl.ErrClosed) {
			break
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "could not execute %q: %v\n", line, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func fail(cmd *cobra.Command, msg string, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", msg, err)
	return err
}

func newEvalCmd(opts *options) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "eval <formula>",
		Short: "Print the simplified form of a formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, sess, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return fail(cmd, "could not load configuration", err)
			}
			for _, set := range sets {
				if err := applySet(sess, set); err != nil {
					return fail(cmd, "invalid --set", err)
				}
			}
			e, err := parseArg(sess, args[0])
			if err != nil {
				return fail(cmd, "could not parse formula", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), expr.Render(sess.Evaluate(e)))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "bind a variable, as x=T or x=F (repeatable)")
	return cmd
}

func newSatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sat <formula>",
		Short: "Look for an assignment making a formula true",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, sess, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return fail(cmd, "could not load configuration", err)
			}
			e, err := parseArg(sess, args[0])
			if err != nil {
				return fail(cmd, "could not parse formula", err)
			}
			res := sess.Evaluate(e)
			logger.Debug("solving", "formula", expr.Render(res))
			writeModel(cmd.OutOrStdout(), expr.Solve(res))
			return nil
		},
	}
}

func newDimacsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dimacs <formula>",
		Short: "Print the DIMACS CNF version of a formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, sess, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return fail(cmd, "could not load configuration", err)
			}
			e, err := parseArg(sess, args[0])
			if err != nil {
				return fail(cmd, "could not parse formula", err)
			}
			if err := expr.Dimacs(sess.Evaluate(e), cmd.OutOrStdout()); err != nil {
				return fail(cmd, "could not generate DIMACS output", err)
			}
			return nil
		},
	}
}

// parseArg parses a formula given on the command line. "$name" designates a formula from the config file.
func parseArg(sess *session.Session, arg string) (expr.Expr, error) {
	if strings.HasPrefix(arg, "$") {
		e, ok := sess.Definition(arg[1:])
		if !ok {
			return nil, fmt.Errorf("no formula named %q", arg[1:])
		}
		return e, nil
	}
	return expr.Parse(arg)
}

func applySet(sess *session.Session, set string) error {
	name, val, ok := strings.Cut(set, "=")
	name, val = strings.TrimSpace(name), strings.TrimSpace(val)
	if !ok || len(name) != 1 || (val != "T" && val != "F") {
		return fmt.Errorf("expected x=T or x=F, got %q", set)
	}
	_, err := sess.Set(rune(name[0]), val == "T")
	return err
}

func writeModel(w io.Writer, model expr.Assignment) {
	if model == nil {
		fmt.Fprintln(w, "UNSATISFIABLE")
		return
	}
	fmt.Fprintln(w, "SATISFIABLE")
	keys := make([]string, 0, len(model))
	for k := range model {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %t\n", k, model[rune(k[0])])
	}
}
