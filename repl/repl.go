// Package repl implements the interactive command loop of boolexpr.
//
// Each input line is one command. Formulas are read with expr.Parse, and wherever a formula
// is expected, "$name" designates the formula stored under that name.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/crillab/boolexpr/expr"
	"github.com/crillab/boolexpr/session"
)

// ErrClosed is returned by Exec when the user asked to end the session.
var ErrClosed = errors.New("session closed")

const helpText = `commands:
  ?: <formula>          evaluate a formula with the current variables
  !: <x> = T|F          set a variable
  ~: <x>                unset a variable
  $: <name> := <formula> store a formula under a name
  $: <name>             evaluate a stored formula
  sat: <formula>        look for an assignment making the formula true
  taut: <formula>       check whether the formula is always true
  dimacs: <formula>     print the DIMACS CNF of the formula
  status                list variables and stored formulas
  reset                 forget all variables and stored formulas
  help                  print this message
  close                 end the session
formulas: T, F, a-z (except v), ^ (and), v (or), - (not), parentheses; "$name" refers to a stored formula`

// Options configure a REPL.
type Options struct {
	// Prompt is printed before each line is read. Nothing is printed if it is empty.
	Prompt string
	// Color enables styled output.
	Color bool
	// Logger receives diagnostics. If nil, nothing is logged.
	Logger *slog.Logger
	// Session holds the state of the REPL. If nil, an empty session is used.
	Session *session.Session
}

// A REPL reads commands from an input and writes results on an output.
type REPL struct {
	in      io.Reader
	out     io.Writer
	prompt  string
	styles  styles
	logger  *slog.Logger
	session *session.Session
}

// New returns a REPL reading commands from in and writing results on out.
func New(in io.Reader, out io.Writer, opts Options) *REPL {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}
	return &REPL{
		in:      in,
		out:     out,
		prompt:  opts.Prompt,
		styles:  newStyles(out, opts.Color),
		logger:  logger.With("session", uuid.NewString()),
		session: sess,
	}
}

// Session returns the state of the REPL.
func (r *REPL) Session() *session.Session {
	return r.session
}

// Run reads and executes commands until the input is exhausted, the user closes the session,
// or ctx is done. Errors due to a command are printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	readErr := make(chan error, 1)
	// Scan cannot be interrupted: after cancellation the reader stays blocked
	// until the next line or EOF arrives on r.in, then exits.
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()
	for {
		r.printPrompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := <-readErr; err != nil {
					return fmt.Errorf("could not read input: %w", err)
				}
				r.logger.Debug("end of input")
				return nil
			}
			if err := r.Exec(line); err != nil {
				if errors.Is(err, ErrClosed) {
					return nil
				}
				r.logger.Debug("command failed", "error", err)
				r.printErr(err)
			}
		}
	}
}

func (r *REPL) printPrompt() {
	if r.prompt != "" {
		fmt.Fprint(r.out, r.prompt)
	}
}

// Exec executes a single command line.
// It returns ErrClosed if the line asks to end the session.
func (r *REPL) Exec(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	cmd, err := parseCommand(line)
	if err != nil {
		return err
	}
	r.logger.Debug("executing command", "kind", cmd.kind, "line", line)
	switch cmd.kind {
	case closeCmd:
		return ErrClosed
	case helpCmd:
		fmt.Fprintln(r.out, helpText)
	case statusCmd:
		r.status()
	case resetCmd:
		r.session.Reset()
		r.println(r.styles.muted, "=> session reset")
	case queryCmd:
		return r.query(cmd.text)
	case recallCmd:
		return r.query("$" + cmd.name)
	case setCmd:
		return r.set(cmd.name, cmd.val)
	case unsetCmd:
		return r.unset(cmd.name)
	case defineCmd:
		return r.define(cmd.name, cmd.text)
	case satCmd:
		return r.sat(cmd.text)
	case tautCmd:
		return r.taut(cmd.text)
	case dimacsCmd:
		return r.dimacs(cmd.text)
	default:
		r.println(r.styles.err, "bad input.")
	}
	return nil
}

func (r *REPL) println(style lipgloss.Style, s string) {
	fmt.Fprintln(r.out, style.Render(s))
}

func (r *REPL) printErr(err error) {
	r.println(r.styles.err, "error: "+err.Error())
}

// formula parses text, or returns the stored formula if text is "$name".
func (r *REPL) formula(text string) (expr.Expr, error) {
	if strings.HasPrefix(text, "$") {
		name := strings.TrimSpace(text[1:])
		e, ok := r.session.Definition(name)
		if !ok {
			return nil, fmt.Errorf("no formula named %q", name)
		}
		return e, nil
	}
	e, err := expr.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", text, err)
	}
	return e, nil
}

func (r *REPL) query(text string) error {
	e, err := r.formula(text)
	if err != nil {
		return err
	}
	r.println(r.styles.muted, "parsed => "+expr.Render(e))
	res := r.session.Evaluate(e)
	r.println(r.styles.result, "evaluated => "+expr.Render(res))
	return nil
}

func variableName(name string) (rune, error) {
	c, size := utf8.DecodeRuneInString(name)
	if size != len(name) || size == 0 {
		return 0, fmt.Errorf("%w: variable %q is not a single letter", session.ErrInvalidName, name)
	}
	return c, nil
}

func (r *REPL) set(name string, val bool) error {
	v, err := variableName(name)
	if err != nil {
		return err
	}
	if _, err := r.session.Set(v, val); err != nil {
		return err
	}
	r.println(r.styles.muted, fmt.Sprintf("=> setting %c to %t", v, val))
	return nil
}

func (r *REPL) unset(name string) error {
	v, err := variableName(name)
	if err != nil {
		return err
	}
	if r.session.Unset(v) {
		r.println(r.styles.muted, fmt.Sprintf("=> unsetting %c", v))
	} else {
		r.println(r.styles.muted, fmt.Sprintf("=> %c was not set", v))
	}
	return nil
}

func (r *REPL) define(name, text string) error {
	e, err := r.formula(text)
	if err != nil {
		return err
	}
	if _, err := r.session.Define(name, e); err != nil {
		return err
	}
	r.println(r.styles.muted, fmt.Sprintf("=> defining %s as %s", name, expr.Render(e)))
	return nil
}

// residual returns the formula designated by text, evaluated with the current variables.
func (r *REPL) residual(text string) (expr.Expr, error) {
	e, err := r.formula(text)
	if err != nil {
		return nil, err
	}
	return r.session.Evaluate(e), nil
}

func (r *REPL) sat(text string) error {
	e, err := r.residual(text)
	if err != nil {
		return err
	}
	model := expr.Solve(e)
	if model == nil {
		r.println(r.styles.result, "UNSATISFIABLE")
		return nil
	}
	r.println(r.styles.result, "SATISFIABLE")
	vars := make([]rune, 0, len(model))
	for v := range model {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	for _, v := range vars {
		fmt.Fprintf(r.out, "%c: %t\n", v, model[v])
	}
	return nil
}

func (r *REPL) taut(text string) error {
	e, err := r.residual(text)
	if err != nil {
		return err
	}
	if expr.Tautology(e) {
		r.println(r.styles.result, "TAUTOLOGY")
	} else {
		r.println(r.styles.result, "NOT A TAUTOLOGY")
	}
	return nil
}

func (r *REPL) dimacs(text string) error {
	e, err := r.residual(text)
	if err != nil {
		return err
	}
	return expr.Dimacs(e, r.out)
}

func (r *REPL) status() {
	vars := r.session.Vars()
	if len(vars) == 0 {
		r.println(r.styles.heading, "no variable set")
	} else {
		r.println(r.styles.heading, "variables:")
		for _, v := range vars {
			val, _ := r.session.Lookup(v)
			fmt.Fprintf(r.out, "  %c = %s\n", v, expr.Lit(val))
		}
	}
	defs := r.session.Definitions()
	if len(defs) == 0 {
		r.println(r.styles.heading, "no definition")
		return
	}
	r.println(r.styles.heading, "definitions:")
	for _, name := range defs {
		e, _ := r.session.Definition(name)
		fmt.Fprintf(r.out, "  %s := %s\n", name, expr.Render(e))
	}
}
