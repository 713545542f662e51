package repl

import (
	"fmt"
	"strings"
)

type commandKind int

const (
	badCmd commandKind = iota
	queryCmd
	setCmd
	unsetCmd
	defineCmd
	recallCmd
	satCmd
	tautCmd
	dimacsCmd
	statusCmd
	resetCmd
	helpCmd
	closeCmd
)

var kindNames = [...]string{
	badCmd:    "bad",
	queryCmd:  "query",
	setCmd:    "set",
	unsetCmd:  "unset",
	defineCmd: "define",
	recallCmd: "recall",
	satCmd:    "sat",
	tautCmd:   "taut",
	dimacsCmd: "dimacs",
	statusCmd: "status",
	resetCmd:  "reset",
	helpCmd:   "help",
	closeCmd:  "close",
}

func (k commandKind) String() string {
	return kindNames[k]
}

// A command is a parsed input line.
// Depending on kind, name is a variable or definition name, text a formula and val a truth value.
type command struct {
	kind commandKind
	name string
	text string
	val  bool
}

// Prefixes of commands that take an argument.
var prefixes = []struct {
	prefix string
	kind   commandKind
}{
	{"?:", queryCmd},
	{"!:", setCmd},
	{"~:", unsetCmd},
	{"$:", defineCmd},
	{"sat:", satCmd},
	{"taut:", tautCmd},
	{"dimacs:", dimacsCmd},
}

// parseCommand reads a line of input.
// Lines that are not commands are reported as badCmd; an error means the line is a
// command with invalid arguments.
func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "close", "quit", "exit":
		return command{kind: closeCmd}, nil
	case "help":
		return command{kind: helpCmd}, nil
	case "status":
		return command{kind: statusCmd}, nil
	case "reset":
		return command{kind: resetCmd}, nil
	}
	for _, p := range prefixes {
		if !strings.HasPrefix(line, p.prefix) {
			continue
		}
		arg := strings.TrimSpace(line[len(p.prefix):])
		switch p.kind {
		case setCmd:
			return parseSet(arg)
		case unsetCmd:
			return parseUnset(arg)
		case defineCmd:
			return parseDefine(arg)
		default:
			if arg == "" {
				return command{}, fmt.Errorf("missing formula after %q", p.prefix)
			}
			return command{kind: p.kind, text: arg}, nil
		}
	}
	return command{kind: badCmd}, nil
}

// parseSet reads "x = T", "x=F" or "x T".
func parseSet(arg string) (command, error) {
	fields := strings.Fields(strings.Replace(arg, "=", " ", 1))
	if len(fields) != 2 {
		return command{}, fmt.Errorf("expected %q, got %q", "!: <variable> = T|F", arg)
	}
	var val bool
	switch fields[1] {
	case "T":
		val = true
	case "F":
		val = false
	default:
		return command{}, fmt.Errorf("invalid truth value %q, expected T or F", fields[1])
	}
	return command{kind: setCmd, name: fields[0], val: val}, nil
}

func parseUnset(arg string) (command, error) {
	if arg == "" || strings.ContainsRune(arg, ' ') {
		return command{}, fmt.Errorf("expected %q, got %q", "~: <variable>", arg)
	}
	return command{kind: unsetCmd, name: arg}, nil
}

// parseDefine reads "name := formula", or just "name" to recall a definition.
func parseDefine(arg string) (command, error) {
	name, text, found := strings.Cut(arg, ":=")
	name = strings.TrimSpace(name)
	if name == "" {
		return command{}, fmt.Errorf("missing definition name")
	}
	if !found {
		return command{kind: recallCmd, name: name}, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return command{}, fmt.Errorf("missing formula for definition %q", name)
	}
	return command{kind: defineCmd, name: name, text: text}, nil
}
