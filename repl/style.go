package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorResult  = lipgloss.Color("#2CD7C7")
	colorHeading = lipgloss.Color("#20B9B4")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#5C7A84")
)

// styles are applied to single lines of output only.
type styles struct {
	result  lipgloss.Style
	heading lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		result:  r.NewStyle().Foreground(colorResult),
		heading: r.NewStyle().Bold(true).Foreground(colorHeading),
		err:     r.NewStyle().Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}
