package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by command output and the inspect view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// report writes the human-readable outcome of a command. Logs go to the
// logger; a report is what the user asked for.
type report struct {
	w io.Writer
}

func (c *CLI) report() report {
	return report{w: c.Out}
}

func (r report) status(icon lipgloss.Style, mark, format string, args ...any) {
	fmt.Fprintln(r.w, icon.Render(mark)+" "+fmt.Sprintf(format, args...))
}

func (r report) success(format string, args ...any) {
	r.status(styleIconSuccess, iconSuccess, format, args...)
}

func (r report) failure(format string, args ...any) {
	r.status(styleIconError, iconError, format, args...)
}

func (r report) warning(format string, args ...any) {
	r.status(styleIconWarning, iconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (r report) info(format string, args ...any) {
	r.status(styleIconInfo, iconInfo, format, args...)
}

// detail prints an indented secondary line under the last status.
func (r report) detail(format string, args ...any) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written layout or artifact path.
func (r report) file(path string) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// stats prints the shape of a layout on one line, e.g.
// "2 axes · 3 series · 6 labels · 2 passes · fresh".
func (r report) stats(st pipeline.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d axes", st.AxisCount),
		fmt.Sprintf("%d series", st.SeriesCount),
	}
	if st.LabelCount > 0 {
		parts = append(parts, fmt.Sprintf("%d labels", st.LabelCount))
	}
	if st.Iterations > 0 {
		parts = append(parts, fmt.Sprintf("%d passes", st.Iterations))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	origin := styleComputed.Render("fresh")
	if cached {
		origin = styleCached.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(r.w, "  "+strings.Join(parts, sep)+sep+origin)
}

// nextStep suggests the command that usually follows, after a blank line.
func (r report) nextStep(description, cmd string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
