package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chartlayout/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectView selects the table shown by InspectModel.
type inspectView int

const (
	viewAxes inspectView = iota
	viewSeries
)

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a layout's axes and
// series. Tab switches between the two tables.
type InspectModel struct {
	Layout model.Layout
	Tab    inspectView
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates a model showing the axes of l.
func NewInspectModel(l model.Layout) InspectModel {
	return InspectModel{Layout: l, Height: 15}
}

func (m InspectModel) rowCount() int {
	if m.Tab == viewSeries {
		return len(m.Layout.Series)
	}
	return len(m.Layout.Axes)
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.Tab = (m.Tab + 1) % 2
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(layoutHeading(m.Layout)))
	b.WriteString("\n")
	axesTab, seriesTab := listSelectedStyle, listDimStyle
	if m.Tab == viewSeries {
		axesTab, seriesTab = listDimStyle, listSelectedStyle
	}
	b.WriteString(axesTab.Render("Axes") + listDimStyle.Render(" | ") + seriesTab.Render("Series"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⇥ switch  q quit"))
	b.WriteString("\n\n")

	headers, rows := axisRows(m.Layout)
	if m.Tab == viewSeries {
		headers, rows = seriesRows(m.Layout)
	}
	end := m.Offset + m.Height
	if end > len(rows) {
		end = len(rows)
	}
	visible := rows[min(m.Offset, end):end]

	t := newTable(headers, visible).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if n := m.rowCount(); n > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, n)))
	}

	return b.String()
}

// =============================================================================
// Table Rendering
// =============================================================================

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...)
}

// renderInspect returns the non-interactive inspect output.
func renderInspect(l model.Layout) string {
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styled := func(t *table.Table) *table.Table {
		return t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			return lipgloss.NewStyle()
		})
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(layoutHeading(l)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("plot area %s", formatRect(l.PlotArea))))
	b.WriteString("\n\n")
	b.WriteString(StyleHighlight.Render("Axes"))
	b.WriteString("\n")
	b.WriteString(styled(newTable(axisRows(l))).Render())
	b.WriteString("\n\n")
	b.WriteString(StyleHighlight.Render("Series"))
	b.WriteString("\n")
	b.WriteString(styled(newTable(seriesRows(l))).Render())
	b.WriteString("\n")
	return b.String()
}

func layoutHeading(l model.Layout) string {
	title := l.Title
	if title == "" {
		title = "Chart"
	}
	status := "converged"
	if !l.Converged {
		status = "not converged"
	}
	return fmt.Sprintf("%s  %gx%g, %d passes, %s", title, l.Width, l.Height, l.Iterations, status)
}

func axisRows(l model.Layout) ([]string, [][]string) {
	headers := []string{"Axis", "Orientation", "Rect", "Range", "Interval", "Ticks"}
	rows := make([][]string, 0, len(l.Axes))
	for _, a := range l.Axes {
		orientation := a.Orientation
		if a.Opposed {
			orientation += " (opposed)"
		}
		rows = append(rows, []string{
			a.Name,
			orientation,
			formatRect(a.Rect),
			fmt.Sprintf("[%g, %g]", a.Min, a.Max),
			fmt.Sprintf("%g", a.Interval),
			fmt.Sprintf("%d", len(a.Ticks)),
		})
	}
	return headers, rows
}

func seriesRows(l model.Layout) ([]string, [][]string) {
	headers := []string{"Series", "Kind", "Axes", "Slot", "Points", "Labels"}
	rows := make([][]string, 0, len(l.Series))
	for _, s := range l.Series {
		name := s.Name
		if s.Hidden {
			name += " (hidden)"
		}
		slot := "-"
		if s.SideBySide != nil {
			slot = fmt.Sprintf("%d/%d", s.SideBySide.Index+1, s.SideBySide.Count)
		}
		rows = append(rows, []string{
			name,
			s.Kind,
			s.XAxis + " × " + s.YAxis,
			slot,
			fmt.Sprintf("%d", len(s.Segments)),
			StyleNumber.Render(fmt.Sprintf("%d", len(s.Labels))),
		})
	}
	return headers, rows
}

func formatRect(r model.Rect) string {
	return fmt.Sprintf("%.1f,%.1f %.1f×%.1f", r.X, r.Y, r.Width, r.Height)
}
