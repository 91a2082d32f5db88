// Package tui is the interactive report viewer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/docdiff/core"
	"github.com/huangsam/docdiff/schema"
)

// Model is the Bubble Tea model for browsing a loaded report.
type Model struct {
	session  *core.Session
	view     schema.ReportView
	viewport viewport.Model
	cursor   int
	ready    bool
}

// New creates a viewer over a session that already holds a report.
// Every result starts expanded since the session resets expansion on load.
func New(session *core.Session, maxLength int) (Model, error) {
	if session == nil {
		return Model{}, schema.ErrNoReport
	}
	if _, ok := session.Report(); !ok {
		return Model{}, schema.ErrNoReport
	}
	view, err := session.View(maxLength)
	if err != nil {
		return Model{}, err
	}
	return Model{session: session, view: view, viewport: viewport.New(0, 0)}, nil
}

// Init has no startup command.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := bodyStyle.GetFrameSize()
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-headerLines-footerLines-fh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			if n := len(m.view.Results); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.refresh()
			}
			return m, nil
		case "up", "k":
			if n := len(m.view.Results); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.refresh()
			}
			return m, nil
		case "enter", " ":
			if len(m.view.Results) > 0 {
				m.session.Expansion().Toggle(m.cursor)
				m.refresh()
			}
			return m, nil
		case "e":
			m.session.Expansion().ExpandAll(len(m.view.Results))
			m.refresh()
			return m, nil
		case "c":
			m.session.Expansion().CollapseAll()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the header, the scrollable result list and the key help.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.header() + "\n" + bodyStyle.Render(m.viewport.View()) + "\n" + helpStyle.Render(helpText)
}

// Cursor returns the selected result index.
func (m Model) Cursor() int { return m.cursor }

// refresh re-renders the body and scrolls so the cursor stays visible.
func (m *Model) refresh() {
	content, cursorLine := m.renderBody()
	m.viewport.SetContent(content)
	switch {
	case cursorLine < m.viewport.YOffset:
		m.viewport.SetYOffset(cursorLine)
	case m.viewport.Height > 0 && cursorLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

func (m Model) header() string {
	title := titleStyle.Render(fmt.Sprintf("%s vs %s", m.view.FileID1, m.view.FileID2))
	meta := mutedStyle.Render(fmt.Sprintf("mode: %s  comparisons: %d  time: %.2fs",
		m.view.Mode, m.view.TotalComparisons, m.view.ComparisonTimeSeconds))
	s := m.view.Stats
	stats := mutedStyle.Render(fmt.Sprintf("%s %d  %s %d  %s %d  %s %d  avg %s",
		schema.EqualLabel, s.Equal, schema.DeleteLabel, s.Delete,
		schema.InsertLabel, s.Insert, schema.ReplaceLabel, s.Replace,
		core.FormatPercent(s.AvgSimilarity)))
	return title + "\n" + meta + "\n" + stats
}

// renderBody returns the result list and the line the cursor sits on.
func (m Model) renderBody() (string, int) {
	if len(m.view.Results) == 0 {
		return "No comparison results.", 0
	}
	var sb strings.Builder
	line, cursorLine := 0, 0
	writeLine := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
		line++
	}

	for _, r := range m.view.Results {
		expanded := m.session.Expansion().IsExpanded(r.Index)
		pointer, marker := "  ", "[+]"
		if r.Index == m.cursor {
			pointer = "> "
			cursorLine = line
		}
		if expanded {
			marker = "[-]"
		}
		badge := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(schema.TierHexColor(r.Badge.Tier))).
			Render(schema.TierLabel(r.Badge.Tier))
		row := fmt.Sprintf("%s%s %s %s %s %s", pointer, marker, r.ItemType, r.ItemID, badge, core.FormatPercent(r.Overall))
		if r.Index == m.cursor {
			row = selectedStyle.Render(row)
		}
		writeLine(row)
		if !expanded {
			continue
		}

		for _, d := range r.Dimensions {
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(schema.BarHexColor(d.Bar.Level))).Render(renderBar(d.Score))
			writeLine(fmt.Sprintf("      %-10s %s %s", d.Name, bar, core.FormatPercent(d.Score)))
		}
		if len(r.Groups) == 0 {
			writeLine("      " + mutedStyle.Render(schema.NoDifferencesLabel))
		}
		for _, g := range r.Groups {
			writeLine("      " + operationStyle(g.Operation).Bold(true).Render(g.Title))
			for _, text := range strings.Split(g.Text.Display(), "\n") {
				writeLine("        " + operationStyle(g.Operation).Render(text))
			}
			if note := g.Text.Note(); note != "" {
				writeLine("        " + mutedStyle.Render(note))
			}
		}
		for _, md := range r.Metadata {
			writeLine(mutedStyle.Render(fmt.Sprintf("      %s: %s", md.Key, md.Value)))
		}
	}
	return strings.TrimRight(sb.String(), "\n"), cursorLine
}

// renderBar draws a ten-cell bar for a score in [0,1].
func renderBar(score float64) string {
	filled := min(max(int(score*barCells+0.5), 0), barCells)
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

func operationStyle(op schema.OperationKind) lipgloss.Style {
	switch op {
	case schema.DeleteOp:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	case schema.InsertOp:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case schema.ReplaceOp:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	default:
		return lipgloss.NewStyle()
	}
}

const (
	barCells    = 10
	headerLines = 3
	footerLines = 1
	helpText    = "↑/k ↓/j move • enter/space toggle • e expand all • c collapse all • q quit"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bodyStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
