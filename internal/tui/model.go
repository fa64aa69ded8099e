// Package tui is an interactive terminal viewer for a visibility report.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"unitsight/internal/geometry"
	"unitsight/internal/perception"
	"unitsight/internal/unit"
	"unitsight/internal/visibility"
)

// Source is the read access the viewer needs. *visibility.Engine satisfies it.
type Source interface {
	Units() []unit.Unit
	Vision() perception.Vision
	VisibleIDs(id int) ([]int, error)
}

const (
	defaultWidth  = 100
	defaultHeight = 30
	tableWidth    = 44
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	seenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpFooter   = "↑/↓ select unit • m toggle map • w toggle wrap • ? help • q quit"
	helpBindings = []string{
		"Key Bindings:",
		" q      quit",
		" ↑/k    previous unit",
		" ↓/j    next unit",
		" pgup   page up",
		" pgdown page down",
		" m      toggle map",
		" w      toggle footer wrap",
		" h/?    toggle this help view",
		"",
		"Map legend: ^ > v < facing, red selected, green seen by selected",
	}
)

type model struct {
	src     Source
	report  visibility.Report
	table   table.Model
	visible map[int]bool
	err     error
	width   int
	height  int
	showMap bool
	wrap    bool
	help    bool
}

func newModel(src Source, rep visibility.Report) model {
	cols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 14},
		{Title: "X", Width: 8},
		{Title: "Y", Width: 8},
		{Title: "Sees", Width: 5},
	}
	rows := make([]table.Row, 0, len(rep.Entries))
	units := src.Units()
	for _, e := range rep.Entries {
		u := units[e.ID]
		rows = append(rows, table.Row{
			strconv.Itoa(e.ID),
			e.Name,
			fmt.Sprintf("%.2f", u.Position.X),
			fmt.Sprintf("%.2f", u.Position.Y),
			strconv.FormatUint(uint64(e.Visible), 10),
		})
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithWidth(tableWidth),
		table.WithHeight(defaultHeight-6),
	)
	m := model{
		src:     src,
		report:  rep,
		table:   t,
		width:   defaultWidth,
		height:  defaultHeight,
		showMap: true,
		wrap:    true,
	}
	m.refreshSelection()
	return m
}

func (m model) Init() tea.Cmd { return nil }

// selected returns the id under the table cursor or -1.
func (m model) selected() int {
	if len(m.report.Entries) == 0 {
		return -1
	}
	c := m.table.Cursor()
	if c < 0 || c >= len(m.report.Entries) {
		return -1
	}
	return m.report.Entries[c].ID
}

func (m *model) refreshSelection() {
	m.visible = map[int]bool{}
	m.err = nil
	id := m.selected()
	if id < 0 {
		return
	}
	ids, err := m.src.VisibleIDs(id)
	if err != nil {
		m.err = err
		return
	}
	for _, v := range ids {
		m.visible[v] = true
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-6, 3))
		return m, nil
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "h", "?", "esc":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "h", "?":
			m.help = true
			return m, nil
		case "m":
			m.showMap = !m.showMap
			return m, nil
		case "w":
			m.wrap = !m.wrap
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != before {
		m.refreshSelection()
	}
	return m, cmd
}

func (m model) View() string {
	if m.help {
		return strings.Join(helpBindings, "\n")
	}
	divider := sepStyle.Render(strings.Repeat("─", max(m.width, 1)))
	body := m.table.View()
	if m.showMap {
		mapWidth := m.width - tableWidth - 3
		mapHeight := m.height - 6
		if mapWidth > 4 && mapHeight > 2 {
			sep := sepStyle.Render("│")
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " "+sep+" ", m.renderMap(mapWidth, mapHeight))
		}
	}
	sections := []string{m.renderHeader(), divider, body, divider, m.renderFooter()}
	return strings.Join(sections, "\n")
}

func (m model) renderHeader() string {
	v := m.src.Vision()
	title := titleStyle.Render("unitsight")
	info := fmt.Sprintf(" %d units • view %.1f° • distance %.2f", len(m.report.Entries), v.AngleDeg(), v.Distance)
	id := m.selected()
	if id < 0 {
		return title + info
	}
	name := m.report.Entries[m.table.Cursor()].Name
	sel := fmt.Sprintf(" • %s sees %d", focusStyle.Render(name), len(m.visible))
	return title + info + sel
}

func (m model) renderFooter() string {
	footer := helpFooter
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error()) + " • " + footer
	}
	if m.wrap && m.width > 0 {
		footer = wordwrap.String(footer, m.width)
	}
	return dimStyle.Render(footer)
}

// headingGlyph maps a facing vector to one of four arrow characters.
func headingGlyph(f geometry.Point) string {
	deg := math.Atan2(f.Y, f.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg >= 45 && deg < 135:
		return "^"
	case deg >= 135 && deg < 225:
		return "<"
	case deg >= 225 && deg < 315:
		return "v"
	default:
		return ">"
	}
}

func (m model) renderMap(width, height int) string {
	units := m.src.Units()
	if len(units) == 0 {
		return "No units"
	}
	minX, maxX := units[0].Position.X, units[0].Position.X
	minY, maxY := units[0].Position.Y, units[0].Position.Y
	for _, u := range units[1:] {
		minX = math.Min(minX, u.Position.X)
		maxX = math.Max(maxX, u.Position.X)
		minY = math.Min(minY, u.Position.Y)
		maxY = math.Max(maxY, u.Position.Y)
	}
	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)

	grid := make([][]string, height)
	for i := range grid {
		row := make([]string, width)
		for j := range row {
			row[j] = dimStyle.Render(".")
		}
		grid[i] = row
	}
	focus := m.selected()
	place := func(u unit.Unit) {
		x := int((u.Position.X - minX) / spanX * float64(width-1))
		y := int((maxY - u.Position.Y) / spanY * float64(height-1))
		glyph := headingGlyph(u.Facing)
		switch {
		case u.ID == focus:
			glyph = focusStyle.Render(glyph)
		case m.visible[u.ID]:
			glyph = seenStyle.Render(glyph)
		}
		grid[y][x] = glyph
	}
	for _, u := range units {
		if u.ID != focus && !m.visible[u.ID] {
			place(u)
		}
	}
	// highlighted units are drawn last so they win shared cells
	for _, u := range units {
		if u.ID == focus || m.visible[u.ID] {
			place(u)
		}
	}
	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// Run starts the viewer and blocks until the user quits.
func Run(src Source, rep visibility.Report) error {
	_, err := tea.NewProgram(newModel(src, rep), tea.WithAltScreen()).Run()
	return err
}
