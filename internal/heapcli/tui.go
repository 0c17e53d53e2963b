package heapcli

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/hprofindex/internal/heap/registry"
	"github.com/mabhi256/hprofindex/utils"
)

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

var tuiKeys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// Model is the interactive summary view: a per-kind object count bar
// chart alongside a table of the classes with the most instances.
type Model struct {
	idx    *registry.Index
	help   help.Model
	chart  barchart.Model
	table  table.Model
	width  int
	height int
}

func NewModel(idx *registry.Index) Model {
	chart := barchart.New(40, 12)
	chart.PushAll([]barchart.BarData{
		{Label: "Classes", Values: []barchart.BarValue{{Name: "Classes", Value: float64(idx.ClassCount()), Style: lipgloss.NewStyle().Foreground(utils.InfoColor)}}},
		{Label: "Instances", Values: []barchart.BarValue{{Name: "Instances", Value: float64(idx.InstanceCount()), Style: lipgloss.NewStyle().Foreground(utils.GoodColor)}}},
		{Label: "ObjArrays", Values: []barchart.BarValue{{Name: "ObjArrays", Value: float64(idx.ObjectArrayCount()), Style: lipgloss.NewStyle().Foreground(utils.WarningColor)}}},
		{Label: "PrimArrays", Values: []barchart.BarValue{{Name: "PrimArrays", Value: float64(idx.PrimitiveArrayCount()), Style: lipgloss.NewStyle().Foreground(utils.MutedColor)}}},
	})
	chart.Draw()

	columns := []table.Column{
		{Title: "Class", Width: 40},
		{Title: "Instances", Width: 12},
	}
	var rows []table.Row
	for _, c := range TopClassesByInstanceCount(idx, 20) {
		rows = append(rows, table.Row{c.Name, fmt.Sprintf("%d", c.Count)})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{idx: idx, help: help.New(), chart: chart, table: t}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, tuiKeys.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	header := utils.TitleStyle.Render("hprofindex summary")
	chartTitle := utils.InfoStyle.Render("Object counts by kind")
	tableTitle := utils.InfoStyle.Render("Top classes by instance count")

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		chartTitle,
		m.chart.View(),
		"",
		tableTitle,
		m.table.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(tuiKeys))
}

// RunTUI starts the interactive summary program for idx.
func RunTUI(idx *registry.Index) error {
	program := tea.NewProgram(NewModel(idx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("summary TUI error: %w", err)
	}
	return nil
}
