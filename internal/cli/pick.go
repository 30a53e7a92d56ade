package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickEntry is one selectable object in the picker.
type pickEntry struct {
	id         int
	name       string
	complexity string
	reachable  bool
}

// objectListModel is the bubbletea model for interactive object selection.
type objectListModel struct {
	entries  []pickEntry
	cursor   int
	offset   int
	height   int
	selected *pickEntry
}

func newObjectListModel(entries []pickEntry) objectListModel {
	return objectListModel{
		entries: entries,
		height:  15,
	}
}

func (m objectListModel) Init() tea.Cmd {
	return nil
}

func (m objectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = &m.entries[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m objectListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Object"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-40s %6d  %s", cursor, e.name, e.id, e.complexity)

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !e.reachable:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}

// pickObject opens the interactive object picker and returns the chosen
// object id.
func pickObject(g *graph.Graph) (int, error) {
	var entries []pickEntry
	for i := 0; i < g.NodeCount(); i++ {
		n := g.Node(i)
		if !n.IsObject() || n.Object.ID <= 0 {
			continue
		}
		e := pickEntry{id: n.Object.ID, name: n.Object.Name}
		if v, ok := n.Complexity.Value(); ok {
			e.complexity = fmt.Sprintf("c%d", v)
			e.reachable = true
		} else {
			e.complexity = "—"
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	if len(entries) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "databank has no selectable objects")
	}

	final, err := tea.NewProgram(newObjectListModel(entries)).Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(objectListModel)
	if !ok || m.selected == nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "no object selected")
	}
	return m.selected.id, nil
}
