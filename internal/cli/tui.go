package cli

import (
	"context"
	"fmt"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sketchview/pkg/source"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// DocumentListModel is the bubbletea model for picking documents to
// render. Space toggles a document, enter confirms, q aborts.
type DocumentListModel struct {
	Documents []string
	Cursor    int
	Marked    map[int]bool
	Height    int
	Offset    int
	Confirmed bool
}

// NewDocumentListModel creates a new document list model.
func NewDocumentListModel(docs []string) DocumentListModel {
	return DocumentListModel{
		Documents: docs,
		Marked:    make(map[int]bool),
		Height:    15,
	}
}

// Selected returns the marked documents in list order, or the document
// under the cursor when nothing is marked. It is empty unless the
// selection was confirmed.
func (m DocumentListModel) Selected() []string {
	if !m.Confirmed || len(m.Documents) == 0 {
		return nil
	}
	var out []string
	for i, d := range m.Documents {
		if m.Marked[i] {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = []string{m.Documents[m.Cursor]}
	}
	return out
}

func (m DocumentListModel) Init() tea.Cmd {
	return nil
}

func (m DocumentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Documents)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.Marked[m.Cursor] = !m.Marked[m.Cursor]
		case "a":
			all := len(m.Marked) != len(m.Documents) || !allTrue(m.Marked)
			for i := range m.Documents {
				m.Marked[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func allTrue(m map[int]bool) bool {
	for _, v := range m {
		if !v {
			return false
		}
	}
	return true
}

func (m DocumentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Documents"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space mark  a all  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Documents) {
		end = len(m.Documents)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.Marked[i] {
			mark = iconSuccess
		}
		d := m.Documents[i]
		dir := path.Dir(d)
		if dir == "." {
			dir = ""
		}
		rows = append(rows, []string{cursor, mark, path.Base(d), dir})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Document", "Folder").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case m.Marked[idx]:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Documents))))

	return b.String()
}

// pickDocuments lists store and lets the user choose interactively.
func pickDocuments(ctx context.Context, store source.Store) ([]string, error) {
	docs, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		printWarning("No documents found")
		return nil, nil
	}
	final, err := tea.NewProgram(NewDocumentListModel(docs), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	return final.(DocumentListModel).Selected(), nil
}
