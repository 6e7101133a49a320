package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/lumocms/themehub/internal/i18n"
)

// ThemeItem is one selectable entry in the picker.
type ThemeItem struct {
	Name        string
	Description string
	Version     string
	Installed   bool
}

// PickResult holds the result of a picker run.
type PickResult struct {
	Name      string
	Cancelled bool
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	installedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the theme picker
type Model struct {
	items         []ThemeItem
	filteredItems []ThemeItem
	cursor        int
	width         int
	height        int
	searchInput   textinput.Model
	quitting      bool
	chosen        string
}

// NewModel creates a new picker model
func NewModel(items []ThemeItem) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 50
	ti.Width = 30

	return Model{
		items:         items,
		filteredItems: items,
		searchInput:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		// If search has text, clear it; otherwise quit
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < len(m.filteredItems)-1 {
			m.cursor++
		}

	case "enter":
		if m.cursor < len(m.filteredItems) {
			m.chosen = m.filteredItems[m.cursor].Name
			m.quitting = true
			return m, tea.Quit
		}

	case "backspace":
		val := m.searchInput.Value()
		if len(val) > 0 {
			m.searchInput.SetValue(val[:len(val)-1])
			m.applyFilter()
		}

	default:
		// Any other printable character goes to search
		if len(msg.String()) == 1 && msg.String()[0] >= 32 && msg.String()[0] < 127 {
			m.searchInput.SetValue(m.searchInput.Value() + msg.String())
			m.applyFilter()
		}
	}

	return m, nil
}

func (m *Model) applyFilter() {
	query := m.searchInput.Value()
	if query == "" {
		m.filteredItems = m.items
		if m.cursor >= len(m.filteredItems) {
			m.cursor = max(0, len(m.filteredItems)-1)
		}
		return
	}

	searchables := make([]string, len(m.items))
	for i, item := range m.items {
		parts := []string{item.Name}
		if item.Description != "" {
			parts = append(parts, item.Description)
		}
		searchables[i] = strings.ToLower(strings.Join(parts, " "))
	}

	matches := fuzzy.Find(strings.ToLower(query), searchables)
	m.filteredItems = make([]ThemeItem, len(matches))
	for i, match := range matches {
		m.filteredItems[i] = m.items[match.Index]
	}

	if m.cursor >= len(m.filteredItems) {
		m.cursor = max(0, len(m.filteredItems)-1)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := titleStyle.Render(i18n.T("PickerHeader", map[string]any{"Count": len(m.items)}))
	b.WriteString(header)
	b.WriteString("\n\n")

	listWidth := 36
	previewWidth := max(30, m.width-listWidth-6)
	listHeight := max(5, m.height-8)

	var listLines []string
	for i, item := range m.filteredItems {
		listLines = append(listLines, m.renderItem(i, item))
	}

	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := min(start+listHeight, len(listLines))

	visibleList := strings.Join(listLines[start:end], "\n")

	preview := m.renderPreview()

	listBox := lipgloss.NewStyle().Width(listWidth).Render(visibleList)
	previewBox := previewStyle.Width(previewWidth).Height(listHeight).Render(preview)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listBox, "  ", previewBox)
	b.WriteString(content)
	b.WriteString("\n\n")

	searchQuery := m.searchInput.Value()
	if searchQuery != "" {
		b.WriteString("> " + searchQuery + "_")
	} else {
		b.WriteString(helpStyle.Render("> type to filter..."))
	}
	b.WriteString("\n")

	help := helpStyle.Render("↑/↓: move | Enter: select | Esc: clear/quit")
	b.WriteString(help)

	return b.String()
}

func (m Model) renderItem(idx int, item ThemeItem) string {
	cursor := "  "
	if idx == m.cursor {
		cursor = "> "
	}

	marker := "[ ]"
	style := normalStyle
	if item.Installed {
		marker = "[*]"
		style = installedStyle
	}

	version := item.Version
	if version == "" {
		version = "latest"
	}

	text := fmt.Sprintf("%s%s %s (v%s)", cursor, marker, item.Name, version)

	if idx == m.cursor {
		return selectedStyle.Render(text)
	}
	return style.Render(text)
}

func (m Model) renderPreview() string {
	if len(m.filteredItems) == 0 || m.cursor >= len(m.filteredItems) {
		return i18n.T("PickerEmpty", nil)
	}

	item := m.filteredItems[m.cursor]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Name: %s\n", item.Name))

	version := item.Version
	if version == "" {
		version = "latest"
	}
	b.WriteString(fmt.Sprintf("Version: %s\n", version))

	if item.Installed {
		b.WriteString(installedStyle.Render("Status: Installed") + "\n")
	}

	if item.Description != "" {
		b.WriteString(fmt.Sprintf("\nDescription:\n  %s\n", item.Description))
	}

	return b.String()
}

// RunThemePicker launches the interactive picker and returns the chosen
// theme name.
func RunThemePicker(items []ThemeItem) (*PickResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s", i18n.T("PickerEmpty", nil))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	model := NewModel(items)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(Model)
	if m.chosen == "" {
		return &PickResult{Cancelled: true}, nil
	}

	return &PickResult{Name: m.chosen}, nil
}
