package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/opencatalog/catalogctl/internal/catalog"
)

// ProjectItem represents a project in the browser list.
type ProjectItem struct {
	Project catalog.Project
}

// FilterValue returns the string matched by the list's built-in filter.
func (p ProjectItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s %s",
		p.Project.Name, p.Project.Language,
		strings.Join(p.Project.Tags, " "), p.Project.Description)
}

// Custom list item delegate for rendering projects
type projectDelegate struct{}

func (d projectDelegate) Height() int  { return 1 }
func (d projectDelegate) Spacing() int { return 0 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProjectItem)
	if !ok {
		return
	}
	p := pi.Project

	nameStr := fmt.Sprintf("%-28s", truncateText(p.Name, 28))
	langStr := fmt.Sprintf("%-12s", truncateText(p.Language, 12))

	tagStr := ""
	if len(p.Tags) > 0 {
		tagStr = " " + StyleTag.Render("["+strings.Join(p.Tags, ",")+"]")
	}

	if index == m.Index() {
		fmt.Fprint(w, StyleHighlight.Render("› "+nameStr+" "+langStr+" "+p.Description+tagStr))
		return
	}
	fmt.Fprint(w, "  "+StyleNormal.Render(nameStr)+" "+StyleLanguage.Render(langStr)+" "+StyleHelp.Render(truncateText(p.Description, 48))+tagStr)
}

// truncateText truncates a string to maxWidth visible chars with ellipsis.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	return string(runes[:maxWidth-1]) + "…"
}

// keyMap defines keyboard shortcuts
type keyMap struct {
	quit   key.Binding
	enter  key.Binding
	open   key.Binding
	filter key.Binding
}

var keys = keyMap{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open repo"),
	),
	filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
}

// BrowserAction represents an action requested from the browser
type BrowserAction string

const (
	ActionNone        BrowserAction = ""
	ActionShowDetails BrowserAction = "details"
	ActionOpenRepo    BrowserAction = "open"
)

// BrowserResult holds the result of a browser session
type BrowserResult struct {
	Action   BrowserAction
	Selected *ProjectItem
}

// model holds the state for the project browser
type model struct {
	list     list.Model
	quitting bool
	action   BrowserAction
	selected *ProjectItem
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't handle keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.enter):
			if item, ok := m.list.SelectedItem().(ProjectItem); ok {
				m.action = ActionShowDetails
				m.selected = &item
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.open):
			if item, ok := m.list.SelectedItem().(ProjectItem); ok {
				m.action = ActionOpenRepo
				m.selected = &item
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		h, v := StyleBorder.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return StyleBorder.Render(m.list.View())
}

// RunBrowser launches the interactive project browser.
func RunBrowser(title string, projects []catalog.Project) (*BrowserResult, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects to display")
	}

	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = ProjectItem{Project: p}
	}

	l := list.New(items, projectDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.open}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.open, keys.enter}
	}

	p := tea.NewProgram(model{list: l}, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		return &BrowserResult{Action: fm.action, Selected: fm.selected}, nil
	}
	return &BrowserResult{Action: ActionNone}, nil
}
