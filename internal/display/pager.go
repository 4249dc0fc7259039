package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pagerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	pagerFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PagerPresenter renders each preview in an interactive scrollable view.
// Long full-file diffs do not fit a screen; the pager lets the user read
// them without losing their own terminal scrollback.
type PagerPresenter struct {
	contextLines int

	// runProgram is swapped out in tests to avoid driving a real TTY.
	runProgram func(tea.Model) error
}

// NewPagerPresenter creates an interactive presenter. contextLines <= 0
// defaults to 3.
func NewPagerPresenter(contextLines int) *PagerPresenter {
	if contextLines <= 0 {
		contextLines = 3
	}
	return &PagerPresenter{
		contextLines: contextLines,
		runProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

func (p *PagerPresenter) ShowSnippet(title, originalText, suggestedText string) error {
	diff, err := unifiedDiff(originalText, suggestedText, "before", "after", p.contextLines)
	if err != nil {
		return fmt.Errorf("render snippet diff: %w", err)
	}
	return p.page(title+" (snippet)", diff)
}

func (p *PagerPresenter) ShowFile(path, originalSnapshot, suggestedFullText string) error {
	diff, err := unifiedDiff(originalSnapshot, suggestedFullText, "a/"+path, "b/"+path, p.contextLines)
	if err != nil {
		return fmt.Errorf("render file diff: %w", err)
	}
	if diff == "" {
		diff = "(no effective change)\n"
	}
	return p.page(path, diff)
}

func (p *PagerPresenter) page(title, content string) error {
	if err := p.runProgram(newPagerModel(title, content)); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}

// pagerModel is a minimal viewport wrapper: scroll keys go to the
// viewport, q/esc/ctrl+c close it.
type pagerModel struct {
	title    string
	viewport viewport.Model
	ready    bool
	content  string
}

func newPagerModel(title, content string) *pagerModel {
	return &pagerModel{title: title, content: content}
}

func (m *pagerModel) Init() tea.Cmd {
	return nil
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(colorizeForPager(m.content))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m *pagerModel) headerView() string {
	return pagerTitleStyle.Render("── " + m.title + " ──")
}

func (m *pagerModel) footerView() string {
	return pagerFooterStyle.Render(fmt.Sprintf("%3.0f%%  (q to close)", m.viewport.ScrollPercent()*100))
}

// colorizeForPager applies lipgloss styles per diff line. The pager owns
// the whole alt screen, so styling happens here rather than reusing the
// ANSI writer path.
func colorizeForPager(diff string) string {
	lines := strings.Split(diff, "\n")
	styled := make([]string, len(lines))
	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	delStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hunkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			styled[i] = fileStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			styled[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			styled[i] = delStyle.Render(line)
		default:
			styled[i] = line
		}
	}
	return strings.Join(styled, "\n")
}
