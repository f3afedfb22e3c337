package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	messageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// model is the bubbletea model behind the interactive prompt
type model struct {
	input     textinput.Model
	value     string
	done      bool
	cancelled bool
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "combined_output.txt"
	ti.Prompt = ""
	ti.CharLimit = 255
	ti.Width = 40
	ti.Focus()

	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	switch {
	case m.cancelled:
		return ""
	case m.done:
		// Left on screen after the program exits
		return messageStyle.Render(Message) + valueStyle.Render(m.value) + "\n"
	}
	return messageStyle.Render(Message) + m.input.View() + "\n" +
		hintStyle.Render("enter to confirm, esc to cancel") + "\n"
}
