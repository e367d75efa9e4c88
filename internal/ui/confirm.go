package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a minimal y/n prompt. Esc and Ctrl+C answer no.
type confirmModel struct {
	prompt   string
	answered bool
	approved bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answered = true
		m.approved = true
		return m, tea.Quit
	case "n", "N", "esc", "ctrl+c":
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	body := fmt.Sprintf("%s\n%s",
		PromptStyle.Render(m.prompt),
		StatusStyle.Render("y: approve  n/esc: reject"))
	return ConfirmBoxStyle.Render(body) + "\n"
}

// RunConfirm shows an interactive y/n prompt on the terminal.
func RunConfirm(ctx context.Context, prompt string) (bool, error) {
	program := tea.NewProgram(confirmModel{prompt: prompt}, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	if !ok || !m.answered {
		return false, nil
	}
	return m.approved, nil
}
