package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// spinnerModel shows a spinner with a status line until stopMsg arrives.
type spinnerModel struct {
	spinner spinner.Model
	message string
}

type stopMsg struct{}

func newSpinnerModel(message string) spinnerModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = StatusStyle
	return spinnerModel{spinner: sp, message: message}
}

func (m spinnerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + StatusStyle.Render(m.message)
}

// Spinner is a terminal activity indicator shown while the model thinks.
type Spinner struct {
	program *tea.Program
	done    chan struct{}
}

// StartSpinner starts a spinner with the given message.
func StartSpinner(message string) *Spinner {
	s := &Spinner{
		program: tea.NewProgram(newSpinnerModel(message)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		s.program.Run()
	}()
	return s
}

// Stop ends the spinner and waits for the terminal to be released.
func (s *Spinner) Stop() {
	s.program.Send(stopMsg{})
	<-s.done
}
