package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptForInputPath asks for the XML path interactively when none was given
// on the command line. Paths pasted with surrounding quotes are accepted.
func promptForInputPath() (string, error) {
	input := textinput.New()
	input.Placeholder = "path/to/viewpoints.xml"
	input.Prompt = "> "
	input.Focus()

	final, err := tea.NewProgram(pathPrompt{input: input}).Run()
	if err != nil {
		return "", fmt.Errorf("prompt for xml path: %w", err)
	}

	m, ok := final.(pathPrompt)
	if !ok || m.cancelled {
		return "", fmt.Errorf("no xml file selected")
	}
	path := strings.TrimSpace(strings.Trim(m.input.Value(), `"`))
	if path == "" {
		return "", fmt.Errorf("no xml file selected")
	}
	return path, nil
}

type pathPrompt struct {
	input     textinput.Model
	cancelled bool
	done      bool
}

func (m pathPrompt) Init() tea.Cmd { return textinput.Blink }

func (m pathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
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

func (m pathPrompt) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return "Select the viewpoint XML export to parse:\n" + m.input.View() + "\n"
}
