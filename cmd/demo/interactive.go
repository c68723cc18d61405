package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/icu-bridge/icu4x"
	"github.com/wippyai/icu-bridge/runtime"
	"github.com/wippyai/icu-bridge/terminus"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	cfg      runtime.Config
	rt       *runtime.Runtime
	lib      *icu4x.Lib
	result   string
	termini  []*terminus.Terminus
	inputs   []textinput.Model
	choices  []int
	selected int
	focusIdx int
	state    modelState
}

func newInteractiveModel(cfg runtime.Config) *interactiveModel {
	return &interactiveModel{
		cfg:     cfg,
		termini: terminus.Termini(),
		state:   stateSelectFunc,
	}
}

type loadedMsg struct {
	err error
	rt  *runtime.Runtime
	lib *icu4x.Lib
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadRuntime
}

func (m *interactiveModel) loadRuntime() tea.Msg {
	ctx := context.Background()
	rt, err := runtime.New(ctx, m.cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	lib, err := icu4x.New(rt)
	if err != nil {
		_ = rt.Close(ctx)
		return loadedMsg{err: err}
	}
	return loadedMsg{rt: rt, lib: lib}
}

func (m *interactiveModel) close() {
	if m.rt != nil {
		_ = m.rt.Close(context.Background())
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.close()
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				m.close()
				return m, tea.Quit
			}

		case "up", "down":
			if m.state == stateSelectFunc {
				m.moveSelection(msg.String() == "down")
				return m, nil
			}

		case "left", "right":
			if m.state == stateInputArgs && m.cycleChoice(msg.String() == "right") {
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callTerminus
				}
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.callTerminus

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
				return m, nil
			}

		case "tab", "shift+tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				step := 1
				if msg.String() == "shift+tab" {
					step = len(m.inputs) - 1
				}
				m.focusIdx = (m.focusIdx + step) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rt = msg.rt
		m.lib = msg.lib

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			if m.isChoice(i) {
				continue
			}
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) moveSelection(down bool) {
	switch {
	case down && m.selected < len(m.termini)-1:
		m.selected++
	case !down && m.selected > 0:
		m.selected--
	}
}

func (m *interactiveModel) isChoice(i int) bool {
	return m.termini[m.selected].Params[i].TypeUse == terminus.UseEnumerator
}

// cycleChoice steps the focused enumerator through its variants.
func (m *interactiveModel) cycleChoice(forward bool) bool {
	if len(m.inputs) == 0 || !m.isChoice(m.focusIdx) {
		return false
	}
	values := m.termini[m.selected].Params[m.focusIdx].Values
	n := len(values)
	if forward {
		m.choices[m.focusIdx] = (m.choices[m.focusIdx] + 1) % n
	} else {
		m.choices[m.focusIdx] = (m.choices[m.focusIdx] + n - 1) % n
	}
	m.inputs[m.focusIdx].SetValue(values[m.choices[m.focusIdx]])
	return true
}

func (m *interactiveModel) prepareInputs() {
	t := m.termini[m.selected]
	m.inputs = make([]textinput.Model, len(t.Params))
	m.choices = make([]int, len(t.Params))
	for i, p := range t.Params {
		ti := textinput.New()
		ti.Placeholder = p.Type
		ti.Prompt = p.Name + ": "
		ti.Width = 40
		if p.TypeUse == terminus.UseEnumerator {
			ti.SetValue(p.Values[0])
		}
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callTerminus() tea.Msg {
	if m.lib == nil {
		return callResultMsg{err: fmt.Errorf("runtime not loaded")}
	}
	t := m.termini[m.selected]
	args := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = input.Value()
	}
	out, err := t.Invoke(context.Background(), m.lib, args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: out}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.lib == nil {
		return "Loading core..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ICU bridge demo"))
	b.WriteString(" ")
	b.WriteString(string(m.cfg.Backend))
	if m.cfg.ModulePath != "" {
		b.WriteString(" ")
		b.WriteString(m.cfg.ModulePath)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a terminus:\n\n")
		for i, t := range m.termini {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + t.Display))
			} else {
				b.WriteString("  " + t.Display)
			}
			b.WriteString("  ")
			b.WriteString(formatTerminus(t))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		t := m.termini[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(t.Function)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(t.Params[i].Type))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • ←/→ change choice • enter call • esc back"))

	case stateShowResult:
		t := m.termini[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(t.Function)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatTerminus(t *terminus.Terminus) string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Name + ": " + typeStyle.Render(p.Type)
	}
	return funcStyle.Render(t.Function) + "(" + strings.Join(params, ", ") + ")"
}

func runInteractive(cfg runtime.Config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
