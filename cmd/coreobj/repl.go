package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/coreobject/internal/config"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")
)

type replStyles struct {
	prompt   lipgloss.Style
	result   lipgloss.Style
	err      lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
	helpKey  lipgloss.Style
	helpDesc lipgloss.Style
	name     lipgloss.Style
	border   lipgloss.Style
}

func newREPLStyles(noColor bool) replStyles {
	if noColor {
		plain := lipgloss.NewStyle()
		return replStyles{
			prompt: plain, result: plain, err: plain, muted: plain, header: plain,
			helpKey: plain, helpDesc: plain, name: plain,
			border: plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		}
	}
	return replStyles{
		prompt:   lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		result:   lipgloss.NewStyle().Foreground(successColor),
		err:      lipgloss.NewStyle().Foreground(errorColor),
		muted:    lipgloss.NewStyle().Foreground(mutedColor),
		header:   lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1),
		helpKey:  lipgloss.NewStyle().Foreground(highlightColor),
		helpDesc: lipgloss.NewStyle().Foreground(mutedColor),
		name:     lipgloss.NewStyle().Foreground(highlightColor),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1),
	}
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	session     *session
	styles      replStyles
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(sess *session, cfg config.Config) replModel {
	styles := newREPLStyles(cfg.NoColor)

	ti := textinput.New()
	ti.Placeholder = "extend Animal CoreObject init=name sound=\"...\""
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = styles.prompt
	ti.Prompt = "coreobj> "

	return replModel{
		textInput:  ti,
		session:    sess,
		styles:     styles,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlK):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":classes":
		m.history = append(m.history, historyEntry{
			input:  input,
			output: m.session.describeClasses(),
		})
	case ":reset", ":r":
		m.session.reset()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

var replCommands = []string{"extend", "create", "get", "set", "call", "show", "classes"}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var candidates []string
	if len(words) == 1 && !strings.HasSuffix(input, " ") {
		candidates = replCommands
	} else {
		candidates = append(m.session.registry.Names(), m.session.varNames()...)
	}

	var completions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, lastWord) {
			completions = append(completions, c)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

func (m replModel) evaluate(input string) (string, bool) {
	output, err := m.session.eval(input)
	if err != nil {
		return err.Error(), true
	}
	return output, false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return m.styles.muted.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(m.styles.header.Render("coreobj REPL") + "\n")
	b.WriteString(m.styles.muted.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 14
	}
	if m.showVars {
		reservedLines += len(m.session.vars) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = max(len(m.history)-availableHeight, 0)
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(m.styles.muted.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + m.styles.err.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + m.styles.result.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(m.renderVarsPanel())
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := m.styles.helpKey.Render("ctrl+k") + m.styles.helpDesc.Render(" help  ") +
		m.styles.helpKey.Render("ctrl+v") + m.styles.helpDesc.Render(" vars  ") +
		m.styles.helpKey.Render("ctrl+l") + m.styles.helpDesc.Render(" clear  ") +
		m.styles.helpKey.Render("ctrl+c") + m.styles.helpDesc.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func (m replModel) renderVarsPanel() string {
	names := m.session.varNames()
	if len(names) == 0 {
		return m.styles.border.Render(m.styles.muted.Render("No instances created"))
	}

	lines := []string{m.styles.header.UnsetPadding().Render("Instances")}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s = %s", m.styles.name.Render(name), m.session.vars[name].String()))
	}
	return m.styles.border.Render(strings.Join(lines, "\n"))
}

func (m replModel) renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"extend", "extend <Name> <Parent> [member=value ...] (init=a,b / getter=@field)"},
		{"create", "create <var> <Class> [args ...]"},
		{"get", "get <var> <member>"},
		{"set", "set <var> <member> <value>"},
		{"call", "call <var> <method> [args ...]"},
		{"show", "show <var> as JSON"},
		{":classes", "List classes"},
		{":vars", "Toggle instances panel"},
		{":clear", "Clear history"},
		{":reset", "Reset classes and instances"},
		{":quit", "Exit REPL"},
	}

	lines := []string{m.styles.header.UnsetPadding().Render("Help")}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			m.styles.helpKey.Render(fmt.Sprintf("%-8s", h.key)),
			m.styles.helpDesc.Render(h.desc)))
	}
	return m.styles.border.Render(strings.Join(lines, "\n"))
}

func runREPL(sess *session, cfg config.Config) error {
	p := tea.NewProgram(newREPLModel(sess, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
