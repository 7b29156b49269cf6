// Command snaretry is an interactive sandbox for the argument matcher.
//
// It holds a fixed demonstration argument set and matches whatever command
// line is typed at the prompt, reporting per-argument results and
// validation errors after every line. Type "help" for the rendered
// documentation of the demo set, "quit" (or Ctrl+D) to exit.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/snare"
	"github.com/ardnew/snare/help"
)

const prompt = "snare> "

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	p := tea.NewProgram(newModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// demo is the fixed argument set matched against every input line. It is
// chosen to exercise one of everything: shortcut bundles, inline and
// glued parameters, typed conversion, dependencies, and wildcards.
type demo struct {
	s *snare.Snare

	verbose *snare.Matcher[string]
	ignore  *snare.Matcher[string]
	output  *snare.Matcher[string]
	count   *snare.Matcher[int]
	tags    *snare.Matcher[string]
	follow  *snare.Matcher[string]
	depth   *snare.Matcher[int]
	pattern *snare.Matcher[string]
	files   *snare.Matcher[string]
}

func makeDemo() demo {
	s := snare.Make(snare.WithDelimiterSkip(), snare.WithSuggestions())

	d := demo{s: s}

	d.verbose = s.Add("--verbose", "-v").
		WithHelp("Verbose reporting")
	d.ignore = s.Add("--ignore-case", "-i").
		WithHelp("Case-insensitive matching")
	d.output = s.Add("--output", "-o").
		RequireParam().
		WithSample("path").
		WithHelp("Output destination")
	d.count = snare.AddFunc(s, snare.ParseInt, "--count", "-c").
		WithSample("number").
		WithHelp("Match limit")
	d.tags = s.Add("--tag", "-t").
		Multi().
		WithSample("tag").
		WithHelp("Tag filter; repeatable")
	d.follow = s.Add("--follow", "-f").
		WithHelp("Follow appended data")
	d.depth = snare.AddFunc(s, snare.ParseInt, "--depth").
		OnlyIf(d.follow).
		WithSample("number").
		WithHelp("Recursion depth; only with --follow")
	d.pattern = s.AddWildcard().
		Require().
		WithSample("pattern").
		WithHelp("Search pattern")
	d.files = s.AddWildcard().
		Multi().
		WithSample("file").
		WithHelp("Files to search")

	return d
}

// report renders the outcome of one matching pass.
func (d demo) report() string {
	var b strings.Builder

	for sp := range d.s.Specs() {
		line := fmt.Sprintf("  %-18s", d.s.Identify(sp))

		switch {
		case sp.Failed():
			line += errorStyle.Render("failed")

		case !sp.Found():
			line += hintStyle.Render("absent")

		default:
			line += resultStyle.Render("found")
			if values := d.values(sp); values != "" {
				line += " " + values
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, e := range d.s.Errors() {
		b.WriteString(errorStyle.Render("  ! " + e))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (d demo) values(sp snare.Spec) string {
	if !sp.HasValue() {
		return ""
	}

	switch {
	case sp == snare.Spec(d.count):
		return fmt.Sprintf("= %d", d.count.Value(0))

	case sp == snare.Spec(d.depth):
		return fmt.Sprintf("= %d", d.depth.Value(0))
	}

	for _, m := range []*snare.Matcher[string]{
		d.verbose, d.ignore, d.output, d.tags,
		d.follow, d.pattern, d.files,
	} {
		if sp != snare.Spec(m) {
			continue
		}

		if sp.MultiValued() {
			return fmt.Sprintf("= %q", m.Values())
		}

		return fmt.Sprintf("= %q", m.Value(""))
	}

	return ""
}

func (d demo) helpText() string {
	var b strings.Builder

	r := help.Make(d.s,
		help.WithProgram("snaretry"),
		help.WithIntro("Demo argument set; type a command line to match it."),
		help.WithColor(),
	)

	_ = r.Render(&b)

	return b.String()
}

type model struct {
	input    textinput.Model
	args     demo
	quitting bool
}

func newModel() model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024

	return model{
		input: ti,
		args:  makeDemo(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Sequence(
		tea.Println(hintStyle.Render(
			`Type arguments to match ("help" for the demo set, "quit" to exit)`,
		)),
		textinput.Blink,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quitting = true

			return m, tea.Quit

		case tea.KeyEnter:
			return m.execute()
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n"
}

func (m model) execute() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if line == "" {
		return m, nil
	}

	echo := tea.Println(
		promptStyle.Render(prompt) + inputStyle.Render(line),
	)

	switch line {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(m.args.helpText()))

	case "clear":
		return m, tea.ClearScreen
	}

	m.args.s.Reset().Match(tokenize(line))

	return m, tea.Sequence(echo, tea.Println(m.args.report()))
}
