// Package help renders man-page-like documentation for a configured
// [snare.Snare]: a synopsis line, optional introductory text, and an
// options section.
//
// The synopsis uses a typical pseudo-BNF syntax where angle brackets mean
// "required" and square brackets mean "optional". Arguments gated on
// another argument with OnlyIf render nested inside their dependency:
//
//	Synopsis: prog [--other [--this]] ...
//
// Only the first name of each argument appears in the synopsis; the more
// detailed options section lists every alias. The package consumes the
// matcher set purely through the read accessors of [snare.Spec], so it can
// be swapped out wholesale by programs with their own formatting opinions.
package help

import (
	"io"
	"strings"

	"github.com/ardnew/mung"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/snare"
)

// Renderer formats documentation for one Snare. The zero indent is two
// spaces; construct with [Make] and the functional options.
type Renderer struct {
	src     *snare.Snare
	program string
	intro   []string
	indent  string
	color   bool
}

// Option applies a configuration option to a Renderer under construction.
type Option func(Renderer) Renderer

// WithProgram sets the program name printed in the synopsis, e.g.
// "Synopsis: myprogram [-x <value>] [-y]". Without it, no name is printed.
func WithProgram(name string) Option {
	return func(r Renderer) Renderer {
		r.program = name

		return r
	}
}

// WithIntro sets the introductory text printed between the synopsis and
// options sections. Line breaking is the caller's responsibility; there is
// no auto-wrap.
func WithIntro(lines ...string) Option {
	return func(r Renderer) Renderer {
		r.intro = lines

		return r
	}
}

// WithIndent overrides the indentation prefix used by the intro and
// options sections.
func WithIndent(indent string) Option {
	return func(r Renderer) Renderer {
		r.indent = indent

		return r
	}
}

// WithColor enables ANSI-styled section headings. Off by default so
// rendered output stays byte-stable for tests and non-TTY consumers.
func WithColor() Option {
	return func(r Renderer) Renderer {
		r.color = true

		return r
	}
}

// Make creates a Renderer for the given Snare.
func Make(s *snare.Snare, opts ...Option) Renderer {
	r := Renderer{src: s, indent: "  "}

	for _, opt := range opts {
		r = opt(r)
	}

	return r
}

// Render writes the complete documentation: synopsis, intro, and options.
func (r Renderer) Render(w io.Writer) error {
	var b strings.Builder

	b.WriteString(r.synopsisLine())

	for _, line := range r.intro {
		b.WriteString("\n")
		b.WriteString(r.indent)
		b.WriteString(line)
	}

	b.WriteString(r.options())

	_, err := io.WriteString(w, b.String())

	return err
}

// Synopsis writes the synopsis line that opens [Renderer.Render] output.
func (r Renderer) Synopsis(w io.Writer) error {
	_, err := io.WriteString(w, r.synopsisLine())

	return err
}

// Options writes the options section that closes [Renderer.Render] output.
func (r Renderer) Options(w io.Writer) error {
	_, err := io.WriteString(w, r.options())

	return err
}

// Errors writes the accumulated validation errors, one per line.
func (r Renderer) Errors(w io.Writer) error {
	var b strings.Builder

	for _, e := range r.src.Errors() {
		b.WriteString(e)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())

	return err
}

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	requiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)
)

func (r Renderer) heading(s string) string {
	if r.color {
		return headingStyle.Render(s)
	}

	return s
}

func (r Renderer) required(s string) string {
	if r.color {
		return requiredStyle.Render(s)
	}

	return s
}

func (r Renderer) synopsisLine() string {
	var entries []string

	for sp := range r.src.Specs() {
		if sp.Dependency() == nil {
			entries = append(entries, r.synopsisEntry(sp))
		}
	}

	var b strings.Builder

	b.WriteString(r.heading("Synopsis:"))

	if r.program != "" {
		b.WriteString(" ")
		b.WriteString(r.program)
	}

	if joined := mung.Make(
		mung.WithDelim(" "),
		mung.WithSubjectItems(entries...),
	).String(); joined != "" {
		b.WriteString(" ")
		b.WriteString(joined)
	}

	b.WriteString("\n")

	return b.String()
}

// synopsisEntry renders one specification and, recursively, the
// specifications gated on it.
func (r Renderer) synopsisEntry(sp snare.Spec) string {
	var b strings.Builder

	if !sp.Wildcard() {
		if sp.Required() {
			b.WriteString("<")
		} else {
			b.WriteString("[")
		}
	}

	b.WriteString(r.param(sp, firstName(sp)))

	for _, dep := range sp.Dependents() {
		b.WriteString(" ")
		b.WriteString(r.synopsisEntry(dep))
	}

	if !sp.Wildcard() {
		if sp.Required() {
			b.WriteString(">")
		} else {
			b.WriteString("]")
		}
	}

	return b.String()
}

func (r Renderer) options() string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(r.indent)
	b.WriteString(r.heading("Options:"))

	for sp := range r.src.Specs() {
		b.WriteString(r.option(sp))
	}

	return b.String()
}

// option renders one specification's entry in the options section: every
// alias on its own line, the required marker, and the help text.
func (r Renderer) option(sp snare.Spec) string {
	var b strings.Builder

	indent := "\n" + r.indent

	if sp.Wildcard() {
		b.WriteString(indent)
		b.WriteString(r.param(sp, ""))
	} else {
		for _, name := range sp.Names() {
			b.WriteString(indent)
			b.WriteString(r.param(sp, name))

			if sp.MultiValued() && strings.HasPrefix(name, "--") {
				b.WriteString(" (repeatable)")
			}
		}
	}

	if sp.Required() {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(r.required("* Required"))
	}

	for _, line := range sp.HelpLines() {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(line)
	}

	b.WriteString("\n")

	return b.String()
}

// param renders one name together with its parameter placeholder. Double
// dashed names use the "--arg=<value>" idiom; everything else separates
// the placeholder with a space. Angle brackets appear when the parameter
// is mandatory.
func (r Renderer) param(sp snare.Spec, name string) string {
	var b strings.Builder

	b.WriteString(name)

	if !sp.AllowsParam() && !sp.Wildcard() {
		return b.String()
	}

	angles := sp.RequiresParam() || (sp.Wildcard() && sp.Required())
	doubleDash := strings.HasPrefix(name, "--")

	switch {
	case !sp.Wildcard() && doubleDash:
		if angles {
			b.WriteString("=<")
		} else {
			b.WriteString("[=")
		}

	default:
		if name != "" {
			b.WriteString(" ")
		}

		if angles {
			b.WriteString("<")
		} else {
			b.WriteString("[")
		}
	}

	sample := sp.Sample()
	if sample == "" {
		sample = "value"
	}

	b.WriteString(sample)

	if sp.MultiValued() && !doubleDash {
		b.WriteString("(s)")
	}

	if angles {
		b.WriteString(">")
	} else {
		b.WriteString("]")
	}

	return b.String()
}

func firstName(sp snare.Spec) string {
	if names := sp.Names(); len(names) > 0 {
		return names[0]
	}

	return ""
}
