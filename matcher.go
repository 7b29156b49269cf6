package snare

import "slices"

// ConvertFunc converts a raw parameter string into a typed value.
// Invalid input is reported by returning a non-nil error whose message is
// folded into the shared error list; it never aborts the matching pass.
type ConvertFunc[T any] func(raw string) (T, error)

// Spec is the read-only view of a registered [Matcher], independent of its
// parameter type. It is what [Matcher.OnlyIf], [Snare.Identify], and the
// help layer consume. Only matchers created by a [Snare] implement it.
type Spec interface {
	// Found reports whether the argument was present in the matched input.
	// A matcher can be both found and failed when invalid input is captured.
	Found() bool
	// Failed reports whether a validation error was tied to this matcher.
	Failed() bool
	// Name returns the alias the user actually typed, or the synthesized
	// single-character form for bundled shortcuts. Empty until matched.
	Name() string
	// HasValue reports whether at least one parameter value was captured,
	// distinguishing "--arg value" from a bare "--arg".
	HasValue() bool

	// Names returns the registered aliases, or nil for a wildcard.
	Names() []string
	// Wildcard reports whether this is an unnamed positional specification.
	Wildcard() bool
	// Required reports whether the argument must appear in the input.
	Required() bool
	// AllowsParam reports whether the argument accepts a parameter value.
	AllowsParam() bool
	// RequiresParam reports whether a parameter value is mandatory.
	RequiresParam() bool
	// MultiValued reports whether the argument accepts repeated values.
	MultiValued() bool
	// Sample returns the parameter placeholder used in rendered text,
	// or "" when the default applies.
	Sample() string
	// HelpLines returns the per-argument help text, one line per element.
	HelpLines() []string
	// Dependency returns the specification this one is gated on, or nil.
	Dependency() Spec
	// Dependents returns the specifications gated on this one.
	Dependents() []Spec

	ref() *spec
	store(raw string) error
	clearResult()
}

// spec carries the type-independent configuration and result slot shared by
// every Matcher instantiation. The engine mutates it in place.
type spec struct {
	names         []string
	wildcard      bool
	required      bool
	allowsParam   bool
	requiresParam bool
	multi         bool
	sample        string
	help          []string
	onlyIf        Spec
	onlyIfMe      []Spec

	found  bool
	failed bool
	name   string
	hasOne bool
}

func (sp *spec) ref() *spec { return sp }

func (sp *spec) Found() bool    { return sp.found }
func (sp *spec) Failed() bool   { return sp.failed }
func (sp *spec) Name() string   { return sp.name }
func (sp *spec) HasValue() bool { return sp.hasOne }

func (sp *spec) Names() []string    { return slices.Clone(sp.names) }
func (sp *spec) Wildcard() bool     { return sp.wildcard }
func (sp *spec) Required() bool     { return sp.required }
func (sp *spec) AllowsParam() bool  { return sp.allowsParam }
func (sp *spec) RequiresParam() bool { return sp.requiresParam }
func (sp *spec) MultiValued() bool  { return sp.multi }
func (sp *spec) Sample() string     { return sp.sample }
func (sp *spec) HelpLines() []string { return slices.Clone(sp.help) }
func (sp *spec) Dependency() Spec   { return sp.onlyIf }
func (sp *spec) Dependents() []Spec { return slices.Clone(sp.onlyIfMe) }

// Matcher captures one argument and its parameter value(s). It is created by
// the registration calls on [Snare] and configured with its chainable
// methods; results are read back after [Snare.Match] through the accessors.
type Matcher[T any] struct {
	spec
	convert ConvertFunc[T]
	param   T
	params  []T
}

// Require marks the argument as mandatory. For named (non-wildcard)
// arguments it only makes sense that a parameter is required as well, so
// [Matcher.RequireParam] is implied.
func (m *Matcher[T]) Require() *Matcher[T] {
	m.spec.required = true

	return m.RequireParam()
}

// AllowParam declares that the argument accepts an optional parameter value.
// It does not negate an earlier [Matcher.RequireParam].
func (m *Matcher[T]) AllowParam() *Matcher[T] {
	m.spec.allowsParam = true
	m.spec.requiresParam = m.spec.requiresParam || m.spec.required

	return m
}

// RequireParam declares that the argument requires a parameter value. This
// does not make the argument itself required, only its parameter.
func (m *Matcher[T]) RequireParam() *Matcher[T] {
	m.spec.requiresParam = true
	m.spec.allowsParam = true

	return m
}

// Multi declares that the argument accepts multiple parameter values, e.g.
// "--xxx hello world today". For wildcards this means a run of consecutive
// values is consumed. Combined with [Matcher.RequireParam], a minimum of one
// value is required.
func (m *Matcher[T]) Multi() *Matcher[T] {
	m.spec.allowsParam = true
	m.spec.multi = true
	m.params = []T{}

	return m
}

// RequireMulti is shorthand for RequireParam().Multi().
func (m *Matcher[T]) RequireMulti() *Matcher[T] {
	return m.RequireParam().Multi()
}

// RequireAndMulti is shorthand for Require().Multi(): the argument and at
// least one parameter value are both mandatory. For wildcards the values are
// the argument itself, so at least one value is required.
func (m *Matcher[T]) RequireAndMulti() *Matcher[T] {
	return m.Require().Multi()
}

// OnlyIf asserts that this argument is only valid when other is also
// present (input order does not matter). This affects both validation and
// rendered synopsis nesting. If this argument is also required, the
// requirement is only checked when other is present.
//
// OnlyIf panics with [ErrDependencyCycle] if the new edge would close a
// cycle in the dependency graph.
func (m *Matcher[T]) OnlyIf(other Spec) *Matcher[T] {
	for p := other; p != nil; p = p.ref().onlyIf {
		if p == Spec(m) {
			panic(ErrDependencyCycle.Wrapf("%s depends on itself", m.display()))
		}
	}

	m.spec.onlyIf = other

	osp := other.ref()
	osp.onlyIfMe = append(osp.onlyIfMe, m)

	return m
}

// WithHelp attaches per-argument help text for rendered documentation.
// Line breaking is the caller's responsibility; each string is one line.
func (m *Matcher[T]) WithHelp(lines ...string) *Matcher[T] {
	m.spec.help = lines

	return m
}

// WithSample sets the parameter placeholder printed in rendered text, e.g.
// the "number" in "--count=<number>". The default placeholder is "value".
// Since a placeholder implies parameterization, [Matcher.AllowParam] is
// implied.
func (m *Matcher[T]) WithSample(s string) *Matcher[T] {
	m.spec.sample = s

	return m.AllowParam()
}

// Value returns the captured parameter value, or def if the argument was
// not found or was found without a value. For multi-valued matchers it
// returns the first captured value.
func (m *Matcher[T]) Value(def T) T {
	if !m.spec.found || !m.spec.hasOne {
		return def
	}

	return m.param
}

// Values returns all captured parameter values in encounter order, or defs
// if the argument was not found or captured nothing.
func (m *Matcher[T]) Values(defs ...T) []T {
	if !m.spec.found || len(m.params) == 0 {
		return defs
	}

	return m.params
}

// display names the matcher for configuration fault messages.
func (m *Matcher[T]) display() string {
	if m.spec.wildcard {
		return "<wildcard>"
	}

	return m.spec.names[0]
}

// store converts raw and records it in the result slot. The first
// successfully converted value claims the single slot even in multi-valued
// mode; multi-valued matchers additionally append every value in order.
func (m *Matcher[T]) store(raw string) error {
	v, err := m.convert(raw)
	if err != nil {
		return err
	}

	if !m.spec.hasOne {
		m.param = v
		m.spec.hasOne = true
	}

	if m.spec.multi {
		m.params = append(m.params, v)
	}

	return nil
}

func (m *Matcher[T]) clearResult() {
	m.spec.found = false
	m.spec.failed = false
	m.spec.name = ""
	m.spec.hasOne = false

	var zero T

	m.param = zero

	if m.params != nil {
		m.params = []T{}
	}
}
