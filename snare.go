package snare

import (
	"iter"
	"unicode/utf8"

	"github.com/ardnew/snare/log"
)

// Snare holds an ordered collection of argument specifications together
// with the indices used to classify tokens, and accumulates user-facing
// validation errors across one matching pass.
type Snare struct {
	matchers []Spec
	names    map[string]struct{}
	shortcut map[rune]Spec

	// prefix is the dash prefix that marks a token as a potential argument
	// name: "--", "-", or "" when no registered name is dashed. It decides
	// whether a dash-prefixed token may still be captured as a value.
	prefix string

	skipDelim bool
	suggest   bool
	logger    log.Logger

	errs []string
}

// Option applies a configuration option to a Snare under construction.
type Option func(Snare) Snare

// WithDelimiterSkip allows syntax like "-F~" as a shortcut for "-F ~".
// It only applies to single-dash single-character arguments (so
// "--count1010" never works). Off by default because glued values can be
// ambiguous, although every effort is made to guess the user's intent.
func WithDelimiterSkip() Option {
	return func(s Snare) Snare {
		s.skipDelim = true

		return s
	}
}

// WithSuggestions appends a best-effort "did you mean" hint to invalid
// argument errors, ranked against the registered name set. Off by default
// so error text stays stable for callers that pattern-match it.
func WithSuggestions() Option {
	return func(s Snare) Snare {
		s.suggest = true

		return s
	}
}

// WithLog sets the logger used to trace token classification. The zero
// value logger discards everything.
func WithLog(logger log.Logger) Option {
	return func(s Snare) Snare {
		s.logger = logger

		return s
	}
}

// Make creates a new Snare, ready for registration.
func Make(opts ...Option) *Snare {
	s := Snare{
		names:    map[string]struct{}{},
		shortcut: map[rune]Spec{},
	}

	for _, opt := range opts {
		s = opt(s)
	}

	return &s
}

// Add registers a named argument with one or more aliases and returns its
// [Matcher] for further configuration. Names should include or exclude
// dashes according to what the user is expected to type, e.g.
//
//	s.Add("--ignore-case", "-i")
//	s.Add("--multi-line", "-m")
//
// gives two naming options per argument, and the single-dash forms let the
// user enter "-im" as a shortcut. Adding a third, bare-letter alias
// ("i", "m") additionally allows "im" with no dashes at all.
//
// Add panics with [ErrDuplicateName] if any name is already registered,
// and with [ErrNoNames] if names is empty.
func (s *Snare) Add(names ...string) *Matcher[string] {
	return register(s, identity, false, names)
}

// AddWildcard registers a wildcard specification for unnamed parameters.
// The classic use case is "grep expr file1 file2 fileN", which takes a
// search expression and files to search without "-expr" or "-files" in
// front of them:
//
//	regex := s.AddWildcard()
//	files := s.AddWildcard().Multi()
//
// Wildcards are matched in registration order, so the expression matcher
// above must be registered before the files matcher.
func (s *Snare) AddWildcard() *Matcher[string] {
	return register(s, identity, true, nil)
}

// AddFunc registers a named argument whose parameter is validated and
// converted from string to T. Since a converter is provided,
// [Matcher.AllowParam] is implied. For parameter-less arguments and plain
// string parameters, use [Snare.Add] instead.
func AddFunc[T any](s *Snare, convert ConvertFunc[T], names ...string) *Matcher[T] {
	return register(s, convert, false, names).AllowParam()
}

// AddWildcardFunc registers a wildcard specification whose values are
// validated and converted from string to T. The converter follows the same
// rules described for [AddFunc].
func AddWildcardFunc[T any](s *Snare, convert ConvertFunc[T]) *Matcher[T] {
	return register(s, convert, true, nil)
}

func identity(raw string) (string, error) { return raw, nil }

func register[T any](
	s *Snare,
	convert ConvertFunc[T],
	wildcard bool,
	names []string,
) *Matcher[T] {
	if !wildcard && len(names) == 0 {
		panic(ErrNoNames)
	}

	m := &Matcher[T]{
		spec:    spec{names: names, wildcard: wildcard},
		convert: convert,
	}

	for _, name := range names {
		if _, dup := s.names[name]; dup {
			panic(ErrDuplicateName.Wrapf("%q", name))
		}

		s.names[name] = struct{}{}

		// Index short names by their final character so tokens like "-abc"
		// can expand to "-a -b -c".
		if utf8.RuneCountInString(name) <= 2 {
			var last rune
			for _, r := range name {
				last = r
			}

			s.shortcut[last] = m
		}

		// Track the weakest dash prefix in use among registered names. A
		// single-dash name downgrades an earlier "--" so that any token
		// starting with "-" is assumed to be a name, not a value.
		doubleDash := len(name) >= 2 && name[:2] == "--"
		singleDash := !doubleDash && len(name) >= 1 && name[0] == '-'

		switch {
		case s.prefix == "" && doubleDash:
			s.prefix = "--"
		case (s.prefix == "" || s.prefix == "--") && singleDash:
			s.prefix = "-"
		}
	}

	s.matchers = append(s.matchers, m)

	return m
}

// Identify returns the display string used to name a specification in error
// and help text: the matched (or first) name for a named specification, or
// a bracketed placeholder for a wildcard. It must remain stable so help
// text and error text name arguments identically.
func (s *Snare) Identify(m Spec) string {
	sp := m.ref()

	if !sp.wildcard {
		if sp.name != "" {
			return sp.name
		}

		return sp.names[0]
	}

	sample := sp.sample
	if sample == "" {
		sample = "value"
	}

	if sp.multi {
		sample += "(s)"
	}

	if sp.requiresParam || sp.required {
		return "<" + sample + ">"
	}

	return "[" + sample + "]"
}

// AddError records an arbitrary user error (such as validation beyond the
// scope of the matcher itself) while keeping errors centralized. A nil m is
// permitted; otherwise only the failed flag is set on the given matcher.
func (s *Snare) AddError(m Spec, msg string) *Snare {
	s.addError(m, msg)

	return s
}

func (s *Snare) addError(m Spec, msg string) {
	if m != nil {
		m.ref().failed = true
	}

	s.errs = append(s.errs, msg)
}

// HasErrors reports whether the last matching pass produced validation
// errors.
func (s *Snare) HasErrors() bool {
	return len(s.errs) > 0
}

// Errors returns the validation errors accumulated during matching, in
// encounter order.
func (s *Snare) Errors() []string {
	return s.errs
}

// Specs iterates over every registered specification in registration order.
// It is the boundary consumed by help/synopsis rendering.
func (s *Snare) Specs() iter.Seq[Spec] {
	return func(yield func(Spec) bool) {
		for _, m := range s.matchers {
			if !yield(m) {
				return
			}
		}
	}
}

// Reset clears every specification's result slot and discards accumulated
// errors, leaving registration data untouched. It is the only way to reuse
// a Snare across multiple matching passes.
func (s *Snare) Reset() *Snare {
	for _, m := range s.matchers {
		m.clearResult()
	}

	s.errs = nil

	return s
}
