package snare

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// outcome tags how a token was classified against one specification.
type outcome int

const (
	outcomeName      outcome = iota + 1 // exact alias, no inline parameter
	outcomeNameParam                    // alias with inline parameter
	outcomeWildcard                     // positional capture
)

// capture is one successful classification. The target is the matcher that
// may go on to consume parameter values; for shortcut bundles it is the
// last matcher of the bundle, not the one the scan started from.
type capture struct {
	kind   outcome
	target Spec
}

// Match compares the registered specifications to a token array as passed
// to a program's entry point. Results are stored in the original [Matcher]
// values and can be cleared with [Snare.Reset].
//
// Tokens are tested against specifications in registration order, so in the
// case of "grep regex file1 file2" the single-value wildcard for the regex
// must be registered before the multi-value wildcard for the files.
//
// A token beginning with a dash is only treated as an argument name when
// some registered name carries that dash prefix and the token equals a
// registered name; otherwise it remains capturable as a value. Malformed
// input never aborts the pass: inspect [Snare.HasErrors] and
// [Snare.Errors] afterward.
func (s *Snare) Match(tokens []string) {
outer:
	for i := 0; i < len(tokens); i++ {
		for _, m := range s.matchers {
			got, ok := s.classify(m, tokens[i])
			if !ok {
				continue
			}

			s.logger.Trace(
				"token classified",
				slog.Int("index", i),
				slog.String("token", tokens[i]),
				slog.String("spec", s.Identify(got.target)),
			)

			switch {
			case got.kind == outcomeName && got.target.ref().allowsParam:
				if s.notArgNext(i, tokens) {
					i++
					i = s.captureRun(got.target, i, tokens)
				} else if got.target.ref().requiresParam {
					s.missingParam(got.target)
				}

			case got.kind == outcomeWildcard:
				i = s.captureRun(got.target, i, tokens)
			}

			continue outer
		}

		s.logger.Debug("unmatched token", slog.String("token", tokens[i]))
		s.addError(nil, s.invalidArgument(tokens[i]))
	}

	// Validate that everything required was found and every dependency
	// held, skipping matchers that already failed.
	for _, m := range s.matchers {
		sp := m.ref()
		if sp.failed {
			continue
		}

		switch {
		case sp.required && !sp.found &&
			(sp.onlyIf == nil || sp.onlyIf.Found()):
			s.addError(m, "Missing argument: "+s.Identify(m))

		case sp.found && sp.onlyIf != nil && !sp.onlyIf.Found():
			s.addError(
				m,
				"Argument "+s.Identify(m)+
					" only valid if "+s.Identify(sp.onlyIf)+" present",
			)
		}
	}
}

// classify decides whether a single specification captures a single token.
// The token may be an argument and parameter combined ("--xxx=foo", or
// "-Xfoo" with delimiter skip), or a bundle like "-abc" standing for
// "-a -b -c", in which case the other matchers are consulted through the
// shortcut index.
func (s *Snare) classify(m Spec, tok string) (capture, bool) {
	sp := m.ref()

	if sp.wildcard {
		if s.notArg(tok) && !sp.found {
			sp.found = true

			return capture{outcomeWildcard, m}, true
		}

		return capture{}, false
	}

	for _, name := range sp.names {
		switch {
		case tok == name:
			sp.found = true
			sp.name = name

			return capture{outcomeName, m}, true

		case sp.allowsParam && strings.HasPrefix(tok, name+"="):
			sp.found = true
			sp.name = name

			// "--arg=" is "found without a value", distinct from omitting
			// the "=" entirely.
			if v := tok[len(name)+1:]; v == "" {
				if sp.requiresParam {
					s.missingParam(m)
				}
			} else {
				s.capture(m, v)
			}

			return capture{outcomeNameParam, m}, true

		case shortName(name) && strings.HasPrefix(tok, name):
			if got, ok := s.expandBundle(m, name, tok); ok {
				return got, true
			}
		}
	}

	return capture{}, false
}

// shortName reports whether a name is eligible for the shortcut index:
// a bare dash-letter or bare letter.
func shortName(name string) bool {
	return utf8.RuneCountInString(name) <= 2
}

// expandBundle scans tok rune by rune past the matched name, resolving each
// character through the shortcut index. Expansion proceeds only while a
// specification exists for the character and the previous one does not
// require a parameter (a parameter-requiring specification consumes
// everything after itself, so it must come last).
//
// Either the whole token is argument names, or — with delimiter skip
// enabled — the unresolved suffix becomes the last matcher's inline value.
func (s *Snare) expandBundle(m Spec, name, tok string) (capture, bool) {
	runes := []rune(tok)
	dashed := len(name) > 1 // multi-rune names are the dash-prefixed ones

	last := utf8.RuneCountInString(name) - 1
	bundle := make([]Spec, len(runes))
	bundle[last] = m
	tail := m

	ok := true
	for j := last + 1; ok && j < len(runes); j++ {
		other := s.shortcut[runes[j]]

		ok = other != nil && !tail.ref().requiresParam
		if ok {
			last = j
			bundle[j] = other
			tail = other
		}
	}

	if ok {
		// The whole token is argument names.
		s.markBundle(bundle, runes, len(runes)-1, dashed)

		return capture{outcomeName, tail}, true
	}

	rest := string(runes[last+1:])
	if s.skipDelim && tail.ref().allowsParam && !strings.HasPrefix(rest, " ") {
		// Bundled argument names plus a glued value for the last one.
		s.markBundle(bundle, runes, last, dashed)
		s.capture(tail, rest)

		return capture{outcomeNameParam, tail}, true
	}

	return capture{}, false
}

// markBundle records every matcher of an expanded bundle as found, with a
// matched name synthesized from its character.
func (s *Snare) markBundle(bundle []Spec, runes []rune, last int, dashed bool) {
	for i := 0; i <= last; i++ {
		if bundle[i] == nil {
			continue
		}

		sp := bundle[i].ref()
		sp.found = true

		if dashed {
			sp.name = "-" + string(runes[i])
		} else {
			sp.name = string(runes[i])
		}
	}
}

// notArgNext reports whether another token follows i and is capturable as a
// value.
func (s *Snare) notArgNext(i int, tokens []string) bool {
	return i < len(tokens)-1 && s.notArg(tokens[i+1])
}

// notArg reports whether a token is capturable as a value rather than an
// argument name. A token only counts as a name when it starts with the
// significant dash prefix and exactly equals some registered name; so if no
// registered name is dashed, negative-number-like values pass freely.
func (s *Snare) notArg(tok string) bool {
	if s.prefix == "" || !strings.HasPrefix(tok, s.prefix) {
		return true
	}

	_, known := s.names[tok]

	return !known
}

// captureRun captures tokens[i] for m and, while m is multi-valued, every
// consecutive following token judged capturable. It returns the index of
// the last token consumed.
func (s *Snare) captureRun(m Spec, i int, tokens []string) int {
	s.capture(m, tokens[i])

	for m.ref().multi && s.notArgNext(i, tokens) {
		i++
		s.capture(m, tokens[i])
	}

	return i
}

// capture runs one capture attempt for m: duplicate single values are
// rejected, then the value is converted and stored. Conversion failures are
// folded into the error list prefixed with the matcher's display name
// (wildcards excepted).
func (s *Snare) capture(m Spec, raw string) {
	sp := m.ref()

	if sp.hasOne && !sp.multi {
		s.addError(
			m,
			s.Identify(m)+": Cannot supply multiple values; caused by: "+raw,
		)

		return
	}

	err := m.store(raw)
	if err == nil {
		return
	}

	var sb strings.Builder

	if !sp.wildcard {
		sb.WriteString("Argument ")
		sb.WriteString(s.Identify(m))
		sb.WriteString(": ")
	}

	sb.WriteString(err.Error())
	s.addError(m, sb.String())
}

func (s *Snare) missingParam(m Spec) {
	s.addError(m, "Argument "+s.Identify(m)+" requires parameter")
}

func (s *Snare) invalidArgument(tok string) string {
	msg := `Invalid argument: "` + tok + `"`

	if !s.suggest {
		return msg
	}

	if name, ok := s.suggestName(tok); ok {
		msg += ` (did you mean "` + name + `"?)`
	}

	return msg
}

// suggestName fuzzy-ranks the registered names against an unknown token.
// Both directions are tried since the token may be longer ("-xvzf") or
// shorter ("--cont") than the name it resembles.
func (s *Snare) suggestName(tok string) (string, bool) {
	names := slices.Sorted(func(yield func(string) bool) {
		for name := range s.names {
			if !yield(name) {
				return
			}
		}
	})

	pattern := strings.TrimLeft(tok, "-")
	if pattern == "" {
		return "", false
	}

	if matches := fuzzy.Find(pattern, names); len(matches) > 0 {
		return matches[0].Str, true
	}

	best, score := "", -1

	for _, name := range names {
		trimmed := strings.TrimLeft(name, "-")
		if trimmed == "" {
			continue
		}

		if matches := fuzzy.Find(trimmed, []string{pattern}); len(matches) > 0 {
			if matches[0].Score > score {
				best, score = name, matches[0].Score
			}
		}
	}

	return best, score >= 0
}
