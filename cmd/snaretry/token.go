package main

import (
	"strings"
	"unicode"
)

// tokenize splits a command line into tokens the way a shell would hand
// them to a program: whitespace separates tokens, and single or double
// quotes group text (including whitespace) into one token with the quotes
// stripped. An unterminated quote runs to the end of the line.
func tokenize(line string) []string {
	var (
		tokens  []string
		b       strings.Builder
		quote   rune
		pending bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				b.WriteRune(r)
			}

		case r == '\'' || r == '"':
			quote = r
			pending = true

		case unicode.IsSpace(r):
			if pending {
				tokens = append(tokens, b.String())
				b.Reset()

				pending = false
			}

		default:
			b.WriteRune(r)

			pending = true
		}
	}

	if pending {
		tokens = append(tokens, b.String())
	}

	return tokens
}
