// Package flagsplit splits free-form flag strings into argument tokens.
//
// The rules are a small subset of shell word splitting: tokens are separated
// by whitespace, and a run of characters wrapped in double quotes belongs to
// the current token with the quotes removed. There are no escapes, no single
// quotes and no expansion, so this is not a shell parser.
package flagsplit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnbalancedQuote is returned when a double quote is never closed.
var ErrUnbalancedQuote = errors.New("unbalanced double quote")

// Split tokenizes s. Whitespace inside double quotes is kept, the quote
// characters themselves are dropped, and `""` produces an empty token.
func Split(s string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quoted  bool
		quoteAt int
	)

	for i, r := range s {
		switch {
		case r == '"':
			if !quoted {
				quoteAt = i
			}
			quoted = !quoted
			inToken = true
		case unicode.IsSpace(r) && !quoted:
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quoted {
		return nil, fmt.Errorf("%w opened at offset %d", ErrUnbalancedQuote, quoteAt)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}
