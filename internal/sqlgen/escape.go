// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sqlgen

import (
	"errors"
	"fmt"
	"strings"
)

// null is the unquoted SQL NULL literal.
const null = "NULL"

// ErrNotLiteral is returned by Unescape for input that is not a single-quoted
// SQL string literal.
var ErrNotLiteral = errors.New("not a quoted SQL string literal")

// Literal returns v as a single-quoted SQL string literal. Embedded single
// quotes are doubled.
func Literal(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// Unescape reverses Literal: it strips the enclosing quotes and collapses
// each doubled quote. A lone quote inside the literal is an error.
func Unescape(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '\'' || lit[len(lit)-1] != '\'' {
		return "", fmt.Errorf("%q: %w", lit, ErrNotLiteral)
	}
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\'' {
			if i+1 >= len(body) || body[i+1] != '\'' {
				return "", fmt.Errorf("%q: unpaired quote at offset %d: %w", lit, i+1, ErrNotLiteral)
			}
			i++
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}
