// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"cones", "'cones'"},
		{"O'Brien's Tag", "'O''Brien''s Tag'"},
		{"''", "''''''"},
		{"l'élève", "'l''élève'"},
		{`back\slash`, `'back\slash'`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.in))
		})
	}
}

func TestUnescapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"'",
		"''",
		"it's",
		"'leading and trailing'",
		"multi\nline 'quoted'\ttext",
		"accents: é à ç '",
	}
	for _, in := range inputs {
		got, err := Unescape(Literal(in))
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, got)
	}
}

func TestUnescapeRejects(t *testing.T) {
	for _, lit := range []string{"", "'", "NULL", "abc", "'a'b'", "'unterminated"} {
		_, err := Unescape(lit)
		assert.ErrorIs(t, err, ErrNotLiteral, "literal %q", lit)
	}
}
