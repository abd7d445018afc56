package sshkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already well formed",
			input: "-----BEGIN A-----\nx\n-----END A-----\n",
			want:  "-----BEGIN A-----\nx\n-----END A-----\n",
		},
		{
			name:  "missing trailing newline",
			input: "-----BEGIN A-----\nx\n-----END A-----",
			want:  "-----BEGIN A-----\nx\n-----END A-----\n",
		},
		{
			name:  "extra surrounding whitespace",
			input: "\n\n  -----BEGIN A-----\nx\n-----END A-----\n\n\n",
			want:  "-----BEGIN A-----\nx\n-----END A-----\n",
		},
		{
			name:  "concatenated blocks",
			input: "-----BEGIN A-----\nx\n-----END A----------BEGIN B-----\ny\n-----END B-----",
			want:  "-----BEGIN A-----\nx\n-----END A-----\n-----BEGIN B-----\ny\n-----END B-----\n",
		},
		{
			name:  "crlf line endings",
			input: "-----BEGIN A-----\r\nx\r\n-----END A-----\r\n",
			want:  "-----BEGIN A-----\nx\n-----END A-----\n",
		},
		{
			name:  "text before the first block",
			input: "Private key for ci:\n-----BEGIN A-----\nx\n-----END A-----\n",
			want:  "-----BEGIN A-----\nx\n-----END A-----\n",
		},
		{
			name:  "no marker",
			input: "  not a key \n",
			want:  "not a key\n",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_BlockCountMatchesBeginMarkers(t *testing.T) {
	t.Parallel()

	block := func(name string) string {
		return "-----BEGIN " + name + "-----\nZm9v\n-----END " + name + "-----"
	}

	for n := 1; n <= 5; n++ {
		var input strings.Builder
		for i := range n {
			input.WriteString(block(string(rune('A' + i))))
		}

		got := Normalize("comment line\n" + input.String())

		assert.Equal(t, n, strings.Count(got, beginMarker))
		blocks := strings.SplitAfter(got, "-----\n-----BEGIN")
		assert.Len(t, blocks, n)
		assert.True(t, strings.HasSuffix(got, "-----\n"))
		assert.False(t, strings.HasSuffix(got, "\n\n"))
		for _, part := range strings.Split(strings.TrimSuffix(got, "\n"), "\n"+beginMarker) {
			assert.NotEmpty(t, part)
		}
	}
}
