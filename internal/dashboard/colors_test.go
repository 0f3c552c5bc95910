package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateColors(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{n: 0, want: []string{}},
		{n: -1, want: []string{}},
		{n: 1, want: []string{"hsl(0, 70%, 60%)"}},
		{n: 3, want: []string{"hsl(0, 70%, 60%)", "hsl(120, 70%, 60%)", "hsl(240, 70%, 60%)"}},
		{n: 4, want: []string{"hsl(0, 70%, 60%)", "hsl(90, 70%, 60%)", "hsl(180, 70%, 60%)", "hsl(270, 70%, 60%)"}},
	}

	for _, tt := range tests {
		got := GenerateColors(tt.n)
		assert.Equal(t, tt.want, got, "GenerateColors(%d)", tt.n)
	}
}

func TestGenerateColorsAreDistinct(t *testing.T) {
	colors := GenerateColors(12)
	assert.Len(t, colors, 12)

	seen := make(map[string]bool)
	for _, c := range colors {
		if seen[c] {
			t.Errorf("duplicate color %s", c)
		}
		seen[c] = true
	}
}

func TestGenerateFlaggedColors(t *testing.T) {
	assert.Equal(t, []string{"hsl(0, 70%, 50%)", "hsl(180, 70%, 50%)"}, GenerateFlaggedColors(2))
	assert.Empty(t, GenerateFlaggedColors(0))
}
