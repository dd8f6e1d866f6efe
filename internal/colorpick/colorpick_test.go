package colorpick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pixelart/apps/go-server/internal/canvas"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want canvas.Color
	}{
		{"#ff0000", "#ff0000"},
		{"#FF00AA", "#ff00aa"},
		{"  #00ff00 ", "#00ff00"},
		{"#fff", "#ffffff"},
		{"red", "#ff0000"},
		{"rgb(0, 0, 255)", "#0000ff"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-color", "#12345z"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", in)
	}
}

func TestDefaultIsNormalized(t *testing.T) {
	got, err := Parse(string(Default))
	require.NoError(t, err)
	assert.Equal(t, Default, got)
}
