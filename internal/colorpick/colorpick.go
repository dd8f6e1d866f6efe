// internal/colorpick/colorpick.go
//
// Normalizes values coming from the color picker.
//
// The browser's <input type="color"> always yields "#rrggbb". API clients can
// send anything, so values are parsed as CSS colors (hex, rgb(), hsl(), named
// colors) and normalized to lowercase hex before they reach a cell.

package colorpick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"github.com/robalobadob/pixelart/apps/go-server/internal/canvas"
)

// Default is the picker's initial value.
const Default canvas.Color = "#000000"

var ErrInvalidColor = errors.New("invalid color")

// Parse converts a picker value into a normalized canvas.Color.
func Parse(value string) (canvas.Color, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidColor)
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return canvas.Color(strings.ToLower(c.HexString())), nil
}
