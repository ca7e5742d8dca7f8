package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit colour value, 0xRRGGBB.
type RGB uint32

// Colours used by the preview when the specification does not name one.
const (
	ColorSnakeHead RGB = 0x34d399
	ColorSnakeTail RGB = 0x10b981
	ColorFood      RGB = 0xff6b6b
	ColorGridLine  RGB = 0x1f2937
)

// ParseHex parses a "#RRGGBB" colour string. The leading '#' is required.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB(v), nil
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}
