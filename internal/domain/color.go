package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB triple. It is the only color representation
// used between the color picker, the frame store and the export wire format.
type Color struct {
	R, G, B uint8
}

// DefaultBackground is the color every new cell starts with.
var DefaultBackground = Color{0, 0, 0}

var digitsRe = regexp.MustCompile(`\d+`)

// ParseColor converts a UI color string into a Color.
//
// Hex input ("#f00", "#ff0000") must be well formed. Anything else is read the
// way CSS computed styles are: the decimal numbers are pulled out in order and
// exactly three of them make a color. Any other count yields black.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	nums := digitsRe.FindAllString(s, -1)
	if len(nums) != 3 {
		return DefaultBackground, nil
	}
	var ch [3]uint8
	for i, n := range nums {
		v, err := strconv.Atoi(n)
		if err != nil || v > 255 {
			return Color{}, fmt.Errorf("parse color %q: channel %s out of range", s, n)
		}
		ch[i] = uint8(v)
	}
	return Color{ch[0], ch[1], ch[2]}, nil
}

func parseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String renders the color the way the browser reports computed backgrounds.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Triple returns the channels as ints, the element type of the export format.
func (c Color) Triple() [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

// ColorFromTriple builds a Color from wire values, rejecting channels outside 0-255.
func ColorFromTriple(t [3]int) (Color, error) {
	for _, v := range t {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("color channel %d out of range", v)
		}
	}
	return Color{uint8(t[0]), uint8(t[1]), uint8(t[2])}, nil
}

// MarshalJSON encodes the color as a [r,g,b] array.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Triple())
}

// UnmarshalJSON accepts a [r,g,b] array.
func (c *Color) UnmarshalJSON(data []byte) error {
	var t [3]int
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("decode color: %w", err)
	}
	v, err := ColorFromTriple(t)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
