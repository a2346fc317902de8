// Package export converts frame sequences to and from the JSON files the
// export endpoint stores, and sends them there.
package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"spritepad/internal/domain"
)

// Shape selects how each cell is written.
type Shape string

const (
	// ShapeNested wraps every cell triple in a one-element array:
	// [[[r,g,b]], ...] per frame. Existing output files use this shape.
	ShapeNested Shape = "nested"
	// ShapeFlat writes each cell as a bare [r,g,b].
	ShapeFlat Shape = "flat"
)

var ErrMalformed = errors.New("malformed frame sequence")

// ParseShape maps a config value to a Shape. Empty means nested.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", ShapeNested:
		return ShapeNested, nil
	case ShapeFlat:
		return ShapeFlat, nil
	default:
		return "", fmt.Errorf("unknown export shape %q", s)
	}
}

// Encode renders frames as a JSON array of frames.
func Encode(frames []domain.Frame, shape Shape) ([]byte, error) {
	switch shape {
	case ShapeFlat:
		out := make([][][3]int, len(frames))
		for i, f := range frames {
			cells := make([][3]int, len(f))
			for j, c := range f {
				cells[j] = c.Triple()
			}
			out[i] = cells
		}
		return json.Marshal(out)
	case ShapeNested, "":
		out := make([][][][3]int, len(frames))
		for i, f := range frames {
			cells := make([][][3]int, len(f))
			for j, c := range f {
				cells[j] = [][3]int{c.Triple()}
			}
			out[i] = cells
		}
		return json.Marshal(out)
	default:
		return nil, fmt.Errorf("encode frames: unknown shape %q", shape)
	}
}

// Decode parses either shape back into frames. Frames may differ in length;
// no shape or length checks beyond the cell encoding are made.
func Decode(data []byte) ([]domain.Frame, error) {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode frames: %w", err)
	}
	frames := make([]domain.Frame, len(raw))
	for i, cells := range raw {
		f := make(domain.Frame, len(cells))
		for j, cell := range cells {
			c, err := decodeCell(cell)
			if err != nil {
				return nil, fmt.Errorf("decode frame %d cell %d: %w", i, j, err)
			}
			f[j] = c
		}
		frames[i] = f
	}
	return frames, nil
}

func decodeCell(raw json.RawMessage) (domain.Color, error) {
	var flat []int
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) == 3 {
		return domain.ColorFromTriple([3]int{flat[0], flat[1], flat[2]})
	}
	var nested [][]int
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) == 1 && len(nested[0]) == 3 {
		t := nested[0]
		return domain.ColorFromTriple([3]int{t[0], t[1], t[2]})
	}
	return domain.Color{}, ErrMalformed
}
