package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDimensions is returned for grid sizes outside [1, max] or non-numeric input.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Dimensions is the width and height of the grid, in cells.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Cells returns the number of cells in the grid.
func (d Dimensions) Cells() int {
	return d.Width * d.Height
}

// Index maps a (row, col) position to its row-major cell index.
func (d Dimensions) Index(row, col int) int {
	return row*d.Width + col
}

// Position is the inverse of Index.
func (d Dimensions) Position(index int) (row, col int) {
	return index / d.Width, index % d.Width
}

// Contains reports whether index addresses a cell of the grid.
func (d Dimensions) Contains(index int) bool {
	return index >= 0 && index < d.Cells()
}

// Validate checks both sides are within [1, max].
func (d Dimensions) Validate(max int) error {
	if d.Width < 1 || d.Width > max || d.Height < 1 || d.Height > max {
		return &DimensionError{Max: max, Input: fmt.Sprintf("%dx%d", d.Width, d.Height)}
	}
	return nil
}

// ParseDimensions reads user-entered width and height. Leading integer prefixes
// are accepted ("12px" is 12) the way form inputs are usually read; anything
// without a leading integer is rejected.
func ParseDimensions(width, height string, max int) (Dimensions, error) {
	w, okW := leadingInt(width)
	h, okH := leadingInt(height)
	if !okW || !okH {
		return Dimensions{}, &DimensionError{Max: max, Input: width + "x" + height}
	}
	d := Dimensions{Width: w, Height: h}
	if err := d.Validate(max); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DimensionError carries the user-facing message for a rejected grid size.
type DimensionError struct {
	Max   int
	Input string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("Please enter valid grid dimensions (1-%d)", e.Max)
}

func (e *DimensionError) Unwrap() error { return ErrInvalidDimensions }
