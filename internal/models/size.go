package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSize = errors.New("invalid size")

// DefaultSize is the target resolution used when the caller gives none.
var DefaultSize = Size{Width: 300, Height: 300}

type Size struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses "WIDTHxHEIGHT", e.g. "800x400".
func ParseSize(value string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, value)
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("%w: invalid width %q", ErrInvalidSize, w)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("%w: invalid height %q", ErrInvalidSize, h)
	}

	size := Size{Width: width, Height: height}
	if err := size.Validate(); err != nil {
		return Size{}, err
	}
	return size, nil
}
