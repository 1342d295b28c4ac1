package processor

import "image"

// RectRegion is the centered annotation rectangle. Coordinates are
// inclusive pixel positions.
type RectRegion struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// NewRectRegion spans the middle half of bounds on both axes.
func NewRectRegion(bounds image.Rectangle) RectRegion {
	w, h := bounds.Dx(), bounds.Dy()
	return RectRegion{
		Left:   bounds.Min.X + w/4,
		Top:    bounds.Min.Y + h/4,
		Right:  bounds.Min.X + 3*w/4,
		Bottom: bounds.Min.Y + 3*h/4,
	}
}
