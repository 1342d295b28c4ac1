package processor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// drawInsetOutline strokes r with the line growing inward from the outline,
// so the outermost pixels sit exactly on r's edges.
func drawInsetOutline(dst draw.Image, r RectRegion, stroke int, c color.Color) {
	if stroke < 1 {
		stroke = 1
	}
	fillBands(dst, c,
		image.Rect(r.Left, r.Top, r.Right+1, r.Top+stroke),
		image.Rect(r.Left, r.Bottom-stroke+1, r.Right+1, r.Bottom+1),
		image.Rect(r.Left, r.Top, r.Left+stroke, r.Bottom+1),
		image.Rect(r.Right-stroke+1, r.Top, r.Right+1, r.Bottom+1),
	)
}

// drawCenteredOutline strokes r with the line centered on its edges.
func drawCenteredOutline(dst draw.Image, r RectRegion, stroke int, c color.Color) {
	if stroke < 1 {
		stroke = 1
	}
	lo := stroke / 2
	hi := stroke - lo
	fillBands(dst, c,
		image.Rect(r.Left-lo, r.Top-lo, r.Right+hi, r.Top+hi),
		image.Rect(r.Left-lo, r.Bottom-lo, r.Right+hi, r.Bottom+hi),
		image.Rect(r.Left-lo, r.Top-lo, r.Left+hi, r.Bottom+hi),
		image.Rect(r.Right-lo, r.Top-lo, r.Right+hi, r.Bottom+hi),
	)
}

func fillBands(dst draw.Image, c color.Color, bands ...image.Rectangle) {
	src := image.NewUniform(c)
	bounds := dst.Bounds()
	for _, band := range bands {
		band = band.Intersect(bounds)
		if band.Empty() {
			continue
		}
		draw.Draw(dst, band, src, image.Point{}, draw.Src)
	}
}

func toRGBA(src image.Image) *image.RGBA {
	if dst, ok := src.(*image.RGBA); ok {
		return dst
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
