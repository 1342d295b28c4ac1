package processor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-annotator/internal/models"
	"golang.org/x/image/draw"
)

const imagingJPEGQuality = 75

var imagingRed = color.NRGBA{R: 255, A: 255}

// ImagingBackend runs the pipeline on github.com/disintegration/imaging.
// Outlines grow inward from the rectangle edges.
type ImagingBackend struct{}

func NewImagingBackend() *ImagingBackend {
	return &ImagingBackend{}
}

func (b *ImagingBackend) Name() string {
	return "imaging"
}

func (b *ImagingBackend) Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (b *ImagingBackend) Resize(img image.Image, size models.Size) (draw.Image, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	return imaging.Resize(img, size.Width, size.Height, imaging.Lanczos), nil
}

func (b *ImagingBackend) DrawRectangle(dst draw.Image, r RectRegion, stroke int) error {
	drawInsetOutline(dst, r, stroke, imagingRed)
	return nil
}

func (b *ImagingBackend) Encode(img image.Image, path string) error {
	return imaging.Save(img, path, imaging.JPEGQuality(imagingJPEGQuality))
}
