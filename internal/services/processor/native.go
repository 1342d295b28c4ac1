package processor

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	"github.com/phambaophuc/image-annotator/internal/models"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

const nativeJPEGQuality = 95

// bgr is a color given in blue, green, red channel order.
type bgr [3]uint8

func (c bgr) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c[2], G: c[1], B: c[0], A: 0xff}.RGBA()
}

var nativeRed = bgr{0, 0, 255}

// NativeBackend runs the pipeline on the standard image codecs plus
// golang.org/x/image, resampling with github.com/nfnt/resize. Images are
// loaded without alpha, held as 8-bit RGBA, and outlines are centered on the
// rectangle edges.
type NativeBackend struct{}

func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

func (b *NativeBackend) Name() string {
	return "native"
}

// Decode reports unreadable or undecodable files as ErrNoImage.
func (b *NativeBackend) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	return dropAlpha(img), nil
}

// dropAlpha loads img as three color channels: the stored color of every
// pixel is kept and its alpha forced to opaque, so a translucent pixel is
// not blended with any background.
func dropAlpha(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xff
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

func (b *NativeBackend) Resize(img image.Image, size models.Size) (draw.Image, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	resized := resize.Resize(uint(size.Width), uint(size.Height), img, resize.Lanczos3)
	return toRGBA(resized), nil
}

func (b *NativeBackend) DrawRectangle(dst draw.Image, r RectRegion, stroke int) error {
	drawCenteredOutline(dst, r, stroke, nativeRed)
	return nil
}

func (b *NativeBackend) Encode(img image.Image, path string) error {
	format := formatFromPath(path)
	if !supportedFormat(format) {
		return fmt.Errorf("unsupported output format: %s", format)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encodeImage(file, img, format, nativeJPEGQuality); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}
