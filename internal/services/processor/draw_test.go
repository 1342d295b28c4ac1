package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRed = color.RGBA{R: 255, A: 255}

func isSet(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y) == testRed
}

func TestDrawInsetOutline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	drawInsetOutline(img, RectRegion{Left: 5, Top: 5, Right: 15, Bottom: 15}, 3, testRed)

	assert.True(t, isSet(img, 5, 5))
	assert.True(t, isSet(img, 15, 15))
	assert.True(t, isSet(img, 7, 10))
	assert.True(t, isSet(img, 13, 10))
	assert.False(t, isSet(img, 4, 5))
	assert.False(t, isSet(img, 16, 15))
	assert.False(t, isSet(img, 8, 10))
	assert.False(t, isSet(img, 10, 10))
}

func TestDrawCenteredOutline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	drawCenteredOutline(img, RectRegion{Left: 5, Top: 5, Right: 15, Bottom: 15}, 3, testRed)

	assert.True(t, isSet(img, 4, 4))
	assert.True(t, isSet(img, 5, 5))
	assert.True(t, isSet(img, 6, 10))
	assert.True(t, isSet(img, 16, 16))
	assert.False(t, isSet(img, 3, 10))
	assert.False(t, isSet(img, 7, 10))
	assert.False(t, isSet(img, 17, 10))
	assert.False(t, isSet(img, 10, 10))
}

func TestOutlineClipsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	drawCenteredOutline(img, NewRectRegion(img.Bounds()), 3, testRed)
	assert.True(t, isSet(img, 0, 0))

	img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	drawInsetOutline(img, NewRectRegion(img.Bounds()), 3, testRed)
	assert.True(t, isSet(img, 0, 0))
}

func TestBGRIsRed(t *testing.T) {
	r, g, b, a := nativeRed.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)
}
