package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, img))
	return b.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	format, err := p.ValidateImage(encodePNG(t, testImage(20, 10)))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	var jb bytes.Buffer
	require.NoError(t, jpeg.Encode(&jb, testImage(20, 10), nil))
	format, err = p.ValidateImage(jb.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	_, err = p.ValidateImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestValidateImage_RejectsGIF(t *testing.T) {
	p := NewImageProcessor()

	var gb bytes.Buffer
	require.NoError(t, gif.Encode(&gb, testImage(4, 4), nil))

	_, err := p.ValidateImage(gb.Bytes())
	assert.ErrorIs(t, err, ErrFormatForbidden)
}

func TestValidateImage_TooLarge(t *testing.T) {
	p := &ImageProcessor{MaxSize: 10}

	_, err := p.ValidateImage(encodePNG(t, testImage(20, 10)))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestProcessImage_FitsVariants(t *testing.T) {
	p := NewImageProcessor()

	variants, err := p.ProcessImage(encodePNG(t, testImage(1200, 600)))
	require.NoError(t, err)
	require.Len(t, variants, 2)

	thumb, err := jpeg.Decode(bytes.NewReader(variants["thumbnail"]))
	require.NoError(t, err)
	assert.Equal(t, 300, thumb.Bounds().Dx())
	assert.Equal(t, 150, thumb.Bounds().Dy())
}
