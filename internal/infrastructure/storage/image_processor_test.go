package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return buf.Bytes()
}

func TestImageProcessor_ValidateImage(t *testing.T) {
	p := NewImageProcessor(1<<20, 50)

	format, err := p.ValidateImage(makeJPEG(t, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	_, err = p.ValidateImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	small := NewImageProcessor(10, 50)
	_, err = small.ValidateImage(makeJPEG(t, 20, 10))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestImageProcessor_ToPNGWithCrop(t *testing.T) {
	p := NewImageProcessor(1<<20, 50)

	out, err := p.ToPNG(makeJPEG(t, 40, 30), &CropArea{X: 5, Y: 5, Width: 20, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Width)
	assert.Equal(t, 10, out.Height)

	decoded, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 20, decoded.Bounds().Dx())

	_, err = p.ToPNG(makeJPEG(t, 40, 30), &CropArea{X: 30, Y: 0, Width: 20, Height: 10})
	assert.ErrorIs(t, err, ErrCropOutOfBounds)
}

func TestImageProcessor_Thumbnail(t *testing.T) {
	p := NewImageProcessor(1<<20, 16)

	thumb, err := p.Thumbnail(makeJPEG(t, 64, 32))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}
