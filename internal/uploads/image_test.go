package uploads

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessImageReencodesSmallImage(t *testing.T) {
	out, err := ProcessImage(pngFixture(t, 640, 480))
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	b := decoded.Bounds()
	assert.Equal(t, 640, b.Dx())
	assert.Equal(t, 480, b.Dy())
}

func TestProcessImageDownscalesWideImage(t *testing.T) {
	out, err := ProcessImage(pngFixture(t, 3200, 1600))
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	b := decoded.Bounds()
	assert.Equal(t, 1600, b.Dx())
	assert.Equal(t, 800, b.Dy())
}

func TestProcessImageDownscalesTallImage(t *testing.T) {
	out, err := ProcessImage(pngFixture(t, 800, 4000))
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	b := decoded.Bounds()
	assert.Equal(t, 320, b.Dx())
	assert.Equal(t, 1600, b.Dy())
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, err := ProcessImage(bytes.NewReader([]byte("definitely not an image")))
	assert.Error(t, err)
}
