package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func encodeGIF(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))

	return buf.Bytes()
}

func TestDeriveUnsupportedFormat(t *testing.T) {
	p := New()

	// rejected on the declared type alone, before any decode attempt
	_, err := p.Derive(context.Background(), "image/webp", encodePNG(t, testImage(800, 600)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDeriveUndecodableData(t *testing.T) {
	p := New()

	_, err := p.Derive(context.Background(), "image/png", []byte("not an image"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDeriveProducesThreeDecodableVariants(t *testing.T) {
	p := New()

	cases := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"png", "image/png", encodePNG(t, testImage(900, 700))},
		{"jpeg", "image/jpeg", encodeJPEG(t, testImage(900, 700))},
		{"gif", "image/gif", encodeGIF(t, testImage(900, 700))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buffers, err := p.Derive(context.Background(), tc.contentType, tc.data)
			require.NoError(t, err)

			for _, v := range []struct {
				data  []byte
				bound int
			}{
				{buffers.Small, smallBound},
				{buffers.Medium, mediumBound},
				{buffers.Large, largeBound},
			} {
				require.NotEmpty(t, v.data)

				img, _, err := image.Decode(bytes.NewReader(v.data))
				require.NoError(t, err)

				size := img.Bounds().Size()
				assert.LessOrEqual(t, size.X, v.bound)
				assert.LessOrEqual(t, size.Y, v.bound)
			}
		})
	}
}

func TestDerivePreservesAspectRatio(t *testing.T) {
	p := New()

	buffers, err := p.Derive(context.Background(), "image/png", encodePNG(t, testImage(1000, 500)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(buffers.Large))
	require.NoError(t, err)

	size := img.Bounds().Size()
	assert.Equal(t, largeBound, size.X)
	assert.Equal(t, largeBound/2, size.Y)
}

func TestDeriveSmallerSourceNotUpscaled(t *testing.T) {
	p := New()

	buffers, err := p.Derive(context.Background(), "image/png", encodePNG(t, testImage(64, 64)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(buffers.Large))
	require.NoError(t, err)

	size := img.Bounds().Size()
	assert.Equal(t, 64, size.X)
	assert.Equal(t, 64, size.Y)
}
