package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/disintegration/imaging"
)

const (
	smallBound  = 128
	mediumBound = 256
	largeBound  = 512

	jpegQuality = 85
)

// ErrUnsupportedFormat is returned for content types outside the allow-list
// before any decoding is attempted.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// VariantDeriver produces the fixed set of scaled renditions from an
// original upload. The source image is decoded once and each variant is
// re-encoded in the original format.
type VariantDeriver struct {
}

func New() *VariantDeriver {
	return &VariantDeriver{}
}

func (p *VariantDeriver) Derive(ctx context.Context, contentType string, data []byte) (*dto.VariantBuffers, error) {
	format, ok := formatFor(contentType)
	if !ok {
		return nil, fmt.Errorf("VariantDeriver - Derive: %w", ErrUnsupportedFormat)
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("VariantDeriver - Derive - decodeImage: %w", err)
	}

	buffers := &dto.VariantBuffers{}

	for _, v := range []struct {
		bound int
		dst   *[]byte
	}{
		{smallBound, &buffers.Small},
		{mediumBound, &buffers.Medium},
		{largeBound, &buffers.Large},
	} {
		resized := imaging.Fit(img, v.bound, v.bound, imaging.Lanczos)

		encoded, err := encodeImage(resized, format)
		if err != nil {
			return nil, fmt.Errorf("VariantDeriver - Derive - encodeImage: %w", err)
		}

		*v.dst = encoded
	}

	return buffers, nil
}

func formatFor(contentType string) (imaging.Format, bool) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return imaging.JPEG, true
	case "image/png":
		return imaging.PNG, true
	case "image/gif":
		return imaging.GIF, true
	default:
		return 0, false
	}
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("VariantDeriver - decodeImage - imaging.Decode: %w", err)
	}

	return img, nil
}

func encodeImage(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer

	err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality))
	if err != nil {
		return nil, fmt.Errorf("VariantDeriver - encodeImage - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
