package storage

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"

	"github.com/disintegration/gift"
)

const (
	// Artwork images are scaled down to this width, never up.
	MaxArtworkWidth = 1200
	// Profile images are resized and cropped to a fixed square.
	ProfileSize = 400

	JPEGQuality = 90
)

// Transform describes how an uploaded image is normalized before it is
// stored. CropSize wins over MaxWidth when both are set.
type Transform struct {
	MaxWidth int // scale down to fit this width, never upscale
	CropSize int // resize-and-crop to a CropSize square
}

// ArtworkTransform is the normalization applied to gallery uploads.
func ArtworkTransform() Transform {
	return Transform{MaxWidth: MaxArtworkWidth}
}

// ProfileTransform is the normalization applied to profile pictures.
func ProfileTransform() Transform {
	return Transform{CropSize: ProfileSize}
}

// Normalize decodes the image and applies the transform.
func Normalize(r io.Reader, t Transform) (image.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	g := buildFilter(src, t)
	if g == nil {
		return src, nil
	}

	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst, nil
}

func buildFilter(src image.Image, t Transform) *gift.GIFT {
	switch {
	case t.CropSize > 0:
		return gift.New(gift.ResizeToFill(t.CropSize, t.CropSize, gift.LanczosResampling, gift.CenterAnchor))
	case t.MaxWidth > 0 && src.Bounds().Dx() > t.MaxWidth:
		return gift.New(gift.Resize(t.MaxWidth, 0, gift.LanczosResampling))
	default:
		return nil
	}
}
