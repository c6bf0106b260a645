// Package imaging prepares page images for transmission: bounded width,
// JPEG encoding, two quality tiers.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Tier bounds a payload: maximum pixel width and JPEG quality.
type Tier struct {
	MaxWidth int
	Quality  int
}

// Normal and light tiers matching the payload limits the extraction pipeline
// was tuned with. The light tier exists only for the degraded retry.
var (
	NormalTier = Tier{MaxWidth: 1600, Quality: 80}
	LightTier  = Tier{MaxWidth: 1200, Quality: 70}
)

// CompressJPEG re-encodes src as a JPEG no wider than the tier allows,
// preserving aspect ratio. Images already narrow enough are never upscaled.
// Bytes that cannot be decoded as an image pass through unchanged, since
// the caller may already hold a small JPEG.
func CompressJPEG(src []byte, tier Tier) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return src, nil
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if tier.MaxWidth > 0 && w > tier.MaxWidth {
		newH := h * tier.MaxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, tier.MaxWidth, newH))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: tier.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
