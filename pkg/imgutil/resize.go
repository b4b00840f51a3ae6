package imgutil

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// FitWithin は縦横比を保ったまま長辺が maxDim 以下になるサイズを返します。
// maxDim <= 0 または既に収まっている場合は元のサイズのまま。
func FitWithin(width, height, maxDim int) (int, int) {
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return width, height
	}
	if width > height {
		h := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return maxDim, max(h, 1)
	}
	w := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return max(w, 1), maxDim
}

// Downscale は長辺が maxDim を超える画像だけを縮小します。拡大はしない。
func Downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := FitWithin(bounds.Dx(), bounds.Dy(), maxDim)
	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
