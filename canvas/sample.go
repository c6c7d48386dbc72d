package canvas

import (
	"image"
	"image/color"
	"math"
	"math/bits"

	"github.com/disintegration/imaging"
)

// GridIndices returns the top-left origin of every tile of the given size
// that fits fully inside extent, in row-major order. With zeroStart the
// first origin is (0, 0); otherwise sampling is anchored half a tile in,
// starting at (tile.X/2, tile.Y/2). Origins are only produced while the
// whole tile fits, so partial trailing tiles are excluded.
func GridIndices(extent, tile image.Point, zeroStart bool) []image.Point {
	if tile.X < 1 || tile.Y < 1 {
		return nil
	}
	var start image.Point
	if !zeroStart {
		start = image.Pt(tile.X/2, tile.Y/2)
	}
	var origins []image.Point
	for y := start.Y; y+tile.Y <= extent.Y; y += tile.Y {
		for x := start.X; x+tile.X <= extent.X; x += tile.X {
			origins = append(origins, image.Pt(x, y))
		}
	}
	return origins
}

// AverageColor returns the channel-wise mean of the distinct colors inside
// the region r of m, rounded to the nearest integer. Duplicate colors count
// once, which biases the result toward the palette of the region rather
// than its dominant mass and keeps fine detail from washing out when large
// tiles collapse to a single color.
func AverageColor(m image.Image, r image.Rectangle) color.RGBA {
	r = r.Intersect(m.Bounds())
	seen := make(map[color.RGBA]struct{})
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := m.At(x, y).RGBA()
			c := color.RGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: 0xff}
			seen[c] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return color.RGBA{A: 0xff}
	}
	var rs, gs, bs uint64
	for c := range seen {
		rs += uint64(c.R)
		gs += uint64(c.G)
		bs += uint64(c.B)
	}
	n := float64(len(seen))
	return color.RGBA{
		R: uint8(math.Round(float64(rs) / n)),
		G: uint8(math.Round(float64(gs) / n)),
		B: uint8(math.Round(float64(bs) / n)),
		A: 0xff,
	}
}

// NormalizePowerOfTwo resizes m up to the next power of two on each axis
// using nearest-neighbor resampling. An image that is already a power of
// two on both axes is returned as an independent copy.
func NormalizePowerOfTwo(m image.Image) *image.NRGBA {
	b := m.Bounds()
	if isPowerOfTwo(b.Dx()) && isPowerOfTwo(b.Dy()) {
		return imaging.Clone(m)
	}
	return imaging.Resize(m, nextPowerOfTwo(b.Dx()), nextPowerOfTwo(b.Dy()), imaging.NearestNeighbor)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
