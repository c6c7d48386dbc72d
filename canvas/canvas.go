/*
Package canvas implements the Joy of Painting canvas decoder and encoder.

A canvas is one of four fixed sizes of 8-bit RGB pixel grid together with a
title, an author and a name identifier. On disk a canvas is a single NBT
compound of seven fields: a generation constant, the canvas type ordinal,
one 32-bit signed integer per pixel in row-major order holding the color as
0xFFRRGGBB, a version constant and the three metadata strings. Colors carry
no alpha channel; full opacity is implied and the high byte is fixed at
0xff.
*/
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Type identifies one of the four canvas shapes supported by the mod. The
// ordinal values are part of the file format.
type Type int

const (
	Small Type = iota // 16x16
	Large             // 32x32
	Long              // 32x16
	Tall              // 16x32
)

var typeSizes = [...]image.Point{
	Small: {X: 16, Y: 16},
	Large: {X: 32, Y: 32},
	Long:  {X: 32, Y: 16},
	Tall:  {X: 16, Y: 32},
}

var typeNames = [...]string{
	Small: "small",
	Large: "large",
	Long:  "long",
	Tall:  "tall",
}

func (t Type) valid() bool {
	return t >= Small && t <= Tall
}

// Size returns the native pixel size of the canvas type.
func (t Type) Size() image.Point {
	if !t.valid() {
		return image.Point{}
	}
	return typeSizes[t]
}

func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// TypeFromString parses a canvas type name as used on the command line.
func TypeFromString(s string) (Type, error) {
	for t, name := range typeNames {
		if name == strings.ToLower(s) {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown canvas type %q", s)
}

// DimensionError reports a tile decomposition that would produce an empty
// tile, such as a source image smaller than the target canvas.
type DimensionError struct {
	Extent image.Point // pixel extent being tiled
	Cells  image.Point // cells the extent is divided into
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("canvas: cannot split %dx%d pixels into %dx%d cells",
		e.Extent.X, e.Extent.Y, e.Cells.X, e.Cells.Y)
}

// Canvas is a single Joy of Painting canvas. Pixels holds exactly
// Type.Size().X * Type.Size().Y colors in row-major order.
type Canvas struct {
	Type   Type
	Author string
	Title  string
	Name   string
	Pixels []color.RGBA
}

// FromImage reduces m to a single canvas of type t. The source is divided
// into one tile per canvas pixel, each tile spanning
// (srcW/W, srcH/H) source pixels rounded down; any source border that does
// not divide evenly is discarded. Each canvas pixel is the average of the
// distinct colors inside its tile. A source smaller than the canvas on
// either axis yields a DimensionError.
func FromImage(m image.Image, t Type, title, author, name string) (*Canvas, error) {
	size := t.Size()
	b := m.Bounds()
	tile := image.Pt(b.Dx()/size.X, b.Dy()/size.Y)
	if tile.X < 1 || tile.Y < 1 {
		return nil, &DimensionError{Extent: image.Pt(b.Dx(), b.Dy()), Cells: size}
	}

	// Tiling the truncated extent yields exactly one origin per canvas
	// pixel.
	extent := image.Pt(tile.X*size.X, tile.Y*size.Y)
	pixels := make([]color.RGBA, 0, size.X*size.Y)
	for _, origin := range GridIndices(extent, tile, true) {
		r := image.Rectangle{Min: origin, Max: origin.Add(tile)}.Add(b.Min)
		pixels = append(pixels, AverageColor(m, r))
	}

	return &Canvas{
		Type:   t,
		Author: author,
		Title:  title,
		Name:   name,
		Pixels: pixels,
	}, nil
}

// At returns the canvas pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.Pixels[y*c.Type.Size().X+x]
}

// Image reconstructs the canvas as a raster image. A zero size yields the
// native canvas size; any other size is produced by nearest-neighbor
// resampling so that pixel block edges stay hard.
func (c *Canvas) Image(size image.Point) image.Image {
	n := c.Type.Size()
	m := image.NewNRGBA(image.Rect(0, 0, n.X, n.Y))
	for y := 0; y < n.Y; y++ {
		for x := 0; x < n.X; x++ {
			p := c.Pixels[y*n.X+x]
			m.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	if size == (image.Point{}) || size == n {
		return m
	}
	return imaging.Resize(m, size.X, size.Y, imaging.NearestNeighbor)
}
