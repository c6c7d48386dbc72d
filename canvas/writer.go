package canvas

import (
	"fmt"
	"image/color"
	"io"

	"github.com/hollist/jopaint/nbt"
)

// Field names and write-only constants of the .paint schema. The field
// order below is the order the game writes and is preserved on encode.
const (
	fieldGeneration = "generation"
	fieldType       = "ct"
	fieldPixels     = "pixels"
	fieldVersion    = "v"
	fieldAuthor     = "author"
	fieldName       = "name"
	fieldTitle      = "title"

	canvasGeneration int32 = 1
	canvasVersion    int32 = 2
)

// packColor packs an RGB triple with implied full alpha into the signed
// 32-bit wire representation. Values of 0x80000000 and above come out
// negative; the bit pattern is what matters.
func packColor(c color.RGBA) int32 {
	return int32(0xff000000 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// unpackColor splits a stored pixel value back into an RGB triple. The
// value is reinterpreted as an unsigned pattern first and masked to its low
// 24 bits; the sign is never trusted.
func unpackColor(v int32) color.RGBA {
	u := uint32(v)
	return color.RGBA{R: uint8(u >> 16), G: uint8(u >> 8), B: uint8(u), A: 0xff}
}

// Encode writes c to w in .paint format.
func Encode(w io.Writer, c *Canvas) error {
	if !c.Type.valid() {
		return fmt.Errorf("canvas: invalid canvas type %d", int(c.Type))
	}
	size := c.Type.Size()
	if len(c.Pixels) != size.X*size.Y {
		return fmt.Errorf("canvas: %d pixels, want %d for a %s canvas",
			len(c.Pixels), size.X*size.Y, c.Type)
	}

	pixels := make([]int32, len(c.Pixels))
	for i, p := range c.Pixels {
		pixels[i] = packColor(p)
	}

	root := nbt.NewCompound()
	root.Set(fieldGeneration, canvasGeneration)
	root.Set(fieldType, int8(c.Type))
	root.Set(fieldPixels, pixels)
	root.Set(fieldVersion, canvasVersion)
	root.Set(fieldAuthor, c.Author)
	root.Set(fieldName, c.Name)
	root.Set(fieldTitle, c.Title)

	return nbt.Encode(w, root)
}
