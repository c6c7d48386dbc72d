/*
Package jopaint converts standard raster images to and from the Joy of
Painting .paint canvas format used by the Minecraft mod of the same name.

A single canvas holds at most 32 by 32 pixels, so imports downsample the
source by averaging the distinct colors of each tile. Larger pictures are
imported as a grid of canvases that the mod reassembles in-game.
*/
package jopaint

import (
	"io"
	"log"

	"github.com/hollist/jopaint/canvas"
)

// Converter performs file-level conversions between raster images and
// .paint canvases.
type Converter struct {
	ids    *canvas.Identity
	logger *log.Logger
}

// New returns a Converter that reports progress to logger. A nil logger
// discards all output.
func New(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		ids:    &canvas.Identity{},
		logger: logger,
	}
}
