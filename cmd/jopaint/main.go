package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/hollist/jopaint"
	"github.com/hollist/jopaint/canvas"
)

// previewScale multiplies the native canvas size up to a viewable preview
// size.
const previewScale = 32

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// pointFlag reads a two-valued int slice flag as a point, e.g. --size 64,64.
func pointFlag(c *cli.Context, name string) (image.Point, error) {
	v := c.IntSlice(name)
	switch len(v) {
	case 0:
		return image.Point{}, nil
	case 2:
		return image.Pt(v[0], v[1]), nil
	}
	return image.Point{}, fmt.Errorf("--%s wants exactly WIDTH and HEIGHT", name)
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Convert a .paint file to a standard image format",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   "explicit output size as `WIDTH,HEIGHT`; mind the aspect ratio",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
			}

			size, err := pointFlag(c, "size")
			if err != nil {
				return cli.Exit(err, 1)
			}

			conv := jopaint.New(newLogger(c))
			cv, err := conv.ExportImage(c.Args().Get(0), c.Args().Get(1), size)
			if err != nil {
				return cli.Exit(err, 1)
			}

			fmt.Printf("exported %q to %s\n", cv.Title, c.Args().Get(1))
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Convert a standard image file to the .paint format",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Value:   "Untitled",
				Usage:   "title of the painting",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Value:   "Unknown",
				Usage:   "author of the painting",
			},
			&cli.StringFlag{
				Name:    "canvas",
				Aliases: []string{"c"},
				Value:   canvas.Large.String(),
				Usage:   "canvas type: small, large, long or tall",
			},
			&cli.IntSliceFlag{
				Name:    "grid",
				Aliases: []string{"g"},
				Usage:   "import as a `COLS,ROWS` grid of canvases for a higher resolution result",
			},
			&cli.BoolFlag{
				Name:    "preview",
				Aliases: []string{"p"},
				Usage:   "also write a preview .png of a viewable size",
			},
			&cli.IntFlag{
				Name:  "colors",
				Usage: "quantize the source to at most `N` colors before sampling",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
			}
			in, out := c.Args().Get(0), c.Args().Get(1)

			ct, err := canvas.TypeFromString(c.String("canvas"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			grid, err := pointFlag(c, "grid")
			if err != nil {
				return cli.Exit(err, 1)
			}

			opts := jopaint.ImportOptions{
				Type:      ct,
				Title:     c.String("title"),
				Author:    c.String("author"),
				MaxColors: c.Int("colors"),
			}
			conv := jopaint.New(newLogger(c))

			previewPath := previewPathFor(out)
			previewSize := ct.Size().Mul(previewScale)

			if grid != (image.Point{}) {
				g, err := conv.ImportImageGrid(in, out, grid.X, grid.Y, opts)
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Printf("imported %s as a %dx%d grid of %s canvases\n", in, grid.X, grid.Y, ct)

				if c.Bool("preview") {
					if err := conv.SaveGridComposite(g, previewPath, previewSize); err != nil {
						return cli.Exit(err, 1)
					}
					if _, err := conv.SaveGridImages(g, previewPath, previewSize); err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Printf("wrote previews alongside %s\n", previewPath)
				}
				return nil
			}

			cv, err := conv.ImportImage(in, out, opts)
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Printf("imported %s as a %s canvas named %s\n", in, ct, cv.Name)

			if c.Bool("preview") {
				if err := conv.SavePreview(cv, previewPath, previewSize); err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Printf("wrote preview to %s\n", previewPath)
			}
			return nil
		},
	}
}

// previewPathFor places a _preview.png next to the output file.
func previewPathFor(out string) string {
	base := filepath.Base(out)
	base = base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(out), base+"_preview.png")
}

func main() {
	app := cli.NewApp()

	app.Name = "jopaint"
	app.Usage = "Joy of Painting .paint image converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		importCommand(),
		exportCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
