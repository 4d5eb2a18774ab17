package render

import (
	"image"
	"image/color"
	"io"

	"github.com/spakin/netpbm"

	"github.com/talgya/deformations/internal/grid"
)

// WriteFunction dumps an implicit function to <name>.pgm, values rescaled
// linearly from [min, max] to [0, 255]. Row 0 of the image is the top row
// of the domain.
func WriteFunction(f *grid.Field, name string) (Artifact, error) {
	img := FunctionImage(f)
	path := name + ".pgm"
	n, err := writeFile(path, func(w io.Writer) error {
		return netpbm.Encode(w, img, &netpbm.EncodeOptions{
			Format:   netpbm.PGM,
			MaxValue: 255,
		})
	})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Bytes: n}, nil
}

// FunctionImage renders f as a grayscale image. A constant field is mid-gray.
func FunctionImage(f *grid.Field) *image.Gray {
	d := f.Domain()
	w, h := d.Width(), d.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	lo, hi := f.Range()
	span := hi - lo
	for i, v := range f.Values() {
		g := 0.5
		if span > 0 {
			g = (v - lo) / span
		}
		x, y := i%w, i/w
		img.SetGray(x, h-1-y, color.Gray{Y: uint8(g*255 + 0.5)})
	}
	return img
}
