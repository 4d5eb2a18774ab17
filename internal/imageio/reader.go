// Package imageio imports binary shapes from image files.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/talgya/deformations/internal/grid"
)

// Decode reads an image in any registered format. Netpbm files are
// recognized by extension.
func Decode(r io.Reader, name string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pbm", ".pgm", ".ppm", ".pnm", ".pam":
		img, err := netpbm.Decode(r, &netpbm.DecodeOptions{Target: netpbm.PGM})
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return img, nil
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// LoadLabels reads path and converts it to a label image on the domain
// (0,0)..(w-1,h-1): pixels with nonzero gray level are foreground (1),
// others background (0). Image row 0 is the top of the domain.
func LoadLabels(path string) (*grid.Labels, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, err := Decode(file, path)
	if err != nil {
		return nil, err
	}
	return Labels(img)
}

// Labels converts img to a binary label image.
func Labels(img image.Image) (*grid.Labels, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	d, err := grid.NewDomain(grid.Pt(0, 0), grid.Pt(b.Dx()-1, b.Dy()-1))
	if err != nil {
		return nil, err
	}
	labels := grid.NewLabels(d)
	h := b.Dy()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			g := color.Gray16Model.Convert(img.At(px, py)).(color.Gray16)
			if g.Y != 0 {
				labels.Set(grid.Pt(px-b.Min.X, h-1-(py-b.Min.Y)), 1)
			}
		}
	}
	return labels, nil
}
