package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"

	"github.com/talgya/deformations/internal/grid"
)

// testImage is 4x3 with a foreground pixel at the top-left corner and one
// at the bottom-right.
func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(3, 2, color.Gray{Y: 10})
	return img
}

func checkLabels(t *testing.T, path string) {
	t.Helper()
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatal(err)
	}
	d := labels.Domain()
	if d.Width() != 4 || d.Height() != 3 {
		t.Fatalf("domain %v, want 4x3", d)
	}
	if n := labels.CountAbove(0); n != 2 {
		t.Errorf("foreground count = %d, want 2", n)
	}
	// Top-left pixel lands on the highest row of the domain.
	if labels.Get(grid.Pt(0, 2)) != 1 || labels.Get(grid.Pt(3, 0)) != 1 {
		t.Error("foreground pixels ended up in the wrong place")
	}
}

func writeWith(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := encode(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLabelsPNG(t *testing.T) {
	path := writeWith(t, "shape.png", func(f *os.File) error { return png.Encode(f, testImage()) })
	checkLabels(t, path)
}

func TestLoadLabelsBMP(t *testing.T) {
	path := writeWith(t, "shape.bmp", func(f *os.File) error { return bmp.Encode(f, testImage()) })
	checkLabels(t, path)
}

func TestLoadLabelsPGM(t *testing.T) {
	path := writeWith(t, "shape.pgm", func(f *os.File) error {
		return netpbm.Encode(f, testImage(), &netpbm.EncodeOptions{Format: netpbm.PGM, MaxValue: 255})
	})
	checkLabels(t, path)
}

func TestLoadLabelsMissing(t *testing.T) {
	if _, err := LoadLabels(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadLabelsGarbage(t *testing.T) {
	path := writeWith(t, "junk.png", func(f *os.File) error {
		_, err := f.WriteString("not an image")
		return err
	})
	if _, err := LoadLabels(path); err == nil {
		t.Fatal("expected decode error")
	}
}
