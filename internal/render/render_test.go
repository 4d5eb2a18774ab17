package render

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spakin/netpbm"

	"github.com/talgya/deformations/internal/grid"
)

func coneField(t *testing.T, size int, radius float64) *grid.Field {
	t.Helper()
	d, err := grid.SquareDomain(size)
	if err != nil {
		t.Fatal(err)
	}
	f := grid.NewField(d)
	c := float64(size) / 2
	d.Points(func(i int, p grid.Point) {
		f.SetAt(i, radius-math.Hypot(float64(p.X)-c, float64(p.Y)-c))
	})
	return f
}

func TestContoursCircle(t *testing.T) {
	f := coneField(t, 40, 12)
	cs := Contours(f, 0)
	if len(cs) != 1 {
		t.Fatalf("got %d contours, want 1", len(cs))
	}
	if !cs[0].Closed {
		t.Fatal("circle contour should be closed")
	}
	want := 2 * math.Pi * 12
	if got := Length(cs); math.Abs(got-want) > 0.02*want {
		t.Errorf("length = %v, want ~%v", got, want)
	}
	if area := math.Abs(cs[0].Path().SignedArea()); math.Abs(area-math.Pi*144) > 0.03*math.Pi*144 {
		t.Errorf("enclosed area = %v, want ~%v", area, math.Pi*144)
	}
}

func TestContoursOpenAtBorder(t *testing.T) {
	d, _ := grid.SquareDomain(10)
	f := grid.NewField(d)
	d.Points(func(i int, p grid.Point) { f.SetAt(i, float64(p.X)-5.5) })
	cs := Contours(f, 0)
	if len(cs) != 1 {
		t.Fatalf("got %d contours, want 1", len(cs))
	}
	if cs[0].Closed {
		t.Error("half-plane contour should be open")
	}
	for _, pt := range cs[0].Points {
		if math.Abs(pt.X-5.5) > 1e-12 {
			t.Fatalf("crossing at x=%v, want 5.5", pt.X)
		}
	}
	if got := Length(cs); math.Abs(got-10) > 1e-9 {
		t.Errorf("length = %v, want 10", got)
	}
}

func TestContoursEmpty(t *testing.T) {
	d, _ := grid.SquareDomain(8)
	f := grid.NewField(d)
	f.Fill(-1)
	if cs := Contours(f, 0); len(cs) != 0 {
		t.Errorf("got %d contours on a uniform field", len(cs))
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		base string
		seq  int
		want string
	}{
		{"interface", 1, "interface0001"},
		{"out/run", 42, "out/run0042"},
		{"x", 12345, "x12345"},
	}
	for _, tt := range tests {
		if got := Name(tt.base, tt.seq); got != tt.want {
			t.Errorf("Name(%q, %d) = %q, want %q", tt.base, tt.seq, got, tt.want)
		}
	}
}

func TestRasterWrite(t *testing.T) {
	f := coneField(t, 16, 5)
	name := filepath.Join(t.TempDir(), Name("interface", 1))
	art, err := Raster{Options: Options{Scale: 2}}.Write(f, name)
	if err != nil {
		t.Fatal(err)
	}
	if art.Path != name+".png" || art.Contours != 1 || art.Bytes == 0 {
		t.Errorf("unexpected artifact %+v", art)
	}
	data, err := os.ReadFile(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 17*2 || b.Dy() != 17*2 {
		t.Errorf("image size %v, want 34x34", b)
	}
}

func TestVectorWrite(t *testing.T) {
	f := coneField(t, 16, 5)
	for _, smooth := range []float64{0, 0.1} {
		name := filepath.Join(t.TempDir(), "interface0001")
		art, err := Vector{Options: Options{Scale: 1, Smooth: smooth}}.Write(f, name)
		if err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(art.Path)
		if err != nil {
			t.Fatal(err)
		}
		s := string(data)
		if !strings.HasPrefix(s, "<svg") || !strings.HasSuffix(s, "</svg>\n") {
			t.Errorf("smooth=%v: malformed document", smooth)
		}
		if strings.Count(s, "<path") != 2 {
			t.Errorf("smooth=%v: want cell and contour paths", smooth)
		}
		if art.Bytes != int64(len(data)) {
			t.Errorf("bytes = %d, file has %d", art.Bytes, len(data))
		}
	}
}

func TestWriteFunction(t *testing.T) {
	f := coneField(t, 8, 3)
	art, err := WriteFunction(f, filepath.Join(t.TempDir(), "function"))
	if err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := netpbm.Decode(file, &netpbm.DecodeOptions{Target: netpbm.PGM})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 9 || b.Dy() != 9 {
		t.Errorf("image size %v, want 9x9", b)
	}
}

func TestFunctionImageOrientation(t *testing.T) {
	d, _ := grid.SquareDomain(3)
	f := grid.NewField(d)
	d.Points(func(i int, p grid.Point) { f.SetAt(i, float64(p.Y)) })
	img := FunctionImage(f)
	if top := img.GrayAt(0, 0).Y; top != 255 {
		t.Errorf("top row = %d, want 255", top)
	}
	if bottom := img.GrayAt(0, 3).Y; bottom != 0 {
		t.Errorf("bottom row = %d, want 0", bottom)
	}
}
