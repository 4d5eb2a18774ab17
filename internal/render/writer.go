// Package render writes snapshots of an evolving interface: PNG images
// (raster) or SVG drawings (vector) of the domain and its iso-contour, and
// PGM dumps of implicit functions.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/talgya/deformations/internal/grid"
)

// Artifact describes one written snapshot.
type Artifact struct {
	Path     string
	Bytes    int64
	Contours int
	Length   float64
}

// Writer serializes a field snapshot to <name><extension>.
type Writer interface {
	Write(f *grid.Field, name string) (Artifact, error)
	Extension() string
}

// Options tunes artifact output.
type Options struct {
	Threshold float64 // iso-value of the interface
	Scale     int     // raster pixels per grid point
	Smooth    float64 // vector simplification accuracy, 0 = raw polylines
}

// Name returns the artifact basename for a sequence number: basename
// followed by the 4-digit zero-padded sequence.
func Name(basename string, seq int) string {
	return fmt.Sprintf("%s%04d", basename, seq)
}

// countingWriter counts bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeFile creates path, streams encode into it and closes it.
func writeFile(path string, encode func(io.Writer) error) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	cw := &countingWriter{w: file}
	if err := encode(cw); err != nil {
		file.Close()
		return cw.n, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return cw.n, fmt.Errorf("close %s: %w", path, err)
	}
	return cw.n, nil
}
