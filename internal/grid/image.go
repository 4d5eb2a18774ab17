package grid

import "fmt"

// Number is the set of value types an Image can hold.
type Number interface {
	~int16 | ~int32 | ~float32 | ~float64
}

// Image is a dense value buffer over a Domain.
type Image[T Number] struct {
	domain Domain
	values []T
}

// Field is an implicit function over a domain.
type Field = Image[float64]

// Labels is a label image (0 = background, nonzero = foreground).
type Labels = Image[int16]

// NewImage allocates a zero-valued image over d.
func NewImage[T Number](d Domain) *Image[T] {
	return &Image[T]{domain: d, values: make([]T, d.Size())}
}

// NewField allocates a zero-valued implicit function over d.
func NewField(d Domain) *Field { return NewImage[float64](d) }

// NewLabels allocates an all-background label image over d.
func NewLabels(d Domain) *Labels { return NewImage[int16](d) }

// FromValues wraps values as an image over d. The slice is used directly.
func FromValues[T Number](d Domain, values []T) (*Image[T], error) {
	if len(values) != d.Size() {
		return nil, fmt.Errorf("image values: got %d, domain has %d points", len(values), d.Size())
	}
	return &Image[T]{domain: d, values: values}, nil
}

// Domain returns the image's domain.
func (im *Image[T]) Domain() Domain { return im.domain }

// Len returns the number of values.
func (im *Image[T]) Len() int { return len(im.values) }

// Values exposes the backing buffer in row-major order.
func (im *Image[T]) Values() []T { return im.values }

// Get returns the value at p. It panics if p is outside the domain.
func (im *Image[T]) Get(p Point) T {
	if !im.domain.Contains(p) {
		panic(fmt.Sprintf("grid: point %v outside %v", p, im.domain))
	}
	return im.values[im.domain.Index(p)]
}

// Set stores v at p. It panics if p is outside the domain.
func (im *Image[T]) Set(p Point, v T) {
	if !im.domain.Contains(p) {
		panic(fmt.Sprintf("grid: point %v outside %v", p, im.domain))
	}
	im.values[im.domain.Index(p)] = v
}

// At returns the value at a row-major offset.
func (im *Image[T]) At(idx int) T { return im.values[idx] }

// SetAt stores v at a row-major offset.
func (im *Image[T]) SetAt(idx int, v T) { im.values[idx] = v }

// Clamped returns the value at (x, y) with coordinates clamped to the domain,
// which gives replicated (Neumann) borders.
func (im *Image[T]) Clamped(x, y int) T {
	lo, up := im.domain.lower, im.domain.upper
	x = min(max(x, lo.X), up.X)
	y = min(max(y, lo.Y), up.Y)
	return im.values[(y-lo.Y)*im.domain.Width()+(x-lo.X)]
}

// Fill sets every value to v.
func (im *Image[T]) Fill(v T) {
	for i := range im.values {
		im.values[i] = v
	}
}

// Map replaces every value v with fn(v).
func (im *Image[T]) Map(fn func(T) T) {
	for i, v := range im.values {
		im.values[i] = fn(v)
	}
}

// Clone returns a deep copy.
func (im *Image[T]) Clone() *Image[T] {
	values := make([]T, len(im.values))
	copy(values, im.values)
	return &Image[T]{domain: im.domain, values: values}
}

// CopyFrom overwrites im with the values of src. Both must share a domain.
func (im *Image[T]) CopyFrom(src *Image[T]) {
	if src.domain != im.domain {
		panic(fmt.Sprintf("grid: copy between %v and %v", src.domain, im.domain))
	}
	copy(im.values, src.values)
}

// Sum returns the sum of all values.
func (im *Image[T]) Sum() float64 {
	s := 0.0
	for _, v := range im.values {
		s += float64(v)
	}
	return s
}

// CountAbove returns the number of values strictly greater than threshold.
func (im *Image[T]) CountAbove(threshold float64) int {
	n := 0
	for _, v := range im.values {
		if float64(v) > threshold {
			n++
		}
	}
	return n
}

// Range returns the minimum and maximum values.
func (im *Image[T]) Range() (lo, hi T) {
	if len(im.values) == 0 {
		return 0, 0
	}
	lo, hi = im.values[0], im.values[0]
	for _, v := range im.values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
