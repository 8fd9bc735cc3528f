package element

import "unsafe"

// Layout classifies how an element's coordinates sit in memory.
type Layout uint8

const (
	// Strided means coordinates must be copied one at a time through the accessor.
	Strided Layout = iota
	// Contiguous means an element is exactly Dimensions packed scalars in
	// ascending index order, so its bytes can be copied as one block.
	Contiguous
)

func (l Layout) String() string {
	if l == Contiguous {
		return "Contiguous"
	}

	return "Strided"
}

// SizeMatches reports whether one element occupies exactly ScalarSize*Dimensions bytes.
func (d Descriptor[E, S]) SizeMatches() bool {
	return d.ElementSize() == d.BlockSize()
}

// Classify returns the storage layout of the descriptor, probing the accessor on sample.
//
// The layout is Contiguous only when the sizes match and Access(sample, i)
// points exactly i*ScalarSize bytes past the start of *sample for every
// coordinate. A nil sample yields Strided.
func Classify[E any, S Scalar](d Descriptor[E, S], sample *E) Layout {
	if sample == nil || d.Access == nil || d.Dimensions <= 0 || !d.SizeMatches() {
		return Strided
	}

	base := uintptr(unsafe.Pointer(sample))
	scalarSize := uintptr(d.ScalarSize())
	for i := range d.Dimensions {
		p := d.Access(sample, i)
		if p == nil || uintptr(unsafe.Pointer(p)) != base+uintptr(i)*scalarSize {
			return Strided
		}
	}

	return Contiguous
}

// Block returns the raw bytes of the coordinate block of *e.
// It must only be called for descriptors classified Contiguous.
func Block[E any, S Scalar](d Descriptor[E, S], e *E) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(d.Access(e, 0))), d.BlockSize())
}

// Bytes returns the raw bytes of a single coordinate.
func Bytes[S Scalar](s *S) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(s)), unsafe.Sizeof(*s))
}
