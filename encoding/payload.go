package encoding

import (
	"fmt"
	"io"
	"iter"
	"unsafe"

	"github.com/arloliu/npyexport/element"
)

// Indexed is a random-access element source.
//
// At must return a stable pointer for every index in [0, Len()).
type Indexed[E any] interface {
	Len() int
	At(i int) *E
}

// Path identifies how a payload was written.
type Path uint8

const (
	PathNone       Path = iota // PathNone means nothing was written.
	PathBulk                   // PathBulk means one write for the whole payload.
	PathElement                // PathElement means one write per element.
	PathCoordinate             // PathCoordinate means one write per coordinate.
)

func (p Path) String() string {
	switch p {
	case PathBulk:
		return "Bulk"
	case PathElement:
		return "Element"
	case PathCoordinate:
		return "Coordinate"
	default:
		return "None"
	}
}

// sliceSource adapts a slice to Indexed.
type sliceSource[E any] []E

func (s sliceSource[E]) Len() int    { return len(s) }
func (s sliceSource[E]) At(i int) *E { return &s[i] }

// PayloadWriter writes element coordinates to an io.Writer.
type PayloadWriter[E any, S element.Scalar] struct {
	w        io.Writer
	desc     element.Descriptor[E, S]
	written  int64
	elements int
}

// NewPayloadWriter creates a payload writer for desc.
//
// The descriptor is assumed valid; callers validate it before writing the header.
func NewPayloadWriter[E any, S element.Scalar](w io.Writer, desc element.Descriptor[E, S]) *PayloadWriter[E, S] {
	return &PayloadWriter[E, S]{w: w, desc: desc}
}

// Written returns the number of payload bytes accepted by the sink so far.
func (pw *PayloadWriter[E, S]) Written() int64 {
	return pw.written
}

// Elements returns the number of elements fully written so far.
func (pw *PayloadWriter[E, S]) Elements() int {
	return pw.elements
}

// WriteSlice writes every element of elems in order.
//
// Parameters:
//   - elems: Elements to write
//
// Returns:
//   - Path: The write path used, PathNone for an empty slice
//   - error: The wrapped sink error, if any
func (pw *PayloadWriter[E, S]) WriteSlice(elems []E) (Path, error) {
	return pw.WriteIndexed(sliceSource[E](elems))
}

// WriteIndexed writes src.At(0) through src.At(src.Len()-1) in order.
//
// A single bulk write is used when the layout is Contiguous and At(i) is
// exactly i element sizes past At(0) for every index.
//
// Parameters:
//   - src: Random-access element source
//
// Returns:
//   - Path: The write path used, PathNone for an empty source
//   - error: The wrapped sink error, if any
func (pw *PayloadWriter[E, S]) WriteIndexed(src Indexed[E]) (Path, error) {
	n := src.Len()
	if n == 0 {
		return PathNone, nil
	}

	first := src.At(0)
	layout := element.Classify(pw.desc, first)
	if layout == element.Contiguous && adjacent(src) {
		total := n * pw.desc.BlockSize()
		buf := unsafe.Slice((*byte)(unsafe.Pointer(pw.desc.Access(first, 0))), total)
		if err := pw.write(buf); err != nil {
			return PathBulk, err
		}
		pw.elements += n

		return PathBulk, nil
	}

	path := pathFor(layout)
	for i := range n {
		if err := pw.writeElement(layout, src.At(i)); err != nil {
			return path, err
		}
	}

	return path, nil
}

// WriteSeq writes every element yielded by seq, stopping at the first sink error.
//
// The layout is classified once, on the first element.
//
// Parameters:
//   - seq: Forward-only element sequence
//
// Returns:
//   - Path: PathElement, PathCoordinate, or PathNone for an empty sequence
//   - error: The wrapped sink error, if any
func (pw *PayloadWriter[E, S]) WriteSeq(seq iter.Seq[E]) (Path, error) {
	path := PathNone
	var layout element.Layout

	for e := range seq {
		if path == PathNone {
			layout = element.Classify(pw.desc, &e)
			path = pathFor(layout)
		}
		if err := pw.writeElement(layout, &e); err != nil {
			return path, err
		}
	}

	return path, nil
}

func (pw *PayloadWriter[E, S]) writeElement(layout element.Layout, e *E) error {
	if layout == element.Contiguous {
		if err := pw.write(element.Block(pw.desc, e)); err != nil {
			return err
		}
		pw.elements++

		return nil
	}

	for i := range pw.desc.Dimensions {
		if err := pw.write(element.Bytes(pw.desc.Access(e, i))); err != nil {
			return err
		}
	}
	pw.elements++

	return nil
}

func (pw *PayloadWriter[E, S]) write(b []byte) error {
	n, err := pw.w.Write(b)
	pw.written += int64(n)
	if err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("write payload: %w", io.ErrShortWrite)
	}

	return nil
}

func pathFor(layout element.Layout) Path {
	if layout == element.Contiguous {
		return PathElement
	}

	return PathCoordinate
}

// adjacent reports whether every element of src sits exactly one element
// size after the previous one, so the whole source is one run of memory.
func adjacent[E any](src Indexed[E]) bool {
	var e E
	size := unsafe.Sizeof(e)
	base := uintptr(unsafe.Pointer(src.At(0)))
	for i := 1; i < src.Len(); i++ {
		if uintptr(unsafe.Pointer(src.At(i))) != base+uintptr(i)*size {
			return false
		}
	}

	return true
}
