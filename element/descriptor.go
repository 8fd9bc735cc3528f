// Package element describes how the exporter sees an element as N scalar coordinates.
//
// Every element type written to an array needs a Descriptor: the number of
// coordinates per element and an accessor returning a pointer to each one.
// Bare scalars use ScalarOf; fixed-size arrays and packed structs can use Packed;
// anything else supplies its own accessor:
//
//	type point3 struct{ X, Y, Z float32 }
//
//	desc := element.Descriptor[point3, float32]{
//	    Dimensions: 3,
//	    Access: func(p *point3, i int) *float32 {
//	        switch i {
//	        case 0:
//	            return &p.X
//	        case 1:
//	            return &p.Y
//	        default:
//	            return &p.Z
//	        }
//	    },
//	}
//
// The accessor must return a stable pointer into *e for every index in
// [0, Dimensions). Indices outside that range are a programming error.
package element

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/npyexport/errs"
	"github.com/arloliu/npyexport/format"
)

// Scalar is the set of arithmetic types that can be stored in an array payload.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Descriptor maps an element type E onto Dimensions coordinates of scalar type S.
type Descriptor[E any, S Scalar] struct {
	// Dimensions is the number of scalar coordinates per element. Must be positive.
	Dimensions int
	// Access returns a pointer to coordinate i of *e, for 0 <= i < Dimensions.
	Access func(e *E, i int) *S
}

// Validate checks the descriptor invariants.
//
// Returns:
//   - error: ErrInvalidDescriptor if Dimensions is not positive or Access is nil
func (d Descriptor[E, S]) Validate() error {
	if d.Dimensions <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %d", errs.ErrInvalidDescriptor, d.Dimensions)
	}
	if d.Access == nil {
		return fmt.Errorf("%w: nil accessor", errs.ErrInvalidDescriptor)
	}

	return nil
}

// DType returns the dtype of the scalar type S.
func (d Descriptor[E, S]) DType() format.DType {
	dt, _ := format.DTypeOf[S]()
	return dt
}

// ScalarSize returns the size in bytes of one coordinate.
func (d Descriptor[E, S]) ScalarSize() int {
	var s S
	return int(unsafe.Sizeof(s))
}

// ElementSize returns the in-memory size in bytes of one element.
func (d Descriptor[E, S]) ElementSize() int {
	var e E
	return int(unsafe.Sizeof(e))
}

// BlockSize returns the payload size in bytes of one element.
func (d Descriptor[E, S]) BlockSize() int {
	return d.ScalarSize() * d.Dimensions
}

// ScalarOf returns the descriptor of a bare scalar: one coordinate, the value itself.
func ScalarOf[S Scalar]() Descriptor[S, S] {
	return Descriptor[S, S]{
		Dimensions: 1,
		Access:     scalarAccess[S],
	}
}

func scalarAccess[S Scalar](e *S, _ int) *S {
	return e
}

// Packed returns a descriptor for an element type laid out as exactly n
// consecutive S values, such as [3]float32 or struct{ X, Y, Z float64 }.
//
// Packed panics if n is not positive or if the size of E is not n times the
// size of S. The returned accessor panics on an index outside [0, n).
func Packed[E any, S Scalar](n int) Descriptor[E, S] {
	var (
		e E
		s S
	)
	scalarSize := unsafe.Sizeof(s)
	if n <= 0 || unsafe.Sizeof(e) != scalarSize*uintptr(n) {
		panic(fmt.Sprintf("element: packed descriptor needs sizeof(E) == %d*%d, got %d",
			n, scalarSize, unsafe.Sizeof(e)))
	}

	return Descriptor[E, S]{
		Dimensions: n,
		Access: func(e *E, i int) *S {
			if i < 0 || i >= n {
				panic(fmt.Sprintf("element: coordinate index %d out of range [0, %d)", i, n))
			}

			return (*S)(unsafe.Add(unsafe.Pointer(e), uintptr(i)*scalarSize))
		},
	}
}
