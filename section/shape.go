package section

import (
	"fmt"
	"strconv"

	"github.com/arloliu/npyexport/errs"
)

// Shape is the logical array dimensions recorded in the header.
//
// The exporter never checks a shape against the number of elements written.
type Shape []int

// InferShape returns the shape used when the caller gives none:
// (count,) for scalar elements and (count, dimensions) otherwise.
func InferShape(count, dimensions int) Shape {
	if dimensions == 1 {
		return Shape{count}
	}

	return Shape{count, dimensions}
}

// Validate checks that the shape has at least one entry and no negative entries.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: zero dimensions", errs.ErrInvalidShape)
	}
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("%w: dimension %d is negative (%d)", errs.ErrInvalidShape, i, d)
		}
	}

	return nil
}

// Size returns the product of all dimensions.
func (s Shape) Size() int {
	if len(s) == 0 {
		return 0
	}

	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// AppendTuple appends the Python tuple text of the shape to b.
// A single entry keeps its trailing comma, "(42,)"; longer shapes do not, "(3, 4)".
func (s Shape) AppendTuple(b []byte) []byte {
	b = append(b, '(')
	for i, d := range s {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = strconv.AppendInt(b, int64(d), 10)
	}
	if len(s) == 1 {
		b = append(b, ',')
	}

	return append(b, ')')
}

// String returns the Python tuple text of the shape.
func (s Shape) String() string {
	return string(s.AppendTuple(nil))
}
