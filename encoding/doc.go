// Package encoding writes the raw array payload that follows an npy header.
//
// A PayloadWriter streams elements to an io.Writer as native-order scalars,
// element by element and coordinate by coordinate, with no separators or
// padding. It picks one of three write paths per call:
//
//   - PathBulk: the source is a contiguous run of elements whose layout is
//     Contiguous, so the whole payload goes out in a single Write.
//   - PathElement: the layout is Contiguous but the elements are not adjacent
//     in memory (an Indexed view or an iter.Seq), so each element block is
//     written on its own.
//   - PathCoordinate: the layout is Strided, so every coordinate is written
//     separately in accessor index order.
//
// All three paths produce byte-identical output for the same element values.
//
// # Usage
//
//	pw := encoding.NewPayloadWriter(w, element.ScalarOf[int32]())
//	path, err := pw.WriteSlice([]int32{1, 2, 3})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(path, pw.Written()) // Bulk 12
//
// # Thread Safety
//
// A PayloadWriter is not safe for concurrent use.
package encoding
