// Package npyexport writes in-memory arrays as NumPy .npy streams.
//
// An export is a header followed by the raw payload, written once each, in
// that order, to any io.Writer. The header records the scalar dtype, the
// payload byte order, the fortran_order flag and the array shape; the payload
// is every coordinate of every element in native byte order with no padding
// or separators.
//
// # Basic Usage
//
// Exporting a slice of scalars:
//
//	import "github.com/arloliu/npyexport"
//
//	var buf bytes.Buffer
//	res, err := npyexport.ExportScalars(&buf, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 0})
//	// buf: {'descr': '<i4', 'fortran_order': False, 'shape': (10,)} + 40 bytes
//
// Exporting a matrix with an explicit shape:
//
//	values := make([]float32, 16)
//	res, err := npyexport.ExportScalars(&buf, values, npyexport.WithShape(4, 4))
//
// Exporting a struct through a descriptor:
//
//	type point3 struct{ X, Y, Z float32 }
//
//	res, err := npyexport.Export(&buf, points, element.Packed[point3, float32](3))
//	// shape: (len(points), 3)
//
// # Package Structure
//
// The root package wires together the building blocks:
//
//   - endian: byte-order strategies and little-endian conversion
//   - element: descriptors mapping an element type onto scalar coordinates
//   - format: dtypes and format versions
//   - section: header construction
//   - encoding: payload writing
//   - compress: optional streaming compression of the output sink
package npyexport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/arloliu/npyexport/element"
	"github.com/arloliu/npyexport/encoding"
	"github.com/arloliu/npyexport/errs"
	"github.com/arloliu/npyexport/format"
	"github.com/arloliu/npyexport/internal/hash"
	"github.com/arloliu/npyexport/internal/options"
	"github.com/arloliu/npyexport/internal/pool"
	"github.com/arloliu/npyexport/section"
)

// Result describes a completed export.
type Result struct {
	// Version is the format version of the header.
	Version format.Version
	// DType is the scalar dtype recorded in the header.
	DType format.DType
	// Shape is the shape recorded in the header.
	Shape section.Shape
	// HeaderSize is the header length in bytes, a multiple of 16.
	HeaderSize int
	// PayloadSize is the number of payload bytes written.
	PayloadSize int64
	// Elements is the number of elements written.
	Elements int
	// Path is the payload write path.
	Path encoding.Path
	// Checksum is the xxHash64 of header and payload; zero unless WithChecksum is set.
	Checksum uint64
}

// TotalSize returns the number of bytes written to the sink.
func (r Result) TotalSize() int64 {
	return int64(r.HeaderSize) + r.PayloadSize
}

// Export writes elems as an npy stream to w.
//
// Parameters:
//   - w: Output sink
//   - elems: Elements to write, in order
//   - desc: Descriptor mapping each element onto scalar coordinates
//   - opts: Export options (shape, fortran order, byte order, logger, checksum)
//
// Returns:
//   - Result: Header and payload statistics
//   - error: A contract violation, ErrUnknownEndianness, or the wrapped sink error
//
// Nothing is written when the options, the descriptor or the header are invalid.
// A sink error aborts the export; bytes already written are not rolled back.
func Export[E any, S element.Scalar](w io.Writer, elems []E, desc element.Descriptor[E, S], opts ...ExportOption) (Result, error) {
	return run(w, desc, opts,
		func() int { return len(elems) },
		func(pw *encoding.PayloadWriter[E, S]) (encoding.Path, error) {
			return pw.WriteSlice(elems)
		},
	)
}

// ExportScalars writes a slice of bare scalars. It is Export with element.ScalarOf.
func ExportScalars[S element.Scalar](w io.Writer, values []S, opts ...ExportOption) (Result, error) {
	return Export(w, values, element.ScalarOf[S](), opts...)
}

// ExportIndexed writes every element of a random-access source, such as a view
// over a larger buffer. The payload is written in one call when the elements
// turn out to be adjacent in memory.
func ExportIndexed[E any, S element.Scalar](w io.Writer, src encoding.Indexed[E], desc element.Descriptor[E, S], opts ...ExportOption) (Result, error) {
	return run(w, desc, opts,
		src.Len,
		func(pw *encoding.PayloadWriter[E, S]) (encoding.Path, error) {
			return pw.WriteIndexed(src)
		},
	)
}

// ExportSeq writes every element yielded by seq.
//
// Without WithShape, seq is iterated twice: once to count the elements and
// once to write them. It must yield the same elements both times.
func ExportSeq[E any, S element.Scalar](w io.Writer, seq iter.Seq[E], desc element.Descriptor[E, S], opts ...ExportOption) (Result, error) {
	return run(w, desc, opts,
		func() int {
			n := 0
			for range seq {
				n++
			}

			return n
		},
		func(pw *encoding.PayloadWriter[E, S]) (encoding.Path, error) {
			return pw.WriteSeq(seq)
		},
	)
}

// ExportToFile creates the named file and exports elems into it through a
// buffered writer. On failure the partially written file is left in place.
func ExportToFile[E any, S element.Scalar](name string, elems []E, desc element.Descriptor[E, S], opts ...ExportOption) (res Result, err error) {
	f, err := os.Create(name)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	res, err = Export(bw, elems, desc, opts...)
	if err != nil {
		return res, err
	}
	if err := bw.Flush(); err != nil {
		return res, fmt.Errorf("flush %s: %w", name, err)
	}

	return res, nil
}

// run validates the export, writes the header, then hands the payload writer to write.
func run[E any, S element.Scalar](
	w io.Writer,
	desc element.Descriptor[E, S],
	opts []ExportOption,
	count func() int,
	write func(*encoding.PayloadWriter[E, S]) (encoding.Path, error),
) (Result, error) {
	cfg := newExportConfig()
	err := options.Apply(cfg, opts...)
	if err != nil {
		return Result{}, err
	}
	log := cfg.logger

	if err = desc.Validate(); err != nil {
		log.Error("export rejected", "stage", "descriptor", "error", err)
		return Result{}, err
	}

	shape := cfg.shape
	if shape == nil {
		shape = section.InferShape(count(), desc.Dimensions)
	}
	res := Result{DType: desc.DType(), Shape: shape}

	buf := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(buf)

	var info section.HeaderInfo
	buf.B, info, err = section.AppendHeader(buf.B[:0], res.DType, cfg.strategy, shape, cfg.fortranOrder)
	if err != nil {
		log.Error("export rejected", "stage", "header", "error", err)
		return Result{}, err
	}
	res.Version = info.Version
	res.HeaderSize = info.HeaderSize

	log.Debug("header built",
		"version", info.Version.String(),
		"descr", res.DType.Descr(),
		"shape", shape.String(),
		"header_size", info.HeaderSize,
		"padding", info.Padding,
	)

	var digest *hash.Digest
	sink := w
	if cfg.checksum {
		digest = hash.NewDigest(w)
		sink = digest
	}

	if err = writeHeader(sink, buf); err != nil {
		log.Error("export failed", "stage", "header", "error", err)
		return res, err
	}

	pw := encoding.NewPayloadWriter(sink, desc)
	res.Path, err = write(pw)
	res.PayloadSize = pw.Written()
	res.Elements = pw.Elements()
	if digest != nil {
		res.Checksum = digest.Sum64()
	}
	if err != nil {
		log.Error("export failed", "stage", "payload", "path", res.Path.String(), "written", res.PayloadSize, "error", err)
		return res, err
	}

	log.Debug("payload written",
		"path", res.Path.String(),
		"elements", res.Elements,
		"bytes", res.PayloadSize,
	)

	return res, nil
}

func writeHeader(w io.Writer, hdr *pool.ByteBuffer) error {
	n, err := hdr.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if n != int64(hdr.Len()) {
		return fmt.Errorf("write header: %w", io.ErrShortWrite)
	}

	return nil
}

// IsContractViolation reports whether err is a caller contract violation:
// an invalid shape, descriptor or byte order.
func IsContractViolation(err error) bool {
	return errors.Is(err, errs.ErrContractViolation)
}
