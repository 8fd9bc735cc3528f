package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/npyexport/errs"
	"github.com/arloliu/npyexport/format"
)

// Stats reports the amount of data passed through a Writer.
type Stats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType
	// OriginalSize is the number of bytes written to the Writer.
	OriginalSize int64
	// CompressedSize is the number of bytes written to the underlying sink.
	CompressedSize int64
}

// CompressionRatio returns CompressedSize / OriginalSize, or 0 when nothing was written.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// countingWriter counts the bytes accepted by the underlying sink.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

type passthrough struct {
	io.Writer
}

func (passthrough) Close() error { return nil }

// Writer compresses everything written to it into an underlying sink.
type Writer struct {
	algo   format.CompressionType
	sink   *countingWriter
	enc    io.WriteCloser
	in     int64
	closed bool
}

var _ io.WriteCloser = (*Writer)(nil)

// NewWriter creates a compressing writer on top of w.
//
// Parameters:
//   - w: Destination sink
//   - algo: Compression algorithm
//
// Returns:
//   - *Writer: The compressing writer; Close must be called to flush it
//   - error: ErrInvalidCompression for an unsupported algorithm
func NewWriter(w io.Writer, algo format.CompressionType) (*Writer, error) {
	sink := &countingWriter{w: w}

	var enc io.WriteCloser
	switch algo {
	case format.CompressionNone:
		enc = passthrough{sink}
	case format.CompressionZstd:
		zw, err := zstd.NewWriter(sink, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("create zstd writer: %w", err)
		}
		enc = zw
	case format.CompressionS2:
		enc = s2.NewWriter(sink, s2.WriterConcurrency(1))
	case format.CompressionLZ4:
		enc = lz4.NewWriter(sink)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, algo)
	}

	return &Writer{algo: algo, sink: sink, enc: enc}, nil
}

// Write compresses p into the sink.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("%s writer: %w", w.algo, io.ErrClosedPipe)
	}

	n, err := w.enc.Write(p)
	w.in += int64(n)
	if err != nil {
		return n, fmt.Errorf("%s writer: %w", w.algo, err)
	}

	return n, nil
}

// Close flushes any buffered data and the frame trailer. The sink stays open.
// Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("close %s writer: %w", w.algo, err)
	}

	return nil
}

// Algorithm returns the compression algorithm of the writer.
func (w *Writer) Algorithm() format.CompressionType {
	return w.algo
}

// Stats returns the bytes written so far. CompressedSize is final only after Close.
func (w *Writer) Stats() Stats {
	return Stats{
		Algorithm:      w.algo,
		OriginalSize:   w.in,
		CompressedSize: w.sink.n,
	}
}

// NewReader creates a decompressing reader for a stream written by NewWriter.
//
// Returns ErrInvalidCompression for an unsupported algorithm.
func NewReader(r io.Reader, algo format.CompressionType) (io.ReadCloser, error) {
	switch algo {
	case format.CompressionNone:
		return io.NopCloser(r), nil
	case format.CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}

		return zr.IOReadCloser(), nil
	case format.CompressionS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case format.CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, algo)
	}
}

// Extension returns the conventional file suffix for algo, such as ".zst".
func Extension(algo format.CompressionType) string {
	switch algo {
	case format.CompressionZstd:
		return ".zst"
	case format.CompressionS2:
		return ".s2"
	case format.CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}
