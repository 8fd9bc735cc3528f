// Package compress wraps an output sink with streaming compression.
//
// An npy stream is written once, front to back, so compression is applied to
// the sink rather than to buffered payloads. The exporter itself never imports
// this package; callers stack it between the exporter and the destination:
//
//	f, _ := os.Create("points.npy.zst")
//	zw, err := compress.NewWriter(f, format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	if _, err := npyexport.Export(zw, points, desc); err != nil {
//	    return err
//	}
//	if err := zw.Close(); err != nil { // flushes the final frame
//	    return err
//	}
//	fmt.Println(zw.Stats().SpaceSavings())
//
// # Algorithms
//
//   - CompressionNone: bytes pass through unchanged
//   - CompressionZstd: Zstandard frames (github.com/klauspost/compress/zstd)
//   - CompressionS2: S2 stream format, Snappy-compatible framing (github.com/klauspost/compress/s2)
//   - CompressionLZ4: LZ4 frame format (github.com/pierrec/lz4/v4)
//
// Closing a Writer flushes the compressor but never closes the underlying sink.
package compress
