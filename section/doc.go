// Package section defines the binary header layout of the npy array format.
//
// This package builds the header that precedes every array payload: the magic
// prefix, the format version, the header length field, the dictionary text
// describing dtype, memory order and shape, and the space padding that aligns
// the payload.
//
// # File Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Magic (6 bytes): 0x93 'N' 'U' 'M' 'P' 'Y'               │
//	├─────────────────────────────────────────────────────────┤
//	│ Version (2 bytes): major (1 or 2), minor (0)            │
//	├─────────────────────────────────────────────────────────┤
//	│ Header length (uint16 for v1, uint32 for v2, LE)        │
//	├─────────────────────────────────────────────────────────┤
//	│ Dictionary text (ASCII)                                 │
//	│  {'descr': '<f4', 'fortran_order': False, 'shape': (3,)}│
//	├─────────────────────────────────────────────────────────┤
//	│ Padding (spaces) + '\n'                                 │
//	│  - header total is a multiple of 16 bytes               │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (raw scalars)                                   │
//	└─────────────────────────────────────────────────────────┘
//
// The header length field counts the dictionary, the padding and the newline.
// Integers in the header are little-endian regardless of the payload byte order.
//
// # Version Selection
//
// Version 1.0 is used whenever the header fits the 16-bit length field, which
// covers every realistic shape. Version 2.0 is only selected for dictionaries of
// 65535 bytes or more, or when padding would push a version 1.0 header past
// the 16-bit limit.
//
// # Example
//
//	dt, _ := format.DTypeOf[int32]()
//	h, err := section.BuildHeader(dt, endian.Runtime(), section.Shape{10}, false)
//	if err != nil {
//	    return err
//	}
//	_, err = h.WriteTo(w)
package section
