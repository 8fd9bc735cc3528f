// Package endian provides the byte-order strategies used by the npy exporter.
//
// A Strategy tells the exporter which byte order the in-memory payload uses, and
// ToLittleEndian converts fixed-width integers (such as the header length field)
// to little-endian under that strategy.
//
// # Strategies
//
// Most callers should use Runtime(), which reports the native byte order detected
// once per process:
//
//	import "github.com/arloliu/npyexport/endian"
//
//	n, err := endian.ToLittleEndian(endian.Runtime(), uint16(118))
//
// When the target byte order is known at build time, Little() and Big() fix it:
//
//	n, _ := endian.ToLittleEndian(endian.Big(), uint32(0x01020304)) // always swapped
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The detection result is computed at most once and is immutable afterwards.
package endian

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"sync"
	"unsafe"

	"github.com/arloliu/npyexport/errs"
)

// ByteOrder is the byte order of a machine or of an exported payload.
type ByteOrder uint8

const (
	Unknown      ByteOrder = iota // Unknown means detection could not classify the machine.
	BigEndian                     // BigEndian stores the most significant byte first.
	LittleEndian                  // LittleEndian stores the least significant byte first.
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "BigEndian"
	case LittleEndian:
		return "LittleEndian"
	default:
		return "Unknown"
	}
}

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Engine returns the encoding/binary engine for the byte order.
//
// Returns:
//   - EndianEngine: binary.LittleEndian or binary.BigEndian
//   - error: ErrUnknownEndianness for the Unknown order
func (o ByteOrder) Engine() (EndianEngine, error) {
	switch o {
	case LittleEndian:
		return binary.LittleEndian, nil
	case BigEndian:
		return binary.BigEndian, nil
	default:
		return nil, errs.ErrUnknownEndianness
	}
}

// Integer is the set of fixed-width integer types ToLittleEndian accepts.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Strategy supplies the byte order of the data handed to the exporter.
type Strategy interface {
	CurrentEndianness() ByteOrder
}

// marker is 0x00010203; its first and last byte in memory reveal the native order.
const marker uint32 = 0x00010203

var native = sync.OnceValue(func() ByteOrder {
	v := marker
	return classify(*(*[4]byte)(unsafe.Pointer(&v)))
})

// classify maps the in-memory bytes of the marker value to a byte order.
func classify(b [4]byte) ByteOrder {
	switch {
	case b[0] == 3 && b[3] == 0:
		return LittleEndian
	case b[0] == 0 && b[3] == 3:
		return BigEndian
	default:
		return Unknown
	}
}

// Native returns the byte order of the running machine.
func Native() ByteOrder {
	return native()
}

// IsNativeLittleEndian reports whether the running machine is little-endian.
func IsNativeLittleEndian() bool {
	return Native() == LittleEndian
}

// IsNativeBigEndian reports whether the running machine is big-endian.
func IsNativeBigEndian() bool {
	return Native() == BigEndian
}

type runtimeStrategy struct {
	detect func() ByteOrder
}

func (s runtimeStrategy) CurrentEndianness() ByteOrder {
	return s.detect()
}

type fixedStrategy ByteOrder

func (s fixedStrategy) CurrentEndianness() ByteOrder {
	return ByteOrder(s)
}

// Runtime returns the strategy reporting the detected native byte order.
func Runtime() Strategy {
	return runtimeStrategy{detect: Native}
}

// Little returns a strategy fixed to little-endian. Conversions are no-ops.
//
// Fixed strategies assert the byte order of the data; on a machine of the
// other order the payload and header length field come out byte-swapped.
func Little() Strategy {
	return fixedStrategy(LittleEndian)
}

// Big returns a strategy fixed to big-endian. Conversions always swap.
// See Little for the requirement on the machine byte order.
func Big() Strategy {
	return fixedStrategy(BigEndian)
}

// ToLittleEndian converts v, held in the strategy's byte order, to little-endian.
//
// Parameters:
//   - s: Byte-order strategy describing how v is currently stored
//   - v: Fixed-width integer value
//
// Returns:
//   - T: v with its bytes reversed when the strategy is big-endian, else v
//   - error: ErrUnknownEndianness when the strategy cannot name a byte order
func ToLittleEndian[T Integer](s Strategy, v T) (T, error) {
	switch s.CurrentEndianness() {
	case LittleEndian:
		return v, nil
	case BigEndian:
		return ReverseBytes(v), nil
	default:
		return v, fmt.Errorf("convert to little-endian: %w", errs.ErrUnknownEndianness)
	}
}

// ReverseBytes returns v with its byte order reversed.
func ReverseBytes[T Integer](v T) T {
	switch unsafe.Sizeof(v) {
	case 2:
		return T(bits.ReverseBytes16(uint16(v)))
	case 4:
		return T(bits.ReverseBytes32(uint32(v)))
	case 8:
		return T(bits.ReverseBytes64(uint64(v)))
	default:
		return v
	}
}

// AppendNative appends the in-memory bytes of v to b.
func AppendNative[T Integer](b []byte, v T) []byte {
	return append(b, unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))...)
}
