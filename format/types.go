package format

import (
	"reflect"
	"strconv"
)

type (
	TypeCode        byte
	Version         uint8
	CompressionType uint8
)

const (
	TypeSigned   TypeCode = 'i' // TypeSigned represents signed integers.
	TypeUnsigned TypeCode = 'u' // TypeUnsigned represents unsigned integers.
	TypeBool     TypeCode = 'b' // TypeBool represents booleans stored as one byte.
	TypeFloat    TypeCode = 'f' // TypeFloat represents IEEE 754 floating point.

	Version1 Version = 1 // Version1 uses a 16-bit header length field.
	Version2 Version = 2 // Version2 uses a 32-bit header length field.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c TypeCode) String() string {
	switch c {
	case TypeSigned:
		return "Signed"
	case TypeUnsigned:
		return "Unsigned"
	case TypeBool:
		return "Bool"
	case TypeFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// LengthFieldSize returns the width in bytes of the header length field.
func (v Version) LengthFieldSize() int {
	if v == Version2 {
		return 4
	}

	return 2
}

func (v Version) String() string {
	switch v {
	case Version1:
		return "1.0"
	case Version2:
		return "2.0"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a lower-case compression name: "none", "zstd", "s2" or "lz4".
// The empty string means none.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// DType describes the scalar type stored in an array payload.
type DType struct {
	Code TypeCode
	Size int // Size is the scalar width in bytes.
}

// Descr returns the dtype text without the byte-order character, e.g. "i4".
func (d DType) Descr() string {
	return string(d.Code) + strconv.Itoa(d.Size)
}

func (d DType) String() string {
	return d.Descr()
}

// DTypeOf returns the dtype of the scalar type S.
//
// Named types are classified by their underlying kind, so a `type Celsius float32`
// maps to "f4". Types that are not booleans, integers, or floats yield ok=false.
func DTypeOf[S any]() (DType, bool) {
	rt := reflect.TypeFor[S]()

	var code TypeCode
	switch rt.Kind() { //nolint: exhaustive
	case reflect.Bool:
		code = TypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		code = TypeSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		code = TypeUnsigned
	case reflect.Float32, reflect.Float64:
		code = TypeFloat
	default:
		return DType{}, false
	}

	return DType{Code: code, Size: int(rt.Size())}, true
}
