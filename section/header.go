package section

import (
	"fmt"
	"io"
	"slices"

	"github.com/arloliu/npyexport/endian"
	"github.com/arloliu/npyexport/errs"
	"github.com/arloliu/npyexport/format"
)

// Header is a fully laid out npy header.
type Header struct {
	// Version is the selected format version.
	Version format.Version
	// Dictionary is the header dictionary text without padding or newline.
	Dictionary string
	// Padding is the number of space characters between dictionary and newline.
	Padding int

	buf []byte
}

// Bytes returns the encoded header.
func (h *Header) Bytes() []byte {
	return h.buf
}

// Len returns the encoded header length in bytes; always a multiple of HeaderAlign.
func (h *Header) Len() int {
	return len(h.buf)
}

// WriteTo writes the encoded header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.buf)
	return int64(n), err
}

// HeaderInfo summarizes a header appended by AppendHeader.
type HeaderInfo struct {
	Version    format.Version
	DictLen    int
	Padding    int
	HeaderSize int
}

// Dictionary returns the header dictionary text, for example
// {'descr': '<i4', 'fortran_order': False, 'shape': (10,)}.
//
// Parameters:
//   - dt: Scalar dtype of the payload
//   - order: Payload byte order; must be LittleEndian or BigEndian
//   - shape: Array shape; must have at least one non-negative entry
//   - fortranOrder: Whether the payload is column-major
//
// Returns:
//   - string: The dictionary text
//   - error: ErrInvalidByteOrder or ErrInvalidShape on contract violations
func Dictionary(dt format.DType, order endian.ByteOrder, shape Shape, fortranOrder bool) (string, error) {
	b, err := appendDictionary(nil, dt, order, shape, fortranOrder)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func appendDictionary(b []byte, dt format.DType, order endian.ByteOrder, shape Shape, fortranOrder bool) ([]byte, error) {
	orderChar, err := byteOrderChar(order)
	if err != nil {
		return b, err
	}
	if err := shape.Validate(); err != nil {
		return b, err
	}

	b = append(b, dictFirstKey...)
	b = append(b, orderChar)
	b = append(b, dt.Descr()...)
	b = append(b, dictFortranKey...)
	if fortranOrder {
		b = append(b, "True"...)
	} else {
		b = append(b, "False"...)
	}
	b = append(b, dictShapeKey...)
	b = shape.AppendTuple(b)

	return append(b, dictClose...), nil
}

func byteOrderChar(order endian.ByteOrder) (byte, error) {
	switch order {
	case endian.LittleEndian:
		return '<', nil
	case endian.BigEndian:
		return '>', nil
	default:
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidByteOrder, order)
	}
}

// SelectVersion returns the format version for a dictionary of dictLen bytes.
// Dictionaries of 65526 to 65534 bytes get version 2 even though they fit the
// 16-bit limit, because padding them to alignment would overflow the v1
// length field.
func SelectVersion(dictLen int) format.Version {
	if dictLen < v1DictLimit && dictLen+Padding(format.Version1, dictLen)+1 <= v1LengthMax {
		return format.Version1
	}

	return format.Version2
}

// Padding returns the number of spaces needed after a dictionary of dictLen
// bytes so the whole header, newline included, is a multiple of HeaderAlign.
func Padding(version format.Version, dictLen int) int {
	prefix := v1PrefixSize
	if version == format.Version2 {
		prefix = v2PrefixSize
	}
	total := prefix + dictLen + 1

	return (HeaderAlign - total%HeaderAlign) % HeaderAlign
}

// AppendHeader appends the complete header to dst.
//
// The payload byte order written into the dictionary comes from the strategy;
// the same strategy converts the length field to little-endian.
//
// Parameters:
//   - dst: Buffer to append to
//   - dt: Scalar dtype of the payload
//   - strategy: Byte-order strategy of the payload
//   - shape: Array shape
//   - fortranOrder: Whether the payload is column-major
//
// Returns:
//   - []byte: dst with the header appended
//   - HeaderInfo: Version, dictionary length, padding and header size
//   - error: ErrUnknownEndianness, ErrInvalidShape or ErrHeaderTooLarge
func AppendHeader(dst []byte, dt format.DType, strategy endian.Strategy, shape Shape, fortranOrder bool) ([]byte, HeaderInfo, error) {
	order := strategy.CurrentEndianness()
	if order == endian.Unknown {
		return dst, HeaderInfo{}, fmt.Errorf("build header: %w", errs.ErrUnknownEndianness)
	}

	start := len(dst)
	dst, err := appendDictionary(dst, dt, order, shape, fortranOrder)
	if err != nil {
		return dst[:start], HeaderInfo{}, err
	}
	dictLen := len(dst) - start

	version := SelectVersion(dictLen)
	padding := Padding(version, dictLen)

	prefix, err := appendPrefix(make([]byte, 0, v2PrefixSize), strategy, version, dictLen+padding+1)
	if err != nil {
		return dst[:start], HeaderInfo{}, err
	}
	dst = slices.Insert(dst, start, prefix...)

	for range padding {
		dst = append(dst, headerPadding)
	}
	dst = append(dst, headerNewline)

	info := HeaderInfo{
		Version:    version,
		DictLen:    dictLen,
		Padding:    padding,
		HeaderSize: len(dst) - start,
	}
	if info.HeaderSize%HeaderAlign != 0 {
		panic(fmt.Sprintf("section: header size %d is not a multiple of %d", info.HeaderSize, HeaderAlign))
	}

	return dst, info, nil
}

// appendPrefix appends magic, version and the little-endian length field.
func appendPrefix(b []byte, strategy endian.Strategy, version format.Version, headerLen int) ([]byte, error) {
	b = append(b, Magic[:]...)
	b = append(b, byte(version), VersionMinor)

	if version == format.Version1 {
		n, err := endian.ToLittleEndian(strategy, uint16(headerLen))
		if err != nil {
			return b, err
		}

		return endian.AppendNative(b, n), nil
	}

	if uint64(headerLen) > v2LengthMax {
		return b, fmt.Errorf("%w: %d bytes", errs.ErrHeaderTooLarge, headerLen)
	}
	n, err := endian.ToLittleEndian(strategy, uint32(headerLen))
	if err != nil {
		return b, err
	}

	return endian.AppendNative(b, n), nil
}

// BuildHeader builds a standalone header.
//
// Parameters:
//   - dt: Scalar dtype of the payload
//   - strategy: Byte-order strategy of the payload
//   - shape: Array shape
//   - fortranOrder: Whether the payload is column-major
//
// Returns:
//   - *Header: The built header
//   - error: ErrUnknownEndianness, ErrInvalidShape or ErrHeaderTooLarge
func BuildHeader(dt format.DType, strategy endian.Strategy, shape Shape, fortranOrder bool) (*Header, error) {
	buf, info, err := AppendHeader(nil, dt, strategy, shape, fortranOrder)
	if err != nil {
		return nil, err
	}

	prefix := v1PrefixSize
	if info.Version == format.Version2 {
		prefix = v2PrefixSize
	}

	return &Header{
		Version:    info.Version,
		Dictionary: string(buf[prefix : prefix+info.DictLen]),
		Padding:    info.Padding,
		buf:        buf,
	}, nil
}
