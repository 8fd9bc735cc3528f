package section

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyexport/endian"
	"github.com/arloliu/npyexport/errs"
	"github.com/arloliu/npyexport/format"
)

type unknownStrategy struct{}

func (unknownStrategy) CurrentEndianness() endian.ByteOrder { return endian.Unknown }

func mustDType[S any](t *testing.T) format.DType {
	t.Helper()

	dt, ok := format.DTypeOf[S]()
	require.True(t, ok)

	return dt
}

func allDTypes(t *testing.T) []format.DType {
	return []format.DType{
		mustDType[int8](t), mustDType[int16](t), mustDType[int32](t), mustDType[int64](t),
		mustDType[uint8](t), mustDType[uint16](t), mustDType[uint32](t), mustDType[uint64](t),
		mustDType[bool](t), mustDType[float32](t), mustDType[float64](t),
	}
}

// parsedHeader is what a reader recovers from the front of an npy stream.
type parsedHeader struct {
	major, minor byte
	headerLen    int
	dict         string
	dataOffset   int
}

func parseHeader(t *testing.T, b []byte) parsedHeader {
	t.Helper()

	require.GreaterOrEqual(t, len(b), v1PrefixSize)
	require.Equal(t, Magic[:], b[:MagicSize])

	p := parsedHeader{major: b[6], minor: b[7]}
	prefix := v1PrefixSize
	switch p.major {
	case 1:
		p.headerLen = int(binary.LittleEndian.Uint16(b[8:10]))
	case 2:
		p.headerLen = int(binary.LittleEndian.Uint32(b[8:12]))
		prefix = v2PrefixSize
	default:
		t.Fatalf("unexpected major version %d", p.major)
	}

	p.dataOffset = prefix + p.headerLen
	require.LessOrEqual(t, p.dataOffset, len(b))
	require.Equal(t, byte('\n'), b[p.dataOffset-1])
	p.dict = strings.TrimRight(string(b[prefix:p.dataOffset-1]), " ")

	return p
}

func TestDictionary(t *testing.T) {
	t.Run("int32 little endian", func(t *testing.T) {
		dict, err := Dictionary(mustDType[int32](t), endian.LittleEndian, Shape{10}, false)
		require.NoError(t, err)
		require.Equal(t, "{'descr': '<i4', 'fortran_order': False, 'shape': (10,)}", dict)
	})

	t.Run("float64 big endian fortran", func(t *testing.T) {
		dict, err := Dictionary(mustDType[float64](t), endian.BigEndian, Shape{40256, 3}, true)
		require.NoError(t, err)
		require.Equal(t, "{'descr': '>f8', 'fortran_order': True, 'shape': (40256, 3)}", dict)
	})

	t.Run("type codes", func(t *testing.T) {
		want := map[string]string{
			"i1": "<i1", "i8": "<i8", "u1": "<u1", "u2": "<u2", "u8": "<u8",
			"b1": "<b1", "f4": "<f4", "f8": "<f8",
		}
		for _, dt := range allDTypes(t) {
			dict, err := Dictionary(dt, endian.LittleEndian, Shape{1}, false)
			require.NoError(t, err)
			if descr, ok := want[dt.Descr()]; ok {
				require.Contains(t, dict, "'descr': '"+descr+"'")
			}
		}
	})

	t.Run("unknown byte order", func(t *testing.T) {
		_, err := Dictionary(mustDType[int32](t), endian.Unknown, Shape{10}, false)
		require.ErrorIs(t, err, errs.ErrInvalidByteOrder)
		require.ErrorIs(t, err, errs.ErrContractViolation)
	})

	t.Run("empty shape", func(t *testing.T) {
		_, err := Dictionary(mustDType[int32](t), endian.LittleEndian, Shape{}, false)
		require.ErrorIs(t, err, errs.ErrInvalidShape)
	})
}

func TestSelectVersion(t *testing.T) {
	require.Equal(t, format.Version1, SelectVersion(0))
	require.Equal(t, format.Version1, SelectVersion(60))
	// 10 + 65525 + 1 is exactly 65536, so no padding is needed.
	require.Equal(t, format.Version1, SelectVersion(65525))
	// One more byte needs 15 spaces of padding and overflows the 16-bit field.
	require.Equal(t, format.Version2, SelectVersion(65526))
	require.Equal(t, format.Version2, SelectVersion(65534))
	require.Equal(t, format.Version2, SelectVersion(65535))
	require.Equal(t, format.Version2, SelectVersion(1<<20))
}

func TestPadding(t *testing.T) {
	for dictLen := range 64 {
		for _, v := range []format.Version{format.Version1, format.Version2} {
			pad := Padding(v, dictLen)
			require.GreaterOrEqual(t, pad, 0)
			require.Less(t, pad, HeaderAlign)

			prefix := v1PrefixSize
			if v == format.Version2 {
				prefix = v2PrefixSize
			}
			require.Zero(t, (prefix+dictLen+pad+1)%HeaderAlign)
		}
	}
}

func TestBuildHeader(t *testing.T) {
	h, err := BuildHeader(mustDType[int32](t), endian.Runtime(), Shape{10}, false)
	require.NoError(t, err)

	require.Equal(t, format.Version1, h.Version)
	require.Zero(t, h.Len()%HeaderAlign)
	require.Equal(t, h.Len(), len(h.Bytes()))

	p := parseHeader(t, h.Bytes())
	require.Equal(t, byte(1), p.major)
	require.Equal(t, byte(0), p.minor)
	require.Equal(t, h.Len(), p.dataOffset)
	require.Equal(t, h.Dictionary, p.dict)
	require.Equal(t, len(h.Dictionary)+h.Padding+1, p.headerLen)

	if endian.IsNativeLittleEndian() {
		require.Equal(t, "{'descr': '<i4', 'fortran_order': False, 'shape': (10,)}", h.Dictionary)
	} else {
		require.Equal(t, "{'descr': '>i4', 'fortran_order': False, 'shape': (10,)}", h.Dictionary)
	}

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(h.Len()), n)
	require.Equal(t, h.Bytes(), buf.Bytes())
}

func TestBuildHeader_Alignment(t *testing.T) {
	shapes := []Shape{{0}, {1}, {10}, {3, 4}, {1, 2, 3, 4, 5}, {1 << 30}, {7, 7, 7, 7, 7, 7, 7}}
	strategies := []endian.Strategy{endian.Little(), endian.Big(), endian.Runtime()}

	for _, dt := range allDTypes(t) {
		for _, s := range strategies {
			for _, shape := range shapes {
				for _, fortran := range []bool{false, true} {
					h, err := BuildHeader(dt, s, shape, fortran)
					require.NoError(t, err)
					require.Zero(t, h.Len()%HeaderAlign, "dtype=%s order=%s shape=%s", dt, s.CurrentEndianness(), shape)
					require.Equal(t, byte('\n'), h.Bytes()[h.Len()-1])
				}
			}
		}
	}
}

func TestBuildHeader_ByteOrderChar(t *testing.T) {
	h, err := BuildHeader(mustDType[uint16](t), endian.Big(), Shape{2}, false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(h.Dictionary, "{'descr': '>u2'"))

	h, err = BuildHeader(mustDType[uint16](t), endian.Little(), Shape{2}, false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(h.Dictionary, "{'descr': '<u2'"))
}

func TestBuildHeader_Version2(t *testing.T) {
	shape := make(Shape, 20000)
	for i := range shape {
		shape[i] = 1000
	}

	h, err := BuildHeader(mustDType[float32](t), endian.Runtime(), shape, false)
	require.NoError(t, err)
	require.Equal(t, format.Version2, h.Version)
	require.Greater(t, len(h.Dictionary), 65535)
	require.Zero(t, h.Len()%HeaderAlign)

	p := parseHeader(t, h.Bytes())
	require.Equal(t, byte(2), p.major)
	require.Equal(t, byte(0), p.minor)
	require.Equal(t, h.Len()-v2PrefixSize, p.headerLen)
	require.Equal(t, h.Dictionary, p.dict)
}

func TestBuildHeader_Errors(t *testing.T) {
	t.Run("unknown endianness", func(t *testing.T) {
		_, err := BuildHeader(mustDType[int32](t), unknownStrategy{}, Shape{1}, false)
		require.ErrorIs(t, err, errs.ErrUnknownEndianness)
	})

	t.Run("invalid shape", func(t *testing.T) {
		_, err := BuildHeader(mustDType[int32](t), endian.Runtime(), nil, false)
		require.ErrorIs(t, err, errs.ErrInvalidShape)

		_, err = BuildHeader(mustDType[int32](t), endian.Runtime(), Shape{-3}, false)
		require.ErrorIs(t, err, errs.ErrInvalidShape)
	})
}

func TestAppendHeader(t *testing.T) {
	dst := []byte("existing")

	out, info, err := AppendHeader(dst, mustDType[float64](t), endian.Runtime(), Shape{4, 4}, false)
	require.NoError(t, err)
	require.Equal(t, "existing", string(out[:8]))
	require.Equal(t, len(out)-8, info.HeaderSize)
	require.Zero(t, info.HeaderSize%HeaderAlign)
	require.Equal(t, format.Version1, info.Version)

	p := parseHeader(t, out[8:])
	require.Contains(t, p.dict, "'shape': (4, 4)")
	require.Equal(t, info.DictLen, len(p.dict))

	t.Run("error keeps dst", func(t *testing.T) {
		out, _, err := AppendHeader([]byte("keep"), mustDType[float64](t), endian.Runtime(), Shape{}, false)
		require.Error(t, err)
		require.Equal(t, "keep", string(out))
	})
}
