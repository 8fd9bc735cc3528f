package element

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("bare scalar", func(t *testing.T) {
		v := 1.5
		require.Equal(t, Contiguous, Classify(ScalarOf[float64](), &v))
	})

	t.Run("packed struct", func(t *testing.T) {
		p := point3{}
		require.Equal(t, Contiguous, Classify(point3Descriptor(), &p))
	})

	t.Run("padded struct", func(t *testing.T) {
		desc := Descriptor[flaggedPoint, float32]{
			Dimensions: 3,
			Access: func(p *flaggedPoint, i int) *float32 {
				return [...]*float32{&p.X, &p.Y, &p.Z}[i]
			},
		}
		p := flaggedPoint{}
		require.False(t, desc.SizeMatches())
		require.Equal(t, Strided, Classify(desc, &p))
	})

	t.Run("reordered coordinates", func(t *testing.T) {
		desc := Descriptor[reversedPoint, float32]{
			Dimensions: 3,
			Access: func(p *reversedPoint, i int) *float32 {
				return [...]*float32{&p.Z, &p.Y, &p.X}[i]
			},
		}
		p := reversedPoint{}
		require.True(t, desc.SizeMatches())
		require.Equal(t, Strided, Classify(desc, &p))
	})

	t.Run("nil sample", func(t *testing.T) {
		require.Equal(t, Strided, Classify[point3](point3Descriptor(), nil))
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		p := point3{}
		require.Equal(t, Strided, Classify(Descriptor[point3, float32]{Dimensions: 3}, &p))
	})
}

func TestBlock(t *testing.T) {
	p := point3{1, 2, 3}
	desc := point3Descriptor()

	block := Block(desc, &p)
	require.Len(t, block, 12)

	var want []byte
	for i := range 3 {
		want = append(want, Bytes(desc.Access(&p, i))...)
	}
	require.Equal(t, want, block)
}

func TestBytes(t *testing.T) {
	b := true
	require.Equal(t, []byte{1}, Bytes(&b))

	u := uint16(0x0102)
	require.Len(t, Bytes(&u), 2)
}

func TestLayout_String(t *testing.T) {
	require.Equal(t, "Contiguous", Contiguous.String())
	require.Equal(t, "Strided", Strided.String())
}
