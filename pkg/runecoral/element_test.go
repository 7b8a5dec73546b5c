package runecoral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestElementTypeOf(t *testing.T) {
	assert.Equal(t, ElementUInt8, ElementTypeOf[uint8]())
	assert.Equal(t, ElementInt8, ElementTypeOf[int8]())
	assert.Equal(t, ElementInt16, ElementTypeOf[int16]())
	assert.Equal(t, ElementInt32, ElementTypeOf[int32]())
	assert.Equal(t, ElementInt64, ElementTypeOf[int64]())
	assert.Equal(t, ElementFloat16, ElementTypeOf[float16.Float16]())
	assert.Equal(t, ElementFloat32, ElementTypeOf[float32]())
	assert.Equal(t, ElementFloat64, ElementTypeOf[float64]())
	assert.Equal(t, ElementComplex64, ElementTypeOf[complex64]())
	assert.Equal(t, ElementComplex128, ElementTypeOf[complex128]())
	assert.Equal(t, ElementBool, ElementTypeOf[bool]())
}

func TestElementTypeValuesMatchTfLite(t *testing.T) {
	want := []ElementType{
		ElementNoType, ElementFloat32, ElementInt32, ElementUInt8, ElementInt64,
		ElementString, ElementBool, ElementInt16, ElementComplex64, ElementInt8,
		ElementFloat16, ElementFloat64, ElementComplex128,
	}
	for i, et := range want {
		assert.Equal(t, ElementType(i), et, et.String())
	}
}

func TestElementTypeSizeMatchesGo(t *testing.T) {
	assert.Equal(t, 1, ElementTypeOf[uint8]().Size())
	assert.Equal(t, 2, ElementTypeOf[float16.Float16]().Size())
	assert.Equal(t, 4, ElementTypeOf[float32]().Size())
	assert.Equal(t, 8, ElementTypeOf[complex64]().Size())
	assert.Equal(t, 16, ElementTypeOf[complex128]().Size())
	assert.Equal(t, 1, ElementTypeOf[bool]().Size())
	assert.Zero(t, ElementString.Size())
	assert.Zero(t, ElementNoType.Size())
}

func TestElementTypeString(t *testing.T) {
	assert.Equal(t, "float32", ElementFloat32.String())
	assert.Equal(t, "complex128", ElementComplex128.String())
	assert.Equal(t, "ElementType(99)", ElementType(99).String())
}

func TestAsBytesSharesMemory(t *testing.T) {
	values := []int32{1, 2}
	b := AsBytes(values)
	require.Len(t, b, 8)

	clear(b[:4])
	assert.Zero(t, values[0])

	back, err := FromBytes[int32](b)
	require.NoError(t, err)
	back[1] = 42
	assert.Equal(t, int32(42), values[1])
}

func TestAsBytesEmpty(t *testing.T) {
	assert.Nil(t, AsBytes[float32](nil))
	assert.Nil(t, AsBytes([]float64{}))
}

func TestFromBytesHalfPrecision(t *testing.T) {
	values := []float16.Float16{float16.Fromfloat32(1.5), float16.Fromfloat32(-2)}
	back, err := FromBytes[float16.Float16](AsBytes(values))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), back[0].Float32())
	assert.Equal(t, float32(-2), back[1].Float32())
}

func TestFromBytesRejectsBadLength(t *testing.T) {
	_, err := FromBytes[float32](make([]byte, 6))
	require.ErrorIs(t, err, ErrBufferSize)

	empty, err := FromBytes[float64](nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFromBytesRejectsMisalignedBuffer(t *testing.T) {
	b := wordBytes(make([]uint64, 2))
	_, err := FromBytes[float32](b[1:5])
	require.ErrorIs(t, err, ErrBufferAlignment)

	_, err = FromBytes[uint8](b[1:5])
	require.NoError(t, err)
}

func TestWordBytesIsAlignedForEveryElement(t *testing.T) {
	b := wordBytes(make([]uint64, 4))
	require.Len(t, b, 32)
	assert.Nil(t, wordBytes(nil))

	_, err := FromBytes[complex128](b)
	require.NoError(t, err)
	_, err = FromBytes[float64](b)
	require.NoError(t, err)
	_, err = FromBytes[int16](b)
	require.NoError(t, err)
}
