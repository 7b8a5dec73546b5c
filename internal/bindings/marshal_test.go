package bindings

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorLayoutMatchesC(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))

	// enum (padded to a pointer), void *, const size_t *, size_t
	assert.Equal(t, 4*ptr, unsafe.Sizeof(cTensor{}))
	assert.Equal(t, ptr, unsafe.Offsetof(cTensor{}.Data))
	assert.Equal(t, 2*ptr, unsafe.Offsetof(cTensor{}.Shape))
	assert.Equal(t, 3*ptr, unsafe.Offsetof(cTensor{}.Rank))
}

func TestTensorArgsPointAtCallerMemory(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out := make([]byte, 8)

	args := newTensorArgs(
		[]Tensor{{Type: ElementTypeFloat32, Data: in, Shape: []int{1, 1}}},
		[]Tensor{{Type: ElementTypeInt64, Data: out, Shape: []int{1}}},
	)
	defer args.release()

	require.Len(t, args.inputs, 1)
	require.Len(t, args.outputs, 1)

	got := args.inputPtr()
	assert.Equal(t, ElementTypeFloat32, got.Type)
	assert.Equal(t, unsafe.Pointer(&in[0]), got.Data)
	assert.Equal(t, uintptr(2), got.Rank)
	assert.Equal(t, []uintptr{1, 1}, unsafe.Slice(got.Shape, got.Rank))

	// Writes through the C view must land in the caller's slice.
	o := args.outputPtr()
	unsafe.Slice((*byte)(o.Data), 8)[7] = 42
	assert.Equal(t, byte(42), out[7])
}

func TestTensorArgsEmpty(t *testing.T) {
	args := newTensorArgs(nil, []Tensor{{Type: ElementTypeUInt8}})
	defer args.release()

	assert.Nil(t, args.inputPtr())
	o := args.outputPtr()
	require.NotNil(t, o)
	assert.Nil(t, o.Data)
	assert.Nil(t, o.Shape)
	assert.Zero(t, o.Rank)
}

func TestReadTensorInfosCopies(t *testing.T) {
	shapeA := []uintptr{1, 224, 224, 3}
	shapeB := []uintptr{1, 1001}
	native := []cTensor{
		{Type: ElementTypeUInt8, Shape: &shapeA[0], Rank: uintptr(len(shapeA))},
		{Type: ElementTypeFloat32, Shape: &shapeB[0], Rank: uintptr(len(shapeB))},
		{Type: ElementTypeInt32},
	}

	infos := readTensorInfos(&native[0], uintptr(len(native)))
	require.Len(t, infos, 3)
	assert.Equal(t, TensorInfo{Type: ElementTypeUInt8, Shape: []int{1, 224, 224, 3}}, infos[0])
	assert.Equal(t, TensorInfo{Type: ElementTypeFloat32, Shape: []int{1, 1001}}, infos[1])
	assert.Equal(t, TensorInfo{Type: ElementTypeInt32, Shape: []int{}}, infos[2])

	shapeA[1] = 0
	assert.Equal(t, 224, infos[0].Shape[1])
}

func TestReadTensorInfosNil(t *testing.T) {
	assert.Nil(t, readTensorInfos(nil, 3))

	var one cTensor
	assert.Nil(t, readTensorInfos(&one, 0))
}

func TestCString(t *testing.T) {
	b := cString(MimeTypeTFLite)
	assert.Len(t, b, len(MimeTypeTFLite)+1)
	assert.Equal(t, byte(0), b[len(b)-1])
	assert.Equal(t, MimeTypeTFLite, string(b[:len(b)-1]))
}
