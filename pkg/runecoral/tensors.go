package runecoral

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
)

// TensorDescriptor is the element type and shape of a model input or output.
type TensorDescriptor struct {
	ElementType ElementType
	Shape       []int
}

// NumElements is the product of the dimensions. A rank-0 tensor holds one
// element.
func (d TensorDescriptor) NumElements() int {
	n := 1
	for _, dim := range d.Shape {
		n *= dim
	}
	return n
}

// ByteSize is the buffer length needed to hold the tensor, or 0 when the
// element type has no fixed width.
func (d TensorDescriptor) ByteSize() int {
	return d.NumElements() * d.ElementType.Size()
}

// Equal reports whether both descriptors have the same element type and
// dimensions.
func (d TensorDescriptor) Equal(other TensorDescriptor) bool {
	return d.ElementType == other.ElementType && slices.Equal(d.Shape, other.Shape)
}

// String renders the descriptor as e.g. "float32[1,224,224,3]".
func (d TensorDescriptor) String() string {
	dims := make([]string, len(d.Shape))
	for i, dim := range d.Shape {
		dims[i] = strconv.Itoa(dim)
	}
	return d.ElementType.String() + "[" + strings.Join(dims, ",") + "]"
}

// Tensor is an input passed to InferenceContext.Infer. It is a view over
// the caller's slice; the data is handed to the library without copying.
type Tensor struct {
	elementType ElementType
	data        []byte
	shape       []int
}

// NewTensor wraps data as a tensor. When no shape is given the tensor is
// one-dimensional.
func NewTensor[E Element](data []E, shape ...int) (Tensor, error) {
	shape, err := checkShape(len(data), shape)
	if err != nil {
		return Tensor{}, err
	}
	return Tensor{elementType: ElementTypeOf[E](), data: AsBytes(data), shape: shape}, nil
}

// ElementType is the type of each element in the tensor.
func (t Tensor) ElementType() ElementType { return t.elementType }

// Shape returns a copy of the tensor's dimensions.
func (t Tensor) Shape() []int { return slices.Clone(t.shape) }

// Descriptor returns the tensor's element type and shape.
func (t Tensor) Descriptor() TensorDescriptor {
	return TensorDescriptor{ElementType: t.elementType, Shape: t.Shape()}
}

// MutableTensor is an output buffer that Infer writes into.
type MutableTensor struct {
	elementType ElementType
	data        []byte
	shape       []int
}

// NewMutableTensor wraps data as an output tensor. The library writes the
// results straight into data.
func NewMutableTensor[E Element](data []E, shape ...int) (MutableTensor, error) {
	shape, err := checkShape(len(data), shape)
	if err != nil {
		return MutableTensor{}, err
	}
	return MutableTensor{elementType: ElementTypeOf[E](), data: AsBytes(data), shape: shape}, nil
}

// NewOutputFor allocates a zeroed output tensor matching d. The result can
// be read back with TensorData or Bytes.
func NewOutputFor(d TensorDescriptor) (MutableTensor, error) {
	size := d.ElementType.Size()
	if size == 0 {
		return MutableTensor{}, fmt.Errorf("%w: %s has no fixed width", ErrElementType, d.ElementType)
	}
	if _, err := checkShape(d.NumElements(), d.Shape); err != nil {
		return MutableTensor{}, err
	}
	data := wordBytes(make([]uint64, (d.ByteSize()+7)/8))
	if len(data) > d.ByteSize() {
		data = data[:d.ByteSize()]
	}
	return MutableTensor{elementType: d.ElementType, data: data, shape: slices.Clone(d.Shape)}, nil
}

// ElementType is the type of each element in the tensor.
func (t MutableTensor) ElementType() ElementType { return t.elementType }

// Shape returns a copy of the tensor's dimensions.
func (t MutableTensor) Shape() []int { return slices.Clone(t.shape) }

// Descriptor returns the tensor's element type and shape.
func (t MutableTensor) Descriptor() TensorDescriptor {
	return TensorDescriptor{ElementType: t.elementType, Shape: t.Shape()}
}

// Bytes returns the raw buffer. It aliases the tensor's memory.
func (t MutableTensor) Bytes() []byte { return t.data }

// Zero clears the buffer.
func (t MutableTensor) Zero() {
	clear(t.data)
}

// TensorData returns the tensor's contents as a slice of E. Nothing is
// copied; the result aliases the tensor's buffer.
func TensorData[E Element](t MutableTensor) ([]E, error) {
	if want := ElementTypeOf[E](); want != t.elementType {
		return nil, fmt.Errorf("%w: tensor holds %s, not %s", ErrElementType, t.elementType, want)
	}
	return FromBytes[E](t.data)
}

func checkShape(n int, shape []int) ([]int, error) {
	if len(shape) == 0 {
		return []int{n}, nil
	}
	want := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrShapeMismatch, shape)
		}
		want *= dim
	}
	if want != n {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, data has %d", ErrShapeMismatch, shape, want, n)
	}
	return slices.Clone(shape), nil
}

func descriptorFromInfo(info bindings.TensorInfo) TensorDescriptor {
	return TensorDescriptor{ElementType: ElementType(info.Type), Shape: info.Shape}
}

func descriptorsFromInfos(infos []bindings.TensorInfo) []TensorDescriptor {
	out := make([]TensorDescriptor, len(infos))
	for i, info := range infos {
		out[i] = descriptorFromInfo(info)
	}
	return out
}

// matches checks a caller's tensor against the model's descriptor. The shape
// may differ as long as the byte length agrees.
func matches(kind string, i int, want TensorDescriptor, gotType ElementType, gotLen int) error {
	if want.ElementType.Size() == 0 {
		return fmt.Errorf("%w: %s %d has unsupported element type %s", ErrTensorMismatch, kind, i, want.ElementType)
	}
	if gotType != want.ElementType {
		return fmt.Errorf("%w: %s %d is %s, model expects %s", ErrTensorMismatch, kind, i, gotType, want)
	}
	if gotLen != want.ByteSize() {
		return fmt.Errorf("%w: %s %d has %d bytes, model expects %d for %s", ErrTensorMismatch, kind, i, gotLen, want.ByteSize(), want)
	}
	return nil
}
