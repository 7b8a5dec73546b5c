package runecoral

import (
	"fmt"
	"unsafe"

	"github.com/x448/float16"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
)

// ElementType identifies the scalar type stored in a tensor. The values match
// TfLiteType.
type ElementType int32

const (
	ElementNoType     = ElementType(bindings.ElementTypeNoType)
	ElementFloat32    = ElementType(bindings.ElementTypeFloat32)
	ElementInt32      = ElementType(bindings.ElementTypeInt32)
	ElementUInt8      = ElementType(bindings.ElementTypeUInt8)
	ElementInt64      = ElementType(bindings.ElementTypeInt64)
	ElementString     = ElementType(bindings.ElementTypeString)
	ElementBool       = ElementType(bindings.ElementTypeBool)
	ElementInt16      = ElementType(bindings.ElementTypeInt16)
	ElementComplex64  = ElementType(bindings.ElementTypeComplex64)
	ElementInt8       = ElementType(bindings.ElementTypeInt8)
	ElementFloat16    = ElementType(bindings.ElementTypeFloat16)
	ElementFloat64    = ElementType(bindings.ElementTypeFloat64)
	ElementComplex128 = ElementType(bindings.ElementTypeComplex128)
)

var elementNames = map[ElementType]string{
	ElementNoType:     "notype",
	ElementFloat32:    "float32",
	ElementInt32:      "int32",
	ElementUInt8:      "uint8",
	ElementInt64:      "int64",
	ElementString:     "string",
	ElementBool:       "bool",
	ElementInt16:      "int16",
	ElementComplex64:  "complex64",
	ElementInt8:       "int8",
	ElementFloat16:    "float16",
	ElementFloat64:    "float64",
	ElementComplex128: "complex128",
}

func (t ElementType) String() string {
	if name, ok := elementNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(%d)", int32(t))
}

// Size is the width of one element in bytes. It is 0 for NoType, String and
// unknown types, which have no fixed width.
func (t ElementType) Size() int {
	switch t {
	case ElementUInt8, ElementInt8, ElementBool:
		return 1
	case ElementInt16, ElementFloat16:
		return 2
	case ElementFloat32, ElementInt32:
		return 4
	case ElementInt64, ElementFloat64, ElementComplex64:
		return 8
	case ElementComplex128:
		return 16
	default:
		return 0
	}
}

// Element is the set of Go types that can back a tensor.
type Element interface {
	uint8 | int8 | int16 | int32 | int64 | float16.Float16 | float32 | float64 | complex64 | complex128 | bool
}

// ElementTypeOf returns the element type matching E.
func ElementTypeOf[E Element]() ElementType {
	var zero E
	switch any(zero).(type) {
	case uint8:
		return ElementUInt8
	case int8:
		return ElementInt8
	case int16:
		return ElementInt16
	case int32:
		return ElementInt32
	case int64:
		return ElementInt64
	case float16.Float16:
		return ElementFloat16
	case float32:
		return ElementFloat32
	case float64:
		return ElementFloat64
	case complex64:
		return ElementComplex64
	case complex128:
		return ElementComplex128
	case bool:
		return ElementBool
	}
	panic("unreachable")
}

// AsBytes returns the memory behind s as a byte slice. Nothing is copied:
// writes through either slice are visible through the other.
func AsBytes[E Element](s []E) []byte {
	if len(s) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(s[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*size)
}

// wordBytes views s as bytes. Buffers built this way are aligned for every
// element type.
func wordBytes(s []uint64) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*8)
}

// FromBytes reinterprets b as a slice of E without copying. The length of b
// must be a multiple of the element size and b must be suitably aligned for
// E.
func FromBytes[E Element](b []byte) ([]E, error) {
	var zero E
	size := int(unsafe.Sizeof(zero))
	if len(b)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrBufferSize, len(b), size)
	}
	if len(b) == 0 {
		return []E{}, nil
	}
	ptr := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(ptr)%unsafe.Alignof(zero) != 0 {
		return nil, fmt.Errorf("%w: %T needs %d-byte alignment", ErrBufferAlignment, zero, unsafe.Alignof(zero))
	}
	return unsafe.Slice((*E)(ptr), len(b)/size), nil
}
