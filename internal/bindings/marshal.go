package bindings

import (
	"runtime"
	"unsafe"
)

// cTensor has the memory layout of RuneCoralTensor. size_t is uintptr-sized
// on every platform Go supports.
type cTensor struct {
	Type  ElementType
	Data  unsafe.Pointer
	Shape *uintptr
	Rank  uintptr
}

// tensorArgs holds the Go-allocated RuneCoralTensor arrays for one infer
// call. Every Go pointer stored inside them is pinned so the arrays can be
// handed to C; release must be called once the call returns.
type tensorArgs struct {
	pinner  runtime.Pinner
	inputs  []cTensor
	outputs []cTensor
}

func newTensorArgs(inputs, outputs []Tensor) *tensorArgs {
	a := &tensorArgs{}
	a.inputs = a.convert(inputs)
	a.outputs = a.convert(outputs)
	return a
}

func (a *tensorArgs) convert(ts []Tensor) []cTensor {
	if len(ts) == 0 {
		return nil
	}
	out := make([]cTensor, len(ts))
	for i, t := range ts {
		ct := cTensor{Type: t.Type, Rank: uintptr(len(t.Shape))}
		if len(t.Shape) > 0 {
			shape := make([]uintptr, len(t.Shape))
			for j, d := range t.Shape {
				shape[j] = uintptr(d)
			}
			a.pinner.Pin(&shape[0])
			ct.Shape = &shape[0]
		}
		if len(t.Data) > 0 {
			a.pinner.Pin(&t.Data[0])
			ct.Data = unsafe.Pointer(&t.Data[0])
		}
		out[i] = ct
	}
	return out
}

func (a *tensorArgs) inputPtr() *cTensor  { return first(a.inputs) }
func (a *tensorArgs) outputPtr() *cTensor { return first(a.outputs) }

func (a *tensorArgs) release() {
	a.pinner.Unpin()
}

func first(ts []cTensor) *cTensor {
	if len(ts) == 0 {
		return nil
	}
	return &ts[0]
}

// readTensorInfos copies n descriptors owned by the library into Go memory.
func readTensorInfos(p *cTensor, n uintptr) []TensorInfo {
	if p == nil || n == 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	infos := make([]TensorInfo, len(src))
	for i, t := range src {
		infos[i].Type = t.Type
		if t.Shape == nil || t.Rank == 0 {
			infos[i].Shape = []int{}
			continue
		}
		dims := unsafe.Slice(t.Shape, t.Rank)
		shape := make([]int, len(dims))
		for j, d := range dims {
			shape[j] = int(d)
		}
		infos[i].Shape = shape
	}
	return infos
}

// cString returns s as a NUL-terminated byte slice.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
