// Package bindingstest provides an in-memory librunecoral for tests of the
// packages built on internal/bindings.
package bindingstest

import (
	"encoding/binary"
	"math"
	"sync"
	"unsafe"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
)

// SineModel is accepted by Fake as a valid TensorFlow Lite model. Like a real
// flatbuffer it carries the "TFL3" file identifier at offset 4.
var SineModel = []byte{0x1c, 0x00, 0x00, 0x00, 'T', 'F', 'L', '3', 0x14, 0x00, 0x20, 0x00}

// SineOpCount is the operator count Fake reports for SineModel.
const SineOpCount = 3

type fakeContext struct {
	backend bindings.AccelerationBackend
	runs    int
}

// Fake implements bindings.API with a model that computes sin(x) for a
// single float32 [1, 1] input. The exported fields may be changed before the
// first call to inject native failures.
type Fake struct {
	// Backends is reported by AvailableAccelerationBackends.
	Backends bindings.AccelerationBackend
	// LoadResult, when not Ok, is returned by every CreateInferenceContext.
	LoadResult bindings.LoadResult
	// NilContext makes CreateInferenceContext report Ok without a context.
	NilContext bool
	// InferResult, when not Ok, is returned by every Infer.
	InferResult bindings.InferenceResult
	Inputs      []bindings.TensorInfo
	Outputs     []bindings.TensorInfo

	mu        sync.Mutex
	contexts  map[bindings.Context]*fakeContext
	destroyed map[bindings.Context]int
	closes    int
}

// NewSine returns a Fake hosting the sine model.
func NewSine() *Fake {
	sine := []bindings.TensorInfo{{Type: bindings.ElementTypeFloat32, Shape: []int{1, 1}}}
	return &Fake{
		Inputs:    sine,
		Outputs:   []bindings.TensorInfo{{Type: bindings.ElementTypeFloat32, Shape: []int{1, 1}}},
		contexts:  make(map[bindings.Context]*fakeContext),
		destroyed: make(map[bindings.Context]int),
	}
}

func (f *Fake) AvailableAccelerationBackends() bindings.AccelerationBackend {
	return f.Backends
}

func (f *Fake) CreateInferenceContext(mimetype string, model []byte, backend bindings.AccelerationBackend) (bindings.Context, bindings.LoadResult) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.LoadResult != bindings.LoadResultOk:
		return nil, f.LoadResult
	case f.NilContext:
		return nil, bindings.LoadResultOk
	case mimetype != bindings.MimeTypeTFLite:
		return nil, bindings.LoadResultIncorrectMimeType
	case len(model) < 8 || string(model[4:8]) != "TFL3":
		return nil, bindings.LoadResultInternalError
	}

	fc := &fakeContext{backend: backend}
	ctx := bindings.Context(unsafe.Pointer(fc))
	f.contexts[ctx] = fc
	return ctx, bindings.LoadResultOk
}

func (f *Fake) DestroyInferenceContext(ctx bindings.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contexts, ctx)
	f.destroyed[ctx]++
}

func (f *Fake) InferenceInputs(bindings.Context) []bindings.TensorInfo {
	return cloneInfos(f.Inputs)
}

func (f *Fake) InferenceOutputs(bindings.Context) []bindings.TensorInfo {
	return cloneInfos(f.Outputs)
}

func (f *Fake) InferenceOpCount(bindings.Context) uint64 {
	return SineOpCount
}

func (f *Fake) Infer(ctx bindings.Context, inputs, outputs []bindings.Tensor) bindings.InferenceResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	fc, ok := f.contexts[ctx]
	if !ok {
		return bindings.InferenceResultError
	}
	if f.InferResult != bindings.InferenceResultOk {
		return f.InferResult
	}
	if len(inputs) != 1 || len(outputs) != 1 || len(inputs[0].Data) < 4 || len(outputs[0].Data) < 4 {
		return bindings.InferenceResultError
	}

	x := math.Float32frombits(binary.NativeEndian.Uint32(inputs[0].Data))
	binary.NativeEndian.PutUint32(outputs[0].Data, math.Float32bits(float32(math.Sin(float64(x)))))
	fc.runs++
	return bindings.InferenceResultOk
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

// Live returns the number of contexts created and not yet destroyed.
func (f *Fake) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contexts)
}

// DestroyCount returns how often any context was destroyed, counting
// repeated destruction of the same context.
func (f *Fake) DestroyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.destroyed {
		n += c
	}
	return n
}

// DoubleFrees reports contexts that were destroyed more than once.
func (f *Fake) DoubleFrees() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.destroyed {
		if c > 1 {
			n++
		}
	}
	return n
}

// Closes returns how often Close was called.
func (f *Fake) Closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// Backend returns the acceleration backend a live context was created with.
func (f *Fake) Backend(ctx bindings.Context) (bindings.AccelerationBackend, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fc, ok := f.contexts[ctx]
	if !ok {
		return 0, false
	}
	return fc.backend, true
}

func cloneInfos(in []bindings.TensorInfo) []bindings.TensorInfo {
	out := make([]bindings.TensorInfo, len(in))
	for i, t := range in {
		out[i] = bindings.TensorInfo{Type: t.Type, Shape: append([]int(nil), t.Shape...)}
	}
	return out
}
