package bindings

import (
	"errors"
	"unsafe"
)

// Context is the opaque RuneCoralContext pointer owned by the native
// library.
type Context unsafe.Pointer

// Tensor is the Go-side argument for one RuneCoralTensor. Data is passed to
// the library without copying.
type Tensor struct {
	Type  ElementType
	Data  []byte
	Shape []int
}

// TensorInfo describes a model input or output as reported by the library.
type TensorInfo struct {
	Type  ElementType
	Shape []int
}

// API is the set of functions exported by librunecoral. Implementations
// must not retain the slices they are given beyond a call.
type API interface {
	AvailableAccelerationBackends() AccelerationBackend
	CreateInferenceContext(mimetype string, model []byte, backend AccelerationBackend) (Context, LoadResult)
	DestroyInferenceContext(ctx Context)
	InferenceInputs(ctx Context) []TensorInfo
	InferenceOutputs(ctx Context) []TensorInfo
	InferenceOpCount(ctx Context) uint64
	Infer(ctx Context, inputs, outputs []Tensor) InferenceResult
	// Close releases the library itself. It is a no-op for a statically
	// linked library.
	Close() error
}

var (
	// ErrNotBuilt reports that the static librunecoral bindings were not
	// linked into the current binary. Build with -tags runecoral.
	ErrNotBuilt = errors.New("runecoral/internal/bindings: native bindings not built")

	// ErrCGONotEnabled signals that the package was compiled without cgo and
	// therefore cannot link librunecoral statically.
	ErrCGONotEnabled = errors.New("runecoral/internal/bindings: cgo not enabled")

	// ErrDynamicUnsupported is returned by Load on platforms without a
	// dynamic loader binding.
	ErrDynamicUnsupported = errors.New("runecoral/internal/bindings: dynamic loading not supported on this platform")

	// ErrMissingSymbol is returned by Load when the shared object does not
	// export every function in Symbols.
	ErrMissingSymbol = errors.New("runecoral/internal/bindings: missing symbol")
)
