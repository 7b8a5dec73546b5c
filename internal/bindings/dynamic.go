//go:build (darwin || linux) && !android

package bindings

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// dynamicLibrary is a librunecoral shared object opened at runtime.
type dynamicLibrary struct {
	handle    uintptr
	closeOnce sync.Once
	closeErr  error

	availableAccelerationBackends func() int32
	createInferenceContext        func(mimetype *byte, model unsafe.Pointer, modelLen uintptr, backend int32, out *Context) int32
	destroyInferenceContext       func(ctx Context)
	inferenceInputs               func(ctx Context, tensors **cTensor) uintptr
	inferenceOutputs              func(ctx Context, tensors **cTensor) uintptr
	inferenceOpcount              func(ctx Context) uint64
	infer                         func(ctx Context, inputs *cTensor, numInputs uintptr, outputs *cTensor, numOutputs uintptr) int32
}

// Load opens the librunecoral shared object at path. Every function in
// Symbols must be exported by it.
func Load(path string) (API, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}

	for _, sym := range Symbols {
		if _, err := purego.Dlsym(handle, sym); err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingSymbol, sym, path)
		}
	}

	lib := &dynamicLibrary{handle: handle}
	purego.RegisterLibFunc(&lib.availableAccelerationBackends, handle, "availableAccelerationBackends")
	purego.RegisterLibFunc(&lib.createInferenceContext, handle, "create_inference_context")
	purego.RegisterLibFunc(&lib.destroyInferenceContext, handle, "destroy_inference_context")
	purego.RegisterLibFunc(&lib.inferenceInputs, handle, "inference_inputs")
	purego.RegisterLibFunc(&lib.inferenceOutputs, handle, "inference_outputs")
	purego.RegisterLibFunc(&lib.inferenceOpcount, handle, "inference_opcount")
	purego.RegisterLibFunc(&lib.infer, handle, "infer")
	return lib, nil
}

func (l *dynamicLibrary) AvailableAccelerationBackends() AccelerationBackend {
	return AccelerationBackend(l.availableAccelerationBackends())
}

func (l *dynamicLibrary) CreateInferenceContext(mimetype string, model []byte, backend AccelerationBackend) (Context, LoadResult) {
	cMimetype := cString(mimetype)

	var modelPtr unsafe.Pointer
	if len(model) > 0 {
		modelPtr = unsafe.Pointer(&model[0])
	}

	var out Context
	rc := l.createInferenceContext(&cMimetype[0], modelPtr, uintptr(len(model)), int32(backend), &out)
	return out, LoadResult(rc)
}

func (l *dynamicLibrary) DestroyInferenceContext(ctx Context) {
	if ctx == nil {
		return
	}
	l.destroyInferenceContext(ctx)
}

func (l *dynamicLibrary) InferenceInputs(ctx Context) []TensorInfo {
	var tensors *cTensor
	n := l.inferenceInputs(ctx, &tensors)
	return readTensorInfos(tensors, n)
}

func (l *dynamicLibrary) InferenceOutputs(ctx Context) []TensorInfo {
	var tensors *cTensor
	n := l.inferenceOutputs(ctx, &tensors)
	return readTensorInfos(tensors, n)
}

func (l *dynamicLibrary) InferenceOpCount(ctx Context) uint64 {
	return l.inferenceOpcount(ctx)
}

func (l *dynamicLibrary) Infer(ctx Context, inputs, outputs []Tensor) InferenceResult {
	args := newTensorArgs(inputs, outputs)
	defer args.release()

	rc := l.infer(ctx, args.inputPtr(), uintptr(len(inputs)), args.outputPtr(), uintptr(len(outputs)))
	return InferenceResult(rc)
}

func (l *dynamicLibrary) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = purego.Dlclose(l.handle)
	})
	return l.closeErr
}
