//go:build cgo && runecoral && !windows

package bindings

/*
#cgo CFLAGS: -I${SRCDIR}/../../runecoral
#cgo linux,!android,amd64 LDFLAGS: -L${SRCDIR}/../../dist/lib/linux/x86_64
#cgo linux,!android,arm64 LDFLAGS: -L${SRCDIR}/../../dist/lib/linux/aarch64
#cgo linux,!android,arm LDFLAGS: -L${SRCDIR}/../../dist/lib/linux/arm
#cgo android,arm64 LDFLAGS: -L${SRCDIR}/../../dist/lib/android/aarch64
#cgo android,arm LDFLAGS: -L${SRCDIR}/../../dist/lib/android/arm
#cgo android,386 LDFLAGS: -L${SRCDIR}/../../dist/lib/android/x86
#cgo darwin,!ios,amd64 LDFLAGS: -L${SRCDIR}/../../dist/lib/macos/x86_64
#cgo darwin,!ios,arm64 LDFLAGS: -L${SRCDIR}/../../dist/lib/macos/aarch64
#cgo ios,arm64 LDFLAGS: -L${SRCDIR}/../../dist/lib/ios/aarch64
#cgo LDFLAGS: -lrunecoral
#cgo runecoral_gpu LDFLAGS: -lEGL -lGLESv2
#cgo linux,!android LDFLAGS: -lstdc++
#cgo android darwin LDFLAGS: -lc++
#include <stdlib.h>
#include "runecoral.h"
*/
import "C"

import "unsafe"

// The Go mirror must have exactly the size of the C struct.
var (
	_ [unsafe.Sizeof(C.RuneCoralTensor{}) - unsafe.Sizeof(cTensor{})]struct{}
	_ [unsafe.Sizeof(cTensor{}) - unsafe.Sizeof(C.RuneCoralTensor{})]struct{}
)

type staticLibrary struct{}

// Static returns the librunecoral linked into this binary.
func Static() (API, error) {
	return staticLibrary{}, nil
}

func (staticLibrary) AvailableAccelerationBackends() AccelerationBackend {
	return AccelerationBackend(C.availableAccelerationBackends())
}

func (staticLibrary) CreateInferenceContext(mimetype string, model []byte, backend AccelerationBackend) (Context, LoadResult) {
	cMimetype := C.CString(mimetype)
	defer C.free(unsafe.Pointer(cMimetype))

	var modelPtr unsafe.Pointer
	if len(model) > 0 {
		modelPtr = unsafe.Pointer(&model[0])
	}

	var out *C.RuneCoralContext
	rc := C.create_inference_context(
		cMimetype,
		modelPtr,
		C.size_t(len(model)),
		C.RuneCoralAccelerationBackend(backend),
		&out,
	)
	return Context(unsafe.Pointer(out)), LoadResult(rc)
}

func (staticLibrary) DestroyInferenceContext(ctx Context) {
	if ctx == nil {
		return
	}
	C.destroy_inference_context((*C.RuneCoralContext)(ctx))
}

func (staticLibrary) InferenceInputs(ctx Context) []TensorInfo {
	var tensors *C.RuneCoralTensor
	n := C.inference_inputs((*C.RuneCoralContext)(ctx), &tensors)
	return readTensorInfos((*cTensor)(unsafe.Pointer(tensors)), uintptr(n))
}

func (staticLibrary) InferenceOutputs(ctx Context) []TensorInfo {
	var tensors *C.RuneCoralTensor
	n := C.inference_outputs((*C.RuneCoralContext)(ctx), &tensors)
	return readTensorInfos((*cTensor)(unsafe.Pointer(tensors)), uintptr(n))
}

func (staticLibrary) InferenceOpCount(ctx Context) uint64 {
	return uint64(C.inference_opcount((*C.RuneCoralContext)(ctx)))
}

func (staticLibrary) Infer(ctx Context, inputs, outputs []Tensor) InferenceResult {
	args := newTensorArgs(inputs, outputs)
	defer args.release()

	rc := C.infer(
		(*C.RuneCoralContext)(ctx),
		(*C.RuneCoralTensor)(unsafe.Pointer(args.inputPtr())),
		C.size_t(len(inputs)),
		(*C.RuneCoralTensor)(unsafe.Pointer(args.outputPtr())),
		C.size_t(len(outputs)),
	)
	return InferenceResult(rc)
}

func (staticLibrary) Close() error { return nil }
