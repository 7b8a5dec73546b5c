// Package runecoral runs TensorFlow Lite models through librunecoral, with
// optional EdgeTPU and GPU acceleration.
//
// A Library is either linked into the binary (build with -tags runecoral
// after running runecoral-build) or loaded from a shared object:
//
//	lib, err := runecoral.Open(runecoral.Config{LibraryPath: "/opt/runecoral/librunecoral.so"})
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	ctx, err := lib.NewInferenceContext(runecoral.MimeType(), model, runecoral.BackendNone)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	in, _ := runecoral.NewTensor([]float32{0.5}, 1, 1)
//	result := make([]float32, 1)
//	out, _ := runecoral.NewMutableTensor(result, 1, 1)
//	if err := ctx.Infer(context.Background(), []runecoral.Tensor{in}, []runecoral.MutableTensor{out}); err != nil {
//	    return err
//	}
//
// Tensors are views over Go slices. Their memory is handed to the native
// library for the duration of Infer without copying, so results land
// directly in the caller's slice.
//
// Native result codes surface as *LoadError and *InferError. Both carry the
// raw code and match the package's sentinel errors with errors.Is.
package runecoral
