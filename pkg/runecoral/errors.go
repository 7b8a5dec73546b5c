package runecoral

import (
	"errors"
	"fmt"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
)

var (
	// ErrNotBuilt indicates the binary was built without the statically
	// linked librunecoral. Build with -tags runecoral or set
	// Config.LibraryPath.
	ErrNotBuilt = errors.New("runecoral: native library not linked")

	// ErrCGONotEnabled indicates the binary was built with CGO_ENABLED=0, so
	// only a dynamically loaded library can be used.
	ErrCGONotEnabled = errors.New("runecoral: cgo not enabled")

	// ErrDynamicUnsupported indicates shared-object loading is unavailable on
	// this platform.
	ErrDynamicUnsupported = errors.New("runecoral: dynamic loading not supported on this platform")

	// ErrMissingSymbol indicates the shared object is not a librunecoral
	// build, or an incompatible one.
	ErrMissingSymbol = errors.New("runecoral: library is missing a required symbol")

	ErrLibraryClosed = errors.New("runecoral: library closed")
	ErrContextClosed = errors.New("runecoral: inference context closed")

	// ErrInvalidString is returned when a string passed to the library
	// contains a NUL byte.
	ErrInvalidString = errors.New("runecoral: string contains a NUL byte")

	ErrIncorrectMimeType      = errors.New("runecoral: incorrect mimetype")
	ErrIncorrectArgumentTypes = errors.New("runecoral: incorrect argument types")
	ErrIncorrectArgumentSizes = errors.New("runecoral: incorrect argument sizes")
	ErrInternal               = errors.New("runecoral: internal error")
	ErrInterpreter            = errors.New("runecoral: interpreter error")
	ErrDelegate               = errors.New("runecoral: delegate error")
	ErrApplication            = errors.New("runecoral: application error")
	ErrTensorCount            = errors.New("runecoral: wrong number of tensors")
	ErrTensorMismatch         = errors.New("runecoral: tensor does not match the model")
	ErrShapeMismatch          = errors.New("runecoral: shape does not match data length")
	ErrElementType            = errors.New("runecoral: element type mismatch")
	ErrBufferSize             = errors.New("runecoral: buffer length is not a multiple of the element size")
	ErrBufferAlignment        = errors.New("runecoral: buffer is not aligned for the element type")
)

// LoadError is returned when the library rejects a model. Code is the raw
// RuneCoralLoadResult; errors.Is matches the sentinel for known codes.
type LoadError struct {
	Code int
}

func (e *LoadError) Error() string {
	if s := e.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("runecoral: unknown load result %d", e.Code)
}

func (e *LoadError) Is(target error) bool {
	s := e.sentinel()
	return s != nil && s == target
}

func (e *LoadError) sentinel() error {
	switch bindings.LoadResult(e.Code) {
	case bindings.LoadResultIncorrectMimeType:
		return ErrIncorrectMimeType
	case bindings.LoadResultIncorrectArgumentTypes:
		return ErrIncorrectArgumentTypes
	case bindings.LoadResultIncorrectArgumentSizes:
		return ErrIncorrectArgumentSizes
	case bindings.LoadResultInternalError:
		return ErrInternal
	default:
		return nil
	}
}

// InferError is returned when inference fails. Code is the raw
// RuneCoralInferenceResult; errors.Is matches the sentinel for known codes.
type InferError struct {
	Code int
}

func (e *InferError) Error() string {
	if s := e.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("runecoral: unknown inference result %d", e.Code)
}

func (e *InferError) Is(target error) bool {
	s := e.sentinel()
	return s != nil && s == target
}

func (e *InferError) sentinel() error {
	switch bindings.InferenceResult(e.Code) {
	case bindings.InferenceResultError:
		return ErrInterpreter
	case bindings.InferenceResultDelegateError:
		return ErrDelegate
	case bindings.InferenceResultApplicationError:
		return ErrApplication
	default:
		return nil
	}
}

func loadError(code bindings.LoadResult) error {
	if code == bindings.LoadResultOk {
		return nil
	}
	return &LoadError{Code: int(code)}
}

func inferError(code bindings.InferenceResult) error {
	if code == bindings.InferenceResultOk {
		return nil
	}
	return &InferError{Code: int(code)}
}

// remapError converts bindings errors into the public sentinels, keeping
// the original message for context.
func remapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, bindings.ErrNotBuilt):
		return ErrNotBuilt
	case errors.Is(err, bindings.ErrCGONotEnabled):
		return ErrCGONotEnabled
	case errors.Is(err, bindings.ErrDynamicUnsupported):
		return ErrDynamicUnsupported
	case errors.Is(err, bindings.ErrMissingSymbol):
		return fmt.Errorf("%w (%v)", ErrMissingSymbol, err)
	default:
		return fmt.Errorf("runecoral: %w", err)
	}
}
