package runecoral

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
	"github.com/hotg-ai/runecoral-go/pkg/runecoral/logging"
)

// MimeTypeTFLite identifies a TensorFlow Lite flatbuffer model.
const MimeTypeTFLite = bindings.MimeTypeTFLite

// MimeType returns the mimetype librunecoral accepts for TensorFlow Lite
// models.
func MimeType() string {
	return MimeTypeTFLite
}

// Library is an opened librunecoral, either linked into the binary or
// loaded from a shared object. A loaded shared object stays mapped until
// the library and every context created from it are closed.
type Library struct {
	api bindings.API
	log logging.Logger

	mu     sync.Mutex
	closed bool
	refs   int
}

// Open prepares the native library described by cfg.
func Open(cfg Config) (*Library, error) {
	var (
		api bindings.API
		err error
	)
	if cfg.LibraryPath == "" {
		api, err = bindings.Static()
	} else {
		api, err = bindings.Load(cfg.LibraryPath)
	}
	if err != nil {
		return nil, remapError(err)
	}

	l := newLibrary(api, cfg)
	l.log.Debug(context.Background(), "opened librunecoral", "path", cfg.LibraryPath)
	return l, nil
}

func newLibrary(api bindings.API, cfg Config) *Library {
	return &Library{api: api, log: cfg.logger()}
}

// Close releases the library. Contexts that are still open keep working
// and the native library is unloaded once the last of them is closed.
// Closing twice returns ErrLibraryClosed.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	l.closed = true

	if l.refs > 0 {
		l.log.Debug(context.Background(), "library close deferred", "open_contexts", l.refs)
		return nil
	}
	return remapError(l.api.Close())
}

// AvailableAccelerationBackends reports the accelerators librunecoral was
// built with and can currently reach.
func (l *Library) AvailableAccelerationBackends() (AccelerationBackend, error) {
	if err := l.acquire(); err != nil {
		return BackendNone, err
	}
	defer l.release()

	return AccelerationBackend(l.api.AvailableAccelerationBackends()), nil
}

// NewInferenceContext loads model into a new interpreter. backend selects
// the accelerators to delegate to; BackendNone runs on the CPU.
func (l *Library) NewInferenceContext(mimetype string, model []byte, backend AccelerationBackend) (*InferenceContext, error) {
	if strings.IndexByte(mimetype, 0) >= 0 {
		return nil, ErrInvalidString
	}
	if err := l.acquire(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	handle, code := l.api.CreateInferenceContext(mimetype, model, bindings.AccelerationBackend(backend))
	if err := loadError(code); err != nil {
		l.release()
		l.log.Warn(ctx, "create inference context failed",
			"mimetype", mimetype,
			logging.ModelSize(model),
			"backend", backend.String(),
			"code", int(code),
		)
		return nil, err
	}
	if handle == nil {
		l.release()
		return nil, fmt.Errorf("%w: library returned no context", ErrInternal)
	}

	c := &InferenceContext{
		lib:     l,
		handle:  handle,
		backend: backend,
		inputs:  descriptorsFromInfos(l.api.InferenceInputs(handle)),
		outputs: descriptorsFromInfos(l.api.InferenceOutputs(handle)),
		opCount: l.api.InferenceOpCount(handle),
	}
	c.log = l.log.With("context", fmt.Sprintf("%p", c))
	runtime.SetFinalizer(c, (*InferenceContext).finalize)

	c.log.Debug(ctx, "created inference context",
		logging.ModelSize(model),
		"backend", backend.String(),
		logging.Shapes("inputs", shapesOf(c.inputs)),
		logging.Shapes("outputs", shapesOf(c.outputs)),
		"opcount", c.opCount,
	)
	return c, nil
}

func (l *Library) acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	l.refs++
	return nil
}

func (l *Library) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refs--
	if l.closed && l.refs == 0 {
		if err := l.api.Close(); err != nil {
			l.log.Warn(context.Background(), "unload librunecoral", "error", err)
		}
	}
}

var staticLibrary = sync.OnceValues(func() (*Library, error) {
	return Open(Config{})
})

// CreateContext loads model with the statically linked library.
func CreateContext(mimetype string, model []byte, backend AccelerationBackend) (*InferenceContext, error) {
	lib, err := staticLibrary()
	if err != nil {
		return nil, err
	}
	return lib.NewInferenceContext(mimetype, model, backend)
}

// AvailableAccelerationBackends queries the statically linked library.
func AvailableAccelerationBackends() (AccelerationBackend, error) {
	lib, err := staticLibrary()
	if err != nil {
		return BackendNone, err
	}
	return lib.AvailableAccelerationBackends()
}

func shapesOf(ds []TensorDescriptor) [][]int {
	out := make([][]int, len(ds))
	for i, d := range ds {
		out[i] = d.Shape
	}
	return out
}
