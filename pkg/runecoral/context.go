package runecoral

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
	"github.com/hotg-ai/runecoral-go/pkg/runecoral/logging"
)

// InferenceContext is a model loaded into a native interpreter. It may be
// used from any goroutine; calls are serialised because the interpreter
// itself is not safe for concurrent use.
type InferenceContext struct {
	lib     *Library
	log     logging.Logger
	backend AccelerationBackend
	inputs  []TensorDescriptor
	outputs []TensorDescriptor
	opCount uint64

	mu     sync.Mutex
	handle bindings.Context
}

// Infer runs the model. inputs and outputs must match Inputs and Outputs in
// number, element type and byte length; results are written into outputs.
func (c *InferenceContext) Infer(ctx context.Context, inputs []Tensor, outputs []MutableTensor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return ErrContextClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := c.inputArgs(inputs)
	if err != nil {
		return err
	}
	out, err := c.outputArgs(outputs)
	if err != nil {
		return err
	}

	code := c.lib.api.Infer(c.handle, in, out)
	runtime.KeepAlive(inputs)
	runtime.KeepAlive(outputs)
	if err := inferError(code); err != nil {
		c.log.Warn(ctx, "inference failed", "code", int(code), "backend", c.backend.String())
		return err
	}
	return nil
}

func (c *InferenceContext) inputArgs(tensors []Tensor) ([]bindings.Tensor, error) {
	if len(tensors) != len(c.inputs) {
		return nil, fmt.Errorf("%w: got %d inputs, model expects %d", ErrTensorCount, len(tensors), len(c.inputs))
	}
	args := make([]bindings.Tensor, len(tensors))
	for i, t := range tensors {
		if err := matches("input", i, c.inputs[i], t.elementType, len(t.data)); err != nil {
			return nil, err
		}
		args[i] = bindings.Tensor{Type: bindings.ElementType(t.elementType), Data: t.data, Shape: t.shape}
	}
	return args, nil
}

func (c *InferenceContext) outputArgs(tensors []MutableTensor) ([]bindings.Tensor, error) {
	if len(tensors) != len(c.outputs) {
		return nil, fmt.Errorf("%w: got %d outputs, model expects %d", ErrTensorCount, len(tensors), len(c.outputs))
	}
	args := make([]bindings.Tensor, len(tensors))
	for i, t := range tensors {
		if err := matches("output", i, c.outputs[i], t.elementType, len(t.data)); err != nil {
			return nil, err
		}
		args[i] = bindings.Tensor{Type: bindings.ElementType(t.elementType), Data: t.data, Shape: t.shape}
	}
	return args, nil
}

// Inputs describes the tensors Infer expects as input.
func (c *InferenceContext) Inputs() []TensorDescriptor {
	return cloneDescriptors(c.inputs)
}

// Outputs describes the tensors Infer writes.
func (c *InferenceContext) Outputs() []TensorDescriptor {
	return cloneDescriptors(c.outputs)
}

// OpCount is the number of operators in the model graph.
func (c *InferenceContext) OpCount() uint64 {
	return c.opCount
}

// Backend is the acceleration backend the context was created with.
func (c *InferenceContext) Backend() AccelerationBackend {
	return c.backend
}

// Close destroys the native interpreter. It is safe to call more than once.
func (c *InferenceContext) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return nil
	}

	c.lib.api.DestroyInferenceContext(c.handle)
	c.handle = nil
	runtime.SetFinalizer(c, nil)
	c.log.Debug(context.Background(), "closed inference context")
	c.lib.release()
	return nil
}

func (c *InferenceContext) finalize() {
	c.log.Warn(context.Background(), "inference context was not closed")
	_ = c.Close()
}

func cloneDescriptors(ds []TensorDescriptor) []TensorDescriptor {
	out := make([]TensorDescriptor, len(ds))
	for i, d := range ds {
		out[i] = TensorDescriptor{ElementType: d.ElementType, Shape: slices.Clone(d.Shape)}
	}
	return out
}
