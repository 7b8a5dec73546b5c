package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotg-ai/runecoral-go/pkg/runecoral"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "runecoral-go version: "+runecoral.WrapperVersion())
	assert.Contains(t, out, "runecoral upstream: "+runecoral.UpstreamVersion())
}

func TestBackendsWithoutLinkedLibrary(t *testing.T) {
	t.Setenv("RUNECORAL_LIBRARY", "")
	_, err := run(t, "backends")
	if err == nil {
		t.Skip("statically linked librunecoral available")
	}
	assert.True(t, errors.Is(err, runecoral.ErrNotBuilt) || errors.Is(err, runecoral.ErrCGONotEnabled), "unexpected error: %v", err)
	assert.Contains(t, err.Error(), "RUNECORAL_LIBRARY")
}

func TestLibraryFromEnvironment(t *testing.T) {
	t.Setenv("RUNECORAL_LIBRARY", filepath.Join(t.TempDir(), "librunecoral.so"))
	_, err := run(t, "backends")
	require.Error(t, err)
	assert.False(t, errors.Is(err, runecoral.ErrNotBuilt))
}

func TestInspectRequiresModel(t *testing.T) {
	_, err := run(t, "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
}

func TestInferRejectsBadBackend(t *testing.T) {
	model := filepath.Join(t.TempDir(), "m.tflite")
	require.NoError(t, os.WriteFile(model, []byte("x"), 0o644))

	_, err := run(t, "infer", "--model", model, "--backend", "npu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown acceleration backend")
}

func TestSplitInputs(t *testing.T) {
	descriptors := []runecoral.TensorDescriptor{
		{ElementType: runecoral.ElementFloat32, Shape: []int{1, 1}},
		{ElementType: runecoral.ElementFloat32, Shape: []int{2}},
	}

	inputs, err := splitInputs(descriptors, []float32{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, descriptors[0], inputs[0].Descriptor())
	assert.Equal(t, descriptors[1], inputs[1].Descriptor())

	_, err = splitInputs(descriptors, []float32{1})
	require.Error(t, err)

	_, err = splitInputs([]runecoral.TensorDescriptor{{ElementType: runecoral.ElementUInt8, Shape: []int{1}}}, []float32{1})
	require.Error(t, err)
}

func TestPrintOutputs(t *testing.T) {
	result := []float32{0.25}
	f, err := runecoral.NewMutableTensor(result, 1, 1)
	require.NoError(t, err)
	u, err := runecoral.NewMutableTensor([]uint8{0xab, 0x01}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printOutputs(&buf, []runecoral.MutableTensor{f, u}))
	assert.Equal(t, "output 0: [0.25]\noutput 1 (uint8[2]): ab01\n", buf.String())
}
