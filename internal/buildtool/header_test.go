package buildtool

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuneCoralHeader(t *testing.T) {
	src, err := os.ReadFile("../../runecoral/runecoral.h")
	require.NoError(t, err)

	h, err := ParseHeader(src)
	require.NoError(t, err)

	require.Len(t, h.Defines, 1)
	assert.Equal(t, Define{Name: "RUNE_CORAL_MIME_TYPE__TFLITE", Value: "application/tflite-model", String: true}, h.Defines[0])

	elements, ok := h.Enum("RuneCoralElementType")
	require.True(t, ok)
	require.Len(t, elements.Values, 13)
	assert.Equal(t, EnumValue{Name: "RuneCoralElementType__Float16", Value: 10}, elements.Values[10])

	load, ok := h.Enum("RuneCoralLoadResult")
	require.True(t, ok)
	assert.Equal(t, []EnumValue{
		{Name: "RuneCoralLoadResult__Ok", Value: 0},
		{Name: "RuneCoralLoadResult__IncorrectMimeType", Value: 1},
		{Name: "RuneCoralLoadResult__IncorrectArgumentTypes", Value: 2},
		{Name: "RuneCoralLoadResult__IncorrectArgumentSizes", Value: 3},
		{Name: "RuneCoralLoadResult__InternalError", Value: 4},
	}, load.Values)

	require.Len(t, h.Structs, 1)
	assert.Equal(t, Struct{Name: "RuneCoralTensor", Fields: []Field{
		{Name: "type", Type: "RuneCoralElementType"},
		{Name: "data", Type: "void *"},
		{Name: "shape", Type: "const size_t *"},
		{Name: "rank", Type: "size_t"},
	}}, h.Structs[0])

	assert.Equal(t, []string{"RuneCoralContext"}, h.Opaque)

	create, ok := h.Function("create_inference_context")
	require.True(t, ok)
	assert.Equal(t, "RuneCoralLoadResult", create.Return)
	assert.Equal(t, []Field{
		{Name: "mimetype", Type: "const char *"},
		{Name: "model", Type: "const void *"},
		{Name: "model_len", Type: "size_t"},
		{Name: "backend", Type: "RuneCoralAccelerationBackend"},
		{Name: "inferenceContext", Type: "RuneCoralContext **"},
	}, create.Params)

	available, ok := h.Function("availableAccelerationBackends")
	require.True(t, ok)
	assert.Equal(t, "int", available.Return)
	assert.Empty(t, available.Params)

	opcount, ok := h.Function("inference_opcount")
	require.True(t, ok)
	assert.Equal(t, "uint64_t", opcount.Return)
}

func TestParseEnumValues(t *testing.T) {
	h, err := ParseHeader([]byte(`
/* flags */
typedef enum Flags {
  Flags__A = 0x4, // explicit hex
  Flags__B,
  Flags__C = -1,
  Flags__D
} Flags;
`))
	require.NoError(t, err)

	require.Len(t, h.Enums, 1)
	assert.Equal(t, []EnumValue{
		{Name: "Flags__A", Value: 4},
		{Name: "Flags__B", Value: 5},
		{Name: "Flags__C", Value: -1},
		{Name: "Flags__D", Value: 0},
	}, h.Enums[0].Values)
}

func TestParseDefines(t *testing.T) {
	h, err := ParseHeader([]byte(`
#pragma once
#include <stddef.h>
#define RUNE_CORAL_VERSION 3
#define RUNE_CORAL_NAME "coral"
`))
	require.NoError(t, err)
	assert.Equal(t, []Define{
		{Name: "RUNE_CORAL_VERSION", Value: "3"},
		{Name: "RUNE_CORAL_NAME", Value: "coral", String: true},
	}, h.Defines)
}

func TestParsePointerSpelling(t *testing.T) {
	h, err := ParseHeader([]byte(`char* name(const char*s, int  **  out);`))
	require.NoError(t, err)

	fn, ok := h.Function("name")
	require.True(t, ok)
	assert.Equal(t, "char *", fn.Return)
	assert.Equal(t, []Field{
		{Name: "s", Type: "const char *"},
		{Name: "out", Type: "int **"},
	}, fn.Params)
}

func TestParseRejectsUnknownDeclarations(t *testing.T) {
	_, err := ParseHeader([]byte(`typedef union { int a; float b; } U;`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported declaration")

	_, err = ParseHeader([]byte(`typedef enum { A = nope } E;`))
	require.Error(t, err)
}
