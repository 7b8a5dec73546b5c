package runecoral

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hotg-ai/runecoral-go/internal/bindings"
)

// AccelerationBackend is a set of hardware accelerators. The zero value runs
// the model on the CPU.
type AccelerationBackend uint32

const (
	BackendNone    = AccelerationBackend(bindings.AccelerationBackendNone)
	BackendEdgeTPU = AccelerationBackend(bindings.AccelerationBackendEdgetpu)
	BackendGPU     = AccelerationBackend(bindings.AccelerationBackendGpu)
)

// Has reports whether every accelerator in other is part of b.
func (b AccelerationBackend) Has(other AccelerationBackend) bool {
	return other != 0 && b&other == other
}

func (b AccelerationBackend) String() string {
	if b == BackendNone {
		return "none"
	}
	var parts []string
	if b.Has(BackendEdgeTPU) {
		parts = append(parts, "edgetpu")
	}
	if b.Has(BackendGPU) {
		parts = append(parts, "gpu")
	}
	if rest := b &^ (BackendEdgeTPU | BackendGPU); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseAccelerationBackend reads the form produced by String, e.g.
// "edgetpu|gpu" or "gpu|0x8". Empty input and "none" mean no acceleration.
func ParseAccelerationBackend(s string) (AccelerationBackend, error) {
	var b AccelerationBackend
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name := strings.ToLower(strings.TrimSpace(part))
		switch name {
		case "none", "cpu":
		case "edgetpu", "tpu":
			b |= BackendEdgeTPU
		case "gpu":
			b |= BackendGPU
		default:
			if !strings.HasPrefix(name, "0x") {
				return 0, fmt.Errorf("runecoral: unknown acceleration backend %q", part)
			}
			bits, err := strconv.ParseUint(name, 0, 32)
			if err != nil {
				return 0, fmt.Errorf("runecoral: invalid acceleration backend bits %q: %w", part, err)
			}
			b |= AccelerationBackend(bits)
		}
	}
	return b, nil
}
