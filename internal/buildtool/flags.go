package buildtool

import (
	"fmt"
	"strings"
)

// LinkFlags are the compiler and linker flags a cgo build of
// internal/bindings needs for a given dist directory.
type LinkFlags struct {
	CFLAGS  []string
	LDFLAGS []string
}

// NewLinkFlags computes the flags for cfg's target.
func NewLinkFlags(cfg Config, d *Dist) LinkFlags {
	cfg = cfg.withDefaults()
	f := LinkFlags{
		CFLAGS:  []string{"-I" + d.IncludeDir},
		LDFLAGS: []string{"-L" + d.LibDir, "-lrunecoral"},
	}

	if cfg.GPU {
		f.LDFLAGS = append(f.LDFLAGS, "-lEGL", "-lGLESv2")
	}

	switch TargetOS(cfg.GOOS) {
	case "linux":
		f.LDFLAGS = append(f.LDFLAGS, "-lstdc++")
	case "android", "macos", "ios":
		f.LDFLAGS = append(f.LDFLAGS, "-lc++")
	case "windows":
		if cfg.Mode == ModeDbg {
			f.LDFLAGS = append(f.LDFLAGS, "-lMSVCRTD")
		}
	}
	return f
}

// Env returns the flags as environment assignments for the go command.
func (f LinkFlags) Env() []string {
	return []string{
		"CGO_CFLAGS=" + strings.Join(f.CFLAGS, " "),
		"CGO_LDFLAGS=" + strings.Join(f.LDFLAGS, " "),
	}
}

// Exports renders the flags as POSIX shell export statements.
func (f LinkFlags) Exports() string {
	var b strings.Builder
	fmt.Fprintf(&b, "export CGO_CFLAGS=%q\n", strings.Join(f.CFLAGS, " "))
	fmt.Fprintf(&b, "export CGO_LDFLAGS=%q\n", strings.Join(f.LDFLAGS, " "))
	return b.String()
}
