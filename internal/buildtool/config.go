package buildtool

import (
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// CompilationMode is the bazel compilation mode used for librunecoral.
type CompilationMode string

const (
	ModeOpt CompilationMode = "opt"
	ModeDbg CompilationMode = "dbg"
)

// ModeForProfile maps a build profile name to a compilation mode. Only the
// "release" profile produces an optimised library.
func ModeForProfile(profile string) CompilationMode {
	if profile == "release" {
		return ModeOpt
	}
	return ModeDbg
}

// Config describes where librunecoral comes from and what it is built for.
type Config struct {
	// ProjectRoot is the checkout containing the Makefile, the bazel
	// workspace and runecoral/runecoral.h.
	ProjectRoot string

	// OutDir receives the build products: <OutDir>/dist and the bazel cache.
	OutDir string

	// DistDir points at a prebuilt installation. When set nothing is
	// compiled and the layout is only validated.
	DistDir string

	GOOS   string
	GOARCH string

	Mode CompilationMode

	EdgeTPU bool
	GPU     bool

	Make  string
	Bazel string
}

func (c Config) withDefaults() Config {
	if c.GOOS == "" {
		c.GOOS = runtime.GOOS
	}
	if c.GOARCH == "" {
		c.GOARCH = runtime.GOARCH
	}
	if c.Mode == "" {
		c.Mode = ModeDbg
	}
	if c.Make == "" {
		c.Make = "make"
	}
	if c.Bazel == "" {
		c.Bazel = "bazel"
	}
	return c
}

// Validate reports configuration that cannot produce a dist directory.
func (c Config) Validate() error {
	switch c.Mode {
	case "", ModeOpt, ModeDbg:
	default:
		return errors.Errorf("unknown compilation mode %q", c.Mode)
	}
	if c.Prebuilt() {
		return nil
	}
	if c.ProjectRoot == "" {
		return errors.New("project root is required when no dist directory is given")
	}
	if c.OutDir == "" {
		return errors.New("output directory is required when no dist directory is given")
	}
	return nil
}

// Prebuilt reports whether a precompiled installation was supplied.
func (c Config) Prebuilt() bool {
	return c.DistDir != ""
}

// Dist returns the installation root.
func (c Config) Dist() string {
	if c.Prebuilt() {
		return c.DistDir
	}
	return filepath.Join(c.OutDir, "dist")
}

func (c Config) BazelCacheDir() string {
	return filepath.Join(c.OutDir, "bazel-cache")
}

// IncludeDir is <dist>/include.
func (c Config) IncludeDir() string {
	return filepath.Join(c.Dist(), "include")
}

// LibDir is <dist>/lib/<os>/<arch>.
func (c Config) LibDir() string {
	c = c.withDefaults()
	return filepath.Join(c.Dist(), "lib", TargetOS(c.GOOS), TargetArch(c.GOARCH))
}

// TargetOS maps a GOOS value to the directory name used by the librunecoral
// Makefile.
func TargetOS(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// TargetArch maps a GOARCH value to the directory name used by the
// librunecoral Makefile.
func TargetArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}
