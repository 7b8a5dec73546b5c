package buildtool

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const headerName = "runecoral.h"

var (
	ErrHeaderNotFound  = errors.New("runecoral.h not found")
	ErrLibraryNotFound = errors.New("librunecoral not found")
)

// libraryNames are tried in order; the static archives come first because
// that is what the cgo backend links against.
var libraryNames = []struct {
	name   string
	static bool
}{
	{"librunecoral.a", true},
	{"runecoral.lib", true},
	{"librunecoral.so", false},
	{"librunecoral.dylib", false},
}

// Dist is a located librunecoral installation:
//
//	dist
//	├── include
//	│   └── runecoral.h
//	└── lib
//	    └── <os>
//	        └── <arch>
//	            └── librunecoral.a
type Dist struct {
	Root       string
	IncludeDir string
	LibDir     string
	Header     string
	Library    string
	Static     bool
}

// Locate validates the dist layout described by cfg.
func Locate(cfg Config) (*Dist, error) {
	cfg = cfg.withDefaults()
	d := &Dist{
		Root:       cfg.Dist(),
		IncludeDir: cfg.IncludeDir(),
		LibDir:     cfg.LibDir(),
	}

	d.Header = filepath.Join(d.IncludeDir, headerName)
	if !isFile(d.Header) {
		return nil, errors.Wrapf(ErrHeaderNotFound, "looked in %s", d.IncludeDir)
	}

	for _, lib := range libraryNames {
		p := filepath.Join(d.LibDir, lib.name)
		if isFile(p) {
			d.Library = p
			d.Static = lib.static
			return d, nil
		}
	}
	return nil, errors.Wrapf(ErrLibraryNotFound, "looked in %s", d.LibDir)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
