//go:build cgo && (!runecoral || windows)

package bindings

// Static reports that librunecoral was not linked in. cgo is available, but
// the runecoral build tag was not set or the target is windows, whose MSVC
// archive cannot be linked by cgo.
func Static() (API, error) {
	return nil, ErrNotBuilt
}
