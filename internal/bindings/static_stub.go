//go:build !cgo

package bindings

// Static cannot link librunecoral without cgo. Use Load with a shared
// object instead.
func Static() (API, error) {
	return nil, ErrCGONotEnabled
}
