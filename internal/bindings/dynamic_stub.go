//go:build (!darwin && !linux) || android

package bindings

// Load is unavailable on this platform.
func Load(string) (API, error) {
	return nil, ErrDynamicUnsupported
}
