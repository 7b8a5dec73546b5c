// Package bindings is the foreign-function layer between Go and
// librunecoral. It is the only package that imports "C".
//
// Two backends implement API:
//
//   - Static links librunecoral through cgo. It is compiled only with the
//     runecoral build tag so that the rest of the module builds without the
//     native archive; otherwise Static returns ErrNotBuilt or
//     ErrCGONotEnabled.
//   - Load opens a shared object at runtime with purego and needs neither
//     cgo nor the archive.
//
// The enum and constant declarations in abi_generated.go are produced from
// runecoral/runecoral.h by cmd/runecoral-build.
//
// The native library is not thread-safe. Callers serialise access to a
// Context.
package bindings

//go:generate go run ../../cmd/runecoral-build bindgen --header ../../runecoral/runecoral.h --out abi_generated.go --package bindings
