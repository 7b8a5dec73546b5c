// Package internalcheck holds source policy tests for the runecoral module.
//
// The tests load every package in the module with golang.org/x/tools/go/packages
// and check that the native boundary stays where it belongs:
//
//   - only internal/bindings imports "C" or purego;
//   - unsafe is limited to internal/bindings and the byte-view helpers of
//     pkg/runecoral;
//   - cgo files are excluded unless the runecoral build tag is set, so a
//     plain go build never tries to link librunecoral.
//
// It has no non-test code and is not meant to be imported.
package internalcheck
