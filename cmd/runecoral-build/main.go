// Command runecoral-build prepares librunecoral for the cgo bindings and
// regenerates the Go mirror of runecoral.h.
//
//	runecoral-build build --project-root ../runecoral --out-dir . --gpu
//	eval "$(runecoral-build env --dist-dir ./dist)"
//	runecoral-build bindgen --header runecoral/runecoral.h --out internal/bindings/abi_generated.go
//
// Every persistent flag can also be set through a RUNECORAL_ environment
// variable, e.g. RUNECORAL_DIST_DIR or RUNECORAL_EDGETPU.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "runecoral-build:", err)
		os.Exit(1)
	}
}
