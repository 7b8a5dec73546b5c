// Command runecoral-go inspects and runs TensorFlow Lite models through
// librunecoral.
//
//	runecoral-go version
//	runecoral-go backends --library ./dist/lib/linux/x86_64/librunecoral.so
//	runecoral-go inspect --model sine.tflite
//	runecoral-go infer --model sine.tflite --input 0.5
//
// Without --library (or RUNECORAL_LIBRARY) the statically linked library is
// used, which needs a build with -tags runecoral.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "runecoral-go:", err)
		os.Exit(1)
	}
}
