package main

import (
	"fmt"
	"runtime"
)

// Version is the build-time version string, set via -ldflags in release
// builds; left as "dev" otherwise.
var Version = "dev"

func printFeatures() {
	fmt.Printf("kartsim %s\n", Version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("RISC-V core: RV32IMAFC (integer, multiply/divide, atomics, single-precision float, compressed)")
}
