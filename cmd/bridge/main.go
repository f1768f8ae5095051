// Command bridge runs WebAssembly guests that complete host-issued handles
// and demonstrates the one-shot task semantics they rely on.
//
// Usage:
//
//	bridge run --wasm guest.wasm [--func run] [--value 42] [--timeout 5s] [-i]
//	bridge demo [--waiters 3] [--value 42]
//	bridge config show [--config bridge.yaml]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
