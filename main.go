// Package main provides the entry point for DASHSim.
// DASHSim is a cycle-accurate simulator of the directory-based
// cache-coherence protocol of a four-node cc-NUMA multiprocessor.
//
// For the full CLI, use: go run ./cmd/dashsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("DASHSim - cc-NUMA Directory Cache-Coherence Simulator")
	fmt.Println("")
	fmt.Println("Usage: dashsim [options] <machine_code.txt>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to cost configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/dashsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/dashsim' instead.")
	}
}
