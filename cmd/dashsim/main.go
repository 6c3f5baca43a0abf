// Package main provides the entry point for DASHSim.
// DASHSim simulates the directory-based cache-coherence protocol of a
// four-node cc-NUMA multiprocessor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/dashsim/loader"
	"github.com/sarchlab/dashsim/machine"
	"github.com/sarchlab/dashsim/report"
	"github.com/sarchlab/dashsim/timing/driver"
	"github.com/sarchlab/dashsim/timing/latency"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the simulator CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("dashsim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to cost configuration JSON file")
	verbose := flags.Bool("v", false, "Verbose output")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: dashsim [options] <machine_code.txt>\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		flags.PrintDefaults()
		return 1
	}

	programPath := flags.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return 1
	}

	costConfig := latency.DefaultCostConfig()
	if *configPath != "" {
		costConfig, err = latency.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading cost config: %v\n", err)
			return 1
		}
		if err := costConfig.Validate(); err != nil {
			fmt.Fprintf(stderr, "Invalid cost config: %v\n", err)
			return 1
		}
	}

	if *verbose {
		fmt.Fprintf(stdout, "Loaded: %s\n", programPath)
		fmt.Fprintf(stdout, "Instructions: %d\n", len(prog.Records))
	}

	system := machine.NewSystem()
	drv := driver.New(system, prog,
		driver.WithCostTable(latency.NewTableWithConfig(costConfig)),
	)

	if err := drv.Run(); err != nil {
		fmt.Fprintf(stderr, "Error executing program: %v\n", err)
		return 1
	}

	report.Fprint(stdout, system, drv.Engine().Clock())

	if *verbose {
		printStats(stdout, drv.Stats())
	}

	return 0
}

// printStats writes the run statistics summary.
func printStats(w io.Writer, stats driver.Stats) {
	fmt.Fprintf(w, "\nRun Statistics:\n")
	fmt.Fprintf(w, "  Instructions: %d (%d loads, %d stores)\n",
		stats.Instructions, stats.Loads, stats.Stores)
	for kind := latency.AccessKind(0); kind < latency.NumAccessKinds; kind++ {
		fmt.Fprintf(w, "  %-22s %d\n", kind.String()+":", stats.Cases[kind])
	}
	fmt.Fprintf(w, "  Total cycles: %d\n", stats.Cycles)
}
