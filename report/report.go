// Package report renders the end-of-run machine state dump: registers,
// caches, memory, and directories for each node, followed by the total
// clock count. Consumed once, at the end of a run.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/dashsim/machine"
)

// Fprint writes the full state dump to w.
func Fprint(w io.Writer, s *machine.System, clock uint64) {
	for id := 0; id < machine.NumNodes; id++ {
		node := s.Node(id)

		fmt.Fprintf(w, "\n----------------------------------------\n")
		fmt.Fprintf(w, "Node #%d\n", id)

		for cpu := 0; cpu < machine.CPUsPerNode; cpu++ {
			fmt.Fprintf(w, "\n-- Processor #%d --\n", cpu)

			for reg := 0; reg < machine.RegsPerCPU; reg++ {
				fmt.Fprintf(w, "$s%d: %s\n", reg+1,
					machine.FormatBits(uint64(node.Regs[cpu].Read(reg)), machine.WordBits))
			}

			fmt.Fprintf(w, "Cache #: V : Tag  : Data Contents\n")
			for index := 0; index < machine.CacheLinesPerCPU; index++ {
				line := node.Caches[cpu].Line(index)
				valid := 0
				if line.Valid {
					valid = 1
				}
				fmt.Fprintf(w, "Cache %d: %d : %s : %s\n",
					index,
					valid,
					machine.FormatBits(uint64(line.Tag), machine.TagBits),
					machine.FormatBits(uint64(line.Data), machine.WordBits))
			}
		}

		fmt.Fprintf(w, "\n-- Memory --\n")
		for index := 0; index < machine.WordsPerNode; index++ {
			addr := id*machine.WordsPerNode + index
			fmt.Fprintf(w, "%-3d: %s\n", addr,
				machine.FormatBits(uint64(node.Memory.Read(index)), machine.WordBits))
		}

		fmt.Fprintf(w, "\n-- Directory --\n")
		for index := 0; index < machine.WordsPerNode; index++ {
			addr := id*machine.WordsPerNode + index
			entry := node.Directory[index]
			fmt.Fprintf(w, "%-3d: %s : %s\n", addr, entry.State.Bits(), entry.Presence.Bits())
		}
	}

	fmt.Fprintf(w, "\n---------------\n")
	fmt.Fprintf(w, "Total Clock Count: %d\n", clock)
}
