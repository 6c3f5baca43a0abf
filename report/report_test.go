package report_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dashsim/machine"
	"github.com/sarchlab/dashsim/report"
)

var _ = Describe("Report", func() {
	var (
		system *machine.System
		buf    *bytes.Buffer
	)

	BeforeEach(func() {
		system = machine.NewSystem()
		buf = &bytes.Buffer{}
	})

	It("should print a section for every node and processor", func() {
		report.Fprint(buf, system, 0)
		out := buf.String()

		for _, header := range []string{"Node #0", "Node #1", "Node #2", "Node #3"} {
			Expect(out).To(ContainSubstring(header))
		}
		Expect(strings.Count(out, "-- Processor #0 --")).To(Equal(machine.NumNodes))
		Expect(strings.Count(out, "-- Processor #1 --")).To(Equal(machine.NumNodes))
		Expect(strings.Count(out, "-- Memory --")).To(Equal(machine.NumNodes))
		Expect(strings.Count(out, "-- Directory --")).To(Equal(machine.NumNodes))
	})

	It("should print registers as 32-bit patterns", func() {
		system.Node(0).Regs[0].Write(0, 10)

		report.Fprint(buf, system, 0)

		Expect(buf.String()).To(ContainSubstring(
			"$s1: 00000000000000000000000000001010"))
	})

	It("should print the seeded memory pattern with global addresses", func() {
		report.Fprint(buf, system, 0)
		out := buf.String()

		Expect(out).To(ContainSubstring(
			"0  : 00000000000000000000000000000101"))
		Expect(out).To(ContainSubstring(
			"63 : 00000000000000000000000001000100"))
	})

	It("should print cache lines with validity, tag, and data", func() {
		system.Node(0).Caches[0].Install(5, 10)

		report.Fprint(buf, system, 0)
		out := buf.String()

		Expect(out).To(ContainSubstring("Cache #: V : Tag  : Data Contents"))
		Expect(out).To(ContainSubstring(
			"Cache 1: 1 : 0001 : 00000000000000000000000000001010"))
		Expect(out).To(ContainSubstring(
			"Cache 0: 0 : 0000 : 00000000000000000000000000000000"))
	})

	It("should print directory entries as state and presence bits", func() {
		entry := system.Entry(5)
		entry.State = machine.Dirty
		entry.Presence.Add(1)

		report.Fprint(buf, system, 0)

		Expect(buf.String()).To(ContainSubstring("5  : 11 : 0100"))
	})

	It("should print the total clock count last", func() {
		report.Fprint(buf, system, 666)
		out := buf.String()

		Expect(out).To(HaveSuffix("Total Clock Count: 666\n"))
	})
})
