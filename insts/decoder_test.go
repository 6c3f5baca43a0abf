package insts_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dashsim/insts"
)

// record builds a machine-code record from its fields.
func record(node, cpu, opcode, rs, rt, offset string) string {
	return node + cpu + ": " + opcode + rs + rt + offset
}

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("well-formed records", func() {
		It("should decode a load word record", func() {
			inst, err := decoder.Decode(
				record("00", "0", "100011", "00101", "00001", "0000000000000000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpLoad))
			Expect(inst.Node).To(Equal(0))
			Expect(inst.CPU).To(Equal(0))
			Expect(inst.Rs).To(Equal(uint32(5)))
			Expect(inst.Rt).To(Equal(uint32(1)))
			Expect(inst.ByteOffset).To(Equal(uint32(0)))
		})

		It("should decode a store word record", func() {
			inst, err := decoder.Decode(
				record("10", "1", "101011", "00111", "00010", "0000000000000100"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpStore))
			Expect(inst.Node).To(Equal(2))
			Expect(inst.CPU).To(Equal(1))
			Expect(inst.Rs).To(Equal(uint32(7)))
			Expect(inst.Rt).To(Equal(uint32(2)))
			Expect(inst.ByteOffset).To(Equal(uint32(4)))
		})

		It("should decode the node field from both bits", func() {
			inst, err := decoder.Decode(
				record("11", "0", "100011", "00000", "00001", "0000000000000000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Node).To(Equal(3))
		})
	})

	Describe("effective address computation", func() {
		It("should shift the byte offset down to words", func() {
			// rs=5, byte offset 8 -> word offset 2 -> address 7
			inst, err := decoder.Decode(
				record("00", "0", "100011", "00101", "00001", "0000000000001000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.EffectiveAddress()).To(Equal(7))
		})

		It("should reach the top of the address space", func() {
			// rs=31, byte offset 128 -> word offset 32 -> address 63
			inst, err := decoder.Decode(
				record("11", "0", "100011", "11111", "00001", "0000000010000000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.EffectiveAddress()).To(Equal(63))
		})
	})

	Describe("register selection", func() {
		It("should select $s1 for an odd rt field", func() {
			inst, err := decoder.Decode(
				record("00", "0", "100011", "00101", "00011", "0000000000000000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Register()).To(Equal(0))
		})

		It("should select $s2 for an even rt field", func() {
			inst, err := decoder.Decode(
				record("00", "0", "100011", "00101", "00100", "0000000000000000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Register()).To(Equal(1))
		})
	})

	Describe("malformed records", func() {
		It("should reject a record that is too short", func() {
			_, err := decoder.Decode("000: 100011")

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("expected 37"))
		})

		It("should reject a record with a bad separator", func() {
			_, err := decoder.Decode(
				record("00", "0", "100011", "00101", "00001", "0000000000000000")[:3] +
					"--" +
					record("00", "0", "100011", "00101", "00001", "0000000000000000")[5:])

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("separator"))
		})

		It("should reject a non-binary field character", func() {
			_, err := decoder.Decode(
				record("00", "0", "100011", "00x01", "00001", "0000000000000000"))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("rs field"))
		})
	})

	Describe("unknown opcodes", func() {
		It("should surface a reportable error with the decoded fields", func() {
			inst, err := decoder.Decode(
				record("01", "1", "111111", "00101", "00001", "0000000000000000"))

			var unknownErr *insts.UnknownOpcodeError
			Expect(errors.As(err, &unknownErr)).To(BeTrue())
			Expect(unknownErr.Opcode).To(Equal("111111"))
			Expect(inst).NotTo(BeNil())
			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Node).To(Equal(1))
		})
	})
})
