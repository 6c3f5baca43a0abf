package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dashsim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("default cost values", func() {
		It("should charge 1 cycle for a local hit", func() {
			Expect(table.CostOf(latency.LoadLocalHit)).To(Equal(uint64(1)))
		})

		It("should charge 30 cycles for a sibling hit", func() {
			Expect(table.CostOf(latency.LoadSiblingHit)).To(Equal(uint64(30)))
		})

		It("should charge 100 cycles for a home fetch", func() {
			Expect(table.CostOf(latency.LoadHomeFetch)).To(Equal(uint64(100)))
		})

		It("should charge 135 cycles for a dirty migration", func() {
			Expect(table.CostOf(latency.LoadDirtyMigration)).To(Equal(uint64(135)))
		})

		It("should charge 1 cycle for a write hit", func() {
			Expect(table.CostOf(latency.StoreHit)).To(Equal(uint64(1)))
		})

		It("should charge 100 cycles for a write miss", func() {
			Expect(table.CostOf(latency.StoreMiss)).To(Equal(uint64(100)))
		})
	})

	Describe("custom configuration", func() {
		It("should use configured values", func() {
			config := latency.DefaultCostConfig()
			config.SiblingHit = 42
			custom := latency.NewTableWithConfig(config)

			Expect(custom.CostOf(latency.LoadSiblingHit)).To(Equal(uint64(42)))
			Expect(custom.Config()).To(Equal(config))
		})
	})

	Describe("AccessKind", func() {
		It("should classify loads and stores", func() {
			Expect(latency.LoadLocalHit.IsLoad()).To(BeTrue())
			Expect(latency.LoadSiblingHit.IsLoad()).To(BeTrue())
			Expect(latency.LoadHomeFetch.IsLoad()).To(BeTrue())
			Expect(latency.LoadDirtyMigration.IsLoad()).To(BeTrue())
			Expect(latency.StoreHit.IsLoad()).To(BeFalse())
			Expect(latency.StoreMiss.IsLoad()).To(BeFalse())
		})

		It("should have distinct names", func() {
			seen := map[string]bool{}
			for kind := latency.AccessKind(0); kind < latency.NumAccessKinds; kind++ {
				name := kind.String()
				Expect(seen[name]).To(BeFalse())
				seen[name] = true
			}
		})
	})

	Describe("Validate", func() {
		It("should accept the defaults", func() {
			Expect(latency.DefaultCostConfig().Validate()).To(Succeed())
		})

		It("should reject a zero cost", func() {
			config := latency.DefaultCostConfig()
			config.DirtyMigration = 0

			Expect(config.Validate()).NotTo(Succeed())
		})
	})

	Describe("Clone", func() {
		It("should return an independent copy", func() {
			config := latency.DefaultCostConfig()
			clone := config.Clone()
			clone.HomeFetch = 9

			Expect(config.HomeFetch).To(Equal(uint64(100)))
		})
	})

	Describe("file round trip", func() {
		It("should save and reload a configuration", func() {
			dir, err := os.MkdirTemp("", "dashsim-latency")
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = os.RemoveAll(dir) }()

			path := filepath.Join(dir, "costs.json")
			config := latency.DefaultCostConfig()
			config.WriteMiss = 123

			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(config))
		})

		It("should fail on a missing file", func() {
			_, err := latency.LoadConfig("does-not-exist.json")
			Expect(err).To(HaveOccurred())
		})

		It("should keep defaults for absent fields", func() {
			dir, err := os.MkdirTemp("", "dashsim-latency")
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = os.RemoveAll(dir) }()

			path := filepath.Join(dir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"home_fetch": 50}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.HomeFetch).To(Equal(uint64(50)))
			Expect(loaded.DirtyMigration).To(Equal(uint64(135)))
		})
	})
})
