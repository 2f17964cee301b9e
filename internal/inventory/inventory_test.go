package inventory_test

import (
	"os"
	"path/filepath"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/inventory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ptr(i int) *int { return &i }

var _ = Describe("ParseDocument", func() {
	It("reads a yaml list", func() {
		vms, err := inventory.ParseDocument([]byte(`
- id: vm-1
  vcpus: 2
  memory_mb: 4096
  storage_mb: 10240
- id: vm-2
  vcpus: 1
  memory_mb: 2048
  storage_mb: 1024
  criticality: 2
`))
		Expect(err).To(BeNil())
		Expect(vms).To(HaveLen(2))
		Expect(vms[1]).To(Equal(estimation.VM{ID: "vm-2", VCPUs: 1, MemoryMB: 2048, StorageMB: 1024, Criticality: 2}))
	})

	It("reads a json object with a vms key", func() {
		vms, err := inventory.ParseDocument([]byte(`{"vms": [{"id": "vm-1", "vcpus": 2, "memory_mb": 1024, "storage_mb": 2048, "datacenter": "dc1"}]}`))
		Expect(err).To(BeNil())
		Expect(vms).To(Equal([]estimation.VM{{ID: "vm-1", VCPUs: 2, MemoryMB: 1024, StorageMB: 2048, Datacenter: "dc1"}}))
	})

	It("returns an empty list for an empty document", func() {
		vms, err := inventory.ParseDocument([]byte("  \n"))
		Expect(err).To(BeNil())
		Expect(vms).To(BeEmpty())
		Expect(vms).NotTo(BeNil())
	})

	DescribeTable("rejects invalid records",
		func(doc string) {
			_, err := inventory.ParseDocument([]byte(doc))
			Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())
		},
		Entry("missing id", `[{"vcpus": 1}]`),
		Entry("negative storage", `[{"id": "a", "storage_mb": -1}]`),
		Entry("duplicate id", `[{"id": "a"}, {"id": "a"}]`),
	)

	It("reports a read error with the path", func() {
		_, err := inventory.LoadVMs(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("missing.yaml"))
	})
})

var _ = Describe("Selector", func() {
	vms := []estimation.VM{
		{ID: "a", Datacenter: "dc1", Criticality: 0},
		{ID: "b", Datacenter: "dc2", Criticality: 1},
		{ID: "c", Datacenter: "dc1", Criticality: 2},
		{ID: "d", Datacenter: "dc3", Criticality: 3},
	}

	ids := func(vms []estimation.VM) []string {
		res := []string{}
		for _, vm := range vms {
			res = append(res, vm.ID)
		}
		return res
	}

	It("selects everything when empty", func() {
		s := inventory.Selector{}
		Expect(ids(s.Select(vms))).To(Equal([]string{"a", "b", "c", "d"}))
		Expect(s.String()).To(Equal("all virtual machines"))
	})

	It("combines every field", func() {
		s := inventory.Selector{Datacenters: []string{"dc1", "dc3"}, MinCriticality: ptr(1), MaxCriticality: ptr(2)}
		Expect(ids(s.Select(vms))).To(Equal([]string{"c"}))
		Expect(s.String()).To(Equal("datacenter in (dc1, dc3) and criticality >= 1 and criticality <= 2"))
	})

	It("may resolve to an empty selection", func() {
		s := inventory.Selector{VMIDs: []string{"z"}}
		selected := s.Select(vms)
		Expect(selected).To(BeEmpty())
		Expect(selected).NotTo(BeNil())
	})
})

var _ = Describe("Plan", func() {
	const plan = `
inventory: vms.yaml
vms:
  - id: inline-1
    vcpus: 2
    memory_mb: 4096
    storage_mb: 512000
    datacenter: dc1
targets:
  - name: aws
    platform: aws
    bandwidth_mbps: 1000
    network_egress_per_gb: 0.09
  - name: dc
    platform: on-prem
    bandwidth_mbps: 10000
    network_efficiency: 1
    max_parallel_migrations: 4
scenarios:
  - name: cloud
    target: aws
    strategy: rehost
    parallel_migrations: 5
    selector:
      datacenters: [dc1]
  - name: local
    target: dc
    strategy: REPLATFORM
`

	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "vms.yaml"), []byte(`
vms:
  - id: file-1
    vcpus: 4
    memory_mb: 8192
    storage_mb: 1024
    datacenter: dc2
`), 0600)).To(Succeed())
	})

	It("loads targets with defaults and the referenced inventory", func() {
		path := filepath.Join(dir, "plan.yaml")
		Expect(os.WriteFile(path, []byte(plan), 0600)).To(Succeed())

		p, err := inventory.LoadPlan(path)
		Expect(err).To(BeNil())
		Expect(p.VMs).To(HaveLen(2))
		Expect(p.Targets).To(HaveLen(2))

		aws, ok := p.Target("aws")
		Expect(ok).To(BeTrue())
		Expect(aws.Platform).To(Equal(estimation.PlatformAWS))
		Expect(aws.NetworkEfficiency).To(Equal(estimation.DefaultNetworkEfficiency))
		Expect(aws.CompressionRatio).To(Equal(estimation.DefaultCompressionRatio))
		Expect(aws.NetworkEgressPerGB).To(Equal(0.09))

		dc, _ := p.Target("dc")
		Expect(dc.Platform).To(Equal(estimation.PlatformOnPrem))
		Expect(dc.NetworkEfficiency).To(Equal(1.0))
	})

	It("resolves scenarios", func() {
		path := filepath.Join(dir, "plan.yaml")
		Expect(os.WriteFile(path, []byte(plan), 0600)).To(Succeed())
		p, err := inventory.LoadPlan(path)
		Expect(err).To(BeNil())

		scenarios, err := p.Resolve()
		Expect(err).To(BeNil())
		Expect(scenarios).To(HaveLen(2))

		Expect(scenarios[0].Name).To(Equal("cloud"))
		Expect(scenarios[0].Strategy).To(Equal(estimation.StrategyRehost))
		Expect(scenarios[0].ParallelMigrations).To(Equal(5))
		Expect(scenarios[0].VMs).To(HaveLen(1))
		Expect(scenarios[0].VMs[0].ID).To(Equal("inline-1"))
		Expect(scenarios[0].Criteria).To(Equal("datacenter in (dc1)"))
		Expect(scenarios[0].Evaluated()).To(BeFalse())

		Expect(scenarios[1].ParallelMigrations).To(Equal(4))
		Expect(scenarios[1].VMs).To(HaveLen(2))
	})

	DescribeTable("rejects invalid scenarios",
		func(scenarios string) {
			p, err := inventory.ParsePlan([]byte(`
targets:
  - name: aws
    platform: AWS
    bandwidth_mbps: 100
scenarios:
` + scenarios))
			Expect(err).To(BeNil())
			_, err = p.Resolve()
			Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())
		},
		Entry("unknown target", "  - {name: a, target: gcp, strategy: REHOST}\n"),
		Entry("unknown strategy", "  - {name: a, target: aws, strategy: REWRITE}\n"),
		Entry("missing name", "  - {target: aws, strategy: REHOST}\n"),
		Entry("duplicate name", "  - {name: a, target: aws, strategy: REHOST}\n  - {name: a, target: aws, strategy: RETIRE}\n"),
	)

	It("rejects an invalid target", func() {
		_, err := inventory.ParsePlan([]byte(`
targets:
  - name: aws
    platform: AWS
    bandwidth_mbps: 0
`))
		Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())
	})
})
