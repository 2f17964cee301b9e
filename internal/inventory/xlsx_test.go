package inventory_test

import (
	"os"
	"path/filepath"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/inventory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

func workbook(sheet string, rows ...[]any) []byte {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheet)
	Expect(err).To(BeNil())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).To(BeNil())
		Expect(f.SetSheetRow(sheet, cell, &row)).To(Succeed())
	}

	buf, err := f.WriteToBuffer()
	Expect(err).To(BeNil())
	return buf.Bytes()
}

var vInfoHeader = []any{"VM", "VM ID", "CPUs", "Memory", "Provisioned MiB", "In Use MiB", "Datacenter", "Template"}

var _ = Describe("ParseXLSX", func() {
	It("reads the vInfo sheet", func() {
		content := workbook("vInfo",
			vInfoHeader,
			[]any{"web-1", "vm-101", 2, 4096, "10,240", 5120, "dc1", "False"},
			[]any{"db-1", "vm-102", 8, 32768, 512000, 200000, "dc2", "False"},
		)

		vms, err := inventory.ParseXLSX(content)
		Expect(err).To(BeNil())
		Expect(vms).To(Equal([]estimation.VM{
			{ID: "vm-101", Name: "web-1", VCPUs: 2, MemoryMB: 4096, StorageMB: 10240, Datacenter: "dc1"},
			{ID: "vm-102", Name: "db-1", VCPUs: 8, MemoryMB: 32768, StorageMB: 512000, Datacenter: "dc2"},
		}))
	})

	It("skips templates and blank rows", func() {
		content := workbook("vInfo",
			vInfoHeader,
			[]any{"golden", "vm-1", 2, 4096, 1024, 0, "dc1", "True"},
			[]any{"", "", "", "", "", "", "", ""},
			[]any{"app", "vm-2", 2, 4096, 1024, 0, "dc1", "False"},
		)

		vms, err := inventory.ParseXLSX(content)
		Expect(err).To(BeNil())
		Expect(vms).To(HaveLen(1))
		Expect(vms[0].ID).To(Equal("vm-2"))
	})

	It("falls back to the name and the in use storage", func() {
		content := workbook("vInfo",
			[]any{"VM", "CPUs", "In Use MiB", "Criticality"},
			[]any{"app", 4, 2048, 3},
		)

		vms, err := inventory.ParseXLSX(content)
		Expect(err).To(BeNil())
		Expect(vms).To(Equal([]estimation.VM{{ID: "app", Name: "app", VCPUs: 4, StorageMB: 2048, Criticality: 3}}))
	})

	It("fails without a vInfo sheet", func() {
		_, err := inventory.ParseXLSX(workbook("vHost", []any{"Host"}))
		Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())
	})

	It("fails on duplicate ids", func() {
		content := workbook("vInfo",
			vInfoHeader,
			[]any{"a", "vm-1", 1, 1024, 1024, 0, "dc1", ""},
			[]any{"b", "vm-1", 1, 1024, 1024, 0, "dc1", ""},
		)
		_, err := inventory.ParseXLSX(content)
		Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())
	})

	It("fails on content that is not a workbook", func() {
		_, err := inventory.ParseXLSX([]byte("not a workbook"))
		Expect(err).NotTo(BeNil())
		Expect(inventory.IsExcelFile([]byte("not a workbook"))).To(BeFalse())
	})

	It("is picked by LoadVMs from the extension", func() {
		path := filepath.Join(GinkgoT().TempDir(), "export.xlsx")
		Expect(os.WriteFile(path, workbook("vInfo", vInfoHeader, []any{"a", "vm-1", 1, 1024, 1024, 0, "dc1", ""}), 0600)).To(Succeed())

		vms, err := inventory.LoadVMs(path)
		Expect(err).To(BeNil())
		Expect(vms).To(HaveLen(1))
	})
})
