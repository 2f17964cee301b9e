package inventory

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const vInfoSheet = "vInfo"

// vInfo columns, lower cased.
const (
	colVM             = "vm"
	colVMID           = "vm id"
	colCPUs           = "cpus"
	colMemory         = "memory"
	colProvisionedMiB = "provisioned mib"
	colInUseMiB       = "in use mib"
	colDatacenter     = "datacenter"
	colTemplate       = "template"
	colCriticality    = "criticality"
)

// ParseXLSX reads the vInfo sheet of an RVTools export. Templates are skipped.
func ParseXLSX(content []byte) ([]estimation.VM, error) {
	excelFile, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "error opening Excel file")
	}
	defer excelFile.Close()

	rows := readSheet(excelFile, excelFile.GetSheetList(), vInfoSheet)
	if len(rows) == 0 {
		return nil, estimation.NewErrInvalidConfiguration("workbook has no %s sheet", vInfoSheet)
	}

	colMap := buildColumnMap(rows[0])
	if _, ok := colMap[colVM]; !ok {
		return nil, estimation.NewErrInvalidConfiguration("%s sheet has no %q column", vInfoSheet, "VM")
	}

	vms := make([]estimation.VM, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := getColumnValue(row, colMap, colVM)
		if name == "" {
			continue
		}
		if parseBooleanValue(getColumnValue(row, colMap, colTemplate)) {
			continue
		}

		id := getColumnValue(row, colMap, colVMID)
		if id == "" {
			id = name
		}

		storage := parseFormattedInt64(getColumnValue(row, colMap, colProvisionedMiB))
		if storage == 0 {
			storage = parseFormattedInt64(getColumnValue(row, colMap, colInUseMiB))
		}

		vms = append(vms, estimation.VM{
			ID:          id,
			Name:        name,
			VCPUs:       parseIntOrZero(getColumnValue(row, colMap, colCPUs)),
			MemoryMB:    parseFormattedInt64(getColumnValue(row, colMap, colMemory)),
			StorageMB:   storage,
			Criticality: parseIntOrZero(getColumnValue(row, colMap, colCriticality)),
			Datacenter:  getColumnValue(row, colMap, colDatacenter),
		})
	}

	zap.S().Named("inventory").Debugw("parsed workbook", "sheet", vInfoSheet, "vms", len(vms))
	return vms, Validate(vms)
}

// IsExcelFile reports whether the content is a zip container excelize can open.
func IsExcelFile(content []byte) bool {
	if len(content) < 2 || content[0] != 0x50 || content[1] != 0x4B {
		return false
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return false
	}
	defer f.Close()
	return true
}

func readSheet(excelFile *excelize.File, sheets []string, sheetName string) [][]string {
	if !slices.Contains(sheets, sheetName) {
		return [][]string{}
	}

	rows, err := excelFile.GetRows(sheetName)
	if err != nil {
		zap.S().Named("inventory").Warnf("Could not read %s sheet: %v", sheetName, err)
		return [][]string{}
	}
	return rows
}

func buildColumnMap(headers []string) map[string]int {
	colMap := make(map[string]int)
	for i, header := range headers {
		colMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	return colMap
}

func getColumnValue(row []string, colMap map[string]int, key string) string {
	if idx, exists := colMap[key]; exists && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseIntOrZero(s string) int {
	val, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil {
		return 0
	}
	return val
}

// parseFormattedInt64 keeps the digits only, so "1,024" and "1 024" both read as 1024.
func parseFormattedInt64(s string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, strings.SplitN(strings.TrimSpace(s), ".", 2)[0])

	if digits == "" {
		return 0
	}
	val, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		zap.S().Named("inventory").Warnf("Invalid numeric string: %s", digits)
		return 0
	}
	return val
}

func parseBooleanValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
