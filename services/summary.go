package services

import (
	"bulkimage/types"
	"fmt"
	"log"
)

// Summary returns the human-readable totals lines for a report
func Summary(report *types.ScanReport) []string {
	if report == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Total images fetched: %d", report.TotalCount),
		fmt.Sprintf("Total size of loaded files: %.2f KB", float64(report.TotalSizeBytes)/1024),
	}
}

// LogSummary writes the totals lines for a report to the standard logger
func LogSummary(report *types.ScanReport) {
	for _, line := range Summary(report) {
		log.Print(line)
	}
}
