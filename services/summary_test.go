package services

import (
	"bulkimage/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		report   *types.ScanReport
		expected []string
	}{
		{
			name:   "empty report",
			report: &types.ScanReport{},
			expected: []string{
				"Total images fetched: 0",
				"Total size of loaded files: 0.00 KB",
			},
		},
		{
			name:   "fractional kilobytes",
			report: &types.ScanReport{TotalCount: 3, TotalSizeBytes: 1536},
			expected: []string{
				"Total images fetched: 3",
				"Total size of loaded files: 1.50 KB",
			},
		},
		{
			name:   "rounds to two decimals",
			report: &types.ScanReport{TotalCount: 1, TotalSizeBytes: 1000},
			expected: []string{
				"Total images fetched: 1",
				"Total size of loaded files: 0.98 KB",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summary(tt.report))
		})
	}

	assert.Nil(t, Summary(nil))
}

func TestRecordDimensions(t *testing.T) {
	record := types.ImageFileRecord{Width: 1920, Height: 1080}
	assert.Equal(t, "1920x1080", record.Dimensions())
}
