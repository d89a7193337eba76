package cmd

import (
	"bulkimage/config"
	"bulkimage/services"
	"bulkimage/types"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
)

// ScanOptions controls a command-line scan
type ScanOptions struct {
	Folder       string
	Summary      bool
	EnsureOutput bool
	ShowProgress bool
	Extensions   []string
}

// Extensions returns the default image extensions plus configured extras
func Extensions() []string {
	return append(append([]string(nil), services.DefaultExtensions...), config.GetExtraExtensions()...)
}

// RunScan scans a folder and prints its listing to out
func RunScan(opts ScanOptions, out io.Writer) error {
	scanner := services.NewFolderScanner(opts.Extensions...)

	var bar *progressbar.ProgressBar
	progress := func(done, total int, fileName string) {
		if !opts.ShowProgress {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("Scanning"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Add(1)
	}

	report, err := scanner.ScanWithProgress(opts.Folder, progress)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("scan %s: %w", opts.Folder, err)
	}

	if err := PrintReport(out, report); err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		log.Printf("Skipped %s: %s", warning.FileName, warning.Reason)
	}

	if opts.Summary {
		for _, line := range services.Summary(report) {
			fmt.Fprintln(out, line)
		}
	}

	if opts.EnsureOutput {
		outputPath, err := scanner.EnsureOutputSubfolder(opts.Folder)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Output folder: %s\n", outputPath)
	}

	return nil
}

// PrintReport writes a File / Type / Dimensions / Size table
func PrintReport(out io.Writer, report *types.ScanReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "File\tType\tDimensions\tSize")
	for _, record := range report.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", record.FileName, record.Format, record.Dimensions(), record.SizeBytes)
	}
	return w.Flush()
}
