package main

import (
	"bulkimage/cmd"
	"bulkimage/config"
	"flag"
	"log"
	"os"
)

func main() {
	var (
		folder   string
		summary  bool
		output   bool
		server   bool
		port     int
		progress bool
	)

	flag.StringVar(&folder, "folder", config.GetDefaultFolder(), "Folder to scan for images")
	flag.BoolVar(&summary, "summary", false, "Print total count and size after the listing")
	flag.BoolVar(&output, "output", false, "Create the output subfolder beneath the scanned folder")
	flag.BoolVar(&progress, "progress", true, "Show a progress bar while scanning")
	flag.BoolVar(&server, "server", false, "Start in web server mode")
	flag.IntVar(&port, "port", 8080, "Port for web server mode")
	flag.Parse()

	// Server mode takes precedence
	if server {
		cmd.StartWebServer(port)
		return
	}

	opts := cmd.ScanOptions{
		Folder:       folder,
		Summary:      summary,
		EnsureOutput: output,
		ShowProgress: progress,
		Extensions:   cmd.Extensions(),
	}

	if err := cmd.RunScan(opts, os.Stdout); err != nil {
		log.Fatalf("Error: %s", err)
	}
}
