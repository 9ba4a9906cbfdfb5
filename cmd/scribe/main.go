// Package main is the entry point for the scribe terminal editor.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Options are the command line settings.
type Options struct {
	ConfigPath string
	DocumentID string
	ImportPath string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	a, err := newApp(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() Options {
	var opts Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.DocumentID, "id", "", "Document ID to open and save under")
	flag.StringVar(&opts.ImportPath, "import", "", "Load the initial content from an HTML or text file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scribe - inline rich-text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scribe [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  \\            open the command palette\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+B       toggle bold\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S       save\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q       quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("scribe %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}
	return opts
}
