package main

import (
	"fmt"
	"os"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/sniff"
)

// Useful test tool to confirm what the sniffer actually sees for a file.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sniff-probe <file>...")
		os.Exit(1)
	}

	for _, path := range os.Args[1:] {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			continue
		}
		stat, err := f.Stat()
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			f.Close()
			continue
		}

		candidates, diags := sniff.Sniff(binary.NewSafeReader(f, stat.Size(), path))
		f.Close()

		fmt.Printf("%s (%d bytes)\n", path, stat.Size())
		if len(candidates) == 0 {
			fmt.Println("  no candidates")
		}
		for _, c := range candidates {
			fmt.Printf("  %-8s confidence=%.1f method=%s\n", c.Format, c.Confidence, c.Method)
		}
		for _, d := range diags {
			fmt.Printf("  diagnostic: %s\n", d)
		}
	}
}
