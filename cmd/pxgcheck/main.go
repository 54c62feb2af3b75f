// pxgcheck validates PXG files for structural correctness.
//
// Usage:
//
//	pxgcheck [-q|--quiet] <filename> [<filename> ...]
//
// Options:
//
//	-q, --quiet   Only output errors. Exit code indicates pass/fail.
//	-h, --help    Show this help message.
//	--version     Show version information.
//
// Exit codes:
//
//	0: All files valid
//	1: One or more files invalid
//	2: Error (file not found, etc.)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pxgfmt/go-pxg/pxg"
)

const version = "1.0.0"

func main() {
	quiet := false
	files := []string{}

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-q", "--quiet":
			quiet = true
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("pxgcheck version %s\n", version)
			fmt.Println("Part of go-pxg - PXG pixel-art format library")
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input files specified")
		printUsage()
		os.Exit(2)
	}

	invalid := false
	errorOccurred := false
	for _, filename := range files {
		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", filename, err)
			errorOccurred = true
			continue
		}
		ctx, err := pxg.Decode(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: invalid: %v\n", filename, err)
			invalid = true
			continue
		}
		if !quiet {
			h := ctx.Header
			fmt.Printf("%s: OK  %dx%d, %d colors, %d bpp", filename, h.Width, h.Height, h.NumColors, h.BitsPerPixel())
			if h.HasBackground {
				fmt.Print(", background")
			}
			if h.Compressed {
				fmt.Print(", compressed")
			}
			fmt.Println()
		}
	}

	switch {
	case errorOccurred:
		os.Exit(2)
	case invalid:
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: pxgcheck [-q|--quiet] <filename> [<filename> ...]")
	fmt.Println()
	fmt.Println("Validates PXG pixel-art files for structural correctness.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -q, --quiet   Only output errors; exit code indicates pass/fail")
	fmt.Println("  -h, --help    Show this help message")
	fmt.Println("  --version     Show version information")
}
