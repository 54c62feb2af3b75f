// pxg2svg renders PXG pixel-art files to SVG.
//
// Usage:
//
//	pxg2svg [-f|--fragment] [-u|--unsafe] [-o <output>] <filename>
//
// Options:
//
//	-f, --fragment  Emit only the rectangle elements, no document wrapper.
//	-u, --unsafe    Skip validation; trusts the input completely.
//	-o <output>     Output path ("-" for stdout). Default: input with .svg.
//	-h, --help      Show this help message.
//	--version       Show version information.
//
// Exit codes:
//
//	0: Success
//	1: Invalid input file
//	2: Error (file not found, bad arguments, etc.)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pxgfmt/go-pxg/pxg"
)

const version = "1.0.0"

func main() {
	fragment := false
	unsafe := false
	output := ""
	input := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-f", "--fragment":
			fragment = true
		case "-u", "--unsafe":
			unsafe = true
		case "-o":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -o requires an argument")
				os.Exit(2)
			}
			i++
			output = args[i]
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("pxg2svg version %s\n", version)
			fmt.Println("Part of go-pxg - PXG pixel-art format library")
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			if input != "" {
				fmt.Fprintln(os.Stderr, "Error: multiple input files specified")
				os.Exit(2)
			}
			input = arg
		}
	}

	if input == "" {
		fmt.Fprintln(os.Stderr, "Error: No input file specified")
		printUsage()
		os.Exit(2)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
		os.Exit(2)
	}

	var svg string
	if fragment {
		svg, err = pxg.RenderFragment(data, !unsafe)
	} else {
		svg, err = pxg.RenderDocument(data, !unsafe)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
		os.Exit(1)
	}

	if output == "-" {
		fmt.Print(svg)
		return
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if err := os.WriteFile(output, []byte(svg), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", output, err)
		os.Exit(2)
	}
	fmt.Printf("Wrote %s\n", output)
}

func printUsage() {
	fmt.Println("Usage: pxg2svg [-f|--fragment] [-u|--unsafe] [-o <output>] <filename>")
	fmt.Println()
	fmt.Println("Renders a PXG pixel-art file to SVG.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -f, --fragment  Emit only the rectangle elements, no document wrapper")
	fmt.Println("  -u, --unsafe    Skip validation; trusts the input completely")
	fmt.Println("  -o <output>     Output path (\"-\" for stdout); default input with .svg")
	fmt.Println("  -h, --help      Show this help message")
	fmt.Println("  --version       Show version information")
}
