// pxgencode converts raster images to the PXG pixel-art format.
//
// Usage:
//
//	pxgencode [options] <input-image>
//
// Input may be PNG, JPEG, GIF, or QOI. The image must use at most 255
// distinct colors after any downscaling.
//
// Options:
//
//	-s <scale>    Display scale stored in the header (0 = auto).
//	-m <size>     Downscale so the larger dimension fits <size> pixels.
//	-b            Store the most frequent color as a background fill.
//	-z            Compress the payload with zlib.
//	-o <output>   Output path. Default: input with .pxg extension.
//	-h, --help    Show this help message.
//	--version     Show version information.
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/xfmoulet/qoi"

	"github.com/pxgfmt/go-pxg/pxgutil"
)

const version = "1.0.0"

func main() {
	opts := pxgutil.FromImageOptions{}
	output := ""
	input := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-s", "-m", "-o":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: %s requires an argument\n", arg)
				os.Exit(2)
			}
			i++
			val := args[i]
			switch arg {
			case "-o":
				output = val
			default:
				n, err := strconv.Atoi(val)
				if err != nil || n < 0 {
					fmt.Fprintf(os.Stderr, "Error: %s requires a non-negative integer\n", arg)
					os.Exit(2)
				}
				if arg == "-s" {
					opts.Scale = n
				} else {
					opts.MaxSize = n
				}
			}
		case "-b":
			opts.Background = true
		case "-z":
			opts.Compress = true
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("pxgencode version %s\n", version)
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

	img, err := decodeImage(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
		os.Exit(2)
	}

	data, err := pxgutil.FromImage(img, &opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
		os.Exit(1)
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pxg"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", output, err)
		os.Exit(2)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", output, len(data))
}

// decodeImage reads an image file, handling QOI explicitly and everything
// else through the registered stdlib decoders.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".qoi") {
		return qoi.Decode(f)
	}
	img, _, err := image.Decode(f)
	return img, err
}

func printUsage() {
	fmt.Println("Usage: pxgencode [options] <input-image>")
	fmt.Println()
	fmt.Println("Converts a PNG, JPEG, GIF, or QOI image to the PXG format.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -s <scale>    Display scale stored in the header (0 = auto)")
	fmt.Println("  -m <size>     Downscale so the larger dimension fits <size> pixels")
	fmt.Println("  -b            Store the most frequent color as a background fill")
	fmt.Println("  -z            Compress the payload with zlib")
	fmt.Println("  -o <output>   Output path; default input with .pxg extension")
	fmt.Println("  -h, --help    Show this help message")
	fmt.Println("  --version     Show version information")
}
