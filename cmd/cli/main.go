// Command barcode-cli encodes a single barcode to a file.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/printforge/barcode-engine/internal/api"
	"github.com/printforge/barcode-engine/pkg/symbol"
)

func main() {
	var (
		typ           = flag.String("type", "code128", "symbology tag (see -list)")
		format        = flag.String("fmt", "", "output format: pdf, eps, svg, png, jpeg, bmp (default: from file extension)")
		out           = flag.String("o", "", "output file (required)")
		width         = flag.Float64("width", 50, "symbol box width in mm")
		height        = flag.Float64("height", 30, "symbol box height in mm")
		dpi           = flag.Float64("dpi", 300, "raster resolution")
		ratio         = flag.Float64("ratio", 0, "wide:narrow ratio for two-width symbologies (2.0-3.0)")
		moduleWidth   = flag.Float64("module", 0, "explicit module width in mm (0 = derive from box)")
		dotSize       = flag.Float64("dot", 0, "device dot size in mm (0 = unconstrained)")
		barCorrection = flag.Float64("correction", 0, "bar width correction in mm")
		addOn         = flag.String("addon", "", "2- or 5-digit add-on (UPC/EAN family)")
		customText    = flag.String("text", "", "override the human-readable text")
		fontSize      = flag.Float64("font-size", 0, "text size in mm (0 = auto-fit to symbol width)")
		noText        = flag.Bool("no-text", false, "hide the human-readable text")
		textOnTop     = flag.Bool("top", false, "place text above the bars")
		autoComplete  = flag.Bool("complete", false, "compute a missing check digit")
		withChecksum  = flag.Bool("checksum", false, "append the elective checksum")
		showChecksum  = flag.Bool("show-checksum", false, "include the elective checksum in the text")
		cmyk          = flag.Bool("cmyk", false, "CMYK vector output (PDF/X-1a, setcmykcolor)")
		transform     = flag.String("transform", "", "page transform: 90, 180, 270, mirror, mirror90, ...")
		list          = flag.Bool("list", false, "list symbologies and exit")
	)
	flag.Parse()

	if *list {
		listSymbologies()
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: barcode-cli [flags] <content>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "error: -o is required")
		os.Exit(2)
	}

	fmtName := *format
	if fmtName == "" {
		fmtName = strings.TrimPrefix(strings.ToLower(extOf(*out)), ".")
	}
	tr, err := api.ParseTransform(*transform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	req := api.Request{
		Type:               symbol.Type(*typ),
		Content:            flag.Arg(0),
		Format:             fmtName,
		WidthMM:            *width,
		HeightMM:           *height,
		AutoComplete:       *autoComplete,
		WithChecksum:       *withChecksum,
		ShowChecksum:       *showChecksum,
		ShowText:           !*noText,
		TextOnTop:          *textOnTop,
		CustomText:         *customText,
		AddOn:              *addOn,
		Ratio:              *ratio,
		FontSize:           *fontSize,
		ModuleWidth:        *moduleWidth,
		DotSize:            *dotSize,
		BarWidthCorrection: *barCorrection,
		DPIX:               *dpi,
		CMYK:               *cmyk,
		Transform:          tr,
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := api.Encode(f, req); err != nil {
		f.Close()
		os.Remove(*out)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

func listSymbologies() {
	types := symbol.Types()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		b, err := symbol.New(t)
		if err != nil {
			continue
		}
		fmt.Printf("%-16s %s\n", t, b.Name())
	}
}
