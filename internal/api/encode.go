package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/printforge/barcode-engine/internal/export"
	"github.com/printforge/barcode-engine/internal/render"
	"github.com/printforge/barcode-engine/pkg/symbol"
)

// Request describes one encode job. It is shared by the HTTP handler
// and the command line tool.
type Request struct {
	Type    symbol.Type
	Content string
	Format  string // pdf, eps, svg, png, jpeg, bmp

	WidthMM  float64
	HeightMM float64

	AutoComplete bool
	WithChecksum bool
	ShowChecksum bool
	ShowText     bool
	TextOnTop    bool
	CustomText   string
	AddOn        string
	Ratio        float64

	// FontSize fixes the text size in millimeters; 0 auto-fits the
	// text to the symbol width.
	FontSize float64

	ModuleWidth        float64
	DotSize            float64
	BarWidthCorrection float64

	DPIX, DPIY float64
	CMYK       bool
	Transform  export.Transform
	Title      string
}

// Defaults fills unset physical parameters.
func (r *Request) Defaults() {
	if r.Format == "" {
		r.Format = "png"
	}
	if r.WidthMM <= 0 {
		r.WidthMM = 50
	}
	if r.HeightMM <= 0 {
		r.HeightMM = 30
	}
}

// ContentType returns the MIME type for the request's format.
func (r *Request) ContentType() string {
	switch strings.ToLower(r.Format) {
	case "pdf":
		return "application/pdf"
	case "eps":
		return "application/postscript"
	case "svg":
		return "image/svg+xml"
	case "jpeg", "jpg":
		return "image/jpeg"
	case "bmp":
		return "image/bmp"
	}
	return "image/png"
}

// Encode builds the barcode, lays it out on a fresh document and
// serializes it in the requested format.
func Encode(w io.Writer, req Request) error {
	req.Defaults()

	b, err := symbol.New(req.Type)
	if err != nil {
		return err
	}
	b.SetShowText(req.ShowText)
	b.SetTextOnTop(req.TextOnTop)
	b.SetShowChecksum(req.ShowChecksum)
	if req.FontSize > 0 {
		b.SetFont("", req.FontSize)
	} else {
		b.SetAutoFitFont(true)
	}
	if req.Ratio > 0 {
		b.SetRatio(req.Ratio)
	}
	if req.CustomText != "" {
		b.SetText(req.CustomText)
	}
	if err := b.SetAddOn(req.AddOn); err != nil {
		return err
	}
	if err := b.SetContent(req.Content, req.AutoComplete, req.WithChecksum); err != nil {
		return err
	}

	doc := export.NewDocument(req.WidthMM, req.HeightMM)
	doc.Title = req.Title
	if doc.Title == "" {
		doc.Title = fmt.Sprintf("%s %s", b.Name(), b.Text())
	}
	doc.Creator = "barcode-engine"
	doc.Transform = req.Transform

	err = render.Draw(doc, b, render.Options{
		Width:              req.WidthMM,
		Height:             req.HeightMM,
		DotSize:            req.DotSize,
		ModuleWidth:        req.ModuleWidth,
		BarWidthCorrection: req.BarWidthCorrection,
	})
	if err != nil {
		return err
	}

	raster := export.RasterOptions{DPIX: req.DPIX, DPIY: req.DPIY}
	switch strings.ToLower(req.Format) {
	case "pdf":
		return doc.EncodePDF(w, export.PDFOptions{UseCMYK: req.CMYK})
	case "eps":
		return doc.EncodeEPS(w, export.EPSOptions{UseCMYK: req.CMYK, WithPreview: true, PreviewDPI: 72})
	case "svg":
		return doc.EncodeSVG(w)
	case "png":
		return doc.EncodePNG(w, raster)
	case "jpeg", "jpg":
		return doc.EncodeJPEG(w, raster)
	case "bmp":
		return doc.EncodeBMP(w, raster)
	}
	return fmt.Errorf("unknown output format %q", req.Format)
}

// ParseTransform maps the wire names to the page transform.
func ParseTransform(s string) (export.Transform, error) {
	switch strings.ToLower(s) {
	case "", "none", "0":
		return export.TransformNone, nil
	case "90":
		return export.Transform90, nil
	case "180":
		return export.Transform180, nil
	case "270":
		return export.Transform270, nil
	case "mirror":
		return export.TransformMirror, nil
	case "mirror90":
		return export.TransformMirror90, nil
	case "mirror180":
		return export.TransformMirror180, nil
	case "mirror270":
		return export.TransformMirror270, nil
	}
	return export.TransformNone, fmt.Errorf("unknown transform %q", s)
}
