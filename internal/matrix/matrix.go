// Package matrix wraps third-party 2D symbol codecs and converts their
// bit matrices into the run-length chunk form the layout engine draws.
package matrix

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/aztec"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"

	"github.com/printforge/barcode-engine/pkg/gs1"
	"github.com/printforge/barcode-engine/pkg/symbol"
)

// Format selects the 2D symbology.
type Format int

const (
	QR Format = iota
	DataMatrix
	PDF417
	Aztec
)

func (f Format) String() string {
	switch f {
	case QR:
		return "QR Code"
	case DataMatrix:
		return "Data Matrix"
	case PDF417:
		return "PDF417"
	case Aztec:
		return "Aztec"
	}
	return "unknown"
}

// Options are the codec hints. Zero values pick codec defaults.
type Options struct {
	// ErrorCorrection in 0..3 maps to the format's levels (QR
	// L/M/Q/H, PDF417 security levels scale from it, Aztec minimum
	// redundancy percent).
	ErrorCorrection int
	// GS1 validates the content as AI-structured data and encodes
	// the machine projection without its leading separator.
	GS1 bool
	// Columns applies to PDF417 only.
	Columns int
}

// Codec turns a content string into a bit matrix. Implementations are
// chosen once at construction.
type Codec interface {
	Name() string
	Encode(content string) (BitMatrix, error)
}

// BitMatrix is a read-only module grid.
type BitMatrix interface {
	Size() (w, h int)
	At(x, y int) bool
}

// New returns the codec for the format.
func New(format Format, opts Options) (Codec, error) {
	switch format {
	case QR:
		return &qrCodec{level: qrLevel(opts.ErrorCorrection), gs1: opts.GS1}, nil
	case DataMatrix:
		return &dataMatrixCodec{gs1: opts.GS1}, nil
	case PDF417:
		return &pdf417Codec{security: byte(clamp(opts.ErrorCorrection*2, 0, 8)), gs1: opts.GS1}, nil
	case Aztec:
		return &aztecCodec{minECC: 23 + opts.ErrorCorrection*10, gs1: opts.GS1}, nil
	}
	return nil, fmt.Errorf("matrix: unknown format %d", format)
}

func qrLevel(ec int) qr.ErrorCorrectionLevel {
	switch ec {
	case 0:
		return qr.L
	case 2:
		return qr.Q
	case 3:
		return qr.H
	}
	return qr.M
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// prepare runs GS1 validation when requested and strips the leading
// separator marker, which 2D codecs represent through their own GS1
// mode rather than as data.
func prepare(content string, useGS1 bool) (string, error) {
	if !useGS1 {
		return content, nil
	}
	parsed, err := gs1.Parse(content)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(parsed.Encodable(), string(symbol.FNC1)), nil
}

type qrCodec struct {
	level qr.ErrorCorrectionLevel
	gs1   bool
}

func (c *qrCodec) Name() string { return "QR Code" }

func (c *qrCodec) Encode(content string) (BitMatrix, error) {
	data, err := prepare(content, c.gs1)
	if err != nil {
		return nil, err
	}
	bc, err := qr.Encode(data, c.level, qr.Auto)
	if err != nil {
		return nil, err
	}
	return wrap(bc), nil
}

type dataMatrixCodec struct {
	gs1 bool
}

func (c *dataMatrixCodec) Name() string { return "Data Matrix" }

func (c *dataMatrixCodec) Encode(content string) (BitMatrix, error) {
	data, err := prepare(content, c.gs1)
	if err != nil {
		return nil, err
	}
	bc, err := datamatrix.Encode(data)
	if err != nil {
		return nil, err
	}
	return wrap(bc), nil
}

type pdf417Codec struct {
	security byte
	gs1      bool
}

func (c *pdf417Codec) Name() string { return "PDF417" }

func (c *pdf417Codec) Encode(content string) (BitMatrix, error) {
	data, err := prepare(content, c.gs1)
	if err != nil {
		return nil, err
	}
	bc, err := pdf417.Encode(data, c.security)
	if err != nil {
		return nil, err
	}
	return wrap(bc), nil
}

type aztecCodec struct {
	minECC int
	gs1    bool
}

func (c *aztecCodec) Name() string { return "Aztec" }

func (c *aztecCodec) Encode(content string) (BitMatrix, error) {
	data, err := prepare(content, c.gs1)
	if err != nil {
		return nil, err
	}
	bc, err := aztec.Encode([]byte(data), c.minECC, 0)
	if err != nil {
		return nil, err
	}
	return wrap(bc), nil
}

// imageMatrix adapts the codec's image form. A module is set when its
// pixel is dark.
type imageMatrix struct {
	bc barcode.Barcode
}

func wrap(bc barcode.Barcode) BitMatrix { return &imageMatrix{bc: bc} }

func (m *imageMatrix) Size() (int, int) {
	b := m.bc.Bounds()
	return b.Dx(), b.Dy()
}

func (m *imageMatrix) At(x, y int) bool {
	b := m.bc.Bounds()
	c := color.GrayModel.Convert(m.bc.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
	return c.Y < 128
}
