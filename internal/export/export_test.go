package export

import (
	"bytes"
	"encoding/binary"
	"image"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"
)

func sampleDocument() *Document {
	d := NewDocument(40, 20)
	d.Title = "EAN-13 4006381333931"
	d.Creator = "barcode-engine"
	d.FillRect(5, 2, 1, 15)
	d.FillRect(7, 2, 2, 15)
	d.SetFont("Helvetica", 3)
	d.DrawText("4006381333931", 10, 19)
	return d
}

func TestTransformRect(t *testing.T) {
	d := NewDocument(40, 20)
	r := Rect{X: 5, Y: 2, W: 1, H: 15}

	cases := []struct {
		tr   Transform
		want Rect
	}{
		{TransformNone, Rect{5, 2, 1, 15}},
		{Transform90, Rect{3, 5, 15, 1}},
		{Transform180, Rect{34, 3, 1, 15}},
		{Transform270, Rect{2, 34, 15, 1}},
		{TransformMirror, Rect{34, 2, 1, 15}},
		{TransformMirror180, Rect{5, 3, 1, 15}},
	}
	for _, c := range cases {
		d.Transform = c.tr
		got := d.transformRect(r)
		if got != c.want {
			t.Errorf("transform %d: got %+v, want %+v", c.tr, got, c.want)
		}
	}
}

func TestTransformKeepsRectInsidePage(t *testing.T) {
	d := sampleDocument()
	for tr := TransformNone; tr <= TransformMirror270; tr++ {
		d.Transform = tr
		pw, ph := d.PageSize()
		if tr.Rotated() && (pw != 20 || ph != 40) {
			t.Fatalf("transform %d: page size %gx%g, want 20x40", tr, pw, ph)
		}
		for _, r := range d.rects {
			got := d.transformRect(r)
			if got.X < 0 || got.Y < 0 || got.X+got.W > pw+1e-9 || got.Y+got.H > ph+1e-9 {
				t.Errorf("transform %d: rect %+v escapes %gx%g page", tr, got, pw, ph)
			}
		}
	}
}

func TestCMYKFallbackConversion(t *testing.T) {
	c, m, y, k := RGB(0, 0, 0).CMYKValues()
	if c != 0 || m != 0 || y != 0 || k != 1 {
		t.Errorf("black: got %g %g %g %g", c, m, y, k)
	}
	c, m, y, k = RGB(255, 255, 255).CMYKValues()
	if c != 0 || m != 0 || y != 0 || k != 0 {
		t.Errorf("white: got %g %g %g %g", c, m, y, k)
	}
	c, m, y, k = RGB(255, 0, 0).CMYKValues()
	if c != 0 || m != 1 || y != 1 || k != 0 {
		t.Errorf("red: got %g %g %g %g", c, m, y, k)
	}
	// Supplied CMYK must survive untouched, not round-trip through RGB.
	col := CMYK(0.1, 0.2, 0.3, 0.4)
	c, m, y, k = col.CMYKValues()
	if c != 0.1 || m != 0.2 || y != 0.3 || k != 0.4 {
		t.Errorf("explicit cmyk mangled: got %g %g %g %g", c, m, y, k)
	}
}

func TestAchromatic(t *testing.T) {
	if !RGB(128, 128, 128).Achromatic() {
		t.Error("gray not detected")
	}
	if RGB(128, 128, 129).Achromatic() {
		t.Error("near-gray accepted")
	}
	if !CMYK(0, 0, 0, 0.5).Achromatic() {
		t.Error("pure key not detected")
	}
	if CMYK(0.1, 0, 0, 0.5).Achromatic() {
		t.Error("tinted key accepted")
	}
}

func TestTextWidthUsesGlyphAdvances(t *testing.T) {
	d := NewDocument(40, 20)
	d.SetFont("Helvetica", 10)

	narrow := d.TextWidth("iiii")
	wide := d.TextWidth("MMMM")
	if narrow >= wide {
		t.Errorf("narrow glyphs %v not thinner than wide glyphs %v", narrow, wide)
	}
	// Digits are uniformly 556/1000 em in Helvetica.
	if got, want := d.TextWidth("0123456789"), 10*0.556*10.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("digit run width %v, want %v", got, want)
	}
	// Width scales linearly with the font size.
	d.SetFont("", 5)
	if got := d.TextWidth("0123456789"); math.Abs(got-27.8) > 1e-9 {
		t.Errorf("width %v at half size, want 27.8", got)
	}
}

func TestEncodePDFStructure(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var rgb bytes.Buffer
	if err := sampleDocument().EncodePDF(&rgb, PDFOptions{Now: now}); err != nil {
		t.Fatal(err)
	}
	s := rgb.String()
	for _, want := range []string{
		"%PDF-1.4",
		"/PrintScaling /None",
		"/XYZ null null 1",
		"(PDF/X-3:2002)",
		"/FlateDecode",
		"startxref",
		"%%EOF",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("RGB PDF missing %q", want)
		}
	}

	var cmyk bytes.Buffer
	if err := sampleDocument().EncodePDF(&cmyk, PDFOptions{UseCMYK: true, Now: now}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(cmyk.String(), "(PDF/X-1a:2001)") {
		t.Error("CMYK PDF missing PDF/X-1a version")
	}
}

func TestEncodePDFXrefOffsets(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleDocument().EncodePDF(&buf, PDFOptions{Now: time.Unix(0, 0)}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	idx := bytes.LastIndex(data, []byte("startxref\n"))
	if idx < 0 {
		t.Fatal("no startxref")
	}
	rest := string(data[idx+len("startxref\n"):])
	off, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(rest, "\n", 2)[0]))
	if err != nil {
		t.Fatalf("bad startxref offset: %v", err)
	}
	if off <= 0 || off >= len(data) || !bytes.HasPrefix(data[off:], []byte("xref")) {
		t.Errorf("startxref %d does not point at xref table", off)
	}
}

func TestEncodeSVG(t *testing.T) {
	d := sampleDocument()
	d.Title = `<"Fish & Chips">`
	var buf bytes.Buffer
	if err := d.EncodeSVG(&buf); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.Contains(s, `width="40mm" height="20mm"`) {
		t.Error("missing physical size")
	}
	if !strings.Contains(s, `viewBox="0 0 40 20"`) {
		t.Error("missing viewBox")
	}
	if !strings.Contains(s, "&lt;&quot;Fish &amp; Chips&quot;&gt;") {
		t.Errorf("title not escaped: %s", s)
	}
	if strings.Contains(s, `<title><`) {
		t.Error("raw markup leaked into title")
	}
}

func TestEncodeSVGRotatedSwapsSize(t *testing.T) {
	d := sampleDocument()
	d.Transform = Transform90
	var buf bytes.Buffer
	if err := d.EncodeSVG(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `width="20mm" height="40mm"`) {
		t.Error("rotated SVG kept original page size")
	}
}

func TestEncodeEPSHeader(t *testing.T) {
	var buf bytes.Buffer
	err := sampleDocument().EncodeEPS(&buf, EPSOptions{Now: time.Unix(0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "%!PS-Adobe-3.0 EPSF-3.0\n") {
		t.Error("missing EPSF header")
	}
	for _, want := range []string{"%%BoundingBox: 0 0 ", "rectfill", "showpage", "%%EOF"} {
		if !strings.Contains(s, want) {
			t.Errorf("EPS missing %q", want)
		}
	}
}

func TestEncodeEPSPreviewWrapper(t *testing.T) {
	var buf bytes.Buffer
	err := sampleDocument().EncodeEPS(&buf, EPSOptions{WithPreview: true, PreviewDPI: 36})
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if len(data) < 30 {
		t.Fatal("output shorter than binary header")
	}
	if !bytes.Equal(data[:4], []byte{0xC5, 0xD0, 0xD3, 0xC6}) {
		t.Fatalf("bad magic % x", data[:4])
	}
	psOff := binary.LittleEndian.Uint32(data[4:])
	psLen := binary.LittleEndian.Uint32(data[8:])
	tifOff := binary.LittleEndian.Uint32(data[20:])
	tifLen := binary.LittleEndian.Uint32(data[24:])
	if psOff != 30 {
		t.Errorf("PostScript offset %d, want 30", psOff)
	}
	if tifOff != psOff+psLen {
		t.Errorf("TIFF offset %d, want %d", tifOff, psOff+psLen)
	}
	if int(tifOff+tifLen) != len(data) {
		t.Errorf("TIFF extent %d, file size %d", tifOff+tifLen, len(data))
	}
	if data[28] != 0xFF || data[29] != 0xFF {
		t.Error("checksum field not 0xFFFF")
	}
	ps := data[psOff : psOff+psLen]
	if !bytes.HasPrefix(ps, []byte("%!PS-Adobe-3.0 EPSF-3.0")) {
		t.Error("embedded PostScript misplaced")
	}
	// Little-endian TIFF from the encoder starts with "II".
	tif := data[tifOff:]
	if !bytes.HasPrefix(tif, []byte("II")) && !bytes.HasPrefix(tif, []byte("MM")) {
		t.Errorf("preview is not a TIFF: % x", tif[:4])
	}
}

func TestEncodePNGResolution(t *testing.T) {
	var buf bytes.Buffer
	err := sampleDocument().EncodePNG(&buf, RasterOptions{DPIX: 300, DPIY: 600})
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	idx := bytes.Index(data, []byte("pHYs"))
	if idx < 0 {
		t.Fatal("no pHYs chunk")
	}
	ppmX := binary.BigEndian.Uint32(data[idx+4:])
	ppmY := binary.BigEndian.Uint32(data[idx+8:])
	wantX := uint32(math.Round(300 / 0.0254))
	wantY := uint32(math.Round(600 / 0.0254))
	if ppmX != wantX || ppmY != wantY {
		t.Errorf("pHYs %dx%d ppm, want %dx%d", ppmX, ppmY, wantX, wantY)
	}
	if data[idx+12] != 1 {
		t.Error("pHYs unit is not meters")
	}
	// The chunk must precede the image data to be honored.
	if idat := bytes.Index(data, []byte("IDAT")); idat >= 0 && idat < idx {
		t.Error("pHYs written after IDAT")
	}
}

func TestEncodeJPEGDensity(t *testing.T) {
	var buf bytes.Buffer
	err := sampleDocument().EncodeJPEG(&buf, RasterOptions{DPIX: 203, DPIY: 203})
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if data[0] != 0xFF || data[1] != 0xD8 {
		t.Fatal("missing SOI marker")
	}
	if data[2] != 0xFF || data[3] != 0xE0 {
		t.Fatal("no APP0 after SOI")
	}
	if !bytes.Equal(data[6:11], []byte("JFIF\x00")) {
		t.Fatal("APP0 is not JFIF")
	}
	if data[13] != 1 {
		t.Error("density unit is not dpi")
	}
	if got := binary.BigEndian.Uint16(data[14:]); got != 203 {
		t.Errorf("x density %d, want 203", got)
	}
}

func TestEncodeBMPResolution(t *testing.T) {
	var buf bytes.Buffer
	err := sampleDocument().EncodeBMP(&buf, RasterOptions{DPIX: 300, DPIY: 300})
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if data[0] != 'B' || data[1] != 'M' {
		t.Fatal("missing BM signature")
	}
	want := uint32(math.Round(300 / 0.0254))
	if got := binary.LittleEndian.Uint32(data[38:]); got != want {
		t.Errorf("x ppm %d, want %d", got, want)
	}
	if got := binary.LittleEndian.Uint32(data[42:]); got != want {
		t.Errorf("y ppm %d, want %d", got, want)
	}
}

func TestGrayscaleCollapse(t *testing.T) {
	d := sampleDocument()
	img, err := d.rasterize(72, 72)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("black on white rendered as %T, want *image.Gray", img)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Fatal("empty raster")
	}

	d.Foreground = RGB(200, 0, 0)
	colorImg, err := d.rasterize(72, 72)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := colorImg.(*image.Gray); ok {
		t.Error("colored document collapsed to grayscale")
	}
}
