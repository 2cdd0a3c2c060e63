package export

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const mmToPoint = 72.0 / 25.4

// PDFOptions selects the PDF/X conformance level of the output.
type PDFOptions struct {
	// UseCMYK switches the color operators to CMYK and declares
	// PDF/X-1a:2001 conformance; otherwise RGB with PDF/X-3:2002.
	UseCMYK bool
	// Now overrides the timestamp written to the info dictionary,
	// for reproducible output in tests. Zero means time.Now.
	Now time.Time
}

// EncodePDF writes the document as a single-page PDF. The viewer is
// asked to open at 100% zoom and to print without scaling.
func (d *Document) EncodePDF(w io.Writer, opts PDFOptions) error {
	pw, ph := d.PageSize()
	pwPt := pt(pw)
	phPt := pt(ph)

	content, err := d.pdfContent(phPt, opts.UseCMYK)
	if err != nil {
		return err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	version := "PDF/X-3:2002"
	if opts.UseCMYK {
		version = "PDF/X-1a:2001"
	}

	pdf := &pdfWriter{w: w}
	pdf.header()

	catalog := pdf.reserve()
	pages := pdf.reserve()
	page := pdf.reserve()
	stream := pdf.reserve()
	font := pdf.reserve()
	gstate := pdf.reserve()
	info := pdf.reserve()

	pdf.object(catalog, fmt.Sprintf(
		"<< /Type /Catalog /Pages %d 0 R /OpenAction [%d 0 R /XYZ null null 1] /ViewerPreferences << /PrintScaling /None >> >>",
		pages, page))
	pdf.object(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", page))
	pdf.object(page, fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] /TrimBox [0 0 %s %s] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> /ExtGState << /GS1 %d 0 R >> >> >>",
		pages, num(pwPt), num(phPt), num(pwPt), num(phPt), stream, font, gstate))
	pdf.stream(stream, content)
	pdf.object(font, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	pdf.object(gstate, fmt.Sprintf("<< /Type /ExtGState /ca %s /CA %s >>", num(d.Opacity), num(d.Opacity)))

	stamp := now.Format("20060102150405")
	pdf.object(info, fmt.Sprintf(
		"<< /Title (%s) /Creator (%s) /GTS_PDFXVersion (%s) /Trapped /False /CreationDate (D:%s) /ModDate (D:%s) >>",
		pdfEscape(d.Title), pdfEscape(d.Creator), version, stamp, stamp))

	id := uuid.New()
	return pdf.trailer(catalog, info, fmt.Sprintf("%x", id[:]))
}

// pdfContent builds the page content stream. Rectangle and text
// coordinates are flipped to the PDF bottom-left origin.
func (d *Document) pdfContent(pageHPt float64, cmyk bool) ([]byte, error) {
	var b strings.Builder
	b.WriteString("/GS1 gs\n")

	writeColor := func(c Color) {
		if cmyk {
			cc, mm, yy, kk := c.CMYKValues()
			fmt.Fprintf(&b, "%s %s %s %s k\n", num(cc), num(mm), num(yy), num(kk))
		} else {
			fmt.Fprintf(&b, "%s %s %s rg\n",
				num(float64(c.R)/255), num(float64(c.G)/255), num(float64(c.B)/255))
		}
	}

	pw, phMM := d.PageSize()
	writeColor(d.Background)
	fmt.Fprintf(&b, "0 0 %s %s re f\n", num(pt(pw)), num(pt(phMM)))

	writeColor(d.Foreground)
	for _, r := range d.rects {
		tr := d.transformRect(r)
		fmt.Fprintf(&b, "%s %s %s %s re f\n",
			num(pt(tr.X)), num(pageHPt-pt(tr.Y)-pt(tr.H)), num(pt(tr.W)), num(pt(tr.H)))
	}

	for _, t := range d.texts {
		x, y := d.transformPoint(t.X, t.Y)
		a, bb, c, dd := d.textMatrix()
		fmt.Fprintf(&b, "BT /F1 %s Tf %s %s %s %s %s %s Tm (%s) Tj ET\n",
			num(pt(t.Size)), num(a), num(bb), num(c), num(dd),
			num(pt(x)), num(pageHPt-pt(y)), pdfEscape(t.S))
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write([]byte(b.String())); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// textMatrix is the glyph orientation for the current transform in PDF
// user space. The mirror flips the baseline direction so the glyphs
// read mirrored, matching the mirrored bars.
func (d *Document) textMatrix() (float64, float64, float64, float64) {
	theta := d.textAngle() * math.Pi / 180
	cos := math.Round(math.Cos(theta))
	sin := math.Round(math.Sin(theta))
	if d.Transform.mirrored() {
		return -cos, -sin, -sin, cos
	}
	return cos, sin, -sin, cos
}

func pt(mm float64) float64 { return mm * mmToPoint }

// num formats a coordinate with at most six decimal places and no
// trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func pdfEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}

// pdfWriter tracks byte offsets for the cross-reference table while
// objects are appended.
type pdfWriter struct {
	w       io.Writer
	offset  int
	offsets []int
	err     error
}

func (p *pdfWriter) write(s string) {
	if p.err != nil {
		return
	}
	n, err := io.WriteString(p.w, s)
	p.offset += n
	p.err = err
}

func (p *pdfWriter) header() {
	// The binary comment line marks the file as non-ASCII for
	// transfer programs.
	p.write("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
}

// reserve allocates the next object number.
func (p *pdfWriter) reserve() int {
	p.offsets = append(p.offsets, 0)
	return len(p.offsets)
}

func (p *pdfWriter) object(n int, body string) {
	p.offsets[n-1] = p.offset
	p.write(fmt.Sprintf("%d 0 obj\n%s\nendobj\n", n, body))
}

func (p *pdfWriter) stream(n int, data []byte) {
	p.offsets[n-1] = p.offset
	p.write(fmt.Sprintf("%d 0 obj\n<< /Length %d /Filter /FlateDecode >>\nstream\n", n, len(data)))
	if p.err == nil {
		m, err := p.w.Write(data)
		p.offset += m
		p.err = err
	}
	p.write("\nendstream\nendobj\n")
}

func (p *pdfWriter) trailer(catalog, info int, id string) error {
	start := p.offset
	p.write(fmt.Sprintf("xref\n0 %d\n0000000000 65535 f \n", len(p.offsets)+1))
	for _, off := range p.offsets {
		p.write(fmt.Sprintf("%010d 00000 n \n", off))
	}
	p.write(fmt.Sprintf(
		"trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R /ID [<%s> <%s>] >>\nstartxref\n%d\n%%%%EOF\n",
		len(p.offsets)+1, catalog, info, id, id, start))
	return p.err
}
