package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"golang.org/x/image/tiff"

	"github.com/printforge/barcode-engine/internal/render"
)

// EPSOptions controls the Encapsulated PostScript output.
type EPSOptions struct {
	// UseCMYK emits setcmykcolor operators instead of setrgbcolor.
	UseCMYK bool
	// WithPreview prepends a DOS-binary wrapper holding a TIFF
	// preview rendered at PreviewDPI, so placement applications
	// without a PostScript interpreter can show the graphic.
	WithPreview bool
	PreviewDPI  float64
	Now         time.Time
}

// EncodeEPS writes the document as a level 2 EPS file.
func (d *Document) EncodeEPS(w io.Writer, opts EPSOptions) error {
	if !opts.WithPreview {
		return d.epsBody(w, opts)
	}

	var ps bytes.Buffer
	if err := d.epsBody(&ps, opts); err != nil {
		return err
	}
	preview, err := d.tiffPreview(opts.PreviewDPI)
	if err != nil {
		return err
	}

	// DOS EPS binary header: magic, then four little-endian
	// offset/length pairs (PostScript, WMF, TIFF), then a dummy
	// checksum of 0xFFFF.
	const headerLen = 30
	hdr := make([]byte, headerLen)
	copy(hdr, []byte{0xC5, 0xD0, 0xD3, 0xC6})
	binary.LittleEndian.PutUint32(hdr[4:], headerLen)
	binary.LittleEndian.PutUint32(hdr[8:], uint32(ps.Len()))
	binary.LittleEndian.PutUint32(hdr[12:], 0)
	binary.LittleEndian.PutUint32(hdr[16:], 0)
	binary.LittleEndian.PutUint32(hdr[20:], uint32(headerLen+ps.Len()))
	binary.LittleEndian.PutUint32(hdr[24:], uint32(len(preview)))
	hdr[28] = 0xFF
	hdr[29] = 0xFF

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	if _, err := w.Write(ps.Bytes()); err != nil {
		return err
	}
	_, err = w.Write(preview)
	return err
}

func (d *Document) epsBody(w io.Writer, opts EPSOptions) error {
	pw, ph := d.PageSize()
	pwPt := pt(pw)
	phPt := pt(ph)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder
	b.WriteString("%!PS-Adobe-3.0 EPSF-3.0\n")
	fmt.Fprintf(&b, "%%%%Creator: %s\n", d.Creator)
	fmt.Fprintf(&b, "%%%%Title: %s\n", d.Title)
	fmt.Fprintf(&b, "%%%%CreationDate: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%%%%BoundingBox: 0 0 %d %d\n", int(math.Ceil(pwPt)), int(math.Ceil(phPt)))
	fmt.Fprintf(&b, "%%%%HiResBoundingBox: 0 0 %s %s\n", num(pwPt), num(phPt))
	b.WriteString("%%DocumentData: Clean7Bit\n%%LanguageLevel: 2\n%%Pages: 1\n%%EndComments\n")

	setColor := func(c Color) {
		if opts.UseCMYK {
			cc, mm, yy, kk := c.CMYKValues()
			fmt.Fprintf(&b, "%s %s %s %s setcmykcolor\n", num(cc), num(mm), num(yy), num(kk))
		} else {
			fmt.Fprintf(&b, "%s %s %s setrgbcolor\n",
				num(float64(c.R)/255), num(float64(c.G)/255), num(float64(c.B)/255))
		}
	}

	setColor(d.Background)
	fmt.Fprintf(&b, "0 0 %s %s rectfill\n", num(pwPt), num(phPt))

	setColor(d.Foreground)
	for _, r := range d.rects {
		tr := d.transformRect(r)
		fmt.Fprintf(&b, "%s %s %s %s rectfill\n",
			num(pt(tr.X)), num(phPt-pt(tr.Y)-pt(tr.H)), num(pt(tr.W)), num(pt(tr.H)))
	}

	lastSize := -1.0
	for _, t := range d.texts {
		if t.Size != lastSize {
			fmt.Fprintf(&b, "/Helvetica findfont %s scalefont setfont\n", num(pt(t.Size)))
			lastSize = t.Size
		}
		x, y := d.transformPoint(t.X, t.Y)
		angle := d.textAngle()
		if angle == 0 && !d.Transform.mirrored() {
			fmt.Fprintf(&b, "%s %s moveto (%s) show\n",
				num(pt(x)), num(phPt-pt(y)), psEscape(t.S))
			continue
		}
		fmt.Fprintf(&b, "gsave %s %s translate %s rotate ",
			num(pt(x)), num(phPt-pt(y)), num(angle))
		if d.Transform.mirrored() {
			b.WriteString("-1 1 scale ")
		}
		fmt.Fprintf(&b, "0 0 moveto (%s) show grestore\n", psEscape(t.S))
	}

	b.WriteString("showpage\n%%EOF\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// tiffPreview renders the document into an uncompressed TIFF for the
// binary wrapper.
func (d *Document) tiffPreview(dpi float64) ([]byte, error) {
	if dpi <= 0 {
		dpi = 72
	}
	img, err := d.rasterize(dpi, dpi)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Uncompressed}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func psEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}

var _ render.Surface = (*Document)(nil)
