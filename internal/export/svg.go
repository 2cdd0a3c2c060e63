package export

import (
	"fmt"
	"io"
	"strings"
)

// EncodeSVG writes the document as a standalone SVG with physical
// millimeter units. SVG has no CMYK color space, so the RGB channels
// are always used.
func (d *Document) EncodeSVG(w io.Writer) error {
	pw, ph := d.PageSize()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		num(pw), num(ph), num(pw), num(ph))
	if d.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", xmlEscape(d.Title))
	}

	fmt.Fprintf(&b, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(pw), num(ph), svgColor(d.Background))

	fg := svgColor(d.Foreground)
	opacity := ""
	if d.Opacity < 1 {
		opacity = fmt.Sprintf(` fill-opacity="%s"`, num(d.Opacity))
	}
	for _, r := range d.rects {
		tr := d.transformRect(r)
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
			num(tr.X), num(tr.Y), num(tr.W), num(tr.H), fg, opacity)
	}

	for _, t := range d.texts {
		x, y := d.transformPoint(t.X, t.Y)
		transform := ""
		if angle := -d.textAngle(); angle != 0 || d.Transform.mirrored() {
			// SVG rotation is clockwise in its y-down space.
			ops := fmt.Sprintf("translate(%s %s)", num(x), num(y))
			if angle != 0 {
				ops += fmt.Sprintf(" rotate(%s)", num(angle))
			}
			if d.Transform.mirrored() {
				ops += " scale(-1 1)"
			}
			transform = fmt.Sprintf(` transform="%s"`, ops)
			x, y = 0, 0
		}
		fmt.Fprintf(&b,
			`<text x="%s" y="%s" font-family="Helvetica, Arial, sans-serif" font-size="%s" fill="%s"%s%s>%s</text>`+"\n",
			num(x), num(y), num(t.Size), fg, opacity, transform, xmlEscape(t.S))
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func svgColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
