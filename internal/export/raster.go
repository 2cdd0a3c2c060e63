package export

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"

	"github.com/printforge/barcode-engine/internal/render"
)

// RasterOptions controls the bitmap encoders.
type RasterOptions struct {
	DPIX, DPIY float64
	// JPEGQuality in 1..100; zero means the encoder default.
	JPEGQuality int
}

func (o RasterOptions) resolution() (float64, float64) {
	x, y := o.DPIX, o.DPIY
	if x <= 0 {
		x = 300
	}
	if y <= 0 {
		y = x
	}
	return x, y
}

// rasterize renders the primitives into a bitmap and applies the page
// transform. When both colors are achromatic the result collapses to a
// single gray channel.
func (d *Document) rasterize(dpiX, dpiY float64) (image.Image, error) {
	r := render.NewRaster(d.Width, d.Height, dpiX, dpiY)
	ctx := r.Context()
	ctx.SetColor(color.RGBA{d.Background.R, d.Background.G, d.Background.B, 255})
	ctx.Clear()
	ctx.SetColor(color.RGBA{d.Foreground.R, d.Foreground.G, d.Foreground.B, 255})
	if err := d.Replay(r); err != nil {
		return nil, err
	}

	img := r.Image()
	if d.Transform.mirrored() {
		img = imaging.FlipH(img)
	}
	// imaging rotates counterclockwise; the transform names are
	// clockwise.
	switch d.Transform.quarterTurns() {
	case 1:
		img = imaging.Rotate270(img)
	case 2:
		img = imaging.Rotate180(img)
	case 3:
		img = imaging.Rotate90(img)
	}

	if d.Foreground.Achromatic() && d.Background.Achromatic() {
		gray := image.NewGray(img.Bounds())
		draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
		return gray, nil
	}
	return img, nil
}

// EncodePNG writes the document as a PNG carrying the physical
// resolution in a pHYs chunk.
func (d *Document) EncodePNG(w io.Writer, opts RasterOptions) error {
	dpiX, dpiY := opts.resolution()
	img, err := d.rasterize(dpiX, dpiY)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	out, err := insertPHYS(buf.Bytes(), dpiToPPM(dpiX), dpiToPPM(dpiY))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// insertPHYS places a pHYs chunk directly after IHDR. The standard
// encoder never writes one, so the insertion point is fixed: signature
// plus the 25-byte IHDR chunk.
func insertPHYS(data []byte, ppmX, ppmY uint32) ([]byte, error) {
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	if len(data) < ihdrEnd {
		return nil, io.ErrUnexpectedEOF
	}

	chunk := make([]byte, 21)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppmX)
	binary.BigEndian.PutUint32(chunk[12:], ppmY)
	chunk[16] = 1 // unit: meter
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out, nil
}

// EncodeJPEG writes the document as a JPEG with a JFIF header carrying
// the dots-per-inch density.
func (d *Document) EncodeJPEG(w io.Writer, opts RasterOptions) error {
	dpiX, dpiY := opts.resolution()
	img, err := d.rasterize(dpiX, dpiY)
	if err != nil {
		return err
	}
	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return err
	}

	// The standard encoder emits no APP0 segment, so a JFIF one is
	// spliced in right after the start-of-image marker.
	data := buf.Bytes()
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return io.ErrUnexpectedEOF
	}
	app0 := []byte{
		0xFF, 0xE0, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02, // version 1.02
		0x01, // density unit: dots per inch
		0, 0, 0, 0,
		0x00, 0x00, // no thumbnail
	}
	binary.BigEndian.PutUint16(app0[12:], uint16(math.Round(dpiX)))
	binary.BigEndian.PutUint16(app0[14:], uint16(math.Round(dpiY)))

	if _, err := w.Write(data[:2]); err != nil {
		return err
	}
	if _, err := w.Write(app0); err != nil {
		return err
	}
	_, err = w.Write(data[2:])
	return err
}

// EncodeBMP writes the document as a BMP, patching the info header's
// pixels-per-meter fields which the standard encoder leaves zero.
func (d *Document) EncodeBMP(w io.Writer, opts RasterOptions) error {
	dpiX, dpiY := opts.resolution()
	img, err := d.rasterize(dpiX, dpiY)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return err
	}

	// biXPelsPerMeter and biYPelsPerMeter sit at fixed offsets in
	// the BITMAPINFOHEADER, after the 14-byte file header.
	data := buf.Bytes()
	if len(data) < 46 {
		return io.ErrUnexpectedEOF
	}
	binary.LittleEndian.PutUint32(data[38:], dpiToPPM(dpiX))
	binary.LittleEndian.PutUint32(data[42:], dpiToPPM(dpiY))

	_, err = w.Write(data)
	return err
}

func dpiToPPM(dpi float64) uint32 {
	return uint32(math.Round(dpi / 0.0254))
}
