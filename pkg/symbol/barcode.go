// Package symbol encodes linear barcode symbologies into abstract
// bar/space patterns. A Barcode instance owns its validated content and
// lazily compiled geometry; instances are not safe for concurrent use,
// but distinct instances may be used from distinct goroutines.
package symbol

import "fmt"

// Type identifies a symbology.
type Type string

const (
	TypeEAN13         Type = "ean13"
	TypeEAN8          Type = "ean8"
	TypeUPCA          Type = "upca"
	TypeUPCE          Type = "upce"
	TypeISBN13        Type = "isbn13"
	TypeISMN          Type = "ismn"
	TypeCode128       Type = "code128"
	TypeCode128A      Type = "code128a"
	TypeCode128B      Type = "code128b"
	TypeCode128C      Type = "code128c"
	TypeGS1128        Type = "gs1-128"
	TypeEAN14         Type = "ean14"
	TypeSSCC18        Type = "sscc18"
	TypeCode39        Type = "code39"
	TypeCode39Ext     Type = "code39ext"
	TypeCode93        Type = "code93"
	TypeCode93Ext     Type = "code93ext"
	TypeCodabar       Type = "codabar"
	TypeCode11        Type = "code11"
	TypeInterleaved25 Type = "interleaved2of5"
	TypeITF14         Type = "itf14"
	TypePZN           Type = "pzn"
	TypePZN8          Type = "pzn8"
)

// Caps flags the optional capabilities of a symbology. Setting a property
// whose capability is absent is a documented no-op, not an error.
type Caps uint

const (
	CapRatio Caps = 1 << iota
	CapAddOn
	CapOptionalChecksum
	CapTextOnTop
	CapAutoComplete
	CapCustomText
)

// spec is the static per-symbology bundle: encode/validate functions,
// quiet-zone constants and capability flags.
type spec struct {
	name       string
	caps       Caps
	quietLeft  int
	quietRight int

	// validate normalizes content and derives the human-readable text.
	validate func(b *Barcode, content string, autoComplete, withChecksum bool) (string, string, error)

	// encode emits the '1'/'0' bar string without quiet zones, plus
	// guard-bar and add-on layout info relative to the symbol start.
	encode func(b *Barcode) (string, encodeInfo, error)

	// factor computes the module-factor; nil means the total module count.
	factor func(b *Barcode, modules int) float64
}

var registry = map[Type]*spec{}

func register(t Type, s *spec) { registry[t] = s }

// Types returns all registered symbology tags.
func Types() []Type {
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	return out
}

// Barcode is a single barcode instance. A successfully constructed
// instance is always internally consistent: SetContent either commits a
// fully validated state or leaves the previous state untouched.
type Barcode struct {
	typ  Type
	spec *spec

	content      string
	text         string
	customText   string
	showText     bool
	textOnTop    bool
	textOffset   float64
	font         string
	fontSize     float64
	autoFit      bool
	ratio        Ratio
	withChecksum bool
	showChecksum bool
	addOn        string
	addOnOnTop   bool
	quiet        bool

	geom *Geometry
}

// New creates a barcode instance for the given symbology tag.
func New(t Type) (*Barcode, error) {
	s, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("unknown symbology: %q", t)
	}
	return &Barcode{
		typ:        t,
		spec:       s,
		showText:   true,
		quiet:      true,
		addOnOnTop: true,
		ratio:      DefaultRatio,
	}, nil
}

// Type returns the symbology tag.
func (b *Barcode) Type() Type { return b.typ }

// Name returns the symbology display name.
func (b *Barcode) Name() string { return b.spec.name }

// Supports reports whether the symbology has all the given capabilities.
func (b *Barcode) Supports(c Caps) bool { return b.spec.caps&c == c }

// SetContent validates the content and, on success, atomically replaces
// the content/text/checksum state and invalidates cached geometry. On
// failure the instance is unchanged. autoComplete lets fixed-length
// numeric symbologies compute a missing check digit; withChecksum appends
// the elective checksum on symbologies that support one.
func (b *Barcode) SetContent(content string, autoComplete, withChecksum bool) error {
	if !b.Supports(CapOptionalChecksum) {
		withChecksum = false
	}
	stored, text, err := b.spec.validate(b, content, autoComplete, withChecksum)
	if err != nil {
		return err
	}
	b.content = stored
	b.text = text
	b.withChecksum = withChecksum
	b.geom = nil
	return nil
}

// Content returns the validated raw content, including any computed check
// digits and non-printable function markers.
func (b *Barcode) Content() string { return b.content }

// Text returns the human-readable text: the custom text if one is set,
// otherwise the text derived during validation. An elective check
// character is included only while ShowChecksum is on.
func (b *Barcode) Text() string {
	if b.customText != "" && b.Supports(CapCustomText) {
		return b.customText
	}
	if b.Supports(CapOptionalChecksum) && b.withChecksum && !b.showChecksum && b.text != "" {
		return b.text[:len(b.text)-1]
	}
	return b.text
}

// SetText overrides the derived human-readable text. No-op on
// symbologies without custom-text support.
func (b *Barcode) SetText(text string) {
	if b.Supports(CapCustomText) {
		b.customText = text
	}
}

// SetShowText toggles the human-readable line.
func (b *Barcode) SetShowText(show bool) { b.showText = show }

// ShowText reports whether the human-readable line is drawn.
func (b *Barcode) ShowText() bool { return b.showText }

// SetTextOnTop places the text line above the bars. No-op on symbologies
// that only support bottom placement.
func (b *Barcode) SetTextOnTop(top bool) {
	if b.Supports(CapTextOnTop) {
		b.textOnTop = top
	}
}

// TextOnTop reports whether the text line is drawn above the bars.
func (b *Barcode) TextOnTop() bool { return b.textOnTop }

// SetTextOffset sets the distance between bars and text in the caller's
// physical unit.
func (b *Barcode) SetTextOffset(d float64) { b.textOffset = d }

// TextOffset returns the bar-to-text distance.
func (b *Barcode) TextOffset() float64 { return b.textOffset }

// SetFont sets an explicit font reference. An empty name means "inherit
// from the drawing context".
func (b *Barcode) SetFont(name string, size float64) {
	b.font = name
	b.fontSize = size
}

// Font returns the font reference and size; an empty name means inherit.
func (b *Barcode) Font() (string, float64) { return b.font, b.fontSize }

// SetAutoFitFont toggles automatic font sizing to the symbol width.
func (b *Barcode) SetAutoFitFont(on bool) { b.autoFit = on }

// AutoFitFont reports whether the font is auto-sized.
func (b *Barcode) AutoFitFont() bool { return b.autoFit }

// SetRatio sets the wide:narrow ratio on two-width symbologies, clamping
// out-of-range values. No-op on fixed-module symbologies.
func (b *Barcode) SetRatio(r float64) {
	if !b.Supports(CapRatio) {
		return
	}
	b.ratio = NewRatio(r)
	b.geom = nil
}

// Ratio returns the reduced wide:narrow pair.
func (b *Barcode) Ratio() Ratio { return b.ratio }

// SetShowChecksum toggles the elective check character in the
// human-readable text. No-op unless the symbology has an elective
// checksum.
func (b *Barcode) SetShowChecksum(show bool) {
	if b.Supports(CapOptionalChecksum) {
		b.showChecksum = show
	}
}

// ShowChecksum reports whether the elective checksum appears in the text.
func (b *Barcode) ShowChecksum() bool { return b.showChecksum }

// SetAddOn sets a 2- or 5-digit supplemental symbol on UPC-family
// barcodes. An empty string removes it. No-op on other symbologies.
func (b *Barcode) SetAddOn(digits string) error {
	if !b.Supports(CapAddOn) {
		return nil
	}
	if digits != "" {
		if len(digits) != 2 && len(digits) != 5 {
			return &Error{Kind: KindAddOnLength, Got: fmt.Sprintf("%d", len(digits))}
		}
		for i := 0; i < len(digits); i++ {
			if digits[i] < '0' || digits[i] > '9' {
				return &Error{Kind: KindAddOnNonDigit, Pos: i, Got: string(digits[i])}
			}
		}
	}
	b.addOn = digits
	b.geom = nil
	return nil
}

// AddOn returns the supplemental digits, or "" if none.
func (b *Barcode) AddOn() string { return b.addOn }

// SetQuietZones toggles the quiet-zone margins in the encoded pattern.
func (b *Barcode) SetQuietZones(on bool) {
	b.quiet = on
	b.geom = nil
}

// QuietZones returns the left and right quiet-zone widths in modules
// (zero when quiet zones are disabled). On two-width symbologies the
// spec constants count narrow bar widths, so they scale with the
// reduced ratio pair.
func (b *Barcode) QuietZones() (int, int) {
	if !b.quiet {
		return 0, 0
	}
	left, right := b.spec.quietLeft, b.spec.quietRight
	if b.Supports(CapRatio) {
		left *= b.ratio.Narrow
		right *= b.ratio.Narrow
	}
	return left, right
}

// Encode produces the binary bar/space string ('1' bar, '0' space),
// including quiet zones when enabled.
func (b *Barcode) Encode() (string, error) {
	code, _, err := b.encode()
	return code, err
}

// encodeInfo carries layout facts produced alongside the bar string.
type encodeInfo struct {
	guards     [][2]int // module intervals of guard bars
	addOnStart int      // module index where the add-on begins; 0 = none
}

func (b *Barcode) encode() (string, encodeInfo, error) {
	if b.content == "" {
		return "", encodeInfo{}, errEmpty()
	}
	code, info, err := b.spec.encode(b)
	if err != nil {
		return "", encodeInfo{}, err
	}
	left, right := b.QuietZones()
	if left > 0 || right > 0 {
		code = zeros(left) + code + zeros(right)
		for i := range info.guards {
			info.guards[i][0] += left
			info.guards[i][1] += left
		}
		if info.addOnStart > 0 {
			info.addOnStart += left
		}
	}
	return code, info, nil
}

// Geometry compiles and caches the bar run-length list. The cache is
// invalidated by any content, ratio, add-on or quiet-zone mutation, and
// recomputation from identical inputs is deterministic.
func (b *Barcode) Geometry() (*Geometry, error) {
	if b.geom != nil {
		return b.geom, nil
	}
	code, info, err := b.encode()
	if err != nil {
		return nil, err
	}
	g := &Geometry{
		Bars:        compileBars(code),
		Modules:     len(code),
		GuardRanges: info.guards,
		AddOnStart:  info.addOnStart,
	}
	if b.spec.factor != nil {
		g.Factor = b.spec.factor(b, g.Modules)
	} else {
		g.Factor = float64(g.Modules)
	}
	b.geom = g
	return g, nil
}

// Clone returns an independent copy. The cached geometry is shared; it is
// never mutated in place, only wholesale replaced.
func (b *Barcode) Clone() *Barcode {
	c := *b
	return &c
}

func zeros(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = '0'
	}
	return string(buf)
}
