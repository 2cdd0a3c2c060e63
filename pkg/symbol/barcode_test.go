package symbol

import "testing"

func TestNewUnknownType(t *testing.T) {
	if _, err := New(Type("nope")); err == nil {
		t.Fatal("expected error for unknown symbology")
	}
}

func TestTypesRegistered(t *testing.T) {
	types := Types()
	if len(types) != 23 {
		t.Errorf("got %d registered symbologies, want 23", len(types))
	}
}

func TestSetContentAtomic(t *testing.T) {
	b, err := New(TypeEAN13)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetContent("4006381333931", false, false); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	g1, err := b.Geometry()
	if err != nil {
		t.Fatal(err)
	}

	// A failing mutation must leave content, text and geometry untouched.
	if err := b.SetContent("4006381333930", false, false); err == nil {
		t.Fatal("bad check digit accepted")
	}
	if b.Content() != "4006381333931" {
		t.Errorf("content changed to %q after failed SetContent", b.Content())
	}
	g2, err := b.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g1 != g2 {
		t.Error("cached geometry invalidated by failed SetContent")
	}
}

func TestAutoComplete(t *testing.T) {
	b, _ := New(TypeEAN13)
	if err := b.SetContent("400638133393", true, false); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if b.Content() != "4006381333931" {
		t.Errorf("content = %q, want 4006381333931", b.Content())
	}
	// Without autoComplete a 12-digit input is a length error.
	if err := b.SetContent("400638133393", false, false); err == nil {
		t.Error("12 digits accepted without autoComplete")
	}
}

func TestCapabilityNoOps(t *testing.T) {
	b, _ := New(TypeEAN13)
	if err := b.SetContent("4006381333931", false, false); err != nil {
		t.Fatal(err)
	}

	// EAN-13 has no ratio, custom text or top placement.
	b.SetRatio(3.0)
	if b.Ratio() != DefaultRatio {
		t.Error("SetRatio changed a fixed-module symbology")
	}
	b.SetText("custom")
	if b.Text() != "4006381333931" {
		t.Errorf("Text = %q after no-op SetText", b.Text())
	}
	b.SetTextOnTop(true)
	if b.TextOnTop() {
		t.Error("SetTextOnTop took effect without the capability")
	}
}

func TestTextOnTopCapability(t *testing.T) {
	// Every non-UPC family supports top placement; the UPC/EAN family
	// keeps its digits under the bars.
	topCapable := []Type{
		TypeCode128, TypeCode128A, TypeCode128B, TypeCode128C,
		TypeGS1128, TypeEAN14, TypeSSCC18,
		TypeCode39, TypeCode39Ext, TypePZN, TypePZN8,
		TypeCode93, TypeCode93Ext, TypeCodabar, TypeCode11,
		TypeInterleaved25, TypeITF14,
	}
	for _, typ := range topCapable {
		b, err := New(typ)
		if err != nil {
			t.Fatal(err)
		}
		if !b.Supports(CapTextOnTop) {
			t.Errorf("%s: CapTextOnTop not granted", typ)
			continue
		}
		b.SetTextOnTop(true)
		if !b.TextOnTop() {
			t.Errorf("%s: SetTextOnTop had no effect", typ)
		}
	}
	for _, typ := range []Type{TypeEAN13, TypeEAN8, TypeUPCA, TypeUPCE, TypeISBN13, TypeISMN} {
		b, err := New(typ)
		if err != nil {
			t.Fatal(err)
		}
		if b.Supports(CapTextOnTop) {
			t.Errorf("%s: CapTextOnTop granted to a UPC-family symbology", typ)
		}
	}
}

func TestAddOnValidation(t *testing.T) {
	b, _ := New(TypeEAN13)
	if err := b.SetAddOn("123"); err == nil {
		t.Error("3-digit add-on accepted")
	}
	if err := b.SetAddOn("1a"); err == nil {
		t.Error("non-digit add-on accepted")
	}
	if err := b.SetAddOn("12"); err != nil {
		t.Errorf("2-digit add-on rejected: %v", err)
	}
	if err := b.SetAddOn(""); err != nil {
		t.Errorf("clearing add-on failed: %v", err)
	}
	// No-op on a symbology without add-on support.
	c, _ := New(TypeCode39)
	if err := c.SetAddOn("12"); err != nil {
		t.Errorf("SetAddOn on Code 39: %v", err)
	}
	if c.AddOn() != "" {
		t.Error("add-on stored without the capability")
	}
}

func TestQuietZoneToggle(t *testing.T) {
	b, _ := New(TypeEAN13)
	if err := b.SetContent("4006381333931", false, false); err != nil {
		t.Fatal(err)
	}
	code, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 95+11+7 {
		t.Errorf("len = %d, want 113 with quiet zones", len(code))
	}
	b.SetQuietZones(false)
	code, err = b.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 95 {
		t.Errorf("len = %d, want 95 without quiet zones", len(code))
	}
}

func TestTwoWidthQuietZonesScale(t *testing.T) {
	b, _ := New(TypeCode39)
	if err := b.SetContent("A", false, false); err != nil {
		t.Fatal(err)
	}
	// Default ratio 5:2 -> 10 narrow widths = 20 units per side.
	l, r := b.QuietZones()
	if l != 20 || r != 20 {
		t.Errorf("quiet zones = %d,%d, want 20,20", l, r)
	}
	b.SetRatio(2.0)
	l, r = b.QuietZones()
	if l != 10 || r != 10 {
		t.Errorf("quiet zones = %d,%d after 2:1, want 10,10", l, r)
	}
}

func TestClone(t *testing.T) {
	b, _ := New(TypeCode128)
	if err := b.SetContent("ORIG", false, false); err != nil {
		t.Fatal(err)
	}
	c := b.Clone()
	if err := c.SetContent("COPY", false, false); err != nil {
		t.Fatal(err)
	}
	if b.Content() != "ORIG" || c.Content() != "COPY" {
		t.Errorf("clone not independent: %q / %q", b.Content(), c.Content())
	}
}

func TestElectiveChecksumText(t *testing.T) {
	b, _ := New(TypeCode39)
	if err := b.SetContent("CODE39", false, true); err != nil {
		t.Fatal(err)
	}
	if b.Content() != "CODE39W" {
		t.Errorf("content = %q, want CODE39W", b.Content())
	}
	if b.Text() != "CODE39" {
		t.Errorf("Text = %q, want check hidden by default", b.Text())
	}
	b.SetShowChecksum(true)
	if b.Text() != "CODE39W" {
		t.Errorf("Text = %q, want CODE39W with checksum shown", b.Text())
	}
}
