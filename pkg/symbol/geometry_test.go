package symbol

import "testing"

func TestCompileBars(t *testing.T) {
	bars := compileBars("1101001")
	want := []Bar{{Pos: 0, Width: 2}, {Pos: 3, Width: 1}, {Pos: 6, Width: 1}}
	if len(bars) != len(want) {
		t.Fatalf("got %d bars, want %d", len(bars), len(want))
	}
	for i, b := range bars {
		if b != want[i] {
			t.Errorf("bar %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestCompileBarsLeadingSpace(t *testing.T) {
	bars := compileBars("0011100")
	if len(bars) != 1 || bars[0].Pos != 2 || bars[0].Width != 3 {
		t.Fatalf("bars = %+v", bars)
	}
}

func TestCompileBarsEmpty(t *testing.T) {
	if bars := compileBars(""); len(bars) != 0 {
		t.Errorf("bars = %+v, want none", bars)
	}
	if bars := compileBars("0000"); len(bars) != 0 {
		t.Errorf("bars = %+v, want none", bars)
	}
}

// Bars reconstructed from the geometry must reproduce the encoded
// string exactly, for every registered symbology.
func TestGeometryRoundTrip(t *testing.T) {
	samples := map[Type]string{
		TypeEAN13:         "4006381333931",
		TypeEAN8:          "96385074",
		TypeUPCA:          "036000291452",
		TypeUPCE:          "01234565",
		TypeISBN13:        "978-3-16-148410-0",
		TypeISMN:          "979-0-2600-0043-8",
		TypeCode128:       "PKG-2026",
		TypeCode128A:      "TEST",
		TypeCode128B:      "Test 123",
		TypeCode128C:      "1234",
		TypeGS1128:        "(01)04006381333931",
		TypeEAN14:         "40063813339307",
		TypeSSCC18:        "340063813000000002",
		TypeCode39:        "CODE39",
		TypeCode39Ext:     "code 39",
		TypeCode93:        "CODE 93",
		TypeCode93Ext:     "code 93",
		TypeCodabar:       "A40156B",
		TypeCode11:        "123-45",
		TypeInterleaved25: "1234",
		TypeITF14:         "04006381333931",
		TypePZN:           "1234562",
		TypePZN8:          "12345678",
	}
	for typ, content := range samples {
		t.Run(string(typ), func(t *testing.T) {
			b, err := New(typ)
			if err != nil {
				t.Fatal(err)
			}
			if err := b.SetContent(content, false, false); err != nil {
				t.Fatalf("SetContent(%q): %v", content, err)
			}
			code, err := b.Encode()
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			g, err := b.Geometry()
			if err != nil {
				t.Fatalf("Geometry: %v", err)
			}
			if g.Modules != len(code) {
				t.Fatalf("Modules = %d, len(code) = %d", g.Modules, len(code))
			}
			rebuilt := make([]byte, g.Modules)
			for i := range rebuilt {
				rebuilt[i] = '0'
			}
			for _, bar := range g.Bars {
				for i := bar.Pos; i < bar.Pos+bar.Width; i++ {
					rebuilt[i] = '1'
				}
			}
			if string(rebuilt) != code {
				t.Errorf("geometry does not reproduce the bar string")
			}
			if g.Factor < float64(g.Modules) {
				t.Errorf("Factor = %v below module count %d", g.Factor, g.Modules)
			}
		})
	}
}

// Identical inputs must produce identical geometry.
func TestGeometryDeterministic(t *testing.T) {
	enc := func() (string, *Geometry) {
		b, _ := New(TypeCode128)
		if err := b.SetContent("DET-42", false, false); err != nil {
			t.Fatal(err)
		}
		code, _ := b.Encode()
		g, _ := b.Geometry()
		return code, g
	}
	c1, g1 := enc()
	c2, g2 := enc()
	if c1 != c2 {
		t.Error("bar strings differ")
	}
	if g1.Modules != g2.Modules || g1.Factor != g2.Factor || len(g1.Bars) != len(g2.Bars) {
		t.Error("geometry differs")
	}
}
