package symbol

import "testing"

func TestInterleaved25OddLength(t *testing.T) {
	b, _ := New(TypeInterleaved25)
	err := b.SetContent("12345", false, false)
	se, ok := err.(*Error)
	if !ok || se.Kind != KindOddLength {
		t.Fatalf("err = %v, want odd-length error", err)
	}
	// The elective check digit makes the count even again.
	if err := b.SetContent("1234567", false, true); err != nil {
		t.Fatalf("SetContent with checksum: %v", err)
	}
	if b.Content() != "12345670" {
		t.Errorf("stored = %q, want 12345670", b.Content())
	}
	// An even count plus the check digit is odd.
	if err := b.SetContent("123456", false, true); err == nil {
		t.Error("even content with checksum accepted")
	}
}

func TestInterleaved25Width(t *testing.T) {
	b, _ := New(TypeInterleaved25)
	b.SetQuietZones(false)
	if err := b.SetContent("1234", false, false); err != nil {
		t.Fatal(err)
	}
	code, _ := b.Encode()
	g, _ := b.Geometry()
	// Start 4n, two pairs of 6n+4w, stop w+2n at 5:2.
	want := 4*2 + 2*(6*2+4*5) + 5 + 2*2
	if len(code) != want {
		t.Errorf("len = %d, want %d", len(code), want)
	}
	if g.Factor != float64(want) {
		t.Errorf("Factor = %v, want %d", g.Factor, want)
	}
}

func TestITF14(t *testing.T) {
	b, _ := New(TypeITF14)
	if err := b.SetContent("0400638133393", true, false); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if b.Content() != "04006381333931" {
		t.Errorf("content = %q, want 04006381333931", b.Content())
	}
	if err := b.SetContent("04006381333930", false, false); err == nil {
		t.Error("wrong check digit accepted")
	}
	if err := b.SetContent("123", false, false); err == nil {
		t.Error("short content accepted")
	}
}
