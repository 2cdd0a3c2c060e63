package symbol

import "testing"

func TestCode11SingleCheck(t *testing.T) {
	b, _ := New(TypeCode11)
	if err := b.SetContent("123-45", false, false); err != nil {
		t.Fatal(err)
	}
	// C over 1,2,3,10,4,5 with weights 1..10 from the right: 71 % 11 = 5.
	if b.Content() != "123-455" {
		t.Errorf("stored = %q, want 123-455", b.Content())
	}
	if b.Text() != "123-45" {
		t.Errorf("Text = %q, want checks hidden", b.Text())
	}
}

func TestCode11DualCheck(t *testing.T) {
	b, _ := New(TypeCode11)
	if err := b.SetContent("0123456789", false, false); err != nil {
		t.Fatal(err)
	}
	// Ten data characters get both C and K.
	if b.Content() != "012345678903" {
		t.Errorf("stored = %q, want 012345678903", b.Content())
	}
}

func TestCode11ShortDataSkipsK(t *testing.T) {
	b, _ := New(TypeCode11)
	if err := b.SetContent("123456789", false, false); err != nil {
		t.Fatal(err)
	}
	if len(b.Content()) != 10 {
		t.Errorf("stored = %q, want one check character", b.Content())
	}
}

func TestCode11InvalidChar(t *testing.T) {
	b, _ := New(TypeCode11)
	err := b.SetContent("12A4", false, false)
	se, ok := err.(*Error)
	if !ok || se.Kind != KindInvalidChar || se.Pos != 2 {
		t.Fatalf("err = %v, want invalid char at 2", err)
	}
}
