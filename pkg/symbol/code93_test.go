package symbol

import (
	"strings"
	"testing"
)

// Decode the 9-module groups of an encoded Code 93 symbol back into
// alphabet characters.
func decodeCode93(t *testing.T, code string) string {
	t.Helper()
	if (len(code)-1)%9 != 0 || code[len(code)-1] != '1' {
		t.Fatalf("malformed symbol length %d", len(code))
	}
	var out strings.Builder
	for p := 0; p < len(code)-1; p += 9 {
		mask := 0
		for i := 0; i < 9; i++ {
			mask <<= 1
			if code[p+i] == '1' {
				mask |= 1
			}
		}
		found := -1
		for idx, enc := range code93Encodings {
			if enc == mask {
				found = idx
				break
			}
		}
		if found < 0 {
			t.Fatalf("unknown pattern %03x at module %d", mask, p)
		}
		out.WriteByte(code93Alphabet[found])
	}
	return out.String()
}

// Re-deriving the two check characters from the emitted data portion
// must match the characters the encoder appended.
func TestCode93CheckCharacters(t *testing.T) {
	b, _ := New(TypeCode93)
	b.SetQuietZones(false)
	if err := b.SetContent("CODE 93", false, false); err != nil {
		t.Fatal(err)
	}
	code, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded := decodeCode93(t, code)
	if decoded[0] != '*' || decoded[len(decoded)-1] != '*' {
		t.Fatalf("missing asterisks in %q", decoded)
	}
	body := decoded[1 : len(decoded)-1]
	data := body[:len(body)-2]
	if data != "CODE 93" {
		t.Fatalf("data portion = %q", data)
	}
	c := code93Alphabet[code93ChecksumIndex(data, 20)]
	k := code93Alphabet[code93ChecksumIndex(data+string(c), 15)]
	if body[len(body)-2] != c || body[len(body)-1] != k {
		t.Errorf("check characters %q%q, want %q%q",
			body[len(body)-2], body[len(body)-1], c, k)
	}
}

func TestCode93Length(t *testing.T) {
	b, _ := New(TypeCode93)
	b.SetQuietZones(false)
	if err := b.SetContent("WIKIPEDIA", false, false); err != nil {
		t.Fatal(err)
	}
	code, _ := b.Encode()
	// data + 2 checks + 2 asterisks, 9 modules each, plus termination bar.
	if want := (9+2+2)*9 + 1; len(code) != want {
		t.Errorf("len = %d, want %d", len(code), want)
	}
}

func TestCode93RejectsShiftChars(t *testing.T) {
	b, _ := New(TypeCode93)
	if err := b.SetContent("ABCa", false, false); err == nil {
		t.Error("shift character accepted as data")
	}
}

func TestCode93ExtStored(t *testing.T) {
	b, _ := New(TypeCode93Ext)
	if err := b.SetContent("a:", false, false); err != nil {
		t.Fatal(err)
	}
	if b.Content() != "dAcZ" {
		t.Errorf("stored = %q, want dAcZ", b.Content())
	}
	if b.Text() != "a:" {
		t.Errorf("Text = %q, want a:", b.Text())
	}
}
