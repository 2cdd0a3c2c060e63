package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/printforge/barcode-engine/pkg/symbol"
)

func TestEncodeExplicitFontSize(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, Request{
		Type:     symbol.TypeCode128,
		Content:  "FONT",
		Format:   "svg",
		ShowText: true,
		FontSize: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `font-size="4"`) {
		t.Errorf("explicit font size not honored:\n%s", buf.String())
	}
}

func TestEncodeAutoFitByDefault(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, Request{
		Type:     symbol.TypeCode128,
		Content:  "FONT",
		Format:   "svg",
		ShowText: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Auto-fit lands on a search-step multiple, not the document's
	// working default size.
	if strings.Contains(buf.String(), `font-size="3"`) {
		t.Error("font was not auto-fitted")
	}
}

func TestEncodeTextOnTop(t *testing.T) {
	var top, bottom bytes.Buffer
	req := Request{Type: symbol.TypeCode128, Content: "TOP", Format: "svg", ShowText: true}
	if err := Encode(&bottom, req); err != nil {
		t.Fatal(err)
	}
	req.TextOnTop = true
	if err := Encode(&top, req); err != nil {
		t.Fatal(err)
	}
	if top.String() == bottom.String() {
		t.Error("text_on_top had no effect on the output")
	}
}
