package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doRequest(t *testing.T, url string) *httptest.ResponseRecorder {
	t.Helper()
	s := NewServer()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(t, "/health")
	if w.Code != 200 {
		t.Fatalf("status %d", w.Code)
	}
}

func TestSymbologies(t *testing.T) {
	w := doRequest(t, "/symbologies")
	if w.Code != 200 {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		Symbologies []struct {
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"symbologies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Symbologies) < 20 {
		t.Errorf("only %d symbologies listed", len(body.Symbologies))
	}
	found := false
	for _, s := range body.Symbologies {
		if s.Type == "ean13" {
			found = true
			if s.Name == "" {
				t.Error("ean13 has no display name")
			}
		}
	}
	if !found {
		t.Error("ean13 missing from listing")
	}
}

func TestBarcodeSVG(t *testing.T) {
	w := doRequest(t, "/barcode?type=ean13&content=4006381333931&fmt=svg")
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestBarcodePDF(t *testing.T) {
	w := doRequest(t, "/barcode?type=code128&content=HELLO&fmt=pdf&width=60&height=25")
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestBarcodeMissingParams(t *testing.T) {
	if w := doRequest(t, "/barcode?type=ean13"); w.Code != 400 {
		t.Errorf("missing content: status %d", w.Code)
	}
	if w := doRequest(t, "/barcode?content=123"); w.Code != 400 {
		t.Errorf("missing type: status %d", w.Code)
	}
}

func TestBarcodeValidationError(t *testing.T) {
	w := doRequest(t, "/barcode?type=ean13&content=400638133393X&fmt=svg")
	if w.Code != 422 {
		t.Fatalf("status %d, want 422", w.Code)
	}
	var body struct {
		Error string `json:"error"`
		Kind  int    `json:"kind"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Kind == 0 || body.Error == "" {
		t.Errorf("error body lacks kind: %s", w.Body.String())
	}
}

func TestBarcodeUnknownType(t *testing.T) {
	w := doRequest(t, "/barcode?type=nope&content=123")
	if w.Code != 400 {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestBarcodeUnknownTransform(t *testing.T) {
	w := doRequest(t, "/barcode?type=ean13&content=4006381333931&transform=45")
	if w.Code != 400 {
		t.Errorf("status %d, want 400", w.Code)
	}
}
