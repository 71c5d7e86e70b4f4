package render

import (
	"bytes"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle cx="5" cy="5" r="2" fill="#fff"/></svg>`

func TestToPDF(t *testing.T) {
	if !HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF([]byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestToPDFWithoutConverter(t *testing.T) {
	if HasConverter() {
		t.Skip("rsvg-convert installed")
	}
	if _, err := ToPDF([]byte(tinySVG)); err == nil {
		t.Error("expected install hint error")
	}
}
