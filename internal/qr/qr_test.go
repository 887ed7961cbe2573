package qr

import (
	"bytes"
	"testing"

	"github.com/storefront-console/internal/models"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestVariantLabelUsesBackendContent(t *testing.T) {
	g := NewGenerator(0)
	png, err := g.VariantLabel(&models.Variant{ID: 11, ProductID: 3, QRCode: "https://shop.example.com/v/11"})
	if err != nil {
		t.Fatalf("VariantLabel: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("output is not a PNG")
	}
}

func TestVariantLabelFallsBackToPayload(t *testing.T) {
	g := NewGenerator(128)
	png, err := g.VariantLabel(&models.Variant{ID: 11, ProductID: 3, SKU: "SHIRT-XL"})
	if err != nil {
		t.Fatalf("VariantLabel: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("output is not a PNG")
	}
}
