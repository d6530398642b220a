package pricing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const seasonalCatalog = `
garments:
  - {id: dress, name: Платье, base_price: 9000}
fabrics:
  - {id: wool, name: Шерсть, multiplier: 1.3}
services:
  - {id: express, name: Экспресс, price: "4500"}
`

func TestDecodeCatalog(t *testing.T) {
	cat, err := DecodeCatalog(strings.NewReader(seasonalCatalog))
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}

	got, ok := Estimate(Selection{GarmentID: "dress", FabricID: "wool", ServiceIDs: NewServiceSet("express")}, cat)
	if !ok {
		t.Fatal("expected estimate")
	}
	if !got.Equal(decimal.NewFromInt(16200)) { // 9000*1.3 + 4500
		t.Errorf("estimate = %s, want 16200", got)
	}
	if _, ok := cat.Garment("coat"); ok {
		t.Error("coat should not be in the seasonal catalog")
	}
}

func TestDecodeCatalog_BadAmount(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader("garments:\n  - {id: dress, base_price: lots}\n"))
	if err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestDecodeCatalog_FractionalServicePrice(t *testing.T) {
	doc := "services:\n  - {id: fitting, price: \"1500.5\"}\n"
	if _, err := DecodeCatalog(strings.NewReader(doc)); !errors.Is(err, ErrFractionalPrice) {
		t.Errorf("err = %v, want ErrFractionalPrice", err)
	}
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(seasonalCatalog), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(cat.Garments()) != 1 || len(cat.Fabrics()) != 1 || len(cat.Services()) != 1 {
		t.Errorf("unexpected catalog sizes")
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
