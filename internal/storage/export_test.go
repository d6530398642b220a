package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"atelier/internal/orders"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestExportOrdersToExcel(t *testing.T) {
	dir := t.TempDir()
	list := []orders.Order{
		{
			ID:               "o-1",
			Name:             "Анна",
			Phone:            "+79123456789",
			GarmentType:      "Пальто",
			EstimateGarment:  "coat",
			EstimateFabric:   "cashmere",
			EstimateServices: pq.StringArray{"express", "lining"},
			EstimateTotal:    decimal.NewNullDecimal(decimal.NewFromInt(47000)),
			Status:           orders.StatusNew,
			CreatedAt:        time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          "o-2",
			Name:        "Иван",
			Phone:       "123",
			GarmentType: "Рубашка",
			Status:      orders.StatusDone,
			CreatedAt:   time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC),
		},
	}

	path, err := ExportOrdersToExcel(list, dir, "report")
	if err != nil {
		t.Fatalf("ExportOrdersToExcel: %v", err)
	}
	if path != filepath.Join(dir, "report.xlsx") {
		t.Errorf("path = %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "ID",
		"A2": "o-1",
		"E2": "+7 (912) 345-67-89",
		"L2": "express, lining",
		"M2": "47000",
		"A3": "o-2",
		"M3": "",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(ordersSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestWriteRow_ReportsBadCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		t.Fatal(err)
	}

	if err := writeRow(f, 0, []interface{}{"x"}); err == nil {
		t.Error("expected error for row 0")
	}
	if err := writeRow(f, 2, []interface{}{"x", 1}); err != nil {
		t.Errorf("writeRow: %v", err)
	}
	if v, _ := f.GetCellValue(ordersSheet, "B2"); v != "1" {
		t.Errorf("B2 = %q", v)
	}
}

func TestExportOrdersToExcel_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ExportOrdersToExcel(nil, file, "report"); err == nil {
		t.Error("expected error when the reports dir is a file")
	}
}
