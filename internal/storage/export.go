package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"atelier/internal/orders"

	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Orders"

var orderHeaders = []string{
	"ID", "Created At", "Status", "Name", "Phone", "Email",
	"Garment", "Description", "Deadline",
	"Estimate Garment", "Estimate Fabric", "Estimate Services", "Estimate Total",
}

// ExportOrdersToExcel writes list to <dir>/<name>.xlsx and returns the path.
func ExportOrdersToExcel(list []orders.Order, dir, name string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := make([]interface{}, len(orderHeaders))
	for i, h := range orderHeaders {
		headers[i] = h
	}
	if err := writeRow(f, 1, headers); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(orderHeaders), 1)
	if err != nil {
		return "", fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetCellStyle(ordersSheet, "A1", last, style); err != nil {
		return "", fmt.Errorf("failed to style header: %w", err)
	}

	for row, order := range list {
		deadline := ""
		if order.Deadline != nil {
			deadline = order.Deadline.Format(orders.DeadlineLayout)
		}
		var total interface{} = ""
		if order.EstimateTotal.Valid {
			total = order.EstimateTotal.Decimal.IntPart()
		}

		data := []interface{}{
			order.ID,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.Status,
			order.Name,
			orders.FormatPhoneNumber(order.Phone),
			order.Email,
			order.GarmentType,
			order.Description,
			deadline,
			order.EstimateGarment,
			order.EstimateFabric,
			strings.Join(order.EstimateServices, ", "),
			total,
		}
		if err := writeRow(f, row+2, data); err != nil {
			return "", fmt.Errorf("failed to write order %s: %w", order.ID, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	if name == "" {
		name = fmt.Sprintf("orders_%s", time.Now().Format("20060102_1504"))
	}
	path := filepath.Join(dir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return path, nil
}

// writeRow fills row (1-based) of the orders sheet from column A.
func writeRow(f *excelize.File, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ordersSheet, cell, value); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
	}
	return nil
}
