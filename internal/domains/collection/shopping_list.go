package collection

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	FormatText = "txt"
	FormatXLSX = "xlsx"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Shopping list"
)

// Document is a rendered file ready to be sent as an attachment
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RenderText writes one "name - amount unit" line per item
func RenderText(items []ShoppingItem) *Document {
	var buf bytes.Buffer
	for _, item := range items {
		fmt.Fprintf(&buf, "%s - %d %s\n", item.Name, item.Amount, item.MeasurementUnit)
	}
	return &Document{
		Filename:    "shoplist.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        buf.Bytes(),
	}
}

// RenderXLSX builds a single-sheet workbook with Ingredient, Amount and Unit columns
func RenderXLSX(items []ShoppingItem) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	// Row 1: header
	headers := []string{"Ingredient", "Amount", "Unit"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(sheetName, "A1", "C1", style)
	}

	for i, item := range items {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), item.MeasurementUnit)
	}
	f.SetColWidth(sheetName, "A", "A", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &Document{
		Filename:    "shoplist.xlsx",
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}
