package infra

import (
	"bytes"
	"fmt"

	"github.com/embunadw/E-Procurement/internal/dto"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "RFQ Report"

var reportHeaders = []string{
	"No", "RFQ Number", "Part Number", "Part Name", "Vendor", "Vendor Email", "Price", "MOQ", "Valid Until",
}

// RenderReportXLSX writes the quotation report as a single-sheet workbook.
func RenderReportXLSX(rows []dto.ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	if err := f.SetCellStyle(reportSheet, "A1", last, bold); err != nil {
		return nil, err
	}

	for i, r := range rows {
		validUntil := "-"
		if r.ValidUntil != nil {
			validUntil = r.ValidUntil.Format("2006-01-02")
		}
		price, _ := r.Price.Float64()
		moq, _ := r.MOQ.Float64()
		values := []any{i + 1, r.RfqNumber, r.PartNumber, r.PartName, r.VendorName, r.VendorEmail, price, moq, validUntil}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: row %d: %w", i+1, err)
			}
		}
	}
	_ = f.SetColWidth(reportSheet, "B", "F", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
