package service

import (
	"context"
	"fmt"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/infra"
	"github.com/embunadw/E-Procurement/internal/repository"
)

type ReportService interface {
	Dashboard(ctx context.Context) (*dto.DashboardSummary, error)
	VendorDashboard(ctx context.Context, vendorID int) (*dto.VendorDashboardSummary, error)
	Report(ctx context.Context) ([]dto.ReportRow, error)
	VendorReport(ctx context.Context, vendorID int) ([]dto.VendorReportRow, error)
	// Export renders Report as an XLSX workbook.
	Export(ctx context.Context) (*dto.Download, error)
}

type reportService struct {
	vendors    repository.VendorRepository
	rfqs       repository.RfqRepository
	quotations repository.QuotationRepository
	now        Clock
}

func NewReportService(
	vendors repository.VendorRepository,
	rfqs repository.RfqRepository,
	quotations repository.QuotationRepository,
	now Clock,
) ReportService {
	return &reportService{vendors: vendors, rfqs: rfqs, quotations: quotations, now: now}
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardSummary, error) {
	vendors, err := s.vendors.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	rfqs, err := s.rfqs.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	inputs, err := s.quotations.CountSubmitted(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummary{TotalVendors: vendors, TotalRFQs: rfqs, TotalVendorInputs: inputs}, nil
}

func (s *reportService) VendorDashboard(ctx context.Context, vendorID int) (*dto.VendorDashboardSummary, error) {
	n, err := s.quotations.CountByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &dto.VendorDashboardSummary{TotalVendorInputs: n}, nil
}

func (s *reportService) Report(ctx context.Context) ([]dto.ReportRow, error) {
	rows, err := s.quotations.Report(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportRow, len(rows))
	for i, r := range rows {
		out[i] = dto.ReportRow{
			ID:          r.ID,
			RfqNumber:   r.RfqNumber,
			PartNumber:  r.PartNumber,
			PartName:    r.PartName,
			VendorName:  r.VendorName,
			VendorEmail: r.VendorEmail,
			Price:       r.Price,
			MOQ:         r.MOQ,
			ValidUntil:  r.ValidUntil,
		}
	}
	return out, nil
}

func (s *reportService) VendorReport(ctx context.Context, vendorID int) ([]dto.VendorReportRow, error) {
	rows, err := s.quotations.Report(ctx, &vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorReportRow, len(rows))
	for i, r := range rows {
		out[i] = dto.VendorReportRow{
			Number:     i + 1,
			PartNumber: r.PartNumber,
			PartName:   r.PartName,
			Price:      r.Price,
			MOQ:        r.MOQ,
			ValidUntil: r.ValidUntil,
		}
	}
	return out, nil
}

func (s *reportService) Export(ctx context.Context) (*dto.Download, error) {
	rows, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	data, err := infra.RenderReportXLSX(rows)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("rfq_report_%s.xlsx", s.now().Format("20060102"))
	return &dto.Download{Filename: name, Data: data}, nil
}
