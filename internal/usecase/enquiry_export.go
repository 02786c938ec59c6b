package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/usecase/dto"
)

// ExportFormat - формат выгрузки заявок
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type of the export.
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

var exportHeader = []string{"id", "created_at", "start_location", "end_location", "email", "phone", "length", "width", "height", "weight"}

// Export writes the filtered enquiries to w and returns the suggested file name.
func (uc *EnquiryUseCase) Export(ctx context.Context, req dto.EnquiryListRequest, w io.Writer) (ExportFormat, string, error) {
	format := ExportFormat(req.Format)
	if format == "" {
		format = ExportCSV
	}

	rows, err := uc.List(ctx, req)
	if err != nil {
		return format, "", err
	}

	name := fmt.Sprintf("enquiries-%s.%s", uc.now().Format("20060102-150405"), format)
	switch format {
	case ExportXLSX:
		err = WriteEnquiriesXLSX(w, rows)
	default:
		err = WriteEnquiriesCSV(w, rows)
	}
	if err != nil {
		uc.logger.Error("Failed to export enquiries", zap.String("format", string(format)), zap.Error(err))
		return format, "", err
	}

	uc.logger.Info("Enquiries exported", zap.String("format", string(format)), zap.Int("rows", len(rows)))
	return format, name, nil
}

// WriteEnquiriesCSV writes a header row followed by one line per enquiry.
func WriteEnquiriesCSV(w io.Writer, rows []domain.Enquiry) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(domain.Enquiry{}); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, e := range rows {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode enquiry %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEnquiriesXLSX writes a single "Enquiries" sheet.
func WriteEnquiriesXLSX(w io.Writer, rows []domain.Enquiry) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Enquiries")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().SetString(h)
	}

	for _, e := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt64(e.ID)
		row.AddCell().SetString(e.CreatedAt.UTC().Format(time.RFC3339))
		for _, v := range []string{e.StartLocation, e.EndLocation, e.Email, e.Phone, e.Length, e.Width, e.Height, e.Weight} {
			row.AddCell().SetString(v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
