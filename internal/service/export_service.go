package service

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/calclone-api/internal/models"
	apperrors "github.com/noah-isme/calclone-api/pkg/errors"
	"github.com/noah-isme/calclone-api/pkg/export"
)

type exportBookingLister interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

// ExportService renders admin booking lists as downloadable CSV or PDF.
type ExportService struct {
	bookings exportBookingLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	now      func() time.Time
}

// NewExportService constructs the service.
func NewExportService(bookings exportBookingLister) *ExportService {
	return &ExportService{
		bookings: bookings,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		now:      time.Now,
	}
}

var exportHeaders = []string{"Booking UID", "Event Type", "Name", "Email", "Start (UTC)", "End (UTC)", "Status"}

// Render produces the export payload plus content type and filename.
func (s *ExportService) Render(ctx context.Context, listType, format string) ([]byte, string, string, error) {
	if listType != "past" {
		listType = "upcoming"
	}

	bookings, err := s.bookings.List(ctx, models.BookingFilter{Type: listType, Now: s.now().UTC()})
	if err != nil {
		return nil, "", "", err
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(bookings))}
	for i := range bookings {
		b := &bookings[i]
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Booking UID": b.BookingUID,
			"Event Type":  b.EventTypeSlug,
			"Name":        b.BookerName,
			"Email":       b.BookerEmail,
			"Start (UTC)": b.StartAt.UTC().Format("2006-01-02 15:04"),
			"End (UTC)":   b.EndAt.UTC().Format("2006-01-02 15:04"),
			"Status":      string(b.Status),
		})
	}

	stamp := s.now().UTC().Format("20060102")
	switch format {
	case "", "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", fmt.Errorf("render bookings csv: %w", err)
		}
		return payload, "text/csv", fmt.Sprintf("bookings-%s-%s.csv", listType, stamp), nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, fmt.Sprintf("%s bookings", listType))
		if err != nil {
			return nil, "", "", fmt.Errorf("render bookings pdf: %w", err)
		}
		return payload, "application/pdf", fmt.Sprintf("bookings-%s-%s.pdf", listType, stamp), nil
	default:
		return nil, "", "", apperrors.Clone(apperrors.ErrValidation, "format must be csv or pdf")
	}
}
