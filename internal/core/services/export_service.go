package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	"github.com/go-pdf/fpdf"
)

// ErrUnsupportedExportFormat rejects formats other than csv and pdf
var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// ExportService renders asset lists as downloadable CSV or PDF files
type ExportService struct {
	assetRepo *repositories.AssetRepository
}

// NewExportService creates a new export service
func NewExportService(assetRepo *repositories.AssetRepository) *ExportService {
	return &ExportService{assetRepo: assetRepo}
}

// ExportFile is a rendered download
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

var exportHeader = []string{
	"Asset Number", "Type", "State", "Status", "Serial Number",
	"Description", "Purchase Price", "Purchase Date", "Location",
	"Assigned To", "Employee ID", "Department",
}

// Export renders all assets matching the filter in the given format
func (s *ExportService) Export(ctx context.Context, filter *repositories.AssetFilter, format string) (*ExportFile, error) {
	assets, err := s.assetRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "csv":
		content, err := renderCSV(assets)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("assets-%s.csv", stamp),
		}, nil
	case "pdf":
		content, err := renderPDF(assets)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("assets-%s.pdf", stamp),
		}, nil
	}
	return nil, ErrUnsupportedExportFormat
}

func exportRow(asset *models.Asset) []string {
	assetNumber := ""
	if asset.AssetNumber != nil {
		assetNumber = *asset.AssetNumber
	}
	locationName := ""
	if asset.Location != nil {
		locationName = asset.Location.Name
	}
	return []string{
		assetNumber,
		asset.Type,
		asset.State,
		asset.Status,
		asset.SerialNumber,
		asset.Description,
		strconv.FormatFloat(asset.PurchasePrice, 'f', 2, 64),
		asset.PurchaseDate.Format("2006-01-02"),
		locationName,
		asset.AssignedTo,
		asset.EmployeeID,
		asset.Department,
	}
}

func renderCSV(assets []*models.Asset) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, asset := range assets {
		if err := writer.Write(exportRow(asset)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPDF draws a landscape table, one row per asset
func renderPDF(assets []*models.Asset) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Asset Register", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Asset Register")
	pdf.Ln(12)

	widths := []float64{24, 24, 24, 18, 30, 42, 20, 22, 26, 26, 18, 24}

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(230, 230, 230)
	for i, head := range exportHeader {
		pdf.CellFormat(widths[i], 7, head, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, asset := range assets {
		for i, cell := range exportRow(asset) {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.Ln(4)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s, %d assets", time.Now().Format("2006-01-02 15:04"), len(assets)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
