package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"lms/config"
)

// GenerateCertificatePDF renders a landscape A4 completion certificate
// and returns the raw PDF bytes.
func GenerateCertificatePDF(learnerEmail, courseTitle string, completedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// Outer frame.
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(29, 53, 87)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(13, 13, w-26, h-26, "D")

	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(29, 53, 87)
	pdf.SetY(40)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(8)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(230, 57, 70)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, learnerEmail, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(29, 53, 87)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, courseTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(8)
	pdf.CellFormat(0, 8, fmt.Sprintf("Completed on %s", completedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")

	pdf.SetY(h - 40)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.CellFormat(0, 6, config.AppConfig.CertificateIssuer, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, config.AppConfig.AppName, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
