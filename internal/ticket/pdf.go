package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageName = "booking-qr"

// Generate renders a one-page e-ticket for the booking. sch may be nil when
// the schedule has been deleted since the booking was made.
func Generate(b *models.Booking, sch *models.Schedule) ([]byte, error) {
	qrPNG, err := qrcode.Encode(b.ID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, "E-TICKET")
	pdf.Ln(18)
	if b.Status == models.StatusCancelled {
		pdf.SetTextColor(200, 30, 30)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, "CANCELLED")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(12)
	}

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")
	pdf.SetXY(20, yStart+5)
	section(pdf, "BOOKING SUMMARY")
	line(pdf, "Booking ID", b.ID)
	line(pdf, "Passenger", b.PassengerName)
	line(pdf, "Seats", strings.Join(b.Seats, ", "))
	line(pdf, "Amount", fmt.Sprintf("INR %d", b.Amount))
	line(pdf, "Booked at", b.CreatedAt.Format("2006-01-02 15:04 MST"))

	pdf.RegisterImageOptionsReader(qrImageName, gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrImageName, 145, yStart, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetXY(15, yStart+63)
	section(pdf, "JOURNEY")
	if sch == nil {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.Cell(0, 8, "Schedule no longer available.")
		pdf.Ln(8)
	} else {
		line(pdf, "Route", fmt.Sprintf("%s to %s", sch.Origin, sch.Destination))
		line(pdf, "Departure", fmt.Sprintf("%s %s", sch.Date, sch.Time))
		line(pdf, "Vehicle", strings.ToUpper(string(sch.VehicleKind)))
	}

	pdf.Ln(4)
	section(pdf, "CONTACT")
	line(pdf, "Email", b.PassengerEmail)
	line(pdf, "Phone", b.PassengerPhone)

	pdf.SetY(280)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Show this ticket and its QR code when boarding.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("%s: %s", label, value))
	pdf.Ln(6)
}
