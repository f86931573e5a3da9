// Package pdf renders printable tickets.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// TicketData is everything printed on one ticket.
type TicketData struct {
	TicketID     string
	MovieTitle   string
	HallNumber   int
	HallName     string
	HallCategory string
	StartTime    time.Time
	RowNumber    int
	SeatNumber   int
	Price        string
	HolderName   string
}

type Renderer struct {
	// QRSize is the edge of the QR code PNG in pixels.
	QRSize int
}

func NewRenderer(qrSize int) *Renderer {
	if qrSize <= 0 {
		qrSize = 256
	}
	return &Renderer{QRSize: qrSize}
}

// QRCode encodes the ticket id as a PNG. Gate staff scan it to look the ticket up.
func (r *Renderer) QRCode(ticketID string) ([]byte, error) {
	qr, err := qrcode.New(ticketID, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	png, err := qr.PNG(r.QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR to PNG: %w", err)
	}
	return png, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// Render returns an A5 PDF with the QR code on top and the seat details below.
func (r *Renderer) Render(data TicketData) ([]byte, error) {
	qr, err := r.QRCode(data.TicketID)
	if err != nil {
		return nil, err
	}

	doc := gofpdf.New("P", "mm", "A5", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle("Ticket "+data.TicketID, true)
	doc.AddPage()

	// A5 is 148mm wide
	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	imgName := "qr_" + data.TicketID
	doc.RegisterImageOptionsReader(imgName, imgOpts, bytes.NewReader(qr))
	doc.ImageOptions(imgName, (148.0-70.0)/2, 12, 70, 70, false, imgOpts, 0, "")
	doc.SetY(86)

	doc.SetDrawColor(200, 200, 200)
	doc.SetLineWidth(0.4)
	doc.Line(12, doc.GetY(), 136, doc.GetY())
	doc.Ln(6)

	doc.SetFont("Arial", "B", 18)
	doc.MultiCell(0, 8, tr(truncate(data.MovieTitle, 40)), "", "C", false)
	doc.Ln(2)

	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, 6, data.StartTime.Format("Monday, January 2, 2006  15:04"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	rows := [][2]string{
		{"Hall", fmt.Sprintf("%d  %s (%s)", data.HallNumber, data.HallName, data.HallCategory)},
		{"Row", fmt.Sprintf("%d", data.RowNumber)},
		{"Seat", fmt.Sprintf("%d", data.SeatNumber)},
		{"Holder", truncate(data.HolderName, 30)},
		{"Price", data.Price},
	}
	for _, row := range rows {
		doc.SetX(24)
		doc.SetFont("Arial", "", 12)
		doc.CellFormat(32, 8, row[0]+":", "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "B", 13)
		doc.CellFormat(70, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	doc.SetFont("Arial", "I", 9)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 5, "Ticket "+data.TicketID, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "Show the QR code at the hall entrance.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
