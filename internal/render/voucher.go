package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cimillas/guestlist/internal/domain"
	"github.com/phpdave11/gofpdf"
)

// VoucherPDF renders a one-page printable voucher with the activation QR code.
func VoucherPDF(d domain.RegistrationDetails, links Links) ([]byte, error) {
	qrPNG, err := QRPNG(links.ActivationURL(d.QRToken), DefaultQRSize)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Guest list voucher "+d.VoucherCode, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, tr(d.Venue.Name))
	pdf.Ln(12)
	if d.Venue.Address != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 6, tr(d.Venue.Address))
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, label)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, tr(value))
		pdf.Ln(8)
	}
	line("Guest", d.FirstName+" "+d.LastName)
	line("Phone", domain.FormatPhone(d.Phone))
	if d.Event != nil && !d.Event.Date.IsZero() {
		line("Date", d.Event.Date.Format("Monday, January 2, 2006"))
	}
	if d.Party.TotalCount != nil {
		line("Party size", strconv.Itoa(*d.Party.TotalCount))
	}
	line("Status", string(d.Status))
	pdf.Ln(4)

	pdf.SetFont("Courier", "B", 28)
	pdf.Cell(0, 14, d.VoucherCode)
	pdf.Ln(18)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 10, pdf.GetY(), 60, 60, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 64)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"Scan the code on the night of the event between 6 PM and midnight while within %s mile(s) of %s to activate your guest list entry.",
		strconv.FormatFloat(d.Venue.GeofenceMiles, 'f', -1, 64), d.Venue.Name,
	)), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render voucher: %w", err)
	}
	return buf.Bytes(), nil
}
