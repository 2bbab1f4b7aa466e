package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

// StationPoster renders a printable A4 page with the station name and its
// current QR code, for taping next to the door.
func StationPoster(stationName, stationID string, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 20, "Scan to check in", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, stationName, "", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("station-qr", opts, bytes.NewReader(qrPNG))
	// 150mm square centered on a 210mm page.
	pdf.ImageOptions("station-qr", 30, 60, 150, 150, false, opts, 0, "")

	pdf.SetY(215)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Station %s", stationID), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing poster: %w", err)
	}

	return buf.Bytes(), nil
}
