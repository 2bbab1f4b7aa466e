package report

import (
	"testing"
	"time"

	qr "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

func smallPNG(t *testing.T) []byte {
	t.Helper()
	png, err := qr.Encode("test", qr.Medium, 64)
	if err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return png
}

func TestMonthlyExcel(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 8, 55, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 2, 17, 10, 0, 0, time.UTC)

	rows := []Row{
		{
			UserID:      "u-1",
			FirstName:   "Ayu",
			LastName:    "Putri",
			Nip:         "19870101",
			WorkDay:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Status:      "P",
			CheckIn:     &checkIn,
			CheckOut:    &checkOut,
			StationName: "Main Gate",
		},
		{
			UserID:    "u-2",
			FirstName: "Budi",
			WorkDay:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Status:    "S",
		},
	}

	buf, err := MonthlyExcel(rows, 2026, time.March)
	if err != nil {
		t.Fatalf("MonthlyExcel: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A1")
	if err != nil || got != "User ID" {
		t.Errorf("header A1 = %q, err %v; want User ID", got, err)
	}

	cells := map[string]string{
		"A2": "u-1",
		"E2": "2026-03-02",
		"F2": "P",
		"G2": "08:55:00",
		"H2": "17:10:00",
		"I2": "Main Gate",
		"A3": "u-2",
		"G3": "",
		"H3": "",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue("Sheet1", cell)
		if err != nil {
			t.Fatalf("reading %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestStationPosterRejectsNothing(t *testing.T) {
	// A tiny valid PNG: the poster only embeds it, so size does not
	// matter here.
	png := smallPNG(t)

	pdf, err := StationPoster("Main Gate", "ST-01", png)
	if err != nil {
		t.Fatalf("StationPoster: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf output")
	}
	if string(pdf[:5]) != "%PDF-" {
		t.Errorf("output does not start with a pdf header: %q", pdf[:5])
	}
}
