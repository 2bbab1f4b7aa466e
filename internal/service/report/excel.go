package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Row is one attendance line of the monthly export.
type Row struct {
	UserID      string
	FirstName   string
	LastName    string
	Nip         string
	WorkDay     time.Time
	Status      string
	CheckIn     *time.Time
	CheckOut    *time.Time
	StationName string
}

// MonthlyExcel renders the attendance rows of one month as a xlsx
// workbook.
func MonthlyExcel(rows []Row, year int, month time.Month) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"User ID", "First Name", "Last Name", "NIP", "Work Day", "Status", "Check In", "Check Out", "Station"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 2
	for _, entry := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.Nip)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.WorkDay.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), formatClock(entry.CheckIn))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), formatClock(entry.CheckOut))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", rowNum), entry.StationName)
		rowNum++
	}

	title := fmt.Sprintf("Attendance %04d-%02d", year, int(month))
	f.SetDocProps(&excelize.DocProperties{Title: title})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf, nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}
