package importer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var templateColumns = []struct {
	name     string
	required bool
	width    float64
}{
	{ColumnCategory, true, 28},
	{ColumnService, true, 40},
	{ColumnUnit, false, 14},
	{ColumnPrice, true, 16},
}

// Template отдаёт пустую книгу с раскладкой, которую понимает ParseRateCard.
func Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("importer: rename sheet: %w", err)
	}

	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	requiredHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	optionalHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	dateFmt := "yyyy-mm-dd"
	dateStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})

	labels := []struct{ axis, text string }{
		{"A1", "Müşteri Adı"},
		{"A2", "Başlangıç Tarihi"},
		{"A3", "Bitiş Tarihi"},
	}
	for _, l := range labels {
		f.SetCellValue(sheetName, l.axis, l.text)
		f.SetCellStyle(sheetName, l.axis, l.axis, labelStyle)
	}
	f.SetCellStyle(sheetName, CellStartDate, CellEndDate, dateStyle)

	for i, c := range templateColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		axis := fmt.Sprintf("%s%d", col, HeaderRow)
		f.SetCellValue(sheetName, axis, c.name)
		if c.required {
			f.SetCellStyle(sheetName, axis, axis, requiredHeaderStyle)
		} else {
			f.SetCellStyle(sheetName, axis, axis, optionalHeaderStyle)
		}
		f.SetColWidth(sheetName, col, col, c.width)
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      HeaderRow,
		TopLeftCell: fmt.Sprintf("A%d", FirstDataRow),
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("importer: write template: %w", err)
	}
	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#D1D5DB", Style: 1},
		{Type: "top", Color: "#D1D5DB", Style: 1},
		{Type: "bottom", Color: "#D1D5DB", Style: 1},
		{Type: "right", Color: "#D1D5DB", Style: 1},
	}
}
