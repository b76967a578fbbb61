package export

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// workbook - общая заготовка книги: один лист и набор стилей.
type workbook struct {
	f     *excelize.File
	sheet string

	title    int
	subtitle int
	header   int
	group    int
	subgroup int
	body     int
	money    int
	label    int
	total    int
}

func newWorkbook(sheetName string) (*workbook, error) {
	f := excelize.NewFile()

	// Excel ограничивает имя листа 31 символом.
	if utf8.RuneCountInString(sheetName) > 31 {
		sheetName = string([]rune(sheetName)[:31])
	}
	if sheetName == "" {
		sheetName = "Sayfa1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	w := &workbook{f: f, sheet: sheetName}
	moneyFmt := `#,##0.00 "₺"`

	styles := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&w.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&w.subtitle, &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&w.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&w.group, &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 11},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E1E5EB"}, Pattern: 1},
			Border: thinBorders(),
		}},
		{&w.subgroup, &excelize.Style{
			Font:   &excelize.Font{Bold: true, Italic: true, Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
			Border: thinBorders(),
		}},
		{&w.body, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&w.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &moneyFmt}},
		{&w.label, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&w.total, &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 11},
			Fill:         excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
			Border:       thinBorders(),
			CustomNumFmt: &moneyFmt,
		}},
	}
	for _, s := range styles {
		id, err := f.NewStyle(s.style)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create style: %w", err)
		}
		*s.dst = id
	}
	return w, nil
}

func (w *workbook) close() {
	w.f.Close()
}

func (w *workbook) widths(widths ...float64) error {
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(w.sheet, col, col, width); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	return nil
}

// row пишет значения начиная с колонки A и красит диапазон стилем.
// Строки проходят через sanitizeExcelCell.
func (w *workbook) row(rowNum, style int, values ...any) error {
	values = append([]any(nil), values...)
	for i, v := range values {
		if s, ok := v.(string); ok {
			values[i] = sanitizeExcelCell(s)
		}
	}
	start, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := w.f.SetSheetRow(w.sheet, start, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	if style != 0 && len(values) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(values), rowNum)
		if err := w.f.SetCellStyle(w.sheet, start, end, style); err != nil {
			return fmt.Errorf("style row %d: %w", rowNum, err)
		}
	}
	return nil
}

func (w *workbook) style(col, rowNum, style int) {
	axis, _ := excelize.CoordinatesToCellName(col, rowNum)
	w.f.SetCellStyle(w.sheet, axis, axis, style)
}

// titleBlock - заголовок, объединённый на lastCol колонок, и подзаголовки под ним.
func (w *workbook) titleBlock(lastCol int, title string, subtitles ...string) (int, error) {
	end, _ := excelize.CoordinatesToCellName(lastCol, 1)
	if err := w.f.MergeCell(w.sheet, "A1", end); err != nil {
		return 0, fmt.Errorf("merge title: %w", err)
	}
	w.f.SetCellValue(w.sheet, "A1", sanitizeExcelCell(title))
	w.f.SetCellStyle(w.sheet, "A1", "A1", w.title)

	rowNum := 2
	for _, s := range subtitles {
		axis, _ := excelize.CoordinatesToCellName(1, rowNum)
		w.f.SetCellValue(w.sheet, axis, sanitizeExcelCell(s))
		w.f.SetCellStyle(w.sheet, axis, axis, w.subtitle)
		rowNum++
	}
	return rowNum + 1, nil
}

func (w *workbook) freezeBelow(rowNum int) {
	top, _ := excelize.CoordinatesToCellName(1, rowNum+1)
	w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      rowNum,
		TopLeftCell: top,
		ActivePane:  "bottomLeft",
	})
}

func (w *workbook) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell защищает от formula injection: ячейки с =, +, -, @, \t, \r
// в начале Excel трактует как формулы.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
