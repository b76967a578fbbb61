// Package importer разбирает загруженные прайс-листы Excel.
package importer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// Раскладка шаблона: шапка в B1..B3, заголовки таблицы в строке 5, данные с 6-й.
const (
	CellCustomerName = "B1"
	CellStartDate    = "B2"
	CellEndDate      = "B3"
	HeaderRow        = 5
	FirstDataRow     = HeaderRow + 1
)

const (
	ColumnCategory = "Kategori"
	ColumnService  = "Hizmet Adı"
	ColumnPrice    = "Birim Fiyat"
	ColumnUnit     = "Birim"
)

// RequiredColumns - без них импорт невозможен.
var RequiredColumns = []string{ColumnCategory, ColumnService, ColumnPrice}

const sheetName = "Fiyat Listesi"

var dateLayouts = []string{time.DateOnly, "02.01.2006", "2.1.2006", "02/01/2006", time.RFC3339}

// ParseRateCard читает первый лист книги и собирает прайс.
// Все ошибки строк возвращаются одним apperror.Validation.
func ParseRateCard(r io.Reader) (*entity.RateCard, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.Validation("Excel dosyası okunamadı",
			apperror.FieldError{Field: "file", Message: "geçerli bir .xlsx dosyası yükleyin"})
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("importer: не удалось прочитать лист: %w", err)
	}

	var details []apperror.FieldError

	customer, err := f.GetCellValue(sheet, CellCustomerName)
	if err != nil {
		return nil, fmt.Errorf("importer: не удалось прочитать %s: %w", CellCustomerName, err)
	}
	customer = strings.TrimSpace(customer)
	if customer == "" {
		details = append(details, apperror.FieldError{Field: "customerName", Message: "müşteri adı (B1) boş olamaz"})
	}

	startDate, fe := readDate(f, sheet, CellStartDate, "startDate")
	if fe != nil {
		details = append(details, *fe)
	}
	endDate, fe := readDate(f, sheet, CellEndDate, "endDate")
	if fe != nil {
		details = append(details, *fe)
	}
	if startDate != nil && endDate != nil && *endDate < *startDate {
		details = append(details, apperror.FieldError{Field: "endDate", Message: "bitiş tarihi başlangıçtan önce olamaz"})
	}

	if len(rows) < HeaderRow {
		details = append(details, missingColumnErrors(RequiredColumns)...)
		return nil, missingColumnsError(RequiredColumns, details)
	}

	columns, missing := mapColumns(rows[HeaderRow-1])
	if len(missing) > 0 {
		details = append(details, missingColumnErrors(missing)...)
		return nil, missingColumnsError(missing, details)
	}

	var (
		categories []entity.RateCategory
		byName     = make(map[string]int)
	)
	for i := FirstDataRow - 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1
		if isBlank(row) {
			continue
		}

		category := cell(row, columns[ColumnCategory])
		service := cell(row, columns[ColumnService])
		rawPrice := cell(row, columns[ColumnPrice])
		unit := ""
		if idx, ok := columns[ColumnUnit]; ok {
			unit = cell(row, idx)
		}

		rowOK := true
		if category == "" {
			details = append(details, apperror.FieldError{Row: rowNum, Field: ColumnCategory, Message: "kategori boş olamaz"})
			rowOK = false
		}
		if service == "" {
			details = append(details, apperror.FieldError{Row: rowNum, Field: ColumnService, Message: "hizmet adı boş olamaz"})
			rowOK = false
		}
		price, err := ParsePrice(rawPrice)
		switch {
		case err != nil:
			details = append(details, apperror.FieldError{Row: rowNum, Field: ColumnPrice, Message: fmt.Sprintf("geçersiz fiyat: %q", rawPrice)})
			rowOK = false
		case price < 0:
			details = append(details, apperror.FieldError{Row: rowNum, Field: ColumnPrice, Message: "fiyat negatif olamaz"})
			rowOK = false
		}
		if !rowOK {
			continue
		}

		key := strings.ToLower(category)
		idx, ok := byName[key]
		if !ok {
			idx = len(categories)
			byName[key] = idx
			categories = append(categories, entity.RateCategory{ID: uuid.NewString(), Name: category, Services: []entity.RateService{}})
		}
		categories[idx].Services = append(categories[idx].Services, entity.RateService{
			ID:    uuid.NewString(),
			Name:  service,
			Unit:  unit,
			Price: price,
		})
	}

	if len(details) > 0 {
		return nil, apperror.Validation("fiyat listesi içe aktarılamadı", details...)
	}
	if len(categories) == 0 {
		return nil, apperror.Validation("fiyat listesi içe aktarılamadı",
			apperror.FieldError{Row: FirstDataRow, Message: "dosyada hizmet satırı yok"})
	}

	return &entity.RateCard{
		CustomerName: customer,
		StartDate:    startDate,
		EndDate:      endDate,
		Categories:   categories,
	}, nil
}

var errEmptyPrice = errors.New("empty price")

// ParsePrice принимает и 1234.5, и турецкую запись 1.234,50 с символом ₺.
// NaN и бесконечности считаются ошибкой.
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₺")
	s = strings.TrimSuffix(s, "TL")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, errEmptyPrice
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("price %q is not a finite number", raw)
	}
	return v, nil
}

func mapColumns(header []string) (map[string]int, []string) {
	known := append(append([]string{}, RequiredColumns...), ColumnUnit)
	columns := make(map[string]int)
	for i, h := range header {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(h), "*")))
		for _, name := range known {
			if _, seen := columns[name]; !seen && norm == strings.ToLower(name) {
				columns[name] = i
			}
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	return columns, missing
}

func missingColumnErrors(missing []string) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(missing))
	for _, name := range missing {
		out = append(out, apperror.FieldError{Row: HeaderRow, Field: name, Message: fmt.Sprintf("%q sütunu eksik", name)})
	}
	return out
}

func missingColumnsError(missing []string, details []apperror.FieldError) error {
	return apperror.Validation("eksik sütunlar: "+strings.Join(missing, ", "), details...).
		WithMeta("missingColumns", missing)
}

func readDate(f *excelize.File, sheet, axis, field string) (*string, *apperror.FieldError) {
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &apperror.FieldError{Field: field, Message: err.Error()}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	// Ячейка с форматом даты хранит серийный номер Excel.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			s := t.Format(time.DateOnly)
			return &s, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			s := t.Format(time.DateOnly)
			return &s, nil
		}
	}
	return nil, &apperror.FieldError{Field: field, Message: fmt.Sprintf("%s hücresindeki tarih anlaşılamadı: %q", axis, raw)}
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
