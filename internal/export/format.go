// Package export строит PDF и Excel выгрузки предложений, прайсов и сотрудников.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
)

// Встроенные шрифты PDF закодированы в cp1252, в котором нет ş, ğ, ı и знака лиры.
var pdfReplacer = strings.NewReplacer(
	"ş", "s", "Ş", "S",
	"ğ", "g", "Ğ", "G",
	"ı", "i", "İ", "I",
	"₺", "TL ",
)

func pdfText(s string) string {
	return pdfReplacer.Replace(s)
}

func pdfMoney(amount float64) string {
	return pdfText(valueobject.FormatTRY(amount))
}

// formatQty: целые числа без дробной части, остальные с двумя знаками.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return strings.Replace(fmt.Sprintf("%.2f", qty), ".", ",", 1)
}

func adjustmentLabel(base string, a *valueobject.Adjustment) string {
	if a != nil && a.Type == valueobject.AdjustmentPercentage {
		return fmt.Sprintf("%s (%%%s)", base, formatQty(a.Value))
	}
	return base
}

// HasAdjustment - строка скидки/комиссии выводится только если она задана.
func HasAdjustment(a *valueobject.Adjustment) bool {
	return a != nil && a.Value > 0
}

var proposalStatusLabels = map[valueobject.ProposalStatus]string{
	valueobject.ProposalStatusDraft:    "Taslak",
	valueobject.ProposalStatusSent:     "Gönderildi",
	valueobject.ProposalStatusApproved: "Onaylandı",
	valueobject.ProposalStatusRejected: "Reddedildi",
}

var employeeStatusLabels = map[valueobject.EmployeeStatus]string{
	valueobject.EmployeeStatusActive:   "Aktif",
	valueobject.EmployeeStatusInactive: "Pasif",
	valueobject.EmployeeStatusOnLeave:  "İzinli",
}

func proposalStatusLabel(s valueobject.ProposalStatus) string {
	if l, ok := proposalStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func employeeStatusLabel(s valueobject.EmployeeStatus) string {
	if l, ok := employeeStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// FileName собирает безопасное имя файла выгрузки из частей.
func FileName(ext string, parts ...string) string {
	var cleaned []string
	for _, p := range parts {
		p = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
				return r
			case r == ' ' || r == '.':
				return '_'
			}
			return -1
		}, pdfText(strings.TrimSpace(p)))
		p = strings.Trim(p, "_")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{"export"}
	}
	return strings.Join(cleaned, "_") + ext
}

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
