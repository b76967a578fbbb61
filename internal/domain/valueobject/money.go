package valueobject

import (
	"fmt"
	"math"
	"strings"

	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// AdjustmentType задаёт, как трактовать значение скидки или комиссии.
type AdjustmentType string

const (
	AdjustmentPercentage AdjustmentType = "percentage"
	AdjustmentAmount     AdjustmentType = "amount"
)

func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentPercentage || t == AdjustmentAmount
}

// Adjustment используется и для скидки, и для агентской комиссии.
type Adjustment struct {
	Type  AdjustmentType `json:"type"`
	Value float64        `json:"value"`
}

// Validate проверяет корректность скидки/комиссии. Процент не больше 100.
func (a Adjustment) Validate(field string) *apperror.FieldError {
	switch {
	case !a.Type.IsValid():
		return &apperror.FieldError{Field: field + ".type", Message: "tip 'percentage' veya 'amount' olmalı"}
	case math.IsNaN(a.Value) || a.Value < 0:
		return &apperror.FieldError{Field: field + ".value", Message: "değer negatif olamaz"}
	case a.Type == AdjustmentPercentage && a.Value > 100:
		return &apperror.FieldError{Field: field + ".value", Message: "yüzde 100'den büyük olamaz"}
	}
	return nil
}

// FormatTRY форматирует сумму в турецкой записи: ₺1.234.567,89.
func FormatTRY(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₺-"
	}
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	result := "₺" + b.String() + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}
