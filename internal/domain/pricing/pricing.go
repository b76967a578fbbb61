// Package pricing - единственное место, где считаются суммы предложения.
// Детальный просмотр, PDF, Excel и мастер вызывают только эти функции.
//
// Порядок фиксирован: подытог, затем скидка, затем агентская комиссия
// от суммы после скидки. NaN во входных данных не ловится и уходит в результат.
package pricing

import (
	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
)

// Totals - полная раскладка сумм предложения.
type Totals struct {
	SubTotal         float64 `json:"subTotal"`
	DiscountAmount   float64 `json:"discountAmount"`
	AfterDiscount    float64 `json:"afterDiscount"`
	CommissionAmount float64 `json:"commissionAmount"`
	FinalTotal       float64 `json:"finalTotal"`
}

// ServiceTotal считает стоимость строки.
func ServiceTotal(price, days, quantity float64) float64 {
	return price * days * quantity
}

// CalculateSubTotal суммирует totalPrice всех услуг всех тем и категорий.
func CalculateSubTotal(p *entity.Proposal) float64 {
	var sum float64
	for _, t := range p.Topics {
		for _, c := range t.Categories {
			for _, s := range c.Services {
				sum += s.TotalPrice
			}
		}
	}
	return sum
}

// CalculateDiscountAmount возвращает 0, если скидка не задана.
func CalculateDiscountAmount(p *entity.Proposal, subTotal float64) float64 {
	return applyAdjustment(p.Discount, subTotal)
}

func CalculateAfterDiscount(subTotal, discountAmount float64) float64 {
	return subTotal - discountAmount
}

// CalculateAgencyCommissionAmount берёт базой сумму после скидки, а не подытог.
func CalculateAgencyCommissionAmount(p *entity.Proposal, afterDiscount float64) float64 {
	return applyAdjustment(p.AgencyCommission, afterDiscount)
}

func CalculateFinalTotal(afterDiscount, commissionAmount float64) float64 {
	return afterDiscount + commissionAmount
}

// Calculate прогоняет всю цепочку по уже сохранённым totalPrice.
func Calculate(p *entity.Proposal) Totals {
	sub := CalculateSubTotal(p)
	discount := CalculateDiscountAmount(p, sub)
	after := CalculateAfterDiscount(sub, discount)
	commission := CalculateAgencyCommissionAmount(p, after)
	return Totals{
		SubTotal:         sub,
		DiscountAmount:   discount,
		AfterDiscount:    after,
		CommissionAmount: commission,
		FinalTotal:       CalculateFinalTotal(after, commission),
	}
}

// Recalculate пересчитывает totalPrice каждой услуги и totalAmount предложения.
// Вызывается перед каждой записью: значения клиента не принимаются на веру.
func Recalculate(p *entity.Proposal) Totals {
	for ti := range p.Topics {
		for ci := range p.Topics[ti].Categories {
			services := p.Topics[ti].Categories[ci].Services
			for si := range services {
				s := &services[si]
				s.TotalPrice = ServiceTotal(s.Price, s.Days, s.Quantity)
			}
		}
	}
	totals := Calculate(p)
	p.TotalAmount = totals.FinalTotal
	return totals
}

// CategoryTotal и TopicTotal нужны экспортам для промежуточных итогов.
func CategoryTotal(c entity.Category) float64 {
	var sum float64
	for _, s := range c.Services {
		sum += s.TotalPrice
	}
	return sum
}

func TopicTotal(t entity.Topic) float64 {
	var sum float64
	for _, c := range t.Categories {
		sum += CategoryTotal(c)
	}
	return sum
}

func applyAdjustment(a *valueobject.Adjustment, base float64) float64 {
	if a == nil {
		return 0
	}
	switch a.Type {
	case valueobject.AdjustmentPercentage:
		return base * a.Value / 100
	case valueobject.AdjustmentAmount:
		return a.Value
	}
	return 0
}
