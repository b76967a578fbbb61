package export

import (
	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/pricing"
)

var proposalColumns = []any{"Tema", "Kategori", "Hizmet", "Birim", "Gün", "Adet", "Birim Fiyat", "Toplam"}

// ProposalExcel выгружает дерево предложения и итоги в один лист.
func ProposalExcel(p *entity.Proposal) ([]byte, error) {
	cp := p.Clone()
	totals := pricing.Recalculate(&cp)
	p = &cp

	w, err := newWorkbook(p.ProjectName)
	if err != nil {
		return nil, err
	}
	defer w.close()

	if err := w.widths(22, 22, 36, 10, 8, 8, 16, 18); err != nil {
		return nil, err
	}

	rowNum, err := w.titleBlock(len(proposalColumns), "Fiyat Teklifi",
		"Müşteri: "+p.CustomerName,
		"Proje: "+p.ProjectName,
		"Tarih: "+displayDate(p.Date)+"  Durum: "+proposalStatusLabel(p.Status),
	)
	if err != nil {
		return nil, err
	}

	if err := w.row(rowNum, w.header, proposalColumns...); err != nil {
		return nil, err
	}
	w.freezeBelow(rowNum)
	rowNum++

	for _, t := range p.Topics {
		if err := w.row(rowNum, w.group, t.Name, "", "", "", "", "", "", pricing.TopicTotal(t)); err != nil {
			return nil, err
		}
		rowNum++

		for _, c := range t.Categories {
			if err := w.row(rowNum, w.subgroup, "", c.Name, "", "", "", "", "", pricing.CategoryTotal(c)); err != nil {
				return nil, err
			}
			rowNum++

			for _, s := range c.Services {
				if err := w.row(rowNum, w.body, "", "", s.Name, s.Unit, s.Days, s.Quantity, s.Price, s.TotalPrice); err != nil {
					return nil, err
				}
				w.style(7, rowNum, w.money)
				w.style(8, rowNum, w.money)
				rowNum++
			}
		}
	}

	rowNum++
	summary := []struct {
		label  string
		amount float64
		show   bool
	}{
		{"Ara Toplam", totals.SubTotal, true},
		{adjustmentLabel("İndirim", p.Discount), -totals.DiscountAmount, HasAdjustment(p.Discount)},
		{"İndirimli Toplam", totals.AfterDiscount, HasAdjustment(p.Discount)},
		{adjustmentLabel("Ajans Komisyonu", p.AgencyCommission), totals.CommissionAmount, HasAdjustment(p.AgencyCommission)},
		{"Genel Toplam", totals.FinalTotal, true},
	}
	for _, s := range summary {
		if !s.show {
			continue
		}
		if err := w.row(rowNum, 0, "", "", "", "", "", "", s.label, s.amount); err != nil {
			return nil, err
		}
		w.style(7, rowNum, w.label)
		w.style(8, rowNum, w.total)
		rowNum++
	}

	if p.Terms != "" {
		rowNum++
		if err := w.row(rowNum, w.subtitle, "Şartlar ve Koşullar"); err != nil {
			return nil, err
		}
		if err := w.row(rowNum+1, 0, p.Terms); err != nil {
			return nil, err
		}
	}

	return w.bytes()
}
