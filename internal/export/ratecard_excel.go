package export

import (
	"github.com/ignatzorin/agency-backend/internal/domain/entity"
)

// RateCardExcel выгружает прайс клиента в раскладке, близкой к шаблону импорта.
func RateCardExcel(rc *entity.RateCard) ([]byte, error) {
	w, err := newWorkbook(rc.CustomerName)
	if err != nil {
		return nil, err
	}
	defer w.close()

	if err := w.widths(28, 40, 14, 18); err != nil {
		return nil, err
	}

	period := "Geçerlilik: "
	switch {
	case rc.StartDate != nil && rc.EndDate != nil:
		period += displayDate(*rc.StartDate) + " - " + displayDate(*rc.EndDate)
	case rc.StartDate != nil:
		period += displayDate(*rc.StartDate) + " itibarıyla"
	case rc.EndDate != nil:
		period += displayDate(*rc.EndDate) + " tarihine kadar"
	default:
		period += "süresiz"
	}

	rowNum, err := w.titleBlock(4, "Fiyat Listesi: "+rc.CustomerName, period)
	if err != nil {
		return nil, err
	}

	if err := w.row(rowNum, w.header, "Kategori", "Hizmet Adı", "Birim", "Birim Fiyat"); err != nil {
		return nil, err
	}
	w.freezeBelow(rowNum)
	rowNum++

	for _, c := range rc.Categories {
		for _, s := range c.Services {
			if err := w.row(rowNum, w.body, c.Name, s.Name, s.Unit, s.Price); err != nil {
				return nil, err
			}
			w.style(4, rowNum, w.money)
			rowNum++
		}
	}

	return w.bytes()
}
