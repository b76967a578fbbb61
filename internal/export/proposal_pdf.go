package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/pricing"
)

// PDFOptions - оформление, не относящееся к самому предложению.
type PDFOptions struct {
	CompanyName string
	GeneratedAt time.Time
}

var (
	gray       = &props.Color{Red: 80, Green: 80, Blue: 80}
	lightGray  = &props.Color{Red: 140, Green: 140, Blue: 140}
	white      = &props.Color{Red: 255, Green: 255, Blue: 255}
	headerBg   = &props.Color{Red: 33, Green: 37, Blue: 41}
	topicBg    = &props.Color{Red: 225, Green: 229, Blue: 235}
	categoryBg = &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryBg  = &props.Color{Red: 240, Green: 240, Blue: 240}
)

// ProposalPDF рендерит предложение: дерево тем, блок итогов и условия.
// Суммы пересчитываются через pricing на копии предложения.
func ProposalPDF(p *entity.Proposal, opts PDFOptions) ([]byte, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}
	cp := p.Clone()
	totals := pricing.Recalculate(&cp)
	p = &cp

	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Sayfa {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   lightGray,
		}).
		Build()

	m := maroto.New(cfg)

	addProposalHeader(m, p, opts)
	addServicesHeader(m)
	for _, t := range p.Topics {
		addTopic(m, t)
	}
	if p.ShowTotal {
		addTotals(m, p, totals)
	}
	addTerms(m, p.Terms)
	addFooter(m, opts)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: не удалось сгенерировать PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addProposalHeader(m core.Maroto, p *entity.Proposal, opts PDFOptions) {
	if opts.CompanyName != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(pdfText(opts.CompanyName), props.Text{Size: 10, Style: fontstyle.Bold, Color: gray}),
				),
			),
		)
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(pdfText("Fiyat Teklifi"), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	info := props.Text{Size: 9, Align: align.Left, Color: gray}
	infoRight := info
	infoRight.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(8).Add(text.New(pdfText("Müşteri: "+p.CustomerName), info)),
			col.New(4).Add(text.New(pdfText("Tarih: "+displayDate(p.Date)), infoRight)),
		),
		row.New(6).Add(
			col.New(8).Add(text.New(pdfText("Proje: "+p.ProjectName), info)),
			col.New(4).Add(text.New(pdfText("Durum: "+proposalStatusLabel(p.Status)), infoRight)),
		),
	)
	m.AddRows(row.New(4))
}

func addServicesHeader(m core.Maroto) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(text.New("Hizmet", headerTextLeft)).WithStyle(headerCell),
			col.New(1).Add(text.New("Birim", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New(pdfText("Gün"), headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Adet", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Birim Fiyat", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Toplam", headerText)).WithStyle(headerCell),
		),
	)
}

func addTopic(m core.Maroto, t entity.Topic) {
	cell := &props.Cell{BackgroundColor: topicBg}
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	boldRight := bold
	boldRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(text.New(pdfText(t.Name), bold)).WithStyle(cell),
			col.New(2).Add(text.New(pdfMoney(pricing.TopicTotal(t)), boldRight)).WithStyle(cell),
		),
	)

	for _, c := range t.Categories {
		catCell := &props.Cell{BackgroundColor: categoryBg}
		catText := props.Text{Size: 8, Style: fontstyle.BoldItalic, Align: align.Left}
		catRight := catText
		catRight.Align = align.Right

		m.AddRows(
			row.New(6).Add(
				col.New(10).Add(text.New(pdfText("  "+c.Name), catText)).WithStyle(catCell),
				col.New(2).Add(text.New(pdfMoney(pricing.CategoryTotal(c)), catRight)).WithStyle(catCell),
			),
		)

		for _, s := range c.Services {
			addServiceRow(m, s)
		}
	}
}

func addServiceRow(m core.Maroto, s entity.Service) {
	base := props.Text{Size: 8, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(5).Add(text.New(pdfText("    "+s.Name), left)),
			col.New(1).Add(text.New(pdfText(s.Unit), base)),
			col.New(1).Add(text.New(formatQty(s.Days), base)),
			col.New(1).Add(text.New(formatQty(s.Quantity), base)),
			col.New(2).Add(text.New(pdfMoney(s.Price), right)),
			col.New(2).Add(text.New(pdfMoney(s.TotalPrice), right)),
		),
	)
}

func addTotals(m core.Maroto, p *entity.Proposal, totals pricing.Totals) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	line := func(l string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(pdfText(l), label)).WithStyle(summaryCell),
				col.New(4).Add(text.New(pdfMoney(amount), value)).WithStyle(summaryCell),
			),
		)
	}

	line("Ara Toplam", totals.SubTotal)
	if HasAdjustment(p.Discount) {
		line(adjustmentLabel("İndirim", p.Discount), -totals.DiscountAmount)
		line("İndirimli Toplam", totals.AfterDiscount)
	}
	if HasAdjustment(p.AgencyCommission) {
		line(adjustmentLabel("Ajans Komisyonu", p.AgencyCommission), totals.CommissionAmount)
	}
	line("Genel Toplam", totals.FinalTotal)
}

func addTerms(m core.Maroto, terms string) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return
	}

	m.AddRows(row.New(6))
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(pdfText("Şartlar ve Koşullar"), props.Text{Size: 9, Style: fontstyle.Bold})),
		),
	)
	for _, l := range strings.Split(terms, "\n") {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(pdfText(strings.TrimRight(l, "\r")), props.Text{Size: 8, Color: gray})),
			),
		)
	}
}

func addFooter(m core.Maroto, opts PDFOptions) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					pdfText(fmt.Sprintf("Oluşturulma: %s", opts.GeneratedAt.Format("02.01.2006 15:04"))),
					props.Text{Size: 7, Align: align.Left, Color: lightGray},
				),
			),
		),
	)
}

// displayDate переводит 2006-01-02 в 02.01.2006; остальное отдаёт как есть.
func displayDate(v string) string {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t.Format("02.01.2006")
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format("02.01.2006")
	}
	return v
}
