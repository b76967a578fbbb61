package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// RevisionSuffix добавляется к имени проекта при сохранении ревизии.
const RevisionSuffix = " (Revize)"

// Service - строка предложения. TotalPrice всегда price*days*quantity.
type Service struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	Days       float64 `json:"days"`
	Quantity   float64 `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsCustom bool      `json:"isCustom,omitempty"`
	Services []Service `json:"services"`
}

type Topic struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

type Proposal struct {
	ID               uuid.UUID                  `json:"id"`
	CustomerName     string                     `json:"customerName"`
	ProjectName      string                     `json:"projectName"`
	Date             string                     `json:"date"`
	Topics           []Topic                    `json:"topics"`
	TotalAmount      float64                    `json:"totalAmount"`
	Discount         *valueobject.Adjustment    `json:"discount,omitempty"`
	AgencyCommission *valueobject.Adjustment    `json:"agencyCommission,omitempty"`
	Terms            string                     `json:"terms,omitempty"`
	ShowTotal        bool                       `json:"showTotal"`
	CreatedBy        string                     `json:"createdBy"`
	Status           valueobject.ProposalStatus `json:"status"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

func (p Proposal) DocumentID() string {
	return p.ID.String()
}

// Normalize подчищает пробелы, проставляет недостающие id и статус по умолчанию.
func (p *Proposal) Normalize() {
	p.CustomerName = strings.TrimSpace(p.CustomerName)
	p.ProjectName = strings.TrimSpace(p.ProjectName)
	p.Date = strings.TrimSpace(p.Date)
	if p.Status == "" {
		p.Status = valueobject.ProposalStatusDraft
	}
	if p.Topics == nil {
		p.Topics = []Topic{}
	}
	for ti := range p.Topics {
		t := &p.Topics[ti]
		t.Name = strings.TrimSpace(t.Name)
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Categories == nil {
			t.Categories = []Category{}
		}
		for ci := range t.Categories {
			c := &t.Categories[ci]
			c.Name = strings.TrimSpace(c.Name)
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			if c.Services == nil {
				c.Services = []Service{}
			}
			for si := range c.Services {
				s := &c.Services[si]
				s.Name = strings.TrimSpace(s.Name)
				if s.ID == "" {
					s.ID = uuid.NewString()
				}
			}
		}
	}
}

// Validate проверяет поля, без которых предложение нельзя сохранить.
// Структурная полнота (темы/категории/услуги) проверяется мастером.
func (p *Proposal) Validate() error {
	var details []apperror.FieldError
	if p.CustomerName == "" {
		details = append(details, apperror.FieldError{Field: "customerName", Message: "müşteri adı zorunlu"})
	}
	if p.ProjectName == "" {
		details = append(details, apperror.FieldError{Field: "projectName", Message: "proje adı zorunlu"})
	}
	if p.Date == "" {
		details = append(details, apperror.FieldError{Field: "date", Message: "tarih zorunlu"})
	} else if !IsValidDate(p.Date) {
		details = append(details, apperror.FieldError{Field: "date", Message: "tarih YYYY-AA-GG biçiminde olmalı"})
	}
	if !p.Status.IsValid() {
		details = append(details, apperror.FieldError{Field: "status", Message: "geçersiz teklif durumu"})
	}
	if p.Discount != nil {
		if fe := p.Discount.Validate("discount"); fe != nil {
			details = append(details, *fe)
		}
	}
	if p.AgencyCommission != nil {
		if fe := p.AgencyCommission.Validate("agencyCommission"); fe != nil {
			details = append(details, *fe)
		}
	}

	for ti, t := range p.Topics {
		for ci, c := range t.Categories {
			for si, s := range c.Services {
				field := servicePath(ti, ci, si)
				if s.Name == "" {
					details = append(details, apperror.FieldError{Field: field + ".name", Message: "hizmet adı zorunlu"})
				}
				if badNumber(s.Price) || badNumber(s.Days) || badNumber(s.Quantity) {
					details = append(details, apperror.FieldError{Field: field, Message: "fiyat, gün ve adet negatif olmayan sayılar olmalı"})
				}
			}
		}
	}

	if len(details) > 0 {
		return apperror.Validation("teklif doğrulanamadı", details...)
	}
	return nil
}

// Clone возвращает глубокую копию дерева тем.
func (p Proposal) Clone() Proposal {
	cp := p
	cp.Topics = make([]Topic, len(p.Topics))
	for ti, t := range p.Topics {
		nt := t
		nt.Categories = make([]Category, len(t.Categories))
		for ci, c := range t.Categories {
			nc := c
			nc.Services = append([]Service(nil), c.Services...)
			nt.Categories[ci] = nc
		}
		cp.Topics[ti] = nt
	}
	if p.Discount != nil {
		d := *p.Discount
		cp.Discount = &d
	}
	if p.AgencyCommission != nil {
		a := *p.AgencyCommission
		cp.AgencyCommission = &a
	}
	return cp
}

// RevisionName возвращает имя проекта для ревизии, не наращивая суффикс повторно.
func RevisionName(projectName string) string {
	if strings.HasSuffix(projectName, RevisionSuffix) {
		return projectName
	}
	return projectName + RevisionSuffix
}

// SameProject сравнивает пару клиент+проект без учёта регистра.
func (p Proposal) SameProject(customerName, projectName string) bool {
	return strings.EqualFold(strings.TrimSpace(p.CustomerName), strings.TrimSpace(customerName)) &&
		strings.EqualFold(strings.TrimSpace(p.ProjectName), strings.TrimSpace(projectName))
}

// IsValidDate принимает даты формы (2006-01-02) и RFC3339.
func IsValidDate(v string) bool {
	if _, err := time.Parse(time.DateOnly, v); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, v)
	return err == nil
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}

func servicePath(ti, ci, si int) string {
	return fmt.Sprintf("topics[%d].categories[%d].services[%d]", ti, ci, si)
}
