package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// RateService - каноническая услуга прайса клиента.
type RateService struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Unit  string  `json:"unit,omitempty"`
	Price float64 `json:"price"`
}

type RateCategory struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Services []RateService `json:"services"`
}

// RateCard - прайс-лист клиента. CustomerName уникален без учёта регистра.
type RateCard struct {
	ID           uuid.UUID      `json:"id"`
	CustomerName string         `json:"customerName"`
	StartDate    *string        `json:"startDate,omitempty"`
	EndDate      *string        `json:"endDate,omitempty"`
	Categories   []RateCategory `json:"categories"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (rc RateCard) DocumentID() string {
	return rc.ID.String()
}

// CustomerKey - ключ уникальности прайса.
func CustomerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (rc *RateCard) Normalize() {
	rc.CustomerName = strings.TrimSpace(rc.CustomerName)
	if rc.Categories == nil {
		rc.Categories = []RateCategory{}
	}
	for ci := range rc.Categories {
		c := &rc.Categories[ci]
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Services == nil {
			c.Services = []RateService{}
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

func (rc *RateCard) Validate() error {
	var details []apperror.FieldError
	if rc.CustomerName == "" {
		details = append(details, apperror.FieldError{Field: "customerName", Message: "müşteri adı zorunlu"})
	}
	if rc.StartDate != nil && *rc.StartDate != "" && !IsValidDate(*rc.StartDate) {
		details = append(details, apperror.FieldError{Field: "startDate", Message: "geçersiz başlangıç tarihi"})
	}
	if rc.EndDate != nil && *rc.EndDate != "" && !IsValidDate(*rc.EndDate) {
		details = append(details, apperror.FieldError{Field: "endDate", Message: "geçersiz bitiş tarihi"})
	}
	for ci, c := range rc.Categories {
		if c.Name == "" {
			details = append(details, apperror.FieldError{Field: fmt.Sprintf("categories[%d].name", ci), Message: "kategori adı zorunlu"})
		}
		for si, s := range c.Services {
			field := fmt.Sprintf("categories[%d].services[%d]", ci, si)
			if s.Name == "" {
				details = append(details, apperror.FieldError{Field: field + ".name", Message: "hizmet adı zorunlu"})
			}
			if math.IsNaN(s.Price) || s.Price < 0 {
				details = append(details, apperror.FieldError{Field: field + ".price", Message: "birim fiyat negatif olamaz"})
			}
		}
	}
	if len(details) > 0 {
		return apperror.Validation("fiyat listesi doğrulanamadı", details...)
	}
	return nil
}

// ProposalCategories превращает прайс в категории предложения для предзаполнения мастера.
// Дни и количество по умолчанию равны 1.
func (rc RateCard) ProposalCategories() []Category {
	out := make([]Category, 0, len(rc.Categories))
	for _, c := range rc.Categories {
		cat := Category{ID: uuid.NewString(), Name: c.Name, Services: make([]Service, 0, len(c.Services))}
		for _, s := range c.Services {
			cat.Services = append(cat.Services, Service{
				ID:         uuid.NewString(),
				Name:       s.Name,
				Unit:       s.Unit,
				Price:      s.Price,
				Days:       1,
				Quantity:   1,
				TotalPrice: s.Price,
			})
		}
		out = append(out, cat)
	}
	return out
}

// DuplicateCustomerError - отказ при повторном имени клиента в прайсах.
func DuplicateCustomerError(customerName string) error {
	return apperror.Validation(
		"bu müşteri için zaten bir fiyat listesi var",
		apperror.FieldError{Field: "customerName", Message: fmt.Sprintf("%q adına kayıtlı fiyat listesi mevcut", customerName)},
	)
}
