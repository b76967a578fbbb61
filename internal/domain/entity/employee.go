package entity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// Equipment - единица оборудования, выданная сотруднику.
type Equipment struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	SerialNumber string    `json:"serialNumber,omitempty"`
	AssignedDate string    `json:"assignedDate"`
	ReturnedDate *string   `json:"returnedDate,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// IsReturned сообщает, сдано ли оборудование.
func (e Equipment) IsReturned() bool {
	return e.ReturnedDate != nil && *e.ReturnedDate != ""
}

type Employee struct {
	ID         uuid.UUID                  `json:"id"`
	FirstName  string                     `json:"firstName"`
	LastName   string                     `json:"lastName"`
	Email      string                     `json:"email"`
	Phone      string                     `json:"phone"`
	Department string                     `json:"department"`
	Position   string                     `json:"position"`
	StartDate  string                     `json:"startDate"`
	Status     valueobject.EmployeeStatus `json:"status"`
	Equipment  []Equipment                `json:"equipment"`
	Files      Attachments                `json:"files"`
	CreatedAt  time.Time                  `json:"createdAt"`
	UpdatedAt  time.Time                  `json:"updatedAt"`
}

func (e Employee) DocumentID() string {
	return e.ID.String()
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e *Employee) Normalize() {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	if e.Status == "" {
		e.Status = valueobject.EmployeeStatusActive
	}
	if e.Equipment == nil {
		e.Equipment = []Equipment{}
	}
	if e.Files == nil {
		e.Files = Attachments{}
	}
}

func (e *Employee) Validate() error {
	var details []apperror.FieldError
	if e.FirstName == "" {
		details = append(details, apperror.FieldError{Field: "firstName", Message: "ad zorunlu"})
	}
	if e.LastName == "" {
		details = append(details, apperror.FieldError{Field: "lastName", Message: "soyad zorunlu"})
	}
	if e.Email != "" {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			details = append(details, apperror.FieldError{Field: "email", Message: "geçersiz e-posta"})
		}
	}
	if e.StartDate != "" && !IsValidDate(e.StartDate) {
		details = append(details, apperror.FieldError{Field: "startDate", Message: "geçersiz başlangıç tarihi"})
	}
	if !e.Status.IsValid() {
		details = append(details, apperror.FieldError{Field: "status", Message: "geçersiz çalışan durumu"})
	}
	if len(details) > 0 {
		return apperror.Validation("çalışan doğrulanamadı", details...)
	}
	return nil
}

// NewEquipment проверяет и создаёт запись об оборудовании.
func NewEquipment(name, kind, serial, assignedDate, notes string) (Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Equipment{}, apperror.Validation("ekipman doğrulanamadı", apperror.FieldError{Field: "name", Message: "ekipman adı zorunlu"})
	}
	assignedDate = strings.TrimSpace(assignedDate)
	if assignedDate == "" {
		assignedDate = time.Now().Format(time.DateOnly)
	} else if !IsValidDate(assignedDate) {
		return Equipment{}, apperror.Validation("ekipman doğrulanamadı", apperror.FieldError{Field: "assignedDate", Message: "geçersiz teslim tarihi"})
	}
	return Equipment{
		ID:           uuid.New(),
		Name:         name,
		Type:         strings.TrimSpace(kind),
		SerialNumber: strings.TrimSpace(serial),
		AssignedDate: assignedDate,
		Notes:        strings.TrimSpace(notes),
	}, nil
}
