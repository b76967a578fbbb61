package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// Note - заметка со встречи.
type Note struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Date         string      `json:"date"`
	Participants []string    `json:"participants"`
	CreatedBy    string      `json:"createdBy"`
	Files        Attachments `json:"files"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (n Note) DocumentID() string {
	return n.ID.String()
}

func (n *Note) Normalize() {
	n.Title = strings.TrimSpace(n.Title)
	n.Date = strings.TrimSpace(n.Date)
	participants := make([]string, 0, len(n.Participants))
	for _, p := range n.Participants {
		if p = strings.TrimSpace(p); p != "" {
			participants = append(participants, p)
		}
	}
	n.Participants = participants
	if n.Files == nil {
		n.Files = Attachments{}
	}
}

func (n *Note) Validate() error {
	var details []apperror.FieldError
	if n.Title == "" {
		details = append(details, apperror.FieldError{Field: "title", Message: "başlık zorunlu"})
	}
	if n.Date != "" && !IsValidDate(n.Date) {
		details = append(details, apperror.FieldError{Field: "date", Message: "geçersiz tarih"})
	}
	if len(details) > 0 {
		return apperror.Validation("not doğrulanamadı", details...)
	}
	return nil
}
