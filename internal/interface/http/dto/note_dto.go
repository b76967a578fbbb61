package dto

import (
	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/usecase/note"
)

type CreateNoteRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Date         string   `json:"date"`
	Participants []string `json:"participants"`
	CreatedBy    string   `json:"createdBy"`
}

func (r CreateNoteRequest) ToEntity() entity.Note {
	return entity.Note{
		Title:        r.Title,
		Content:      r.Content,
		Date:         r.Date,
		Participants: r.Participants,
		CreatedBy:    r.CreatedBy,
	}
}

// UpdateNoteRequest - присланные поля заменяют сохранённые.
type UpdateNoteRequest struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	Date         *string   `json:"date"`
	Participants *[]string `json:"participants"`
}

func (r UpdateNoteRequest) ToPatch() note.NotePatch {
	return note.NotePatch{
		Title:        r.Title,
		Content:      r.Content,
		Date:         r.Date,
		Participants: r.Participants,
	}
}
