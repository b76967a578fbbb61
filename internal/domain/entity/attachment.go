package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment - метаданные загруженного файла. Path относителен корню uploads.
type Attachment struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	UploadDate    time.Time `json:"uploadDate"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"contentType"`
	ThumbnailPath string    `json:"thumbnailPath,omitempty"`
}

// AttachmentKind - тип владельца, он же подкаталог в uploads.
type AttachmentKind string

const (
	AttachmentKindNote     AttachmentKind = "notes"
	AttachmentKindEmployee AttachmentKind = "employees"
)

// Attachments - список файлов записи.
type Attachments []Attachment

func (a Attachments) Find(id uuid.UUID) (Attachment, bool) {
	for _, f := range a {
		if f.ID == id {
			return f, true
		}
	}
	return Attachment{}, false
}

// Without возвращает список без файла id и сам удалённый файл.
func (a Attachments) Without(id uuid.UUID) (Attachments, Attachment, bool) {
	out := make(Attachments, 0, len(a))
	var removed Attachment
	found := false
	for _, f := range a {
		if f.ID == id {
			removed, found = f, true
			continue
		}
		out = append(out, f)
	}
	return out, removed, found
}
