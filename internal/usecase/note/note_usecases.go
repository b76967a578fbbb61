package note

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// OwnerFiles удаляет каталог вложений записи.
type OwnerFiles interface {
	RemoveOwner(ctx context.Context, ownerID uuid.UUID) error
}

func prepare(n *entity.Note) error {
	n.Normalize()
	return n.Validate()
}

type CreateNoteUseCase struct {
	noteRepo repository.NoteRepository
}

func NewCreateNoteUseCase(noteRepo repository.NoteRepository) *CreateNoteUseCase {
	return &CreateNoteUseCase{noteRepo: noteRepo}
}

// Execute создаёт заметку; автор берётся из сессии, если не указан.
func (uc *CreateNoteUseCase) Execute(ctx context.Context, actor session.Session, n entity.Note) (*entity.Note, error) {
	if err := prepare(&n); err != nil {
		return nil, err
	}
	if n.Date == "" {
		n.Date = time.Now().Format(time.DateOnly)
	}
	if n.CreatedBy == "" {
		n.CreatedBy = actor.Name
	}
	// Файлы добавляются только через /files.
	n.Files = entity.Attachments{}

	now := time.Now().UTC()
	n.ID = uuid.New()
	n.CreatedAt = now
	n.UpdatedAt = now

	if err := uc.noteRepo.Create(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

type GetNoteUseCase struct {
	noteRepo repository.NoteRepository
}

func NewGetNoteUseCase(noteRepo repository.NoteRepository) *GetNoteUseCase {
	return &GetNoteUseCase{noteRepo: noteRepo}
}

func (uc *GetNoteUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	return uc.noteRepo.FindByID(ctx, id)
}

type ListNotesUseCase struct {
	noteRepo repository.NoteRepository
}

func NewListNotesUseCase(noteRepo repository.NoteRepository) *ListNotesUseCase {
	return &ListNotesUseCase{noteRepo: noteRepo}
}

func (uc *ListNotesUseCase) Execute(ctx context.Context) ([]*entity.Note, error) {
	return uc.noteRepo.List(ctx)
}

type NotePatch struct {
	Title        *string
	Content      *string
	Date         *string
	Participants *[]string
}

type UpdateNoteUseCase struct {
	noteRepo repository.NoteRepository
}

func NewUpdateNoteUseCase(noteRepo repository.NoteRepository) *UpdateNoteUseCase {
	return &UpdateNoteUseCase{noteRepo: noteRepo}
}

func (uc *UpdateNoteUseCase) Execute(ctx context.Context, id uuid.UUID, patch NotePatch) (*entity.Note, error) {
	return uc.noteRepo.Update(ctx, id, func(n *entity.Note) error {
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.Date != nil {
			n.Date = *patch.Date
		}
		if patch.Participants != nil {
			n.Participants = *patch.Participants
		}
		if err := prepare(n); err != nil {
			return err
		}
		n.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type DeleteNoteUseCase struct {
	noteRepo repository.NoteRepository
	files    OwnerFiles
}

func NewDeleteNoteUseCase(noteRepo repository.NoteRepository, files OwnerFiles) *DeleteNoteUseCase {
	return &DeleteNoteUseCase{noteRepo: noteRepo, files: files}
}

// Execute удаляет запись, затем каталог с файлами.
// Ошибка удаления каталога только логируется: записи уже нет.
func (uc *DeleteNoteUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.noteRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.files.RemoveOwner(ctx, id); err != nil {
		logger.Log.WithError(err).WithField("note_id", id).Warn("note: не удалось удалить файлы заметки")
	}
	return nil
}
