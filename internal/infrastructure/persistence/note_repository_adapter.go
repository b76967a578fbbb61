package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage/docstore"
)

type NoteRepositoryAdapter struct {
	docs docstore.Collection[entity.Note]
}

func NewNoteRepositoryAdapter(docs docstore.Collection[entity.Note]) *NoteRepositoryAdapter {
	return &NoteRepositoryAdapter{docs: docs}
}

func (r *NoteRepositoryAdapter) Create(ctx context.Context, note *entity.Note) error {
	err := r.docs.Insert(ctx, *note, nil)
	return mapStoreError(err, apperror.ErrNoteNotFound, "not kaydedilemedi")
}

func (r *NoteRepositoryAdapter) Update(ctx context.Context, id uuid.UUID, mutate func(n *entity.Note) error) (*entity.Note, error) {
	updated, err := r.docs.Update(ctx, id.String(), mutate, nil)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrNoteNotFound, "not güncellenemedi")
	}
	return &updated, nil
}

func (r *NoteRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	deleted, err := r.docs.Delete(ctx, id.String())
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrNoteNotFound, "not silinemedi")
	}
	return &deleted, nil
}

func (r *NoteRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	n, err := r.docs.Get(ctx, id.String())
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrNoteNotFound, "not okunamadı")
	}
	return &n, nil
}

func (r *NoteRepositoryAdapter) List(ctx context.Context) ([]*entity.Note, error) {
	docs, err := r.docs.All(ctx)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrNoteNotFound, "notlar okunamadı")
	}
	result := pointers(docs)
	newestFirst(result, func(n *entity.Note) int64 { return n.CreatedAt.UnixNano() })
	return result, nil
}

func (r *NoteRepositoryAdapter) Attachments(ctx context.Context, ownerID uuid.UUID) (entity.Attachments, error) {
	n, err := r.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return n.Files, nil
}

func (r *NoteRepositoryAdapter) AddAttachment(ctx context.Context, ownerID uuid.UUID, file entity.Attachment) error {
	_, err := r.Update(ctx, ownerID, func(n *entity.Note) error {
		n.Files = append(n.Files, file)
		n.UpdatedAt = time.Now().UTC()
		return nil
	})
	return err
}

func (r *NoteRepositoryAdapter) RemoveAttachment(ctx context.Context, ownerID, fileID uuid.UUID) (entity.Attachment, error) {
	var removed entity.Attachment
	_, err := r.Update(ctx, ownerID, func(n *entity.Note) error {
		rest, file, ok := n.Files.Without(fileID)
		if !ok {
			return apperror.ErrAttachmentNotFound
		}
		n.Files, removed = rest, file
		n.UpdatedAt = time.Now().UTC()
		return nil
	})
	return removed, err
}
