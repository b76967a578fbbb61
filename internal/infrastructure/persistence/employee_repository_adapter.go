package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage/docstore"
)

type EmployeeRepositoryAdapter struct {
	docs docstore.Collection[entity.Employee]
}

func NewEmployeeRepositoryAdapter(docs docstore.Collection[entity.Employee]) *EmployeeRepositoryAdapter {
	return &EmployeeRepositoryAdapter{docs: docs}
}

func (r *EmployeeRepositoryAdapter) Create(ctx context.Context, employee *entity.Employee) error {
	err := r.docs.Insert(ctx, *employee, nil)
	return mapStoreError(err, apperror.ErrEmployeeNotFound, "çalışan kaydedilemedi")
}

func (r *EmployeeRepositoryAdapter) Update(ctx context.Context, id uuid.UUID, mutate func(e *entity.Employee) error) (*entity.Employee, error) {
	updated, err := r.docs.Update(ctx, id.String(), mutate, nil)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrEmployeeNotFound, "çalışan güncellenemedi")
	}
	return &updated, nil
}

func (r *EmployeeRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	deleted, err := r.docs.Delete(ctx, id.String())
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrEmployeeNotFound, "çalışan silinemedi")
	}
	return &deleted, nil
}

func (r *EmployeeRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	e, err := r.docs.Get(ctx, id.String())
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrEmployeeNotFound, "çalışan okunamadı")
	}
	return &e, nil
}

func (r *EmployeeRepositoryAdapter) List(ctx context.Context) ([]*entity.Employee, error) {
	docs, err := r.docs.All(ctx)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrEmployeeNotFound, "çalışanlar okunamadı")
	}
	result := pointers(docs)
	newestFirst(result, func(e *entity.Employee) int64 { return e.CreatedAt.UnixNano() })
	return result, nil
}

func (r *EmployeeRepositoryAdapter) Attachments(ctx context.Context, ownerID uuid.UUID) (entity.Attachments, error) {
	e, err := r.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return e.Files, nil
}

func (r *EmployeeRepositoryAdapter) AddAttachment(ctx context.Context, ownerID uuid.UUID, file entity.Attachment) error {
	_, err := r.Update(ctx, ownerID, func(e *entity.Employee) error {
		e.Files = append(e.Files, file)
		e.UpdatedAt = time.Now().UTC()
		return nil
	})
	return err
}

func (r *EmployeeRepositoryAdapter) RemoveAttachment(ctx context.Context, ownerID, fileID uuid.UUID) (entity.Attachment, error) {
	var removed entity.Attachment
	_, err := r.Update(ctx, ownerID, func(e *entity.Employee) error {
		rest, file, ok := e.Files.Without(fileID)
		if !ok {
			return apperror.ErrAttachmentNotFound
		}
		e.Files, removed = rest, file
		e.UpdatedAt = time.Now().UTC()
		return nil
	})
	return removed, err
}
