package attachment

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage"
)

// FileStore - файловое хранилище вложений.
type FileStore interface {
	Save(ctx context.Context, kind entity.AttachmentKind, ownerID, fileID uuid.UUID, originalName string, r io.Reader) (storage.StoredFile, error)
	Open(ctx context.Context, relativePath string) (*os.File, error)
	Delete(ctx context.Context, relativePath string) error
	RemoveAll(ctx context.Context, kind entity.AttachmentKind, ownerID uuid.UUID) error
}

// Service прикрепляет файлы к записям одного типа (заметки или сотрудники).
// Файл на диске и запись в JSON меняются отдельно; при сбое записи метаданных файл удаляется.
type Service struct {
	kind   entity.AttachmentKind
	owners repository.AttachmentOwnerRepository
	files  FileStore
}

func NewService(kind entity.AttachmentKind, owners repository.AttachmentOwnerRepository, files FileStore) *Service {
	return &Service{kind: kind, owners: owners, files: files}
}

func (s *Service) Kind() entity.AttachmentKind {
	return s.kind
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) (entity.Attachments, error) {
	return s.owners.Attachments(ctx, ownerID)
}

// Upload сохраняет файл и дописывает метаданные в запись владельца.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, originalName string, r io.Reader) (*entity.Attachment, error) {
	// Сначала убеждаемся, что владелец есть, чтобы не плодить файлы-сироты.
	if _, err := s.owners.Attachments(ctx, ownerID); err != nil {
		return nil, err
	}

	fileID := uuid.New()
	stored, err := s.files.Save(ctx, s.kind, ownerID, fileID, originalName, r)
	if err != nil {
		return nil, err
	}

	file := entity.Attachment{
		ID:            fileID,
		Name:          storage.DisplayName(originalName),
		Path:          stored.Path,
		UploadDate:    time.Now().UTC(),
		Size:          stored.Size,
		ContentType:   stored.ContentType,
		ThumbnailPath: stored.ThumbnailPath,
	}

	if err := s.owners.AddAttachment(ctx, ownerID, file); err != nil {
		s.removeFiles(context.WithoutCancel(ctx), file)
		return nil, err
	}
	return &file, nil
}

// Open возвращает метаданные и открытый файл. thumbnail=true отдаёт превью, если оно есть.
func (s *Service) Open(ctx context.Context, ownerID, fileID uuid.UUID, thumbnail bool) (*entity.Attachment, *os.File, error) {
	files, err := s.owners.Attachments(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	meta, ok := files.Find(fileID)
	if !ok {
		return nil, nil, apperror.ErrAttachmentNotFound
	}

	path := meta.Path
	if thumbnail && meta.ThumbnailPath != "" {
		path = meta.ThumbnailPath
		meta.ContentType = "image/jpeg"
	}
	f, err := s.files.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return &meta, f, nil
}

// Delete убирает метаданные, затем сам файл и превью.
func (s *Service) Delete(ctx context.Context, ownerID, fileID uuid.UUID) error {
	removed, err := s.owners.RemoveAttachment(ctx, ownerID, fileID)
	if err != nil {
		return err
	}
	s.removeFiles(ctx, removed)
	return nil
}

// RemoveOwner удаляет каталог владельца целиком; вызывается после удаления записи.
func (s *Service) RemoveOwner(ctx context.Context, ownerID uuid.UUID) error {
	return s.files.RemoveAll(ctx, s.kind, ownerID)
}

func (s *Service) removeFiles(ctx context.Context, file entity.Attachment) {
	for _, p := range []string{file.Path, file.ThumbnailPath} {
		if err := s.files.Delete(ctx, p); err != nil {
			logger.Log.WithError(err).WithField("path", p).Warn("attachment: не удалось удалить файл")
		}
	}
}
