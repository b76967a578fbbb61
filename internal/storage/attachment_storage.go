package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

const (
	thumbnailMaxSide = 300
	thumbnailQuality = 60
	thumbnailSuffix  = "_thumb.jpg"
)

var ErrOutsideRoot = errors.New("storage: путь вне каталога загрузок")

// StoredFile - то, что получилось на диске после Save.
type StoredFile struct {
	Path          string
	Size          int64
	ContentType   string
	ThumbnailPath string
}

// AttachmentStorage хранит вложения в UPLOADS_DIR/<kind>/<ownerID>/.
type AttachmentStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewAttachmentStorage создаёт файловое хранилище вложений.
func NewAttachmentStorage(rootPath string, maxUploadMB int64) (*AttachmentStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &AttachmentStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// MaxUploadBytes - лимит размера одного файла.
func (s *AttachmentStorage) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// OwnerDir возвращает относительный каталог записи.
func OwnerDir(kind entity.AttachmentKind, ownerID uuid.UUID) string {
	return filepath.Join(string(kind), ownerID.String())
}

// Save проверяет тип по магическим байтам, пишет файл и для изображений строит превью.
func (s *AttachmentStorage) Save(ctx context.Context, kind entity.AttachmentKind, ownerID, fileID uuid.UUID, originalName string, r io.Reader) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}

	head := make([]byte, SniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return StoredFile{}, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	detected, err := DetectAttachmentType(head, originalName)
	if err != nil {
		return StoredFile{}, err
	}

	safeName := sanitizeFilename(originalName)
	ext := filepath.Ext(safeName)
	if ext == "" {
		ext = detected.Extension
	}
	fileName := fileID.String() + strings.ToLower(ext)

	relDir := OwnerDir(kind, ownerID)
	ownerDir := filepath.Join(s.rootPath, relDir)
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("storage: не удалось создать каталог записи: %w", err)
	}

	targetPath := filepath.Join(ownerDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return StoredFile{}, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return StoredFile{}, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		msg := fmt.Sprintf("dosya boyutu %d MB sınırını aşıyor", s.maxUploadBytes/(1024*1024))
		return StoredFile{}, apperror.Validation(msg, apperror.FieldError{Field: "file", Message: msg})
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return StoredFile{}, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return StoredFile{}, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	stored := StoredFile{
		Path:        filepath.ToSlash(filepath.Join(relDir, fileName)),
		Size:        written,
		ContentType: detected.ContentType,
	}

	if detected.IsImage {
		thumbName := fileID.String() + thumbnailSuffix
		if err := makeThumbnail(targetPath, filepath.Join(ownerDir, thumbName)); err != nil {
			// Без превью файл всё равно доступен, фронт покажет иконку.
			logger.Log.WithError(err).WithField("path", stored.Path).Warn("storage: не удалось построить превью")
		} else {
			stored.ThumbnailPath = filepath.ToSlash(filepath.Join(relDir, thumbName))
		}
	}

	return stored, nil
}

// Open открывает сохранённый файл по относительному пути.
func (s *AttachmentStorage) Open(ctx context.Context, relativePath string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := s.resolve(relativePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("storage: не удалось открыть файл: %w", err)
	}
	return f, nil
}

// Delete удаляет файл из хранилища.
func (s *AttachmentStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if relativePath == "" {
		return nil
	}

	target, err := s.resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// RemoveAll удаляет каталог записи целиком.
func (s *AttachmentStorage) RemoveAll(ctx context.Context, kind entity.AttachmentKind, ownerID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.rootPath, OwnerDir(kind, ownerID))); err != nil {
		return fmt.Errorf("storage: не удалось удалить каталог записи: %w", err)
	}
	return nil
}

// resolve не выпускает путь за пределы rootPath.
func (s *AttachmentStorage) resolve(relativePath string) (string, error) {
	root, err := filepath.Abs(s.rootPath)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(relativePath))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return target, nil
}

func makeThumbnail(src, dst string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, thumbnailMaxSide, thumbnailMaxSide, imaging.Lanczos)
	return imaging.Save(thumb, dst, imaging.JPEGQuality(thumbnailQuality))
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}

// DisplayName - имя файла для показа и Content-Disposition.
func DisplayName(originalName string) string {
	return sanitizeFilename(originalName)
}
