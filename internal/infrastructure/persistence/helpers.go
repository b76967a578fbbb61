package persistence

import (
	"errors"
	"sort"

	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage/docstore"
)

// Имена коллекций: файлы <name>.json в DATA_DIR или значение documents.collection.
const (
	CollectionProposals = "proposals"
	CollectionRateCards = "ratecards"
	CollectionNotes     = "notes"
	CollectionEmployees = "employees"
)

// mapStoreError переводит ошибки хранилища в ошибки приложения.
// AppError из mutate/check пробрасывается без изменений.
func mapStoreError(err error, notFound *apperror.AppError, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docstore.ErrNotFound) {
		return notFound
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(err, apperror.ErrCodeStorage, message)
}

// newestFirst сортирует по убыванию даты создания, при равенстве сохраняя порядок файла.
func newestFirst[T any](items []*T, createdAt func(*T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}

func pointers[T any](docs []T) []*T {
	out := make([]*T, len(docs))
	for i := range docs {
		out[i] = &docs[i]
	}
	return out
}
