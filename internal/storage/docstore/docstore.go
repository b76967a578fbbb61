// Package docstore хранит записи как JSON-документы, сгруппированные в коллекции.
// Есть две реализации: JSON-массив в файле на коллекцию и таблица documents в PostgreSQL.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("docstore: документ не найден")
	ErrDuplicateID = errors.New("docstore: документ с таким id уже существует")
)

// Document - запись, которую можно положить в коллекцию.
type Document interface {
	DocumentID() string
}

// CheckFunc проверяет инварианты коллекции перед записью.
// others - все остальные документы коллекции на момент записи.
type CheckFunc[T Document] func(doc T, others []T) error

// Collection - хранилище документов одного типа.
// Все изменения сериализуются внутри коллекции, поэтому CheckFunc видит
// согласованное состояние и не может проиграть гонку другому писателю.
type Collection[T Document] interface {
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, doc T, check CheckFunc[T]) error
	Update(ctx context.Context, id string, mutate func(doc *T) error, check CheckFunc[T]) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// others возвращает документы кроме id.
func others[T Document](docs []T, id string) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		if d.DocumentID() != id {
			out = append(out, d)
		}
	}
	return out
}
