package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Блокировки на файл живут весь процесс: две коллекции на один путь делят один мьютекс.
var (
	fileLocksMu sync.Mutex
	fileLocks   = make(map[string]*sync.RWMutex)
)

func lockFor(path string) *sync.RWMutex {
	fileLocksMu.Lock()
	defer fileLocksMu.Unlock()

	l, ok := fileLocks[path]
	if !ok {
		l = &sync.RWMutex{}
		fileLocks[path] = l
	}
	return l
}

// FileCollection хранит коллекцию как JSON-массив в одном файле.
// Каждое изменение - чтение всего файла, правка в памяти и атомарная замена
// файла через rename, всё под блокировкой файла.
type FileCollection[T Document] struct {
	path string
	mu   *sync.RWMutex
}

// NewFileCollection создаёт каталог и пустой файл коллекции, если их нет.
func NewFileCollection[T Document](dir, name string) (*FileCollection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: не удалось создать каталог %s: %w", dir, err)
	}
	path, err := filepath.Abs(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("docstore: путь коллекции %s: %w", name, err)
	}

	c := &FileCollection[T]{path: path, mu: lockFor(path)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.write([]T{}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Path возвращает путь к файлу коллекции.
func (c *FileCollection[T]) Path() string {
	return c.path
}

func (c *FileCollection[T]) All(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

func (c *FileCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	docs, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, d := range docs {
		if d.DocumentID() == id {
			return d, nil
		}
	}
	return zero, ErrNotFound
}

func (c *FileCollection[T]) Insert(ctx context.Context, doc T, check CheckFunc[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return err
	}
	id := doc.DocumentID()
	for _, d := range docs {
		if d.DocumentID() == id {
			return ErrDuplicateID
		}
	}
	if check != nil {
		if err := check(doc, docs); err != nil {
			return err
		}
	}
	return c.write(append(docs, doc))
}

func (c *FileCollection[T]) Update(ctx context.Context, id string, mutate func(doc *T) error, check CheckFunc[T]) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return zero, err
	}
	idx := -1
	for i, d := range docs {
		if d.DocumentID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, ErrNotFound
	}

	updated := docs[idx]
	if err := mutate(&updated); err != nil {
		return zero, err
	}
	if updated.DocumentID() != id {
		return zero, fmt.Errorf("docstore: нельзя менять id документа %s", id)
	}
	if check != nil {
		if err := check(updated, others(docs, id)); err != nil {
			return zero, err
		}
	}
	docs[idx] = updated
	if err := c.write(docs); err != nil {
		return zero, err
	}
	return updated, nil
}

func (c *FileCollection[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return zero, err
	}
	for i, d := range docs {
		if d.DocumentID() == id {
			rest := append(docs[:i:i], docs[i+1:]...)
			if err := c.write(rest); err != nil {
				return zero, err
			}
			return d, nil
		}
	}
	return zero, ErrNotFound
}

// read читает файл; вызывать под блокировкой.
func (c *FileCollection[T]) read() ([]T, error) {
	raw, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: не удалось прочитать %s: %w", c.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []T{}, nil
	}

	var docs []T
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("docstore: повреждён файл %s: %w", c.path, err)
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

// write заменяет файл целиком через временный файл; вызывать под блокировкой.
func (c *FileCollection[T]) write(docs []T) error {
	raw, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: не удалось сериализовать коллекцию: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("docstore: не удалось создать временный файл: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("docstore: ошибка записи файла: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("docstore: ошибка сброса файла: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("docstore: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("docstore: не удалось заменить %s: %w", c.path, err)
	}
	return nil
}
