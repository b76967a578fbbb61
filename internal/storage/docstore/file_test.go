package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Counter int      `json:"counter"`
	Tags    []string `json:"tags"`
}

func (d testDoc) DocumentID() string { return d.ID }

func newTestCollection(t *testing.T) *FileCollection[testDoc] {
	t.Helper()
	c, err := NewFileCollection[testDoc](t.TempDir(), "docs")
	require.NoError(t, err)
	return c
}

func TestFileCollection_CreatesEmptyArrayFile(t *testing.T) {
	c := newTestCollection(t)

	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))

	docs, err := c.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFileCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)

	require.NoError(t, c.Insert(ctx, testDoc{ID: "a", Name: "first"}, nil))
	require.NoError(t, c.Insert(ctx, testDoc{ID: "b", Name: "second"}, nil))
	assert.ErrorIs(t, c.Insert(ctx, testDoc{ID: "a"}, nil), ErrDuplicateID)

	got, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)

	updated, err := c.Update(ctx, "a", func(d *testDoc) error {
		d.Name = "renamed"
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	deleted, err := c.Delete(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "second", deleted.Name)

	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Delete(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Update(ctx, "missing", func(*testDoc) error { return nil }, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	docs, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "renamed", docs[0].Name)
}

func TestFileCollection_CheckRejectsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)
	require.NoError(t, c.Insert(ctx, testDoc{ID: "a", Name: "Acme"}, nil))

	errTaken := errors.New("taken")
	uniqueName := func(doc testDoc, others []testDoc) error {
		for _, o := range others {
			if strings.EqualFold(o.Name, doc.Name) {
				return errTaken
			}
		}
		return nil
	}

	assert.ErrorIs(t, c.Insert(ctx, testDoc{ID: "b", Name: "ACME"}, uniqueName), errTaken)

	// Документ не конфликтует сам с собой при обновлении.
	_, err := c.Update(ctx, "a", func(d *testDoc) error { d.Name = "acme"; return nil }, uniqueName)
	require.NoError(t, err)

	docs, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestFileCollection_MutateErrorKeepsFile(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)
	require.NoError(t, c.Insert(ctx, testDoc{ID: "a", Name: "keep"}, nil))

	_, err := c.Update(ctx, "a", func(d *testDoc) error {
		d.Name = "lost"
		return errors.New("boom")
	}, nil)
	require.Error(t, err)

	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Name)

	_, err = c.Update(ctx, "a", func(d *testDoc) error { d.ID = "other"; return nil }, nil)
	assert.Error(t, err)
}

// Параллельные read-modify-write не теряют изменений.
func TestFileCollection_ConcurrentUpdatesLoseNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCollection[testDoc](dir, "counters")
	require.NoError(t, err)
	// Вторая коллекция на тот же файл должна делить блокировку.
	c2, err := NewFileCollection[testDoc](dir, "counters")
	require.NoError(t, err)

	require.NoError(t, c.Insert(ctx, testDoc{ID: "n"}, nil))

	const workers = 20
	const perWorker = 10
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			coll := c
			if w%2 == 1 {
				coll = c2
			}
			for i := 0; i < perWorker; i++ {
				_, err := coll.Update(ctx, "n", func(d *testDoc) error {
					d.Counter++
					d.Tags = append(d.Tags, fmt.Sprintf("%d-%d", w, i))
					return nil
				}, nil)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	got, err := c.Get(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, got.Counter)
	assert.Len(t, got.Tags, workers*perWorker)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileCollection_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	c, err := NewFileCollection[testDoc](dir, "broken")
	require.NoError(t, err)

	_, err = c.All(context.Background())
	assert.Error(t, err)
}

func TestFileCollection_CancelledContext(t *testing.T) {
	c := newTestCollection(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.All(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Insert(ctx, testDoc{ID: "x"}, nil), context.Canceled)
}
