package note_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/session"
	"github.com/ignatzorin/agency-backend/internal/usecase/note"
)

func init() {
	logger.Discard()
}

type mockNoteRepository struct {
	notes map[uuid.UUID]*entity.Note
}

func newMockNoteRepository() *mockNoteRepository {
	return &mockNoteRepository{notes: make(map[uuid.UUID]*entity.Note)}
}

func (m *mockNoteRepository) Create(ctx context.Context, n *entity.Note) error {
	cp := *n
	m.notes[n.ID] = &cp
	return nil
}

func (m *mockNoteRepository) Update(ctx context.Context, id uuid.UUID, mutate func(n *entity.Note) error) (*entity.Note, error) {
	stored, ok := m.notes[id]
	if !ok {
		return nil, apperror.ErrNoteNotFound
	}
	cp := *stored
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	m.notes[id] = &cp
	return &cp, nil
}

func (m *mockNoteRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, apperror.ErrNoteNotFound
	}
	delete(m.notes, id)
	return n, nil
}

func (m *mockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	if n, ok := m.notes[id]; ok {
		return n, nil
	}
	return nil, apperror.ErrNoteNotFound
}

func (m *mockNoteRepository) List(ctx context.Context) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range m.notes {
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNoteRepository) Attachments(ctx context.Context, ownerID uuid.UUID) (entity.Attachments, error) {
	n, err := m.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return n.Files, nil
}

func (m *mockNoteRepository) AddAttachment(ctx context.Context, ownerID uuid.UUID, file entity.Attachment) error {
	_, err := m.Update(ctx, ownerID, func(n *entity.Note) error {
		n.Files = append(n.Files, file)
		return nil
	})
	return err
}

func (m *mockNoteRepository) RemoveAttachment(ctx context.Context, ownerID, fileID uuid.UUID) (entity.Attachment, error) {
	return entity.Attachment{}, errors.New("not used")
}

type fakeOwnerFiles struct {
	removed []uuid.UUID
	err     error
}

func (f *fakeOwnerFiles) RemoveOwner(ctx context.Context, ownerID uuid.UUID) error {
	f.removed = append(f.removed, ownerID)
	return f.err
}

var actor = session.Session{UserID: uuid.New(), Name: "Mert", Role: valueobject.RoleStaff}

func TestCreateNote_TakesAuthorFromSession(t *testing.T) {
	repo := newMockNoteRepository()
	uc := note.NewCreateNoteUseCase(repo)

	n, err := uc.Execute(context.Background(), actor, entity.Note{
		Title:        "  Haftalık toplantı ",
		Date:         "2024-05-02",
		Participants: []string{"Ayşe", " ", "Can "},
		Files:        entity.Attachments{{ID: uuid.New(), Name: "sahte.pdf"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Haftalık toplantı", n.Title)
	assert.Equal(t, "Mert", n.CreatedBy)
	assert.Equal(t, []string{"Ayşe", "Can"}, n.Participants)
	assert.Empty(t, n.Files)
	assert.Len(t, repo.notes, 1)
}

func TestCreateNote_DefaultsDateToToday(t *testing.T) {
	uc := note.NewCreateNoteUseCase(newMockNoteRepository())

	n, err := uc.Execute(context.Background(), actor, entity.Note{Title: "Kısa not"})
	require.NoError(t, err)
	assert.True(t, entity.IsValidDate(n.Date))
}

func TestCreateNote_RequiresTitle(t *testing.T) {
	repo := newMockNoteRepository()
	uc := note.NewCreateNoteUseCase(repo)

	_, err := uc.Execute(context.Background(), actor, entity.Note{Title: "   "})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.notes)
}

func TestUpdateNote_MergesProvidedFields(t *testing.T) {
	repo := newMockNoteRepository()
	created, err := note.NewCreateNoteUseCase(repo).Execute(context.Background(), actor, entity.Note{
		Title:   "Başlık",
		Content: "ilk",
		Date:    "2024-05-02",
	})
	require.NoError(t, err)

	content := "güncel"
	updated, err := note.NewUpdateNoteUseCase(repo).Execute(context.Background(), created.ID, note.NotePatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Başlık", updated.Title)
	assert.Equal(t, "güncel", updated.Content)
	assert.Equal(t, "2024-05-02", updated.Date)

	bad := "dün"
	_, err = note.NewUpdateNoteUseCase(repo).Execute(context.Background(), created.ID, note.NotePatch{Date: &bad})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, "2024-05-02", repo.notes[created.ID].Date)
}

func TestUpdateNote_NotFound(t *testing.T) {
	title := "x"
	_, err := note.NewUpdateNoteUseCase(newMockNoteRepository()).Execute(context.Background(), uuid.New(), note.NotePatch{Title: &title})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteNote_RemovesFilesDirectory(t *testing.T) {
	repo := newMockNoteRepository()
	files := &fakeOwnerFiles{}
	created, err := note.NewCreateNoteUseCase(repo).Execute(context.Background(), actor, entity.Note{Title: "Silinecek"})
	require.NoError(t, err)

	require.NoError(t, note.NewDeleteNoteUseCase(repo, files).Execute(context.Background(), created.ID))
	assert.Empty(t, repo.notes)
	assert.Equal(t, []uuid.UUID{created.ID}, files.removed)

	_, err = note.NewGetNoteUseCase(repo).Execute(context.Background(), created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteNote_FileErrorIsNotReturned(t *testing.T) {
	repo := newMockNoteRepository()
	files := &fakeOwnerFiles{err: errors.New("disk")}
	created, err := note.NewCreateNoteUseCase(repo).Execute(context.Background(), actor, entity.Note{Title: "Silinecek"})
	require.NoError(t, err)

	assert.NoError(t, note.NewDeleteNoteUseCase(repo, files).Execute(context.Background(), created.ID))
}

func TestDeleteNote_MissingDoesNotTouchFiles(t *testing.T) {
	files := &fakeOwnerFiles{}
	err := note.NewDeleteNoteUseCase(newMockNoteRepository(), files).Execute(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, files.removed)
}
