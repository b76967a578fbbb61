package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

func newRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewFileRepositories(t.TempDir())
	require.NoError(t, err)
	return repos
}

func TestRateCardRepository_CustomerNameUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	first := &entity.RateCard{ID: uuid.New(), CustomerName: "Acme Ltd", CreatedAt: time.Now()}
	require.NoError(t, repos.RateCards.Create(ctx, first))

	dup := &entity.RateCard{ID: uuid.New(), CustomerName: "acme ltd"}
	err := repos.RateCards.Create(ctx, dup)
	assert.True(t, apperror.IsValidation(err))

	found, err := repos.RateCards.FindByCustomerName(ctx, " ACME LTD ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repos.RateCards.FindByCustomerName(ctx, "Globex")
	assert.True(t, apperror.IsNotFound(err))

	list, err := repos.RateCards.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRateCardRepository_RenameCollision(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	a := &entity.RateCard{ID: uuid.New(), CustomerName: "Acme"}
	b := &entity.RateCard{ID: uuid.New(), CustomerName: "Globex"}
	require.NoError(t, repos.RateCards.Create(ctx, a))
	require.NoError(t, repos.RateCards.Create(ctx, b))

	_, err := repos.RateCards.Update(ctx, b.ID, func(rc *entity.RateCard) error {
		rc.CustomerName = "ACME"
		return nil
	})
	assert.True(t, apperror.IsValidation(err))

	// Смена регистра своего же имени разрешена.
	updated, err := repos.RateCards.Update(ctx, a.ID, func(rc *entity.RateCard) error {
		rc.CustomerName = "ACME"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME", updated.CustomerName)
}

func TestRateCardRepository_ConcurrentCreatesOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repos.RateCards.Create(ctx, &entity.RateCard{ID: uuid.New(), CustomerName: "Acme"})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestProposalRepository_CreateUniqueAndFilters(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	p := &entity.Proposal{ID: uuid.New(), CustomerName: "Acme", ProjectName: "Lansman", Status: valueobject.ProposalStatusDraft, CreatedAt: time.Now()}
	require.NoError(t, repos.Proposals.CreateUnique(ctx, p))

	dup := &entity.Proposal{ID: uuid.New(), CustomerName: "ACME", ProjectName: "lansman"}
	assert.True(t, apperror.IsConflict(repos.Proposals.CreateUnique(ctx, dup)))

	// Обычный Create дубликаты не проверяет (черновики и ревизии).
	other := &entity.Proposal{ID: uuid.New(), CustomerName: "Globex", ProjectName: "Web", Status: valueobject.ProposalStatusSent, CreatedAt: time.Now().Add(time.Minute)}
	require.NoError(t, repos.Proposals.Create(ctx, other))

	all, err := repos.Proposals.List(ctx, repository.ProposalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ID)

	sent, err := repos.Proposals.List(ctx, repository.ProposalFilter{Status: "sent"})
	require.NoError(t, err)
	require.Len(t, sent, 1)

	acme, err := repos.Proposals.List(ctx, repository.ProposalFilter{CustomerName: "acme"})
	require.NoError(t, err)
	require.Len(t, acme, 1)

	same, err := repos.Proposals.FindByCustomerAndProject(ctx, "acme", "LANSMAN")
	require.NoError(t, err)
	assert.Len(t, same, 1)

	require.NoError(t, repos.Proposals.Delete(ctx, p.ID))
	_, err = repos.Proposals.FindByID(ctx, p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestNoteRepository_Attachments(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	n := &entity.Note{ID: uuid.New(), Title: "Haftalık toplantı", Files: entity.Attachments{}}
	require.NoError(t, repos.Notes.Create(ctx, n))

	file := entity.Attachment{ID: uuid.New(), Name: "sunum.pdf", Path: "notes/x/sunum.pdf"}
	require.NoError(t, repos.Notes.AddAttachment(ctx, n.ID, file))

	files, err := repos.Notes.Attachments(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)

	removed, err := repos.Notes.RemoveAttachment(ctx, n.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "sunum.pdf", removed.Name)

	_, err = repos.Notes.RemoveAttachment(ctx, n.ID, file.ID)
	assert.True(t, apperror.IsNotFound(err))

	assert.True(t, apperror.IsNotFound(repos.Notes.AddAttachment(ctx, uuid.New(), file)))
}

func TestEmployeeRepository_DeleteReturnsRecord(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	e := &entity.Employee{ID: uuid.New(), FirstName: "Ayşe", LastName: "Yılmaz"}
	require.NoError(t, repos.Employees.Create(ctx, e))

	deleted, err := repos.Employees.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", deleted.FirstName)

	_, err = repos.Employees.Delete(ctx, e.ID)
	assert.True(t, apperror.IsNotFound(err))
}
