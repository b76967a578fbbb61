package ratecard_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/service"
	"github.com/ignatzorin/agency-backend/internal/usecase/ratecard"
)

type mockRateCardRepository struct {
	cards map[uuid.UUID]*entity.RateCard
}

func newMockRateCardRepository() *mockRateCardRepository {
	return &mockRateCardRepository{cards: make(map[uuid.UUID]*entity.RateCard)}
}

func (m *mockRateCardRepository) Create(ctx context.Context, rc *entity.RateCard) error {
	for _, o := range m.cards {
		if entity.CustomerKey(o.CustomerName) == entity.CustomerKey(rc.CustomerName) {
			return entity.DuplicateCustomerError(rc.CustomerName)
		}
	}
	cp := *rc
	m.cards[rc.ID] = &cp
	return nil
}

func (m *mockRateCardRepository) Update(ctx context.Context, id uuid.UUID, mutate func(rc *entity.RateCard) error) (*entity.RateCard, error) {
	stored, ok := m.cards[id]
	if !ok {
		return nil, apperror.ErrRateCardNotFound
	}
	cp := *stored
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	m.cards[id] = &cp
	return &cp, nil
}

func (m *mockRateCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.cards[id]; !ok {
		return apperror.ErrRateCardNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m *mockRateCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RateCard, error) {
	if rc, ok := m.cards[id]; ok {
		return rc, nil
	}
	return nil, apperror.ErrRateCardNotFound
}

func (m *mockRateCardRepository) FindByCustomerName(ctx context.Context, name string) (*entity.RateCard, error) {
	for _, rc := range m.cards {
		if entity.CustomerKey(rc.CustomerName) == entity.CustomerKey(name) {
			return rc, nil
		}
	}
	return nil, apperror.ErrRateCardNotFound
}

func (m *mockRateCardRepository) List(ctx context.Context) ([]*entity.RateCard, error) {
	var out []*entity.RateCard
	for _, rc := range m.cards {
		out = append(out, rc)
	}
	return out, nil
}

func workbook(t *testing.T, customer string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "B1", customer))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]any{"Kategori", "Hizmet Adı", "Birim Fiyat"}))
	require.NoError(t, f.SetSheetRow(sheet, "A6", &[]any{"Video", "Kurgu", 1500}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestImportRateCard(t *testing.T) {
	ctx := context.Background()
	repo := newMockRateCardRepository()
	uc := ratecard.NewImportRateCardUseCase(repo)

	rc, err := uc.Execute(ctx, workbook(t, "Acme"))
	require.NoError(t, err)
	assert.Equal(t, "Acme", rc.CustomerName)
	assert.NotEqual(t, uuid.Nil, rc.ID)
	require.Len(t, rc.Categories, 1)
	assert.Equal(t, 1500.0, rc.Categories[0].Services[0].Price)
}

func TestImportRateCard_DuplicateCustomerWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := newMockRateCardRepository()
	_, err := ratecard.NewCreateRateCardUseCase(repo).Execute(ctx, entity.RateCard{CustomerName: "Acme"})
	require.NoError(t, err)

	_, err = ratecard.NewImportRateCardUseCase(repo).Execute(ctx, workbook(t, "  ACME "))
	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.ErrCodeValidation, ae.Code)
	assert.Equal(t, "customerName", ae.Details[0].Field)
	assert.Len(t, repo.cards, 1)
}

func TestCreateRateCard_DuplicateRejectedByRepository(t *testing.T) {
	ctx := context.Background()
	repo := newMockRateCardRepository()
	uc := ratecard.NewCreateRateCardUseCase(repo)

	_, err := uc.Execute(ctx, entity.RateCard{CustomerName: "Acme"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, entity.RateCard{CustomerName: "acme"})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateRateCard_PatchesAndClearsDates(t *testing.T) {
	ctx := context.Background()
	repo := newMockRateCardRepository()
	start := "2024-01-01"
	created, err := ratecard.NewCreateRateCardUseCase(repo).Execute(ctx, entity.RateCard{CustomerName: "Acme", StartDate: &start})
	require.NoError(t, err)

	cats := []entity.RateCategory{{Name: "Tasarım", Services: []entity.RateService{{Name: "Logo", Price: 100}}}}
	updated, err := ratecard.NewUpdateRateCardUseCase(repo).Execute(ctx, created.ID, ratecard.RateCardPatch{
		StartDateSet: true,
		Categories:   &cats,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.StartDate)
	assert.Equal(t, "Acme", updated.CustomerName)
	require.Len(t, updated.Categories, 1)
	assert.NotEmpty(t, updated.Categories[0].Services[0].ID)

	bad := []entity.RateCategory{{Name: "X", Services: []entity.RateService{{Name: "Y", Price: -1}}}}
	_, err = ratecard.NewUpdateRateCardUseCase(repo).Execute(ctx, created.ID, ratecard.RateCardPatch{Categories: &bad})
	assert.True(t, apperror.IsValidation(err))
}

func TestListRateCards_ByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := newMockRateCardRepository()
	create := ratecard.NewCreateRateCardUseCase(repo)
	_, err := create.Execute(ctx, entity.RateCard{CustomerName: "Acme"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, entity.RateCard{CustomerName: "Beta"})
	require.NoError(t, err)

	uc := ratecard.NewListRateCardsUseCase(repo)
	all, err := uc.Execute(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := uc.Execute(ctx, "beta")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Beta", one[0].CustomerName)

	none, err := uc.Execute(ctx, "Gamma")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProposalCategoriesAndExport(t *testing.T) {
	ctx := context.Background()
	repo := newMockRateCardRepository()
	created, err := ratecard.NewCreateRateCardUseCase(repo).Execute(ctx, entity.RateCard{
		CustomerName: "Acme",
		Categories:   []entity.RateCategory{{Name: "Video", Services: []entity.RateService{{Name: "Kurgu", Price: 750}}}},
	})
	require.NoError(t, err)

	cats, err := ratecard.NewGetRateCardUseCase(repo).ProposalCategories(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, 1.0, cats[0].Services[0].Days)
	assert.Equal(t, 750.0, cats[0].Services[0].TotalPrice)

	cache := service.NewExportCache(ctx, time.Minute)
	file, err := ratecard.NewExportRateCardUseCase(repo, cache).Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "fiyat_listesi_Acme.xlsx", file.Name)
	assert.NotEmpty(t, file.Data)

	require.NoError(t, ratecard.NewDeleteRateCardUseCase(repo, cache).Execute(ctx, created.ID))
	assert.Equal(t, 0, cache.Len())
	_, err = ratecard.NewGetRateCardUseCase(repo).Execute(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestTemplate(t *testing.T) {
	file, err := ratecard.Template()
	require.NoError(t, err)
	assert.Equal(t, "fiyat_listesi_sablonu.xlsx", file.Name)
	assert.NotEmpty(t, file.Data)
}
