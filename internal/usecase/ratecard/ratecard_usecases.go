package ratecard

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/export"
	"github.com/ignatzorin/agency-backend/internal/importer"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/service"
)

func prepare(rc *entity.RateCard) error {
	rc.Normalize()
	if rc.StartDate != nil && *rc.StartDate == "" {
		rc.StartDate = nil
	}
	if rc.EndDate != nil && *rc.EndDate == "" {
		rc.EndDate = nil
	}
	return rc.Validate()
}

type CreateRateCardUseCase struct {
	rateCardRepo repository.RateCardRepository
}

func NewCreateRateCardUseCase(rateCardRepo repository.RateCardRepository) *CreateRateCardUseCase {
	return &CreateRateCardUseCase{rateCardRepo: rateCardRepo}
}

// Execute создаёт прайс. Уникальность имени клиента проверяет репозиторий в момент записи.
func (uc *CreateRateCardUseCase) Execute(ctx context.Context, rc entity.RateCard) (*entity.RateCard, error) {
	if err := prepare(&rc); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rc.ID = uuid.New()
	rc.CreatedAt = now
	rc.UpdatedAt = now

	if err := uc.rateCardRepo.Create(ctx, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// ImportRateCardUseCase разбирает Excel и создаёт прайс.
// При совпадении имени клиента ничего не пишется.
type ImportRateCardUseCase struct {
	rateCardRepo repository.RateCardRepository
}

func NewImportRateCardUseCase(rateCardRepo repository.RateCardRepository) *ImportRateCardUseCase {
	return &ImportRateCardUseCase{rateCardRepo: rateCardRepo}
}

func (uc *ImportRateCardUseCase) Execute(ctx context.Context, r io.Reader) (*entity.RateCard, error) {
	parsed, err := importer.ParseRateCard(r)
	if err != nil {
		return nil, err
	}

	existing, err := uc.rateCardRepo.FindByCustomerName(ctx, parsed.CustomerName)
	switch {
	case err == nil && existing != nil:
		return nil, entity.DuplicateCustomerError(parsed.CustomerName)
	case err != nil && !apperror.IsNotFound(err):
		return nil, err
	}

	return NewCreateRateCardUseCase(uc.rateCardRepo).Execute(ctx, *parsed)
}

type GetRateCardUseCase struct {
	rateCardRepo repository.RateCardRepository
}

func NewGetRateCardUseCase(rateCardRepo repository.RateCardRepository) *GetRateCardUseCase {
	return &GetRateCardUseCase{rateCardRepo: rateCardRepo}
}

func (uc *GetRateCardUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.RateCard, error) {
	return uc.rateCardRepo.FindByID(ctx, id)
}

// ProposalCategories - услуги прайса в виде категорий предложения для мастера.
func (uc *GetRateCardUseCase) ProposalCategories(ctx context.Context, id uuid.UUID) ([]entity.Category, error) {
	rc, err := uc.rateCardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rc.ProposalCategories(), nil
}

type ListRateCardsUseCase struct {
	rateCardRepo repository.RateCardRepository
}

func NewListRateCardsUseCase(rateCardRepo repository.RateCardRepository) *ListRateCardsUseCase {
	return &ListRateCardsUseCase{rateCardRepo: rateCardRepo}
}

// Execute с непустым customerName возвращает не больше одного прайса.
func (uc *ListRateCardsUseCase) Execute(ctx context.Context, customerName string) ([]*entity.RateCard, error) {
	if customerName == "" {
		return uc.rateCardRepo.List(ctx)
	}
	rc, err := uc.rateCardRepo.FindByCustomerName(ctx, customerName)
	if apperror.IsNotFound(err) {
		return []*entity.RateCard{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []*entity.RateCard{rc}, nil
}

// RateCardPatch - частичное обновление; для дат отдельный флаг, null их очищает.
type RateCardPatch struct {
	CustomerName *string
	StartDateSet bool
	StartDate    *string
	EndDateSet   bool
	EndDate      *string
	Categories   *[]entity.RateCategory
}

type UpdateRateCardUseCase struct {
	rateCardRepo repository.RateCardRepository
}

func NewUpdateRateCardUseCase(rateCardRepo repository.RateCardRepository) *UpdateRateCardUseCase {
	return &UpdateRateCardUseCase{rateCardRepo: rateCardRepo}
}

func (uc *UpdateRateCardUseCase) Execute(ctx context.Context, id uuid.UUID, patch RateCardPatch) (*entity.RateCard, error) {
	return uc.rateCardRepo.Update(ctx, id, func(rc *entity.RateCard) error {
		if patch.CustomerName != nil {
			rc.CustomerName = *patch.CustomerName
		}
		if patch.StartDateSet {
			rc.StartDate = patch.StartDate
		}
		if patch.EndDateSet {
			rc.EndDate = patch.EndDate
		}
		if patch.Categories != nil {
			rc.Categories = *patch.Categories
		}
		if err := prepare(rc); err != nil {
			return err
		}
		rc.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type DeleteRateCardUseCase struct {
	rateCardRepo repository.RateCardRepository
	cache        *service.ExportCache
}

func NewDeleteRateCardUseCase(rateCardRepo repository.RateCardRepository, cache *service.ExportCache) *DeleteRateCardUseCase {
	return &DeleteRateCardUseCase{rateCardRepo: rateCardRepo, cache: cache}
}

func (uc *DeleteRateCardUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if err := uc.rateCardRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.InvalidateRecord(exportKind, id)
	return nil
}

const exportKind = "ratecard"

// ExportedFile - готовый файл для отдачи клиенту.
type ExportedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportRateCardUseCase struct {
	rateCardRepo repository.RateCardRepository
	cache        *service.ExportCache
}

func NewExportRateCardUseCase(rateCardRepo repository.RateCardRepository, cache *service.ExportCache) *ExportRateCardUseCase {
	return &ExportRateCardUseCase{rateCardRepo: rateCardRepo, cache: cache}
}

func (uc *ExportRateCardUseCase) Execute(ctx context.Context, id uuid.UUID) (*ExportedFile, error) {
	rc, err := uc.rateCardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := uc.cache.GetOrRender(service.ExportCacheKey(exportKind, rc.ID, rc.UpdatedAt, "xlsx"), func() ([]byte, error) {
		return export.RateCardExcel(rc)
	})
	if err != nil {
		return nil, err
	}
	return &ExportedFile{
		Name:        export.FileName(".xlsx", "fiyat_listesi", rc.CustomerName),
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	}, nil
}

// Template - пустой шаблон импорта.
func Template() (*ExportedFile, error) {
	data, err := importer.Template()
	if err != nil {
		return nil, err
	}
	return &ExportedFile{
		Name:        "fiyat_listesi_sablonu.xlsx",
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	}, nil
}
