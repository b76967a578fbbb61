package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/pricing"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/service"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// prepare приводит предложение к виду для записи: нормализация, проверка, пересчёт сумм.
func prepare(p *entity.Proposal) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	pricing.Recalculate(p)
	return nil
}

func stamp(p *entity.Proposal, actor session.Session, now time.Time) {
	p.ID = uuid.New()
	if p.CreatedBy == "" {
		p.CreatedBy = actor.Name
	}
	p.CreatedAt = now
	p.UpdatedAt = now
}

type CreateProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewCreateProposalUseCase(proposalRepo repository.ProposalRepository) *CreateProposalUseCase {
	return &CreateProposalUseCase{proposalRepo: proposalRepo}
}

func (uc *CreateProposalUseCase) Execute(ctx context.Context, actor session.Session, p entity.Proposal) (*entity.Proposal, error) {
	if err := prepare(&p); err != nil {
		return nil, err
	}
	stamp(&p, actor, time.Now().UTC())

	if err := uc.proposalRepo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type GetProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewGetProposalUseCase(proposalRepo repository.ProposalRepository) *GetProposalUseCase {
	return &GetProposalUseCase{proposalRepo: proposalRepo}
}

func (uc *GetProposalUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	return uc.proposalRepo.FindByID(ctx, id)
}

type ListProposalsUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewListProposalsUseCase(proposalRepo repository.ProposalRepository) *ListProposalsUseCase {
	return &ListProposalsUseCase{proposalRepo: proposalRepo}
}

func (uc *ListProposalsUseCase) Execute(ctx context.Context, filter repository.ProposalFilter) ([]*entity.Proposal, error) {
	if filter.Status != "" {
		if _, err := valueobject.NewProposalStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	return uc.proposalRepo.List(ctx, filter)
}

// ProposalPatch - частичное обновление: nil означает "поле не прислано".
// Для скидки и комиссии отдельный флаг, потому что null в запросе их снимает.
type ProposalPatch struct {
	CustomerName        *string
	ProjectName         *string
	Date                *string
	Topics              *[]entity.Topic
	Terms               *string
	ShowTotal           *bool
	Status              *string
	DiscountSet         bool
	Discount            *valueobject.Adjustment
	AgencyCommissionSet bool
	AgencyCommission    *valueobject.Adjustment
}

func (patch ProposalPatch) apply(p *entity.Proposal) error {
	if patch.CustomerName != nil {
		p.CustomerName = *patch.CustomerName
	}
	if patch.ProjectName != nil {
		p.ProjectName = *patch.ProjectName
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.Topics != nil {
		p.Topics = *patch.Topics
	}
	if patch.Terms != nil {
		p.Terms = *patch.Terms
	}
	if patch.ShowTotal != nil {
		p.ShowTotal = *patch.ShowTotal
	}
	if patch.Status != nil {
		status, err := valueobject.NewProposalStatus(*patch.Status)
		if err != nil {
			return err
		}
		p.Status = status
	}
	if patch.DiscountSet {
		p.Discount = patch.Discount
	}
	if patch.AgencyCommissionSet {
		p.AgencyCommission = patch.AgencyCommission
	}
	return nil
}

// UpdateProposalUseCase сливает присланные поля с сохранённым предложением
// под блокировкой файла и пересчитывает суммы.
type UpdateProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewUpdateProposalUseCase(proposalRepo repository.ProposalRepository) *UpdateProposalUseCase {
	return &UpdateProposalUseCase{proposalRepo: proposalRepo}
}

func (uc *UpdateProposalUseCase) Execute(ctx context.Context, id uuid.UUID, patch ProposalPatch) (*entity.Proposal, error) {
	return uc.proposalRepo.Update(ctx, id, func(p *entity.Proposal) error {
		if err := patch.apply(p); err != nil {
			return err
		}
		if err := prepare(p); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type DeleteProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	cache        *service.ExportCache
}

func NewDeleteProposalUseCase(proposalRepo repository.ProposalRepository, cache *service.ExportCache) *DeleteProposalUseCase {
	return &DeleteProposalUseCase{proposalRepo: proposalRepo, cache: cache}
}

func (uc *DeleteProposalUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if err := uc.proposalRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.InvalidateRecord(exportKind, id)
	return nil
}

// CreateRevisionUseCase копирует предложение в новую запись с суффиксом " (Revize)".
type CreateRevisionUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewCreateRevisionUseCase(proposalRepo repository.ProposalRepository) *CreateRevisionUseCase {
	return &CreateRevisionUseCase{proposalRepo: proposalRepo}
}

func (uc *CreateRevisionUseCase) Execute(ctx context.Context, actor session.Session, sourceID uuid.UUID) (*entity.Proposal, error) {
	source, err := uc.proposalRepo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	revision := source.Clone()
	revision.ProjectName = entity.RevisionName(revision.ProjectName)
	revision.Status = valueobject.ProposalStatusDraft
	revision.CreatedBy = ""
	if err := prepare(&revision); err != nil {
		return nil, err
	}
	stamp(&revision, actor, time.Now().UTC())

	if err := uc.proposalRepo.Create(ctx, &revision); err != nil {
		return nil, err
	}
	return &revision, nil
}

// Calculation - итоги и предложение с пересчитанными totalPrice.
type Calculation struct {
	Totals   pricing.Totals   `json:"totals"`
	Proposal *entity.Proposal `json:"proposal"`
}

// Calculate считает итоги несохранённого черновика, не трогая хранилище.
func Calculate(p entity.Proposal) Calculation {
	cp := p.Clone()
	totals := pricing.Recalculate(&cp)
	return Calculation{Totals: totals, Proposal: &cp}
}

type GetTotalsUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewGetTotalsUseCase(proposalRepo repository.ProposalRepository) *GetTotalsUseCase {
	return &GetTotalsUseCase{proposalRepo: proposalRepo}
}

func (uc *GetTotalsUseCase) Execute(ctx context.Context, id uuid.UUID) (pricing.Totals, error) {
	p, err := uc.proposalRepo.FindByID(ctx, id)
	if err != nil {
		return pricing.Totals{}, err
	}
	return pricing.Calculate(p), nil
}
