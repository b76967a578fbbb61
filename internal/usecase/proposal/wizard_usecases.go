package proposal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/pricing"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/wizard"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// SuggestedProjectNameKey - поле meta в ответе 409 при совпадении имени проекта.
const SuggestedProjectNameKey = "suggestedProjectName"

// StepResult - ответ проверки шага мастера.
type StepResult struct {
	Step       string                `json:"step"`
	CanProceed bool                  `json:"canProceed"`
	Next       string                `json:"next,omitempty"`
	Problems   []apperror.FieldError `json:"problems"`
	Totals     *pricing.Totals       `json:"totals,omitempty"`
}

// ValidateStep проверяет шаг без записи. На шаге просмотра возвращает итоги.
func ValidateStep(step wizard.Step, p entity.Proposal) (StepResult, error) {
	if !step.IsValid() {
		return StepResult{}, apperror.New(apperror.ErrCodeBadRequest, "bilinmeyen adım")
	}

	problems := wizard.Check(step, &p)
	if problems == nil {
		problems = []apperror.FieldError{}
	}
	result := StepResult{
		Step:       step.String(),
		CanProceed: len(problems) == 0,
		Problems:   problems,
	}
	if result.CanProceed && step != wizard.StepPreview {
		next, _ := wizard.Next(step, &p)
		result.Next = next.String()
	}
	if step == wizard.StepPreview {
		totals := Calculate(p).Totals
		result.Totals = &totals
	}
	return result, nil
}

// SubmitInput - завершающее действие мастера. EditingID задан при редактировании.
type SubmitInput struct {
	Action    wizard.Action
	EditingID *uuid.UUID
	Proposal  entity.Proposal
}

type SubmitWizardUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewSubmitWizardUseCase(proposalRepo repository.ProposalRepository) *SubmitWizardUseCase {
	return &SubmitWizardUseCase{proposalRepo: proposalRepo}
}

// Execute сохраняет черновик, ревизию или новое предложение.
// Для ActionNew совпадение клиент+проект даёт 409 с предложенным свободным именем.
func (uc *SubmitWizardUseCase) Execute(ctx context.Context, actor session.Session, in SubmitInput) (*entity.Proposal, error) {
	if !in.Action.IsValid() {
		return nil, apperror.Validation("geçersiz işlem", apperror.FieldError{Field: "action", Message: "draft, revision veya new olmalı"})
	}
	if problems := wizard.Check(wizard.StepPreview, &in.Proposal); len(problems) > 0 {
		return nil, apperror.Validation("teklif tamamlanmadı", problems...)
	}

	p := in.Proposal
	if err := prepare(&p); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	switch in.Action {
	case wizard.ActionDraft:
		if in.EditingID != nil {
			return uc.replace(ctx, *in.EditingID, p, now)
		}
		stamp(&p, actor, now)
		if err := uc.proposalRepo.Create(ctx, &p); err != nil {
			return nil, err
		}
		return &p, nil

	case wizard.ActionRevision:
		p.ProjectName = entity.RevisionName(p.ProjectName)
		stamp(&p, actor, now)
		if err := uc.proposalRepo.Create(ctx, &p); err != nil {
			return nil, err
		}
		return &p, nil
	}

	stamp(&p, actor, now)
	if err := uc.proposalRepo.CreateUnique(ctx, &p); err != nil {
		if !apperror.IsConflict(err) {
			return nil, err
		}
		suggestion, sErr := uc.suggestProjectName(ctx, p.CustomerName, p.ProjectName)
		if sErr != nil {
			return nil, sErr
		}
		return nil, apperror.New(apperror.ErrCodeConflict,
			fmt.Sprintf("%q müşterisi için %q adlı bir proje zaten var", p.CustomerName, p.ProjectName)).
			WithMeta(SuggestedProjectNameKey, suggestion)
	}
	return &p, nil
}

// replace перезаписывает редактируемое предложение, сохраняя id, автора и дату создания.
func (uc *SubmitWizardUseCase) replace(ctx context.Context, id uuid.UUID, p entity.Proposal, now time.Time) (*entity.Proposal, error) {
	return uc.proposalRepo.Update(ctx, id, func(stored *entity.Proposal) error {
		next := p
		next.ID = stored.ID
		next.CreatedBy = stored.CreatedBy
		next.CreatedAt = stored.CreatedAt
		next.UpdatedAt = now
		*stored = next
		return nil
	})
}

// suggestProjectName подбирает "Проект (2)", "Проект (3)"... пока имя не станет свободным.
func (uc *SubmitWizardUseCase) suggestProjectName(ctx context.Context, customerName, projectName string) (string, error) {
	existing, err := uc.proposalRepo.List(ctx, repository.ProposalFilter{CustomerName: customerName})
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[strings.ToLower(strings.TrimSpace(e.ProjectName))] = true
	}

	base := strings.TrimSpace(projectName)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", base, n)
		if !taken[strings.ToLower(candidate)] {
			return candidate, nil
		}
	}
}
