package proposal_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/domain/wizard"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/service"
	"github.com/ignatzorin/agency-backend/internal/session"
	"github.com/ignatzorin/agency-backend/internal/usecase/proposal"
)

type mockProposalRepository struct {
	proposals map[uuid.UUID]*entity.Proposal
}

func newMockProposalRepository() *mockProposalRepository {
	return &mockProposalRepository{proposals: make(map[uuid.UUID]*entity.Proposal)}
}

func (m *mockProposalRepository) Create(ctx context.Context, p *entity.Proposal) error {
	cp := p.Clone()
	m.proposals[p.ID] = &cp
	return nil
}

func (m *mockProposalRepository) CreateUnique(ctx context.Context, p *entity.Proposal) error {
	for _, o := range m.proposals {
		if o.SameProject(p.CustomerName, p.ProjectName) {
			return apperror.New(apperror.ErrCodeConflict, "duplicate")
		}
	}
	return m.Create(ctx, p)
}

func (m *mockProposalRepository) Update(ctx context.Context, id uuid.UUID, mutate func(p *entity.Proposal) error) (*entity.Proposal, error) {
	stored, ok := m.proposals[id]
	if !ok {
		return nil, apperror.ErrProposalNotFound
	}
	cp := stored.Clone()
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	m.proposals[id] = &cp
	out := cp.Clone()
	return &out, nil
}

func (m *mockProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.proposals[id]; !ok {
		return apperror.ErrProposalNotFound
	}
	delete(m.proposals, id)
	return nil
}

func (m *mockProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	if p, ok := m.proposals[id]; ok {
		cp := p.Clone()
		return &cp, nil
	}
	return nil, apperror.ErrProposalNotFound
}

func (m *mockProposalRepository) List(ctx context.Context, filter repository.ProposalFilter) ([]*entity.Proposal, error) {
	var result []*entity.Proposal
	for _, p := range m.proposals {
		if filter.CustomerName != "" && !strings.EqualFold(p.CustomerName, filter.CustomerName) {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockProposalRepository) FindByCustomerAndProject(ctx context.Context, customerName, projectName string) ([]*entity.Proposal, error) {
	var result []*entity.Proposal
	for _, p := range m.proposals {
		if p.SameProject(customerName, projectName) {
			result = append(result, p)
		}
	}
	return result, nil
}

var actor = session.Session{UserID: uuid.New(), Name: "Elif", Role: valueobject.RoleManager}

func draft() entity.Proposal {
	return entity.Proposal{
		CustomerName: " Acme ",
		ProjectName:  "Lansman",
		Date:         "2024-03-01",
		Discount:     &valueobject.Adjustment{Type: valueobject.AdjustmentPercentage, Value: 10},
		AgencyCommission: &valueobject.Adjustment{
			Type:  valueobject.AdjustmentPercentage,
			Value: 5,
		},
		Topics: []entity.Topic{{
			Name: "Video",
			Categories: []entity.Category{{
				Name: "Çekim",
				Services: []entity.Service{
					{Name: "Kamera", Price: 250, Days: 2, Quantity: 2, TotalPrice: 1},
				},
			}},
		}},
	}
}

func TestCreateProposal_RecalculatesAndStamps(t *testing.T) {
	repo := newMockProposalRepository()
	uc := proposal.NewCreateProposalUseCase(repo)

	p, err := uc.Execute(context.Background(), actor, draft())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Acme", p.CustomerName)
	assert.Equal(t, "Elif", p.CreatedBy)
	assert.Equal(t, valueobject.ProposalStatusDraft, p.Status)
	assert.Equal(t, 1000.0, p.Topics[0].Categories[0].Services[0].TotalPrice)
	assert.InDelta(t, 945.0, p.TotalAmount, 1e-9)
	assert.NotEmpty(t, p.Topics[0].ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Len(t, repo.proposals, 1)
}

func TestCreateProposal_ValidationError(t *testing.T) {
	repo := newMockProposalRepository()
	uc := proposal.NewCreateProposalUseCase(repo)

	in := draft()
	in.CustomerName = ""
	in.Date = "01/03/2024"
	_, err := uc.Execute(context.Background(), actor, in)

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.ErrCodeValidation, ae.Code)
	assert.Len(t, ae.Details, 2)
	assert.Empty(t, repo.proposals)
}

func TestUpdateProposal_MergesFields(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	created, err := proposal.NewCreateProposalUseCase(repo).Execute(ctx, actor, draft())
	require.NoError(t, err)

	status := "sent"
	days := []entity.Topic{{Name: "Video", Categories: []entity.Category{{Name: "Kurgu", Services: []entity.Service{{Name: "Montaj", Price: 100, Days: 3, Quantity: 1}}}}}}
	updated, err := proposal.NewUpdateProposalUseCase(repo).Execute(ctx, created.ID, proposal.ProposalPatch{
		Status:      &status,
		Topics:      &days,
		DiscountSet: true,
		Discount:    nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", updated.CustomerName, "untouched fields survive")
	assert.Equal(t, valueobject.ProposalStatusSent, updated.Status)
	assert.Nil(t, updated.Discount)
	assert.NotNil(t, updated.AgencyCommission)
	assert.InDelta(t, 315.0, updated.TotalAmount, 1e-9)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateProposal_RejectsBadStatusAndMissing(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	created, err := proposal.NewCreateProposalUseCase(repo).Execute(ctx, actor, draft())
	require.NoError(t, err)

	bad := "archived"
	_, err = proposal.NewUpdateProposalUseCase(repo).Execute(ctx, created.ID, proposal.ProposalPatch{Status: &bad})
	assert.True(t, apperror.IsValidation(err))

	_, err = proposal.NewUpdateProposalUseCase(repo).Execute(ctx, uuid.New(), proposal.ProposalPatch{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateRevision_AddsSuffixOnce(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	created, err := proposal.NewCreateProposalUseCase(repo).Execute(ctx, actor, draft())
	require.NoError(t, err)

	uc := proposal.NewCreateRevisionUseCase(repo)
	rev, err := uc.Execute(ctx, actor, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, rev.ID)
	assert.Equal(t, "Lansman (Revize)", rev.ProjectName)

	rev2, err := uc.Execute(ctx, actor, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lansman (Revize)", rev2.ProjectName)
	assert.Len(t, repo.proposals, 3)

	_, err = uc.Execute(ctx, actor, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestListProposals_Filters(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	create := proposal.NewCreateProposalUseCase(repo)
	_, err := create.Execute(ctx, actor, draft())
	require.NoError(t, err)
	other := draft()
	other.CustomerName = "Beta"
	_, err = create.Execute(ctx, actor, other)
	require.NoError(t, err)

	uc := proposal.NewListProposalsUseCase(repo)
	list, err := uc.Execute(ctx, repository.ProposalFilter{CustomerName: "acme"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Execute(ctx, repository.ProposalFilter{Status: "unknown"})
	assert.True(t, apperror.IsValidation(err))
}

func TestDeleteProposal(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	created, err := proposal.NewCreateProposalUseCase(repo).Execute(ctx, actor, draft())
	require.NoError(t, err)

	uc := proposal.NewDeleteProposalUseCase(repo, service.NewExportCache(ctx, time.Minute))
	require.NoError(t, uc.Execute(ctx, created.ID))
	assert.True(t, apperror.IsNotFound(uc.Execute(ctx, created.ID)))
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	in := draft()
	calc := proposal.Calculate(in)

	assert.InDelta(t, 1000.0, calc.Totals.SubTotal, 1e-9)
	assert.InDelta(t, 100.0, calc.Totals.DiscountAmount, 1e-9)
	assert.InDelta(t, 45.0, calc.Totals.CommissionAmount, 1e-9)
	assert.InDelta(t, 945.0, calc.Totals.FinalTotal, 1e-9)
	assert.Equal(t, 1.0, in.Topics[0].Categories[0].Services[0].TotalPrice)
}

func TestGetTotals(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	created, err := proposal.NewCreateProposalUseCase(repo).Execute(ctx, actor, draft())
	require.NoError(t, err)

	totals, err := proposal.NewGetTotalsUseCase(repo).Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 900.0, totals.AfterDiscount, 1e-9)
	assert.InDelta(t, created.TotalAmount, totals.FinalTotal, 1e-9)
}

func TestValidateStep(t *testing.T) {
	empty := entity.Proposal{}
	res, err := proposal.ValidateStep(wizard.StepCustomer, empty)
	require.NoError(t, err)
	assert.False(t, res.CanProceed)
	assert.Len(t, res.Problems, 3)

	res, err = proposal.ValidateStep(wizard.StepServices, draft())
	require.NoError(t, err)
	assert.True(t, res.CanProceed)
	assert.Equal(t, "preview", res.Next)

	res, err = proposal.ValidateStep(wizard.StepPreview, draft())
	require.NoError(t, err)
	require.NotNil(t, res.Totals)
	assert.InDelta(t, 945.0, res.Totals.FinalTotal, 1e-9)

	_, err = proposal.ValidateStep(wizard.Step(9), draft())
	assert.Error(t, err)
}

func TestSubmitWizard_Draft(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	uc := proposal.NewSubmitWizardUseCase(repo)

	created, err := uc.Execute(ctx, actor, proposal.SubmitInput{Action: wizard.ActionDraft, Proposal: draft()})
	require.NoError(t, err)
	require.Len(t, repo.proposals, 1)

	edited := draft()
	edited.ProjectName = "Lansman v2"
	edited.CreatedBy = "someone else"
	updated, err := uc.Execute(ctx, session.Development(), proposal.SubmitInput{
		Action:    wizard.ActionDraft,
		EditingID: &created.ID,
		Proposal:  edited,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Lansman v2", updated.ProjectName)
	assert.Equal(t, "Elif", updated.CreatedBy)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Len(t, repo.proposals, 1)
}

func TestSubmitWizard_Revision(t *testing.T) {
	repo := newMockProposalRepository()
	p, err := proposal.NewSubmitWizardUseCase(repo).Execute(context.Background(), actor, proposal.SubmitInput{Action: wizard.ActionRevision, Proposal: draft()})
	require.NoError(t, err)
	assert.Equal(t, "Lansman (Revize)", p.ProjectName)
}

func TestSubmitWizard_NewRejectsDuplicateWithSuggestion(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	uc := proposal.NewSubmitWizardUseCase(repo)

	_, err := uc.Execute(ctx, actor, proposal.SubmitInput{Action: wizard.ActionNew, Proposal: draft()})
	require.NoError(t, err)

	taken := draft()
	taken.ProjectName = "Lansman (2)"
	_, err = uc.Execute(ctx, actor, proposal.SubmitInput{Action: wizard.ActionNew, Proposal: taken})
	require.NoError(t, err)

	dup := draft()
	dup.CustomerName = "ACME"
	dup.ProjectName = "lansman"
	_, err = uc.Execute(ctx, actor, proposal.SubmitInput{Action: wizard.ActionNew, Proposal: dup})

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.ErrCodeConflict, ae.Code)
	assert.Equal(t, "lansman (3)", ae.Meta[proposal.SuggestedProjectNameKey])
	assert.Len(t, repo.proposals, 2)
}

func TestSubmitWizard_IncompleteTree(t *testing.T) {
	repo := newMockProposalRepository()
	in := draft()
	in.Topics[0].Categories[0].Services = nil

	_, err := proposal.NewSubmitWizardUseCase(repo).Execute(context.Background(), actor, proposal.SubmitInput{Action: wizard.ActionNew, Proposal: in})
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.proposals)

	_, err = proposal.NewSubmitWizardUseCase(repo).Execute(context.Background(), actor, proposal.SubmitInput{Action: "publish", Proposal: draft()})
	assert.True(t, apperror.IsValidation(err))
}

func TestExportProposal(t *testing.T) {
	ctx := context.Background()
	repo := newMockProposalRepository()
	created, err := proposal.NewCreateProposalUseCase(repo).Execute(ctx, actor, draft())
	require.NoError(t, err)

	cache := service.NewExportCache(ctx, time.Minute)
	uc := proposal.NewExportProposalUseCase(repo, cache, "Ajans")

	pdf, err := uc.Execute(ctx, created.ID, proposal.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.Equal(t, "teklif_Acme_Lansman.pdf", pdf.Name)
	assert.True(t, strings.HasPrefix(string(pdf.Data), "%PDF-"))

	xlsx, err := uc.Execute(ctx, created.ID, proposal.FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, "teklif_Acme_Lansman.xlsx", xlsx.Name)
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, proposal.NewDeleteProposalUseCase(repo, cache).Execute(ctx, created.ID))
	assert.Equal(t, 0, cache.Len())

	_, err = uc.Execute(ctx, created.ID, proposal.FormatPDF)
	assert.True(t, apperror.IsNotFound(err))
}
