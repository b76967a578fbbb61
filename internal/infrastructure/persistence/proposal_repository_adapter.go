package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage/docstore"
)

type ProposalRepositoryAdapter struct {
	docs docstore.Collection[entity.Proposal]
}

func NewProposalRepositoryAdapter(docs docstore.Collection[entity.Proposal]) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{docs: docs}
}

func (r *ProposalRepositoryAdapter) Create(ctx context.Context, proposal *entity.Proposal) error {
	err := r.docs.Insert(ctx, *proposal, nil)
	return mapStoreError(err, apperror.ErrProposalNotFound, "teklif kaydedilemedi")
}

func (r *ProposalRepositoryAdapter) CreateUnique(ctx context.Context, proposal *entity.Proposal) error {
	err := r.docs.Insert(ctx, *proposal, func(doc entity.Proposal, others []entity.Proposal) error {
		for _, o := range others {
			if o.SameProject(doc.CustomerName, doc.ProjectName) {
				return apperror.New(apperror.ErrCodeConflict, "bu müşteri için aynı isimde bir proje zaten var")
			}
		}
		return nil
	})
	return mapStoreError(err, apperror.ErrProposalNotFound, "teklif kaydedilemedi")
}

func (r *ProposalRepositoryAdapter) Update(ctx context.Context, id uuid.UUID, mutate func(p *entity.Proposal) error) (*entity.Proposal, error) {
	updated, err := r.docs.Update(ctx, id.String(), mutate, nil)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrProposalNotFound, "teklif güncellenemedi")
	}
	return &updated, nil
}

func (r *ProposalRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.docs.Delete(ctx, id.String())
	return mapStoreError(err, apperror.ErrProposalNotFound, "teklif silinemedi")
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	p, err := r.docs.Get(ctx, id.String())
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrProposalNotFound, "teklif okunamadı")
	}
	return &p, nil
}

func (r *ProposalRepositoryAdapter) List(ctx context.Context, filter repository.ProposalFilter) ([]*entity.Proposal, error) {
	docs, err := r.docs.All(ctx)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrProposalNotFound, "teklifler okunamadı")
	}

	customer := strings.TrimSpace(filter.CustomerName)
	status := strings.TrimSpace(filter.Status)
	result := make([]*entity.Proposal, 0, len(docs))
	for _, p := range pointers(docs) {
		if customer != "" && !strings.EqualFold(p.CustomerName, customer) {
			continue
		}
		if status != "" && !strings.EqualFold(string(p.Status), status) {
			continue
		}
		result = append(result, p)
	}
	newestFirst(result, func(p *entity.Proposal) int64 { return p.CreatedAt.UnixNano() })
	return result, nil
}

func (r *ProposalRepositoryAdapter) FindByCustomerAndProject(ctx context.Context, customerName, projectName string) ([]*entity.Proposal, error) {
	docs, err := r.docs.All(ctx)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrProposalNotFound, "teklifler okunamadı")
	}
	var result []*entity.Proposal
	for _, p := range pointers(docs) {
		if p.SameProject(customerName, projectName) {
			result = append(result, p)
		}
	}
	return result, nil
}
