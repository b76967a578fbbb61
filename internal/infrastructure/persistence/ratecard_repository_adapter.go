package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage/docstore"
)

type RateCardRepositoryAdapter struct {
	docs docstore.Collection[entity.RateCard]
}

func NewRateCardRepositoryAdapter(docs docstore.Collection[entity.RateCard]) *RateCardRepositoryAdapter {
	return &RateCardRepositoryAdapter{docs: docs}
}

// uniqueCustomer выполняется под блокировкой коллекции, поэтому два одновременных
// импорта для одного клиента не пройдут оба.
func uniqueCustomer(doc entity.RateCard, others []entity.RateCard) error {
	key := entity.CustomerKey(doc.CustomerName)
	for _, o := range others {
		if entity.CustomerKey(o.CustomerName) == key {
			return entity.DuplicateCustomerError(doc.CustomerName)
		}
	}
	return nil
}

func (r *RateCardRepositoryAdapter) Create(ctx context.Context, rc *entity.RateCard) error {
	err := r.docs.Insert(ctx, *rc, uniqueCustomer)
	return mapStoreError(err, apperror.ErrRateCardNotFound, "fiyat listesi kaydedilemedi")
}

func (r *RateCardRepositoryAdapter) Update(ctx context.Context, id uuid.UUID, mutate func(rc *entity.RateCard) error) (*entity.RateCard, error) {
	updated, err := r.docs.Update(ctx, id.String(), mutate, uniqueCustomer)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrRateCardNotFound, "fiyat listesi güncellenemedi")
	}
	return &updated, nil
}

func (r *RateCardRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.docs.Delete(ctx, id.String())
	return mapStoreError(err, apperror.ErrRateCardNotFound, "fiyat listesi silinemedi")
}

func (r *RateCardRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.RateCard, error) {
	rc, err := r.docs.Get(ctx, id.String())
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrRateCardNotFound, "fiyat listesi okunamadı")
	}
	return &rc, nil
}

// FindByCustomerName ищет без учёта регистра; возвращает ErrRateCardNotFound, если нет.
func (r *RateCardRepositoryAdapter) FindByCustomerName(ctx context.Context, customerName string) (*entity.RateCard, error) {
	docs, err := r.docs.All(ctx)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrRateCardNotFound, "fiyat listeleri okunamadı")
	}
	key := entity.CustomerKey(customerName)
	for i := range docs {
		if entity.CustomerKey(docs[i].CustomerName) == key {
			return &docs[i], nil
		}
	}
	return nil, apperror.ErrRateCardNotFound
}

func (r *RateCardRepositoryAdapter) List(ctx context.Context) ([]*entity.RateCard, error) {
	docs, err := r.docs.All(ctx)
	if err != nil {
		return nil, mapStoreError(err, apperror.ErrRateCardNotFound, "fiyat listeleri okunamadı")
	}
	result := pointers(docs)
	newestFirst(result, func(rc *entity.RateCard) int64 { return rc.CreatedAt.UnixNano() })
	return result, nil
}
