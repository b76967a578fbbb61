package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
)

type ProposalFilter struct {
	CustomerName string
	Status       string
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	// CreateUnique создаёт предложение, только если у клиента нет проекта с тем же именем.
	CreateUnique(ctx context.Context, proposal *entity.Proposal) error
	Update(ctx context.Context, id uuid.UUID, mutate func(p *entity.Proposal) error) (*entity.Proposal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	List(ctx context.Context, filter ProposalFilter) ([]*entity.Proposal, error)
	FindByCustomerAndProject(ctx context.Context, customerName, projectName string) ([]*entity.Proposal, error)
}

type RateCardRepository interface {
	// Create проверяет уникальность имени клиента (без учёта регистра) в момент записи.
	Create(ctx context.Context, rc *entity.RateCard) error
	Update(ctx context.Context, id uuid.UUID, mutate func(rc *entity.RateCard) error) (*entity.RateCard, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RateCard, error)
	FindByCustomerName(ctx context.Context, customerName string) (*entity.RateCard, error)
	List(ctx context.Context) ([]*entity.RateCard, error)
}

// AttachmentOwnerRepository - запись, к которой прикрепляются файлы (заметка, сотрудник).
type AttachmentOwnerRepository interface {
	Attachments(ctx context.Context, ownerID uuid.UUID) (entity.Attachments, error)
	AddAttachment(ctx context.Context, ownerID uuid.UUID, file entity.Attachment) error
	RemoveAttachment(ctx context.Context, ownerID, fileID uuid.UUID) (entity.Attachment, error)
}

type NoteRepository interface {
	AttachmentOwnerRepository
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, id uuid.UUID, mutate func(n *entity.Note) error) (*entity.Note, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	List(ctx context.Context) ([]*entity.Note, error)
}

type EmployeeRepository interface {
	AttachmentOwnerRepository
	Create(ctx context.Context, employee *entity.Employee) error
	Update(ctx context.Context, id uuid.UUID, mutate func(e *entity.Employee) error) (*entity.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
}
