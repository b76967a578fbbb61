package persistence

import (
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/storage/docstore"
)

// Repositories собирает репозитории всех сущностей поверх одного драйвера хранилища.
type Repositories struct {
	Proposals *ProposalRepositoryAdapter
	RateCards *RateCardRepositoryAdapter
	Notes     *NoteRepositoryAdapter
	Employees *EmployeeRepositoryAdapter
}

// NewFileRepositories - JSON-файлы в dataDir, по файлу на сущность.
func NewFileRepositories(dataDir string) (*Repositories, error) {
	proposals, err := docstore.NewFileCollection[entity.Proposal](dataDir, CollectionProposals)
	if err != nil {
		return nil, err
	}
	rateCards, err := docstore.NewFileCollection[entity.RateCard](dataDir, CollectionRateCards)
	if err != nil {
		return nil, err
	}
	notes, err := docstore.NewFileCollection[entity.Note](dataDir, CollectionNotes)
	if err != nil {
		return nil, err
	}
	employees, err := docstore.NewFileCollection[entity.Employee](dataDir, CollectionEmployees)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Proposals: NewProposalRepositoryAdapter(proposals),
		RateCards: NewRateCardRepositoryAdapter(rateCards),
		Notes:     NewNoteRepositoryAdapter(notes),
		Employees: NewEmployeeRepositoryAdapter(employees),
	}, nil
}

// NewPostgresRepositories - те же документы в таблице documents.
func NewPostgresRepositories(conn *sqlx.DB) *Repositories {
	return &Repositories{
		Proposals: NewProposalRepositoryAdapter(docstore.NewPostgresCollection[entity.Proposal](conn, CollectionProposals)),
		RateCards: NewRateCardRepositoryAdapter(docstore.NewPostgresCollection[entity.RateCard](conn, CollectionRateCards)),
		Notes:     NewNoteRepositoryAdapter(docstore.NewPostgresCollection[entity.Note](conn, CollectionNotes)),
		Employees: NewEmployeeRepositoryAdapter(docstore.NewPostgresCollection[entity.Employee](conn, CollectionEmployees)),
	}
}
