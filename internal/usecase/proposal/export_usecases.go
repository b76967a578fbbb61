package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/export"
	"github.com/ignatzorin/agency-backend/internal/service"
)

const (
	FormatPDF   = "pdf"
	FormatExcel = "xlsx"
)

const exportKind = "proposal"

// ExportedFile - готовый файл для отдачи клиенту.
type ExportedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	cache        *service.ExportCache
	companyName  string
}

func NewExportProposalUseCase(proposalRepo repository.ProposalRepository, cache *service.ExportCache, companyName string) *ExportProposalUseCase {
	return &ExportProposalUseCase{proposalRepo: proposalRepo, cache: cache, companyName: companyName}
}

func (uc *ExportProposalUseCase) Execute(ctx context.Context, id uuid.UUID, format string) (*ExportedFile, error) {
	p, err := uc.proposalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := service.ExportCacheKey(exportKind, p.ID, p.UpdatedAt, format)
	switch format {
	case FormatPDF:
		data, err := uc.cache.GetOrRender(key, func() ([]byte, error) {
			return export.ProposalPDF(p, export.PDFOptions{CompanyName: uc.companyName})
		})
		if err != nil {
			return nil, err
		}
		return &ExportedFile{
			Name:        export.FileName(".pdf", "teklif", p.CustomerName, p.ProjectName),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		data, err := uc.cache.GetOrRender(key, func() ([]byte, error) {
			return export.ProposalExcel(p)
		})
		if err != nil {
			return nil, err
		}
		return &ExportedFile{
			Name:        export.FileName(".xlsx", "teklif", p.CustomerName, p.ProjectName),
			ContentType: export.ContentTypeXLSX,
			Data:        data,
		}, nil
	}
}
