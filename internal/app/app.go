// Package app собирает зависимости сервиса: use case'ы, обработчики и роутер.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/config"
	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/http/router"
	"github.com/ignatzorin/agency-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/agency-backend/internal/interface/http/handler"
	"github.com/ignatzorin/agency-backend/internal/service"
	"github.com/ignatzorin/agency-backend/internal/storage"
	"github.com/ignatzorin/agency-backend/internal/usecase/attachment"
	"github.com/ignatzorin/agency-backend/internal/usecase/employee"
	"github.com/ignatzorin/agency-backend/internal/usecase/note"
	"github.com/ignatzorin/agency-backend/internal/usecase/proposal"
	"github.com/ignatzorin/agency-backend/internal/usecase/ratecard"
)

// New собирает HTTP-движок. ctx ограничивает жизнь фоновой очистки кэша выгрузок.
func New(ctx context.Context, cfg *config.Config, repos *persistence.Repositories, checks map[string]handler.HealthCheck) (*gin.Engine, error) {
	files, err := storage.NewAttachmentStorage(cfg.UploadsDir, cfg.MaxUploadSizeMB)
	if err != nil {
		return nil, err
	}
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	cache := service.NewExportCache(ctx, cfg.ExportCacheTTL)
	maxUpload := files.MaxUploadBytes()

	proposalHandler := handler.NewProposalHandler(
		proposal.NewCreateProposalUseCase(repos.Proposals),
		proposal.NewGetProposalUseCase(repos.Proposals),
		proposal.NewListProposalsUseCase(repos.Proposals),
		proposal.NewUpdateProposalUseCase(repos.Proposals),
		proposal.NewDeleteProposalUseCase(repos.Proposals, cache),
		proposal.NewCreateRevisionUseCase(repos.Proposals),
		proposal.NewGetTotalsUseCase(repos.Proposals),
		proposal.NewSubmitWizardUseCase(repos.Proposals),
		proposal.NewExportProposalUseCase(repos.Proposals, cache, cfg.CompanyName),
	)

	rateCardHandler := handler.NewRateCardHandler(
		ratecard.NewCreateRateCardUseCase(repos.RateCards),
		ratecard.NewImportRateCardUseCase(repos.RateCards),
		ratecard.NewGetRateCardUseCase(repos.RateCards),
		ratecard.NewListRateCardsUseCase(repos.RateCards),
		ratecard.NewUpdateRateCardUseCase(repos.RateCards),
		ratecard.NewDeleteRateCardUseCase(repos.RateCards, cache),
		ratecard.NewExportRateCardUseCase(repos.RateCards, cache),
		maxUpload,
	)

	noteFiles := attachment.NewService(entity.AttachmentKindNote, repos.Notes, files)
	noteHandler := handler.NewNoteHandler(
		handler.NewAttachmentHandler(noteFiles, maxUpload),
		note.NewCreateNoteUseCase(repos.Notes),
		note.NewGetNoteUseCase(repos.Notes),
		note.NewListNotesUseCase(repos.Notes),
		note.NewUpdateNoteUseCase(repos.Notes),
		note.NewDeleteNoteUseCase(repos.Notes, noteFiles),
	)

	employeeFiles := attachment.NewService(entity.AttachmentKindEmployee, repos.Employees, files)
	employeeHandler := handler.NewEmployeeHandler(
		handler.NewAttachmentHandler(employeeFiles, maxUpload),
		employee.NewCreateEmployeeUseCase(repos.Employees),
		employee.NewGetEmployeeUseCase(repos.Employees),
		employee.NewListEmployeesUseCase(repos.Employees),
		employee.NewUpdateEmployeeUseCase(repos.Employees),
		employee.NewDeleteEmployeeUseCase(repos.Employees, employeeFiles, cache),
		employee.NewEquipmentUseCase(repos.Employees),
		employee.NewExportEmployeesUseCase(repos.Employees, cache),
	)

	handlers := router.Handlers{
		Health:    handler.NewHealthHandler(checks),
		Session:   handler.NewSessionHandler(),
		Proposals: proposalHandler,
		RateCards: rateCardHandler,
		Notes:     noteHandler,
		Employees: employeeHandler,
	}
	if cfg.IsDevelopment() {
		handlers.Seed = handler.NewSeedHandler(service.NewSeedService(repos.Proposals, repos.RateCards, repos.Notes, repos.Employees, tokens))
	}

	return router.SetupRouter(cfg, handlers, tokens), nil
}
