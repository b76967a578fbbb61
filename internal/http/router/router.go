package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/config"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/http/middleware"
	"github.com/ignatzorin/agency-backend/internal/interface/http/handler"
)

// Handlers - все обработчики API. Seed может быть nil вне development.
type Handlers struct {
	Health    *handler.HealthHandler
	Session   *handler.SessionHandler
	Seed      *handler.SeedHandler
	Proposals *handler.ProposalHandler
	RateCards *handler.RateCardHandler
	Notes     *handler.NoteHandler
	Employees *handler.EmployeeHandler
}

func SetupRouter(cfg *config.Config, h Handlers, sessions middleware.SessionParser) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	// multipart сверх этого предела уходит во временные файлы
	r.MaxMultipartMemory = 8 << 20

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)

	if h.Seed != nil && cfg.IsDevelopment() {
		api.POST("/seed", h.Seed.Seed)
	}

	protected := api.Group("/")
	protected.Use(middleware.SessionMiddleware(sessions, cfg.AuthRequired))
	{
		protected.GET("/session", h.Session.Me)
		protected.GET("/navigation", h.Session.Navigation)
	}

	id := middleware.UUIDValidator("id")
	fileID := middleware.UUIDValidator("id", "fileId")
	equipmentID := middleware.UUIDValidator("id", "equipmentId")

	proposals := protected.Group("/proposals")
	proposals.Use(middleware.RequirePage(valueobject.PageProposals))
	{
		proposals.GET("", h.Proposals.ListProposals)
		proposals.POST("", h.Proposals.CreateProposal)
		proposals.POST("/calculate", h.Proposals.Calculate)
		proposals.POST("/wizard/validate", h.Proposals.ValidateWizardStep)
		proposals.POST("/wizard/submit", h.Proposals.SubmitWizard)
		// Мастер подтягивает прайс клиента и без доступа к разделу прайсов.
		proposals.GET("/ratecards", h.RateCards.ListRateCards)
		proposals.GET("/ratecards/:id/categories", id, h.RateCards.GetCategories)
		proposals.GET("/:id", id, h.Proposals.GetProposal)
		proposals.PUT("/:id", id, h.Proposals.UpdateProposal)
		proposals.DELETE("/:id", id, h.Proposals.DeleteProposal)
		proposals.GET("/:id/totals", id, h.Proposals.GetTotals)
		proposals.POST("/:id/revision", id, h.Proposals.CreateRevision)
		proposals.GET("/:id/export/pdf", id, h.Proposals.ExportPDF)
		proposals.GET("/:id/export/excel", id, h.Proposals.ExportExcel)
	}

	rateCards := protected.Group("/ratecards")
	rateCards.Use(middleware.RequirePage(valueobject.PageRateCards))
	{
		rateCards.GET("", h.RateCards.ListRateCards)
		rateCards.POST("", h.RateCards.CreateRateCard)
		rateCards.POST("/import", h.RateCards.ImportRateCard)
		rateCards.GET("/import/template", h.RateCards.ImportTemplate)
		rateCards.GET("/:id", id, h.RateCards.GetRateCard)
		rateCards.PUT("/:id", id, h.RateCards.UpdateRateCard)
		rateCards.DELETE("/:id", id, h.RateCards.DeleteRateCard)
		rateCards.GET("/:id/categories", id, h.RateCards.GetCategories)
		rateCards.GET("/:id/export/excel", id, h.RateCards.ExportExcel)
	}

	notes := protected.Group("/notes")
	notes.Use(middleware.RequirePage(valueobject.PageNotes))
	{
		notes.GET("", h.Notes.ListNotes)
		notes.POST("", h.Notes.CreateNote)
		notes.GET("/:id", id, h.Notes.GetNote)
		notes.PUT("/:id", id, h.Notes.UpdateNote)
		notes.DELETE("/:id", id, h.Notes.DeleteNote)
		notes.GET("/:id/files", id, h.Notes.ListFiles)
		notes.POST("/:id/files", id, h.Notes.UploadFiles)
		notes.GET("/:id/files/:fileId", fileID, h.Notes.DownloadFile)
		notes.DELETE("/:id/files/:fileId", fileID, h.Notes.DeleteFile)
	}

	employees := protected.Group("/employees")
	employees.Use(middleware.RequirePage(valueobject.PageEmployees))
	{
		employees.GET("", h.Employees.ListEmployees)
		employees.POST("", h.Employees.CreateEmployee)
		employees.GET("/export/excel", h.Employees.ExportExcel)
		employees.GET("/:id", id, h.Employees.GetEmployee)
		employees.PUT("/:id", id, h.Employees.UpdateEmployee)
		employees.DELETE("/:id", id, h.Employees.DeleteEmployee)
		employees.GET("/:id/files", id, h.Employees.ListFiles)
		employees.POST("/:id/files", id, h.Employees.UploadFiles)
		employees.GET("/:id/files/:fileId", fileID, h.Employees.DownloadFile)
		employees.DELETE("/:id/files/:fileId", fileID, h.Employees.DeleteFile)
		employees.POST("/:id/equipment", id, h.Employees.AssignEquipment)
		employees.PUT("/:id/equipment/:equipmentId/return", equipmentID, h.Employees.ReturnEquipment)
		employees.DELETE("/:id/equipment/:equipmentId", equipmentID, h.Employees.RemoveEquipment)
	}

	return r
}
