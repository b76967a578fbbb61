package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/wizard"
	"github.com/ignatzorin/agency-backend/internal/interface/http/dto"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/usecase/proposal"
)

type ProposalHandler struct {
	createProposalUC *proposal.CreateProposalUseCase
	getProposalUC    *proposal.GetProposalUseCase
	listProposalsUC  *proposal.ListProposalsUseCase
	updateProposalUC *proposal.UpdateProposalUseCase
	deleteProposalUC *proposal.DeleteProposalUseCase
	createRevisionUC *proposal.CreateRevisionUseCase
	getTotalsUC      *proposal.GetTotalsUseCase
	submitWizardUC   *proposal.SubmitWizardUseCase
	exportUC         *proposal.ExportProposalUseCase
}

func NewProposalHandler(
	createProposalUC *proposal.CreateProposalUseCase,
	getProposalUC *proposal.GetProposalUseCase,
	listProposalsUC *proposal.ListProposalsUseCase,
	updateProposalUC *proposal.UpdateProposalUseCase,
	deleteProposalUC *proposal.DeleteProposalUseCase,
	createRevisionUC *proposal.CreateRevisionUseCase,
	getTotalsUC *proposal.GetTotalsUseCase,
	submitWizardUC *proposal.SubmitWizardUseCase,
	exportUC *proposal.ExportProposalUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		createProposalUC: createProposalUC,
		getProposalUC:    getProposalUC,
		listProposalsUC:  listProposalsUC,
		updateProposalUC: updateProposalUC,
		deleteProposalUC: deleteProposalUC,
		createRevisionUC: createRevisionUC,
		getTotalsUC:      getTotalsUC,
		submitWizardUC:   submitWizardUC,
		exportUC:         exportUC,
	}
}

func (h *ProposalHandler) ListProposals(c *gin.Context) {
	list, err := h.listProposalsUC.Execute(c.Request.Context(), repository.ProposalFilter{
		CustomerName: c.Query("customerName"),
		Status:       c.Query("status"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, list, len(list))
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	actor, ok := currentSession(c)
	if !ok {
		return
	}
	var req dto.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := req.ToEntity()
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.createProposalUC.Execute(c.Request.Context(), actor, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.getProposalUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	patch, err := dto.ParseProposalPatch(body)
	if err != nil {
		response.BadRequest(c, "geçersiz istek gövdesi")
		return
	}

	updated, err := h.updateProposalUC.Execute(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteProposalUC.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ProposalHandler) CreateRevision(c *gin.Context) {
	actor, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	revision, err := h.createRevisionUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, revision)
}

func (h *ProposalHandler) GetTotals(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	totals, err := h.getTotalsUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// Calculate считает итоги черновика без сохранения.
func (h *ProposalHandler) Calculate(c *gin.Context) {
	var req dto.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := req.ToEntity()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, proposal.Calculate(p))
}

func (h *ProposalHandler) ValidateWizardStep(c *gin.Context) {
	var req dto.WizardValidateRequest
	if !bindJSON(c, &req) {
		return
	}
	step, ok := wizard.ParseStep(req.Step)
	if !ok {
		response.Error(c, apperror.Validation("bilinmeyen adım", apperror.FieldError{Field: "step", Message: "customer, services veya preview olmalı"}))
		return
	}
	p, err := req.Proposal.ToEntity()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := proposal.ValidateStep(step, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ProposalHandler) SubmitWizard(c *gin.Context) {
	actor, ok := currentSession(c)
	if !ok {
		return
	}
	var req dto.WizardSubmitRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		if apperror.IsValidation(err) {
			response.Error(c, err)
		} else {
			response.BadRequest(c, "geçersiz düzenleme kimliği")
		}
		return
	}

	saved, err := h.submitWizardUC.Execute(c.Request.Context(), actor, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

func (h *ProposalHandler) ExportPDF(c *gin.Context) {
	h.export(c, proposal.FormatPDF)
}

func (h *ProposalHandler) ExportExcel(c *gin.Context) {
	h.export(c, proposal.FormatExcel)
}

func (h *ProposalHandler) export(c *gin.Context, format string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := h.exportUC.Execute(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Name, file.ContentType, file.Data)
}
