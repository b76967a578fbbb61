package handler

import (
	"bytes"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/interface/http/dto"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/storage"
	"github.com/ignatzorin/agency-backend/internal/usecase/ratecard"
)

// spreadsheetSniffLen - xlsx опознаётся по именам первых записей zip,
// у файлов из Excel первой идёт [Content_Types].xml, поэтому читаем с запасом.
const spreadsheetSniffLen = 8 << 10

type RateCardHandler struct {
	createRateCardUC *ratecard.CreateRateCardUseCase
	importRateCardUC *ratecard.ImportRateCardUseCase
	getRateCardUC    *ratecard.GetRateCardUseCase
	listRateCardsUC  *ratecard.ListRateCardsUseCase
	updateRateCardUC *ratecard.UpdateRateCardUseCase
	deleteRateCardUC *ratecard.DeleteRateCardUseCase
	exportRateCardUC *ratecard.ExportRateCardUseCase
	maxUploadBytes   int64
}

func NewRateCardHandler(
	createRateCardUC *ratecard.CreateRateCardUseCase,
	importRateCardUC *ratecard.ImportRateCardUseCase,
	getRateCardUC *ratecard.GetRateCardUseCase,
	listRateCardsUC *ratecard.ListRateCardsUseCase,
	updateRateCardUC *ratecard.UpdateRateCardUseCase,
	deleteRateCardUC *ratecard.DeleteRateCardUseCase,
	exportRateCardUC *ratecard.ExportRateCardUseCase,
	maxUploadBytes int64,
) *RateCardHandler {
	return &RateCardHandler{
		createRateCardUC: createRateCardUC,
		importRateCardUC: importRateCardUC,
		getRateCardUC:    getRateCardUC,
		listRateCardsUC:  listRateCardsUC,
		updateRateCardUC: updateRateCardUC,
		deleteRateCardUC: deleteRateCardUC,
		exportRateCardUC: exportRateCardUC,
		maxUploadBytes:   maxUploadBytes,
	}
}

func (h *RateCardHandler) ListRateCards(c *gin.Context) {
	list, err := h.listRateCardsUC.Execute(c.Request.Context(), c.Query("customerName"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, list, len(list))
}

func (h *RateCardHandler) CreateRateCard(c *gin.Context) {
	var req dto.RateCardRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.createRateCardUC.Execute(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *RateCardHandler) GetRateCard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rc, err := h.getRateCardUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rc)
}

// GetCategories отдаёт услуги прайса в форме категорий предложения для мастера.
func (h *RateCardHandler) GetCategories(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	categories, err := h.getRateCardUC.ProposalCategories(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

func (h *RateCardHandler) UpdateRateCard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	patch, err := dto.ParseRateCardPatch(body)
	if err != nil {
		response.BadRequest(c, "geçersiz istek gövdesi")
		return
	}
	updated, err := h.updateRateCardUC.Execute(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *RateCardHandler) DeleteRateCard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteRateCardUC.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ImportRateCard принимает multipart-поле file с заполненным шаблоном.
func (h *RateCardHandler) ImportRateCard(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, fileFieldError("file alanı zorunlu"))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Error(c, fileFieldError("dosya çok büyük"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	head := make([]byte, spreadsheetSniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		response.Error(c, err)
		return
	}
	head = head[:n]
	if !storage.IsSpreadsheet(head) {
		response.Error(c, fileFieldError("yalnızca .xlsx dosyaları yüklenebilir"))
		return
	}

	created, err := h.importRateCardUC.Execute(c.Request.Context(), io.MultiReader(bytes.NewReader(head), src))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *RateCardHandler) ImportTemplate(c *gin.Context) {
	file, err := ratecard.Template()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Name, file.ContentType, file.Data)
}

func (h *RateCardHandler) ExportExcel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := h.exportRateCardUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Name, file.ContentType, file.Data)
}

func fileFieldError(msg string) error {
	return apperror.Validation(msg, apperror.FieldError{Field: "file", Message: msg})
}
