package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/usecase/attachment"
)

// AttachmentHandler обслуживает /:id/files для одного типа записей.
type AttachmentHandler struct {
	attachments    *attachment.Service
	maxUploadBytes int64
}

func NewAttachmentHandler(attachments *attachment.Service, maxUploadBytes int64) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, maxUploadBytes: maxUploadBytes}
}

func (h *AttachmentHandler) ListFiles(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	files, err := h.attachments.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, files, len(files))
}

// UploadFiles принимает одно или несколько multipart-полей file.
// Файлы сохраняются по одному: при ошибке уже загруженные остаются.
func (h *AttachmentHandler) UploadFiles(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["file"]) == 0 {
		response.Error(c, fileFieldError("file alanı zorunlu"))
		return
	}

	uploaded := make([]entity.Attachment, 0, len(form.File["file"]))
	for _, fh := range form.File["file"] {
		file, err := h.upload(c, ownerID, fh)
		if err != nil {
			response.Error(c, err)
			return
		}
		uploaded = append(uploaded, *file)
	}
	response.Created(c, uploaded)
}

func (h *AttachmentHandler) upload(c *gin.Context, ownerID uuid.UUID, fh *multipart.FileHeader) (*entity.Attachment, error) {
	if fh.Size > h.maxUploadBytes {
		return nil, fileFieldError(fh.Filename + ": dosya çok büyük")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return h.attachments.Upload(c.Request.Context(), ownerID, fh.Filename, src)
}

// DownloadFile отдаёт файл inline; ?thumbnail=1 отдаёт превью изображения.
func (h *AttachmentHandler) DownloadFile(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "fileId")
	if !ok {
		return
	}
	thumbnail, _ := strconv.ParseBool(c.DefaultQuery("thumbnail", "false"))

	meta, f, err := h.attachments.Open(c.Request.Context(), ownerID, fileID, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), meta.ContentType, f, map[string]string{
		"Content-Disposition": "inline; filename=" + strconv.Quote(meta.Name),
	})
}

func (h *AttachmentHandler) DeleteFile(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "fileId")
	if !ok {
		return
	}
	if err := h.attachments.Delete(c.Request.Context(), ownerID, fileID); err != nil {
		response.Error(c, err)
		return
	}
	logger.WithRequest(c).WithField("kind", h.attachments.Kind()).Info("attachment deleted")
	response.NoContent(c)
}
