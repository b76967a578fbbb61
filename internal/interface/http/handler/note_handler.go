package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/interface/http/dto"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/usecase/note"
)

type NoteHandler struct {
	*AttachmentHandler
	createNoteUC *note.CreateNoteUseCase
	getNoteUC    *note.GetNoteUseCase
	listNotesUC  *note.ListNotesUseCase
	updateNoteUC *note.UpdateNoteUseCase
	deleteNoteUC *note.DeleteNoteUseCase
}

func NewNoteHandler(
	files *AttachmentHandler,
	createNoteUC *note.CreateNoteUseCase,
	getNoteUC *note.GetNoteUseCase,
	listNotesUC *note.ListNotesUseCase,
	updateNoteUC *note.UpdateNoteUseCase,
	deleteNoteUC *note.DeleteNoteUseCase,
) *NoteHandler {
	return &NoteHandler{
		AttachmentHandler: files,
		createNoteUC:      createNoteUC,
		getNoteUC:         getNoteUC,
		listNotesUC:       listNotesUC,
		updateNoteUC:      updateNoteUC,
		deleteNoteUC:      deleteNoteUC,
	}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	list, err := h.listNotesUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, list, len(list))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor, ok := currentSession(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.createNoteUC.Execute(c.Request.Context(), actor, req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := h.getNoteUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, n)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.updateNoteUC.Execute(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteNoteUC.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
