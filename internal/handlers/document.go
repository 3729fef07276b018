package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type DocumentHandler struct {
	docService services.DocumentService
	log        *logger.Logger
}

func NewDocumentHandler(docService services.DocumentService, baseLog *logger.Logger) *DocumentHandler {
	return &DocumentHandler{docService: docService, log: baseLog.With("handler", "DocumentHandler")}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}
	doc, err := h.docService.Upload(c.Request.Context(), services.UploadDocumentInput{
		Title:       title,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, docs)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.docService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
