package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asistencia/internal/domain"
	"asistencia/internal/service"
)

// AdminHandler serves the issued-document archive.
type AdminHandler struct {
	archiveService service.ArchiveService
}

// NewAdminHandler creates a new AdminHandler. A nil archive service makes
// every endpoint report the archive as disabled.
func NewAdminHandler(archiveService service.ArchiveService) *AdminHandler {
	return &AdminHandler{archiveService: archiveService}
}

// ListDocuments handles GET /api/v1/admin/documents
func (h *AdminHandler) ListDocuments(c *gin.Context) {
	if h.archiveService == nil {
		HandleError(c, domain.ErrArchiveDisabled)
		return
	}

	offset, limit := parsePagination(c)
	docs, total, err := h.archiveService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DownloadDocument handles GET /api/v1/admin/documents/:id/download
func (h *AdminHandler) DownloadDocument(c *gin.Context) {
	if h.archiveService == nil {
		HandleError(c, domain.ErrArchiveDisabled)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	link, err := h.archiveService.DownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, link)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
