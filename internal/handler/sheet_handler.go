package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asistencia/internal/csvexport"
	"asistencia/internal/domain"
	"asistencia/internal/middleware"
	"asistencia/internal/service"
)

const csvBaseName = "Formato_Asistencia_Domiciliaria"

// EntryRequest is the body of POST /api/v1/sheets/:id/entries.
type EntryRequest struct {
	Date                      string `json:"date"`
	Time                      string `json:"time"`
	IdentityDocument          string `json:"identity_document"`
	Insurer                   string `json:"insurer"`
	PatientName               string `json:"patient_name"`
	Procedure                 string `json:"procedure"`
	FamilySignatureName       string `json:"family_signature_name"`
	CollaboratorSignatureName string `json:"collaborator_signature_name"`
}

func (r *EntryRequest) toEntry() domain.Entry {
	return domain.Entry{
		Date:                      r.Date,
		Time:                      r.Time,
		IdentityDocument:          r.IdentityDocument,
		Insurer:                   r.Insurer,
		PatientName:               r.PatientName,
		Procedure:                 r.Procedure,
		FamilySignatureName:       r.FamilySignatureName,
		CollaboratorSignatureName: r.CollaboratorSignatureName,
	}
}

// SheetHandler handles attendance sheet endpoints.
type SheetHandler struct {
	sheetService service.SheetService
	now          func() time.Time
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService service.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService, now: time.Now}
}

// Create handles POST /api/v1/sheets
// Starts an empty sheet and returns the session token that guards it.
func (h *SheetHandler) Create(c *gin.Context) {
	session, err := h.sheetService.Create(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, session)
}

// Get handles GET /api/v1/sheets/:id
func (h *SheetHandler) Get(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	sheet, err := h.sheetService.Get(c.Request.Context(), sheetID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sheet)
}

// Delete handles DELETE /api/v1/sheets/:id
func (h *SheetHandler) Delete(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	if err := h.sheetService.Delete(c.Request.Context(), sheetID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "sheet deleted"})
}

// AddEntry handles POST /api/v1/sheets/:id/entries
func (h *SheetHandler) AddEntry(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	sheet, err := h.sheetService.AddEntry(c.Request.Context(), sheetID, req.toEntry())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sheet)
}

// ListEntries handles GET /api/v1/sheets/:id/entries
func (h *SheetHandler) ListEntries(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	entries, err := h.sheetService.ListEntries(c.Request.Context(), sheetID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}

// ClearEntries handles DELETE /api/v1/sheets/:id/entries
func (h *SheetHandler) ClearEntries(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	if err := h.sheetService.ClearEntries(c.Request.Context(), sheetID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "entries cleared"})
}

// Import handles POST /api/v1/sheets/:id/entries/import
// Accepts a multipart "file" in xlsx, csv, yaml or json. Rows missing required
// fields are reported back and the rest are appended.
func (h *SheetHandler) Import(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.sheetService.Import(c.Request.Context(), sheetID, service.ImportInput{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExportPDF handles GET /api/v1/sheets/:id/export/pdf
// Streams the rendered attendance sheet as an attachment.
func (h *SheetHandler) ExportPDF(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	out, err := h.sheetService.GeneratePDF(c.Request.Context(), sheetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+domain.DocumentFileName+`"`)
	c.Header("X-Page-Count", strconv.Itoa(out.Document.PageCount))
	for _, w := range out.Warnings {
		c.Writer.Header().Add("X-Render-Warning", w.Error())
	}
	if out.Archived != nil {
		c.Header("X-Document-ID", out.Archived.ID.String())
	}
	c.Data(http.StatusOK, "application/pdf", out.Document.Bytes)
}

// ExportCSV handles GET /api/v1/sheets/:id/export/csv
func (h *SheetHandler) ExportCSV(c *gin.Context) {
	sheetID, ok := sheetFromContext(c)
	if !ok {
		return
	}

	entries, err := h.sheetService.ListEntries(c.Request.Context(), sheetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(csvBaseName, h.now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("sheetHandler.ExportCSV: writing header for sheet %s: %v", sheetID, err)
		return
	}
	if err := w.WriteEntries(entries); err != nil {
		log.Printf("sheetHandler.ExportCSV: writing rows for sheet %s: %v", sheetID, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("sheetHandler.ExportCSV: flushing sheet %s: %v", sheetID, err)
	}
}

// sheetFromContext reads the sheet ID placed by SheetAuth. It writes the
// error response itself when the ID is missing.
func sheetFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetSheetID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing sheet context")
		return id, false
	}
	return id, true
}
