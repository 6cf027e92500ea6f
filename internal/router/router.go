package router

import (
	"github.com/gin-gonic/gin"

	"asistencia/internal/handler"
	"asistencia/internal/middleware"
	"asistencia/internal/service"
)

// Options carries the settings that shape the route table.
type Options struct {
	CORSOrigins []string
	// AdminKeyHash guards the archive routes. Leave empty to disable them.
	AdminKeyHash string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	sessions service.SessionService,
	sheetH *handler.SheetHandler,
	adminH *handler.AdminHandler,
	healthH *handler.HealthHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.CORSOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Opening a sheet is public; everything under it needs the sheet's token
	v1.POST("/sheets", sheetH.Create)

	sheet := v1.Group("/sheets/:id")
	sheet.Use(middleware.SheetAuth(sessions))
	sheet.GET("", sheetH.Get)
	sheet.DELETE("", sheetH.Delete)
	sheet.POST("/entries", sheetH.AddEntry)
	sheet.GET("/entries", sheetH.ListEntries)
	sheet.DELETE("/entries", sheetH.ClearEntries)
	sheet.POST("/entries/import", sheetH.Import)
	sheet.GET("/export/pdf", sheetH.ExportPDF)
	sheet.GET("/export/csv", sheetH.ExportCSV)

	// Archive administration
	admin := v1.Group("/admin")
	if opts.AdminKeyHash != "" {
		admin.Use(middleware.AdminKey(opts.AdminKeyHash))
	}
	admin.GET("/documents", adminH.ListDocuments)
	admin.GET("/documents/:id/download", adminH.DownloadDocument)

	return r
}
