package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/config"
	"asistencia/internal/handler"
	"asistencia/internal/pdfexport"
	"asistencia/internal/repository/memory"
	"asistencia/internal/router"
	"asistencia/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	sessions := service.NewSessionService(config.SessionConfig{
		Secret: "router-test",
		Expiry: time.Hour,
		Issuer: "asistencia-test",
	})
	renderer := pdfexport.NewGenerator(pdfexport.Options{LogoPath: "testdata/missing-logo.png"})
	sheets := service.NewSheetService(memory.NewSheetStore(), sessions, renderer, nil, 1<<20)

	return router.Setup(
		sessions,
		handler.NewSheetHandler(sheets),
		handler.NewAdminHandler(nil),
		handler.NewHealthHandler(nil),
		router.Options{CORSOrigins: []string{"http://localhost:3000"}},
	)
}

type sessionData struct {
	Sheet struct {
		ID string `json:"id"`
	} `json:"sheet"`
	Token string `json:"token"`
}

func openSheet(t *testing.T, r *gin.Engine) sessionData {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sheets", http.NoBody)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data sessionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func do(r *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, http.NoBody)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSheetLifecycle(t *testing.T) {
	r := newEngine()
	s := openSheet(t, r)
	base := "/api/v1/sheets/" + s.Sheet.ID

	for i := 0; i < 14; i++ {
		body, _ := json.Marshal(map[string]string{
			"date":              "01/01/2025",
			"time":              "08:00",
			"identity_document": strconv.Itoa(100 + i),
			"patient_name":      "Paciente " + strconv.Itoa(i),
			"procedure":         "Curación",
		})
		w := do(r, http.MethodPost, base+"/entries", s.Token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(r, http.MethodGet, base+"/entries", s.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 14)
	assert.Equal(t, "Paciente 0", list.Data[0]["patient_name"])
	assert.Equal(t, "Paciente 13", list.Data[13]["patient_name"])

	w = do(r, http.MethodGet, base+"/export/pdf", s.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-Page-Count"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Len(t, w.Header().Values("X-Render-Warning"), 1)

	w = do(r, http.MethodDelete, base+"/entries", s.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, base+"/export/pdf", s.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Page-Count"))

	w = do(r, http.MethodDelete, base, s.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, base+"/entries", s.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSheetRoutes_RequireMatchingToken(t *testing.T) {
	r := newEngine()
	a := openSheet(t, r)
	b := openSheet(t, r)

	w := do(r, http.MethodGet, "/api/v1/sheets/"+a.Sheet.ID+"/entries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/v1/sheets/"+a.Sheet.ID+"/entries", b.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutes_ArchiveDisabled(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodGet, "/api/v1/admin/documents", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthRoutes(t *testing.T) {
	r := newEngine()

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", "", nil).Code)
}
