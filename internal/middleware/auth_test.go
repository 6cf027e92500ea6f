package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"asistencia/internal/domain"
	"asistencia/internal/middleware"
	"asistencia/internal/service"
	"asistencia/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sheetRouter(sessions service.SessionService) *gin.Engine {
	r := gin.New()
	r.GET("/sheets/:id", middleware.SheetAuth(sessions), func(c *gin.Context) {
		id, err := middleware.GetSheetID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestSheetAuth_ValidToken(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sheetID := uuid.New()
	sessions.On("Validate", "good").Return(&service.SessionClaims{SheetID: sheetID}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sheets/"+sheetID.String(), http.NoBody)
	req.Header.Set("Authorization", "Bearer good")
	sheetRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sheetID.String(), w.Body.String())
}

func TestSheetAuth_MissingHeader(t *testing.T) {
	sessions := new(mocks.MockSessionService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sheets/"+uuid.NewString(), http.NoBody)
	sheetRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	sessions.AssertNotCalled(t, "Validate", "")
}

func TestSheetAuth_MalformedBearer(t *testing.T) {
	sessions := new(mocks.MockSessionService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sheets/"+uuid.NewString(), http.NoBody)
	req.Header.Set("Authorization", "Token abc")
	sheetRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSheetAuth_ExpiredToken(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sessions.On("Validate", "old").Return(nil, domain.ErrTokenExpired)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sheets/"+uuid.NewString(), http.NoBody)
	req.Header.Set("Authorization", "Bearer old")
	sheetRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSheetAuth_TokenForAnotherSheet(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sessions.On("Validate", "good").Return(&service.SessionClaims{SheetID: uuid.New()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sheets/"+uuid.NewString(), http.NoBody)
	req.Header.Set("Authorization", "Bearer good")
	sheetRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSheetAuth_InvalidSheetID(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sessions.On("Validate", "good").Return(&service.SessionClaims{SheetID: uuid.New()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sheets/abc", http.NoBody)
	req.Header.Set("Authorization", "Bearer good")
	sheetRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)

	tests := []struct {
		name   string
		hash   string
		key    string
		status int
	}{
		{"correct key", string(hash), "s3cret", http.StatusOK},
		{"wrong key", string(hash), "guess", http.StatusUnauthorized},
		{"missing key", string(hash), "", http.StatusUnauthorized},
		{"no hash configured", "", "s3cret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", middleware.AdminKey(tt.hash), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/admin", http.NoBody)
			if tt.key != "" {
				req.Header.Set(middleware.AdminKeyHeader, tt.key)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
