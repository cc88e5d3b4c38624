package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), BodyLimit(limit))
	router.POST("/ratings", func(c *gin.Context) {
		var req struct {
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, req.Comment)
	})
	router.GET("/ratings", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	small := `{"comment":"great"}`
	big := `{"comment":"` + strings.Repeat("x", 200) + `"}`

	tests := []struct {
		name     string
		limit    int64
		method   string
		body     string
		chunked  bool
		wantCode int
	}{
		{"within limit", 100, http.MethodPost, small, false, http.StatusOK},
		{"declared length over limit", 100, http.MethodPost, big, false, http.StatusRequestEntityTooLarge},
		{"chunked body over limit", 100, http.MethodPost, big, true, http.StatusRequestEntityTooLarge},
		{"bodiless GET", 10, http.MethodGet, "", false, http.StatusOK},
		{"non-positive limit disables the cap", 0, http.MethodPost, big, false, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ratings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.chunked {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			bodyLimitRouter(tt.limit).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusRequestEntityTooLarge {
				assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
				assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			}
		})
	}
}
