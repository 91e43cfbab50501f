package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/handlers"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/seed"
	"github.com/SscSPs/invoice_workflow_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginRouter(production bool) (*gin.Engine, *config.Config) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:         "login-test-secret",
		JWTIssuer:         "iwa-test",
		JWTExpiryDuration: time.Hour,
		IsProduction:      production,
	}
	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{Directory: seed.Directory{}}, nil)
	return r, cfg
}

func login(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_IssuesTokenForDemoUser(t *testing.T) {
	r, cfg := newLoginRouter(false)

	w := login(r, `{"email":"dept_leader@company.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, seed.LeaderLiu, resp.User)

	claims, err := utils.ParseAndValidateJWT(resp.Token, cfg.JWTSecret, cfg.JWTIssuer)
	require.NoError(t, err)
	assert.Equal(t, seed.LeaderLiu, claims.Identity())
}

func TestLogin_Refusals(t *testing.T) {
	r, _ := newLoginRouter(false)

	assert.Equal(t, http.StatusBadRequest, login(r, `{"email":"not-an-email"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, login(r, `{"email":"ghost@company.com"}`).Code)
}

func TestLogin_RateLimited(t *testing.T) {
	r, _ := newLoginRouter(false)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, login(r, `{"email":"finance@company.com"}`).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, login(r, `{"email":"finance@company.com"}`).Code)
}

func TestLogin_NotServedInProduction(t *testing.T) {
	r, _ := newLoginRouter(true)
	assert.Equal(t, http.StatusNotFound, login(r, `{"email":"finance@company.com"}`).Code)
}
