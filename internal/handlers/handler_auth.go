package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const loginRate = "5-M"

// authHandler issues tokens for the users of an identity directory.
type authHandler struct {
	directory   portssvc.IdentityDirectory
	jwtSecret   string
	jwtIssuer   string
	jwtDuration time.Duration
}

func newAuthHandler(directory portssvc.IdentityDirectory, cfg *config.Config) *authHandler {
	return &authHandler{
		directory:   directory,
		jwtSecret:   cfg.JWTSecret,
		jwtIssuer:   cfg.JWTIssuer,
		jwtDuration: cfg.JWTExpiryDuration,
	}
}

// registerAuthRoutes sets up the public login route, limited per IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, directory portssvc.IdentityDirectory) {
	h := newAuthHandler(directory, cfg)

	rate, _ := limiter.NewRateFromFormatted(loginRate)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	auth.POST("/login", limitergin.NewMiddleware(ipLimiter), h.login)
}

// login godoc
// @Summary Demo login
// @Description Returns a JWT for a demo user. Not served in production.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Demo user email"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unknown user"
// @Failure 429 {object} map[string]string "Too many attempts"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	who, ok := h.directory.LookupByEmail(c.Request.Context(), req.Email)
	if !ok {
		logger.Warn("Login for unknown user")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}

	token, err := utils.GenerateJWT(who, h.jwtSecret, h.jwtDuration, h.jwtIssuer, time.Now())
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("Demo login", slog.String("user_id", who.ID), slog.String("role", string(who.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: who})
}
