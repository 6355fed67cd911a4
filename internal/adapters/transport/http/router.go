package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/transport/http/middleware"
	authsvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/service"
	contactssvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/contacts/service"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter assembles the HTTP surface: auth and email flows, the contacts
// API behind bearer auth, a health probe and prometheus metrics.
func NewRouter(
	cfg *config.Config,
	authService authsvc.Service,
	contactService contactssvc.Service,
	v *validator.Validate,
	pingDB func(context.Context) error,
	log *zap.Logger,
) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.RateLimitPerIP(cfg.RateLimitRPS, cfg.RateLimitBurst, 10_000, 10*time.Minute))

	registry := prometheus.NewRegistry()
	r.Use(middleware.NewMetrics(registry).Handler())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := NewAuthHandler(authService, cfg.PublicBaseURL)
	emailHandler, err := NewEmailHandler(authService, v, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	contactHandler := NewContactHandler(contactService)

	requireAuth := middleware.RequireAuth(authService)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh_token", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.PATCH("/avatar", requireAuth, authHandler.UpdateAvatar)
	}

	email := r.Group("/api/email")
	{
		email.GET("/confirmed_email/:token", emailHandler.ConfirmEmail)
		email.POST("/request_email", emailHandler.RequestEmail)
		email.POST("/forget-password", emailHandler.ForgetPassword)
		email.GET("/reset-password/:token", emailHandler.ResetPasswordForm)
		email.POST("/reset-password/:token", emailHandler.ResetPassword)
	}

	contacts := r.Group("/api/contacts", requireAuth)
	{
		contacts.POST("", contactHandler.Create)
		contacts.GET("", contactHandler.List)
		contacts.GET("/search", contactHandler.Search)
		contacts.GET("/upcoming_birthdays", contactHandler.UpcomingBirthdays)
		contacts.GET("/:id", contactHandler.Get)
		contacts.PUT("/:id", contactHandler.Update)
		contacts.DELETE("/:id", contactHandler.Delete)
	}

	r.GET("/api/healthchecker", func(c *gin.Context) {
		if err := pingDB(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "error connecting to the database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Contacts App"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r, nil
}
