package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	authsvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/*.html
var templatesFS embed.FS

type EmailHandler struct {
	svc       authsvc.Service
	v         *validator.Validate
	baseURL   string
	templates *template.Template
}

func NewEmailHandler(svc authsvc.Service, v *validator.Validate, baseURL string) (*EmailHandler, error) {
	tpls, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, customErrors.WrapInternal(err, "parse templates")
	}
	return &EmailHandler{svc: svc, v: v, baseURL: baseURL, templates: tpls}, nil
}

func (h *EmailHandler) ConfirmEmail(c *gin.Context) {
	already, err := h.svc.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if already {
		c.JSON(http.StatusOK, gin.H{"detail": "Your email is already confirmed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Email confirmed"})
}

// RequestEmail answers the same way whether or not the address is known.
func (h *EmailHandler) RequestEmail(c *gin.Context) {
	var in dto.RequestEmailDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	if err := h.v.Struct(in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	already, err := h.svc.ResendVerification(c.Request.Context(), in.Email, h.baseURL)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
	case err != nil:
		abortWithError(c, err)
		return
	case already:
		c.JSON(http.StatusOK, gin.H{"detail": "Your email is already confirmed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Check your email for confirmation."})
}

// ForgetPassword answers the same way whether or not the address is known.
func (h *EmailHandler) ForgetPassword(c *gin.Context) {
	var in dto.RequestEmailDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	if err := h.v.Struct(in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	err := h.svc.RequestPasswordReset(c.Request.Context(), in.Email, h.baseURL)
	if err != nil && !errors.Is(err, customErrors.ErrNotFound) {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Check your email for the reset link."})
}

func (h *EmailHandler) ResetPasswordForm(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := h.templates.ExecuteTemplate(c.Writer, "reset_password_form.html", gin.H{
		"Token": c.Param("token"),
	})
	if err != nil {
		_ = c.Error(err)
	}
}

func (h *EmailHandler) ResetPassword(c *gin.Context) {
	var in dto.ResetPasswordDTO
	if err := c.ShouldBind(&in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	if err := h.v.Struct(in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	if in.NewPassword1 != in.NewPassword2 {
		abortWithError(c, customErrors.NewInvalidArgument("passwords do not match"))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("token"), in.NewPassword1); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated"})
}
