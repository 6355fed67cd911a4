package http

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/transport/http/middleware"
	authsvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
)

// maxAvatarBytes caps the accepted upload size before it reaches storage.
const maxAvatarBytes = 5 << 20

type AuthHandler struct {
	svc     authsvc.Service
	baseURL string
}

func NewAuthHandler(svc authsvc.Service, baseURL string) *AuthHandler {
	return &AuthHandler{svc: svc, baseURL: baseURL}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var in dto.SignupDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), in, h.baseURL)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   toUserResponse(user),
		"detail": "User successfully created. Check your email for confirmation.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in dto.LoginDTO
	if err := c.ShouldBind(&in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokenResponse(pair))
}

// Refresh expects the refresh token as a bearer credential.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, ok := middleware.BearerToken(c)
	if !ok {
		abortWithError(c, customErrors.NewInvalidArgument("missing bearer token"))
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokenResponse(pair))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	raw, ok := middleware.BearerToken(c)
	if !ok {
		abortWithError(c, customErrors.NewInvalidArgument("missing bearer token"))
		return
	}

	var in dto.LogoutDTO
	// the refresh token in the body is optional
	_ = c.ShouldBindJSON(&in)
	in.AccessToken = raw

	if err := h.svc.Logout(c.Request.Context(), in); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, customErrors.NewInvalidArgument("missing file field"))
		return
	}
	if file.Size > maxAvatarBytes {
		abortWithError(c, customErrors.NewInvalidArgument("avatar exceeds the size limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		abortWithError(c, customErrors.WrapInternal(err, "open upload"))
		return
	}
	defer src.Close()

	user, err := h.svc.UpdateAvatar(c.Request.Context(), principal, src, file.Size,
		file.Header.Get("Content-Type"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
	}
}

func toTokenResponse(p model.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(p.AccessTTL.Seconds()),
	}
}
