package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/transport/http/middleware"
	contactssvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/contacts/service"
	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/dto"
	contactModel "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/model"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/repo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContactHandler struct {
	svc contactssvc.Service
}

func NewContactHandler(svc contactssvc.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(c *gin.Context) {
	principal, in, ok := h.bindContact(c)
	if !ok {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), principal.ID, in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContactResponse(created))
}

func (h *ContactHandler) Get(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	contact, err := h.svc.Get(c.Request.Context(), principal.ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, err := h.svc.List(c.Request.Context(), principal.ID, limit, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}

func (h *ContactHandler) Search(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	f := repo.Filter{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Email:     c.Query("email"),
		Limit:     limit,
		Offset:    offset,
	}

	contacts, err := h.svc.Search(c.Request.Context(), principal.ID, f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}

func (h *ContactHandler) Update(c *gin.Context) {
	principal, in, ok := h.bindContact(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, customErrors.NewInvalidArgument("invalid contact id"))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), principal.ID, id, in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(updated))
}

func (h *ContactHandler) Delete(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal.ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	contacts, err := h.svc.UpcomingBirthdays(c.Request.Context(), principal.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponses(contacts))
}

func (h *ContactHandler) bindContact(c *gin.Context) (model.Principal, dto.ContactDTO, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return model.Principal{}, dto.ContactDTO{}, false
	}

	var in dto.ContactDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, customErrors.NewInvalidArgument(err.Error()))
		return model.Principal{}, dto.ContactDTO{}, false
	}
	return principal, in, true
}

func (h *ContactHandler) principalAndID(c *gin.Context) (model.Principal, uuid.UUID, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return model.Principal{}, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, customErrors.NewInvalidArgument("invalid contact id"))
		return model.Principal{}, uuid.Nil, false
	}
	return principal, id, true
}

func toContactResponse(c contactModel.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          c.ID.String(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: c.DateOfBirth.Format(time.DateOnly),
	}
}

func toContactResponses(contacts []contactModel.Contact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toContactResponse(c))
	}
	return out
}
