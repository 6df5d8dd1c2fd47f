package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/friend/model"
	"library-catalog/internal/domains/friend/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validators"
)

const listURL = "/friends/"

type FriendHandler struct {
	service service.ServiceInterface
}

func NewFriendHandler(svc service.ServiceInterface) *FriendHandler {
	return &FriendHandler{service: svc}
}

// List - GET /friends/
func (h *FriendHandler) List(c *gin.Context) {
	friends, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "friend.html", gin.H{"Friends": friends})
}

// CreateForm - GET /friend/create
func (h *FriendHandler) CreateForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, "friend_form.html", gin.H{"Form": model.FriendForm{}})
}

// Create - POST /friend/create
func (h *FriendHandler) Create(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindForm(src)
	if _, err := h.service.Create(c.Request.Context(), form); err != nil {
		if verrs, ok := validators.AsErrors(err); ok {
			response.HTML(c, http.StatusOK, "friend_form.html", gin.H{"Form": form, "Errors": verrs})
			return
		}
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, listURL)
}

// ConfirmDelete - GET /friend/:id/delete/
func (h *FriendHandler) ConfirmDelete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, listURL)
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, model.ErrFriendNotFound) {
		response.Redirect(c, listURL)
		return
	}
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Kind":      "friend",
		"Name":      f.Name,
		"Action":    c.Request.URL.Path,
		"CancelURL": listURL,
		"Cascade":   true,
	})
}

// Delete - POST /friend/:id/delete/
func (h *FriendHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, listURL)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, model.ErrFriendNotFound) {
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, listURL)
}
