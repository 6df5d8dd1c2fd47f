package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/publisher/model"
	"library-catalog/internal/domains/publisher/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validators"
)

const listURL = "/publishers/"

type PublisherHandler struct {
	service service.ServiceInterface
}

func NewPublisherHandler(svc service.ServiceInterface) *PublisherHandler {
	return &PublisherHandler{service: svc}
}

// List - GET /publishers/ : mỗi publisher kèm danh sách title "A, B"
func (h *PublisherHandler) List(c *gin.Context) {
	publishers, err := h.service.ListWithTitles(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "publisher.html", gin.H{"Publishers": publishers})
}

// CreateForm - GET /publisher/create
func (h *PublisherHandler) CreateForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, "publisher_form.html", gin.H{"Form": model.PublisherForm{}})
}

// Create - POST /publisher/create
func (h *PublisherHandler) Create(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindForm(src)
	if _, err := h.service.Create(c.Request.Context(), form); err != nil {
		if verrs, ok := validators.AsErrors(err); ok {
			response.HTML(c, http.StatusOK, "publisher_form.html", gin.H{"Form": form, "Errors": verrs})
			return
		}
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, listURL)
}

// ConfirmDelete - GET /publisher/:id/delete/
func (h *PublisherHandler) ConfirmDelete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, listURL)
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, model.ErrPublisherNotFound) {
		response.Redirect(c, listURL)
		return
	}
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Kind":      "publisher",
		"Name":      p.Name,
		"Action":    c.Request.URL.Path,
		"CancelURL": listURL,
		"Cascade":   true,
	})
}

// Delete - POST /publisher/:id/delete/
func (h *PublisherHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, listURL)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, model.ErrPublisherNotFound) {
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, listURL)
}
