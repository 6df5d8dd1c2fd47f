package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validators"
)

const (
	listURL      = "/authors"
	formsetName  = "authors"
	templateList = "authors_list.html"
	templateEdit = "author_edit.html"
	templateMany = "manage_authors.html"
)

type AuthorHandler struct {
	service service.ServiceInterface
	extra   int
}

func NewAuthorHandler(svc service.ServiceInterface, extra int) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
		extra:   extra,
	}
}

// List - GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, templateList, gin.H{"Authors": authors})
}

// CreateForm - GET /author/create
func (h *AuthorHandler) CreateForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, templateEdit, gin.H{"Form": model.AuthorForm{}})
}

// Create - POST /author/create
func (h *AuthorHandler) Create(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindForm(src)
	if _, err := h.service.Create(c.Request.Context(), form); err != nil {
		if verrs, ok := validators.AsErrors(err); ok {
			response.HTML(c, http.StatusOK, templateEdit, gin.H{"Form": form, "Errors": verrs})
			return
		}
		response.InternalServerError(c, err)
		return
	}

	response.Redirect(c, listURL)
}

// CreateManyForm - GET /author/create_many
func (h *AuthorHandler) CreateManyForm(c *gin.Context) {
	set := formset.Blank(formsetName, h.extra, func() model.AuthorForm { return model.AuthorForm{} })
	response.HTML(c, http.StatusOK, templateMany, gin.H{"Authors": set})
}

// CreateMany - POST /author/create_many
func (h *AuthorHandler) CreateMany(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	set := formset.Bind(formsetName, src, model.Fields, model.BindForm)
	if _, err := h.service.CreateBatch(c.Request.Context(), set); err != nil {
		if errors.Is(err, model.ErrInvalidBatch) {
			response.HTML(c, http.StatusOK, templateMany, gin.H{"Authors": set})
			return
		}
		response.InternalServerError(c, err)
		return
	}

	response.Redirect(c, listURL)
}

// ConfirmDelete - GET /author/:id/delete/
func (h *AuthorHandler) ConfirmDelete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, listURL)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			response.Redirect(c, listURL)
			return
		}
		response.InternalServerError(c, err)
		return
	}

	response.HTML(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Kind":      "author",
		"Name":      a.FullName,
		"Action":    c.Request.URL.Path,
		"CancelURL": listURL,
		"Cascade":   true,
	})
}

// Delete - POST /author/:id/delete/
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, listURL)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, model.ErrAuthorNotFound) {
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, listURL)
}
