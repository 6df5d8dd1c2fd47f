package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validators"
)

const (
	homeURL       = "/"
	indexTitle    = "my library"
	templateIndex = "index.html"
	templateForm  = "book_form.html"
	templateDel   = "book_confirm_delete.html"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// BooksList - GET /books_list
func (h *BookHandler) BooksList(c *gin.Context) {
	titles, err := h.service.Titles(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	c.String(http.StatusOK, strings.Join(titles, "\n"))
}

// Index - GET /
func (h *BookHandler) Index(c *gin.Context) {
	books, err := h.service.ListDetailed(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, templateIndex, gin.H{
		"Title": indexTitle,
		"Books": books,
		"Range": multiplesOfThree(),
	})
}

// multiplesOfThree: 3, 6, ... 99
func multiplesOfThree() []int {
	out := make([]int, 0, 33)
	for x := 1; x < 100; x++ {
		if x%3 == 0 {
			out = append(out, x)
		}
	}
	return out
}

// Increment - POST /index/book_increment/
func (h *BookHandler) Increment(c *gin.Context) {
	h.changeCopies(c, h.service.Increment)
}

// Decrement - POST /index/book_decrement/
func (h *BookHandler) Decrement(c *gin.Context) {
	h.changeCopies(c, h.service.Decrement)
}

func (h *BookHandler) changeCopies(c *gin.Context, change func(ctx context.Context, id int64) (*model.Book, error)) {
	id, ok := utils.ParseID(c.PostForm("id"))
	if !ok {
		response.Redirect(c, homeURL)
		return
	}
	if _, err := change(c.Request.Context(), id); err != nil && !errors.Is(err, model.ErrBookNotFound) {
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, homeURL)
}

// CreateForm - GET /book/add/
func (h *BookHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, model.NewForm(), nil, c.Request.URL.Path)
}

// Create - POST /book/add/
func (h *BookHandler) Create(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindForm(src)
	if _, err := h.service.Create(c.Request.Context(), &form); err != nil {
		if verrs, ok := validators.AsErrors(err); ok {
			h.renderForm(c, form, verrs, c.Request.URL.Path)
			return
		}
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, homeURL)
}

// EditForm - GET /book/:id/
func (h *BookHandler) EditForm(c *gin.Context) {
	b, ok := h.lookup(c)
	if !ok {
		return
	}
	h.renderForm(c, model.FormFromBook(b), nil, c.Request.URL.Path)
}

// Update - POST /book/:id/
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, homeURL)
		return
	}

	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindForm(src)
	if _, err := h.service.Update(c.Request.Context(), id, &form); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.Redirect(c, homeURL)
			return
		}
		if verrs, ok := validators.AsErrors(err); ok {
			h.renderForm(c, form, verrs, c.Request.URL.Path)
			return
		}
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, homeURL)
}

// ConfirmDelete - GET /book/:id/delete/
func (h *BookHandler) ConfirmDelete(c *gin.Context) {
	b, ok := h.lookup(c)
	if !ok {
		return
	}
	response.HTML(c, http.StatusOK, templateDel, gin.H{
		"Book":      b,
		"Action":    c.Request.URL.Path,
		"CancelURL": homeURL,
	})
}

// Delete - POST /book/:id/delete/
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, homeURL)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, model.ErrBookNotFound) {
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, homeURL)
}

// lookup loads the book named by :id. Missing or malformed ids redirect home.
func (h *BookHandler) lookup(c *gin.Context) (*model.Book, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Redirect(c, homeURL)
		return nil, false
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.Redirect(c, homeURL)
		} else {
			response.InternalServerError(c, err)
		}
		return nil, false
	}
	return b, true
}

func (h *BookHandler) renderForm(c *gin.Context, form model.BookForm, errs map[string]error, action string) {
	choices, err := h.service.Choices(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, templateForm, gin.H{
		"Form":    form,
		"Errors":  errs,
		"Choices": choices,
		"Action":  action,
	})
}
