package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/response"
)

const (
	authorsURL     = "/authors"
	authorsPrefix  = "authors"
	booksPrefix    = "books"
	templateJoint  = "manage_books_authors.html"
	templateImport = "book_import.html"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename = "books.xlsx"
)

type BulkHandler struct {
	books   service.ServiceInterface
	service service.BulkServiceInterface
	extra   int
}

func NewBulkHandler(books service.ServiceInterface, svc service.BulkServiceInterface, extra int) *BulkHandler {
	return &BulkHandler{
		books:   books,
		service: svc,
		extra:   extra,
	}
}

// JointForm - GET /author_book/create_many
func (h *BulkHandler) JointForm(c *gin.Context) {
	authors := formset.Blank(authorsPrefix, h.extra, func() authormodel.AuthorForm { return authormodel.AuthorForm{} })
	books := formset.Blank(booksPrefix, h.extra, model.NewForm)
	h.renderJoint(c, authors, books)
}

// JointCreate - POST /author_book/create_many
func (h *BulkHandler) JointCreate(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	authors := formset.Bind(authorsPrefix, src, authormodel.Fields, authormodel.BindForm)
	books := formset.Bind(booksPrefix, src, model.Fields, model.BindForm)

	if _, err := h.service.CreateAuthorsAndBooks(c.Request.Context(), authors, books); err != nil {
		if errors.Is(err, model.ErrInvalidBatch) {
			h.renderJoint(c, authors, books)
			return
		}
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, authorsURL)
}

func (h *BulkHandler) renderJoint(c *gin.Context, authors *formset.Set[authormodel.AuthorForm], books *formset.Set[model.BookForm]) {
	choices, err := h.books.Choices(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, templateJoint, gin.H{
		"Authors": authors,
		"Books":   books,
		"Choices": choices,
	})
}

// ImportForm - GET /book/import
func (h *BulkHandler) ImportForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, templateImport, gin.H{"Columns": model.Columns})
}

// Import - POST /book/import
func (h *BulkHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.renderImport(c, nil, "Choose an .xlsx file to import.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	defer f.Close()

	set, err := h.service.ImportXLSX(c.Request.Context(), f)
	switch {
	case err == nil:
		response.Redirect(c, homeURL)
	case errors.Is(err, model.ErrInvalidBatch):
		h.renderImport(c, set, "")
	case errors.Is(err, model.ErrImportHeader), errors.Is(err, model.ErrImportEmpty):
		h.renderImport(c, nil, err.Error())
	case errors.Is(err, model.ErrImportUnreadable):
		h.renderImport(c, nil, "The file could not be read as an .xlsx spreadsheet.")
	default:
		response.InternalServerError(c, err)
	}
}

func (h *BulkHandler) renderImport(c *gin.Context, set *formset.Set[model.BookForm], message string) {
	response.HTML(c, http.StatusOK, templateImport, gin.H{
		"Columns": model.Columns,
		"Books":   set,
		"Message": message,
	})
}

// Export - GET /book/export
func (h *BulkHandler) Export(c *gin.Context) {
	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, xlsxMIME, data)
}
