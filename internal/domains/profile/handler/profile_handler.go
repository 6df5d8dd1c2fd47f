package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/profile/model"
	"library-catalog/internal/domains/profile/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/validators"
)

const (
	profileURL   = "/userprofile/"
	templateForm = "profile_form.html"
)

type ProfileHandler struct {
	service service.ServiceInterface
}

func NewProfileHandler(svc service.ServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Edit - GET /userprofile/
// Profile luôn là của user trong session, không nhận id từ URL
func (h *ProfileHandler) Edit(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	p, err := h.service.GetForUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}
	h.render(c, model.FormFromProfile(p), nil)
}

// Update - POST /userprofile/
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindForm(src)
	if _, err := h.service.Update(c.Request.Context(), userID, form); err != nil {
		if verrs, ok := validators.AsErrors(err); ok {
			h.render(c, form, verrs)
			return
		}
		response.InternalServerError(c, err)
		return
	}
	response.Redirect(c, profileURL)
}

func (h *ProfileHandler) render(c *gin.Context, form model.ProfileForm, errs map[string]error) {
	response.HTML(c, http.StatusOK, templateForm, gin.H{
		"Form":    form,
		"Errors":  errs,
		"Genders": model.Genders,
	})
}
