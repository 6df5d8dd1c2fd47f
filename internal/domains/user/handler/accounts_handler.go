package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/service"
	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validators"
)

const (
	homeURL        = "/"
	templateLogin  = "login.html"
	templateSignup = "signup.html"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AccountsHandler struct {
	service service.ServiceInterface
	cookie  CookieConfig
}

func NewAccountsHandler(svc service.ServiceInterface, cookie CookieConfig) *AccountsHandler {
	return &AccountsHandler{
		service: svc,
		cookie:  cookie,
	}
}

// SignupForm - GET /accounts/signup/
func (h *AccountsHandler) SignupForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, templateSignup, gin.H{"Form": model.SignupForm{}})
}

// Signup - POST /accounts/signup/
func (h *AccountsHandler) Signup(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindSignupForm(src)
	_, token, err := h.service.Register(c.Request.Context(), form)
	if err != nil {
		if verrs, ok := validators.AsErrors(err); ok {
			form.Password, form.Password2 = "", ""
			response.HTML(c, http.StatusOK, templateSignup, gin.H{"Form": form, "Errors": verrs})
			return
		}
		response.InternalServerError(c, err)
		return
	}

	h.setSession(c, token)
	response.Redirect(c, homeURL)
}

// LoginForm - GET /accounts/login/
func (h *AccountsHandler) LoginForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, templateLogin, gin.H{
		"Form": model.LoginForm{Next: c.Query("next")},
	})
}

// Login - POST /accounts/login/
func (h *AccountsHandler) Login(c *gin.Context) {
	src, err := formset.FromRequest(c.Request)
	if err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	form := model.BindLoginForm(src)
	_, token, err := h.service.Login(c.Request.Context(), form)
	if err != nil {
		form.Password = ""
		if verrs, ok := validators.AsErrors(err); ok {
			response.HTML(c, http.StatusOK, templateLogin, gin.H{"Form": form, "Errors": verrs})
			return
		}
		if errors.Is(err, model.ErrInvalidCredentials) || errors.Is(err, model.ErrUserInactive) {
			response.HTML(c, http.StatusOK, templateLogin, gin.H{
				"Form":   form,
				"Errors": map[string]error{formset.NonFieldKey: err},
			})
			return
		}
		response.InternalServerError(c, err)
		return
	}

	h.setSession(c, token)
	response.Redirect(c, utils.SafeNext(form.Next, homeURL))
}

// Logout - POST /accounts/logout/
func (h *AccountsHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Redirect(c, homeURL)
}

func (h *AccountsHandler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}
