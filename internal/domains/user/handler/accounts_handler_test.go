package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/web"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, form model.SignupForm) (*model.User, string, error) {
	args := m.Called(ctx, form)
	u, _ := args.Get(0).(*model.User)
	return u, args.String(1), args.Error(2)
}

func (m *mockUserService) Login(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
	args := m.Called(ctx, form)
	u, _ := args.Get(0).(*model.User)
	return u, args.String(1), args.Error(2)
}

func (m *mockUserService) CreateUser(ctx context.Context, email, password string, staff bool) (*model.User, error) {
	args := m.Called(ctx, email, password, staff)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func setupRouter(t *testing.T, svc *mockUserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates("/media/")
	require.NoError(t, err)

	h := NewAccountsHandler(svc, CookieConfig{Name: "sessionid", TTL: time.Hour})
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/accounts/login/", h.LoginForm)
	r.POST("/accounts/login/", h.Login)
	r.POST("/accounts/signup/", h.Signup)
	r.POST("/accounts/logout/", h.Logout)
	return r
}

func post(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_SetsCookieAndFollowsLocalNext(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Login", mock.Anything, mock.Anything).Return(&model.User{ID: 1}, "tok", nil)

	w := post(setupRouter(t, svc), "/accounts/login/", url.Values{
		"login": {"reader@example.com"}, "password": {"secret123"}, "next": {"/book/add/"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/book/add/", w.Header().Get("Location"))
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "sessionid=tok")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")
}

func TestLogin_IgnoresExternalNext(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Login", mock.Anything, mock.Anything).Return(&model.User{ID: 1}, "tok", nil)

	w := post(setupRouter(t, svc), "/accounts/login/", url.Values{
		"login": {"reader@example.com"}, "password": {"secret123"}, "next": {"https://evil.example/"},
	})

	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogin_BadCredentialsRerenders(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, "", model.ErrInvalidCredentials)

	w := post(setupRouter(t, svc), "/accounts/login/", url.Values{
		"login": {"reader@example.com"}, "password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "are not correct")
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestSignup_LogsInAndRedirectsHome(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Register", mock.Anything, model.SignupForm{
		Email: "new@example.com", Password: "secret123", Password2: "secret123",
	}).Return(&model.User{ID: 5}, "tok", nil)

	w := post(setupRouter(t, svc), "/accounts/signup/", url.Values{
		"email": {"new@example.com"}, "password1": {"secret123"}, "password2": {"secret123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sessionid=tok")
}

func TestLogout_ClearsCookie(t *testing.T) {
	w := post(setupRouter(t, new(mockUserService)), "/accounts/logout/", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
