package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/publisher/model"
	"library-catalog/internal/shared"
	"library-catalog/internal/web"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, form model.PublisherForm) (*model.Publisher, error) {
	args := m.Called(ctx, form)
	p, _ := args.Get(0).(*model.Publisher)
	return p, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*model.Publisher, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Publisher)
	return p, args.Error(1)
}

func (m *mockService) List(ctx context.Context) ([]*model.Publisher, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*model.Publisher)
	return list, args.Error(1)
}

func (m *mockService) ListWithTitles(ctx context.Context) ([]*model.PublisherWithTitles, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*model.PublisherWithTitles)
	return list, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(t *testing.T, svc *mockService, staff bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates("/media/")
	require.NoError(t, err)

	h := NewPublisherHandler(svc)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(func(c *gin.Context) {
		c.Set(shared.CtxUserID, int64(1))
		c.Set(shared.CtxIsStaff, staff)
		c.Next()
	})
	r.GET(listURL, h.List)
	r.POST("/publisher/create", h.Create)
	r.POST("/publisher/:id/delete/", h.Delete)
	return r
}

func TestList_ShowsTitlesPerPublisher(t *testing.T) {
	svc := new(mockService)
	acme := &model.PublisherWithTitles{
		Publisher: model.Publisher{ID: 1, Name: "Acme"},
		Titles:    []string{"War and Peace", "Anna Karenina"},
	}
	svc.On("ListWithTitles", mock.Anything).Return([]*model.PublisherWithTitles{acme}, nil)

	w := httptest.NewRecorder()
	setupRouter(t, svc, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, listURL, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme: War and Peace, Anna Karenina")
	assert.NotContains(t, w.Body.String(), "/publisher/1/delete/")
}

func TestList_StaffSeesDeleteLinks(t *testing.T) {
	svc := new(mockService)
	acme := &model.PublisherWithTitles{Publisher: model.Publisher{ID: 1, Name: "Acme"}}
	svc.On("ListWithTitles", mock.Anything).Return([]*model.PublisherWithTitles{acme}, nil)

	w := httptest.NewRecorder()
	setupRouter(t, svc, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, listURL, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/publisher/1/delete/")
}

func TestList_ServiceFailureIs500(t *testing.T) {
	svc := new(mockService)
	svc.On("ListWithTitles", mock.Anything).Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	setupRouter(t, svc, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, listURL, nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreate_BlankNameRerenders(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, model.PublisherForm{}).
		Return(nil, validation.Errors{"name": errors.New("cannot be blank")})

	req := httptest.NewRequest(http.MethodPost, "/publisher/create", strings.NewReader(url.Values{}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	setupRouter(t, svc, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be blank")
}

func TestDelete_MissingPublisherStillRedirects(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, int64(9)).Return(model.ErrPublisherNotFound)

	w := httptest.NewRecorder()
	setupRouter(t, svc, true).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/publisher/9/delete/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, listURL, w.Header().Get("Location"))
}
