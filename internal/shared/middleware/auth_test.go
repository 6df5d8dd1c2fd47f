package middleware

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodel "library-catalog/internal/domains/user/model"
	"library-catalog/internal/shared"
	"library-catalog/pkg/jwt"
)

const cookieName = "sessionid"

// userStore trả về user hiện tại theo id, giống bảng users
type userStore struct {
	users map[int64]*usermodel.User
	err   error
}

func (s *userStore) GetByID(_ context.Context, id int64) (*usermodel.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, usermodel.ErrUserNotFound
	}
	return u, nil
}

func newStore(users ...*usermodel.User) *userStore {
	s := &userStore{users: map[int64]*usermodel.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func reader() *usermodel.User {
	return &usermodel.User{ID: 7, Email: "reader@example.com", IsActive: true}
}

func admin() *usermodel.User {
	return &usermodel.User{ID: 1, Email: "admin@example.com", IsStaff: true, IsActive: true}
}

func newEngine(t *testing.T, tokens *jwt.Manager, users UserLoader, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse("{{.Status}} {{.Message}}")))
	r.Use(Session(tokens, users, cookieName))
	r.GET("/protected", append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})...)
	return r
}

func request(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected?x=1", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func session(t *testing.T, tokens *jwt.Manager, id int64) string {
	t.Helper()
	token, err := tokens.GenerateSessionToken(id)
	require.NoError(t, err)
	return token
}

func staffOnly() gin.HandlerFunc {
	return Require(Authenticated("/accounts/login/"), Staff())
}

func TestAuthenticated_RedirectsAnonymousToLogin(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(), Require(Authenticated("/accounts/login/")))

	w := request(t, r, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/?next=%2Fprotected%3Fx%3D1", w.Header().Get("Location"))
}

func TestAuthenticated_AllowsSessionUser(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(reader()), Require(Authenticated("/accounts/login/")))

	w := request(t, r, session(t, tokens, 7))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestSession_LoadsCurrentUserIntoContext(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(admin()), func(c *gin.Context) {
		c.String(http.StatusOK, "%d %s %t", c.GetInt64(shared.CtxUserID), c.GetString(shared.CtxUserEmail), c.GetBool(shared.CtxIsStaff))
		c.Abort()
	})

	w := request(t, r, session(t, tokens, 1))

	assert.Equal(t, "1 admin@example.com true", w.Body.String())
}

func TestStaff_NonStaffGetsForbiddenAndKeepsSession(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(reader()), staffOnly())

	w := request(t, r, session(t, tokens, 7))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "403")
	// session cookie không bị xóa
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestStaff_AnonymousIsSentToLoginFirst(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(), staffOnly())

	w := request(t, r, "")

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestStaff_AllowsStaff(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(admin()), staffOnly())

	w := request(t, r, session(t, tokens, 1))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaff_RevokedAfterLoginIsDeniedOnNextRequest(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	u := admin()
	store := newStore(u)
	r := newEngine(t, tokens, store, staffOnly())
	token := session(t, tokens, u.ID)

	require.Equal(t, http.StatusOK, request(t, r, token).Code)

	// setstaff --revoke
	u.IsStaff = false

	w := request(t, r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotEqual(t, "ok", w.Body.String())
}

func TestSession_DeactivatedUserIsAnonymous(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	u := admin()
	u.IsActive = false
	r := newEngine(t, tokens, newStore(u), staffOnly())

	w := request(t, r, session(t, tokens, u.ID))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=;")
}

func TestSession_DeletedUserIsAnonymous(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, tokens, newStore(), Require(Authenticated("/accounts/login/")))

	w := request(t, r, session(t, tokens, 99))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=;")
}

func TestSession_LookupFailureKeepsCookie(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	store := newStore(admin())
	store.err = errors.New("connection refused")
	r := newEngine(t, tokens, store, Require(Authenticated("/accounts/login/")))

	w := request(t, r, session(t, tokens, 1))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestSession_ClearsBadCookie(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	other := jwt.NewManager("other-secret", time.Hour)
	r := newEngine(t, tokens, newStore(admin()), Require(Authenticated("/accounts/login/")))

	w := request(t, r, session(t, other, 1))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=;")
}
