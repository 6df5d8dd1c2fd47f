package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/web"
	"library-catalog/pkg/container"
)

const loginPath = "/accounts/login/"

func SetupRouter(c *container.Container) (*gin.Engine, error) {
	tmpl, err := web.Templates(c.Config.Media.URL)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = 32 << 20

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Session(c.JWTManager, c.UserService, c.Config.JWT.CookieName),
		middleware.Logger(),
		middleware.Recovery(),
	)
	router.NoRoute(response.NotFound)

	router.GET("/health", healthCheckHandler(c))

	login := middleware.Require(middleware.Authenticated(loginPath))
	staff := middleware.Require(middleware.Authenticated(loginPath), middleware.Staff())

	setupAccountRoutes(router, c, login)
	setupBookRoutes(router, c, login, staff)
	setupAuthorRoutes(router, c, login, staff)
	setupPublisherRoutes(router, c, staff)
	setupFriendRoutes(router, c, staff)

	return router, nil
}

func setupAccountRoutes(r *gin.Engine, c *container.Container, login gin.HandlerFunc) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("/signup/", c.AccountsHandler.SignupForm)
		accounts.POST("/signup/", c.AccountsHandler.Signup)
		accounts.GET("/login/", c.AccountsHandler.LoginForm)
		accounts.POST("/login/", c.AccountsHandler.Login)
		accounts.POST("/logout/", c.AccountsHandler.Logout)
	}

	r.GET("/userprofile/", login, c.ProfileHandler.Edit)
	r.POST("/userprofile/", login, c.ProfileHandler.Update)
}

func setupBookRoutes(r *gin.Engine, c *container.Container, login, staff gin.HandlerFunc) {
	r.GET("/", c.BookHandler.Index)
	r.GET("/books_list", c.BookHandler.BooksList)

	// GET trên increment/decrement chỉ redirect về trang chủ
	home := func(ctx *gin.Context) { response.Redirect(ctx, "/") }
	r.GET("/index/book_increment/", login, home)
	r.POST("/index/book_increment/", login, c.BookHandler.Increment)
	r.GET("/index/book_decrement/", login, home)
	r.POST("/index/book_decrement/", login, c.BookHandler.Decrement)

	book := r.Group("/book")
	{
		book.GET("/add/", login, c.BookHandler.CreateForm)
		book.POST("/add/", login, c.BookHandler.Create)
		book.GET("/import", login, c.BulkHandler.ImportForm)
		book.POST("/import", login, c.BulkHandler.Import)
		book.GET("/export", login, c.BulkHandler.Export)

		book.GET("/:id/", staff, c.BookHandler.EditForm)
		book.POST("/:id/", staff, c.BookHandler.Update)
		book.GET("/:id/delete/", staff, c.BookHandler.ConfirmDelete)
		book.POST("/:id/delete/", staff, c.BookHandler.Delete)
	}

	r.GET("/author_book/create_many", login, c.BulkHandler.JointForm)
	r.POST("/author_book/create_many", login, c.BulkHandler.JointCreate)
}

func setupAuthorRoutes(r *gin.Engine, c *container.Container, login, staff gin.HandlerFunc) {
	r.GET("/authors", c.AuthorHandler.List)

	author := r.Group("/author")
	{
		author.GET("/create", login, c.AuthorHandler.CreateForm)
		author.POST("/create", login, c.AuthorHandler.Create)
		author.GET("/create_many", login, c.AuthorHandler.CreateManyForm)
		author.POST("/create_many", login, c.AuthorHandler.CreateMany)
		author.GET("/:id/delete/", staff, c.AuthorHandler.ConfirmDelete)
		author.POST("/:id/delete/", staff, c.AuthorHandler.Delete)
	}
}

func setupPublisherRoutes(r *gin.Engine, c *container.Container, staff gin.HandlerFunc) {
	r.GET("/publishers/", c.PublisherHandler.List)

	publisher := r.Group("/publisher")
	{
		publisher.GET("/create", staff, c.PublisherHandler.CreateForm)
		publisher.POST("/create", staff, c.PublisherHandler.Create)
		publisher.GET("/:id/delete/", staff, c.PublisherHandler.ConfirmDelete)
		publisher.POST("/:id/delete/", staff, c.PublisherHandler.Delete)
	}
}

func setupFriendRoutes(r *gin.Engine, c *container.Container, staff gin.HandlerFunc) {
	r.GET("/friends/", c.FriendHandler.List)

	friend := r.Group("/friend")
	{
		friend.GET("/create", staff, c.FriendHandler.CreateForm)
		friend.POST("/create", staff, c.FriendHandler.Create)
		friend.GET("/:id/delete/", staff, c.FriendHandler.ConfirmDelete)
		friend.POST("/:id/delete/", staff, c.FriendHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		storageStatus := "ok"
		if err := appCtx.Storage.HealthCheck(ctx); err != nil {
			storageStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		if status == http.StatusOK {
			response.Success(c, status, health)
			return
		}
		response.ErrorWithDetails(c, status, "SERVICE_UNAVAILABLE", "database unreachable", health)
	}
}
