package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/queue"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/pkg/cache"
	pkgdb "library-catalog/pkg/database"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/logger"

	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	friendHandler "library-catalog/internal/domains/friend/handler"
	friendRepo "library-catalog/internal/domains/friend/repository"
	friendService "library-catalog/internal/domains/friend/service"
	profileHandler "library-catalog/internal/domains/profile/handler"
	profileRepo "library-catalog/internal/domains/profile/repository"
	profileService "library-catalog/internal/domains/profile/service"
	publisherHandler "library-catalog/internal/domains/publisher/handler"
	publisherRepo "library-catalog/internal/domains/publisher/repository"
	publisherService "library-catalog/internal/domains/publisher/service"
	socialRepo "library-catalog/internal/domains/socialaccount/repository"
	socialService "library-catalog/internal/domains/socialaccount/service"
	userHandler "library-catalog/internal/domains/user/handler"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
)

// Container chứa tất cả dependencies của application.
// Thứ tự khởi tạo: infrastructure -> repositories -> services -> handlers
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	Queue      *queue.Client
	Tx         pkgdb.Transactor
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo    authorRepo.RepositoryInterface
	PublisherRepo publisherRepo.RepositoryInterface
	FriendRepo    friendRepo.RepositoryInterface
	BookRepo      bookRepo.RepositoryInterface
	UserRepo      userRepo.RepositoryInterface
	ProfileRepo   profileRepo.RepositoryInterface
	SocialRepo    socialRepo.RepositoryInterface

	// Services
	AuthorService    authorService.ServiceInterface
	PublisherService publisherService.ServiceInterface
	FriendService    friendService.ServiceInterface
	CoverService     bookService.CoverService
	BookService      bookService.ServiceInterface
	BulkService      bookService.BulkServiceInterface
	SocialService    socialService.ServiceInterface
	ProfileService   profileService.ServiceInterface
	UserService      userService.ServiceInterface

	// Handlers
	AuthorHandler    *authorHandler.AuthorHandler
	PublisherHandler *publisherHandler.PublisherHandler
	FriendHandler    *friendHandler.FriendHandler
	BookHandler      *bookHandler.BookHandler
	BulkHandler      *bookHandler.BulkHandler
	ProfileHandler   *profileHandler.ProfileHandler
	AccountsHandler  *userHandler.AccountsHandler
}

// NewContainer connects infrastructure and builds the dependency graph.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	c.Tx = pkgdb.NewTransactor(db.Pool)

	// Redis lỗi không critical, cache chỉ là tăng tốc
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("redis connection failed, continuing without warm cache", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = c.Redis

	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.SessionTTL)

	c.initRepositories(db.Pool)
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{"env": cfg.App.Environment})
	return c, nil
}

func (c *Container) initRepositories(pool *pgxpool.Pool) {
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.PublisherRepo = publisherRepo.NewPostgresRepository(pool, c.Cache, c.Config.Cache.TTL)
	c.FriendRepo = friendRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.ProfileRepo = profileRepo.NewPostgresRepository(pool)
	c.SocialRepo = socialRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Tx)
	c.PublisherService = publisherService.NewPublisherService(c.PublisherRepo)
	c.FriendService = friendService.NewFriendService(c.FriendRepo)

	choices := bookService.NewChoiceLoader(c.AuthorService, c.PublisherService, c.FriendService)
	c.CoverService = bookService.NewCoverService(c.Storage, storage.NewImageProcessor(), c.BookRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, choices, c.CoverService, c.Queue)
	c.BulkService = bookService.NewBulkService(c.BookRepo, choices, c.CoverService, c.Queue, c.AuthorService, c.Tx)

	c.SocialService = socialService.NewSocialService(c.SocialRepo)
	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, c.SocialService)
	// profile được tạo ngay khi tạo user, trong cùng transaction
	c.UserService = userService.NewUserService(c.UserRepo, c.Tx, c.JWTManager, c.ProfileService)
}

func (c *Container) initHandlers() {
	extra := c.Config.Forms.Extra
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, extra)
	c.PublisherHandler = publisherHandler.NewPublisherHandler(c.PublisherService)
	c.FriendHandler = friendHandler.NewFriendHandler(c.FriendService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.BulkHandler = bookHandler.NewBulkHandler(c.BookService, c.BulkService, extra)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.AccountsHandler = userHandler.NewAccountsHandler(c.UserService, userHandler.CookieConfig{
		Name:   c.Config.JWT.CookieName,
		TTL:    c.Config.JWT.SessionTTL,
		Secure: c.Config.IsProduction(),
	})
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Warn("failed to close queue client", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("failed to close database", map[string]interface{}{"error": err.Error()})
		}
	}
	logger.Info("container cleanup completed", nil)
}
