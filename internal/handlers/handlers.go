package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"simulado/api/internal/config"
	"simulado/api/internal/middleware"
	"simulado/api/internal/quota"
	"simulado/api/internal/repository"
	"simulado/api/internal/service"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	examService *service.ExamService
	db          *pgxpool.Pool
	cache       *redis.Client
	users       middleware.UserFinder
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, gen service.TextGenerator, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	policy := quota.NewPolicy(cfg.Quota.FreeLimit, cfg.Quota.PremiumLimit)

	auth := service.NewAuthService(userRepo, cfg, log)
	exam := service.NewExamService(historyRepo, gen, policy, cache, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
		examService: exam,
		db:          db,
		cache:       cache,
		users:       userRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/", h.Root)
	router.GET("/healthz", h.Health)

	router.POST("/users", h.RegisterUser)
	router.POST("/token", h.Login)

	// History is intentionally outside the auth group: the original surface
	// exposes the ledger without credentials.
	router.GET("/historico", h.History)

	protected := router.Group("/")
	protected.Use(middleware.Auth(h.cfg, h.users))
	protected.POST("/gerar-simulado/:examId", h.GenerateExam)
	protected.POST("/upgrade", h.Upgrade)
	protected.GET("/me", h.Me)
}
