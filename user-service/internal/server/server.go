package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/azaliaz/luxefurnish/user-service/internal/config"
	"github.com/azaliaz/luxefurnish/user-service/internal/domain/models"
	"github.com/azaliaz/luxefurnish/user-service/internal/logger"
)

//go:generate mockgen -source=server.go -destination=./mocks/storage_mock.go -package=mocks

const shutdownTimeout = 10 * time.Second

type Storage interface {
	SaveUser(models.User) (models.User, error)
	ValidUser(email, pass string) (models.User, error)
	GetUser(uid string) (models.User, error)
}

type Server struct {
	serv    *http.Server
	valid   *validator.Validate
	storage Storage
	tokens  *tokenIssuer
	limiter *rateLimiter
	origins []string
}

func New(cfg config.Config, stor Storage) *Server {
	server := http.Server{ //nolint:gosec // timeouts set below
		Addr:              cfg.Addr,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return &Server{
		serv:    &server,
		valid:   newValidator(),
		storage: stor,
		tokens:  newTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		limiter: newRateLimiter(cfg.SigninRPS),
		origins: cfg.AllowedOrigins,
	}
}

// Router builds the gin engine with every route of the auth API.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), instrument())
	if len(s.origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/metrics", gin.WrapH(metricsHandler()))
	api := router.Group("/api")
	{
		api.GET("/test", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"message": "API is working!"})
		})
		api.POST("/signup", s.limiter.middleware(), s.SignUp)
		api.POST("/signin", s.limiter.middleware(), s.SignIn)
		api.GET("/me", s.JWTAuthMiddleware(), s.Me)
	}
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, errorResponse{Error: "API route not found"})
	})
	return router
}

func (s *Server) Run(ctx context.Context) error {
	log := logger.Get()
	s.serv.Handler = s.Router()
	s.serv.BaseContext = func(_ net.Listener) context.Context { return ctx }

	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ShutdownServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.serv.Shutdown(ctx)
}
