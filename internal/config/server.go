package config

import (
	"StorefrontGolang/database/postgres"
	catalogHandler "StorefrontGolang/internal/api/catalog/handler"
	catalogRepository "StorefrontGolang/internal/api/catalog/repository"
	catalogService "StorefrontGolang/internal/api/catalog/service"
	chatHandler "StorefrontGolang/internal/api/chat/handler"
	chatRepository "StorefrontGolang/internal/api/chat/repository"
	chatService "StorefrontGolang/internal/api/chat/service"
	"StorefrontGolang/internal/middleware"
	"StorefrontGolang/pkg/chatbot"
	"StorefrontGolang/pkg/corpusstore"
	"StorefrontGolang/pkg/currency"
	"StorefrontGolang/pkg/redis"
	"StorefrontGolang/pkg/utils"
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	corpusStore corpusstore.ItfCorpusStore
	formatter   currency.IFormatter
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithCorpusStore() ServerOption {
	return func(s *Server) error {
		store, err := corpusstore.New(s.log, s.redisServer)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize corpus store: %v", err)
			}
			return fmt.Errorf("failed to create corpus store: %w", err)
		}
		s.corpusStore = store
		return nil
	}
}

func WithCurrencyFormatter() ServerOption {
	return func(s *Server) error {
		locale := os.Getenv("APP_LOCALE")
		if locale == "" {
			locale = "en-US"
		}
		code := os.Getenv("APP_CURRENCY")
		if code == "" {
			code = "USD"
		}

		formatter, err := currency.New(locale, code)
		if err != nil {
			return fmt.Errorf("failed to create currency formatter: %w", err)
		}
		s.formatter = formatter
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Catalog Domain
	catalogRepo := catalogRepository.New(s.db, s.log)
	catalogServices := catalogService.NewCatalogService(s.log, catalogRepo, s.utils)
	catalogHandlers := catalogHandler.New(s.log, s.validator, s.middleware, catalogServices)

	// Chat Domain. The product snapshot must be in hand before the model
	// is built: it enters the corpus merge on first load, and a later
	// refresh cannot reach a matcher that was never constructed. The model
	// still answers without it, just without store-aware matches.
	snapshot, err := catalogServices.ActiveSnapshot(context.Background())
	if err != nil {
		s.log.Warnf("Failed to load product snapshot for chatbot seed: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	model := chatbot.NewModel(s.log, s.corpusStore, s.formatter, rng, chatService.ToStoreProducts(snapshot))

	chatRepo := chatRepository.New(s.db, s.log)
	chatServices := chatService.NewChatService(s.log, chatRepo, model, catalogServices, s.formatter, s.utils)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, catalogHandlers, chatHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
