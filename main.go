package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"stocksim/config"
	"stocksim/database"
	"stocksim/handlers"
	"stocksim/middleware"
	"stocksim/quote"
	"stocksim/repository"
	"stocksim/service"
	"stocksim/session"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate schema")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	store := repository.NewStore(db)
	quotes := quote.NewClient(cfg.QuoteAPIKey)
	sessions := session.NewManager(rdb, cfg.SessionSecret, cfg.SessionTTL)
	accounts := service.NewAccountService(store, cfg.StartingCash)
	trading := service.NewTradingService(store, quotes, log)
	h := handlers.New(accounts, trading, sessions, log)

	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(h.Recover), middleware.NoCache())
	router.SetFuncMap(handlers.FuncMap())
	router.LoadHTMLGlob("templates/*.html")

	// Public routes
	router.GET("/login", h.LoginForm)
	router.POST("/login", h.Login)
	router.GET("/logout", h.Logout)
	router.GET("/register", h.RegisterForm)
	router.POST("/register", h.Register)

	// Session-gated routes
	auth := router.Group("/")
	auth.Use(middleware.RequireLogin(sessions))
	{
		auth.GET("/", h.Index)
		auth.GET("/buy", h.BuyForm)
		auth.POST("/buy", h.Buy)
		auth.GET("/sell", h.SellForm)
		auth.POST("/sell", h.Sell)
		auth.GET("/quote", h.QuoteForm)
		auth.POST("/quote", h.Quote)
		auth.GET("/history", h.History)
	}
	router.NoRoute(h.NotFound)

	log.WithField("addr", cfg.ListenAddr).Info("listening")
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
