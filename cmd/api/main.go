package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/slotline/booking-api/internal/changefeed"
	"github.com/slotline/booking-api/internal/config"
	dbpkg "github.com/slotline/booking-api/internal/db"
	"github.com/slotline/booking-api/internal/middleware"
	"github.com/slotline/booking-api/internal/routes"
)

func newLogger(env string) *zap.Logger {
	var zcfg zap.Config

	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zcfg.OutputPaths = []string{"stdout"}

	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	return logger
}

func newFeed(cfg *config.Config, logger *zap.Logger) changefeed.Feed {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, falling back to in-process feed", zap.Error(err))
		return changefeed.NewMemoryFeed(logger)
	}

	return changefeed.NewRedisFeed(redis.NewClient(opts), logger)
}

func main() {

	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)
	feed := newFeed(cfg, logger)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, feed, logger)

	logger.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
