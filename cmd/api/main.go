package main

import (
	"net/http"
	"os"
	"time"

	_ "jusho-client/docs"
	"jusho-client/internal/client"
	"jusho-client/internal/config"
	"jusho-client/internal/handler"
	"jusho-client/internal/logging"
	"jusho-client/internal/middleware"
	"jusho-client/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := logging.Setup(config.LogLevel, os.Stderr)

	headers, err := config.HeaderMap()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse headers")
	}

	// Upstream client
	jusho := client.New(client.Options{
		BaseURL: config.APIURL,
		Timeout: config.Timeout(),
		Headers: headers,
		Logger:  &logger,
	})

	// Initialize layers
	addressService := service.NewAddressService(jusho, logger)
	lookupService := service.NewLookupService(jusho)

	normalizeHandler := handler.NewNormalizeHandler(addressService)
	lookupHandler := handler.NewLookupHandler(lookupService)

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)
	limiter := middleware.NewClientLimiter(config.RateLimitRPS, config.RateLimitBurst, 10*time.Minute)

	r := gin.Default()
	r.Use(metrics.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/", middleware.RateLimit(limiter))
	api.POST("/normalize", normalizeHandler.Normalize)
	api.POST("/normalize/batch", normalizeHandler.NormalizeBatch)
	api.GET("/validate", normalizeHandler.Validate)
	api.GET("/suggest", normalizeHandler.Suggest)
	api.GET("/postal/:code", lookupHandler.Postal)
	api.GET("/reverse", lookupHandler.Reverse)

	log.Info().Str("upstream", jusho.BaseURL()).Str("addr", config.ServerAddress).Msg("starting gateway")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
