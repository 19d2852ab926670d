package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gmw "github.com/Laisky/gin-middlewares/v6"
	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/modelgate/modelgate/common"
	"github.com/modelgate/modelgate/common/config"
	"github.com/modelgate/modelgate/common/graceful"
	"github.com/modelgate/modelgate/common/logger"
	"github.com/modelgate/modelgate/controller"
	"github.com/modelgate/modelgate/engine"
	"github.com/modelgate/modelgate/middleware"
	"github.com/modelgate/modelgate/router"
)

func main() {
	common.Init()
	logger.SetupLogger()

	logger.Logger.Info("modelgate started",
		zap.String("model", config.ModelName),
		zap.String("template", config.PromptTemplate),
		zap.String("engine", config.EngineBaseURL))

	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	} else if !config.DebugEnabled {
		gin.SetMode(gin.ReleaseMode)
	}

	// One engine instance, serialized: the backing generation server runs a
	// single model and cannot interleave requests.
	eng := engine.NewSerialized(engine.NewHTTPEngine(engine.HTTPEngineOptions{
		BaseURL:      config.EngineBaseURL,
		APIKey:       config.EngineAPIKey,
		Timeout:      config.EngineTimeout,
		NativeStop:   config.EngineNativeStop,
		StreamBuffer: config.StreamChannelBuffer,
	}))
	controller.Setup(eng)

	logLevel := glog.LevelInfo
	if config.DebugEnabled {
		logLevel = glog.LevelDebug
	}

	server := gin.New()
	server.RedirectTrailingSlash = false
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(logLevel.String()),
			gmw.WithLogger(logger.Logger.Named("gin")),
		),
	)
	// This will cause SSE not to work!!!
	//server.Use(gzip.Gzip(gzip.DefaultCompression))
	server.Use(middleware.RequestId())
	server.Use(cors.Default())

	if config.EnablePrometheusMetrics {
		server.Use(middleware.Prometheus())
		server.GET("/metrics", gin.WrapH(promhttp.Handler()))
		logger.Logger.Info("Prometheus metrics endpoint available at /metrics")
	}

	router.SetRouter(server)

	port := config.ServerPort
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server,
	}
	go func() {
		logger.Logger.Info("server started", zap.String("address", "http://localhost:"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	graceful.SetDraining()
	logger.Logger.Info("shutting down", zap.Int("timeout_sec", config.ShutdownTimeoutSec))

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(config.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("server shutdown", zap.Error(err))
	}
	if err := graceful.Drain(ctx); err != nil {
		logger.Logger.Error("drain detached tasks", zap.Error(err))
	}
	logger.Logger.Info("server exited")
}
