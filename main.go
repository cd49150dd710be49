package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttlesched/config"
	"shuttlesched/database/repository/cache"
	"shuttlesched/database/repository/task"
	"shuttlesched/httpapi"
	"shuttlesched/routes"
	"shuttlesched/services/dispatcher"
	"shuttlesched/services/directions"
	"shuttlesched/services/scheduler"
	"shuttlesched/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()

	cacheClient, cacheMongoClient, err := cache.New(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cache: %v", err)
	}

	taskStore, taskMongoClient, err := task.New(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize task store: %v", err)
	}

	utils.StartHealthMonitor(taskMongoClient, cacheMongoClient)

	directionsClient := directions.New(cfg.GoogleAPIToken, cacheClient, logger)

	schedulerDefaults := scheduler.Config{
		BeforePickup:     cfg.BeforePickup(),
		AfterPickup:      cfg.AfterPickup(),
		DropoffUnloading: cfg.DropoffUnloading(),
	}
	sched := scheduler.New(directionsClient, schedulerDefaults, logger)

	disp := dispatcher.New(
		taskStore,
		sched,
		cfg.ProcessorInterval(),
		cfg.ProcessorBatchSize,
		cfg.ProcessorThreadNumber,
		cfg.TaskReclaimAfter(),
		logger,
	)
	disp.Start(ctx)

	bundle := httpapi.NewBundle(sched, taskStore, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, bundle, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	disp.Stop()

	logger.Sugar().Info("main: server stopped gracefully")
}
