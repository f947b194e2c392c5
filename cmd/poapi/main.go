package main

import (
	"context"
	"fmt"

	"github.com/akozadaev/po-api/internal/adapter/config"
	"github.com/akozadaev/po-api/internal/adapter/handler/http"
	"github.com/akozadaev/po-api/internal/adapter/logger"
	"github.com/akozadaev/po-api/internal/adapter/metrics"
	"github.com/akozadaev/po-api/internal/adapter/storage"
	"github.com/akozadaev/po-api/internal/adapter/storage/repository"
	"github.com/akozadaev/po-api/internal/core/port"
	"github.com/akozadaev/po-api/internal/core/service"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	categoryHandler, err := http.NewCategoryHandler(svc, log.Named("Category handler"))
	if err != nil {
		log.Error("category handler creating error", zap.Error(err))
		return
	}

	serverMetrics := metrics.NewServerMetrics("api")

	r, err := http.NewRouter(conf.HTTP, port.AllowAll{}, serverMetrics,
		orderHandler, categoryHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
