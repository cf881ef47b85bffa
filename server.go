package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smartcollege/registrar/api"
	"github.com/smartcollege/registrar/internal/admin"
	"github.com/smartcollege/registrar/internal/config"
	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/grade"
	"github.com/smartcollege/registrar/internal/registrar"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config.Load error: %v", err)
	}

	zapLogger, err := newLogger(cfg.Dev)
	if err != nil {
		log.Fatalf("zap.Build error: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.NewMongoDB(ctx, cfg.DBName, cfg.DBURL)
	if err != nil {
		logger.Fatalw("db.NewMongoDB error", "error", err)
	}

	admins, err := admin.NewRepository(ctx, database)
	if err != nil {
		logger.Fatalw("admin.NewRepository error", "error", err)
	}

	students, err := student.NewRepository(ctx, database)
	if err != nil {
		logger.Fatalw("student.NewRepository error", "error", err)
	}

	teachers, err := teacher.NewRepository(ctx, database)
	if err != nil {
		logger.Fatalw("teacher.NewRepository error", "error", err)
	}

	courses, err := course.NewRepository(ctx, database)
	if err != nil {
		logger.Fatalw("course.NewRepository error", "error", err)
	}

	grades, err := grade.NewRepository(ctx, database)
	if err != nil {
		logger.Fatalw("grade.NewRepository error", "error", err)
	}

	reg := registrar.New(students, teachers, courses, grades)

	server, err := api.NewServer(logger, reg, admins, students, teachers)
	if err != nil {
		logger.Fatalw("api.NewServer error", "error", err)
	}

	// Ensure graceful shutdown by capturing SIGINT and SIGTERM signals.
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdownChan
		cancel()

		dbShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := db.ShutdownMongoDB(dbShutdownCtx, database)
		if err != nil {
			logger.Fatalw("db.ShutdownMongoDB error", "error", err)
		}
	}()

	logger.Infow("registrar started", "port", cfg.Port, "db", cfg.DBName)

	err = http.ListenAndServe(":"+cfg.Port, server.Handler())
	if err != nil && err != http.ErrServerClosed {
		logger.Errorw("server shutdown error", "error", err)
	} else {
		logger.Info("server shutdown successfully")
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
