package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdnotes/mdnotes/config"
	"mdnotes/mdnotes/controllers"
	"mdnotes/mdnotes/routes"
	"mdnotes/mdnotes/services/markdown"
	"mdnotes/mdnotes/sources/db"
	"mdnotes/mdnotes/sources/db/dao"
	"mdnotes/mdnotes/utils/logging"
	"mdnotes/mdnotes/views"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	database, err := db.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	sqlDB, err := database.DB.DB()
	if err != nil {
		logging.ErrorLogger.Error("database handle error", zap.Error(err))
		os.Exit(1)
	}
	pages, err := views.NewPages()
	if err != nil {
		logging.ErrorLogger.Error("template error", zap.Error(err))
		os.Exit(1)
	}

	noteDAO := dao.NewNoteDAO(database.DB, cfg.DBTimeout)
	notesCtrl := controllers.NewNotesController(noteDAO, markdown.NewRenderer())
	healthCtrl := controllers.NewHealthController(sqlDB)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           routes.NewRouter(notesCtrl, healthCtrl, pages, cfg.URLPrefix),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.ServerAddr), zap.String("prefix", cfg.URLPrefix))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
