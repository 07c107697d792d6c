package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dbadapter "taskmanager/internal/adapter/db"
	"taskmanager/internal/config"
	"taskmanager/internal/logging"
	"taskmanager/pkg/translator"
)

// app holds what every command needs: configuration, the global logger and
// an open store with its schema in place.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *dbadapter.Store
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	if err := translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}); err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	store, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	logger.Info("store ready", zap.String("dialect", store.DialectName()), zap.Bool("full_text_search", store.FullTextSearch()))

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", zap.Error(err))
	}
	if err := a.logger.Sync(); err != nil {
		a.logger.Debug("failed to sync logger", zap.Error(err))
	}
}
