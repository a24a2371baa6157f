package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"chat-viewer/internal/adapters/source"
	"chat-viewer/internal/backend"
	applog "chat-viewer/internal/log"
	"chat-viewer/internal/pkg/config"
	"chat-viewer/internal/pkg/term"
	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer"
)

// options — глобальные флаги командной строки
type options struct {
	configFile string
	backendURL string
}

// app содержит общие зависимости команд
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *backend.Client
	terminal *term.Terminal
	closeLog func() error
}

// newApp загружает конфигурацию и создает клиент бэкенда.
// Интерактивный режим пишет журнал в файл, чтобы не портить экран.
func newApp(opts *options, logToFile bool) (*app, error) {
	// 1. Загрузка и валидация конфигурации
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.backendURL != "" {
		cfg.Backend.URL = opts.backendURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 2. Инициализация логгера
	var (
		out      io.Writer = os.Stderr
		closeLog           = func() error { return nil }
	)
	if logToFile && cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closeLog = f, f.Close
	}
	logger := applog.New(out, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	// 3. Клиент бэкенда
	client := backend.NewClient(cfg.Backend.URL,
		backend.WithTimeout(cfg.Backend.HTTPTimeout),
		backend.WithLogger(logger),
	)
	logger.Debug("backend configured", slog.String("url", cfg.Backend.URL))

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		terminal: term.NewTerminal(),
		closeLog: closeLog,
	}, nil
}

// loaders собирает загрузчики просмотрщика поверх переданных областей отображения
func (a *app) loaders(listView ports.ChatListView, threadView ports.ThreadView, input ports.FileInput) (*viewer.ChatListLoader, *viewer.MessageLoader, *viewer.UploadCoordinator) {
	messages := viewer.NewMessageLoader(a.client, threadView, a.logger,
		viewer.WithStaleGuard(a.cfg.Viewer.DiscardStaleThreads),
	)
	chatList := viewer.NewChatListLoader(a.client, listView, messages, a.logger)
	uploader := viewer.NewUploadCoordinator(a.client, source.NewCliSource(), listView, input, chatList, a.logger)
	return chatList, messages, uploader
}

func (a *app) Close() {
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}
