// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Backend содержит адрес бэкенда, который разбирает и хранит чаты
type Backend struct {
	URL string `yaml:"url"`
	// HTTPTimeout — общий таймаут запроса; 0 означает отсутствие таймаута
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

// Viewer содержит настройки поведения просмотрщика
type Viewer struct {
	// DiscardStaleThreads включает отбрасывание ответов на устаревшие запросы переписки
	DiscardStaleThreads bool `yaml:"discard_stale_threads"`
}

// DevBackend содержит конфигурацию встроенного dev-бэкенда
type DevBackend struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	SeedFile        string        `yaml:"seed_file"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadSizeMB int           `yaml:"max_upload_size_mb"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	PIDFile         string        `yaml:"pid_file"`
	LogFile         string        `yaml:"log_file"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	File   string `yaml:"file"`   // файл журнала интерактивного режима
}

// Config содержит конфигурацию приложения
type Config struct {
	Backend    Backend    `yaml:"backend"`
	Viewer     Viewer     `yaml:"viewer"`
	DevBackend DevBackend `yaml:"devbackend"`
	Logging    Logging    `yaml:"logging"`
}

// defaultConfig возвращает конфигурацию со значениями по умолчанию
func defaultConfig() *Config {
	return &Config{
		Backend: Backend{
			URL:         DefaultBackendURL,
			HTTPTimeout: DefaultHTTPTimeout,
		},
		Viewer: Viewer{
			DiscardStaleThreads: DefaultDiscardStaleThreads,
		},
		DevBackend: DevBackend{
			Host:            DefaultDevBackendHost,
			Port:            DefaultDevBackendPort,
			ShutdownTimeout: DefaultDevBackendShutdownTimeout,
			MaxUploadSizeMB: DefaultDevBackendMaxUploadSizeMB,
			AllowedOrigins:  append([]string(nil), DefaultAllowedOrigins...),
			PIDFile:         DefaultDevBackendPIDFile,
			LogFile:         DefaultDevBackendLogFile,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   DefaultLogFile,
		},
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем YAML-файл
// (если существует), затем переменные окружения, в том числе из .env
func LoadConfig(filename string) (*Config, error) {
	// .env необязателен: без него используются переменные окружения и YAML
	_ = godotenv.Load()

	if filename == "" {
		filename = DefaultConfigFile
	}

	cfg := defaultConfig()
	if err := loadFromYAML(filename, cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию из env: %w", err)
	}

	return cfg, nil
}

// loadFromYAML накладывает значения из YAML-файла на cfg.
// Отсутствие файла ошибкой не считается.
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("не удалось разобрать YAML конфигурацию: %w", err)
	}

	return nil
}

// applyEnv накладывает переменные окружения на cfg
func applyEnv(cfg *Config) error {
	cfg.Backend.URL = getEnv("VIEWER_BACKEND_URL", cfg.Backend.URL)
	cfg.Logging.Level = getEnv("VIEWER_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("VIEWER_LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.File = getEnv("VIEWER_LOG_FILE", cfg.Logging.File)
	cfg.DevBackend.Host = getEnv("DEVBACKEND_HOST", cfg.DevBackend.Host)

	if portStr := os.Getenv("DEVBACKEND_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("недопустимый DEVBACKEND_PORT: %w", err)
		}
		cfg.DevBackend.Port = port
	}

	if staleStr := os.Getenv("VIEWER_DISCARD_STALE_THREADS"); staleStr != "" {
		stale, err := strconv.ParseBool(staleStr)
		if err != nil {
			return fmt.Errorf("недопустимый VIEWER_DISCARD_STALE_THREADS: %w", err)
		}
		cfg.Viewer.DiscardStaleThreads = stale
	}

	return nil
}

// Address возвращает адрес dev-бэкенда в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.DevBackend.Host, c.DevBackend.Port)
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("backend.url должен быть абсолютным http(s) адресом")
	}

	if c.Backend.HTTPTimeout < 0 {
		return fmt.Errorf("backend.http_timeout должно быть неотрицательным (0 для отсутствия ограничений)")
	}

	if c.DevBackend.Port <= 0 || c.DevBackend.Port > 65535 {
		return fmt.Errorf("devbackend.port должен быть действительным номером порта (1-65535)")
	}

	if c.DevBackend.ShutdownTimeout <= 0 {
		return fmt.Errorf("devbackend.shutdown_timeout должно быть положительным")
	}

	if c.DevBackend.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("devbackend.max_upload_size_mb должно быть положительным")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level должен быть одним из: debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format должен быть одним из: text, json")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
