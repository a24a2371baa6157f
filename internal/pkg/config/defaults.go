package config

import "time"

// Default values for configuration.
const (
	// Backend defaults
	DefaultBackendURL  = "http://127.0.0.1:5000"
	DefaultHTTPTimeout = 0 * time.Second

	// Viewer defaults
	DefaultDiscardStaleThreads = false

	// Dev backend defaults
	DefaultDevBackendHost            = "127.0.0.1"
	DefaultDevBackendPort            = 5000
	DefaultDevBackendShutdownTimeout = 10 * time.Second
	DefaultDevBackendMaxUploadSizeMB = 10
	DefaultDevBackendPIDFile         = "devbackend.pid"
	DefaultDevBackendLogFile         = "devbackend.log"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogFile   = "chat-viewer.log"

	DefaultConfigFile = "config.yml"
)

// DefaultAllowedOrigins — источники, с которых браузерный клиент может обращаться к dev-бэкенду.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}
