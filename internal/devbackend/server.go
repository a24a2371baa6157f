package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/pkg/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Server представляет HTTP-сервер dev-бэкенда
type Server struct {
	HTTPServer *http.Server
	store      *Store
	logger     *slog.Logger
}

// New создает новый экземпляр Server
func New(cfg *config.Config, store *Store, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
	}

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.routes(cfg.DevBackend),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes(cfg config.DevBackend) http.Handler {
	r := chi.NewRouter()

	// Промежуточное ПО
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	maxUpload := int64(cfg.MaxUploadSizeMB) << 20
	r.Post("/procesar", s.handleUpload(maxUpload))
	r.Get("/chats", s.handleChats)
	r.Get("/mensajes/{chatID}", s.handleMessages)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// handleUpload принимает файл из поля формы "file". Файл, содержащий JSON-массив
// сообщений, становится перепиской чата; любой другой файл дает чат без сообщений.
func (s *Server) handleUpload(maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			http.Error(w, "could not parse form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing form field \"file\"", http.StatusBadRequest)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "could not read uploaded file", http.StatusInternalServerError)
			return
		}

		messages := decodeMessages(content)
		chat, created := s.store.Import(chatName(header.Filename), content, messages)

		s.logger.Info("chat imported",
			slog.String("chat_id", chat.ID.String()),
			slog.String("filename", header.Filename),
			slog.Int("messages", len(messages)),
			slog.Bool("created", created),
		)

		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"chat_id": chat.ID,
		})
	}
}

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Chats())
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	messages, err := s.store.Messages(chatID)
	if errors.Is(err, ErrChatNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Chat no encontrado"})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down dev backend")
	return s.HTTPServer.Shutdown(ctx)
}

func decodeMessages(content []byte) []domain.Message {
	var messages []domain.Message
	if err := json.Unmarshal(content, &messages); err != nil {
		return nil
	}
	return messages
}

// chatName строит имя чата из имени файла без каталога и расширения
func chatName(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return base
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
