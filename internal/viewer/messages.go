package viewer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer/view"
)

// ThreadResult описывает итог одной загрузки переписки.
type ThreadResult struct {
	ChatID     domain.ChatID
	OwnSpeaker string
	Count      int
	// Stale выставляется, когда ответ отброшен, потому что уже выдан более новый запрос.
	Stale bool
}

// MessageLoader загружает и отрисовывает переписку выбранного чата.
type MessageLoader struct {
	backend      ports.Backend
	view         ports.ThreadView
	logger       *slog.Logger
	discardStale bool
	seq          atomic.Uint64
}

// MessageLoaderOption настраивает MessageLoader.
type MessageLoaderOption func(*MessageLoader)

// WithStaleGuard включает отбрасывание ответов на устаревшие запросы.
// По умолчанию побеждает тот ответ, который пришел последним.
func WithStaleGuard(enabled bool) MessageLoaderOption {
	return func(l *MessageLoader) {
		l.discardStale = enabled
	}
}

// NewMessageLoader создает загрузчик переписки.
func NewMessageLoader(backend ports.Backend, threadView ports.ThreadView, logger *slog.Logger, opts ...MessageLoaderOption) *MessageLoader {
	l := &MessageLoader{
		backend: backend,
		view:    threadView,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load загружает переписку чата id с отображаемым именем name.
// «Свой» отправитель вычисляется заново при каждом вызове и возвращается в результате.
func (l *MessageLoader) Load(ctx context.Context, id domain.ChatID, name string) ThreadResult {
	result := ThreadResult{ChatID: id}
	if !id.Valid() {
		l.view.ShowThread(view.InvalidThread())
		return result
	}

	token := l.seq.Add(1)
	logger := l.logger.With(slog.String("chat_id", id.String()), slog.Uint64("request", token))

	l.view.ShowHeader(view.Header{
		Title:  name,
		Avatar: view.Initial(name),
		Status: view.StatusLoading,
	})
	l.view.ShowThread(view.LoadingThread())

	messages, err := l.backend.GetThread(ctx, id)

	if l.discardStale && l.seq.Load() != token {
		logger.Debug("discarding stale thread response")
		result.Stale = true
		return result
	}

	if err != nil {
		logger.Error("failed to load messages", slog.String("error", err.Error()))
		l.view.ShowThread(view.FailedThread())
		l.view.ShowStatus(view.StatusError)
		return result
	}

	state, own := view.RenderThread(messages)
	l.view.ShowThread(state)
	if len(messages) == 0 {
		l.view.ShowStatus(view.StatusNoMessages)
		return result
	}

	l.view.ShowStatus(view.ThreadStatus(len(messages)))
	logger.Debug("thread loaded", slog.Int("count", len(messages)), slog.String("own_speaker", own))

	result.OwnSpeaker = own
	result.Count = len(messages)
	return result
}
