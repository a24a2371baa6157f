// Package viewer содержит загрузчики просмотрщика: загрузку файлов, список чатов
// и переписку. Загрузчики строят модели представления и передают их в порты отображения.
package viewer

import (
	"context"
	"log/slog"

	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer/view"
)

// ChatListLoader загружает список чатов и связывает выбор чата с MessageLoader.
type ChatListLoader struct {
	backend  ports.Backend
	view     ports.ChatListView
	messages *MessageLoader
	logger   *slog.Logger
}

// NewChatListLoader создает загрузчик списка чатов.
func NewChatListLoader(backend ports.Backend, listView ports.ChatListView, messages *MessageLoader, logger *slog.Logger) *ChatListLoader {
	return &ChatListLoader{
		backend:  backend,
		view:     listView,
		messages: messages,
		logger:   logger,
	}
}

// Load полностью перестраивает список. Предыдущее содержимое и выбор отбрасываются.
func (l *ChatListLoader) Load(ctx context.Context) view.ChatListState {
	l.view.ShowChatList(view.LoadingChatList())

	chats, err := l.backend.ListChats(ctx)
	if err != nil {
		l.logger.Error("failed to load chats", slog.String("error", err.Error()))
		state := view.UnreachableChatList()
		l.view.ShowChatList(state)
		return state
	}

	state := view.RenderChatList(chats)
	l.view.ShowChatList(state)
	l.logger.Debug("chat list loaded", slog.Int("count", len(state.Items)))
	return state
}

// Select делает item единственным активным элементом state и загружает его переписку.
// Загрузки, начатые предыдущими вызовами, не отменяются.
func (l *ChatListLoader) Select(ctx context.Context, state view.ChatListState, item view.ChatItem) (view.ChatListState, ThreadResult) {
	next := state.Activate(item.ID)
	l.view.ShowChatList(next)
	return next, l.messages.Load(ctx, item.ID, item.Name)
}
