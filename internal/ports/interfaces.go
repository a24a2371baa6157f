package ports

import (
	"context"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/viewer/view"
)

// Backend определяет три операции бэкенда, которые использует просмотрщик.
type Backend interface {
	// Upload отправляет один файл экспорта. Тело ответа не анализируется.
	Upload(ctx context.Context, file domain.UploadFile) error
	// ListChats возвращает список чатов; nil без ошибки означает «нет данных».
	ListChats(ctx context.Context) ([]domain.Chat, error)
	// GetThread возвращает сообщения чата в порядке бэкенда; nil без ошибки — «нет сообщений».
	GetThread(ctx context.Context, id domain.ChatID) ([]domain.Message, error)
}

// ChatListView — область со списком чатов.
type ChatListView interface {
	ShowChatList(state view.ChatListState)
}

// ThreadView — заголовок и область сообщений выбранного чата.
type ThreadView interface {
	ShowHeader(header view.Header)
	ShowStatus(status string)
	ShowThread(state view.ThreadState)
}

// FileInput — поле выбора файлов, которое очищается после загрузки пачки.
type FileInput interface {
	Clear()
}

// FileSource открывает локальный файл для загрузки.
type FileSource interface {
	Open(path string) (domain.UploadFile, func() error, error)
}

// ThreadExporter сохраняет отрисованную переписку во внешний формат.
type ThreadExporter interface {
	Export(header view.Header, state view.ThreadState) error
}
