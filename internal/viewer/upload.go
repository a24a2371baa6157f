package viewer

import (
	"context"
	"log/slog"

	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer/view"
)

// UploadReport — итог загрузки пачки файлов.
type UploadReport struct {
	Attempted int
	Failed    int
	List      view.ChatListState
}

// UploadCoordinator отправляет выбранные файлы по одному и затем обновляет список чатов.
type UploadCoordinator struct {
	backend  ports.Backend
	source   ports.FileSource
	listView ports.ChatListView
	input    ports.FileInput
	chatList *ChatListLoader
	logger   *slog.Logger
}

// NewUploadCoordinator создает координатор загрузки.
func NewUploadCoordinator(
	backend ports.Backend,
	source ports.FileSource,
	listView ports.ChatListView,
	input ports.FileInput,
	chatList *ChatListLoader,
	logger *slog.Logger,
) *UploadCoordinator {
	return &UploadCoordinator{
		backend:  backend,
		source:   source,
		listView: listView,
		input:    input,
		chatList: chatList,
		logger:   logger,
	}
}

// Upload отправляет файлы paths строго последовательно: следующий запрос начинается
// только после ответа на предыдущий. Ошибка одного файла не прерывает пачку.
// После пачки поле выбора очищается и список чатов перезагружается.
// Пустой выбор ничего не делает.
func (u *UploadCoordinator) Upload(ctx context.Context, paths []string) UploadReport {
	if len(paths) == 0 {
		return UploadReport{}
	}

	report := UploadReport{Attempted: len(paths)}
	u.listView.ShowChatList(view.UploadingChatList(len(paths)))

	for _, path := range paths {
		if err := u.uploadOne(ctx, path); err != nil {
			report.Failed++
			u.logger.Warn("upload failed", slog.String("path", path), slog.String("error", err.Error()))
		}
	}

	u.input.Clear()
	report.List = u.chatList.Load(ctx)
	return report
}

func (u *UploadCoordinator) uploadOne(ctx context.Context, path string) error {
	file, closeFn, err := u.source.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			u.logger.Warn("failed to close file", slog.String("path", path), slog.String("error", err.Error()))
		}
	}()

	return u.backend.Upload(ctx, file)
}
