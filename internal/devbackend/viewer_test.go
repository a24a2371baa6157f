package devbackend

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"chat-viewer/internal/adapters/exporter"
	"chat-viewer/internal/adapters/source"
	"chat-viewer/internal/backend"
	"chat-viewer/internal/domain"
	"chat-viewer/internal/viewer"
	"chat-viewer/internal/viewer/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Полный путь просмотрщика через настоящий HTTP: загрузка, список, переписка.
func TestViewerAgainstDevBackend(t *testing.T) {
	srv, store := newTestServer(t)
	ts := httptest.NewServer(srv.HTTPServer.Handler)
	defer ts.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := backend.NewClient(ts.URL, backend.WithLogger(logger))

	var out bytes.Buffer
	console := exporter.NewConsoleRenderer(&out)
	capture := &exporter.ThreadCapture{}
	messages := viewer.NewMessageLoader(client, exporter.TeeThreadView(console, capture), logger)
	chatList := viewer.NewChatListLoader(client, console, messages, logger)
	files := source.NewMemorySource(map[string][]byte{
		"familia.json": []byte(`[
			{"usuario":"Ana","fecha":"01/02/2024","hora":"10:00","mensaje":"hola"},
			{"usuario":"Ana","fecha":"01/02/2024","hora":"10:01","mensaje":"¿estás?"},
			{"usuario":"Beto","fecha":"01/02/2024","hora":"10:02","mensaje":"sí"}
		]`),
		"notes.txt": []byte("not a thread"),
	})
	uploader := viewer.NewUploadCoordinator(client, files, console, console, chatList, logger)

	ctx := context.Background()

	initial := chatList.Load(ctx)
	assert.Equal(t, view.PlaceholderEmpty, initial.Placeholder.Kind)

	report := uploader.Upload(ctx, []string{"familia.json", "notes.txt"})
	assert.Zero(t, report.Failed)
	require.Len(t, report.List.Items, 2)
	assert.Len(t, store.Chats(), 2)

	item := report.List.Items[0]
	assert.Equal(t, "familia", item.Name)
	assert.Equal(t, "F", item.Initial)

	state, result := chatList.Select(ctx, report.List, item)
	assert.True(t, state.IsActive(item))
	assert.Equal(t, "Ana", result.OwnSpeaker)
	assert.Equal(t, 3, result.Count)

	header, thread := capture.Snapshot()
	assert.Equal(t, "3 messages", header.Status)
	require.Len(t, thread.Messages, 3)
	assert.True(t, thread.Messages[1].Own)
	assert.False(t, thread.Messages[2].Own)
	assert.Equal(t, "01/02/2024 10:02", thread.Messages[2].Timestamp)

	_, result = chatList.Select(ctx, state, report.List.Items[1])
	assert.Zero(t, result.Count)
	header, thread = capture.Snapshot()
	assert.Equal(t, view.StatusNoMessages, header.Status)
	assert.Equal(t, view.PlaceholderEmpty, thread.Placeholder.Kind)

	// Неизвестный чат: бэкенд отвечает объектом, а не массивом
	result = messages.Load(ctx, domain.NewChatID("missing"), "Ghost")
	assert.Zero(t, result.Count)
	header, _ = capture.Snapshot()
	assert.Equal(t, view.StatusNoMessages, header.Status)

	assert.Contains(t, out.String(), "familia")
}
