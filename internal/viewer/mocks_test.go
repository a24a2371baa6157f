package viewer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/viewer/view"
)

// mockBackend — мок для ports.Backend с журналом вызовов.
type mockBackend struct {
	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int

	uploadFunc func(ctx context.Context, file domain.UploadFile) error
	listFunc   func(ctx context.Context) ([]domain.Chat, error)
	threadFunc func(ctx context.Context, id domain.ChatID) ([]domain.Message, error)
}

func (m *mockBackend) enter(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
}

func (m *mockBackend) leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}

func (m *mockBackend) Upload(ctx context.Context, file domain.UploadFile) error {
	m.enter("upload:" + file.Name)
	defer m.leave()
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, file)
	}
	return nil
}

func (m *mockBackend) ListChats(ctx context.Context) ([]domain.Chat, error) {
	m.enter("chats")
	defer m.leave()
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockBackend) GetThread(ctx context.Context, id domain.ChatID) ([]domain.Message, error) {
	m.enter("thread:" + id.String())
	defer m.leave()
	if m.threadFunc != nil {
		return m.threadFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// recordingView запоминает все обновления областей в порядке поступления.
type recordingView struct {
	mu      sync.Mutex
	events  []string
	lists   []view.ChatListState
	headers []view.Header
	threads []view.ThreadState
	status  string
	cleared int
}

func (v *recordingView) ShowChatList(state view.ChatListState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "list")
	v.lists = append(v.lists, state)
}

func (v *recordingView) ShowHeader(header view.Header) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "header")
	v.headers = append(v.headers, header)
	v.status = header.Status
}

func (v *recordingView) ShowStatus(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "status")
	v.status = status
}

func (v *recordingView) ShowThread(state view.ThreadState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "thread")
	v.threads = append(v.threads, state)
}

func (v *recordingView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "clear")
	v.cleared++
}

func (v *recordingView) Events() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.events...)
}

func (v *recordingView) LastList() view.ChatListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lists[len(v.lists)-1]
}

func (v *recordingView) LastThread() view.ThreadState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.threads[len(v.threads)-1]
}

func (v *recordingView) LastHeader() view.Header {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.headers[len(v.headers)-1]
}

func (v *recordingView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// stubSource отдает содержимое файлов из памяти.
type stubSource struct {
	files map[string]string
}

func (s *stubSource) Open(path string) (domain.UploadFile, func() error, error) {
	content, ok := s.files[path]
	if !ok {
		return domain.UploadFile{}, nil, fmt.Errorf("file %s not found", path)
	}
	return domain.UploadFile{Name: path, Content: strings.NewReader(content)}, func() error { return nil }, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
