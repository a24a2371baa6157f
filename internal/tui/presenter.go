package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"chat-viewer/internal/viewer/view"
)

// Сообщения, которыми загрузчики обновляют модель.
type (
	chatListMsg   struct{ state view.ChatListState }
	headerMsg     struct{ header view.Header }
	statusMsg     struct{ status string }
	threadMsg     struct{ state view.ThreadState }
	clearInputMsg struct{}
)

// Presenter реализует порты отображения и пересылает обновления в программу Bubble Tea.
// Загрузчики вызывают его из своих горутин, а модель применяет обновления в Update.
type Presenter struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewPresenter создает презентер. До вызова Bind обновления отбрасываются.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Bind подключает функцию доставки сообщений, обычно (*tea.Program).Send.
func (p *Presenter) Bind(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

func (p *Presenter) dispatch(msg tea.Msg) {
	p.mu.RLock()
	send := p.send
	p.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

// ShowChatList реализует ports.ChatListView
func (p *Presenter) ShowChatList(state view.ChatListState) {
	p.dispatch(chatListMsg{state: state})
}

// ShowHeader реализует ports.ThreadView
func (p *Presenter) ShowHeader(header view.Header) {
	p.dispatch(headerMsg{header: header})
}

// ShowStatus реализует ports.ThreadView
func (p *Presenter) ShowStatus(status string) {
	p.dispatch(statusMsg{status: status})
}

// ShowThread реализует ports.ThreadView
func (p *Presenter) ShowThread(state view.ThreadState) {
	p.dispatch(threadMsg{state: state})
}

// Clear реализует ports.FileInput
func (p *Presenter) Clear() {
	p.dispatch(clearInputMsg{})
}
