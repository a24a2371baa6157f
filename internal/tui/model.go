// Package tui — терминальный интерфейс просмотрщика на Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"chat-viewer/internal/viewer"
	"chat-viewer/internal/viewer/view"
)

const (
	sidebarWidth = 32
	headerHeight = 3
	footerHeight = 1
)

// Итоги фоновых команд.
type (
	selectDoneMsg struct{ result viewer.ThreadResult }
	uploadDoneMsg struct{ report viewer.UploadReport }
)

// Model — корневая модель интерфейса: список чатов слева, переписка справа.
type Model struct {
	ctx      context.Context
	chatList *viewer.ChatListLoader
	uploader *viewer.UploadCoordinator

	list   view.ChatListState
	cursor int
	header view.Header
	thread view.ThreadState
	own    string
	notice string

	viewport  viewport.Model
	input     textinput.Model
	inputOpen bool

	width  int
	height int
}

// New создает модель. Обновления областей приходят через Presenter, привязанный к программе.
func New(ctx context.Context, chatList *viewer.ChatListLoader, uploader *viewer.UploadCoordinator) *Model {
	ti := textinput.New()
	ti.Placeholder = "files to upload, separated by spaces"
	ti.Prompt = "upload> "

	return &Model{
		ctx:      ctx,
		chatList: chatList,
		uploader: uploader,
		list:     view.LoadingChatList(),
		viewport: viewport.New(),
		input:    ti,
	}
}

// Init запускает первую загрузку списка чатов.
func (m *Model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m *Model) reloadCmd() tea.Cmd {
	chatList, ctx := m.chatList, m.ctx
	return func() tea.Msg {
		chatList.Load(ctx)
		return nil
	}
}

func (m *Model) selectCmd(item view.ChatItem) tea.Cmd {
	chatList, ctx, state := m.chatList, m.ctx, m.list
	return func() tea.Msg {
		_, result := chatList.Select(ctx, state, item)
		return selectDoneMsg{result: result}
	}
}

func (m *Model) uploadCmd(paths []string) tea.Cmd {
	uploader, ctx := m.uploader, m.ctx
	return func() tea.Msg {
		return uploadDoneMsg{report: uploader.Upload(ctx, paths)}
	}
}

// Update обрабатывает сообщения
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case chatListMsg:
		m.list = msg.state
		m.syncCursor()
		return m, nil

	case headerMsg:
		m.header = msg.header
		m.own = ""
		return m, nil

	case statusMsg:
		m.header.Status = msg.status
		return m, nil

	case threadMsg:
		m.thread = msg.state
		m.renderThread()
		return m, nil

	case clearInputMsg:
		m.input.Reset()
		return m, nil

	case selectDoneMsg:
		if !msg.result.Stale {
			m.own = msg.result.OwnSpeaker
		}
		return m, nil

	case uploadDoneMsg:
		m.notice = uploadNotice(msg.report)
		return m, nil

	case tea.KeyPressMsg:
		if m.inputOpen {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.list.Items)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor >= len(m.list.Items) {
			return m, nil
		}
		return m, m.selectCmd(m.list.Items[m.cursor])
	case "r":
		m.notice = ""
		return m, m.reloadCmd()
	case "u":
		m.inputOpen = true
		m.notice = ""
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputOpen = false
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case "enter":
		m.inputOpen = false
		m.input.Blur()
		paths := strings.Fields(m.input.Value())
		if len(paths) == 0 {
			return m, nil
		}
		return m, m.uploadCmd(paths)
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// syncCursor ставит курсор на активный чат, а без него удерживает в границах списка.
func (m *Model) syncCursor() {
	for i, item := range m.list.Items {
		if m.list.IsActive(item) {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.list.Items) {
		m.cursor = max(len(m.list.Items)-1, 0)
	}
}

func (m *Model) resize() {
	threadWidth := max(m.width-sidebarWidth, 20)
	m.viewport.SetWidth(threadWidth - 2)
	m.viewport.SetHeight(max(m.height-headerHeight-footerHeight-2, 1))
	m.input.SetWidth(max(m.width-len(m.input.Prompt)-1, 10))
	m.renderThread()
}

func (m *Model) renderThread() {
	m.viewport.SetContent(renderMessages(m.thread, m.viewport.Width()))
	if m.thread.ScrollToBottom {
		m.viewport.GotoBottom()
	} else {
		m.viewport.GotoTop()
	}
}

// View отрисовывает интерфейс
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent(view.TextLoadingChats)
		return v
	}

	bodyHeight := m.height - footerHeight - 2
	sidebar := panelStyle.
		Width(sidebarWidth - 2).
		Height(bodyHeight).
		Render(renderChatList(m.list, m.cursor, sidebarWidth-2))
	thread := panelStyle.
		Width(m.width - sidebarWidth - 2).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, renderHeader(m.header, m.own), m.viewport.View()))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, thread)
	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, body, m.footer()))
	return v
}

func (m *Model) footer() string {
	if m.inputOpen {
		return m.input.View()
	}
	if m.notice != "" {
		return mutedStyle.Render(m.notice)
	}
	keys := []struct{ key, desc string }{
		{"↑/↓", "move"},
		{"enter", "open"},
		{"u", "upload"},
		{"r", "reload"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k.key)+" "+mutedStyle.Render(k.desc))
	}
	return strings.Join(parts, "  ")
}

func uploadNotice(report viewer.UploadReport) string {
	if report.Attempted == 0 {
		return ""
	}
	if report.Failed == 0 {
		return fmt.Sprintf("Uploaded %d file(s)", report.Attempted)
	}
	return fmt.Sprintf("Uploaded %d of %d file(s), %d failed", report.Attempted-report.Failed, report.Attempted, report.Failed)
}
