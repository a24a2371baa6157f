// Package view содержит модели представления просмотрщика и чистые функции,
// которые строят их из ответов бэкенда. Пакет не зависит от способа отрисовки.
package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"chat-viewer/internal/domain"
)

// PlaceholderKind — тип заглушки, показываемой вместо содержимого.
type PlaceholderKind int

const (
	PlaceholderNone PlaceholderKind = iota
	PlaceholderLoading
	PlaceholderEmpty
	PlaceholderError
	PlaceholderInvalid
)

// Тексты заглушек и статусов.
const (
	TextLoadingChats   = "Loading chats..."
	TextNoChats        = "No chats loaded"
	TextCannotConnect  = "Could not connect to the backend"
	TextInvalidChat    = "Invalid chat"
	TextLoadingThread  = "Loading messages..."
	TextNoMessages     = "No messages in this chat"
	TextThreadError    = "Error loading messages"
	StatusLoading      = "Loading..."
	StatusNoMessages   = "No messages"
	StatusError        = "Error"
	initialPlaceholder = "?"
)

// Placeholder — статическое состояние области (загрузка, пусто, ошибка).
type Placeholder struct {
	Kind PlaceholderKind
	Text string
}

// Visible сообщает, занимает ли заглушка область вместо данных.
func (p Placeholder) Visible() bool {
	return p.Kind != PlaceholderNone
}

// ChatItem — одна строка списка чатов.
type ChatItem struct {
	ID         domain.ChatID
	Initial    string
	Name       string
	UploadDate string
}

// ChatListState — полное содержимое области списка чатов.
// Active хранит выбранный чат; других мест, где живет выбор, нет.
type ChatListState struct {
	Placeholder Placeholder
	Items       []ChatItem
	Active      domain.ChatID
}

// IsActive сообщает, отмечен ли элемент как активный.
func (s ChatListState) IsActive(item ChatItem) bool {
	return s.Active.Valid() && s.Active == item.ID
}

// Activate возвращает копию состояния, в которой активен только чат id.
func (s ChatListState) Activate(id domain.ChatID) ChatListState {
	next := s
	next.Items = append([]ChatItem(nil), s.Items...)
	next.Active = id
	return next
}

// Header — заголовок области сообщений.
type Header struct {
	Title  string
	Avatar string
	Status string
}

// MessageView — одно отрисованное сообщение.
type MessageView struct {
	Sender    string
	Timestamp string
	Text      string
	Own       bool
}

// ThreadState — содержимое области сообщений.
type ThreadState struct {
	Placeholder    Placeholder
	Messages       []MessageView
	ScrollToBottom bool
}

// Initial возвращает первую букву имени в верхнем регистре или "?" для пустого имени.
func Initial(name string) string {
	if name == "" {
		return initialPlaceholder
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// LoadingChatList — список в состоянии загрузки.
func LoadingChatList() ChatListState {
	return ChatListState{Placeholder: Placeholder{Kind: PlaceholderLoading, Text: TextLoadingChats}}
}

// UploadingChatList — список, пока идет загрузка count файлов.
func UploadingChatList(count int) ChatListState {
	return ChatListState{Placeholder: Placeholder{
		Kind: PlaceholderLoading,
		Text: fmt.Sprintf("Uploading %d file(s)...", count),
	}}
}

// UnreachableChatList — список после сбоя соединения или разбора ответа.
func UnreachableChatList() ChatListState {
	return ChatListState{Placeholder: Placeholder{Kind: PlaceholderError, Text: TextCannotConnect}}
}

// RenderChatList строит список чатов из ответа бэкенда.
// Пустой ответ дает заглушку и ни одного элемента.
func RenderChatList(chats []domain.Chat) ChatListState {
	if len(chats) == 0 {
		return ChatListState{Placeholder: Placeholder{Kind: PlaceholderEmpty, Text: TextNoChats}}
	}

	items := make([]ChatItem, 0, len(chats))
	for _, chat := range chats {
		items = append(items, ChatItem{
			ID:         chat.ID,
			Initial:    Initial(chat.Name),
			Name:       chat.Name,
			UploadDate: chat.UploadDate,
		})
	}
	return ChatListState{Items: items}
}

// InvalidThread — область сообщений для недопустимого идентификатора чата.
func InvalidThread() ThreadState {
	return ThreadState{Placeholder: Placeholder{Kind: PlaceholderInvalid, Text: TextInvalidChat}}
}

// LoadingThread — область сообщений во время загрузки.
func LoadingThread() ThreadState {
	return ThreadState{Placeholder: Placeholder{Kind: PlaceholderLoading, Text: TextLoadingThread}}
}

// FailedThread — область сообщений после ошибки загрузки.
func FailedThread() ThreadState {
	return ThreadState{Placeholder: Placeholder{Kind: PlaceholderError, Text: TextThreadError}}
}

// OwnSpeaker возвращает отправителя первого сообщения.
// Пустое имя означает, что «своих» сообщений в переписке нет.
func OwnSpeaker(messages []domain.Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[0].Sender
}

// RenderThread строит область сообщений и возвращает вычисленного «своего» отправителя.
// Сообщение считается своим тогда и только тогда, когда его отправитель совпадает
// с отправителем первого сообщения ответа.
func RenderThread(messages []domain.Message) (ThreadState, string) {
	if len(messages) == 0 {
		return ThreadState{Placeholder: Placeholder{Kind: PlaceholderEmpty, Text: TextNoMessages}}, ""
	}

	own := OwnSpeaker(messages)
	views := make([]MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, MessageView{
			Sender:    msg.Sender,
			Timestamp: msg.Date + " " + msg.Time,
			Text:      msg.Text,
			Own:       own != "" && msg.Sender == own,
		})
	}

	return ThreadState{Messages: views, ScrollToBottom: true}, own
}

// ThreadStatus — текст статуса после успешной загрузки.
func ThreadStatus(count int) string {
	return fmt.Sprintf("%d messages", count)
}
