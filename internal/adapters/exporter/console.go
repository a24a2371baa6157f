package exporter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer/view"

	"github.com/mattn/go-runewidth"
)

const (
	defaultNameWidth = 28
	defaultTextWidth = 72
	ownMarker        = ">"
	activeMarker     = "*"
)

// ConsoleRenderer выводит состояния областей просмотрщика в текстовый поток.
// Используется одноразовыми командами CLI вместо интерактивного интерфейса.
type ConsoleRenderer struct {
	mu        sync.Mutex
	out       io.Writer
	nameWidth int
	textWidth int
}

var (
	_ ports.ChatListView = (*ConsoleRenderer)(nil)
	_ ports.ThreadView   = (*ConsoleRenderer)(nil)
	_ ports.FileInput    = (*ConsoleRenderer)(nil)
)

// NewConsoleRenderer создает новый экземпляр ConsoleRenderer.
func NewConsoleRenderer(out io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{
		out:       out,
		nameWidth: defaultNameWidth,
		textWidth: defaultTextWidth,
	}
}

// ShowChatList выводит список чатов или заглушку.
func (r *ConsoleRenderer) ShowChatList(state view.ChatListState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state.Placeholder.Visible() {
		fmt.Fprintf(r.out, "[%s]\n", state.Placeholder.Text)
		return
	}

	fmt.Fprintln(r.out, "--- Chats ---")
	for _, item := range state.Items {
		marker := " "
		if state.IsActive(item) {
			marker = activeMarker
		}
		name := runewidth.FillRight(runewidth.Truncate(item.Name, r.nameWidth, "…"), r.nameWidth)
		fmt.Fprintf(r.out, "%s (%s) %s  %s  id=%s\n", marker, item.Initial, name, item.UploadDate, item.ID)
	}
}

// ShowHeader выводит заголовок выбранного чата.
func (r *ConsoleRenderer) ShowHeader(header view.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "=== (%s) %s [%s]\n", header.Avatar, header.Title, header.Status)
}

// ShowStatus выводит новый статус чата.
func (r *ConsoleRenderer) ShowStatus(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "status: %s\n", status)
}

// ShowThread выводит переписку. Свои сообщения помечаются маркером слева.
func (r *ConsoleRenderer) ShowThread(state view.ThreadState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state.Placeholder.Visible() {
		fmt.Fprintf(r.out, "[%s]\n", state.Placeholder.Text)
		return
	}

	for _, msg := range state.Messages {
		marker := " "
		if msg.Own {
			marker = ownMarker
		}
		fmt.Fprintf(r.out, "%s %s  %s\n", marker, msg.Sender, msg.Timestamp)
		for _, line := range wrapString(msg.Text, r.textWidth) {
			fmt.Fprintf(r.out, "%s   %s\n", marker, line)
		}
	}
}

// Clear ничего не делает: у консоли нет поля выбора файлов.
func (r *ConsoleRenderer) Clear() {}

// wrapString переносит строку по словам так, чтобы ширина строки не превышала width.
// Слово длиннее width разрывается посередине. Исходные переносы строк сохраняются.
func wrapString(s string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return lines
}

func wrapParagraph(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, word := range strings.Fields(s) {
		wordWidth := runewidth.StringWidth(word)

		if wordWidth > width {
			if currentWidth > 0 {
				flush()
			}
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					flush()
				}
				current.WriteRune(r)
				currentWidth += rw
			}
			continue
		}

		if currentWidth > 0 && currentWidth+1+wordWidth > width {
			flush()
		}
		if currentWidth > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += wordWidth
	}

	if currentWidth > 0 || len(lines) == 0 {
		lines = append(lines, current.String())
	}
	return lines
}
