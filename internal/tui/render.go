package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"chat-viewer/internal/viewer/view"
)

func renderPlaceholder(p view.Placeholder) string {
	if p.Kind == view.PlaceholderError || p.Kind == view.PlaceholderInvalid {
		return errorStyle.Render(p.Text)
	}
	return mutedStyle.Render(p.Text)
}

// renderChatList рисует список: курсор слева, активный чат выделен цветом.
func renderChatList(state view.ChatListState, cursor, width int) string {
	if state.Placeholder.Visible() {
		return renderPlaceholder(state.Placeholder)
	}

	var sb strings.Builder
	for i, item := range state.Items {
		marker := "  "
		if i == cursor {
			marker = cursorStyle.Render("> ")
		}
		nameWidth := max(width-6, 1)
		name := runewidth.Truncate(item.Name, nameWidth, "…")
		line := "[" + item.Initial + "] " + name
		if state.IsActive(item) {
			line = activeItemStyle.Render(line)
		}
		sb.WriteString(marker + line + "\n")
		if item.UploadDate != "" {
			sb.WriteString("      " + mutedStyle.Render(runewidth.Truncate(item.UploadDate, nameWidth, "…")) + "\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderHeader рисует заголовок; own — отправитель, чьи сообщения прижаты вправо.
func renderHeader(h view.Header, own string) string {
	if h.Title == "" && h.Status == "" {
		return mutedStyle.Render("Select a chat") + "\n"
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, avatarStyle.Render(h.Avatar), " ", titleStyle.Render(h.Title))
	status := h.Status
	if own != "" {
		status += " · right side: " + own
	}
	return top + "\n" + mutedStyle.Render(status) + "\n"
}

// renderMessages рисует переписку: сообщения «своего» отправителя прижаты вправо.
func renderMessages(state view.ThreadState, width int) string {
	if state.Placeholder.Visible() {
		return renderPlaceholder(state.Placeholder)
	}
	if width <= 0 {
		width = 80
	}
	bubbleWidth := max(width*2/3, 10)

	blocks := make([]string, 0, len(state.Messages))
	for _, msg := range state.Messages {
		style := otherBubbleStyle
		align := lipgloss.Left
		if msg.Own {
			style = ownBubbleStyle
			align = lipgloss.Right
		}

		var content strings.Builder
		if !msg.Own {
			content.WriteString(senderStyle.Render(msg.Sender) + "\n")
		}
		content.WriteString(msg.Text)
		if msg.Timestamp != "" {
			content.WriteString("\n" + mutedStyle.Render(msg.Timestamp))
		}

		bubble := style.Width(min(bubbleWidth, lipgloss.Width(content.String())+4)).Render(content.String())
		blocks = append(blocks, lipgloss.PlaceHorizontal(width, align, bubble))
	}
	return strings.Join(blocks, "\n")
}
